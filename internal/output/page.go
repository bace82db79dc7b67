package output

import (
	"context"
	"fmt"
	"os"

	"github.com/mesh-intelligence/gcue/pkg/types"
)

// PageResults opens file in pager and waits for the pager to exit. The
// pager shares the terminal with gcue.
func PageResults(ctx context.Context, file string, pager types.Pager) error {
	cmd := pager.Command(ctx, file)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: couldn't execute pager command %q: %w", types.ErrPager, pager.String(), err)
	}
	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("%w: pager command failed: %w", types.ErrPager, err)
	}
	return nil
}
