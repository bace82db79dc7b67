package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/gcue/internal/output"
	"github.com/mesh-intelligence/gcue/pkg/types"
)

// resultsFlags are shared by the console and query commands.
type resultsFlags struct {
	page   bool
	write  bool
	format types.OutputFormat
}

func (f *resultsFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.page, "page-results", false, "open results in a pager (GCUE_PAGER, default \"less -S\")")
	cmd.Flags().BoolVar(&f.write, "write-results", false, "write results to a file in the results directory")
	cmd.Flags().String("results-dir", defaultResultsDir, "directory for results files")
	cmd.Flags().Var(&f.format, "results-format", "format for results files (csv, json)")
}

// resultsSettings merges the results flags with config.yaml and the
// environment; explicitly set flags win.
func (a *app) resultsSettings(cmd *cobra.Command) (string, types.OutputFormat, error) {
	if err := a.config.BindPFlag(cfgKeyResultsDir, cmd.Flags().Lookup("results-dir")); err != nil {
		return "", types.FormatCSV, fmt.Errorf("bind results-dir flag: %w", err)
	}
	if err := a.config.BindPFlag(cfgKeyResultsFormat, cmd.Flags().Lookup("results-format")); err != nil {
		return "", types.FormatCSV, fmt.Errorf("bind results-format flag: %w", err)
	}

	format, err := resultsFormat(a.config)
	if err != nil {
		return "", format, err
	}
	return a.config.GetString(cfgKeyResultsDir), format, nil
}

// present handles the results of a one-off query: write and optionally
// page them, page them from a temporary file, or print them as a table.
func (a *app) present(ctx context.Context, out io.Writer, rows types.NonEmptyResults, f resultsFlags, dir string, pg types.Pager) error {
	switch {
	case f.write:
		path, err := output.WriteResults(rows, dir, f.format, a.now())
		if err != nil {
			return err
		}
		a.logger.Info("results written", zap.String("path", path))
		fmt.Fprintf(out, "Wrote results to %s\n", path)
		if f.page {
			return a.page(ctx, path, pg)
		}
		return nil
	case f.page:
		tmp, err := os.MkdirTemp("", "gcue-")
		if err != nil {
			return fmt.Errorf("%w: couldn't create temporary directory for paging results: %w", types.ErrExport, err)
		}
		defer os.RemoveAll(tmp)
		path, err := output.WriteResults(rows, tmp, f.format, a.now())
		if err != nil {
			return err
		}
		return a.page(ctx, path, pg)
	default:
		fmt.Fprintln(out, output.RenderTable(rows.List()))
		return nil
	}
}

func (a *app) closeExecutor(ctx context.Context, executor types.QueryExecutor) {
	if err := executor.Close(ctx); err != nil {
		a.logger.Warn("couldn't close connection", zap.Error(err))
	}
}
