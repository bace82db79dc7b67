package types

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"strings"
)

// Pager errors.
var (
	ErrEmptyPager = errors.New("pager command is empty")
	ErrPager      = errors.New("couldn't page results")
)

// Pager is an external program that displays a results file.
type Pager struct {
	Program string
	Args    []string
}

// NewPager builds a Pager from a command line such as "less -S".
func NewPager(cmdline string) (Pager, error) {
	fields := strings.Fields(cmdline)
	if len(fields) == 0 {
		return Pager{}, ErrEmptyPager
	}
	return Pager{Program: fields[0], Args: fields[1:]}, nil
}

// DefaultPager returns the platform pager.
func DefaultPager() Pager {
	if runtime.GOOS == "windows" {
		return Pager{Program: "more"}
	}
	return Pager{Program: "less", Args: []string{"-S"}}
}

// Command returns the command that pages file. The file is always the
// final argument.
func (p Pager) Command(ctx context.Context, file string) *exec.Cmd {
	args := append(append([]string{}, p.Args...), file)
	return exec.CommandContext(ctx, p.Program, args...)
}

func (p Pager) String() string {
	return strings.Join(append([]string{p.Program}, p.Args...), " ")
}
