//go:build windows

package console

import (
	"io"

	"github.com/chzyer/readline"
)

func clearScreen(w io.Writer) error {
	return readline.ClearScreen(w)
}
