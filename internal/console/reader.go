package console

import "github.com/chzyer/readline"

const prompt = ">> "

// LineReader reads console input. *readline.Instance satisfies it.
type LineReader interface {
	Readline() (string, error)
	// SaveHistory adds an entry to the in-memory recall list.
	SaveHistory(content string) error
	Close() error
}

// NewLineReader returns a readline instance with builtin and @file
// completion. History is managed by the console, not by readline.
func NewLineReader() (*readline.Instance, error) {
	return readline.NewEx(&readline.Config{
		Prompt:                 prompt,
		AutoComplete:           newCompleter(),
		InterruptPrompt:        "^C",
		EOFPrompt:              "exit",
		DisableAutoSaveHistory: true,
		HistorySearchFold:      true,
		FuncFilterInputRune:    filterInput,
	})
}

func filterInput(r rune) (rune, bool) {
	switch r {
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}
