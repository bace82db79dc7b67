package console

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/chzyer/readline"
)

// completer completes builtin commands and, for lines starting with @,
// file names.
type completer struct {
	builtins *readline.PrefixCompleter
}

func newCompleter() *completer {
	onOff := func(cmd string) readline.PrefixCompleterInterface {
		return readline.PcItem(cmd, readline.PcItem("on"), readline.PcItem("off"))
	}
	return &completer{
		builtins: readline.NewPrefixCompleter(
			readline.PcItem("format", readline.PcItem("csv"), readline.PcItem("json")),
			readline.PcItem("output", readline.PcItem("reset")),
			onOff("write"),
			onOff("page"),
			readline.PcItem("clear"),
			readline.PcItem("help"),
			readline.PcItem("exit"),
			readline.PcItem("quit"),
			readline.PcItem("bye"),
		),
	}
}

// Do implements readline.AutoCompleter.
func (c *completer) Do(line []rune, pos int) ([][]rune, int) {
	if len(line) > 0 && line[0] == queryFilePrefix {
		// only complete at the end of the line
		if pos < len(line) {
			return nil, 0
		}
		return completeFilename(string(line[1:pos]))
	}
	return c.builtins.Do(line, pos)
}

// completeFilename returns the suffixes that extend partial to existing
// paths. Directories get a trailing separator.
func completeFilename(partial string) ([][]rune, int) {
	dir, base := filepath.Split(partial)
	readDir := dir
	if readDir == "" {
		readDir = "."
	}

	entries, err := os.ReadDir(readDir)
	if err != nil {
		return nil, 0
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, base) {
			continue
		}
		if strings.HasPrefix(name, ".") && !strings.HasPrefix(base, ".") {
			continue
		}
		if e.IsDir() {
			name += string(filepath.Separator)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	candidates := make([][]rune, 0, len(names))
	for _, n := range names {
		candidates = append(candidates, []rune(n)[len([]rune(base)):])
	}
	return candidates, len([]rune(base))
}
