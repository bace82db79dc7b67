// Package console implements the interactive query loop.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/gcue/internal/history"
	"github.com/mesh-intelligence/gcue/internal/output"
	"github.com/mesh-intelligence/gcue/pkg/types"
)

// DefaultOutputDir is where results files go unless changed with output.
const DefaultOutputDir = ".gcue"

const queryFilePrefix = '@'

// SessionConfig holds the export preferences of one console session. It is
// never persisted.
type SessionConfig struct {
	Format    types.OutputFormat
	OutputDir string
	Write     bool
	Page      bool
}

// DefaultSessionConfig returns the configuration a session starts with.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{Format: types.FormatCSV, OutputDir: DefaultOutputDir}
}

// Options configures a Console. Executor, Reader and History are required.
type Options struct {
	Executor types.QueryExecutor
	Reader   LineReader
	History  *history.Log
	Session  SessionConfig
	Pager    types.Pager
	// ContinueOnError reports query failures and keeps the session open
	// instead of ending it.
	ContinueOnError bool
	Out             io.Writer
	Now             func() time.Time
	Logger          *zap.Logger
}

// Console reads commands and queries from a LineReader until the user
// exits.
type Console struct {
	executor        types.QueryExecutor
	reader          LineReader
	history         *history.Log
	config          SessionConfig
	pager           types.Pager
	continueOnError bool
	out             io.Writer
	now             func() time.Time
	clear           func(io.Writer) error
	page            func(ctx context.Context, file string, pager types.Pager) error
	logger          *zap.Logger
}

// New returns a Console. Unset optional fields get defaults: stdout, the
// platform pager, time.Now and a no-op logger.
func New(opts Options) *Console {
	c := &Console{
		executor:        opts.Executor,
		reader:          opts.Reader,
		history:         opts.History,
		config:          opts.Session,
		pager:           opts.Pager,
		continueOnError: opts.ContinueOnError,
		out:             opts.Out,
		now:             opts.Now,
		clear:           clearScreen,
		page:            output.PageResults,
		logger:          opts.Logger,
	}
	if c.out == nil {
		c.out = os.Stdout
	}
	if c.pager.Program == "" {
		c.pager = types.DefaultPager()
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	if c.config.OutputDir == "" {
		c.config.OutputDir = DefaultOutputDir
	}
	return c
}

// Config returns the current session configuration.
func (c *Console) Config() SessionConfig {
	return c.config
}

// Run prints the banner and help, then loops until an exit command, EOF
// or a query failure. History is saved on the way out; a failed save is
// only logged.
func (c *Console) Run(ctx context.Context) error {
	printBanner(c.out)
	printHelp(c.out, c.executor.DBURI(), c.config)

	for _, entry := range c.history.Entries() {
		if err := c.reader.SaveHistory(entry); err != nil {
			c.logger.Debug("couldn't seed line reader history", zap.Error(err))
			break
		}
	}
	defer c.saveHistory()

	for {
		line, err := c.reader.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return fmt.Errorf("couldn't read input: %w", err)
		}

		done, err := c.dispatch(ctx, strings.TrimSpace(line))
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

func (c *Console) saveHistory() {
	if err := c.history.Save(); err != nil {
		c.logger.Warn("couldn't save history", zap.String("path", c.history.Path()), zap.Error(err))
	}
}

// dispatch handles one trimmed line and reports whether the session is
// over.
func (c *Console) dispatch(ctx context.Context, line string) (bool, error) {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch {
	case line == "":
		return false, nil
	case line == "bye", line == "exit", line == "quit", line == ":q":
		return true, nil
	case line == "clear":
		if err := c.clear(c.out); err != nil {
			c.printError("Error: couldn't clear screen")
		}
	case line == "help", line == ":h":
		printHelp(c.out, c.executor.DBURI(), c.config)
	case cmd == "format":
		c.setFormat(arg)
	case cmd == "output":
		c.setOutput(arg)
	case cmd == "write":
		c.toggle(arg, "write", "writing output", &c.config.Write)
	case cmd == "page":
		c.toggle(arg, "page", "paging output", &c.config.Page)
	case line[0] == queryFilePrefix:
		path := strings.TrimSpace(line[1:])
		if path == "" {
			c.printError("Usage: @<FILE>")
			return false, nil
		}
		query, err := readQueryFile(path)
		if err != nil {
			c.printError(fmt.Sprintf("Error: %s", err))
			return false, nil
		}
		return false, c.runQuery(ctx, line, query)
	default:
		return false, c.runQuery(ctx, line, line)
	}
	return false, nil
}

func (c *Console) setFormat(arg string) {
	if arg == "" {
		c.printError("Usage: format <csv/json>")
		return
	}
	f, err := types.ParseOutputFormat(arg)
	if err != nil {
		c.printError(err.Error())
		return
	}
	c.config.Format = f
	c.printInfo(fmt.Sprintf("output format set to: %s", f))
}

func (c *Console) setOutput(arg string) {
	switch arg {
	case "":
		c.printError("Usage: output <PATH>")
	case "reset":
		c.config.OutputDir = DefaultOutputDir
		c.printInfo(fmt.Sprintf("output path changed to gcue's default: %s", DefaultOutputDir))
	default:
		c.config.OutputDir = arg
		c.printInfo(fmt.Sprintf("output path changed to: %s", arg))
	}
}

func (c *Console) toggle(arg, cmd, what string, field *bool) {
	switch arg {
	case "on":
		*field = true
		c.printInfo(what + " turned ON")
	case "off":
		*field = false
		c.printInfo(what + " turned OFF")
	default:
		c.printError(fmt.Sprintf("Usage: %s on/off", cmd))
	}
}

// runQuery records entry in history and executes query. entry differs from
// query only for @file input.
func (c *Console) runQuery(ctx context.Context, entry, query string) error {
	if err := c.history.Append(entry); err != nil {
		c.logger.Warn("couldn't add history entry", zap.Error(err))
	}
	if err := c.reader.SaveHistory(entry); err != nil {
		c.logger.Debug("couldn't add line reader history", zap.Error(err))
	}

	start := c.now()
	results, err := c.executor.ExecuteQuery(ctx, query)
	if err != nil {
		c.logger.Error("query failed", zap.Error(err))
		if !c.continueOnError {
			return err
		}
		c.printError(fmt.Sprintf("Error: %s", err))
		return nil
	}
	c.logger.Info("query executed",
		zap.Int("rows", results.Len()),
		zap.Duration("took", c.now().Sub(start)))

	rows, ok := results.NonEmpty()
	if !ok {
		fmt.Fprintf(c.out, "\n %s\n\n", infoColor.Sprint("no results"))
		return nil
	}
	c.present(ctx, rows)
	return nil
}

// present writes, pages or prints rows according to the session
// configuration. Failures are reported and never end the session.
func (c *Console) present(ctx context.Context, rows types.NonEmptyResults) {
	switch {
	case c.config.Write:
		path, err := output.WriteResults(rows, c.config.OutputDir, c.config.Format, c.now())
		if err != nil {
			c.printError(fmt.Sprintf("Error: %s", err))
			return
		}
		c.logger.Info("results written", zap.String("path", path))
		c.printInfo(fmt.Sprintf("results written to %s", path))
		if c.config.Page {
			c.pageFile(ctx, path)
		}
	case c.config.Page:
		dir, err := os.MkdirTemp("", "gcue-")
		if err != nil {
			c.printError(fmt.Sprintf("Error: couldn't create temporary directory: %s", err))
			return
		}
		defer os.RemoveAll(dir)
		path, err := output.WriteResults(rows, dir, c.config.Format, c.now())
		if err != nil {
			c.printError(fmt.Sprintf("Error: %s", err))
			return
		}
		c.pageFile(ctx, path)
	default:
		fmt.Fprintf(c.out, "\n%s\n\n", output.RenderTable(rows.List()))
	}
}

func (c *Console) pageFile(ctx context.Context, path string) {
	c.logger.Debug("paging results", zap.String("path", path), zap.Stringer("pager", c.pager))
	if err := c.page(ctx, path, c.pager); err != nil {
		c.printError(fmt.Sprintf("Error: %s", err))
	}
}

func (c *Console) printError(msg string) {
	fmt.Fprintln(c.out, errorColor.Sprint(msg))
}

func (c *Console) printInfo(msg string) {
	fmt.Fprintln(c.out, infoColor.Sprint(msg))
}

func readQueryFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("couldn't read query file: %w", err)
	}
	query := strings.TrimSpace(string(data))
	if query == "" {
		return "", fmt.Errorf("query file %s is empty", path)
	}
	return query, nil
}
