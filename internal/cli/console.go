package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/gcue/internal/console"
	"github.com/mesh-intelligence/gcue/internal/history"
	"github.com/mesh-intelligence/gcue/internal/paths"
)

func newConsoleCmd(a *app) *cobra.Command {
	f := &resultsFlags{}
	cmd := &cobra.Command{
		Use:   "console",
		Short: "Start the interactive query console",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConsole(cmd, f)
		},
	}
	f.register(cmd)
	return cmd
}

func (a *app) runConsole(cmd *cobra.Command, f *resultsFlags) error {
	ctx := cmd.Context()

	dir, format, err := a.resultsSettings(cmd)
	if err != nil {
		return err
	}

	if a.flags.debug {
		return printDebug(cmd, a, []debugField{
			{"page results", fmt.Sprint(f.page)},
			{"write results", fmt.Sprint(f.write)},
			{"results dir", dir},
			{"results format", format.String()},
			{"history file", paths.HistoryFile(a.dataDir)},
			{"continue on error", fmt.Sprint(a.config.GetBool(cfgKeyContinueOnError))},
		})
	}

	// the console can turn paging on later, so the pager is always resolved
	pg, err := pager(a.config)
	if err != nil {
		return err
	}

	executor, err := a.connect(ctx, connectionConfig(a.config), a.logger)
	if err != nil {
		return err
	}
	defer a.closeExecutor(ctx, executor)

	hist, err := history.Load(paths.HistoryFile(a.dataDir))
	if err != nil {
		a.logger.Warn("couldn't load history", zap.Error(err))
	}

	reader, err := console.NewLineReader()
	if err != nil {
		return fmt.Errorf("start line editor: %w", err)
	}
	defer reader.Close()

	c := console.New(console.Options{
		Executor: executor,
		Reader:   reader,
		History:  hist,
		Session: console.SessionConfig{
			Format:    format,
			OutputDir: dir,
			Write:     f.write,
			Page:      f.page,
		},
		Pager:           pg,
		ContinueOnError: a.config.GetBool(cfgKeyContinueOnError),
		Out:             cmd.OutOrStdout(),
		Now:             a.now,
		Logger:          a.logger.Named("console"),
	})
	return c.Run(ctx)
}
