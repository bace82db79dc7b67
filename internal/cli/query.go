package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/mesh-intelligence/gcue/internal/bench"
	"github.com/mesh-intelligence/gcue/pkg/types"
)

const (
	defaultBenchRuns       = 5
	defaultBenchWarmupRuns = 3
)

type queryFlags struct {
	results    resultsFlags
	benchmark  bool
	runs       types.BenchmarkNumRuns
	warmup     uint16
	printQuery bool
}

func newQueryCmd(a *app) *cobra.Command {
	f := &queryFlags{}
	f.runs, _ = types.NewBenchmarkNumRuns(defaultBenchRuns)

	cmd := &cobra.Command{
		Use:   "query <QUERY|->",
		Short: "Execute a one-off query",
		Long:  "Execute a single query and print, write or page its results.\nPass - to read the query from standard input.",
		Example: `  gcue query 'MATCH (n) RETURN n LIMIT 5'
  gcue query - < query.cypher
  gcue query --benchmark --bench-num-runs 10 'MATCH (n) RETURN count(n)'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runQuery(cmd, args[0], f)
		},
	}

	f.results.register(cmd)
	cmd.Flags().BoolVar(&f.benchmark, "benchmark", false, "benchmark the query instead of printing its results")
	cmd.Flags().Var(&f.runs, "bench-num-runs", "number of measured benchmark runs")
	cmd.Flags().Uint16Var(&f.warmup, "bench-num-warmup-runs", defaultBenchWarmupRuns, "number of warmup runs before benchmarking")
	cmd.Flags().BoolVar(&f.printQuery, "print-query", false, "print the query before executing it")
	cmd.MarkFlagsMutuallyExclusive("benchmark", "write-results")

	return cmd
}

func (a *app) runQuery(cmd *cobra.Command, arg string, f *queryFlags) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	query, err := readQuery(cmd, arg)
	if err != nil {
		return err
	}

	dir, format, err := a.resultsSettings(cmd)
	if err != nil {
		return err
	}
	f.results.format = format

	if a.flags.debug {
		return printDebug(cmd, a, []debugField{
			{"page results", fmt.Sprint(f.results.page)},
			{"write results", fmt.Sprint(f.results.write)},
			{"results dir", dir},
			{"results format", format.String()},
			{"benchmark", fmt.Sprint(f.benchmark)},
			{"bench runs", f.runs.String()},
			{"bench warmup runs", fmt.Sprint(f.warmup)},
			{"print query", fmt.Sprint(f.printQuery)},
			{"query", "\n" + query},
		})
	}

	var pg types.Pager
	if f.results.page {
		if pg, err = pager(a.config); err != nil {
			return err
		}
	}

	executor, err := a.connect(ctx, connectionConfig(a.config), a.logger)
	if err != nil {
		return err
	}
	defer a.closeExecutor(ctx, executor)

	if f.printQuery {
		fmt.Fprintf(out, "---\n%s\n---\n\n", query)
	}

	if f.benchmark {
		runner := &bench.Runner{Executor: executor, Out: out, Now: a.now, Logger: a.logger.Named("bench")}
		_, err := runner.Run(ctx, query, f.runs, f.warmup)
		return err
	}

	start := a.now()
	results, err := executor.ExecuteQuery(ctx, query)
	if err != nil {
		return err
	}
	a.logger.Info("query executed",
		zap.Int("rows", results.Len()),
		zap.Duration("took", a.now().Sub(start)))

	rows, ok := results.NonEmpty()
	if !ok {
		fmt.Fprintln(out, "No results")
		return nil
	}
	return a.present(ctx, out, rows, f.results, dir, pg)
}

// readQuery returns arg, or for "-" everything on stdin with surrounding
// whitespace removed.
func readQuery(cmd *cobra.Command, arg string) (string, error) {
	query := arg
	if arg == "-" {
		in := cmd.InOrStdin()
		if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			fmt.Fprintln(cmd.ErrOrStderr(), "reading query from stdin, press ctrl+d when done")
		}
		data, err := io.ReadAll(in)
		if err != nil {
			return "", fmt.Errorf("couldn't read query from stdin: %w", err)
		}
		query = strings.TrimSpace(string(data))
	}

	if strings.TrimSpace(query) == "" {
		return "", fmt.Errorf("%w: query is empty", types.ErrInvalidConfig)
	}
	return query, nil
}
