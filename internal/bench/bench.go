// Package bench times repeated executions of a query.
package bench

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/gcue/pkg/types"
)

var (
	heading = color.New(color.FgYellow, color.Bold)
	timing  = color.New(color.FgCyan)
)

// Stats summarises the measured runs. Warmup runs are not included. Every
// run is recorded in whole milliseconds, and Mean is the integer mean of
// those values, so the statistics agree with the printed runs.
type Stats struct {
	Min  time.Duration
	Max  time.Duration
	Mean time.Duration
	Runs []time.Duration
}

// Runner executes a query repeatedly and reports latencies to Out.
type Runner struct {
	Executor types.QueryExecutor
	Out      io.Writer
	// Now defaults to time.Now.
	Now    func() time.Time
	Logger *zap.Logger
}

// Run executes query warmup times, then runs times, sequentially. Each run
// is printed as it completes and the statistics of the measured runs are
// printed last. The first failing run aborts the benchmark.
func (r *Runner) Run(ctx context.Context, query string, runs types.BenchmarkNumRuns, warmup uint16) (Stats, error) {
	if warmup > 0 {
		heading.Fprintf(r.Out, "Warming up (%d runs) ...\n", warmup)
	}
	for i := 1; i <= int(warmup); i++ {
		if _, err := r.timed(ctx, query, i); err != nil {
			return Stats{}, fmt.Errorf("couldn't get results for warmup run #%d: %w", i, err)
		}
	}
	if warmup > 0 {
		fmt.Fprintln(r.Out)
	}

	heading.Fprintf(r.Out, "Benchmarking (%d runs) ...\n", runs.Value())
	times := make([]time.Duration, 0, runs.Value())
	for i := 1; i <= int(runs.Value()); i++ {
		d, err := r.timed(ctx, query, i)
		if err != nil {
			return Stats{}, fmt.Errorf("couldn't execute query for benchmark run #%d: %w", i, err)
		}
		times = append(times, d)
	}

	stats := computeStats(times)
	r.printStats(stats)
	r.logger().Info("benchmark finished",
		zap.Uint16("runs", runs.Value()),
		zap.Uint16("warmup_runs", warmup),
		zap.Duration("min", stats.Min),
		zap.Duration("max", stats.Max),
		zap.Duration("mean", stats.Mean))
	return stats, nil
}

func (r *Runner) timed(ctx context.Context, query string, run int) (time.Duration, error) {
	now := r.Now
	if now == nil {
		now = time.Now
	}

	start := now()
	if _, err := r.Executor.ExecuteQuery(ctx, query); err != nil {
		return 0, err
	}
	elapsed := now().Sub(start).Truncate(time.Millisecond)

	fmt.Fprintf(r.Out, "run %03d:      %s\n", run, timing.Sprint(millis(elapsed)))
	return elapsed, nil
}

func (r *Runner) printStats(s Stats) {
	fmt.Fprintln(r.Out)
	heading.Fprintln(r.Out, "Statistics:")
	fmt.Fprintf(r.Out, "min:          %s\n", timing.Sprint(millis(s.Min)))
	fmt.Fprintf(r.Out, "max:          %s\n", timing.Sprint(millis(s.Max)))
	fmt.Fprintf(r.Out, "mean:         %s\n", timing.Sprint(millis(s.Mean)))
}

func (r *Runner) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

func computeStats(times []time.Duration) Stats {
	if len(times) == 0 {
		return Stats{}
	}

	s := Stats{Min: times[0], Max: times[0], Runs: times}
	var total time.Duration
	for _, t := range times {
		s.Min = min(s.Min, t)
		s.Max = max(s.Max, t)
		total += t
	}
	s.Mean = (total / time.Duration(len(times))).Truncate(time.Millisecond)
	return s
}

func millis(d time.Duration) string {
	return fmt.Sprintf("%dms", d.Milliseconds())
}
