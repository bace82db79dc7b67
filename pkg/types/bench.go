package types

import (
	"errors"
	"strconv"
)

// ErrInvalidNumRuns is returned for a benchmark run count below one.
var ErrInvalidNumRuns = errors.New("number of benchmark runs must be at least 1")

// BenchmarkNumRuns is a validated, positive number of measured benchmark runs.
type BenchmarkNumRuns struct {
	n uint16
}

// NewBenchmarkNumRuns validates n.
func NewBenchmarkNumRuns(n uint16) (BenchmarkNumRuns, error) {
	if n == 0 {
		return BenchmarkNumRuns{}, ErrInvalidNumRuns
	}
	return BenchmarkNumRuns{n: n}, nil
}

// Value returns the run count.
func (b BenchmarkNumRuns) Value() uint16 {
	return b.n
}

func (b BenchmarkNumRuns) String() string {
	return strconv.Itoa(int(b.n))
}

// Set implements pflag.Value.
func (b *BenchmarkNumRuns) Set(s string) error {
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return err
	}
	parsed, err := NewBenchmarkNumRuns(uint16(n))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// Type implements pflag.Value.
func (b *BenchmarkNumRuns) Type() string {
	return "uint16"
}
