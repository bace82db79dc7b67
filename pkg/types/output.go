package types

import (
	"errors"
	"fmt"
	"strings"
)

// OutputFormat selects the encoding used when writing results to a file.
type OutputFormat int

// Supported output formats.
const (
	FormatCSV OutputFormat = iota
	FormatJSON
)

// Export errors.
var (
	ErrInvalidFormat = errors.New("invalid format provided; allowed values: [csv, json]")
	ErrExport        = errors.New("couldn't write results")
)

// ParseOutputFormat parses "csv" or "json", ignoring surrounding whitespace.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch strings.TrimSpace(s) {
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatCSV, ErrInvalidFormat
	}
}

func (f OutputFormat) String() string {
	switch f {
	case FormatJSON:
		return "json"
	default:
		return "csv"
	}
}

// Extension returns the file extension for the format, without a dot.
func (f OutputFormat) Extension() string {
	return f.String()
}

// Set implements pflag.Value.
func (f *OutputFormat) Set(s string) error {
	parsed, err := ParseOutputFormat(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Type implements pflag.Value.
func (f *OutputFormat) Type() string {
	return "format"
}

// MarshalText lets viper and yaml carry the format as a plain string.
func (f OutputFormat) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (f *OutputFormat) UnmarshalText(text []byte) error {
	if err := f.Set(string(text)); err != nil {
		return fmt.Errorf("%w: %q", err, string(text))
	}
	return nil
}
