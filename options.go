package subplan

import "github.com/tsawler/subplan/tables"

// ExtractOptions holds the extraction configuration.
type ExtractOptions struct {
	// Geometric tolerances of the table reconstruction.
	config tables.Config

	// Name of the 8-bit encoding for show-text operands.
	encoding string
}

// defaultOptions returns the producer's layout defaults.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		config:   tables.DefaultConfig(),
		encoding: "WinAnsiEncoding",
	}
}

// clone creates a copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	return o
}
