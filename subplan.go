// Package subplan extracts a school's lesson-substitution schedule from
// the PDFs its planning tool produces. The documents carry no logical
// table structure, so the extraction reconstructs the tables geometrically
// from positioned texts and ruled segments.
//
// Basic usage:
//
//	s, warnings, err := subplan.Open("substitutions.pdf").Schedule()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", subplan.FormatWarnings(warnings))
//	}
//
// With options:
//
//	s, _, err := subplan.Open("substitutions.pdf").
//	    RegionPadding(4).
//	    SeparatorRank(6).
//	    Schedule()
//
// Extraction is all or nothing: any landmark or geometry the engine does
// not recognize fails the whole document rather than producing a partial
// schedule.
package subplan

import "io"

// Open prepares an Extractor for the PDF file at the given path. The file
// is not touched until a terminal operation runs.
//
// Example:
//
//	s, warnings, err := subplan.Open("substitutions.pdf").Schedule()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromReader prepares an Extractor reading the PDF from r. The source is
// consumed to completion when a terminal operation runs and may be
// released afterwards.
//
// Example:
//
//	s, warnings, err := subplan.FromReader(resp.Body).Schedule()
func FromReader(r io.Reader) *Extractor {
	return &Extractor{
		source:  r,
		options: defaultOptions(),
	}
}

// Must wraps a call returning (T, error) and panics on error. Intended for
// scripts and tests.
//
// Example:
//
//	count := subplan.Must(subplan.Open("substitutions.pdf").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustSchedule wraps a Schedule() call, discards warnings, and panics on
// error.
//
// Example:
//
//	s := subplan.MustSchedule(subplan.Open("substitutions.pdf").Schedule())
func MustSchedule[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
