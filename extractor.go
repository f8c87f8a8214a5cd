package subplan

import (
	"fmt"
	"io"

	"github.com/tsawler/subplan/model"
	"github.com/tsawler/subplan/objects"
	"github.com/tsawler/subplan/reader"
	"github.com/tsawler/subplan/schedule"
	"github.com/tsawler/subplan/tables"
)

// Extractor provides a fluent interface for schedule extraction. Each
// configuration method returns a new Extractor instance, making chains
// safe to share and reuse.
type Extractor struct {
	// Source: exactly one of filename or source is set until a reader
	// exists.
	filename string
	source   io.Reader
	reader   *reader.Reader

	options ExtractOptions

	// Accumulated error (fail-fast through the chain).
	err error

	warnings []Warning
}

// clone creates a copy of the Extractor so configuration methods never
// mutate the receiver.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		source:   e.source,
		reader:   e.reader,
		options:  e.options.clone(),
		err:      e.err,
		warnings: append([]Warning(nil), e.warnings...),
	}
}

// WithConfig replaces the geometric tolerances wholesale.
//
// Example:
//
//	cfg := tables.DefaultConfig()
//	cfg.RegionPadding = 6
//	s, _, err := subplan.Open("plan.pdf").WithConfig(cfg).Schedule()
func (e *Extractor) WithConfig(config tables.Config) *Extractor {
	newExt := e.clone()
	newExt.options.config = config
	return newExt
}

// RegionPadding sets the vertical widening of region landmarks, in points.
func (e *Extractor) RegionPadding(padding int64) *Extractor {
	newExt := e.clone()
	newExt.options.config.RegionPadding = padding
	return newExt
}

// HeaderHalfBand sets the half-height of the column header band, in
// points.
func (e *Extractor) HeaderHalfBand(band int64) *Extractor {
	newExt := e.clone()
	newExt.options.config.HeaderHalfBand = band
	return newExt
}

// SeparatorRank sets how many inter-line gaps count as genuine row
// separators.
func (e *Extractor) SeparatorRank(rank int) *Extractor {
	newExt := e.clone()
	newExt.options.config.SeparatorRank = rank
	return newExt
}

// Encoding sets the named 8-bit encoding for show-text operands. The
// default is "WinAnsiEncoding".
func (e *Extractor) Encoding(name string) *Extractor {
	newExt := e.clone()
	newExt.options.encoding = name
	return newExt
}

// ensureReader loads the document if not already loaded.
func (e *Extractor) ensureReader() error {
	if e.reader != nil {
		return nil
	}
	if e.source != nil {
		r, err := reader.NewReader(e.source)
		if err != nil {
			return err
		}
		e.reader = r
		return nil
	}
	if e.filename == "" {
		return fmt.Errorf("subplan: no input specified")
	}
	r, err := reader.Open(e.filename)
	if err != nil {
		return err
	}
	e.reader = r
	return nil
}

// PageCount returns the number of pages in the document. The document
// stays loaded for further operations.
func (e *Extractor) PageCount() (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	if err := e.ensureReader(); err != nil {
		return 0, err
	}
	return e.reader.PageCount(), nil
}

// Schedule is the terminal operation: it drives the whole pipeline and
// returns the extracted schedule. Columns are consumed in page, region,
// column order; a class name appearing twice keeps the last column seen.
// The first component error aborts extraction unchanged.
//
// Example:
//
//	s, warnings, err := subplan.Open("substitutions.pdf").Schedule()
func (e *Extractor) Schedule() (*model.Schedule, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}
	if err := e.ensureReader(); err != nil {
		return nil, nil, err
	}

	detector := tables.NewDetector(e.options.config)
	extractor := objects.NewExtractor(e.options.encoding)
	assembler := schedule.NewAssembler()
	allObjects := model.NewObjectSet()
	warnings := append([]Warning(nil), e.warnings...)

	for i := 0; i < e.reader.PageCount(); i++ {
		page, err := e.reader.Page(i)
		if err != nil {
			return nil, nil, err
		}
		streams, err := page.Contents()
		if err != nil {
			return nil, nil, err
		}
		set, err := extractor.FromStreams(streams)
		if err != nil {
			return nil, nil, err
		}
		allObjects.Merge(set)

		regions, err := detector.FindRegions(set)
		if err != nil {
			return nil, nil, err
		}
		for _, region := range regions {
			columns, err := detector.ExtractColumns(region)
			if err != nil {
				return nil, nil, err
			}
			warnings = append(warnings, overlapWarnings(columns, i+1)...)

			for _, col := range columns {
				cells, err := detector.SplitCells(col)
				if err != nil {
					return nil, nil, err
				}
				if err := assembler.AddColumn(cells); err != nil {
					return nil, nil, err
				}
			}
		}
	}

	issueDate, err := schedule.ExtractDate(allObjects)
	if err != nil {
		return nil, nil, err
	}

	for _, class := range assembler.Duplicates() {
		warnings = append(warnings, Warning{
			Code:    WarnDuplicateClass,
			Message: fmt.Sprintf("class %q appeared more than once; kept the last column", class),
		})
	}
	return assembler.Build(issueDate), warnings, nil
}

// overlapWarnings reports column pairs whose horizontal extents overlap.
func overlapWarnings(columns []*tables.Column, page int) []Warning {
	var warnings []Warning
	for i := 0; i < len(columns); i++ {
		for j := i + 1; j < len(columns); j++ {
			a, b := columns[i], columns[j]
			if a.Start < b.End && b.Start < a.End {
				warnings = append(warnings, Warning{
					Code: WarnColumnOverlap,
					Message: fmt.Sprintf("columns %q and %q overlap in [%d, %d]",
						a.Header.Value, b.Header.Value, max64(a.Start, b.Start), min64(a.End, b.End)),
					Page: page,
				})
			}
		}
	}
	return warnings
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
