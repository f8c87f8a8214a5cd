package tables

import (
	"fmt"
	"sort"

	"github.com/tsawler/subplan/model"
)

// SplitCells buckets a column's texts into cells. The producer draws each
// row separator as one long rule but also paints short tick marks inside
// cells; genuine separators are recognized as the lines with the largest
// inter-line gaps. Returns the header cell followed by the six block
// cells, each as its text lines in top-to-bottom order.
func (d *Detector) SplitCells(col *Column) ([][]string, error) {
	var lines []model.Line
	var texts []model.Text
	for _, obj := range col.Objects() {
		switch o := obj.(type) {
		case model.Line:
			if o.IsHorizontal() {
				lines = append(lines, o)
			}
		case model.Text:
			texts = append(texts, o)
		}
	}

	separators, err := d.filterSeparators(lines, col)
	if err != nil {
		return nil, err
	}
	return d.walkCells(separators, texts, col)
}

// filterSeparators reduces the column's horizontal lines to the
// SeparatorRank+1 genuine row separators.
func (d *Detector) filterSeparators(lines []model.Line, col *Column) ([]model.Line, error) {
	sort.Slice(lines, func(i, j int) bool { return lines[i].Start.Y > lines[j].Start.Y })

	spacings := make([]int64, 0, len(lines))
	for i := 0; i+1 < len(lines); i++ {
		spacings = append(spacings, lines[i].Start.Y-lines[i+1].Start.Y)
	}
	if d.config.SeparatorRank < 1 {
		return nil, fmt.Errorf("%w: separator rank %d is not positive",
			ErrSeparatorCount, d.config.SeparatorRank)
	}
	if len(spacings) < d.config.SeparatorRank {
		return nil, fmt.Errorf("%w: column %q has %d line gaps, need at least %d",
			ErrSeparatorCount, col.Header.Value, len(spacings), d.config.SeparatorRank)
	}

	ranked := make([]int64, len(spacings))
	copy(ranked, spacings)
	sort.Slice(ranked, func(i, j int) bool { return ranked[i] > ranked[j] })
	threshold := ranked[d.config.SeparatorRank-1]

	// The bottom line has no following gap; give it the threshold itself
	// so it always survives the filter.
	spacings = append(spacings, threshold)

	var separators []model.Line
	for i, l := range lines {
		if spacings[i] >= threshold {
			separators = append(separators, l)
		}
	}
	if len(separators) != d.config.SeparatorRank+1 {
		return nil, fmt.Errorf("%w: column %q kept %d separators, want %d",
			ErrSeparatorCount, col.Header.Value, len(separators), d.config.SeparatorRank+1)
	}
	return separators, nil
}

// walkCells merges separators and texts top to bottom and buckets each
// text into the cell below the last separator seen. Lines sort before
// texts at equal y so a text sitting on a separator lands in the cell
// below it.
func (d *Detector) walkCells(separators []model.Line, texts []model.Text, col *Column) ([][]string, error) {
	type item struct {
		y    int64
		x    int64
		line *model.Line
		text *model.Text
	}
	items := make([]item, 0, len(separators)+len(texts))
	for i := range separators {
		items = append(items, item{y: separators[i].Start.Y, x: separators[i].Start.X, line: &separators[i]})
	}
	for i := range texts {
		items = append(items, item{y: texts[i].Position.Y, x: texts[i].Position.X, text: &texts[i]})
	}
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.y != b.y {
			return a.y > b.y
		}
		if (a.line != nil) != (b.line != nil) {
			return a.line != nil
		}
		return a.x < b.x
	})

	if len(items) == 0 || items[0].text == nil {
		return nil, fmt.Errorf("%w: column %q", ErrHeaderCell, col.Header.Value)
	}

	// One cell per separator plus the header cell on top; a trailing guard
	// absorbs anything below the bottom rule.
	cells := make([][]string, d.config.SeparatorRank+2)
	idx := 0
	for _, it := range items {
		if it.line != nil {
			idx++
			continue
		}
		cells[idx] = append(cells[idx], it.text.Value)
	}
	return cells[:d.config.SeparatorRank+1], nil
}
