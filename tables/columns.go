package tables

import (
	"fmt"

	"github.com/tsawler/subplan/model"
)

// Column is one table column: its header text, the horizontal extent
// derived from the rules crossing the header's x, and the attached bag of
// rules and cell texts.
type Column struct {
	Header model.Text
	Start  int64
	End    int64

	objects []model.PageObject
}

// Objects returns the attached bag in attachment order.
func (c *Column) Objects() []model.PageObject {
	return c.objects
}

// ExtractColumns locates the columns of one table region. The header
// baseline is the y of the region's single "Block" text; every other text
// within the header band starts a column.
func (d *Detector) ExtractColumns(region *model.ObjectSet) ([]*Column, error) {
	texts := region.Texts()

	baseline, err := headerBaseline(texts)
	if err != nil {
		return nil, err
	}

	var columns []*Column
	for _, t := range texts {
		if t.Value == headerLandmark {
			continue
		}
		if dy := t.Position.Y - baseline; dy > -d.config.HeaderHalfBand && dy < d.config.HeaderHalfBand {
			columns = append(columns, &Column{Header: t})
		}
	}

	for _, col := range columns {
		if err := d.attachBorderObjects(col, region); err != nil {
			return nil, err
		}
		d.attachSpannedTexts(col, region)
	}
	return columns, nil
}

// headerBaseline returns the y of the region's "Block" text. Zero or more
// than one is a layout we do not understand.
func headerBaseline(texts []model.Text) (int64, error) {
	var y int64
	count := 0
	for _, t := range texts {
		if t.Value == headerLandmark {
			y = t.Position.Y
			count++
		}
	}
	if count != 1 {
		return 0, fmt.Errorf("%w: found %d %q texts in region", ErrRegionHeader, count, headerLandmark)
	}
	return y, nil
}

// attachBorderObjects attaches every object intersecting the vertical
// border at the header's x and derives the column extent from the attached
// rules. Horizontal lines intersect when their x range covers the border,
// endpoints included. Texts compare their y against the border; the
// predicate exists for symmetry and never matches real layouts. Vertical
// lines never intersect.
func (d *Detector) attachBorderObjects(col *Column, region *model.ObjectSet) error {
	x0 := col.Header.Position.X

	first := true
	for _, obj := range region.Objects() {
		switch o := obj.(type) {
		case model.Line:
			if !o.IsHorizontal() || o.Start.X > x0 || x0 > o.End.X {
				continue
			}
			col.objects = append(col.objects, o)
			if first || o.Start.X < col.Start {
				col.Start = o.Start.X
			}
			if first || o.End.X > col.End {
				col.End = o.End.X
			}
			first = false
		case model.Text:
			if o.Position.Y == x0 {
				col.objects = append(col.objects, o)
			}
		}
	}
	if first {
		return fmt.Errorf("%w: header %q at x=%d", ErrColumnEmpty, col.Header.Value, x0)
	}
	return nil
}

// attachSpannedTexts attaches the region's texts lying strictly inside the
// column extent.
func (d *Detector) attachSpannedTexts(col *Column, region *model.ObjectSet) {
	for _, t := range region.Texts() {
		if t.Position.X > col.Start && t.Position.X < col.End {
			col.objects = append(col.objects, t)
		}
	}
}
