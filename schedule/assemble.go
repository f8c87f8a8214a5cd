// Package schedule turns extracted table cells into the final Schedule
// value and pulls the issue date off the page.
package schedule

import (
	"fmt"
	"strings"

	"github.com/tsawler/subplan/model"
)

// Assembler accumulates per-column cells across regions and pages into the
// class to entry mapping. Columns are added in page, region, column order;
// a class name seen twice keeps the later column's entry.
type Assembler struct {
	entries    map[string]model.Entry
	duplicates []string
}

// NewAssembler returns an empty assembler.
func NewAssembler() *Assembler {
	return &Assembler{entries: make(map[string]model.Entry)}
}

// AddColumn consumes one column's cells as produced by the cell splitter:
// the header cell followed by the six block cells. Cell lines are joined
// with newlines; an empty cell leaves its slot nil.
func (a *Assembler) AddColumn(cells [][]string) error {
	if len(cells) != model.BlockCount+1 {
		return fmt.Errorf("schedule: column has %d cells, want %d", len(cells), model.BlockCount+1)
	}
	if len(cells[0]) == 0 {
		return fmt.Errorf("schedule: column header cell is empty")
	}
	class := cells[0][0]

	var entry model.Entry
	for i := 0; i < model.BlockCount; i++ {
		if lines := cells[i+1]; len(lines) > 0 {
			joined := strings.Join(lines, "\n")
			entry[i] = &joined
		}
	}

	if _, seen := a.entries[class]; seen {
		a.duplicates = append(a.duplicates, class)
	}
	a.entries[class] = entry
	return nil
}

// Duplicates returns the class names that were overwritten by a later
// column, in overwrite order.
func (a *Assembler) Duplicates() []string {
	return a.duplicates
}

// Build returns the schedule with the given issue date. The assembler must
// not be reused afterwards.
func (a *Assembler) Build(issueDate int64) *model.Schedule {
	return &model.Schedule{IssueDate: issueDate, Entries: a.entries}
}
