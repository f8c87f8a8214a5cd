package schedule

import (
	"strings"

	"github.com/tsawler/subplan/model"
)

// FromRows assembles a schedule from rectangular table grids, one grid per
// table. Row 0 is the header: the block-label column followed by class
// names. Each later row either starts the next block or, when its label
// starts with "-", continues the current one; continuation cells are
// appended to the block text on a new line. Rows past the sixth block are
// ignored. A class appearing in several grids keeps the last grid's entry.
func FromRows(grids [][][]string, issueDate int64) *model.Schedule {
	entries := make(map[string]model.Entry)
	for _, grid := range grids {
		if len(grid) == 0 || len(grid[0]) < 2 {
			continue
		}
		classes := grid[0][1:]
		local := make([]model.Entry, len(classes))

		block := -1
		for _, row := range grid[1:] {
			if len(row) == 0 {
				continue
			}
			if !strings.HasPrefix(row[0], "-") {
				block++
			}
			if block < 0 || block >= model.BlockCount {
				continue
			}
			for ci := range classes {
				if ci+1 >= len(row) || row[ci+1] == "" {
					continue
				}
				cell := row[ci+1]
				if cur := local[ci][block]; cur == nil {
					s := cell
					local[ci][block] = &s
				} else {
					joined := *cur + "\n" + cell
					local[ci][block] = &joined
				}
			}
		}

		for ci, class := range classes {
			entries[class] = local[ci]
		}
	}
	return &model.Schedule{IssueDate: issueDate, Entries: entries}
}
