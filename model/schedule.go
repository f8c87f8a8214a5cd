package model

// BlockCount is the number of lesson blocks in a school day.
const BlockCount = 6

// Entry holds the substitution text per lesson block for one class. Slot i
// is Block i+1; nil means no substitution in that block. Multi-line cell
// content is joined with "\n".
type Entry [BlockCount]*string

// Schedule is the extraction result for one document: the issue date as
// epoch milliseconds at UTC midnight, and the per-class entries.
type Schedule struct {
	IssueDate int64
	Entries   map[string]Entry
}

// Classes returns the class names present in the schedule, in no
// particular order.
func (s *Schedule) Classes() []string {
	names := make([]string, 0, len(s.Entries))
	for name := range s.Entries {
		names = append(names, name)
	}
	return names
}
