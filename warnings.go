package subplan

import (
	"fmt"
	"strings"
)

// Warning codes.
const (
	// WarnDuplicateClass marks a class name that appeared in more than one
	// column; the later column's entry replaced the earlier one.
	WarnDuplicateClass = "duplicate-class"

	// WarnColumnOverlap marks two columns on the same table whose
	// horizontal extents overlap, so texts may have attached to both.
	WarnColumnOverlap = "column-overlap"
)

// Warning reports a non-fatal irregularity observed during extraction.
type Warning struct {
	// Code identifies the kind of irregularity.
	Code string

	// Message describes the specific occurrence.
	Message string

	// Page is the 1-indexed page the irregularity was seen on, or 0 when
	// it spans pages.
	Page int
}

func (w Warning) String() string {
	if w.Page > 0 {
		return fmt.Sprintf("%s (page %d): %s", w.Code, w.Page, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}

// FormatWarnings joins warnings into a single human-readable string.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}
