package tables

import "errors"

// Landmark strings baked into the producer's template. A template change
// invalidates extraction.
const (
	headerLandmark = "Block"
	bottomLandmark = "15:15"
)

var (
	// ErrRegionCount reports differing counts of top and bottom landmarks
	// on one page.
	ErrRegionCount = errors.New("tables: region landmark counts differ")

	// ErrRegionBound reports a bottom landmark with no horizontal rule
	// below it.
	ErrRegionBound = errors.New("tables: no horizontal rule below bottom landmark")

	// ErrRegionHeader reports a region without exactly one header landmark.
	ErrRegionHeader = errors.New("tables: region header landmark missing or ambiguous")

	// ErrColumnEmpty reports a column header with no attached rules.
	ErrColumnEmpty = errors.New("tables: column has no attached lines")

	// ErrSeparatorCount reports a column whose rules cannot be reduced to
	// the expected number of row separators.
	ErrSeparatorCount = errors.New("tables: row separator count wrong")

	// ErrHeaderCell reports a column whose topmost object is not a text.
	ErrHeaderCell = errors.New("tables: column does not start with a header text")
)

// Config holds the layout tolerances.
type Config struct {
	// RegionPadding widens a region's landmarks vertically so that text
	// painted on the landmark baseline is included (points).
	RegionPadding int64

	// HeaderHalfBand is the half-height of the band around the header
	// baseline in which column header texts are collected (points).
	HeaderHalfBand int64

	// SeparatorRank is the number of inter-line gaps treated as genuine
	// row separators; a column must reduce to SeparatorRank+1 rules.
	SeparatorRank int
}

// DefaultConfig returns the tolerances of the producer's layout.
func DefaultConfig() Config {
	return Config{
		RegionPadding:  4,
		HeaderHalfBand: 2,
		SeparatorRank:  6,
	}
}

// Detector reconstructs table regions, columns, and cells from page
// objects. The zero value is not usable; construct with NewDetector.
type Detector struct {
	config Config
}

// NewDetector returns a detector using the given tolerances.
func NewDetector(config Config) *Detector {
	return &Detector{config: config}
}
