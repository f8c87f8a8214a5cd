package model

// Point is a position in PDF user space. Coordinates are truncated to
// integers when page objects are read; y increases upward.
type Point struct {
	X, Y int64
}

// Line is a straight segment between two points. Only axis-aligned
// segments occur in well-formed input; diagonals are rejected upstream.
type Line struct {
	Start Point
	End   Point
}

// IsHorizontal reports whether both endpoints share a y coordinate.
func (l Line) IsHorizontal() bool {
	return l.Start.Y == l.End.Y
}

// IsVertical reports whether both endpoints share an x coordinate.
func (l Line) IsVertical() bool {
	return l.Start.X == l.End.X
}

// Text is a decoded show-text run placed at its baseline origin.
type Text struct {
	Value    string
	Position Point
}

// PageObject is either a Line or a Text. The variant is closed; consumers
// switch on the concrete type.
type PageObject interface {
	pageObject()
}

func (Line) pageObject() {}
func (Text) pageObject() {}
