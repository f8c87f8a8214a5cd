// Package objects turns content stream operations into geometric page
// objects. Only two operator idioms matter: Td followed by Tj places a
// decoded text run, m followed by l draws one straight segment. Everything
// else in the stream is ignored.
package objects

import (
	"errors"
	"fmt"

	"github.com/tsawler/subplan/contentstream"
	"github.com/tsawler/subplan/font"
	"github.com/tsawler/subplan/model"
)

var (
	// ErrOperatorSequence reports a payload operator without its position
	// operator immediately before it (Tj without Td, l without m).
	ErrOperatorSequence = errors.New("objects: unexpected operator sequence")

	// ErrDiagonalLine reports an m/l pair that is neither horizontal nor
	// vertical. The producer's tables are ruled with axis-aligned segments
	// only, so a diagonal means the layout is not one we understand.
	ErrDiagonalLine = errors.New("objects: diagonal line segment")
)

// Extractor reads page objects out of parsed content streams.
type Extractor struct {
	encoding *font.Encoding
}

// NewExtractor returns an extractor decoding text operands under the named
// 8-bit encoding. The producer's documents use "WinAnsiEncoding".
func NewExtractor(encodingName string) *Extractor {
	return &Extractor{encoding: font.GetEncoding(encodingName)}
}

// FromOperations scans one stream's operations in order and collects the
// deduplicated set of lines and texts. Operand coordinates are truncated
// toward zero; downstream geometry is tolerance based and does not need
// sub-pixel precision.
func (e *Extractor) FromOperations(ops []contentstream.Operation) (*model.ObjectSet, error) {
	set := model.NewObjectSet()
	if err := e.appendOperations(set, ops); err != nil {
		return nil, err
	}
	return set, nil
}

// FromStreams collects the objects of several streams into one set, in
// stream order.
func (e *Extractor) FromStreams(streams [][]byte) (*model.ObjectSet, error) {
	set := model.NewObjectSet()
	for _, data := range streams {
		ops, err := contentstream.NewParser(data).Parse()
		if err != nil {
			return nil, err
		}
		if err := e.appendOperations(set, ops); err != nil {
			return nil, err
		}
	}
	return set, nil
}

func (e *Extractor) appendOperations(set *model.ObjectSet, ops []contentstream.Operation) error {
	for i, op := range ops {
		switch op.Operator {
		case "Tj":
			if i == 0 || ops[i-1].Operator != "Td" {
				return fmt.Errorf("%w: Tj at index %d not preceded by Td", ErrOperatorSequence, i)
			}
			pos, err := operandPoint(ops[i-1])
			if err != nil {
				return err
			}
			raw, ok := op.Text(0)
			if !ok {
				return fmt.Errorf("%w: Tj at index %d has no string operand", ErrOperatorSequence, i)
			}
			set.Insert(model.Text{
				Value:    e.encoding.DecodeString(raw),
				Position: pos,
			})

		case "l":
			if i == 0 || ops[i-1].Operator != "m" {
				return fmt.Errorf("%w: l at index %d not preceded by m", ErrOperatorSequence, i)
			}
			start, err := operandPoint(ops[i-1])
			if err != nil {
				return err
			}
			end, err := operandPoint(op)
			if err != nil {
				return err
			}
			line := model.Line{Start: start, End: end}
			if !line.IsHorizontal() && !line.IsVertical() {
				return fmt.Errorf("%w: (%d,%d)-(%d,%d)", ErrDiagonalLine,
					start.X, start.Y, end.X, end.Y)
			}
			set.Insert(line)
		}
	}
	return nil
}

// operandPoint reads the two numeric operands of a position operator,
// truncating toward zero.
func operandPoint(op contentstream.Operation) (model.Point, error) {
	x, okX := op.Number(0)
	y, okY := op.Number(1)
	if !okX || !okY {
		return model.Point{}, fmt.Errorf("%w: %s needs two numeric operands, got %d",
			ErrOperatorSequence, op.Operator, len(op.Operands))
	}
	return model.Point{X: int64(x), Y: int64(y)}, nil
}
