package objects

import (
	"errors"
	"testing"

	"github.com/tsawler/subplan/contentstream"
	"github.com/tsawler/subplan/model"
)

func parse(t *testing.T, stream string) []contentstream.Operation {
	t.Helper()
	ops, err := contentstream.NewParser([]byte(stream)).Parse()
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", stream, err)
	}
	return ops
}

func TestTextPlacement(t *testing.T) {
	e := NewExtractor("WinAnsiEncoding")
	set, err := e.FromOperations(parse(t, "BT 50 700 Td (Block) Tj ET"))
	if err != nil {
		t.Fatalf("FromOperations error: %v", err)
	}
	texts := set.Texts()
	if len(texts) != 1 {
		t.Fatalf("got %d texts, want 1", len(texts))
	}
	want := model.Text{Value: "Block", Position: model.Point{X: 50, Y: 700}}
	if texts[0] != want {
		t.Errorf("text = %+v, want %+v", texts[0], want)
	}
}

func TestTextDecodedAsWinAnsi(t *testing.T) {
	e := NewExtractor("WinAnsiEncoding")
	// 0xFC is u-umlaut in Windows-1252, written as an octal escape.
	set, err := e.FromOperations(parse(t, `BT 10 20 Td (M\374ller) Tj ET`))
	if err != nil {
		t.Fatalf("FromOperations error: %v", err)
	}
	if got := set.Texts()[0].Value; got != "Müller" {
		t.Errorf("decoded text = %q, want Müller", got)
	}
}

func TestLineSegment(t *testing.T) {
	e := NewExtractor("WinAnsiEncoding")
	set, err := e.FromOperations(parse(t, "49 694.9 m 549.2 694.9 l S"))
	if err != nil {
		t.Fatalf("FromOperations error: %v", err)
	}
	lines := set.Lines()
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	want := model.Line{Start: model.Point{X: 49, Y: 694}, End: model.Point{X: 549, Y: 694}}
	if lines[0] != want {
		t.Errorf("line = %+v, want truncated %+v", lines[0], want)
	}
}

func TestNegativeCoordinatesTruncateTowardZero(t *testing.T) {
	e := NewExtractor("WinAnsiEncoding")
	set, err := e.FromOperations(parse(t, "-10.7 -0.9 m -10.7 50.9 l S"))
	if err != nil {
		t.Fatalf("FromOperations error: %v", err)
	}
	line := set.Lines()[0]
	if line.Start.X != -10 || line.Start.Y != 0 {
		t.Errorf("start = %+v, want (-10, 0)", line.Start)
	}
	if line.End.Y != 50 {
		t.Errorf("end.y = %d, want 50", line.End.Y)
	}
}

func TestShowTextWithoutPosition(t *testing.T) {
	e := NewExtractor("WinAnsiEncoding")
	tests := []struct {
		name   string
		stream string
	}{
		{"Tj first", "(x) Tj"},
		{"Tj after non-Td", "BT (x) Tj"},
		{"l first", "100 200 l"},
		{"l after non-m", "BT 100 200 l"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.FromOperations(parse(t, tt.stream))
			if !errors.Is(err, ErrOperatorSequence) {
				t.Errorf("error = %v, want ErrOperatorSequence", err)
			}
		})
	}
}

func TestDiagonalLineFatal(t *testing.T) {
	e := NewExtractor("WinAnsiEncoding")
	_, err := e.FromOperations(parse(t, "0 0 m 10 10 l S"))
	if !errors.Is(err, ErrDiagonalLine) {
		t.Errorf("error = %v, want ErrDiagonalLine", err)
	}
}

func TestOtherOperatorsIgnored(t *testing.T) {
	e := NewExtractor("WinAnsiEncoding")
	stream := "q 0.5 w /F1 12 Tf BT 10 20 Td (x) Tj ET 0 0 m 5 0 l S Q"
	set, err := e.FromOperations(parse(t, stream))
	if err != nil {
		t.Fatalf("FromOperations error: %v", err)
	}
	if set.Len() != 2 {
		t.Errorf("Len() = %d, want text plus line only", set.Len())
	}
}

func TestDuplicateObjectsCollapse(t *testing.T) {
	e := NewExtractor("WinAnsiEncoding")
	stream := "BT 10 20 Td (x) Tj 10 20 Td (x) Tj ET 0 0 m 5 0 l 0 0 m 5 0 l S"
	set, err := e.FromOperations(parse(t, stream))
	if err != nil {
		t.Fatalf("FromOperations error: %v", err)
	}
	if set.Len() != 2 {
		t.Errorf("Len() = %d, want 2 after deduplication", set.Len())
	}
}

func TestFromStreams(t *testing.T) {
	e := NewExtractor("WinAnsiEncoding")
	streams := [][]byte{
		[]byte("BT 10 20 Td (a) Tj ET"),
		[]byte("BT 30 40 Td (b) Tj ET"),
	}
	set, err := e.FromStreams(streams)
	if err != nil {
		t.Fatalf("FromStreams error: %v", err)
	}
	texts := set.Texts()
	if len(texts) != 2 || texts[0].Value != "a" || texts[1].Value != "b" {
		t.Errorf("texts = %v, want a then b in stream order", texts)
	}
}
