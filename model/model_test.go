package model

import "testing"

func TestLineOrientation(t *testing.T) {
	tests := []struct {
		name       string
		line       Line
		horizontal bool
		vertical   bool
	}{
		{"horizontal", Line{Point{10, 50}, Point{200, 50}}, true, false},
		{"vertical", Line{Point{10, 50}, Point{10, 200}}, false, true},
		{"point", Line{Point{5, 5}, Point{5, 5}}, true, true},
		{"diagonal", Line{Point{0, 0}, Point{10, 10}}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.line.IsHorizontal(); got != tt.horizontal {
				t.Errorf("IsHorizontal() = %v, want %v", got, tt.horizontal)
			}
			if got := tt.line.IsVertical(); got != tt.vertical {
				t.Errorf("IsVertical() = %v, want %v", got, tt.vertical)
			}
		})
	}
}

func TestObjectSetDeduplicates(t *testing.T) {
	s := NewObjectSet()

	if !s.Insert(Text{"Block", Point{50, 700}}) {
		t.Error("first insert reported duplicate")
	}
	if s.Insert(Text{"Block", Point{50, 700}}) {
		t.Error("identical text inserted twice")
	}
	if !s.Insert(Text{"Block", Point{50, 300}}) {
		t.Error("same value at new position rejected")
	}

	line := Line{Point{49, 694}, Point{549, 694}}
	if !s.Insert(line) {
		t.Error("line insert failed")
	}
	if s.Insert(line) {
		t.Error("identical line inserted twice")
	}

	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
	if !s.Contains(line) {
		t.Error("Contains(line) = false")
	}
}

func TestObjectSetOrderAndViews(t *testing.T) {
	s := NewObjectSet()
	s.Insert(Text{"a", Point{1, 1}})
	s.Insert(Line{Point{0, 0}, Point{9, 0}})
	s.Insert(Text{"b", Point{2, 2}})
	s.Insert(Line{Point{0, 5}, Point{9, 5}})

	objs := s.Objects()
	if len(objs) != 4 {
		t.Fatalf("Objects() len = %d, want 4", len(objs))
	}
	if _, ok := objs[0].(Text); !ok {
		t.Errorf("objs[0] = %T, want Text first per insertion order", objs[0])
	}

	texts := s.Texts()
	if len(texts) != 2 || texts[0].Value != "a" || texts[1].Value != "b" {
		t.Errorf("Texts() = %v, want a then b", texts)
	}
	lines := s.Lines()
	if len(lines) != 2 || lines[0].Start.Y != 0 || lines[1].Start.Y != 5 {
		t.Errorf("Lines() = %v, want y 0 then y 5", lines)
	}
}

func TestObjectSetMerge(t *testing.T) {
	a := NewObjectSet()
	a.Insert(Text{"x", Point{0, 0}})

	b := NewObjectSet()
	b.Insert(Text{"x", Point{0, 0}})
	b.Insert(Text{"y", Point{1, 1}})

	a.Merge(b)
	if a.Len() != 2 {
		t.Errorf("merged Len() = %d, want 2", a.Len())
	}
	if texts := a.Texts(); texts[0].Value != "x" {
		t.Errorf("merge reordered existing objects: %v", texts)
	}
}
