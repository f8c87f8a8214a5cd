package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/tsawler/subplan/model"
)

func strp(s string) *string { return &s }

func emptyCells() [][]string {
	return make([][]string, model.BlockCount+1)
}

func TestAssembleSingleColumn(t *testing.T) {
	cells := emptyCells()
	cells[0] = []string{"7a"}
	cells[1] = []string{"Math Mr.X", "Room 12"}
	cells[4] = []string{"Bio"}

	a := NewAssembler()
	if err := a.AddColumn(cells); err != nil {
		t.Fatalf("AddColumn error: %v", err)
	}
	s := a.Build(1000)

	if s.IssueDate != 1000 {
		t.Errorf("IssueDate = %d, want 1000", s.IssueDate)
	}
	entry, ok := s.Entries["7a"]
	if !ok {
		t.Fatal("class 7a missing")
	}
	if entry[0] == nil || *entry[0] != "Math Mr.X\nRoom 12" {
		t.Errorf("block 1 = %v, want lines joined with newline", entry[0])
	}
	if entry[3] == nil || *entry[3] != "Bio" {
		t.Errorf("block 4 = %v, want Bio", entry[3])
	}
	for _, i := range []int{1, 2, 4, 5} {
		if entry[i] != nil {
			t.Errorf("block %d = %q, want nil", i+1, *entry[i])
		}
	}
}

func TestAssembleDuplicateClassLastWins(t *testing.T) {
	first := emptyCells()
	first[0] = []string{"7a"}
	first[1] = []string{"old"}
	second := emptyCells()
	second[0] = []string{"7a"}
	second[2] = []string{"new"}

	a := NewAssembler()
	if err := a.AddColumn(first); err != nil {
		t.Fatal(err)
	}
	if err := a.AddColumn(second); err != nil {
		t.Fatal(err)
	}

	entry := a.Build(0).Entries["7a"]
	if entry[0] != nil {
		t.Errorf("block 1 = %q, want nil from the later column", *entry[0])
	}
	if entry[1] == nil || *entry[1] != "new" {
		t.Errorf("block 2 = %v, want new", entry[1])
	}
	if dups := a.Duplicates(); len(dups) != 1 || dups[0] != "7a" {
		t.Errorf("Duplicates() = %v, want [7a]", dups)
	}
}

func TestAssembleRejectsMalformedCells(t *testing.T) {
	a := NewAssembler()
	if err := a.AddColumn(make([][]string, 3)); err == nil {
		t.Error("expected error for wrong cell count")
	}
	if err := a.AddColumn(emptyCells()); err == nil {
		t.Error("expected error for empty header cell")
	}
}

func TestExtractDate(t *testing.T) {
	set := model.NewObjectSet()
	set.Insert(model.Text{Value: "Vertretungsplan", Position: model.Point{X: 10, Y: 800}})
	set.Insert(model.Text{Value: "Datum: Montag, 11.04.2016", Position: model.Point{X: 10, Y: 780}})

	got, err := ExtractDate(set)
	if err != nil {
		t.Fatalf("ExtractDate error: %v", err)
	}
	want := time.Date(2016, time.April, 11, 0, 0, 0, 0, time.UTC).UnixMilli()
	if got != want {
		t.Errorf("date = %d, want %d", got, want)
	}
}

func TestExtractDateUsesFirstLandmark(t *testing.T) {
	set := model.NewObjectSet()
	set.Insert(model.Text{Value: "Datum: Montag, 11.04.2016", Position: model.Point{X: 10, Y: 780}})
	set.Insert(model.Text{Value: "Datum: Dienstag, 12.04.2016", Position: model.Point{X: 10, Y: 400}})

	got, err := ExtractDate(set)
	if err != nil {
		t.Fatalf("ExtractDate error: %v", err)
	}
	want := time.Date(2016, time.April, 11, 0, 0, 0, 0, time.UTC).UnixMilli()
	if got != want {
		t.Errorf("date = %d, want the first landmark's date %d", got, want)
	}
}

func TestExtractDateErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want error
	}{
		{"no landmark", "Vertretungsplan", ErrDateNotFound},
		{"bad token", "Datum: Montag, morgen", ErrDateParse},
		{"not a full date", "Datum: 11.04.", ErrDateParse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := model.NewObjectSet()
			set.Insert(model.Text{Value: tt.text, Position: model.Point{X: 10, Y: 780}})
			if _, err := ExtractDate(set); !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestExtractDateIdempotent(t *testing.T) {
	set := model.NewObjectSet()
	set.Insert(model.Text{Value: "Datum: Montag, 11.04.2016", Position: model.Point{X: 10, Y: 780}})
	a, err1 := ExtractDate(set)
	b, err2 := ExtractDate(set)
	if err1 != nil || err2 != nil || a != b {
		t.Errorf("repeated calls differ: %d/%v vs %d/%v", a, err1, b, err2)
	}
}

func TestFromRows(t *testing.T) {
	grid := [][]string{
		{"Block", "7a", "7b"},
		{"Block 1", "Math Mr.X", ""},
		{"Block 2", "", "Bio"},
		{"Block 3", "", ""},
		{"Block 4", "", ""},
		{"Block 5", "Eng", ""},
		{"- 16:45", "Sport", ""},
	}
	s := FromRows([][][]string{grid}, 42)

	if s.IssueDate != 42 {
		t.Errorf("IssueDate = %d, want 42", s.IssueDate)
	}
	a := s.Entries["7a"]
	if a[0] == nil || *a[0] != "Math Mr.X" {
		t.Errorf("7a block 1 = %v, want Math Mr.X", a[0])
	}
	if a[4] == nil || *a[4] != "Eng\nSport" {
		t.Errorf("7a block 5 = %v, want continuation appended", a[4])
	}
	b := s.Entries["7b"]
	if b[1] == nil || *b[1] != "Bio" {
		t.Errorf("7b block 2 = %v, want Bio", b[1])
	}
	if b[0] != nil {
		t.Errorf("7b block 1 = %q, want nil", *b[0])
	}
}

func TestFromRowsContinuationOfFirstBlock(t *testing.T) {
	grid := [][]string{
		{"Block", "8a"},
		{"Block 1", "first"},
		{"-", "second"},
		{"Block 2", "next"},
	}
	s := FromRows([][][]string{grid}, 0)
	e := s.Entries["8a"]
	if e[0] == nil || *e[0] != "first\nsecond" {
		t.Errorf("block 1 = %v, want first\\nsecond", e[0])
	}
	if e[1] == nil || *e[1] != "next" {
		t.Errorf("block 2 = %v, want next", e[1])
	}
}

func TestFromRowsLastGridWins(t *testing.T) {
	first := [][]string{
		{"Block", "7a"},
		{"Block 1", "old"},
	}
	second := [][]string{
		{"Block", "7a"},
		{"Block 1", ""},
		{"Block 2", "new"},
	}
	s := FromRows([][][]string{first, second}, 0)
	e := s.Entries["7a"]
	if e[0] != nil {
		t.Errorf("block 1 = %q, want nil from the later grid", *e[0])
	}
	if e[1] == nil || *e[1] != "new" {
		t.Errorf("block 2 = %v, want new", e[1])
	}
}
