package core

import (
	"testing"
)

func TestParseObjectScalars(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Object
	}{
		{"integer", "42", Int(42)},
		{"negative integer", "-17", Int(-17)},
		{"real", "3.14", Real(3.14)},
		{"negative real", "-0.5", Real(-0.5)},
		{"leading dot real", ".25", Real(0.25)},
		{"true", "true", Bool(true)},
		{"false", "false", Bool(false)},
		{"null", "null", Null{}},
		{"name", "/Type", Name("Type")},
		{"name with escape", "/A#20B", Name("A B")},
		{"literal string", "(hello)", String("hello")},
		{"nested parens", "(a(b)c)", String("a(b)c")},
		{"escapes", `(a\nb\(c\))`, String("a\nb(c)")},
		{"octal escape", `(\101)`, String("A")},
		{"hex string", "<48656C6C6F>", String("Hello")},
		{"hex string odd digits", "<486>", String("H`")},
		{"hex string whitespace", "<48 65>", String("He")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParser([]byte(tt.input))
			got, err := p.ParseObject()
			if err != nil {
				t.Fatalf("ParseObject(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseObject(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseIndirectRef(t *testing.T) {
	p := NewParser([]byte("12 0 R"))
	obj, err := p.ParseObject()
	if err != nil {
		t.Fatalf("ParseObject error: %v", err)
	}
	ref, ok := obj.(IndirectRef)
	if !ok {
		t.Fatalf("expected IndirectRef, got %T", obj)
	}
	if ref.Number != 12 || ref.Generation != 0 {
		t.Errorf("got %d %d R, want 12 0 R", ref.Number, ref.Generation)
	}
}

func TestTwoIntegersAreNotARef(t *testing.T) {
	// "1 2" inside an array must stay two integers even though a bare "R"
	// follows the array.
	p := NewParser([]byte("[1 2] R"))
	obj, err := p.ParseObject()
	if err != nil {
		t.Fatalf("ParseObject error: %v", err)
	}
	arr, ok := obj.(Array)
	if !ok {
		t.Fatalf("expected Array, got %T", obj)
	}
	if len(arr) != 2 || arr[0] != Int(1) || arr[1] != Int(2) {
		t.Errorf("got %v, want [1 2]", arr)
	}
}

func TestParseDict(t *testing.T) {
	p := NewParser([]byte("<< /Type /Page /Parent 2 0 R /Count 3 >>"))
	obj, err := p.ParseObject()
	if err != nil {
		t.Fatalf("ParseObject error: %v", err)
	}
	dict, ok := obj.(Dict)
	if !ok {
		t.Fatalf("expected Dict, got %T", obj)
	}
	if typ, _ := dict.GetName("Type"); typ != "Page" {
		t.Errorf("Type = %q, want Page", typ)
	}
	if ref, ok := dict.GetIndirectRef("Parent"); !ok || ref.Number != 2 {
		t.Errorf("Parent = %v, want 2 0 R", dict.Get("Parent"))
	}
	if count, _ := dict.GetInt("Count"); count != 3 {
		t.Errorf("Count = %d, want 3", count)
	}
}

func TestParseNestedStructures(t *testing.T) {
	p := NewParser([]byte("<< /Kids [3 0 R 4 0 R] /Box [0 0 595.5 842] >>"))
	obj, err := p.ParseObject()
	if err != nil {
		t.Fatalf("ParseObject error: %v", err)
	}
	dict := obj.(Dict)
	kids, ok := dict.GetArray("Kids")
	if !ok || len(kids) != 2 {
		t.Fatalf("Kids = %v, want two refs", dict.Get("Kids"))
	}
	box, _ := dict.GetArray("Box")
	if w, ok := Number(box.Get(2)); !ok || w != 595.5 {
		t.Errorf("Box[2] = %v, want 595.5", box.Get(2))
	}
}

func TestParseIndirectObject(t *testing.T) {
	input := "7 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n"
	p := NewParser([]byte(input))
	indObj, err := p.ParseIndirectObject()
	if err != nil {
		t.Fatalf("ParseIndirectObject error: %v", err)
	}
	if indObj.Ref.Number != 7 || indObj.Ref.Generation != 0 {
		t.Errorf("ref = %v, want 7 0 R", indObj.Ref)
	}
	if _, ok := indObj.Object.(Dict); !ok {
		t.Errorf("object is %T, want Dict", indObj.Object)
	}
}

func TestParseStreamObject(t *testing.T) {
	body := "BT /F1 12 Tf 50 700 Td (Hi) Tj ET"
	input := "4 0 obj\n<< /Length " + itoa(len(body)) + " >>\nstream\n" + body + "\nendstream\nendobj\n"
	p := NewParser([]byte(input))
	indObj, err := p.ParseIndirectObject()
	if err != nil {
		t.Fatalf("ParseIndirectObject error: %v", err)
	}
	stream, ok := indObj.Object.(*Stream)
	if !ok {
		t.Fatalf("object is %T, want *Stream", indObj.Object)
	}
	if string(stream.Data) != body {
		t.Errorf("stream data = %q, want %q", stream.Data, body)
	}
	decoded, err := stream.Decode()
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if string(decoded) != body {
		t.Errorf("decoded = %q, want %q", decoded, body)
	}
}

func TestParseObjectSkipsComments(t *testing.T) {
	p := NewParser([]byte("% a comment\n /Name"))
	obj, err := p.ParseObject()
	if err != nil {
		t.Fatalf("ParseObject error: %v", err)
	}
	if obj != Name("Name") {
		t.Errorf("got %v, want /Name", obj)
	}
}

func itoa(n int) string {
	return Int(n).String()
}
