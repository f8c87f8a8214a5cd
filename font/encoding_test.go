package font

import "testing"

func TestWinAnsiDecode(t *testing.T) {
	tests := []struct {
		code byte
		want rune
	}{
		{0x41, 'A'},
		{0x7A, 'z'},
		{0x80, '€'},
		{0x91, '‘'},
		{0x92, '’'},
		{0x96, '–'},
		{0xDF, 'ß'},
		{0xE4, 'ä'},
		{0xE9, 'é'},
		{0xFC, 'ü'},
	}
	for _, tt := range tests {
		if got := WinAnsiEncoding.Decode(tt.code); got != tt.want {
			t.Errorf("Decode(0x%02X) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestDecodeString(t *testing.T) {
	got := WinAnsiEncoding.DecodeString([]byte{'M', 0xFC, 'l', 'l', 'e', 'r'})
	if got != "Müller" {
		t.Errorf("DecodeString = %q, want %q", got, "Müller")
	}
}

func TestGetEncoding(t *testing.T) {
	tests := []struct {
		name string
		want *Encoding
	}{
		{"WinAnsiEncoding", WinAnsiEncoding},
		{"MacRomanEncoding", MacRomanEncoding},
		{"ISOLatin1Encoding", ISOLatin1Encoding},
		{"SomethingElse", WinAnsiEncoding},
		{"", WinAnsiEncoding},
	}
	for _, tt := range tests {
		if got := GetEncoding(tt.name); got != tt.want {
			t.Errorf("GetEncoding(%q) = %s, want %s", tt.name, got.Name(), tt.want.Name())
		}
	}
}

func TestMacRomanDecode(t *testing.T) {
	if got := MacRomanEncoding.Decode(0x8A); got != 'ä' {
		t.Errorf("MacRoman Decode(0x8A) = %q, want ä", got)
	}
}
