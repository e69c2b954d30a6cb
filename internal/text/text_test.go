package text

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"  hello   world ", "hello world"},
		{"line one\nline two", "line one line two"},
		{"\t\t", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestJoin(t *testing.T) {
	tests := []struct {
		a, b, want string
	}{
		{"Hello", "world", "Hello world"},
		{"", "world", "world"},
		{"Hello ", "", "Hello"},
	}
	for _, tt := range tests {
		if got := Join(tt.a, tt.b); got != tt.want {
			t.Errorf("Join(%q, %q) = %q, want %q", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestHasBracketed(t *testing.T) {
	if !HasBracketed("[music playing]") {
		t.Error("expected bracketed match")
	}
	if !HasBracketed("He said [laughs] okay") {
		t.Error("expected inline bracketed match")
	}
	if HasBracketed("no brackets (here)") {
		t.Error("parentheses are not brackets")
	}
}

func TestIsLatinOnly(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"Hello, world!", true},
		{"It's 5 o'clock.", true},
		{"Привет мир", false},
		{"你好", false},
		{"Hello 你好", false},
		{"123 456", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsLatinOnly(tt.in); got != tt.want {
			t.Errorf("IsLatinOnly(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSplitAtRatio(t *testing.T) {
	tests := []struct {
		name        string
		in          string
		ratio       float64
		first, rest string
	}{
		{"word boundary", "one two three four", 0.5, "one two", "three four"},
		{"leading ratio", "one two", 0, "", "one two"},
		{"trailing ratio", "one two", 1, "one two", ""},
		{"no spaces", "abcdef", 0.5, "abc", "def"},
		{"single rune", "a", 0.5, "a", ""},
		{"empty", "", 0.5, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, rest := SplitAtRatio(tt.in, tt.ratio)
			if first != tt.first || rest != tt.rest {
				t.Errorf("SplitAtRatio(%q, %v) = (%q, %q), want (%q, %q)",
					tt.in, tt.ratio, first, rest, tt.first, tt.rest)
			}
		})
	}
}
