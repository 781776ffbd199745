package debug

import (
	"testing"
)

func TestTreeWriter_Empty(t *testing.T) {
	tw := NewTreeWriter()
	if tw.String() != "" {
		t.Errorf("String() = %q, want empty", tw.String())
	}
}

func TestTreeWriter_Line(t *testing.T) {
	tests := []struct {
		name   string
		depth  int
		format string
		args   []any
		want   string
	}{
		{"no depth", 0, "test", nil, "test\n"},
		{"depth 1", 1, "indented", nil, "  indented\n"},
		{"depth 2", 2, "double indent", nil, "    double indent\n"},
		{"with formatting", 1, "combine %q", []any{">"}, "  combine \">\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.Line(tt.depth, tt.format, tt.args...)
			if got := tw.String(); got != tt.want {
				t.Errorf("Line() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_Pair(t *testing.T) {
	tests := []struct {
		name  string
		depth int
		label string
		value string
		want  string
	}{
		{"empty value", 0, "class", "", "class <empty>\n"},
		{"plain", 0, "type", "div", "type \"div\"\n"},
		{"nested", 2, "id", "main", "    id \"main\"\n"},
		{"quotes escaped", 1, "attr", `href$=".png"`, "  attr \"href$=\\\".png\\\"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.Pair(tt.depth, tt.label, tt.value)
			if got := tw.String(); got != tt.want {
				t.Errorf("Pair() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_Accumulates(t *testing.T) {
	tw := NewTreeWriter()
	tw.Line(0, "root")
	tw.Pair(1, "type", "a")
	tw.Line(1, "leaf")

	want := "root\n  type \"a\"\n  leaf\n"
	if got := tw.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
