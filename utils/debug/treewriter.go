package debug

import (
	"fmt"
	"strconv"
	"strings"
)

// TreeWriter accumulates an indented text dump, two spaces per level.
type TreeWriter struct {
	w      *strings.Builder
	indent string
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w:      &strings.Builder{},
		indent: "  ",
	}
}

func (tw *TreeWriter) String() string {
	return tw.w.String()
}

func (tw *TreeWriter) pad(depth int) {
	for range depth {
		tw.w.WriteString(tw.indent)
	}
}

// Line writes formatted text at the given depth.
func (tw *TreeWriter) Line(depth int, format string, args ...any) {
	tw.pad(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// Pair writes "label value" with the value quoted. Empty values are
// written as "label <empty>".
func (tw *TreeWriter) Pair(depth int, label, value string) {
	tw.pad(depth)
	tw.w.WriteString(label)
	tw.w.WriteByte(' ')
	tw.w.WriteString(quote(value))
	tw.w.WriteByte('\n')
}

func quote(raw string) string {
	if raw == "" {
		return "<empty>"
	}
	return strconv.Quote(raw)
}
