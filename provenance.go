package cstpack

import (
	"fmt"
	"strings"
)

// excerptLen bounds the source excerpt shown in diagnostics.
const excerptLen = 40

// Span locates a match in the original source. Start and End are byte
// offsets (End exclusive); Line and Column are 1-based and describe Start.
type Span struct {
	Start  int `json:"start" yaml:"start"`
	End    int `json:"end" yaml:"end"`
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

// Provenance is an immutable reference into the source text: where a node
// matched and the exact substring it matched.
type Provenance struct {
	Span Span
	Text string
}

// Trimmed returns the matched text without surrounding whitespace.
func (p Provenance) Trimmed() string { return strings.TrimSpace(p.Text) }

// String renders "At line:column, source code: excerpt".
func (p Provenance) String() string {
	return fmt.Sprintf("At %d:%d, source code: %s", p.Span.Line, p.Span.Column, excerpt(p.Text, excerptLen))
}

func excerpt(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%q..", string(r[:n]))
}
