// Package debug has helpers producing human readable dumps for debug reports.
package debug

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const indent = "  "

// TreeWriter accumulates indented text lines.
type TreeWriter struct {
	w *strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{w: &strings.Builder{}}
}

func (tw *TreeWriter) String() string {
	return tw.w.String()
}

func (tw *TreeWriter) pad(depth int) {
	tw.w.WriteString(strings.Repeat(indent, max(depth, 0)))
}

func (tw *TreeWriter) Line(depth int, format string, args ...any) {
	tw.pad(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// TextBlock writes label and quoted value, so line breaks inside value do not
// break the tree.
func (tw *TreeWriter) TextBlock(depth int, label, value string) {
	tw.pad(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value))
	tw.w.WriteByte('\n')
}

// Number writes label and value with up to three decimal places.
func (tw *TreeWriter) Number(depth int, label string, value float64) {
	tw.Line(depth, "%s: %s", label, strconv.FormatFloat(math.Round(value*1000)/1000, 'f', -1, 64))
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
