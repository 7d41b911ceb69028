package printer

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ReceiptWidth is the column count of the register's receipt layout.
const ReceiptWidth = 42

// Document builds a fixed-width monospace text document line by line.
// Widths are measured in runes so multi-byte symbols occupy one column.
type Document struct {
	lines []string
	width int
}

// NewDocument creates a new document with the given character width.
func NewDocument(charWidth int) *Document {
	if charWidth <= 0 {
		charWidth = ReceiptWidth
	}
	return &Document{width: charWidth}
}

// Width returns the document's column count.
func (d *Document) Width() int {
	return d.width
}

// Text appends a line as-is.
func (d *Document) Text(s string) *Document {
	d.lines = append(d.lines, s)
	return d
}

// TextF appends a formatted line.
func (d *Document) TextF(format string, args ...interface{}) *Document {
	return d.Text(fmt.Sprintf(format, args...))
}

// Blank appends an empty line.
func (d *Document) Blank() *Document {
	return d.Text("")
}

// Center appends s centered in the document width. An odd leftover space
// goes to the right, and lines wider than the document are kept whole.
func (d *Document) Center(s string) *Document {
	gap := d.width - utf8.RuneCountInString(s)
	if gap <= 0 {
		return d.Text(s)
	}
	left := gap / 2
	return d.Text(strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left))
}

// Separator appends a full-width line of char.
func (d *Document) Separator(char rune) *Document {
	return d.Text(strings.Repeat(string(char), d.width))
}

// KeyValue appends key left-aligned and value right-aligned on one line.
// When they do not fit the two are joined with no gap.
func (d *Document) KeyValue(key, value string) *Document {
	gap := d.width - utf8.RuneCountInString(key) - utf8.RuneCountInString(value)
	if gap < 0 {
		gap = 0
	}
	return d.Text(key + strings.Repeat(" ", gap) + value)
}

// Lines returns a copy of the document's lines.
func (d *Document) Lines() []string {
	out := make([]string, len(d.lines))
	copy(out, d.lines)
	return out
}

// String joins the lines with newlines, without a trailing newline.
func (d *Document) String() string {
	return strings.Join(d.lines, "\n")
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
