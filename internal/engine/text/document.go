// Package text provides the immutable content blob displayed by the editor.
//
// A Document is built once from a string, a reader or a file and never
// changes afterwards. The constructor scans the text a single time and records
// the byte span and rune length of every line, so per-frame projection does not
// re-split the content. Loading new content means building a new Document,
// which is also what invalidates the line table.
//
// Lines are separated by '\n'. A '\r' immediately before the '\n' belongs to the
// separator, and a separator at the very end of the text does not start an
// extra empty line.
package text

import (
	"fmt"
	"io"
	"iter"
	"os"
	"unicode/utf8"
)

// LineEnding identifies the dominant line separator of a document.
type LineEnding int

const (
	// LineEndingLF is Unix-style "\n".
	LineEndingLF LineEnding = iota
	// LineEndingCRLF is Windows-style "\r\n".
	LineEndingCRLF
)

// String returns a display name for the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingCRLF:
		return "CRLF"
	default:
		return "LF"
	}
}

// span locates one line inside the document text.
type span struct {
	start int // byte offset of the first byte of the line
	end   int // byte offset one past the last content byte (separator excluded)
	runes int // number of runes between start and end
}

// Document is an immutable block of text split into lines.
type Document struct {
	path       string
	text       string
	lines      []span
	lineEnding LineEnding
}

// New creates a document from an in-memory string.
func New(s string) *Document {
	return newDocument("", s)
}

// Read creates a document from everything readable from r.
func Read(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading content: %w", err)
	}
	return newDocument("", string(data)), nil
}

// ReadFile creates a document from the file at path.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return newDocument(path, string(data)), nil
}

func newDocument(path, s string) *Document {
	d := &Document{path: path, text: s}
	d.index()
	return d
}

// index records the span of every line.
func (d *Document) index() {
	var crlf, lf int
	start := 0
	for i := 0; i < len(d.text); i++ {
		if d.text[i] != '\n' {
			continue
		}
		end := i
		if end > start && d.text[end-1] == '\r' {
			end--
			crlf++
		} else {
			lf++
		}
		d.lines = append(d.lines, d.makeSpan(start, end))
		start = i + 1
	}
	if start < len(d.text) {
		d.lines = append(d.lines, d.makeSpan(start, len(d.text)))
	}
	if crlf > lf {
		d.lineEnding = LineEndingCRLF
	}
}

func (d *Document) makeSpan(start, end int) span {
	return span{
		start: start,
		end:   end,
		runes: utf8.RuneCountInString(d.text[start:end]),
	}
}

// Path returns the file the document was read from, or "" for in-memory text.
func (d *Document) Path() string {
	return d.path
}

// LineEnding returns the dominant line separator.
func (d *Document) LineEnding() LineEnding {
	return d.lineEnding
}

// LineCount returns the number of lines. Empty text has no lines.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// Line returns the content of line ix without its separator.
func (d *Document) Line(ix int) (string, bool) {
	if ix < 0 || ix >= len(d.lines) {
		return "", false
	}
	s := d.lines[ix]
	return d.text[s.start:s.end], true
}

// LineLen returns the length of line ix in runes, or 0 if ix is out of range.
func (d *Document) LineLen(ix int) int {
	if ix < 0 || ix >= len(d.lines) {
		return 0
	}
	return d.lines[ix].runes
}

// Lines iterates over the lines in content order.
func (d *Document) Lines() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		for i, s := range d.lines {
			if !yield(i, d.text[s.start:s.end]) {
				return
			}
		}
	}
}
