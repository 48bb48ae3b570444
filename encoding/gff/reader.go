package gff

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
)

const maxLineSize = 16 * 1024 * 1024

// LineKind distinguishes the two kinds of lines a GFF file carries.
type LineKind int

const (
	// Comment is a marker-prefixed metadata line.
	Comment LineKind = iota
	// Feature is a tab-delimited feature record.
	Feature
)

// Line is one scanned input line.
type Line struct {
	Kind LineKind
	// Raw is the line text with surrounding whitespace trimmed.
	Raw string
	// Field and Value are set for Comment lines: the marker runes are
	// stripped, the first space-delimited token is the field name and the
	// remainder is the value.
	Field string
	Value string
	// Rec is set for Feature lines.
	Rec Record
}

// Reader scans a GFF stream line by line.  Blank lines are skipped; a
// malformed feature line stops the scan with an error.
type Reader struct {
	scanner *bufio.Scanner
	line    Line
	nline   int
	err     error
}

// NewReader returns a Reader that scans r.
func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, maxLineSize)
	return &Reader{scanner: scanner}
}

// Scan advances the Reader to the next line.  It returns false at end of
// input or on the first error; Err distinguishes the two.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}
	for r.scanner.Scan() {
		r.nline++
		raw := strings.TrimSpace(r.scanner.Text())
		if raw == "" {
			continue
		}
		if raw[0] == '#' {
			stripped := strings.Replace(raw, "#", "", -1)
			line := Line{Kind: Comment, Raw: raw}
			if i := strings.IndexByte(stripped, ' '); i >= 0 {
				line.Field = stripped[:i]
				line.Value = stripped[i+1:]
			} else {
				line.Field = stripped
			}
			r.line = line
			return true
		}
		rec, err := ParseRecord(raw)
		if err != nil {
			r.err = errors.Wrapf(err, "line %d", r.nline)
			return false
		}
		r.line = Line{Kind: Feature, Raw: raw, Rec: rec}
		return true
	}
	r.err = r.scanner.Err()
	return false
}

// Line returns the line read by the last successful call to Scan.
func (r *Reader) Line() Line { return r.line }

// Err returns the first error encountered by Scan, if any.
func (r *Reader) Err() error { return r.err }
