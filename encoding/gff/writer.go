package gff

import (
	"io"
	"strconv"

	"github.com/grailbio/base/tsv"
)

// Writer writes GFF lines.  Feature columns go through a tsv.Writer so the
// output layout matches the other tab-delimited writers in this repository.
type Writer struct {
	w *tsv.Writer
}

// NewWriter returns a Writer that writes to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: tsv.NewWriter(w)}
}

// WriteComment writes a marker-prefixed line as-is.
func (w *Writer) WriteComment(raw string) error {
	w.w.WriteString(raw)
	return w.w.EndLine()
}

// WriteMeta writes a "##field value" metadata line.
func (w *Writer) WriteMeta(field, value string) error {
	w.w.WriteString("##" + field + " " + value)
	return w.w.EndLine()
}

// WriteRecord writes the nine feature columns of rec.
func (w *Writer) WriteRecord(rec *Record) error {
	w.w.WriteString(rec.Seqid)
	w.w.WriteString(rec.Source)
	w.w.WriteString(rec.Type)
	w.w.WriteString(strconv.Itoa(rec.Start))
	w.w.WriteString(strconv.Itoa(rec.End))
	w.w.WriteString(rec.Score)
	w.w.WriteString(rec.Strand)
	w.w.WriteString(rec.Phase)
	w.w.WriteString(formatAttrs(rec.Attrs))
	return w.w.EndLine()
}

// Flush flushes buffered output.
func (w *Writer) Flush() error { return w.w.Flush() }
