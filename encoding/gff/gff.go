// Package gff contains a reader and writer for the GFF-style annotation
// files exchanged by the base-modification pipeline.  Files are line
// oriented: marker-prefixed metadata lines ("##field value") interleaved
// with tab-delimited feature lines.  For example:
//
// ##source GffWriter
// ##sequence-header ref0001 chr1
// ref0001	.	region	1	100	0.00	+	.	cov=5,10,15
//
// A feature line has nine columns: seqid, source, type, start, end, score,
// strand, phase and a ';'-joined list of key=value attributes.  Start and
// end are 1-based and the interval is closed.  Score, strand and phase are
// kept as raw column text so that records round-trip unchanged.
package gff

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const numColumns = 9

// Attr is a single key=value pair from the attribute column of a feature
// line.
type Attr struct {
	Key   string
	Value string
}

// Record is one parsed feature line.  Attrs preserves the attribute order
// of the input.
type Record struct {
	Seqid  string
	Source string
	Type   string
	Start  int
	End    int
	Score  string
	Strand string
	Phase  string
	Attrs  []Attr
}

// Attr returns the value of the named attribute.
func (r *Record) Attr(key string) (string, bool) {
	for _, a := range r.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr replaces the named attribute in place, or appends it if absent.
func (r *Record) SetAttr(key, value string) {
	for i := range r.Attrs {
		if r.Attrs[i].Key == key {
			r.Attrs[i].Value = value
			return
		}
	}
	r.Attrs = append(r.Attrs, Attr{Key: key, Value: value})
}

// ParseRecord parses one tab-delimited feature line.
func ParseRecord(line string) (Record, error) {
	cols := strings.Split(line, "\t")
	if len(cols) != numColumns {
		return Record{}, errors.Errorf("gff: %d columns in feature line %q, want %d", len(cols), line, numColumns)
	}
	start, err := strconv.Atoi(cols[3])
	if err != nil {
		return Record{}, errors.Wrapf(err, "gff: bad start column in feature line %q", line)
	}
	end, err := strconv.Atoi(cols[4])
	if err != nil {
		return Record{}, errors.Wrapf(err, "gff: bad end column in feature line %q", line)
	}
	rec := Record{
		Seqid:  cols[0],
		Source: cols[1],
		Type:   cols[2],
		Start:  start,
		End:    end,
		Score:  cols[5],
		Strand: cols[6],
		Phase:  cols[7],
	}
	if attrs := cols[8]; attrs != "." && attrs != "" {
		for _, field := range strings.Split(attrs, ";") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			kv := strings.SplitN(field, "=", 2)
			if len(kv) != 2 {
				return Record{}, errors.Errorf("gff: bad attribute %q in feature line %q", field, line)
			}
			rec.Attrs = append(rec.Attrs, Attr{Key: kv[0], Value: kv[1]})
		}
	}
	return rec, nil
}

func formatAttrs(attrs []Attr) string {
	if len(attrs) == 0 {
		return "."
	}
	var sb strings.Builder
	for i, a := range attrs {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(a.Key)
		sb.WriteByte('=')
		sb.WriteString(a.Value)
	}
	return sb.String()
}
