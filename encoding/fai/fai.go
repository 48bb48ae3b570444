// Package fai parses FASTA .fai index files.  See
// http://www.htslib.org/doc/faidx.html.  An index line is
// "<name>\t<length>\t<byte offset>\t<bases per line>\t<bytes per line>",
// for example: "chr3\t12345\t9000\t80\t81".
//
// Only the name and length columns matter here; callers use the index to
// check coordinates against reference bounds without reading any sequence
// data.
package fai

import (
	"io"

	"github.com/grailbio/base/tsv"
	"github.com/pkg/errors"
)

// Index holds the per-sequence lengths from a .fai file.
type Index struct {
	lengths  map[string]uint64
	seqNames []string
}

type indexRow struct {
	Name      string
	Length    int
	Offset    int
	LineBase  int
	LineWidth int
}

// New parses .fai data from r.
func New(r io.Reader) (*Index, error) {
	idx := &Index{lengths: make(map[string]uint64)}
	reader := tsv.NewReader(r)
	var row indexRow
	for {
		if err := reader.Read(&row); err != nil {
			if err == io.EOF {
				break
			}
			return nil, errors.Wrap(err, "fai: couldn't read index")
		}
		if row.Length < 0 {
			return nil, errors.Errorf("fai: negative length for sequence %s", row.Name)
		}
		if _, found := idx.lengths[row.Name]; !found {
			idx.seqNames = append(idx.seqNames, row.Name)
		}
		idx.lengths[row.Name] = uint64(row.Length)
	}
	return idx, nil
}

// Len returns the length of the named sequence.
func (x *Index) Len(seqName string) (uint64, bool) {
	n, found := x.lengths[seqName]
	return n, found
}

// SeqNames returns the sequence names in the order of appearance in the
// index.
func (x *Index) SeqNames() []string { return x.seqNames }
