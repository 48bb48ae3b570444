package gff_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/grailbio/basemod/encoding/gff"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

func TestParseRecord(t *testing.T) {
	tests := []struct {
		line    string
		want    gff.Record
		wantErr bool
	}{
		{
			line: "ref0001\t.\tregion\t1\t100\t0.00\t+\t.\tcov=5,10,15",
			want: gff.Record{
				Seqid: "ref0001", Source: ".", Type: "region",
				Start: 1, End: 100, Score: "0.00", Strand: "+", Phase: ".",
				Attrs: []gff.Attr{{Key: "cov", Value: "5,10,15"}},
			},
		},
		{
			line: "chr1\tkinModCall\tm6A\t100\t100\t31\t-\t.\tcoverage=49;context=AACCGG",
			want: gff.Record{
				Seqid: "chr1", Source: "kinModCall", Type: "m6A",
				Start: 100, End: 100, Score: "31", Strand: "-", Phase: ".",
				Attrs: []gff.Attr{
					{Key: "coverage", Value: "49"},
					{Key: "context", Value: "AACCGG"},
				},
			},
		},
		{
			// "." means no attributes.
			line: "chr1\t.\tregion\t5\t10\t.\t.\t.\t.",
			want: gff.Record{
				Seqid: "chr1", Source: ".", Type: "region",
				Start: 5, End: 10, Score: ".", Strand: ".", Phase: ".",
			},
		},
		{line: "chr1\t.\tregion\t1\t100", wantErr: true},                           // too few columns
		{line: "chr1\t.\tregion\tone\t100\t.\t+\t.\t.", wantErr: true},             // bad start
		{line: "chr1\t.\tregion\t1\thundred\t.\t+\t.\t.", wantErr: true},           // bad end
		{line: "chr1\t.\tregion\t1\t100\t.\t+\t.\tnoequalsign", wantErr: true},     // bad attribute
		{line: "chr1\t.\tregion\t1\t100\t.\t+\t.\tcov=3\textra", wantErr: true},    // too many columns
	}
	for _, tt := range tests {
		got, err := gff.ParseRecord(tt.line)
		if tt.wantErr {
			expect.NotNil(t, err, "line: %q", tt.line)
			continue
		}
		assert.NoError(t, err, "line: %q", tt.line)
		expect.EQ(t, got, tt.want, "line: %q", tt.line)
	}
}

func TestRecordAttrs(t *testing.T) {
	rec, err := gff.ParseRecord("chr1\t.\tregion\t1\t100\t0.00\t+\t.\tcov=1,2,3;gaps=0,0")
	assert.NoError(t, err)

	v, ok := rec.Attr("cov")
	expect.True(t, ok)
	expect.EQ(t, v, "1,2,3")
	_, ok = rec.Attr("modsfwd")
	expect.False(t, ok)

	// Appending preserves the existing attribute order.
	rec.SetAttr("modsfwd", "0,1,0,0")
	rec.SetAttr("modsrev", "0,0,0,0")
	expect.EQ(t, rec.Attrs, []gff.Attr{
		{Key: "cov", Value: "1,2,3"},
		{Key: "gaps", Value: "0,0"},
		{Key: "modsfwd", Value: "0,1,0,0"},
		{Key: "modsrev", Value: "0,0,0,0"},
	})

	// Replacing keeps the attribute in place.
	rec.SetAttr("gaps", "1,1")
	v, ok = rec.Attr("gaps")
	expect.True(t, ok)
	expect.EQ(t, v, "1,1")
	expect.EQ(t, len(rec.Attrs), 4)
}

func TestReader(t *testing.T) {
	input := "##source GffWriter\n" +
		"##sequence-header ref0001 chr1 mito\n" +
		"\n" +
		"#comment\n" +
		"ref0001\t.\tregion\t1\t100\t0.00\t+\t.\tcov=5,10,15\n"
	r := gff.NewReader(strings.NewReader(input))

	assert.True(t, r.Scan())
	line := r.Line()
	expect.EQ(t, line.Kind, gff.Comment)
	expect.EQ(t, line.Raw, "##source GffWriter")
	expect.EQ(t, line.Field, "source")
	expect.EQ(t, line.Value, "GffWriter")

	assert.True(t, r.Scan())
	line = r.Line()
	expect.EQ(t, line.Field, "sequence-header")
	expect.EQ(t, line.Value, "ref0001 chr1 mito")

	// The blank line is skipped; a bare comment has an empty value.
	assert.True(t, r.Scan())
	line = r.Line()
	expect.EQ(t, line.Kind, gff.Comment)
	expect.EQ(t, line.Field, "comment")
	expect.EQ(t, line.Value, "")

	assert.True(t, r.Scan())
	line = r.Line()
	expect.EQ(t, line.Kind, gff.Feature)
	expect.EQ(t, line.Rec.Type, "region")
	expect.EQ(t, line.Rec.Start, 1)
	expect.EQ(t, line.Rec.End, 100)

	expect.False(t, r.Scan())
	assert.NoError(t, r.Err())
}

func TestReaderMalformed(t *testing.T) {
	input := "##source GffWriter\n" + "ref0001\tregion\t1\t100\n"
	r := gff.NewReader(strings.NewReader(input))
	assert.True(t, r.Scan())
	expect.False(t, r.Scan())
	expect.NotNil(t, r.Err())
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := gff.NewWriter(&buf)
	assert.NoError(t, w.WriteComment("##gff-version 3"))
	assert.NoError(t, w.WriteMeta("source", "bio-mod-summary 1.0"))
	rec := gff.Record{
		Seqid: "ref0001", Source: ".", Type: "region",
		Start: 1, End: 100, Score: "0.00", Strand: "+", Phase: ".",
		Attrs: []gff.Attr{
			{Key: "cov", Value: "5,10,15"},
			{Key: "modsfwd", Value: "0,1,0,0"},
		},
	}
	assert.NoError(t, w.WriteRecord(&rec))
	noAttrs := gff.Record{
		Seqid: "ref0001", Source: ".", Type: "region",
		Start: 101, End: 200, Score: ".", Strand: ".", Phase: ".",
	}
	assert.NoError(t, w.WriteRecord(&noAttrs))
	assert.NoError(t, w.Flush())

	expect.EQ(t, buf.String(),
		"##gff-version 3\n"+
			"##source bio-mod-summary 1.0\n"+
			"ref0001\t.\tregion\t1\t100\t0.00\t+\t.\tcov=5,10,15;modsfwd=0,1,0,0\n"+
			"ref0001\t.\tregion\t101\t200\t.\t.\t.\t.\n")
}

func TestRoundTrip(t *testing.T) {
	line := "ref0001\tsummarize\tregion\t201\t300\t0.00\t+\t.\tcov2=10.000,5.000;gaps=1,2"
	rec, err := gff.ParseRecord(line)
	assert.NoError(t, err)
	var buf bytes.Buffer
	w := gff.NewWriter(&buf)
	assert.NoError(t, w.WriteRecord(&rec))
	assert.NoError(t, w.Flush())
	expect.EQ(t, buf.String(), line+"\n")
}
