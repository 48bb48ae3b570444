// Copyright 2020 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package modsummary

import (
	"context"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/basemod/encoding/gff"
)

// KnownEvents lists the modification event types this tool recognizes, in
// the order the per-region count columns are emitted.
var KnownEvents = []string{"modified_base", "m6A", "m4C", "m5C"}

// Hit is a single modification call: one event of the given type at a
// 1-based position on one strand of a reference sequence.
type Hit struct {
	Seqid  string
	Pos    int
	Strand string
	Type   string
}

// window restricts hit loading to one contig, optionally bounded by a
// 1-based closed position interval.
type window struct {
	seqid      string
	start, end int
	all        bool
}

// parseWindow parses a region string of one of the forms
//   [contig ID]:[1-based first pos]-[last pos]
//   [contig ID]:[1-based pos]
//   [contig ID]
// An empty string means no restriction.
func parseWindow(region string) (window, error) {
	if region == "" {
		return window{all: true}, nil
	}
	colonPos := strings.IndexByte(region, ':')
	if colonPos == -1 {
		return window{seqid: region, start: 1, end: math.MaxInt32}, nil
	}
	if colonPos == 0 {
		return window{}, errors.E("modsummary: empty contig ID in region string " + region)
	}
	win := window{seqid: region[:colonPos]}
	rangeStr := region[colonPos+1:]
	dashPos := strings.IndexByte(rangeStr, '-')
	if dashPos == -1 {
		pos, err := strconv.Atoi(rangeStr)
		if err != nil || pos <= 0 {
			return window{}, errors.E("modsummary: position " + rangeStr + " in region string out of range")
		}
		win.start, win.end = pos, pos
		return win, nil
	}
	start, err := strconv.Atoi(rangeStr[:dashPos])
	if err != nil || start <= 0 {
		return window{}, errors.E("modsummary: position " + rangeStr[:dashPos] + " in region string out of range")
	}
	end, err := strconv.Atoi(rangeStr[dashPos+1:])
	if err != nil || end < start {
		return window{}, errors.E("modsummary: invalid range string " + rangeStr)
	}
	win.start, win.end = start, end
	return win, nil
}

func (w window) contains(seqid string, pos int) bool {
	if w.all {
		return true
	}
	return seqid == w.seqid && pos >= w.start && pos <= w.end
}

func knownEvent(typ string) bool {
	for _, ev := range KnownEvents {
		if typ == ev {
			return true
		}
	}
	return false
}

// LoadHits reads the modification-calls GFF at path and returns the calls
// whose type is one of KnownEvents, restricted to the region window when a
// nonempty one is given.  The file may be gzip-compressed.
func LoadHits(ctx context.Context, path, region string) (hits []Hit, err error) {
	win, err := parseWindow(region)
	if err != nil {
		return nil, err
	}
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.E(err, "couldn't open modifications file:", path)
	}
	defer file.CloseAndReport(ctx, in, &err)
	var inr io.Reader = in.Reader(ctx)
	if u := compress.NewReaderPath(inr, in.Name()); u != nil {
		inr = u
	}
	r := gff.NewReader(inr)
	for r.Scan() {
		line := r.Line()
		if line.Kind != gff.Feature {
			continue
		}
		rec := line.Rec
		if !knownEvent(rec.Type) || !win.contains(rec.Seqid, rec.Start) {
			continue
		}
		hits = append(hits, Hit{Seqid: rec.Seqid, Pos: rec.Start, Strand: rec.Strand, Type: rec.Type})
	}
	if e := r.Err(); e != nil {
		return nil, errors.E(e, "couldn't read modifications file:", path)
	}
	return hits, nil
}
