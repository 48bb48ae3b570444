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
	"testing"

	"github.com/grailbio/testutil/expect"
)

func TestHitIndexOverlapping(t *testing.T) {
	idx := newHitIndex([]Hit{
		{Seqid: "chr1", Pos: 150, Strand: "+", Type: "m6A"},
		{Seqid: "chr1", Pos: 50, Strand: "+", Type: "m4C"},
		{Seqid: "chr1", Pos: 100, Strand: "-", Type: "m5C"},
		{Seqid: "chr2", Pos: 100, Strand: "+", Type: "m6A"},
	})

	positions := func(hits []Hit) []int {
		var p []int
		for _, h := range hits {
			p = append(p, h.Pos)
		}
		return p
	}

	// The interval is closed on both ends.
	expect.EQ(t, positions(idx.overlapping("chr1", 50, 150)), []int{50, 100, 150})
	expect.EQ(t, positions(idx.overlapping("chr1", 51, 150)), []int{100, 150})
	expect.EQ(t, positions(idx.overlapping("chr1", 50, 149)), []int{50, 100})
	expect.EQ(t, positions(idx.overlapping("chr1", 100, 100)), []int{100})
	expect.EQ(t, len(idx.overlapping("chr1", 151, 200)), 0)

	// Hits on other sequences never leak in.
	expect.EQ(t, positions(idx.overlapping("chr2", 1, 1000)), []int{100})
	expect.EQ(t, len(idx.overlapping("chr3", 1, 1000)), 0)
}

func TestParseWindow(t *testing.T) {
	win, err := parseWindow("")
	expect.NoError(t, err)
	expect.True(t, win.contains("chr1", 1))
	expect.True(t, win.contains("chrX", 1<<40))

	win, err = parseWindow("chr1")
	expect.NoError(t, err)
	expect.True(t, win.contains("chr1", 123456))
	expect.False(t, win.contains("chr2", 1))

	win, err = parseWindow("chr1:100")
	expect.NoError(t, err)
	expect.True(t, win.contains("chr1", 100))
	expect.False(t, win.contains("chr1", 99))
	expect.False(t, win.contains("chr1", 101))

	win, err = parseWindow("chr1:100-200")
	expect.NoError(t, err)
	expect.True(t, win.contains("chr1", 100))
	expect.True(t, win.contains("chr1", 200))
	expect.False(t, win.contains("chr1", 99))
	expect.False(t, win.contains("chr1", 201))
	expect.False(t, win.contains("chr2", 150))

	for _, bad := range []string{":100-200", "chr1:0", "chr1:x-200", "chr1:100-x", "chr1:200-100"} {
		_, err = parseWindow(bad)
		expect.NotNil(t, err, "region: %q", bad)
	}
}
