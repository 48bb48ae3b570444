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

import "sort"

// hitIndex groups the loaded hits by sequence and sorts each group by
// position, so annotating a region costs two binary searches instead of a
// scan over every hit.
type hitIndex struct {
	bySeq map[string][]Hit
}

func newHitIndex(hits []Hit) hitIndex {
	idx := hitIndex{bySeq: make(map[string][]Hit)}
	for _, h := range hits {
		idx.bySeq[h.Seqid] = append(idx.bySeq[h.Seqid], h)
	}
	for _, seqHits := range idx.bySeq {
		sort.Slice(seqHits, func(i, j int) bool { return seqHits[i].Pos < seqHits[j].Pos })
	}
	return idx
}

// overlapping returns the hits on seqid with start <= Pos <= end.  The
// returned slice aliases the index; callers must not modify it.
func (x hitIndex) overlapping(seqid string, start, end int) []Hit {
	seqHits := x.bySeq[seqid]
	lo := sort.Search(len(seqHits), func(i int) bool { return seqHits[i].Pos >= start })
	hi := sort.Search(len(seqHits), func(i int) bool { return seqHits[i].Pos > end })
	return seqHits[lo:hi]
}
