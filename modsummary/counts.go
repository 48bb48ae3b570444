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
	"strconv"
	"strings"
)

// countEventTypes returns the per-type occurrence counts for hits.  Every
// known event type is present in the result; unseen types count zero.  The
// result does not depend on the order of hits.
func countEventTypes(hits []Hit) map[string]int {
	counts := make(map[string]int, len(KnownEvents))
	for _, ev := range KnownEvents {
		counts[ev] = 0
	}
	for _, h := range hits {
		counts[h.Type]++
	}
	return counts
}

// formatCounts renders counts as a comma-joined list in KnownEvents order.
func formatCounts(counts map[string]int) string {
	tokens := make([]string, 0, len(KnownEvents))
	for _, ev := range KnownEvents {
		tokens = append(tokens, strconv.Itoa(counts[ev]))
	}
	return strings.Join(tokens, ",")
}
