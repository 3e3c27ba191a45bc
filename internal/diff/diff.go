// Copyright 2024-2026 Firefly Software Solutions Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package diff

// Lines computes the edit script turning old into new.
//
// Complexity is O(m·n) time and space, using the standard bottom-up LCS
// table followed by a single backtrack pass. Ties in the backtrack (the
// DP value is equal whether we consume an old line or emit an insert) are
// broken toward consuming the old line first, i.e. preferring to match
// earlier old lines before introducing new content, per §4.2.
func Lines(old, new []string) []Edit {
	m, n := len(old), len(new)

	// dp[i][j] = LCS length of old[i:] and new[j:].
	dp := make([][]int, m+1)
	for i := range dp {
		dp[i] = make([]int, n+1)
	}
	for i := m - 1; i >= 0; i-- {
		for j := n - 1; j >= 0; j-- {
			if old[i] == new[j] {
				dp[i][j] = dp[i+1][j+1] + 1
			} else if dp[i+1][j] >= dp[i][j+1] {
				dp[i][j] = dp[i+1][j]
			} else {
				dp[i][j] = dp[i][j+1]
			}
		}
	}

	edits := make([]Edit, 0, m+n)
	i, j := 0, 0
	for i < m || j < n {
		switch {
		case i < m && j < n && old[i] == new[j]:
			edits = append(edits, Edit{Kind: KeepOld, OldIndex: i})
			i++
			j++
		case j < n && (i == m || dp[i][j+1] > dp[i+1][j]):
			edits = append(edits, Edit{Kind: Insert, OldIndex: i, Content: new[j]})
			j++
		default:
			edits = append(edits, Edit{Kind: Delete, OldIndex: i})
			i++
		}
	}
	return edits
}
