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

package diff_test

import (
	"testing"

	"github.com/fireflyframework/ojo/internal/diff"
	"github.com/stretchr/testify/require"
)

func apply(old []string, edits []diff.Edit) []string {
	var out []string
	for _, e := range edits {
		switch e.Kind {
		case diff.KeepOld:
			out = append(out, old[e.OldIndex])
		case diff.Insert:
			out = append(out, e.Content)
		case diff.Delete:
			// dropped
		}
	}
	return out
}

func TestLinesNoChange(t *testing.T) {
	old := []string{"a", "b", "c"}
	edits := diff.Lines(old, old)
	require.Equal(t, old, apply(old, edits))
	for _, e := range edits {
		require.Equal(t, diff.KeepOld, e.Kind)
	}
}

func TestLinesInsertMiddle(t *testing.T) {
	old := []string{"First", "Third"}
	new := []string{"First", "Second", "Third"}
	edits := diff.Lines(old, new)
	require.Equal(t, new, apply(old, edits))

	var inserts []diff.Edit
	for _, e := range edits {
		if e.Kind == diff.Insert {
			inserts = append(inserts, e)
		}
	}
	require.Len(t, inserts, 1)
	require.Equal(t, "Second", inserts[0].Content)
	require.Equal(t, 1, inserts[0].OldIndex)
}

func TestLinesDeleteMiddle(t *testing.T) {
	old := []string{"First", "Second", "Third"}
	new := []string{"First", "Third"}
	edits := diff.Lines(old, new)
	require.Equal(t, new, apply(old, edits))

	deletes := 0
	for _, e := range edits {
		if e.Kind == diff.Delete {
			deletes++
			require.Equal(t, 1, e.OldIndex)
		}
	}
	require.Equal(t, 1, deletes)
}

func TestLinesEmptyToContent(t *testing.T) {
	old := []string{}
	new := []string{"a", "b"}
	edits := diff.Lines(old, new)
	require.Equal(t, new, apply(old, edits))
	for _, e := range edits {
		require.Equal(t, diff.Insert, e.Kind)
		require.Equal(t, 0, e.OldIndex)
	}
}

func TestLinesContentToEmpty(t *testing.T) {
	old := []string{"a", "b"}
	new := []string{}
	edits := diff.Lines(old, new)
	require.Empty(t, apply(old, edits))
	for _, e := range edits {
		require.Equal(t, diff.Delete, e.Kind)
	}
}

func TestLinesAppendAtEnd(t *testing.T) {
	old := []string{"a"}
	new := []string{"a", "b"}
	edits := diff.Lines(old, new)
	require.Equal(t, new, apply(old, edits))
	last := edits[len(edits)-1]
	require.Equal(t, diff.Insert, last.Kind)
	require.Equal(t, len(old), last.OldIndex)
}
