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

package unionfind_test

import (
	"testing"

	"github.com/fireflyframework/ojo/internal/unionfind"
	"github.com/stretchr/testify/require"
)

func TestUnionFindBasic(t *testing.T) {
	d := unionfind.New[string]()
	for _, k := range []string{"a", "b", "c", "d"} {
		d.Make(k)
	}

	require.False(t, d.Same("a", "b"))
	d.Union("a", "b")
	require.True(t, d.Same("a", "b"))
	require.False(t, d.Same("a", "c"))

	d.Union("c", "d")
	require.True(t, d.Same("c", "d"))
	require.False(t, d.Same("a", "c"))

	d.Union("b", "c")
	require.True(t, d.Same("a", "d"))
}

func TestUnionFindImplicitMake(t *testing.T) {
	d := unionfind.New[int]()
	// Find/Union on unknown keys registers them as singletons rather than panicking.
	require.Equal(t, 1, d.Find(1))
	d.Union(1, 2)
	require.True(t, d.Same(1, 2))
}

func TestUnionFindIdempotentMake(t *testing.T) {
	d := unionfind.New[string]()
	d.Make("x")
	d.Union("x", "y")
	d.Make("x") // no-op, must not reset x's set membership
	require.True(t, d.Same("x", "y"))
}
