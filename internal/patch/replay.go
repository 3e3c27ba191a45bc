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

package patch

import (
	"fmt"

	"github.com/fireflyframework/ojo/internal/graggle"
	"github.com/fireflyframework/ojo/internal/ids"
)

// Store is the minimal patch lookup a replay needs. internal/store's
// Repository satisfies it; tests can use a plain map.
type Store interface {
	Get(id ids.PatchID) (*Patch, bool)
}

// MapStore is a Store backed by a plain map, for tests and for callers
// that have already loaded every patch into memory.
type MapStore map[ids.PatchID]*Patch

func (m MapStore) Get(id ids.PatchID) (*Patch, bool) {
	p, ok := m[id]
	return p, ok
}

// Replay rebuilds the graggle that results from applying order, in order,
// against an empty graggle. This is how a branch's current state is
// derived from its applied list (§4.8): there is no separate persisted
// graggle to keep in sync, and "unapplying" a patch is simply excluding it
// from order on the next replay.
func Replay(order []ids.PatchID, store Store) (*graggle.Graggle, error) {
	g := graggle.New()
	for _, id := range order {
		p, ok := store.Get(id)
		if !ok {
			return nil, fmt.Errorf("patch: replay: %s not found in store", id)
		}
		if err := Apply(p, g); err != nil {
			return nil, err
		}
	}
	return g, nil
}
