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
	"time"

	"github.com/fireflyframework/ojo/internal/graggle"
	"github.com/fireflyframework/ojo/internal/ids"
	"gopkg.in/yaml.v3"
)

// Patch is a content-addressed, self-contained unit of change.
type Patch struct {
	ID          ids.PatchID   `yaml:"id"`
	Author      string        `yaml:"author"`
	Description string        `yaml:"description"`
	Timestamp   time.Time     `yaml:"timestamp"`
	Deps        []ids.PatchID `yaml:"deps,omitempty"`
	Ops         []Op          `yaml:"ops"`
}

// canonical is the subset of Patch that is hashed to produce its id: author,
// description, timestamp, and ops — explicitly *not* deps (spec.md §3, §4.5)
// and not id itself. A patch id is a pure function of its header and ops, so
// deps can be recomputed or verified independently on import without
// affecting content addressing. yaml.v3 marshals struct fields in
// declaration order, so this encoding is stable without any extra
// bookkeeping.
type canonical struct {
	Author      string    `yaml:"author"`
	Description string    `yaml:"description"`
	Timestamp   time.Time `yaml:"timestamp"`
	Ops         []Op      `yaml:"ops"`
}

func (p *Patch) canonicalBytes() ([]byte, error) {
	return yaml.Marshal(canonical{
		Author:      p.Author,
		Description: p.Description,
		Timestamp:   p.Timestamp.UTC(),
		Ops:         p.Ops,
	})
}

// Hash computes the id a patch's current contents would hash to, without
// mutating p.ID. Import uses this to verify an untrusted patch file.
func (p *Patch) Hash() (ids.PatchID, error) {
	b, err := p.canonicalBytes()
	if err != nil {
		return "", err
	}
	return ids.HashPatch(b), nil
}

// Seal computes and sets p.ID from p's current contents. Call this exactly
// once, after every other field is final.
func (p *Patch) Seal() error {
	id, err := p.Hash()
	if err != nil {
		return err
	}
	p.ID = id
	return nil
}

// Verify reports whether p.ID matches the hash of p's current contents.
func (p *Patch) Verify() error {
	want, err := p.Hash()
	if err != nil {
		return err
	}
	if want != p.ID {
		return fmt.Errorf("patch: id %s does not match content hash %s", p.ID, want)
	}
	return nil
}

// Apply replays p's ops against g, resolving every Pending self-reference
// to p.ID as it goes. It does not check deps or already-applied state —
// that is the store's job (internal/store.Repository.Apply); this function is
// the pure graggle-mutation step shared by forward application and by the
// replay used to materialize a branch's current graggle.
func Apply(p *Patch, g *graggle.Graggle) error {
	for _, op := range p.Ops {
		switch op.Kind {
		case NewNodeKind:
			g.IntroduceNode(ids.NodeID{Patch: p.ID, Local: op.Local}, op.Content)
		case NewEdgeKind:
			if op.Src == nil || op.Dst == nil {
				return fmt.Errorf("patch %s: new_edge op missing src/dst", p.ID)
			}
			src := resolve(*op.Src, p.ID)
			dst := resolve(*op.Dst, p.ID)
			if !g.HasNode(src) || !g.HasNode(dst) {
				return fmt.Errorf("patch %s: new_edge references unknown node", p.ID)
			}
			g.IntroduceEdge(graggle.EdgeKey{Src: src, Dst: dst})
		case DeleteNodeKind:
			if op.Target == nil {
				return fmt.Errorf("patch %s: delete_node op missing target", p.ID)
			}
			target := resolve(*op.Target, p.ID)
			if !g.HasNode(target) {
				return fmt.Errorf("patch %s: delete_node references unknown node", p.ID)
			}
			g.MarkDeleted(target, p.ID)
		case UndeleteNodeKind:
			if op.Target == nil {
				return fmt.Errorf("patch %s: undelete_node op missing target", p.ID)
			}
			target := resolve(*op.Target, p.ID)
			if !g.HasNode(target) {
				return fmt.Errorf("patch %s: undelete_node references unknown node", p.ID)
			}
			g.ClearDeletions(target)
		default:
			return fmt.Errorf("patch %s: unknown op kind %q", p.ID, op.Kind)
		}
	}
	return nil
}
