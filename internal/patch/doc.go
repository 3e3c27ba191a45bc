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

// Package patch implements ojo's unit of change (§4.5 of SPEC_FULL.md): a
// content-addressed, self-contained record of NewNode/NewEdge/DeleteNode/
// UndeleteNode operations, built from a line diff and replayed against a
// graggle to produce a branch's state.
//
// A patch's own ops may reference lines it introduces itself. Since a
// patch's id is the hash of its own canonical bytes, those ops cannot
// embed the real NodeId at construction time — that would make the hash
// depend on itself. Instead, self-introduced lines are addressed with the
// reserved placeholder patch id Pending; Apply substitutes the patch's
// real id for Pending the moment it is known, which is after hashing, at
// replay time. This mirrors how Pijul-style patch formats use patch-local
// temporary ids for forward references within the same patch.
package patch
