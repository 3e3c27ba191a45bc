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

// Package render linearizes a graggle into a text file, or reports that no
// unique linearization exists (§4.6 of SPEC_FULL.md).
//
// Pseudo-edges are never stored on the graggle itself. Every call to Order
// recomputes them from scratch by walking the live-edge graph across runs
// of deleted nodes, per the lazy-recomputation decision in SPEC_FULL.md
// §12. This keeps graggle.Graggle a plain record of what patches have
// introduced, and keeps the bridging logic in one place (OrderingGraph),
// shared by Order, internal/resolve and internal/integrity.
package render
