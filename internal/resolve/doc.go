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

// Package resolve drives the interactive conflict resolver of SPEC_FULL.md
// §4.7: given a conflicted graggle, it repeatedly presents the current
// frontier of simultaneously orderable nodes to an Oracle and applies the
// resulting decision to a scratch copy of the graggle, recording the same
// mutations as patch ops. The loop ends when the scratch copy renders
// without conflict, at which point the recorded ops are sealed into a
// patch that, applied, renders the branch linearizable.
//
// The oracle is a plain interface rather than a direct dependency on
// internal/ui, so the resolution algorithm stays a pure, synchronous
// function of (graggle, decisions) and is unit-testable without a
// terminal — the core stays free of any interactive or concurrency
// machinery, matching SPEC_FULL.md §9's coroutine-free design.
package resolve
