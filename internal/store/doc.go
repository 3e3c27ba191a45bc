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

// Package store implements the on-disk repository: the .ojo directory
// holding one YAML file per patch plus a small db file recording branches
// and their applied sets (§4.8, §5, §6 of SPEC_FULL.md).
//
// A repository invocation is single-threaded and synchronous: Open takes
// an exclusive advisory lock on the repository directory for the lifetime
// of the process and every mutation is written with a temp-file-then-
// rename so a crash mid-write leaves the prior db file intact. A branch's
// graggle is never itself persisted — internal/patch.Replay rebuilds it
// from the branch's Applied list and the patch store on demand.
package store
