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

// Package diff computes a line-level edit script between an old and a new
// sequence of lines using the classic dynamic-programming longest-common-
// subsequence algorithm (§4.2 of SPEC_FULL.md).
//
// The script is a list of Edit values in document order: KeepOld entries for
// lines present in both sequences, Delete entries for old lines dropped,
// and Insert entries for new lines added. Insert entries carry the old-index
// they logically sit before, so the patch engine (internal/patch) can anchor
// the new line's edges to its old neighbors.
package diff
