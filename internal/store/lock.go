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

package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fireflyframework/ojo/internal/ojoerrors"
	"golang.org/x/sys/unix"
)

const lockFileName = "lock"

// repoLock holds an exclusive, non-blocking flock on the repository
// directory for the duration of one CLI invocation. Contention is
// fail-fast (§5): a second invocation against the same repository gets
// ErrLockHeld immediately rather than blocking.
type repoLock struct {
	f *os.File
}

func acquireLock(ojoDir string) (*repoLock, error) {
	path := filepath.Join(ojoDir, lockFileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, &ojoerrors.IOError{Path: path, Cause: err}
	}
	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %s", ojoerrors.ErrLockHeld, path)
	}
	return &repoLock{f: f}, nil
}

func (l *repoLock) release() error {
	if l == nil || l.f == nil {
		return nil
	}
	_ = unix.Flock(int(l.f.Fd()), unix.LOCK_UN)
	return l.f.Close()
}
