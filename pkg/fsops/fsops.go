// Copyright 2025 walteh LLC
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

// Package fsops implements the recursive tree operations used by the CLI:
// delete, copy, move, directory creation and small path checks.
//
// Symbolic links are never followed: a link is deleted, copied or moved as
// the link itself, not as its target.
package fsops

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// permissionBitsSupported reports whether the platform has a POSIX
// permission-bit model worth preserving. Windows does not.
func permissionBitsSupported() bool {
	return runtime.GOOS != "windows"
}

// TreeDelete removes path and everything under it. A path that does not
// exist is a success (nothing to do). Deletion short-circuits on the first
// child that cannot be removed; whatever was already deleted stays deleted.
func TreeDelete(ctx context.Context, path string) error {
	info, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return errors.Errorf("stat %q: %w", path, err)
	}

	if !info.IsDir() {
		if err := os.Remove(path); err != nil {
			return errors.Errorf("removing %q: %w", path, err)
		}
		return nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return errors.Errorf("listing %q: %w", path, err)
	}
	for _, entry := range entries {
		if err := TreeDelete(ctx, filepath.Join(path, entry.Name())); err != nil {
			return err
		}
	}

	if err := os.Remove(path); err != nil {
		return errors.Errorf("removing %q: %w", path, err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("deleted directory tree")
	return nil
}

// PathEnsure creates path as a directory, creating every missing ancestor
// first (mkdir -p). It is idempotent: an existing directory is a success.
func PathEnsure(path string) error {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return nil
	}

	if parent := filepath.Dir(path); parent != path {
		if err := PathEnsure(parent); err != nil {
			return err
		}
	}

	if err := os.Mkdir(path, 0o755); err != nil {
		if !errors.Is(err, fs.ErrExist) {
			return errors.Errorf("creating directory %q: %w", path, err)
		}
		// Existing directories are fine; anything else occupying the
		// path is not.
		info, statErr := os.Stat(path)
		if statErr != nil {
			return errors.Errorf("creating directory %q: %w", path, statErr)
		}
		if !info.IsDir() {
			return errors.Errorf("creating directory %q: path exists and is not a directory", path)
		}
	}
	return nil
}

// FileNonEmpty reports whether path exists and holds at least one byte.
func FileNonEmpty(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Size() > 0
}

// isReadable reports whether path can be opened for reading.
func isReadable(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

// IsWritableDir reports whether dir is a directory we can create entries in.
// It probes by creating and removing a throwaway file, which is the only
// portable answer (mode bits lie under ACLs and on Windows).
func IsWritableDir(dir string) bool {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return false
	}
	probe, err := os.CreateTemp(dir, ".drushkit-probe-")
	if err != nil {
		return false
	}
	name := probe.Name()
	probe.Close()
	os.Remove(name)
	return true
}
