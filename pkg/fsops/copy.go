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

package fsops

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// CopyOptions controls TreeCopy behavior.
type CopyOptions struct {
	// Overwrite deletes an existing destination before copying instead of
	// failing with ErrDestinationExists.
	Overwrite bool

	// IgnorePatterns are doublestar globs matched against each entry's path
	// relative to the copy root (slash-separated). Matching entries are
	// skipped. The root itself is never matched.
	IgnorePatterns []string
}

// TreeCopy recursively copies the tree at src to dest, preserving POSIX
// permission bits on platforms that have them. Preflight checks run in
// order before anything is written: destination-exists (unless Overwrite),
// source-readable, destination-parent-writable.
func TreeCopy(ctx context.Context, src, dest string, opts CopyOptions) error {
	logger := zerolog.Ctx(ctx)

	if err := preflight(ctx, src, dest, opts.Overwrite); err != nil {
		return err
	}

	if err := copyTree(src, dest, src, opts.IgnorePatterns); err != nil {
		return errors.Errorf("copying %q to %q: %w: %w", src, dest, ErrCopyFailure, err)
	}

	logger.Debug().Str("src", src).Str("dest", dest).Msg("copied tree")
	return nil
}

// preflight runs the shared copy/move checks. It is the only place the
// specific rejection kinds are produced, so copy and move fail identically.
func preflight(ctx context.Context, src, dest string, overwrite bool) error {
	if _, err := os.Lstat(dest); err == nil {
		if !overwrite {
			return errors.Errorf("%q -> %q: %w", src, dest, ErrDestinationExists)
		}
		// Best effort: a leftover destination will surface as a copy
		// failure below if anything actually remains in the way.
		_ = TreeDelete(ctx, dest)
	}

	if !isReadable(src) {
		return errors.Errorf("%q -> %q: %w", src, dest, ErrSourceNotFound)
	}

	if !IsWritableDir(filepath.Dir(dest)) {
		return errors.Errorf("%q -> %q: %w", src, dest, ErrDestinationNotWritable)
	}

	return nil
}

// copyTree copies a single node and recurses into directories. root is the
// original copy root, used to compute ignore-pattern-relative paths.
func copyTree(src, dest, root string, ignore []string) error {
	info, err := os.Lstat(src)
	if err != nil {
		return errors.Errorf("stat %q: %w", src, err)
	}

	switch {
	case info.IsDir():
		// The parent was validated by preflight; a single-level create is
		// enough here.
		if err := os.Mkdir(dest, 0o755); err != nil && !errors.Is(err, fs.ErrExist) {
			return errors.Errorf("creating directory %q: %w", dest, err)
		}
		entries, err := os.ReadDir(src)
		if err != nil {
			return errors.Errorf("listing %q: %w", src, err)
		}
		for _, entry := range entries {
			childSrc := filepath.Join(src, entry.Name())
			skip, err := ignored(childSrc, root, ignore)
			if err != nil {
				return err
			}
			if skip {
				continue
			}
			if err := copyTree(childSrc, filepath.Join(dest, entry.Name()), root, ignore); err != nil {
				return err
			}
		}

	case info.Mode()&fs.ModeSymlink != 0:
		target, err := os.Readlink(src)
		if err != nil {
			return errors.Errorf("reading link %q: %w", src, err)
		}
		if err := os.Symlink(target, dest); err != nil {
			return errors.Errorf("creating link %q: %w", dest, err)
		}
		// Link modes are meaningless everywhere we care about.
		return nil

	default:
		if err := copyFileContents(src, dest); err != nil {
			return err
		}
	}

	if permissionBitsSupported() {
		if err := os.Chmod(dest, info.Mode().Perm()); err != nil {
			return errors.Errorf("setting mode on %q: %w", dest, err)
		}
	}

	return nil
}

// copyFileContents copies the bytes of a regular file.
func copyFileContents(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening %q: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return errors.Errorf("creating %q: %w", dest, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.Errorf("copying %q to %q: %w", src, dest, err)
	}

	if err := out.Close(); err != nil {
		return errors.Errorf("closing %q: %w", dest, err)
	}
	return nil
}

// ignored reports whether path (relative to root) matches any pattern.
func ignored(path, root string, patterns []string) (bool, error) {
	if len(patterns) == 0 {
		return false, nil
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false, errors.Errorf("relativizing %q against %q: %w", path, root, err)
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, rel)
		if err != nil {
			return false, errors.Errorf("matching pattern %q: %w", pattern, err)
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}
