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
	"os"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// TreeMove moves the tree at src to dest. It runs the same preflight checks
// as TreeCopy, then tries a rename. When the rename fails (typically across
// filesystem boundaries) it falls back to copy+delete, which is not atomic:
// a crash between the two leaves both copies present.
func TreeMove(ctx context.Context, src, dest string, overwrite bool) error {
	logger := zerolog.Ctx(ctx)

	if err := preflight(ctx, src, dest, overwrite); err != nil {
		return err
	}

	if err := os.Rename(src, dest); err == nil {
		logger.Debug().Str("src", src).Str("dest", dest).Msg("moved tree by rename")
		return nil
	}

	removeSpuriousRenameArtifact(dest)

	if err := moveByCopy(ctx, src, dest); err != nil {
		return errors.Errorf("moving %q to %q: %w: %w", src, dest, ErrMoveFailure, err)
	}

	logger.Debug().Str("src", src).Str("dest", dest).Msg("moved tree by copy+delete")
	return nil
}

// moveByCopy is the cross-device fallback: copy the whole tree, then delete
// the source. Preflight has already run.
func moveByCopy(ctx context.Context, src, dest string) error {
	if err := copyTree(src, dest, src, nil); err != nil {
		return err
	}
	return TreeDelete(ctx, src)
}

// removeSpuriousRenameArtifact deletes the empty regular file some platforms
// leave at dest after a failed cross-device rename. Best-effort compatibility
// shim; a non-empty or non-regular dest is left alone.
func removeSpuriousRenameArtifact(dest string) {
	info, err := os.Lstat(dest)
	if err != nil || !info.Mode().IsRegular() || info.Size() != 0 {
		return
	}
	_ = os.Remove(dest)
}
