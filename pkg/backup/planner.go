// Package backup derives and prepares timestamped backup directories.
package backup

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/drushkit/pkg/config"
	"github.com/walteh/drushkit/pkg/fsops"
)

var (
	// ErrInsideProtectedRoot is returned when the planned backup directory
	// would be nested inside the configured protected root. Nothing is
	// created in that case.
	ErrInsideProtectedRoot = errors.New("backup directory would be inside the protected root")

	// ErrPrepFailure is returned when the backup directory or its parent
	// could not be created.
	ErrPrepFailure = errors.New("preparing backup directory failed")
)

// contextKeyDirSpec caches the planned path in the store so every call in a
// run sees the same timestamp.
const contextKeyDirSpec = "backup-dir-spec"

// defaultBaseName is the directory under the user's home that holds backups
// when no backup-dir option is set.
const defaultBaseName = "drush-backups"

// Planner computes backup directory paths of the form
// <base>/<subdir>/<UTC YYYYMMDDHHMMSS> and prepares them on disk.
type Planner struct {
	store *config.Store
	now   func() time.Time
}

// NewPlanner returns a planner reading options from store.
func NewPlanner(store *config.Store) *Planner {
	return &Planner{store: store, now: time.Now}
}

// PlanBackupDir returns the backup directory path for this run. The first
// call computes it — backup-location verbatim when set, otherwise
// <base>/<subdir>/<timestamp> — and caches it in the store, so the
// timestamp is captured exactly once per process.
//
// subdir overrides the directory segment; it defaults to the configured
// database name, else "unknown".
func (p *Planner) PlanBackupDir(ctx context.Context, subdir string) (string, error) {
	if cached, ok := p.store.GetContext(contextKeyDirSpec, "").(string); ok && cached != "" {
		return cached, nil
	}

	if location := p.store.GetOption(config.OptBackupLocation, ""); location != "" {
		p.store.SetContext(contextKeyDirSpec, location)
		return location, nil
	}

	base := p.store.GetOption(config.OptBackupDir, "")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Errorf("resolving home directory: %w", err)
		}
		base = filepath.Join(home, defaultBaseName)
	}

	if subdir == "" {
		subdir = p.store.GetOption(config.OptDatabase, "unknown")
	}

	path := filepath.Join(base, subdir, p.now().UTC().Format("20060102150405"))
	p.store.SetContext(contextKeyDirSpec, path)

	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("planned backup directory")
	return path, nil
}

// PrepareBackupDir plans the backup directory and creates it on disk. It
// refuses — touching nothing — when the directory's parent sits inside the
// configured protected root, the guard against a backup that a later
// operation on that root would destroy.
func (p *Planner) PrepareBackupDir(ctx context.Context, subdir string) (string, error) {
	dir, err := p.PlanBackupDir(ctx, subdir)
	if err != nil {
		return "", err
	}

	parent := filepath.Dir(dir)
	if root := p.store.GetOption(config.OptProtectedRoot, ""); root != "" && isWithin(parent, root) {
		return "", errors.Errorf("%q: %w", dir, ErrInsideProtectedRoot)
	}

	if err := fsops.PathEnsure(parent); err != nil {
		return "", errors.Errorf("%w: %w", ErrPrepFailure, err)
	}
	if err := fsops.PathEnsure(dir); err != nil {
		return "", errors.Errorf("%w: %w", ErrPrepFailure, err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", dir).Msg("prepared backup directory")
	return dir, nil
}

// isWithin reports whether path is root or a descendant of root, comparing
// cleaned paths lexically.
func isWithin(path, root string) bool {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
