// Package tempfiles manages the lifecycle of temporary files and directories:
// allocation under a probed temp root, and guaranteed best-effort deletion of
// everything allocated when the process exits.
package tempfiles

import (
	"context"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/walteh/drushkit/pkg/fsops"
)

// Registry is the process-wide list of paths to delete at shutdown.
//
// It is constructed once in main and passed to everything that allocates
// temp resources; main defers DrainAndDelete as its last action so the
// drain runs after every command path, including early returns. The list
// grows monotonically — nothing removes an entry before the drain, and the
// drain tolerates paths that no longer exist.
type Registry struct {
	mu    sync.Mutex
	paths []string
	drain sync.Once
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends path to the deletion list and returns a snapshot of the
// current list. Duplicates are kept as-is; re-deleting an already-deleted
// path at shutdown is a no-op.
func (r *Registry) Register(path string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.paths = append(r.paths, path)

	out := make([]string, len(r.paths))
	copy(out, r.paths)
	return out
}

// Len returns the number of registered paths.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.paths)
}

// DrainAndDelete deletes every registered path in registration order,
// exactly once per registry. It never fails: this is shutdown-time cleanup
// with nobody left to report to, so failures are debug-logged and dropped.
// Registering after the drain has run is a documented misuse, not a guarded
// one — the process is exiting.
func (r *Registry) DrainAndDelete(ctx context.Context) {
	r.drain.Do(func() {
		logger := zerolog.Ctx(ctx)

		r.mu.Lock()
		paths := make([]string, len(r.paths))
		copy(paths, r.paths)
		r.mu.Unlock()

		for _, path := range paths {
			info, err := os.Lstat(path)
			if err != nil {
				continue // already gone
			}
			if info.IsDir() {
				err = fsops.TreeDelete(ctx, path)
			} else {
				err = os.Remove(path)
			}
			if err != nil {
				logger.Debug().Str("path", path).Err(err).Msg("shutdown cleanup left a path behind")
			}
		}

		logger.Debug().Int("paths", len(paths)).Msg("drained temp resource registry")
	})
}
