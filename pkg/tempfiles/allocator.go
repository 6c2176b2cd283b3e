package tempfiles

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/drushkit/pkg/fsops"
)

// ErrTempDirUnavailable is returned when no candidate temp root exists and
// the cwd fallback could not be created either.
var ErrTempDirUnavailable = errors.New("no writable temporary directory available")

// tempDirPrefix is the name prefix of allocated temp directories. The unix
// timestamp keeps the historical shape; uniqueness comes from MkdirTemp's
// random suffix, not from the second-granularity clock.
const tempDirPrefix = "drush_tmp_"

// Allocator creates uniquely named temporary files and directories under a
// temp root that is resolved once and cached. Everything it creates is
// registered for deletion at shutdown.
type Allocator struct {
	registry   *Registry
	candidates []string

	rootOnce sync.Once
	root     string
	rootErr  error
}

// NewAllocator returns an allocator backed by registry. Extra candidate
// directories (e.g. a configured temp-dir option) are probed before the
// platform defaults.
func NewAllocator(registry *Registry, extra ...string) *Allocator {
	candidates := make([]string, 0, len(extra)+3)
	for _, dir := range extra {
		if dir != "" {
			candidates = append(candidates, dir)
		}
	}
	candidates = append(candidates, platformTempCandidates()...)
	candidates = append(candidates, os.TempDir())

	return &Allocator{
		registry:   registry,
		candidates: candidates,
	}
}

// platformTempCandidates lists the OS-specific temp directories probed
// before the runtime default.
func platformTempCandidates() []string {
	if runtime.GOOS == "windows" {
		return []string{`c:\windows\temp`, `c:\winnt\temp`}
	}
	return []string{"/tmp"}
}

// TempRoot resolves the directory new temp resources are allocated under.
// The first existing, writable candidate wins; failing all of them, a tmp
// directory under the current working directory is created, registered for
// shutdown deletion, and used. The result (or failure) is cached for the
// life of the allocator.
func (a *Allocator) TempRoot(ctx context.Context) (string, error) {
	a.rootOnce.Do(func() {
		a.root, a.rootErr = a.resolveRoot(ctx)
	})
	return a.root, a.rootErr
}

func (a *Allocator) resolveRoot(ctx context.Context) (string, error) {
	logger := zerolog.Ctx(ctx)

	for _, candidate := range a.candidates {
		if fsops.IsWritableDir(candidate) {
			logger.Debug().Str("root", candidate).Msg("resolved temp root")
			return candidate, nil
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", errors.Errorf("%w: %w", ErrTempDirUnavailable, err)
	}

	fallback := filepath.Join(wd, "tmp")
	if err := fsops.PathEnsure(fallback); err != nil {
		return "", errors.Errorf("%w: %w", ErrTempDirUnavailable, err)
	}
	if !fsops.IsWritableDir(fallback) {
		return "", errors.Errorf("%w: %q could not be verified", ErrTempDirUnavailable, fallback)
	}

	// The fallback lives inside the user's working directory, so it must
	// not outlive the process.
	a.registry.Register(fallback)
	logger.Debug().Str("root", fallback).Msg("resolved temp root to cwd fallback")
	return fallback, nil
}

// TempFile creates a uniquely named file under the temp root, registers it
// for shutdown deletion, writes data when provided, and returns its path.
// Uniqueness is guaranteed by the atomic create, not by probing first.
func (a *Allocator) TempFile(ctx context.Context, prefix string, data []byte) (string, error) {
	root, err := a.TempRoot(ctx)
	if err != nil {
		return "", err
	}

	f, err := os.CreateTemp(root, prefix+"*")
	if err != nil {
		return "", errors.Errorf("creating temp file under %q: %w", root, err)
	}
	path := f.Name()
	a.registry.Register(path)

	if len(data) > 0 {
		if _, err := f.Write(data); err != nil {
			f.Close()
			return "", errors.Errorf("writing temp file %q: %w", path, err)
		}
	}
	if err := f.Close(); err != nil {
		return "", errors.Errorf("closing temp file %q: %w", path, err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Int("bytes", len(data)).Msg("allocated temp file")
	return path, nil
}

// TempDir creates a uniquely named directory under the temp root, registers
// it for shutdown deletion, and returns its path.
func (a *Allocator) TempDir(ctx context.Context) (string, error) {
	root, err := a.TempRoot(ctx)
	if err != nil {
		return "", err
	}

	pattern := fmt.Sprintf("%s%d_", tempDirPrefix, time.Now().Unix())
	path, err := os.MkdirTemp(root, pattern)
	if err != nil {
		return "", errors.Errorf("creating temp dir under %q: %w", root, err)
	}
	a.registry.Register(path)

	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("allocated temp dir")
	return path, nil
}
