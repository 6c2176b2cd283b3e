package tempfiles

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The cwd fallback needs full control over the candidate list, so it is
// tested from inside the package with a hand-built allocator.

func TestResolveRootFallsBackToCwdTmp(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	ctx := logger.WithContext(context.Background())

	workDir := t.TempDir()
	origWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(workDir))
	t.Cleanup(func() { _ = os.Chdir(origWd) })

	reg := NewRegistry()
	alloc := &Allocator{
		registry:   reg,
		candidates: []string{filepath.Join(workDir, "no-such-candidate")},
	}

	root, err := alloc.TempRoot(ctx)
	require.NoError(t, err)

	// macOS reports the temp workdir through a symlink; compare resolved paths.
	wantRoot, err := filepath.EvalSymlinks(filepath.Join(workDir, "tmp"))
	require.NoError(t, err)
	gotRoot, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	assert.Equal(t, wantRoot, gotRoot)

	info, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// The fallback is registered so it dies with the process.
	assert.Equal(t, 1, reg.Len())
}

func TestResolveRootUnavailable(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	ctx := logger.WithContext(context.Background())

	// A deleted working directory makes even the cwd fallback impossible.
	workDir := t.TempDir()
	doomed := filepath.Join(workDir, "doomed")
	require.NoError(t, os.Mkdir(doomed, 0o755))

	origWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(doomed))
	t.Cleanup(func() { _ = os.Chdir(origWd) })
	require.NoError(t, os.Remove(doomed))

	alloc := &Allocator{
		registry:   NewRegistry(),
		candidates: []string{filepath.Join(workDir, "no-such-candidate")},
	}

	_, err = alloc.TempRoot(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTempDirUnavailable)
}
