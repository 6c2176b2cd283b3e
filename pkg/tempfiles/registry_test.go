package tempfiles_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/drushkit/pkg/tempfiles"
)

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func TestRegisterReturnsOrderedSnapshot(t *testing.T) {
	reg := tempfiles.NewRegistry()

	got := reg.Register("/a")
	assert.Equal(t, []string{"/a"}, got)

	got = reg.Register("/b")
	assert.Equal(t, []string{"/a", "/b"}, got)

	// Duplicates are kept; the registry does not dedupe.
	got = reg.Register("/a")
	assert.Equal(t, []string{"/a", "/b", "/a"}, got)
	assert.Equal(t, 3, reg.Len())
}

func TestDrainAndDeleteRemovesFilesAndTrees(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	reg := tempfiles.NewRegistry()

	file := filepath.Join(dir, "scratch.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	tree := filepath.Join(dir, "scratch-dir")
	require.NoError(t, os.MkdirAll(filepath.Join(tree, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(tree, "nested", "n.txt"), []byte("y"), 0o644))

	reg.Register(file)
	reg.Register(tree)
	reg.Register(filepath.Join(dir, "never-existed")) // tolerated

	reg.DrainAndDelete(ctx)

	_, err := os.Lstat(file)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Lstat(tree)
	assert.True(t, os.IsNotExist(err))
}

func TestDrainAndDeleteRunsOnce(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	reg := tempfiles.NewRegistry()

	file := filepath.Join(dir, "scratch.txt")
	reg.Register(file)
	reg.DrainAndDelete(ctx)

	// A path recreated after the drain must survive a second call: the
	// drain happens exactly once per registry.
	require.NoError(t, os.WriteFile(file, []byte("reborn"), 0o644))
	reg.DrainAndDelete(ctx)

	assert.FileExists(t, file)
}
