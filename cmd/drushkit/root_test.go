package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func TestLoadConfigMissingDefaultPath(t *testing.T) {
	ctx := testContext(t)
	orig := configFile
	t.Cleanup(func() { configFile = orig })
	configFile = filepath.Join(t.TempDir(), ".drushkit.yaml")

	cfg, err := loadConfig(ctx, false)
	require.NoError(t, err, "an absent default config file is fine")
	assert.NotNil(t, cfg)
	assert.Empty(t, cfg.BackupDir)
}

func TestLoadConfigMissingExplicitPath(t *testing.T) {
	ctx := testContext(t)
	orig := configFile
	t.Cleanup(func() { configFile = orig })
	configFile = filepath.Join(t.TempDir(), "pointed-at-nothing.yaml")

	_, err := loadConfig(ctx, true)
	assert.Error(t, err, "a --config path that does not exist must error")
}

func TestLoadConfigExplicitPath(t *testing.T) {
	ctx := testContext(t)
	orig := configFile
	t.Cleanup(func() { configFile = orig })

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database: mydb\n"), 0o644))
	configFile = path

	cfg, err := loadConfig(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, "mydb", cfg.Database)
}
