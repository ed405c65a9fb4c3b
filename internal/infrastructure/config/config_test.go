package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/kin-core/internal/domain/entities"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, DefaultConfigDir), 0755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, DefaultConfigDir, DefaultConfigFile),
		[]byte(content), 0644))
	return dir
}

func TestLoadMissingConfig(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kin init")
}

func TestLoadDefaults(t *testing.T) {
	dir := writeConfig(t, "")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "family.db", cfg.Storage.Path)
	assert.Equal(t, entities.DefaultPolicy(), cfg.DomainPolicy())
	assert.Equal(t, entities.DefaultMetrics(), cfg.DomainMetrics())
}

func TestLoadOverrides(t *testing.T) {
	dir := writeConfig(t, `
storage:
  backend: json
  path: tree.json
policy:
  max_parents: 0
  monogamy: false
layout:
  card_w: 200
  sibling_gap_x: 120
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, BackendJSON, cfg.Storage.Backend)
	assert.Equal(t, "tree.json", cfg.Storage.Path)

	policy := cfg.DomainPolicy()
	assert.Equal(t, 0, policy.MaxParents)
	assert.False(t, policy.Monogamy)

	m := cfg.DomainMetrics()
	assert.Equal(t, 200.0, m.CardW)
	assert.Equal(t, 120.0, m.SiblingGapX)
	assert.Equal(t, entities.DefaultMetrics().CardH, m.CardH, "unset fields keep defaults")
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := writeConfig(t, "storage:\n  backend: sqlite\n")
	t.Setenv("KIN_STORAGE_BACKEND", "json")
	t.Setenv("KIN_STORAGE_PATH", "/tmp/family.json")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, BackendJSON, cfg.Storage.Backend)
	assert.Equal(t, "/tmp/family.json", cfg.Storage.Path)
}

func TestStoragePath(t *testing.T) {
	cfg := Default()
	assert.Equal(t,
		filepath.Join("/base", DefaultConfigDir, "family.db"),
		cfg.StoragePath("/base"))

	cfg.Storage.Path = "/abs/family.db"
	assert.Equal(t, "/abs/family.db", cfg.StoragePath("/base"))
}

func TestWriteDefault(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, WriteDefault(dir))
	assert.True(t, Exists(dir))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)

	assert.Error(t, WriteDefault(dir), "second init refuses to overwrite")
}

func TestWriteRoundTrip(t *testing.T) {
	dir := t.TempDir()
	maxParents := 3
	cfg := Default()
	cfg.Policy.MaxParents = &maxParents

	require.NoError(t, Write(dir, cfg))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.DomainPolicy().MaxParents)
}
