package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shiplabel.yaml")

	content := `
repo: /srv/checkouts/widget
mainline: main
github:
  owner: acme
  repo: widget
  token_env: WIDGET_TOKEN
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/checkouts/widget", cfg.Repo)
	assert.Equal(t, "main", cfg.Mainline)
	assert.Equal(t, "acme", cfg.GitHub.Owner)
	assert.Equal(t, "widget", cfg.GitHub.Repo)
	assert.Equal(t, "WIDGET_TOKEN", cfg.GitHub.TokenEnv)
}

func TestLoadFillsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shiplabel.yaml")
	require.NoError(t, os.WriteFile(path, []byte("github:\n  owner: acme\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ".", cfg.Repo)
	assert.Equal(t, "master", cfg.Mainline)
	assert.Equal(t, "GITHUB_TOKEN", cfg.GitHub.TokenEnv)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("repo: [unclosed"), 0644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestToken(t *testing.T) {
	cfg := Default()
	cfg.GitHub.TokenEnv = "SHIPLABEL_TEST_TOKEN"
	t.Setenv("SHIPLABEL_TEST_TOKEN", "hunter2")
	assert.Equal(t, "hunter2", cfg.Token())
}
