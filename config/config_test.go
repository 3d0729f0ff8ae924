package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shyptr/splitcache/config"
)

func TestLoadEmptyPathReturnsDefault(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "splitcache.yaml")
	body := `
backends:
  qa: http://qa.example.com
request_timeout: 2s
listen_addr: ":9090"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://qa.example.com", cfg.Backends["qa"])
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	// Fields the override left unset still carry the defaults.
	assert.Equal(t, 10*time.Second, cfg.OverallTimeout)
	assert.Equal(t, []string{"Authorization", "Request-Id", "Client-Version"}, cfg.HeaderAllow)
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
