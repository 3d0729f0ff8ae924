// Package config loads the process-wide, immutable-after-load settings:
// the backend table, the forwarded header allow-list, and the two
// timeouts from spec.md §5. It is read once at process start via
// gopkg.in/yaml.v2 (the teacher's own configuration format) and handed to
// the HTTP handler; nothing downstream re-reads it.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/shyptr/splitcache/backend"
)

// Config is the fully-resolved process configuration.
type Config struct {
	Backends       backend.Table `yaml:"backends"`
	HeaderAllow    []string      `yaml:"header_allow"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	OverallTimeout time.Duration `yaml:"overall_timeout"`
	ListenAddr     string        `yaml:"listen_addr"`
}

// Default returns the built-in configuration used when no file is supplied,
// per SPEC_FULL.md §6's "or built-in defaults" fallback.
func Default() *Config {
	return &Config{
		Backends: backend.Table{
			"dev":  "http://origin-dev.internal",
			"qa":   "http://origin-qa.internal",
			"prod": "http://origin-prod.internal",
		},
		HeaderAllow:    []string{"Authorization", "Request-Id", "Client-Version"},
		RequestTimeout: 5 * time.Second,
		OverallTimeout: 10 * time.Second,
		ListenAddr:     ":8080",
	}
}

// Load reads a YAML config file at path, filling any field it does not set
// from Default(). An empty path returns Default() unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
