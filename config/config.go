// Package config loads spendclass settings from a YAML file with environment
// overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"xdao.co/spendclass/compliance"
)

// Config is the resolved configuration used by the CLI and the service.
type Config struct {
	Mode     compliance.ComplianceMode
	Log      LogConfig
	Archive  ArchiveConfig
	Server   ServerConfig
	Workers  int
	Registry RegistryConfig
}

type LogConfig struct {
	Level       string
	Development bool
}

type ArchiveConfig struct {
	// Dirs are local archive roots, tried in order on reads. Writes go to the first
	// unless Replicate is set, in which case every root receives every spend.
	Dirs      []string
	Replicate bool

	// Remote is a spendclass server address. When set it replaces Dirs.
	Remote string

	// IPFS adds the local Kubo repo as a backend after Dirs.
	IPFS IPFSConfig
}

type IPFSConfig struct {
	Enabled bool
	Bin     string
	Repo    string
}

type ServerConfig struct {
	Listen        string
	MetricsListen string
}

type RegistryConfig struct {
	Extra []RegistryEntry
}

// RegistryEntry is an additional admissible template hash.
type RegistryEntry struct {
	Hash    string `yaml:"hash"`
	Shape   string `yaml:"shape"`
	Version uint8  `yaml:"version"`
	Name    string `yaml:"name"`
}

func Default() Config {
	return Config{
		Mode:    compliance.Permissive,
		Log:     LogConfig{Level: "info"},
		Archive: ArchiveConfig{Dirs: []string{"spendclass-archive"}},
		Server:  ServerConfig{Listen: "127.0.0.1:7450", MetricsListen: "127.0.0.1:7451"},
		Workers: 4,
	}
}

// File mirrors the YAML layout. Pointer fields distinguish "unset" from zero values.
type File struct {
	Mode string `yaml:"mode"`
	Log  struct {
		Level       string `yaml:"level"`
		Development *bool  `yaml:"development"`
	} `yaml:"log"`
	Archive struct {
		Dirs      []string `yaml:"dirs"`
		Replicate *bool    `yaml:"replicate"`
		Remote    string   `yaml:"remote"`
		IPFS      struct {
			Enabled *bool  `yaml:"enabled"`
			Bin     string `yaml:"bin"`
			Repo    string `yaml:"repo"`
		} `yaml:"ipfs"`
	} `yaml:"archive"`
	Server struct {
		Listen        string `yaml:"listen"`
		MetricsListen string `yaml:"metrics_listen"`
	} `yaml:"server"`
	Workers  int `yaml:"workers"`
	Registry struct {
		Extra []RegistryEntry `yaml:"extra"`
	} `yaml:"registry"`
}

// Load reads path (if non-empty), merges it over the defaults, and applies
// SPENDCLASS_* environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: %w", err)
		}
		f, err := Parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", path, err)
		}
		if err := Merge(&cfg, f); err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", path, err)
		}
	}
	if err := ApplyEnvOverrides(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Parse decodes YAML. Unknown keys are rejected.
func Parse(data []byte) (File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return File{}, nil
		}
		return File{}, err
	}
	return f, nil
}

// Merge copies the fields set in src over dst.
func Merge(dst *Config, src File) error {
	if src.Mode != "" {
		m, err := compliance.ParseMode(src.Mode)
		if err != nil {
			return err
		}
		dst.Mode = m
	}
	if src.Log.Level != "" {
		dst.Log.Level = src.Log.Level
	}
	if src.Log.Development != nil {
		dst.Log.Development = *src.Log.Development
	}
	if src.Archive.Dirs != nil {
		dst.Archive.Dirs = src.Archive.Dirs
	}
	if src.Archive.Replicate != nil {
		dst.Archive.Replicate = *src.Archive.Replicate
	}
	if src.Archive.Remote != "" {
		dst.Archive.Remote = src.Archive.Remote
	}
	if src.Archive.IPFS.Enabled != nil {
		dst.Archive.IPFS.Enabled = *src.Archive.IPFS.Enabled
	}
	if src.Archive.IPFS.Bin != "" {
		dst.Archive.IPFS.Bin = src.Archive.IPFS.Bin
	}
	if src.Archive.IPFS.Repo != "" {
		dst.Archive.IPFS.Repo = src.Archive.IPFS.Repo
	}
	if src.Server.Listen != "" {
		dst.Server.Listen = src.Server.Listen
	}
	if src.Server.MetricsListen != "" {
		dst.Server.MetricsListen = src.Server.MetricsListen
	}
	if src.Workers < 0 {
		return fmt.Errorf("workers must be positive, got %d", src.Workers)
	}
	if src.Workers != 0 {
		dst.Workers = src.Workers
	}
	if src.Registry.Extra != nil {
		dst.Registry.Extra = append(dst.Registry.Extra, src.Registry.Extra...)
	}
	return nil
}

// ApplyEnvOverrides applies SPENDCLASS_MODE, SPENDCLASS_LOG_LEVEL,
// SPENDCLASS_LOG_DEVELOPMENT, SPENDCLASS_ARCHIVE_DIRS (path-list separated),
// SPENDCLASS_ARCHIVE_REMOTE, SPENDCLASS_LISTEN, SPENDCLASS_METRICS_LISTEN and SPENDCLASS_WORKERS.
func ApplyEnvOverrides(cfg *Config) error {
	if v := env("SPENDCLASS_MODE"); v != "" {
		m, err := compliance.ParseMode(v)
		if err != nil {
			return fmt.Errorf("SPENDCLASS_MODE: %w", err)
		}
		cfg.Mode = m
	}
	if v := env("SPENDCLASS_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := env("SPENDCLASS_LOG_DEVELOPMENT"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("SPENDCLASS_LOG_DEVELOPMENT: %w", err)
		}
		cfg.Log.Development = b
	}
	if v := env("SPENDCLASS_ARCHIVE_DIRS"); v != "" {
		cfg.Archive.Dirs = strings.Split(v, string(os.PathListSeparator))
	}
	if v := env("SPENDCLASS_ARCHIVE_REMOTE"); v != "" {
		cfg.Archive.Remote = v
	}
	if v := env("SPENDCLASS_LISTEN"); v != "" {
		cfg.Server.Listen = v
	}
	if v := env("SPENDCLASS_METRICS_LISTEN"); v != "" {
		cfg.Server.MetricsListen = v
	}
	if v := env("SPENDCLASS_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("SPENDCLASS_WORKERS: invalid value %q", v)
		}
		cfg.Workers = n
	}
	return nil
}

func env(key string) string { return strings.TrimSpace(os.Getenv(key)) }
