package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/raphi011/gittem/internal/log"
	"github.com/raphi011/gittem/internal/ui/styles"
)

// Environment variables read by Load.
const (
	EnvConfig = "GITTEM_CONFIG"
	EnvSrc    = "GITTEM_SRC"
)

// DefaultSrcRoot is the clone root used when nothing else is configured.
const DefaultSrcRoot = "~/Sources"

// GitHubConfig holds GitHub API settings for organization cloning.
type GitHubConfig struct {
	BaseURL      string `toml:"base_url"` // GitHub Enterprise API URL; empty means github.com
	SkipArchived bool   `toml:"skip_archived"`
}

// Config holds the gittem configuration.
type Config struct {
	SrcRoot string       `toml:"src_root"`
	Log     log.Config   `toml:"log"`
	GitHub  GitHubConfig `toml:"github"`
}

// Default returns the default configuration with src_root expanded.
func Default() Config {
	root, err := ExpandPath(DefaultSrcRoot)
	if err != nil {
		root = DefaultSrcRoot
	}
	return Config{
		SrcRoot: root,
		Log:     log.Config{Color: styles.ColorAuto},
	}
}

// ValidatePath checks that the path is absolute or starts with ~
// Returns error if path is relative (like "." or "..")
func ValidatePath(path, fieldName string) error {
	if path == "" {
		return nil
	}
	if path[0] == '~' {
		return nil
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

// Path returns the config file location: override if set, then
// GITTEM_CONFIG, then ~/.config/gittem/config.toml.
func Path(override string) (string, error) {
	if override != "" {
		return ExpandPath(override)
	}
	if env := os.Getenv(EnvConfig); env != "" {
		return ExpandPath(env)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "gittem", "config.toml"), nil
}

// Load reads the config file at path (see [Path] for the empty default).
//
// A missing file yields Default() and no error. A file that exists but
// cannot be read, parsed or validated yields Default() together with the
// error, so callers can warn and carry on. GITTEM_SRC overrides src_root
// in both cases.
func Load(path string) (Config, error) {
	cfg, err := load(path)
	if env := os.Getenv(EnvSrc); env != "" {
		if verr := ValidatePath(env, EnvSrc); verr != nil {
			return cfg, errors.Join(err, verr)
		}
		root, eerr := ExpandPath(env)
		if eerr != nil {
			return cfg, errors.Join(err, eerr)
		}
		cfg.SrcRoot = root
	}
	return cfg, err
}

func load(override string) (Config, error) {
	path, err := Path(override)
	if err != nil {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	cfg.SrcRoot = ""
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return Default(), fmt.Errorf("invalid config file %s: %w", path, err)
	}

	if cfg.SrcRoot == "" {
		cfg.SrcRoot = DefaultSrcRoot
	}
	expanded, err := ExpandPath(cfg.SrcRoot)
	if err != nil {
		return Default(), fmt.Errorf("expand src_root: %w", err)
	}
	cfg.SrcRoot = expanded

	if cfg.Log.Color == "" {
		cfg.Log.Color = styles.ColorAuto
	}
	return cfg, nil
}
