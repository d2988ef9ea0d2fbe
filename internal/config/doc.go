// Package config handles loading and validation of gittem configuration.
//
// Configuration is read from ~/.config/gittem/config.toml. The location can
// be changed with the GITTEM_CONFIG environment variable or the --config flag.
//
// # Configuration Sources (highest priority first)
//
//   - Command line flags (applied by the CLI)
//   - GITTEM_SRC env var: clone root
//   - Config file settings
//   - Default values
//
// # Example
//
//	src_root = "~/Sources"
//
//	[log]
//	verbose = false
//	quiet = false
//	color = "auto"
//
//	[github]
//	base_url = "https://ghe.example.com/api/v3/"
//	skip_archived = true
//
// # Path Validation
//
// src_root must be absolute or start with ~ (no relative paths like "."
// or "..") to avoid confusion about the working directory.
package config
