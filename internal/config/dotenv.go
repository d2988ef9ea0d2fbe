package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// DotEnvFiles returns the .env files gittem reads: one in the working
// directory and one next to the config file.
func DotEnvFiles(configPath string) []string {
	files := []string{".env"}
	if configPath != "" {
		files = append(files, filepath.Join(filepath.Dir(configPath), ".env"))
	}
	return files
}

// LoadDotEnv loads variables such as GITHUB_TOKEN from the given .env files.
// Missing files are skipped and variables already set in the environment
// are never overridden.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return err
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}
