package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/raphi011/gittem/internal/ui/styles"
)

// ValidColorModes lists the accepted values of log.color.
var ValidColorModes = []string{styles.ColorAuto, styles.ColorAlways, styles.ColorNever}

func (c *Config) validate() error {
	if err := ValidatePath(c.SrcRoot, "src_root"); err != nil {
		return err
	}
	if err := validateEnum(c.Log.Color, "log.color", ValidColorModes); err != nil {
		return err
	}
	if c.Log.Verbose && c.Log.Quiet {
		return errors.New("log.verbose and log.quiet are mutually exclusive")
	}
	if c.GitHub.BaseURL != "" {
		u, err := url.Parse(c.GitHub.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid github.base_url %q: must be an absolute URL", c.GitHub.BaseURL)
		}
	}
	return nil
}

// ValidateColorMode validates a color mode given on the command line.
func ValidateColorMode(mode string) error {
	return validateEnum(mode, "color", ValidColorModes)
}

// validateEnum checks that value (if non-empty) is one of the allowed values.
func validateEnum(value, field string, allowed []string) error {
	if value == "" {
		return nil
	}
	if !slices.Contains(allowed, value) {
		return fmt.Errorf("invalid %s %q: must be %s", field, value, formatOptions(allowed))
	}
	return nil
}

// formatOptions formats a list of allowed values for error messages.
// E.g., ["a", "b", "c"] -> `"a", "b", or "c"`
func formatOptions(opts []string) string {
	quoted := make([]string, len(opts))
	for i, o := range opts {
		quoted[i] = fmt.Sprintf("%q", o)
	}
	if len(quoted) <= 2 {
		return strings.Join(quoted, " or ")
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}
