// Package config registers configuration defaults and builds the provider,
// catalog and path settings the commands need from viper.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expands a leading ~ and $VAR references, then cleans the result.
// An empty path stays empty. If the home directory cannot be resolved the ~ is
// left in place.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = home + strings.TrimPrefix(path, "~")
		}
	}

	return filepath.Clean(os.ExpandEnv(path))
}
