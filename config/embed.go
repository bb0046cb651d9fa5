package config

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
	"time"
)

//go:embed *.yaml
var ConfigFS embed.FS

// Load reads a config file, preferring an on-disk copy under config/ so
// values can be tweaked without rebuilding, and falling back to the
// embedded defaults.
func Load(name string) ([]byte, error) {
	clean := cleanPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return ConfigFS.ReadFile(clean)
}

// ModTime reports the on-disk modification time, if a disk copy exists.
func ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(diskPath(cleanPath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func cleanPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	return strings.TrimPrefix(s, "config/")
}

func diskPath(clean string) string {
	return filepath.Join("config", filepath.FromSlash(clean))
}
