package config

import (
	"os"
	"path/filepath"
)

// Loader finds and loads the rc file.
type Loader struct {
	Version      string // build version, "dev" enables the local rc lookup
	OverridePath string
}

// NewLoader creates a Loader.
func NewLoader(version string, overridePath string) *Loader {
	return &Loader{
		Version:      version,
		OverridePath: overridePath,
	}
}

// Load reads the configuration, returning defaults when no rc file exists.
func (l *Loader) Load() (*Config, error) {
	path := l.GetConfigPath()
	if path == "" {
		return New(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f)
}

// GetConfigPath returns the path of the rc file, or "" when none is found.
// Lookup order: explicit override, local .tacticsboardrc in dev builds, then
// the XDG config directory.
func (l *Loader) GetConfigPath() string {
	if l.OverridePath != "" {
		if _, err := os.Stat(l.OverridePath); err == nil {
			return l.OverridePath
		}
	}

	if l.Version == "dev" {
		wd, _ := os.Getwd()
		localPath := filepath.Join(wd, ".tacticsboardrc")
		if _, err := os.Stat(localPath); err == nil {
			return localPath
		}
	}

	home, _ := os.UserHomeDir()
	for _, name := range []string{"config.rc", "tacticsboard.rc"} {
		path := filepath.Join(home, ".config", "tacticsboard", name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}
