package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up next to the binary's working
// directory and in ConfigDir.
const FileName = "config.yaml"

// Load returns the defaults overlaid with the config file and then the
// command-line flags. The result is validated as a whole.
func Load() (*Config, error) {
	cfg := Default()

	if path := configFile(); path != "" {
		if err := cfg.merge(path); err != nil {
			return nil, err
		}
	}
	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// configFile returns the -config path, or the first FileName found in the
// working directory or ConfigDir. An empty result means defaults only.
func configFile() string {
	if path := ConfigPath(); path != "" {
		return path
	}
	for _, dir := range []string{".", ConfigDir()} {
		path := filepath.Join(dir, FileName)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// ConfigDir returns the per-user directory for viewer settings.
func ConfigDir() string {
	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "HeightmapViewer")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "HeightmapViewer")
		}
		return filepath.Join(home, "AppData", "Roaming", "HeightmapViewer")
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "heightmap-viewer")
	}
	return filepath.Join(home, ".config", "heightmap-viewer")
}

// merge overlays the YAML file at path onto c. Keys missing from the file
// keep their current values; unknown keys are rejected so a misspelt
// setting does not silently fall back to its default.
func (c *Config) merge(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}
