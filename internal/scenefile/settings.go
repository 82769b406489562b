// Package scenefile stores the user-tweakable scene state (light, colors,
// camera) as YAML files and keeps an undo history of it.
package scenefile

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/heightmap-viewer/internal/config"
)

// Extension is the file extension used for scene files.
const Extension = "scene.yaml"

// Settings is everything the GUI can change about the scene.
// It is a plain value so snapshots can be compared and copied freely.
type Settings struct {
	LightPos    [3]float32 `yaml:"light_pos"`
	ClearColor  [4]float32 `yaml:"clear_color"`
	HeightScale float32    `yaml:"height_scale"`
	Wireframe   bool       `yaml:"wireframe"`
	Camera      Camera     `yaml:"camera"`
}

// Camera holds the orbit camera parameters.
type Camera struct {
	Radius     float32 `yaml:"radius"`
	Height     float32 `yaml:"height"`
	Speed      float32 `yaml:"speed"`
	AutoRotate bool    `yaml:"auto_rotate"`
}

// FromConfig returns the startup settings described by cfg.
func FromConfig(cfg *config.Config) Settings {
	return Settings{
		LightPos:    cfg.Scene.LightPos,
		ClearColor:  cfg.Scene.ClearColor,
		HeightScale: 1,
		Camera: Camera{
			Radius:     cfg.Scene.OrbitRadius,
			Height:     cfg.Scene.OrbitHeight,
			Speed:      cfg.Scene.OrbitSpeed,
			AutoRotate: true,
		},
	}
}

// Load reads settings from a YAML scene file. Keys missing from the file
// keep the values of base.
func Load(path string, base Settings) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("reading scene: %w", err)
	}

	s := base
	if err := yaml.Unmarshal(data, &s); err != nil {
		return base, fmt.Errorf("parsing scene %s: %w", filepath.Base(path), err)
	}
	return s, nil
}

// Save writes settings to path, creating parent directories.
func Save(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating scene dir: %w", err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding scene: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing scene: %w", err)
	}
	return nil
}
