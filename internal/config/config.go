// Package config handles viewer configuration loading and management.
package config

import (
	"fmt"
	"math"

	"go.uber.org/multierr"

	"github.com/Faultbox/heightmap-viewer/internal/engine/heightfield"
)

// Config holds all viewer settings.
type Config struct {
	Graphics   GraphicsConfig   `yaml:"graphics"`
	Mesh       MeshConfig       `yaml:"mesh"`
	Scene      SceneConfig      `yaml:"scene"`
	UI         UIConfig         `yaml:"ui"`
	Screenshot ScreenshotConfig `yaml:"screenshot"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
}

// MeshConfig holds heightfield generation parameters. The mesh is built
// once at startup from these values.
type MeshConfig struct {
	Resolution     int     `yaml:"resolution"`
	Step           float32 `yaml:"step"`
	Amplitude      float32 `yaml:"amplitude"`
	Epsilon        float32 `yaml:"epsilon"`
	ColorFrequency float32 `yaml:"color_frequency"`
}

// SceneConfig holds the initial camera and lighting state.
type SceneConfig struct {
	OrbitRadius float32    `yaml:"orbit_radius"`
	OrbitHeight float32    `yaml:"orbit_height"`
	OrbitSpeed  float32    `yaml:"orbit_speed"`
	LightPos    [3]float32 `yaml:"light_pos"`
	ClearColor  [4]float32 `yaml:"clear_color"`
}

// UIConfig holds ImGui settings.
type UIConfig struct {
	Docking        bool    `yaml:"docking"`
	Viewports      bool    `yaml:"viewports"`
	ShowDemoWindow bool    `yaml:"show_demo_window"`
	FontPath       string  `yaml:"font_path"`
	FontSize       float32 `yaml:"font_size"`
}

// ScreenshotConfig holds screenshot output settings.
type ScreenshotConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"` // png or bmp
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the reference demo values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Mesh: MeshConfig{
			Resolution:     100,
			Step:           0.1,
			Amplitude:      2.0,
			Epsilon:        0.01,
			ColorFrequency: 5.0,
		},
		Scene: SceneConfig{
			OrbitRadius: 20,
			OrbitHeight: 20,
			OrbitSpeed:  1,
			LightPos:    [3]float32{10, 10, 10},
			ClearColor:  [4]float32{0.1, 0.1, 0.2, 1},
		},
		UI: UIConfig{
			Docking:        true,
			ShowDemoWindow: true,
			FontSize:       16,
		},
		Screenshot: ScreenshotConfig{
			Dir:    "screenshots",
			Format: "png",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports every setting that would make startup fail.
func (c *Config) Validate() error {
	var err error
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		err = multierr.Append(err, fmt.Errorf("graphics: window size %dx%d must be positive", c.Graphics.Width, c.Graphics.Height))
	}
	if c.Graphics.FPSLimit < 0 {
		err = multierr.Append(err, fmt.Errorf("graphics: fps_limit %d must not be negative", c.Graphics.FPSLimit))
	}
	if c.Mesh.Resolution < 1 || c.Mesh.Resolution > heightfield.MaxResolution {
		err = multierr.Append(err, fmt.Errorf("mesh: resolution %d must be between 1 and %d", c.Mesh.Resolution, heightfield.MaxResolution))
	}
	if !finite(c.Mesh.Step) || c.Mesh.Step <= 0 {
		err = multierr.Append(err, fmt.Errorf("mesh: step %v must be finite and positive", c.Mesh.Step))
	}
	if !finite(c.Mesh.Epsilon) || c.Mesh.Epsilon <= 0 {
		err = multierr.Append(err, fmt.Errorf("mesh: epsilon %v must be positive", c.Mesh.Epsilon))
	}
	if !finite(c.Mesh.Amplitude) {
		err = multierr.Append(err, fmt.Errorf("mesh: amplitude %v must be finite", c.Mesh.Amplitude))
	}
	if !finite(c.Mesh.ColorFrequency) {
		err = multierr.Append(err, fmt.Errorf("mesh: color_frequency %v must be finite", c.Mesh.ColorFrequency))
	}
	switch c.Screenshot.Format {
	case "png", "bmp":
	default:
		err = multierr.Append(err, fmt.Errorf("screenshot: unknown format %q (want png or bmp)", c.Screenshot.Format))
	}
	return err
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
