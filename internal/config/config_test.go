package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/multierr"

	"github.com/Faultbox/heightmap-viewer/internal/engine/heightfield"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 || cfg.Graphics.Height != 720 {
		t.Errorf("expected 1280x720, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	if cfg.Mesh.Resolution != 100 {
		t.Errorf("expected resolution 100, got %d", cfg.Mesh.Resolution)
	}
	if cfg.Mesh.Step != 0.1 {
		t.Errorf("expected step 0.1, got %f", cfg.Mesh.Step)
	}
	if cfg.Mesh.Amplitude != 2 || cfg.Mesh.Epsilon != 0.01 || cfg.Mesh.ColorFrequency != 5 {
		t.Errorf("unexpected sampler defaults %+v", cfg.Mesh)
	}

	if cfg.Scene.LightPos != [3]float32{10, 10, 10} {
		t.Errorf("expected light at (10,10,10), got %v", cfg.Scene.LightPos)
	}
	if cfg.Scene.OrbitRadius != 20 || cfg.Scene.OrbitHeight != 20 {
		t.Errorf("expected orbit 20/20, got %f/%f", cfg.Scene.OrbitRadius, cfg.Scene.OrbitHeight)
	}

	if cfg.Screenshot.Format != "png" {
		t.Errorf("expected png screenshots, got %s", cfg.Screenshot.Format)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  fps_limit: 144

mesh:
  resolution: 64
  step: 0.25

scene:
  orbit_speed: 0.5
  light_pos: [1, 2, 3]
  clear_color: [0, 0, 0, 1]

screenshot:
  dir: "/tmp/shots"
  format: "bmp"

logging:
  level: "debug"
  log_file: "viewer.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := cfg.merge(configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.FPSLimit != 144 {
		t.Errorf("expected fps limit 144, got %d", cfg.Graphics.FPSLimit)
	}
	if cfg.Mesh.Resolution != 64 || cfg.Mesh.Step != 0.25 {
		t.Errorf("expected mesh 64/0.25, got %d/%f", cfg.Mesh.Resolution, cfg.Mesh.Step)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Mesh.Amplitude != 2 {
		t.Errorf("expected default amplitude to survive, got %f", cfg.Mesh.Amplitude)
	}
	if cfg.Scene.LightPos != [3]float32{1, 2, 3} {
		t.Errorf("expected light (1,2,3), got %v", cfg.Scene.LightPos)
	}
	if cfg.Scene.OrbitRadius != 20 {
		t.Errorf("expected default orbit radius, got %f", cfg.Scene.OrbitRadius)
	}
	if cfg.Screenshot.Format != "bmp" {
		t.Errorf("expected bmp, got %s", cfg.Screenshot.Format)
	}
	if cfg.Logging.LogFile != "viewer.log" {
		t.Errorf("expected log file 'viewer.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if err := Default().merge(configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if err := Default().merge("/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestMergeRejectsUnknownKeys(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("mesh:\n  resolutoin: 64\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	err := Default().merge(configPath)
	if err == nil {
		t.Fatal("expected misspelt key to be rejected")
	}
	if !strings.Contains(err.Error(), configPath) {
		t.Errorf("error %q does not name the file", err)
	}
}

func TestMergeEmptyFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, nil, 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := cfg.merge(configPath); err != nil {
		t.Fatalf("empty file should keep defaults: %v", err)
	}
	if cfg.Mesh.Resolution != Default().Mesh.Resolution {
		t.Errorf("expected default resolution, got %d", cfg.Mesh.Resolution)
	}
}

func TestValidateAggregatesErrors(t *testing.T) {
	cfg := Default()
	cfg.Mesh.Resolution = 0
	cfg.Mesh.Step = 0
	cfg.Screenshot.Format = "gif"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}

	errs := multierr.Errors(err)
	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %d: %v", len(errs), err)
	}
	for _, want := range []string{"resolution", "step", "gif"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestValidateRules(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"negative resolution", func(c *Config) { c.Mesh.Resolution = -1 }},
		{"zero epsilon", func(c *Config) { c.Mesh.Epsilon = 0 }},
		{"zero width", func(c *Config) { c.Graphics.Width = 0 }},
		{"negative fps limit", func(c *Config) { c.Graphics.FPSLimit = -5 }},
		{"resolution above max", func(c *Config) { c.Mesh.Resolution = heightfield.MaxResolution + 1 }},
		{"resolution overflowing indices", func(c *Config) { c.Mesh.Resolution = 20000 }},
		{"negative step", func(c *Config) { c.Mesh.Step = -0.1 }},
		{"nan amplitude", func(c *Config) { c.Mesh.Amplitude = float32(math.NaN()) }},
		{"inf color frequency", func(c *Config) { c.Mesh.ColorFrequency = float32(math.Inf(1)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}

	cfg := Default()
	cfg.Mesh.Resolution = heightfield.MaxResolution
	if err := cfg.Validate(); err != nil {
		t.Errorf("max resolution should be accepted: %v", err)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	t.Setenv("HOME", tmpDir)

	if path := configFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.MkdirAll(filepath.Join(tmpDir, "xdg", "heightmap-viewer", FileName), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if path := configFile(); path != "" {
		t.Errorf("a directory named %s must be skipped, got %s", FileName, path)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte("mesh:\n  resolution: 8\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := configFile(); path != FileName {
		t.Errorf("expected %s in current directory, got %q", FileName, path)
	}

	*flagConfig = "/explicit/viewer.yaml"
	defer func() { *flagConfig = "" }()
	if path := configFile(); path != "/explicit/viewer.yaml" {
		t.Errorf("expected -config path to win, got %q", path)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name: "mesh flags",
			setup: func() {
				*flagResolution = 32
				*flagStep = 0.5
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Mesh.Resolution != 32 {
					t.Errorf("expected resolution 32, got %d", cfg.Mesh.Resolution)
				}
				if cfg.Mesh.Step != 0.5 {
					t.Errorf("expected step 0.5, got %f", cfg.Mesh.Step)
				}
			},
			teardown: func() {
				*flagResolution = 0
				*flagStep = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("mesh:\n  resolution: 0\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected Load to reject resolution 0")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Mesh.Resolution = 12
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loaded.merge(path); err != nil {
		t.Fatalf("merge: %v", err)
	}
	if loaded.Mesh.Resolution != 12 {
		t.Errorf("expected resolution 12 after reload, got %d", loaded.Mesh.Resolution)
	}
}
