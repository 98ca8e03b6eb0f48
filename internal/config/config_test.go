package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/skyrmsim/internal/dynamo"
	"github.com/san-kum/skyrmsim/internal/efield"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.GridSize != 100 {
		t.Errorf("expected grid 100, got %d", cfg.GridSize)
	}
	if cfg.Ticks <= 0 {
		t.Error("ticks should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}

	sc := cfg.SkyrmionConfig()
	if !sc.Center.Equal(dynamo.Vec2{X: 50, Y: 50}) {
		t.Errorf("expected center (50,50), got %v", sc.Center)
	}
}

func TestSkyrmionConfig_CenterOverride(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Center = &CenterPoint{X: 30, Y: 40}

	sc := cfg.SkyrmionConfig()
	if !sc.Center.Equal(dynamo.Vec2{X: 30, Y: 40}) {
		t.Errorf("expected center (30,40), got %v", sc.Center)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   error
	}{
		{"zero grid", func(c *Config) { c.GridSize = 0 }, dynamo.ErrGridSize},
		{"negative radius", func(c *Config) { c.CoreRadius = -1 }, dynamo.ErrCoreRadius},
		{"bad direction", func(c *Config) { c.Field.Direction = "z+" }, dynamo.ErrUnknownName},
		{"bad pulse", func(c *Config) { c.Field.PulseType = "triangle" }, dynamo.ErrUnknownName},
		{"zero ticks", func(c *Config) { c.Ticks = 0 }, dynamo.ErrParameterBounds},
		{"zero scale", func(c *Config) { c.Scale = 0 }, dynamo.ErrParameterBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")

	cfg := DefaultConfig()
	cfg.Field.Strength = 0.4
	cfg.Field.Direction = "xy-"
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Field.Strength != 0.4 || loaded.Field.Direction != "xy-" {
		t.Errorf("field block not preserved: %+v", loaded.Field)
	}
}

func TestLoadScale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(path, []byte("grid_size: 64\nscale: 6\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Scale != 6 {
		t.Errorf("expected scale 6, got %d", cfg.Scale)
	}
	if cfg.FPS != DefaultFPS {
		t.Errorf("unset fps should keep default %d, got %d", DefaultFPS, cfg.FPS)
	}

	if p := GetPreset("small-core"); p.Scale != 6 {
		t.Errorf("small-core preset scale = %d, want 6", p.Scale)
	}
}

func TestApplyTo(t *testing.T) {
	cfg := GetPreset("square-drive")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}

	ctrl := cfg.NewController()
	if ctrl.Direction() != efield.YPlus {
		t.Errorf("expected y+, got %s", ctrl.Direction())
	}
	if ctrl.PulseType() != efield.Square {
		t.Errorf("expected square, got %s", ctrl.PulseType())
	}
	if ctrl.Strength() != 0.3 {
		t.Errorf("expected strength 0.3, got %f", ctrl.Strength())
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("sin-drive")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	cfg.Field.Strength = 99
	if Presets["sin-drive"].Field.Strength == 99 {
		t.Error("GetPreset must return a copy")
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsValidate(t *testing.T) {
	for _, name := range ListPresets() {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestListPresetsSorted(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("presets not sorted: %v", names)
		}
	}
}
