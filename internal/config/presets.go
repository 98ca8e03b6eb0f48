package config

import "sort"

var Presets = map[string]*Config{
	"rest": {
		GridSize: 100, CoreRadius: 6, DMI: 0.8, Ticks: 200, FPS: 30, Scale: 4,
		Field: FieldConfig{Strength: 0, Direction: "x+", PulseType: "sin", PulseFreq: 2, PulseAmp: 1},
	},
	"sin-drive": {
		GridSize: 100, CoreRadius: 6, DMI: 0.8, Ticks: 1000, FPS: 30, Scale: 4,
		Field: FieldConfig{Strength: 0.3, Direction: "x+", PulseType: "sin", PulseFreq: 2, PulseAmp: 1},
	},
	"square-drive": {
		GridSize: 100, CoreRadius: 6, DMI: 0.8, Ticks: 1000, FPS: 30, Scale: 4,
		Field: FieldConfig{Strength: 0.3, Direction: "y+", PulseType: "square", PulseFreq: 1, PulseAmp: 1},
	},
	"dc-bias": {
		GridSize: 100, CoreRadius: 6, DMI: 0.8, Ticks: 300, FPS: 30, Scale: 4,
		Field: FieldConfig{Strength: 0.5, Direction: "x-", PulseType: "dc", PulseFreq: 2, PulseAmp: 1},
	},
	"diagonal": {
		GridSize: 100, CoreRadius: 6, DMI: 0.8, Ticks: 1000, FPS: 30, Scale: 4,
		Field: FieldConfig{Strength: 0.25, Direction: "xy+", PulseType: "sin", PulseFreq: 3, PulseAmp: 1},
	},
	"small-core": {
		GridSize: 64, CoreRadius: 3, DMI: 1.2, Ticks: 1000, FPS: 30, Scale: 6,
		Field: FieldConfig{Strength: 0.2, Direction: "x+", PulseType: "sin", PulseFreq: 4, PulseAmp: 0.5},
	},
}

// GetPreset returns a copy so callers may override fields freely.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	if cfg.Center != nil {
		center := *cfg.Center
		c.Center = &center
	}
	if c.DataDir == "" {
		c.DataDir = DefaultDataDir
	}
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
