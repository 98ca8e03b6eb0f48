package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/skyrmsim/internal/dynamo"
	"github.com/san-kum/skyrmsim/internal/efield"
	"github.com/san-kum/skyrmsim/internal/skyrmion"
)

const (
	DefaultTicks   = 500
	DefaultFPS     = 30
	DefaultDataDir = ".skyrmsim"
	DefaultScale   = 4
)

type Config struct {
	GridSize   int          `yaml:"grid_size"`
	CoreRadius float64      `yaml:"core_radius"`
	Center     *CenterPoint `yaml:"center,omitempty"`
	DMI        float64      `yaml:"dmi"`
	Field      FieldConfig  `yaml:"field"`
	Ticks      int          `yaml:"ticks"`
	FPS        int          `yaml:"fps"`
	Scale      int          `yaml:"scale"`
	DataDir    string       `yaml:"data_dir"`
}

// CenterPoint overrides the starting core position. When absent the core
// starts at the grid center.
type CenterPoint struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type FieldConfig struct {
	Strength  float64 `yaml:"strength"`
	Direction string  `yaml:"direction"`
	PulseType string  `yaml:"pulse_type"`
	PulseFreq float64 `yaml:"pulse_freq"`
	PulseAmp  float64 `yaml:"pulse_amp"`
}

func DefaultConfig() *Config {
	return &Config{
		GridSize:   skyrmion.DefaultGridSize,
		CoreRadius: skyrmion.DefaultCoreRadius,
		DMI:        skyrmion.DefaultDMI,
		Field: FieldConfig{
			Strength:  efield.DefaultStrength,
			Direction: efield.DefaultDirection.String(),
			PulseType: string(efield.DefaultPulse),
			PulseFreq: efield.DefaultFreq,
			PulseAmp:  efield.DefaultAmp,
		},
		Ticks:   DefaultTicks,
		FPS:     DefaultFPS,
		Scale:   DefaultScale,
		DataDir: DefaultDataDir,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if err := c.SkyrmionConfig().Validate(); err != nil {
		return err
	}
	if _, ok := efield.ParseDirection(c.Field.Direction); !ok {
		return fmt.Errorf("%w: direction %q", dynamo.ErrUnknownName, c.Field.Direction)
	}
	if _, ok := efield.ParsePulseType(c.Field.PulseType); !ok {
		return fmt.Errorf("%w: pulse type %q", dynamo.ErrUnknownName, c.Field.PulseType)
	}
	for name, v := range map[string]float64{
		"strength":   c.Field.Strength,
		"pulse_freq": c.Field.PulseFreq,
		"pulse_amp":  c.Field.PulseAmp,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not finite", dynamo.ErrParameterBounds, name)
		}
	}
	if c.Ticks <= 0 {
		return fmt.Errorf("%w: ticks must be positive", dynamo.ErrParameterBounds)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive", dynamo.ErrParameterBounds)
	}
	if c.Scale <= 0 {
		return fmt.Errorf("%w: scale must be positive", dynamo.ErrParameterBounds)
	}
	return nil
}

func (c *Config) SkyrmionConfig() skyrmion.Config {
	n := c.GridSize
	center := dynamo.Vec2{X: float64(n) / 2, Y: float64(n) / 2}
	if c.Center != nil {
		center = dynamo.Vec2{X: c.Center.X, Y: c.Center.Y}
	}
	return skyrmion.Config{
		GridSize:   n,
		CoreRadius: c.CoreRadius,
		Center:     center,
		DMI:        c.DMI,
	}
}

// ApplyTo pushes the field block onto a controller. Unknown names leave the
// controller's current direction or pulse type untouched.
func (c *Config) ApplyTo(ctrl *efield.Controller) {
	ctrl.SetStrength(c.Field.Strength)
	ctrl.SetDirection(c.Field.Direction)
	ctrl.SetPulseType(c.Field.PulseType)
	ctrl.SetPulseFreq(c.Field.PulseFreq)
	ctrl.SetPulseAmp(c.Field.PulseAmp)
}

// NewController returns a controller already configured from the field block.
func (c *Config) NewController() *efield.Controller {
	ctrl := efield.NewController()
	c.ApplyTo(ctrl)
	return ctrl
}
