package automation

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/skyrmsim/internal/dynamo"
	"github.com/san-kum/skyrmsim/internal/efield"
	"github.com/san-kum/skyrmsim/internal/metrics"
	"github.com/san-kum/skyrmsim/internal/sim"
	"github.com/san-kum/skyrmsim/internal/skyrmion"
)

// Scenario is a scripted field protocol: segments run back to back on one
// skyrmion, each changing the field before its first tick.
type Scenario struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Segments    []Segment `yaml:"segments"`
}

// Segment fields left out of the YAML keep the value of the previous
// segment. Reset restarts the pulse clock at the segment start.
type Segment struct {
	Ticks     int      `yaml:"ticks"`
	Label     string   `yaml:"label,omitempty"`
	Strength  *float64 `yaml:"strength,omitempty"`
	Direction string   `yaml:"direction,omitempty"`
	PulseType string   `yaml:"pulse_type,omitempty"`
	PulseFreq *float64 `yaml:"pulse_freq,omitempty"`
	PulseAmp  *float64 `yaml:"pulse_amp,omitempty"`
	Reset     bool     `yaml:"reset,omitempty"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	if err := scenario.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &scenario, nil
}

func (sc *Scenario) Validate() error {
	if len(sc.Segments) == 0 {
		return fmt.Errorf("scenario %q has no segments", sc.Name)
	}
	for i, seg := range sc.Segments {
		if seg.Ticks <= 0 {
			return fmt.Errorf("segment %d: %w: ticks must be positive", i+1, dynamo.ErrParameterBounds)
		}
		if seg.Direction != "" {
			if _, ok := efield.ParseDirection(seg.Direction); !ok {
				return fmt.Errorf("segment %d: %w: direction %q", i+1, dynamo.ErrUnknownName, seg.Direction)
			}
		}
		if seg.PulseType != "" {
			if _, ok := efield.ParsePulseType(seg.PulseType); !ok {
				return fmt.Errorf("segment %d: %w: pulse type %q", i+1, dynamo.ErrUnknownName, seg.PulseType)
			}
		}
	}
	return nil
}

func (sc *Scenario) TotalTicks() int {
	total := 0
	for _, seg := range sc.Segments {
		total += seg.Ticks
	}
	return total
}

// Events converts the segments into a simulator schedule.
func (sc *Scenario) Events() []sim.Event {
	events := make([]sim.Event, 0, len(sc.Segments))
	tick := 0
	for i, seg := range sc.Segments {
		label := seg.Label
		if label == "" {
			label = fmt.Sprintf("segment %d", i+1)
		}
		events = append(events, sim.Event{
			Tick:      tick,
			Label:     label,
			Apply:     seg.apply,
			ResetTime: seg.Reset,
		})
		tick += seg.Ticks
	}
	return events
}

func (seg Segment) apply(c *efield.Controller) {
	if seg.Strength != nil {
		c.SetStrength(*seg.Strength)
	}
	if seg.Direction != "" {
		c.SetDirection(seg.Direction)
	}
	if seg.PulseType != "" {
		c.SetPulseType(seg.PulseType)
	}
	if seg.PulseFreq != nil {
		c.SetPulseFreq(*seg.PulseFreq)
	}
	if seg.PulseAmp != nil {
		c.SetPulseAmp(*seg.PulseAmp)
	}
}

// RunScenario plays the scenario on a fresh field with the default metric
// set and returns the combined record.
func RunScenario(ctx context.Context, sc *Scenario, fieldCfg skyrmion.Config) (*sim.Result, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	field, err := skyrmion.New(fieldCfg)
	if err != nil {
		return nil, err
	}

	s := sim.New(efield.NewController(), field)
	for _, m := range metrics.Default(field.Origin()) {
		s.AddMetric(m)
	}
	s.Schedule(sc.Events()...)

	cfg := sim.DefaultConfig()
	cfg.Ticks = sc.TotalTicks()
	return s.Run(ctx, cfg)
}
