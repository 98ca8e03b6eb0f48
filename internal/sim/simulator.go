package sim

import (
	"context"
	"fmt"
	"sort"

	"github.com/san-kum/skyrmsim/internal/dynamo"
	"github.com/san-kum/skyrmsim/internal/efield"
	"github.com/san-kum/skyrmsim/internal/skyrmion"
)

// Simulator drives one Field from one Controller, tick by tick.
type Simulator struct {
	ctrl      *efield.Controller
	field     *skyrmion.Field
	events    []Event
	metrics   []Metric
	observers []Observer
}

func New(ctrl *efield.Controller, field *skyrmion.Field) *Simulator {
	return &Simulator{
		ctrl:      ctrl,
		field:     field,
		events:    make([]Event, 0),
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Controller() *efield.Controller { return s.ctrl }
func (s *Simulator) Field() *skyrmion.Field         { return s.field }

// Schedule queues events. Events sharing a tick run in the order given.
func (s *Simulator) Schedule(events ...Event) {
	s.events = append(s.events, events...)
	sort.SliceStable(s.events, func(i, j int) bool { return s.events[i].Tick < s.events[j].Tick })
}

func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result{
		Records: make([]Record, 0, cfg.Ticks),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	next := 0
	var spins skyrmion.SpinField

	for i := 0; i < cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			s.finish(result, spins)
			return result, ctx.Err()
		default:
		}

		for next < len(s.events) && s.events[next].Tick <= i {
			s.apply(s.events[next])
			next++
		}

		spins = s.field.Step(s.ctrl.Snapshot())
		dyn := s.field.Dynamics()
		drive := s.field.LastDrive()

		if cfg.ValidateState && !dyn.Center.IsValid() {
			result.Errors = append(result.Errors, &dynamo.StepError{Tick: i, Time: dyn.Time, Wrapped: dynamo.ErrInvalidState})
			break
		}

		for _, m := range s.metrics {
			m.Observe(spins, dyn, drive)
		}
		for _, obs := range s.observers {
			obs.OnStep(i, spins, dyn)
		}

		result.StepsTaken++
		result.Records = append(result.Records, Record{
			Tick:         i,
			Time:         dyn.Time,
			Center:       dyn.Center,
			Velocity:     dyn.Velocity,
			RotationFreq: dyn.RotationFreq,
			Drive:        drive,
		})
	}

	s.finish(result, spins)
	return result, nil
}

func (s *Simulator) finish(result *Result, spins skyrmion.SpinField) {
	result.Final = spins
	result.Trajectory = s.field.Dynamics().Trajectory
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (s *Simulator) apply(ev Event) {
	if ev.Apply != nil {
		ev.Apply(s.ctrl)
	}
	if ev.ResetTime {
		s.field.ResetTime()
	}
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", cfg.Ticks)
	}
	if s.ctrl == nil || s.field == nil {
		return fmt.Errorf("simulator needs a controller and a field")
	}
	return nil
}

// RunWithCallback steps until ticks run out, ctx is done or fn returns false.
func (s *Simulator) RunWithCallback(ctx context.Context, ticks int, fn func(tick int, spins skyrmion.SpinField, d skyrmion.Dynamics) bool) error {
	if err := s.validateConfig(Config{Ticks: ticks}); err != nil {
		return err
	}

	next := 0
	for i := 0; i < ticks; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		for next < len(s.events) && s.events[next].Tick <= i {
			s.apply(s.events[next])
			next++
		}

		spins := s.field.Step(s.ctrl.Snapshot())
		if !fn(i, spins, s.field.Dynamics()) {
			return nil
		}
	}

	return nil
}
