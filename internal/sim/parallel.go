package sim

import (
	"context"
	"sync"

	"github.com/san-kum/skyrmsim/internal/efield"
	"github.com/san-kum/skyrmsim/internal/skyrmion"
)

// Job is one independent run in a sweep.
type Job struct {
	Name    string
	Field   skyrmion.Config
	Params  efield.Params
	Events  []Event
	Metrics func() []Metric
}

// Sweep runs every job on its own Field and Controller in parallel. Results
// keep the order of jobs.
func Sweep(ctx context.Context, jobs []Job, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(jobs))
	errs := make([]error, len(jobs))

	var wg sync.WaitGroup
	for i := range jobs {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx], errs[idx] = runJob(ctx, jobs[idx], cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

func runJob(ctx context.Context, job Job, cfg Config) (*Result, error) {
	field, err := skyrmion.New(job.Field)
	if err != nil {
		return nil, err
	}

	ctrl := efield.NewController()
	ctrl.Apply(job.Params)

	s := New(ctrl, field)
	s.Schedule(job.Events...)
	if job.Metrics != nil {
		for _, m := range job.Metrics() {
			s.AddMetric(m)
		}
	}

	return s.Run(ctx, cfg)
}
