package sim

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/mverhelle/folio/internal/steer"
)

// Job is one run in a batch. Metrics and Observers are called once per job
// so runs never share their state.
type Job struct {
	Name      string
	Params    steer.Params
	Start     steer.State
	Source    Source
	Config    Config
	Metrics   func() []Metric
	Observers func() []Observer
}

// RunBatch runs jobs concurrently, at most limit at a time (no limit when
// limit <= 0). Results keep the job order. The first error cancels the rest.
func RunBatch(ctx context.Context, jobs []Job, limit int) ([]*Result, error) {
	results := make([]*Result, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, job := range jobs {
		g.Go(func() error {
			s := New(job.Params, job.Source)
			if job.Metrics != nil {
				for _, m := range job.Metrics() {
					s.AddMetric(m)
				}
			}
			if job.Observers != nil {
				for _, o := range job.Observers() {
					s.AddObserver(o)
				}
			}
			res, err := s.Run(ctx, job.Start, job.Config)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
