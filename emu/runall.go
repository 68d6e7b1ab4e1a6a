package emu

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// A Job describes a program to run on its own machine.
type Job struct {
	Name      string
	Config    Config
	Program   *Program
	MaxCycles int64
}

// A Result is the outcome of a Job.
type Result struct {
	Name    string
	Machine *Machine
	Stop    Stop
}

// RunAll runs each job on its own machine, concurrently. Machines don't share
// any state. Results are in the same order as jobs. The first error cancels
// the other jobs.
func RunAll(ctx context.Context, jobs []Job) ([]Result, error) {
	results := make([]Result, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	for i, job := range jobs {
		g.Go(func() error {
			m, err := NewMachine(job.Config)
			if err != nil {
				return fmt.Errorf("job %s: %w", job.Name, err)
			}
			if err := m.Load(job.Program); err != nil {
				return fmt.Errorf("job %s: %w", job.Name, err)
			}
			m.Reset()

			stop := m.RunUntilTrapContext(ctx, job.MaxCycles)
			if stop == StopCanceled {
				return fmt.Errorf("job %s: %w", job.Name, ctx.Err())
			}
			results[i] = Result{Name: job.Name, Machine: m, Stop: stop}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
