package explorer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/holocron/pkg/integrations/swapi"
	"github.com/matzehuels/holocron/pkg/observability"
)

// SeedReport summarizes a seeding run.
type SeedReport struct {
	Types    []swapi.EntityType         // types seeded, in request order
	Counts   map[swapi.EntityType]int   // nodes loaded per successful type
	Failures map[swapi.EntityType]error // per-type failures
	Duration time.Duration
}

// Total returns the number of nodes loaded across all types.
func (r *SeedReport) Total() int {
	n := 0
	for _, c := range r.Counts {
		n += c
	}
	return n
}

// Seed loads every page of each type concurrently, warming both client
// caches, and waits for all of them. With no types given it seeds every
// [swapi.EntityTypes] entry once; repeated types are seeded once.
//
// The report is always returned. The error joins every per-type failure.
func (e *Explorer) Seed(ctx context.Context, types ...swapi.EntityType) (*SeedReport, error) {
	types = uniqueTypes(types)
	report := &SeedReport{
		Types:    types,
		Counts:   make(map[swapi.EntityType]int, len(types)),
		Failures: make(map[swapi.EntityType]error),
	}
	hooks := observability.Explorer()
	start := time.Now()

	var (
		mu   sync.Mutex
		errs []error
		wg   sync.WaitGroup
	)
	for _, t := range types {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hooks.OnSeedStart(ctx, string(t))
			typeStart := time.Now()

			nodes, err := e.Source.GetAll(ctx, t)
			hooks.OnSeedComplete(ctx, string(t), len(nodes), time.Since(typeStart), err)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				e.Logger.Warn("seed failed", "type", t, "err", err)
				report.Failures[t] = err
				errs = append(errs, fmt.Errorf("seed %s: %w", t, err))
				return
			}
			e.Logger.Debug("seeded", "type", t, "nodes", len(nodes), "duration", time.Since(typeStart))
			report.Counts[t] = len(nodes)
		}()
	}
	wg.Wait()

	report.Duration = time.Since(start)
	e.Logger.Info("seed complete",
		"types", len(types),
		"nodes", report.Total(),
		"failures", len(report.Failures),
		"duration", report.Duration)

	return report, errors.Join(errs...)
}

// Job is a handle on a background seeding run started by [Explorer.Prime].
type Job struct {
	ID        string
	StartedAt time.Time

	done   chan struct{}
	report *SeedReport
	err    error
}

// Prime starts [Explorer.Seed] in the background and returns its handle.
// The run stops early only if ctx is canceled.
func (e *Explorer) Prime(ctx context.Context, types ...swapi.EntityType) *Job {
	job := &Job{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
		done:      make(chan struct{}),
	}
	e.Logger.Debug("prime started", "job", job.ID)
	go func() {
		defer close(job.done)
		job.report, job.err = e.Seed(ctx, types...)
	}()
	return job
}

// Done is closed when the run finishes.
func (j *Job) Done() <-chan struct{} { return j.done }

// Wait blocks until the run finishes and returns its outcome.
func (j *Job) Wait() (*SeedReport, error) {
	<-j.done
	return j.report, j.err
}

// Report returns the report without blocking. ok is false while the run
// is in progress.
func (j *Job) Report() (report *SeedReport, ok bool) {
	select {
	case <-j.done:
		return j.report, true
	default:
		return nil, false
	}
}

// Err returns the run's aggregate error, or nil while it is in progress.
func (j *Job) Err() error {
	select {
	case <-j.done:
		return j.err
	default:
		return nil
	}
}

func uniqueTypes(types []swapi.EntityType) []swapi.EntityType {
	if len(types) == 0 {
		return append([]swapi.EntityType(nil), swapi.EntityTypes...)
	}
	seen := make(map[swapi.EntityType]bool, len(types))
	out := make([]swapi.EntityType, 0, len(types))
	for _, t := range types {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
