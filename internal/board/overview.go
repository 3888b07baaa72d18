package board

import (
	"context"
	"fmt"

	"github.com/jonathan/jobboard/internal/status"
	"github.com/jonathan/jobboard/internal/types"
	"golang.org/x/sync/errgroup"
)

// OverviewStatuses are the moderation states counted on the admin dashboard.
var OverviewStatuses = []status.JobStatus{
	status.JobPending,
	status.JobApproved,
	status.JobRejected,
	status.JobFlagged,
}

// JobLister lists jobs by moderation status.
type JobLister interface {
	AdminJobs(ctx context.Context, status string) ([]types.Job, error)
}

// StatusCount is the number of jobs in one status.
type StatusCount struct {
	Status status.JobStatus
	Count  int
}

// Overview is the admin dashboard summary.
type Overview struct {
	Counts []StatusCount
	Total  int
}

// LoadOverview counts jobs in each status concurrently.
// With no statuses given, OverviewStatuses are counted.
func LoadOverview(ctx context.Context, svc JobLister, statuses ...status.JobStatus) (*Overview, error) {
	if len(statuses) == 0 {
		statuses = OverviewStatuses
	}

	counts := make([]StatusCount, len(statuses))
	g, gctx := errgroup.WithContext(ctx)
	for i, st := range statuses {
		g.Go(func() error {
			jobs, err := svc.AdminJobs(gctx, string(st))
			if err != nil {
				return fmt.Errorf("failed to count %s jobs: %w", st, err)
			}
			counts[i] = StatusCount{Status: st, Count: len(jobs)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ov := &Overview{Counts: counts}
	for _, c := range counts {
		ov.Total += c.Count
	}
	return ov, nil
}
