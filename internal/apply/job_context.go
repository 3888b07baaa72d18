package apply

import (
	"context"
	"log"

	"github.com/jonathan/jobboard/internal/types"
	"golang.org/x/sync/errgroup"
)

// JobSource fetches the job being applied to and its related postings.
type JobSource interface {
	Job(ctx context.Context, id types.ID) (*types.Job, error)
	RelatedJobs(ctx context.Context, id types.ID) ([]types.Job, error)
}

// JobContext is what the application page shows around the form.
type JobContext struct {
	Job                *types.Job
	Related            []types.Job
	RelatedPlaceholder bool
}

// LoadJobContext fetches the job and its related jobs concurrently.
// A failed related-jobs lookup falls back to placeholder data; a failed job lookup is an error.
func LoadJobContext(ctx context.Context, src JobSource, id types.ID) (*JobContext, error) {
	out := &JobContext{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		job, err := src.Job(gctx, id)
		if err != nil {
			return err
		}
		out.Job = job
		return nil
	})
	g.Go(func() error {
		related, err := src.RelatedJobs(gctx, id)
		if err != nil {
			log.Printf("[apply] related jobs unavailable for job %s, using placeholders: %v", id, err)
			out.Related = PlaceholderRelatedJobs()
			out.RelatedPlaceholder = true
			return nil
		}
		out.Related = related
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// PlaceholderRelatedJobs is shown when related jobs cannot be loaded.
func PlaceholderRelatedJobs() []types.Job {
	return []types.Job{
		{ID: "placeholder-1", Title: "Frontend Developer", CompanyName: "TechCorp", Location: "Remote", JobType: "Full-time"},
		{ID: "placeholder-2", Title: "Backend Engineer", CompanyName: "DataSoft", Location: "New York, NY", JobType: "Full-time"},
		{ID: "placeholder-3", Title: "Product Designer", CompanyName: "Creative Labs", Location: "San Francisco, CA", JobType: "Contract"},
	}
}
