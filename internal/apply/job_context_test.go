package apply

import (
	"context"
	"errors"
	"testing"

	"github.com/jonathan/jobboard/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeJobs struct {
	job        *types.Job
	jobErr     error
	related    []types.Job
	relatedErr error
}

func (f *fakeJobs) Job(_ context.Context, _ types.ID) (*types.Job, error) {
	return f.job, f.jobErr
}

func (f *fakeJobs) RelatedJobs(_ context.Context, _ types.ID) ([]types.Job, error) {
	return f.related, f.relatedErr
}

func TestLoadJobContext(t *testing.T) {
	src := &fakeJobs{
		job:     &types.Job{ID: "7", Title: "Go Developer"},
		related: []types.Job{{ID: "8", Title: "Rust Developer"}},
	}

	jc, err := LoadJobContext(context.Background(), src, "7")
	require.NoError(t, err)
	assert.Equal(t, "Go Developer", jc.Job.Title)
	assert.Len(t, jc.Related, 1)
	assert.False(t, jc.RelatedPlaceholder)
}

func TestLoadJobContext_RelatedFallsBackToPlaceholders(t *testing.T) {
	src := &fakeJobs{
		job:        &types.Job{ID: "7", Title: "Go Developer"},
		relatedErr: errors.New("503"),
	}

	jc, err := LoadJobContext(context.Background(), src, "7")
	require.NoError(t, err)
	assert.True(t, jc.RelatedPlaceholder)
	assert.Equal(t, PlaceholderRelatedJobs(), jc.Related)
}

func TestLoadJobContext_JobErrorFails(t *testing.T) {
	boom := errors.New("not found")
	src := &fakeJobs{jobErr: boom}

	_, err := LoadJobContext(context.Background(), src, "7")
	assert.ErrorIs(t, err, boom)
}
