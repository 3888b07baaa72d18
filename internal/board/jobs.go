package board

import (
	"context"

	"github.com/jonathan/jobboard/internal/status"
	"github.com/jonathan/jobboard/internal/types"
)

// JobService is the backend used by the employer's job management.
type JobService interface {
	JobsByEmployer(ctx context.Context, employerID types.ID) ([]types.Job, error)
	UpdateJobStatus(ctx context.Context, id types.ID, status string) error
	DeleteJob(ctx context.Context, id types.ID) error
}

// JobManager is the employer's view of their own postings.
type JobManager struct {
	svc  JobService
	list *List[types.Job, status.JobStatus]
}

// NewJobManager creates an empty job manager.
func NewJobManager(svc JobService, opts ...Option) *JobManager {
	o := newOptions(opts)
	commit := func(ctx context.Context, id types.ID, to status.JobStatus, _ string) error {
		return svc.UpdateJobStatus(ctx, id, string(to))
	}
	return &JobManager{
		svc:  svc,
		list: NewList("jobs", status.Machine[status.JobStatus](status.ManagementMachine{}), jobAdapter, commit, o.logger),
	}
}

// Load fetches the employer's jobs.
func (m *JobManager) Load(ctx context.Context, employerID types.ID) error {
	return m.list.Load(ctx, func(ctx context.Context) ([]types.Job, error) {
		return m.svc.JobsByEmployer(ctx, employerID)
	})
}

// Jobs returns the employer's jobs.
func (m *JobManager) Jobs() []types.Job {
	return m.list.Items()
}

// Get returns one job.
func (m *JobManager) Get(id types.ID) (types.Job, bool) {
	return m.list.Get(id)
}

// Actions lists the management actions offered for a job.
func (m *JobManager) Actions(id types.ID) []status.Action {
	return m.list.Actions(id)
}

func (m *JobManager) Close(ctx context.Context, id types.ID) error {
	_, err := m.list.Transition(ctx, id, status.ActionClose, "")
	return err
}

func (m *JobManager) Reopen(ctx context.Context, id types.ID) error {
	_, err := m.list.Transition(ctx, id, status.ActionReopen, "")
	return err
}

func (m *JobManager) Draft(ctx context.Context, id types.ID) error {
	_, err := m.list.Transition(ctx, id, status.ActionDraft, "")
	return err
}

func (m *JobManager) Publish(ctx context.Context, id types.ID) error {
	_, err := m.list.Transition(ctx, id, status.ActionPublish, "")
	return err
}

// Delete removes a job permanently once confirm agrees.
func (m *JobManager) Delete(ctx context.Context, id types.ID, confirm Confirm) error {
	return deleteJob(ctx, m.list, id, confirm, m.svc.DeleteJob)
}
