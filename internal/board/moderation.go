package board

import (
	"context"
	"fmt"

	"github.com/jonathan/jobboard/internal/status"
	"github.com/jonathan/jobboard/internal/types"
)

// ModerationService is the backend used by the admin moderation board.
type ModerationService interface {
	AdminJobs(ctx context.Context, status string) ([]types.Job, error)
	ModerateJob(ctx context.Context, id types.ID, status, reason string) error
	PaymentStatus(ctx context.Context, id types.ID) (*types.PaymentStatus, error)
	AdminDeleteJob(ctx context.Context, id types.ID) error
}

// ApprovalBlockedError is returned when the payment check refuses an approval.
type ApprovalBlockedError struct {
	Message string
}

func (e *ApprovalBlockedError) Error() string {
	return "Cannot approve job: " + e.Message
}

var jobAdapter = Adapter[types.Job, status.JobStatus]{
	ID:     func(j types.Job) types.ID { return j.ID },
	Status: func(j types.Job) status.JobStatus { return status.JobStatus(j.Status) },
	WithStatus: func(j types.Job, to status.JobStatus, note string) types.Job {
		j.Status = string(to)
		if note != "" {
			j.Reason = note
		}
		return j
	},
}

// ModerationBoard is the admin's job moderation queue.
type ModerationBoard struct {
	svc  ModerationService
	list *List[types.Job, status.JobStatus]
	opts *options
}

// NewModerationBoard creates an empty moderation board.
func NewModerationBoard(svc ModerationService, opts ...Option) *ModerationBoard {
	o := newOptions(opts)
	commit := func(ctx context.Context, id types.ID, to status.JobStatus, reason string) error {
		return svc.ModerateJob(ctx, id, string(to), reason)
	}
	return &ModerationBoard{
		svc:  svc,
		list: NewList("moderation", status.Machine[status.JobStatus](status.ModerationMachine{}), jobAdapter, commit, o.logger),
		opts: o,
	}
}

// Load fetches jobs in the given moderation status; "" loads all.
func (b *ModerationBoard) Load(ctx context.Context, filter status.JobStatus) error {
	return b.list.Load(ctx, func(ctx context.Context) ([]types.Job, error) {
		return b.svc.AdminJobs(ctx, string(filter))
	})
}

// Jobs returns the jobs on the board.
func (b *ModerationBoard) Jobs() []types.Job {
	return b.list.Items()
}

// Get returns one job.
func (b *ModerationBoard) Get(id types.ID) (types.Job, bool) {
	return b.list.Get(id)
}

// Actions lists the moderation actions offered for a job.
func (b *ModerationBoard) Actions(id types.ID) []status.Action {
	return b.list.Actions(id)
}

// Approve approves a job. With the payment check enabled, an unpaid job is
// refused without calling the approval endpoint; a check that cannot be
// completed lets the approval through.
func (b *ModerationBoard) Approve(ctx context.Context, id types.ID) error {
	if _, err := b.list.Plan(id, status.ActionApprove, ""); err != nil {
		return err
	}

	if b.opts.paymentCheck {
		ps, err := b.svc.PaymentStatus(ctx, id)
		switch {
		case err != nil:
			b.opts.logger.Printf("[board] payment check for job %s failed, approving anyway: %v", id, err)
		case !ps.Success:
			return &ApprovalBlockedError{Message: ps.Message}
		}
	}

	_, err := b.list.Transition(ctx, id, status.ActionApprove, "")
	return err
}

// Reject rejects a job. The reason is required when rejecting an approved job.
func (b *ModerationBoard) Reject(ctx context.Context, id types.ID, reason string) error {
	_, err := b.list.Transition(ctx, id, status.ActionReject, reason)
	return err
}

// Flag flags a pending job for review. The reason is required.
func (b *ModerationBoard) Flag(ctx context.Context, id types.ID, reason string) error {
	_, err := b.list.Transition(ctx, id, status.ActionFlag, reason)
	return err
}

// RequiresReason reports whether action on the job needs a reason.
func (b *ModerationBoard) RequiresReason(id types.ID, action status.Action) bool {
	job, ok := b.list.Get(id)
	if !ok {
		return false
	}
	return status.ModerationMachine{}.RequiresReason(status.JobStatus(job.Status), action)
}

// Delete removes a job permanently once confirm agrees.
func (b *ModerationBoard) Delete(ctx context.Context, id types.ID, confirm Confirm) error {
	return deleteJob(ctx, b.list, id, confirm, b.svc.AdminDeleteJob)
}

func deleteJob(ctx context.Context, list *List[types.Job, status.JobStatus], id types.ID, confirm Confirm, del func(context.Context, types.ID) error) error {
	job, ok := list.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	prompt := fmt.Sprintf("Delete job %q permanently? This cannot be undone.", job.Title)
	if confirm == nil || !confirm(prompt) {
		return ErrNotConfirmed
	}
	return list.Remove(ctx, id, del)
}
