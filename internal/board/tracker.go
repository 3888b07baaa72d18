package board

import (
	"context"
	"time"

	"github.com/jonathan/jobboard/internal/session"
	"github.com/jonathan/jobboard/internal/status"
	"github.com/jonathan/jobboard/internal/types"
)

// AppliedDateLayout formats application dates on the tracker.
const AppliedDateLayout = "Jan 2, 2006"

// SeekerApplications is the backend used by the job seeker tracker.
type SeekerApplications interface {
	ApplicationsByUser(ctx context.Context, email string) ([]types.Application, error)
}

// TrackerEntry is one row of the job seeker's tracker.
type TrackerEntry struct {
	Application types.Application
	Status      status.ApplicationStatus
	Style       status.Style
	AppliedOn   string
	Response    string
	JobPath     string
}

// Tracker is the job seeker's read-only view of their applications.
type Tracker struct {
	svc  SeekerApplications
	list *List[types.Application, status.ApplicationStatus]
}

// NewTracker creates an empty tracker.
func NewTracker(svc SeekerApplications, opts ...Option) *Tracker {
	o := newOptions(opts)
	return &Tracker{
		svc:  svc,
		list: NewList[types.Application, status.ApplicationStatus]("tracker", nil, applicationAdapter, nil, o.logger),
	}
}

// Load fetches the applications submitted under the user's email.
func (t *Tracker) Load(ctx context.Context, user *types.User) error {
	if user == nil || user.Email == "" {
		return session.ErrNotLoggedIn
	}
	return t.list.Load(ctx, func(ctx context.Context) ([]types.Application, error) {
		return t.svc.ApplicationsByUser(ctx, user.Email)
	})
}

// Entries returns the tracker rows.
func (t *Tracker) Entries() []TrackerEntry {
	apps := t.list.Items()
	out := make([]TrackerEntry, len(apps))
	for i, app := range apps {
		st := status.ApplicationStatus(app.Status)
		out[i] = TrackerEntry{
			Application: app,
			Status:      st,
			Style:       status.StyleFor(status.KindApplication, app.Status),
			AppliedOn:   formatDate(app.AppliedAt),
			Response:    app.ResponseMessage,
			JobPath:     JobPath(app.JobID),
		}
	}
	return out
}

// JobPath is the page of a job listing.
func JobPath(id types.ID) string {
	return "/jobs/" + id.String()
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(AppliedDateLayout)
}
