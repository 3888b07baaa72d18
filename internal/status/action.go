package status

// Kind names the entity a status belongs to.
type Kind string

const (
	KindApplication Kind = "application"
	KindJob         Kind = "job"
)

// Action is a user-triggered status change.
type Action string

const (
	// Employer actions on applications
	ActionShortlist Action = "shortlist"
	ActionReject    Action = "reject"
	ActionHire      Action = "hire"

	// Admin moderation actions on jobs (ActionReject is shared)
	ActionApprove Action = "approve"
	ActionFlag    Action = "flag"

	// Employer management actions on jobs
	ActionClose   Action = "close"
	ActionReopen  Action = "reopen"
	ActionDraft   Action = "draft"
	ActionPublish Action = "publish"
)

// Machine computes the next status for an action.
// note carries the optional employer message or moderation reason.
type Machine[S ~string] interface {
	Next(from S, action Action, note string) (S, error)
	Actions(from S) []Action
}
