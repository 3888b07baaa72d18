package status

import "strings"

// JobStatus is the state of a Job.
type JobStatus string

const (
	JobPending  JobStatus = "pending"
	JobApproved JobStatus = "approved"
	JobActive   JobStatus = "active"
	JobRejected JobStatus = "rejected"
	JobFlagged  JobStatus = "flagged"
	JobClosed   JobStatus = "closed"
	JobDraft    JobStatus = "draft"
)

// Known reports whether s is a recognized job status.
func (s JobStatus) Known() bool {
	switch s {
	case JobPending, JobApproved, JobActive, JobRejected, JobFlagged, JobClosed, JobDraft:
		return true
	default:
		return false
	}
}

type reasonPolicy int

const (
	reasonNone reasonPolicy = iota
	reasonOptional
	reasonRequired
)

// ModerationMachine is the admin moderation workflow for jobs.
//
//	pending  --approve--> approved
//	pending  --reject-->  rejected (reason optional)
//	pending  --flag-->    flagged  (reason required)
//	rejected --approve--> approved
//	approved --reject-->  rejected (reason required)
type ModerationMachine struct{}

func (ModerationMachine) rule(from JobStatus, action Action) (JobStatus, reasonPolicy, bool) {
	switch from {
	case JobPending:
		switch action {
		case ActionApprove:
			return JobApproved, reasonNone, true
		case ActionReject:
			return JobRejected, reasonOptional, true
		case ActionFlag:
			return JobFlagged, reasonRequired, true
		}
	case JobRejected:
		if action == ActionApprove {
			return JobApproved, reasonNone, true
		}
	case JobApproved:
		if action == ActionReject {
			return JobRejected, reasonRequired, true
		}
	case JobActive, JobFlagged, JobClosed, JobDraft:
	}
	return from, reasonNone, false
}

// Next returns the status reached by applying action to from.
func (m ModerationMachine) Next(from JobStatus, action Action, reason string) (JobStatus, error) {
	to, policy, ok := m.rule(from, action)
	if !ok {
		return from, &InvalidTransitionError{Kind: KindJob, From: string(from), Action: action}
	}
	if policy == reasonRequired && strings.TrimSpace(reason) == "" {
		return from, ErrReasonRequired
	}
	return to, nil
}

// RequiresReason reports whether the moderation action needs a reason.
func (m ModerationMachine) RequiresReason(from JobStatus, action Action) bool {
	_, policy, ok := m.rule(from, action)
	return ok && policy == reasonRequired
}

// Actions lists the moderation actions offered for a job in status from.
func (ModerationMachine) Actions(from JobStatus) []Action {
	switch from {
	case JobPending:
		return []Action{ActionApprove, ActionReject, ActionFlag}
	case JobRejected:
		return []Action{ActionApprove}
	case JobApproved:
		return []Action{ActionReject}
	default:
		return nil
	}
}

// ManagementMachine is the employer's own job lifecycle.
//
//	active --close--> closed --reopen--> active
//	active|closed --draft--> draft --publish--> active
type ManagementMachine struct{}

// Next returns the status reached by applying action to from.
func (ManagementMachine) Next(from JobStatus, action Action, _ string) (JobStatus, error) {
	switch from {
	case JobActive:
		switch action {
		case ActionClose:
			return JobClosed, nil
		case ActionDraft:
			return JobDraft, nil
		}
	case JobClosed:
		switch action {
		case ActionReopen:
			return JobActive, nil
		case ActionDraft:
			return JobDraft, nil
		}
	case JobDraft:
		if action == ActionPublish {
			return JobActive, nil
		}
	case JobPending, JobApproved, JobRejected, JobFlagged:
	}
	return from, &InvalidTransitionError{Kind: KindJob, From: string(from), Action: action}
}

// Actions lists the management actions offered for a job in status from.
func (ManagementMachine) Actions(from JobStatus) []Action {
	switch from {
	case JobActive:
		return []Action{ActionClose, ActionDraft}
	case JobClosed:
		return []Action{ActionReopen, ActionDraft}
	case JobDraft:
		return []Action{ActionPublish}
	default:
		return nil
	}
}
