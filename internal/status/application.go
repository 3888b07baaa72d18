package status

// ApplicationStatus is the state of an Application.
type ApplicationStatus string

const (
	ApplicationPending     ApplicationStatus = "pending"
	ApplicationReviewed    ApplicationStatus = "reviewed"
	ApplicationShortlisted ApplicationStatus = "shortlisted"
	ApplicationRejected    ApplicationStatus = "rejected"
	ApplicationHired       ApplicationStatus = "hired"
)

// InitialApplicationStatus is the status the backend assigns on creation.
func InitialApplicationStatus() ApplicationStatus {
	return ApplicationPending
}

// Known reports whether s is a recognized application status.
func (s ApplicationStatus) Known() bool {
	switch s {
	case ApplicationPending, ApplicationReviewed, ApplicationShortlisted, ApplicationRejected, ApplicationHired:
		return true
	default:
		return false
	}
}

// Terminal reports whether no action leads out of s.
func (s ApplicationStatus) Terminal() bool {
	return s == ApplicationRejected || s == ApplicationHired
}

// ApplicationMachine is the employer review workflow.
//
//	pending --shortlist--> shortlisted --hire--> hired
//	pending --reject-->    rejected
//
// reviewed is recognized but no action leads into or out of it.
type ApplicationMachine struct{}

// Next returns the status reached by applying action to from.
func (ApplicationMachine) Next(from ApplicationStatus, action Action, _ string) (ApplicationStatus, error) {
	switch from {
	case ApplicationPending:
		switch action {
		case ActionShortlist:
			return ApplicationShortlisted, nil
		case ActionReject:
			return ApplicationRejected, nil
		}
	case ApplicationShortlisted:
		if action == ActionHire {
			return ApplicationHired, nil
		}
	case ApplicationReviewed, ApplicationRejected, ApplicationHired:
	}
	return from, &InvalidTransitionError{Kind: KindApplication, From: string(from), Action: action}
}

// Actions lists the actions offered for an application in status from.
func (ApplicationMachine) Actions(from ApplicationStatus) []Action {
	switch from {
	case ApplicationPending:
		return []Action{ActionShortlist, ActionReject}
	case ApplicationShortlisted:
		return []Action{ActionHire}
	default:
		return nil
	}
}
