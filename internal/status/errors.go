// Package status defines the Application and Job status machines and their display styles.
package status

import (
	"errors"
	"fmt"
)

// ErrReasonRequired is returned when a transition needs a non-blank reason.
var ErrReasonRequired = errors.New("a reason is required for this action")

// InvalidTransitionError indicates an action that is not offered for the current status.
type InvalidTransitionError struct {
	Kind   Kind
	From   string
	Action Action
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid %s transition: cannot %s from %q", e.Kind, e.Action, e.From)
}
