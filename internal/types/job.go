//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"time"
)

// Job is a posting created by an employer.
// The same status field is driven by the employer (active/closed/draft)
// and by admin moderation (pending/approved/rejected/flagged).
type Job struct {
	ID              ID        `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Location        string    `json:"location"`
	Category        string    `json:"category,omitempty"`
	JobType         string    `json:"job_type,omitempty"`
	ExperienceLevel string    `json:"experience_level,omitempty"`
	Salary          Scalar    `json:"salary,omitempty"`
	CompanyID       ID        `json:"company_id,omitempty"`
	CompanyName     string    `json:"company_name,omitempty"`
	EmployerID      ID        `json:"employer_id,omitempty"`
	Status          string    `json:"status"`
	Reason          string    `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// UnmarshalJSON also accepts the rejection reason under "reason", the key
// the moderation endpoint uses in its request body.
func (j *Job) UnmarshalJSON(data []byte) error {
	type plain Job
	aux := struct {
		*plain
		LegacyReason string `json:"reason"`
	}{plain: (*plain)(j)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if j.Reason == "" {
		j.Reason = aux.LegacyReason
	}
	return nil
}

// PaymentStatus is the result of the admin payment pre-check for a job.
type PaymentStatus struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
