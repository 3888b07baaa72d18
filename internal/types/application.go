//nolint:revive // types is a standard Go package name pattern
package types

import (
	"path/filepath"
	"strings"
	"time"
)

// Application is one job seeker's submission against one job posting.
// Status holds the raw wire value; internal/status gives it meaning.
type Application struct {
	ID                 ID         `json:"id"`
	JobID              ID         `json:"job_id"`
	JobTitle           string     `json:"job_title,omitempty"`
	CompanyName        string     `json:"company_name,omitempty"`
	EmployerID         ID         `json:"employer_id,omitempty"`
	ApplicantID        ID         `json:"applicant_id,omitempty"`
	FullName           string     `json:"full_name"`
	Email              string     `json:"email"`
	Phone              string     `json:"phone"`
	CoverLetter        string     `json:"cover_letter"`
	Experience         string     `json:"experience"`
	ExpectedSalary     Scalar     `json:"expected_salary,omitempty"`
	AvailableStartDate string     `json:"available_start_date,omitempty"`
	AdditionalInfo     string     `json:"additional_info,omitempty"`
	CVFile             string     `json:"cv_file,omitempty"`
	Status             string     `json:"status"`
	ResponseMessage    string     `json:"response_message,omitempty"`
	AppliedAt          time.Time  `json:"applied_at"`
	UpdatedAt          *time.Time `json:"updated_at,omitempty"`
}

// CVExtension returns the extension of the stored CV file without the dot.
// Falls back to "pdf" when the stored name has none.
func (a *Application) CVExtension() string {
	ext := strings.TrimPrefix(filepath.Ext(a.CVFile), ".")
	if ext == "" {
		return "pdf"
	}
	return strings.ToLower(ext)
}

// CVFileName returns the base name of the stored CV, as used in download URLs.
func (a *Application) CVFileName() string {
	if a.CVFile == "" {
		return ""
	}
	return filepath.Base(filepath.ToSlash(a.CVFile))
}
