// Package apply implements the job application form: validation, CV checks and submission.
package apply

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/jonathan/jobboard/internal/api"
	"github.com/jonathan/jobboard/internal/types"
)

const (
	// MinCoverLetterLength is the minimum trimmed cover letter length, in characters.
	MinCoverLetterLength = 100
	// MaxCVSize is the largest accepted CV, in bytes.
	MaxCVSize = 5 * 1024 * 1024
)

// Accepted CV content types.
const (
	ContentTypePDF  = "application/pdf"
	ContentTypeDOC  = "application/msword"
	ContentTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// User-facing submission failure messages.
const (
	FailureMessage = "Failed to submit application. Please try again."
	TimeoutMessage = "The upload timed out. Please check your connection and try again."
)

// ErrEmailLocked is returned when changing the email of a form pre-filled from the session.
var ErrEmailLocked = errors.New("email is taken from your account and cannot be changed")

// FieldError is a validation failure on one form field.
type FieldError struct {
	Field   string
	Message string
}

// FieldErrors is the list of validation failures shown with the form.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	msgs := make([]string, len(fe))
	for i, e := range fe {
		msgs[i] = e.Message
	}
	return "invalid application: " + strings.Join(msgs, "; ")
}

// For returns the message for one field, or "".
func (fe FieldErrors) For(field string) string {
	for _, e := range fe {
		if e.Field == field {
			return e.Message
		}
	}
	return ""
}

// SubmitError is a failed submission with the message to show the user.
type SubmitError struct {
	Message string
	Cause   error
}

func (e *SubmitError) Error() string {
	return e.Message
}

func (e *SubmitError) Unwrap() error {
	return e.Cause
}

// CV is the file attached to an application.
type CV struct {
	FileName    string
	ContentType string `form:"contentType" validate:"required,oneof=application/pdf application/msword application/vnd.openxmlformats-officedocument.wordprocessingml.document"`
	Size        int64  `form:"size" validate:"gt=0,max=5242880"`
	Data        []byte
}

// OpenCV reads a CV from disk and sniffs its content type.
// Files over MaxCVSize are not read into memory; validation rejects them.
func OpenCV(path string) (*CV, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CV: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("failed to open CV: %s is a directory", path)
	}

	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to detect CV type: %w", err)
	}

	cv := &CV{
		FileName:    filepath.Base(path),
		ContentType: normalizeContentType(mt),
		Size:        info.Size(),
	}
	if cv.Size <= MaxCVSize {
		if cv.Data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("failed to read CV: %w", err)
		}
	}
	return cv, nil
}

func normalizeContentType(mt *mimetype.MIME) string {
	for _, accepted := range []string{ContentTypePDF, ContentTypeDOC, ContentTypeDOCX} {
		if mt.Is(accepted) {
			return accepted
		}
	}
	base, _, _ := strings.Cut(mt.String(), ";")
	return strings.TrimSpace(base)
}

// JobRef is the job an application is for.
type JobRef struct {
	ID      types.ID
	Title   string
	Company string
}

// RefFor builds a JobRef from a job.
func RefFor(job *types.Job) JobRef {
	return JobRef{ID: job.ID, Title: job.Title, Company: job.CompanyName}
}

// Form collects one job application.
type Form struct {
	Job                JobRef `form:"-" validate:"-"`
	FullName           string `form:"fullName" validate:"required,notblank"`
	Email              string `form:"email" validate:"required,basicemail"`
	Phone              string `form:"phone" validate:"required,notblank"`
	CoverLetter        string `form:"coverLetter" validate:"required,mintrim=100"`
	Experience         string `form:"experience" validate:"required,notblank"`
	ExpectedSalary     string `form:"expectedSalary"`
	AvailableStartDate string `form:"availableStartDate"`
	AdditionalInfo     string `form:"additionalInfo"`
	CV                 *CV    `form:"cvFile" validate:"required"`

	emailLocked bool
}

// NewForm creates a form for job, pre-filled from the logged-in user when there is one.
// A pre-filled email cannot be changed.
func NewForm(job JobRef, user *types.User) *Form {
	f := &Form{Job: job}
	if user != nil {
		f.FullName = user.Name
		f.Phone = user.Phone
		if user.Email != "" {
			f.Email = user.Email
			f.emailLocked = true
		}
	}
	return f
}

// EmailLocked reports whether the email came from the session.
func (f *Form) EmailLocked() bool {
	return f.emailLocked
}

// SetEmail changes the email unless it is locked.
func (f *Form) SetEmail(email string) error {
	if f.emailLocked && email != f.Email {
		return ErrEmailLocked
	}
	f.Email = email
	return nil
}

// Validate checks every field and returns all failures, or nil.
func (f *Form) Validate() FieldErrors {
	if err := validate.Struct(f); err != nil {
		return fieldErrors(err)
	}
	return nil
}

// Submitter sends a validated application to the backend.
type Submitter interface {
	SubmitApplication(ctx context.Context, s api.Submission) (*types.Application, error)
}

// Result is passed to the success callback.
type Result struct {
	ApplicationID types.ID
	Job           JobRef
	Submission    api.Submission
}

// Submit validates the form and, only when it is valid, submits it.
// onSuccess may be nil. Validation failures are returned as FieldErrors;
// submission failures as *SubmitError.
func (f *Form) Submit(ctx context.Context, s Submitter, onSuccess func(Result)) (types.ID, error) {
	if errs := f.Validate(); len(errs) > 0 {
		return "", errs
	}

	sub := f.submission()
	app, err := s.SubmitApplication(ctx, sub)
	if err != nil {
		log.Printf("[apply] submission for job %s failed: %v", f.Job.ID, err)
		return "", &SubmitError{Message: failureMessage(err), Cause: err}
	}

	if onSuccess != nil {
		onSuccess(Result{ApplicationID: app.ID, Job: f.Job, Submission: sub})
	}
	return app.ID, nil
}

func (f *Form) submission() api.Submission {
	return api.Submission{
		JobID:              f.Job.ID,
		FullName:           strings.TrimSpace(f.FullName),
		Email:              strings.TrimSpace(f.Email),
		Phone:              strings.TrimSpace(f.Phone),
		CoverLetter:        f.CoverLetter,
		Experience:         f.Experience,
		ExpectedSalary:     strings.TrimSpace(f.ExpectedSalary),
		AvailableStartDate: strings.TrimSpace(f.AvailableStartDate),
		AdditionalInfo:     f.AdditionalInfo,
		CV: api.CVUpload{
			FileName:    f.CV.FileName,
			ContentType: f.CV.ContentType,
			Data:        f.CV.Data,
		},
	}
}

func failureMessage(err error) string {
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		return FailureMessage
	}
	switch {
	case apiErr.Kind == api.KindValidation && len(apiErr.Fields) > 0:
		return api.UserMessage(err)
	case apiErr.Kind == api.KindTimeout:
		return TimeoutMessage
	case apiErr.Kind == api.KindAPI && apiErr.Message != "":
		return apiErr.Message
	default:
		return FailureMessage
	}
}
