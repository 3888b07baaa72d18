package api

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/jonathan/jobboard/internal/types"
	"github.com/jonathan/jobboard/schemas"
)

// CVUpload is the CV file attached to a submission.
type CVUpload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Submission is the multipart body of POST /applications/submit.
type Submission struct {
	JobID              types.ID
	FullName           string
	Email              string
	Phone              string
	CoverLetter        string
	Experience         string
	ExpectedSalary     string
	AvailableStartDate string
	AdditionalInfo     string
	CV                 CVUpload
}

type applicationEnvelope struct {
	Application types.Application `json:"application"`
}

type applicationsEnvelope struct {
	Applications []types.Application `json:"applications"`
}

// SubmitApplication uploads an application with its CV and returns the created record.
func (c *Client) SubmitApplication(ctx context.Context, s Submission) (*types.Application, error) {
	body, contentType, err := s.multipart()
	if err != nil {
		return nil, fmt.Errorf("submit application: %w", err)
	}

	var out applicationEnvelope
	err = c.call(ctx, request{
		op:            "submit application",
		method:        http.MethodPost,
		path:          "/applications/submit",
		body:          body,
		contentType:   contentType,
		authenticated: true,
	}, schemas.ApplicationSubmit, &out)
	if err != nil {
		return nil, err
	}
	if out.Application.ID.IsZero() {
		return nil, &Error{Op: "submit application", Kind: KindContract, Message: "response is missing application id"}
	}
	return &out.Application, nil
}

func (s Submission) multipart() (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := []struct{ name, value string }{
		{"jobId", s.JobID.String()},
		{"fullName", s.FullName},
		{"email", s.Email},
		{"phone", s.Phone},
		{"coverLetter", s.CoverLetter},
		{"experience", s.Experience},
		{"expectedSalary", s.ExpectedSalary},
		{"availableStartDate", s.AvailableStartDate},
		{"additionalInfo", s.AdditionalInfo},
	}
	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", f.name, err)
		}
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="cvFile"; filename="%s"`, escapeQuotes(s.CV.FileName)))
	contentType := s.CV.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("create cv part: %w", err)
	}
	if _, err := part.Write(s.CV.Data); err != nil {
		return nil, "", fmt.Errorf("write cv: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close form: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

// ApplicationsByUser lists the applications submitted under an email address.
func (c *Client) ApplicationsByUser(ctx context.Context, email string) ([]types.Application, error) {
	var out applicationsEnvelope
	err := c.call(ctx, request{
		op:            "list user applications",
		method:        http.MethodGet,
		path:          "/applications/user/" + url.PathEscape(email),
		authenticated: true,
	}, schemas.ApplicationList, &out)
	if err != nil {
		return nil, err
	}
	return out.Applications, nil
}

// ApplicationsByEmployer lists the applications across all of an employer's jobs.
func (c *Client) ApplicationsByEmployer(ctx context.Context, employerID types.ID) ([]types.Application, error) {
	var out applicationsEnvelope
	err := c.call(ctx, request{
		op:            "list employer applications",
		method:        http.MethodGet,
		path:          "/applications/employer/" + url.PathEscape(employerID.String()),
		authenticated: true,
	}, schemas.ApplicationList, &out)
	if err != nil {
		return nil, err
	}
	return out.Applications, nil
}

type statusUpdate struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// UpdateApplicationStatus sets an application's status with an optional message to the applicant.
func (c *Client) UpdateApplicationStatus(ctx context.Context, id types.ID, status, message string) error {
	body, err := jsonBody(statusUpdate{Status: status, Message: message})
	if err != nil {
		return err
	}
	return c.call(ctx, request{
		op:            "update application status",
		method:        http.MethodPut,
		path:          "/applications/" + url.PathEscape(id.String()) + "/status",
		body:          body,
		contentType:   "application/json",
		authenticated: true,
	}, "", nil)
}

// DownloadCV fetches a stored CV as raw bytes.
func (c *Client) DownloadCV(ctx context.Context, filename string) ([]byte, error) {
	if filename == "" {
		return nil, &Error{Op: "download cv", Kind: KindNotFound, Message: "application has no CV file"}
	}
	resp, err := c.send(ctx, request{
		op:            "download cv",
		method:        http.MethodGet,
		path:          "/applications/download-cv/" + url.PathEscape(filename),
		authenticated: true,
	})
	if err != nil {
		return nil, err
	}
	return resp.body, nil
}
