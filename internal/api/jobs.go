package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/jonathan/jobboard/internal/types"
	"github.com/jonathan/jobboard/schemas"
)

type jobEnvelope struct {
	Job types.Job `json:"job"`
}

type jobsEnvelope struct {
	Jobs []types.Job `json:"jobs"`
}

func jobPath(id types.ID) string {
	return "/jobs/" + url.PathEscape(id.String())
}

func adminJobPath(id types.ID) string {
	return "/admin/jobs/" + url.PathEscape(id.String())
}

// Job fetches one job posting.
func (c *Client) Job(ctx context.Context, id types.ID) (*types.Job, error) {
	var out jobEnvelope
	err := c.call(ctx, request{
		op:            "get job",
		method:        http.MethodGet,
		path:          jobPath(id),
		authenticated: true,
	}, schemas.JobDetail, &out)
	if err != nil {
		return nil, err
	}
	return &out.Job, nil
}

// RelatedJobs lists postings similar to the given one.
func (c *Client) RelatedJobs(ctx context.Context, id types.ID) ([]types.Job, error) {
	return c.listJobs(ctx, "list related jobs", jobPath(id)+"/related")
}

// JobsByEmployer lists an employer's own postings.
func (c *Client) JobsByEmployer(ctx context.Context, employerID types.ID) ([]types.Job, error) {
	return c.listJobs(ctx, "list employer jobs", "/jobs/employer/"+url.PathEscape(employerID.String()))
}

// AdminJobs lists postings for moderation, filtered by status when status is not empty.
func (c *Client) AdminJobs(ctx context.Context, status string) ([]types.Job, error) {
	path := "/admin/jobs"
	if status != "" {
		path += "?" + url.Values{"status": {status}}.Encode()
	}
	return c.listJobs(ctx, "list admin jobs", path)
}

func (c *Client) listJobs(ctx context.Context, op, path string) ([]types.Job, error) {
	var out jobsEnvelope
	err := c.call(ctx, request{
		op:            op,
		method:        http.MethodGet,
		path:          path,
		authenticated: true,
	}, schemas.JobList, &out)
	if err != nil {
		return nil, err
	}
	return out.Jobs, nil
}

// UpdateJobStatus changes the status of the employer's own job.
func (c *Client) UpdateJobStatus(ctx context.Context, id types.ID, status string) error {
	body, err := jsonBody(statusUpdate{Status: status})
	if err != nil {
		return err
	}
	return c.call(ctx, request{
		op:            "update job status",
		method:        http.MethodPut,
		path:          jobPath(id) + "/status",
		body:          body,
		contentType:   "application/json",
		authenticated: true,
	}, "", nil)
}

// DeleteJob removes the employer's own job.
func (c *Client) DeleteJob(ctx context.Context, id types.ID) error {
	return c.call(ctx, request{
		op:            "delete job",
		method:        http.MethodDelete,
		path:          jobPath(id),
		authenticated: true,
	}, "", nil)
}

// ModerateJob sets the moderation status of a job with an optional reason.
func (c *Client) ModerateJob(ctx context.Context, id types.ID, status, reason string) error {
	body, err := jsonBody(statusUpdate{Status: status, Reason: reason})
	if err != nil {
		return err
	}
	return c.call(ctx, request{
		op:            "moderate job",
		method:        http.MethodPut,
		path:          adminJobPath(id) + "/status",
		body:          body,
		contentType:   "application/json",
		authenticated: true,
	}, "", nil)
}

// AdminDeleteJob removes any job.
func (c *Client) AdminDeleteJob(ctx context.Context, id types.ID) error {
	return c.call(ctx, request{
		op:            "admin delete job",
		method:        http.MethodDelete,
		path:          adminJobPath(id),
		authenticated: true,
	}, "", nil)
}

// PaymentStatus runs the payment pre-check for a job.
// A {success:false} answer is a normal result here, not an error.
func (c *Client) PaymentStatus(ctx context.Context, id types.ID) (*types.PaymentStatus, error) {
	resp, err := c.send(ctx, request{
		op:            "payment status",
		method:        http.MethodGet,
		path:          adminJobPath(id) + "/payment-status",
		authenticated: true,
	})
	if err != nil {
		return nil, err
	}

	var out types.PaymentStatus
	if err := json.Unmarshal(bytes.TrimSpace(resp.body), &out); err != nil {
		return nil, &Error{Op: "payment status", Kind: KindContract, Message: "failed to decode response", Cause: err}
	}
	return &out, nil
}
