package main

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/jonathan/jobboard/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginAndWhoami(t *testing.T) {
	env := newCLIEnv(t)
	env.mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "secret" {
			writeJSON(w, http.StatusOK, map[string]any{"success": false, "error": "Invalid email or password"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "token": "jwt", "user": employer})
	})

	_, err := env.run("", "login", "--email", "hr@acme.test", "--password", "wrong")
	require.Error(t, err)
	assert.Contains(t, errorMessage(err), "Invalid email or password")

	out, err := env.run("secret\n", "login", "--email", "hr@acme.test")
	require.NoError(t, err)
	assert.Contains(t, out, "Password: ")
	assert.Contains(t, out, "Logged in as Acme HR (employer)")
	assert.Equal(t, "jwt", env.state().Token)

	out, err = env.run("", "whoami")
	require.NoError(t, err)
	assert.Equal(t, "Acme HR <hr@acme.test> (employer)\n", out)

	_, err = env.run("", "logout")
	require.NoError(t, err)
	assert.Empty(t, env.state().Token)

	out, err = env.run("", "whoami")
	require.NoError(t, err)
	assert.Equal(t, "Not logged in.\n", out)
}

func TestLogin_RequiresEmail(t *testing.T) {
	env := newCLIEnv(t)
	_, err := env.run("", "login")
	assert.ErrorContains(t, err, "required flag")
}

func TestPages_GatedByUserType(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.run("", "my-applications")
	assert.ErrorIs(t, err, session.ErrNotLoggedIn)

	env.loginAs(seeker)
	_, err = env.run("", "employer", "applications")
	assert.EqualError(t, err, "/employer/applications is not available to jobseeker accounts")

	_, err = env.run("", "admin", "moderation")
	assert.EqualError(t, err, "/admin/moderation is not available to jobseeker accounts")
}

func TestEmployerShortlist(t *testing.T) {
	env := newCLIEnv(t)
	env.loginAs(employer)

	var put map[string]any
	var putPath, auth string
	env.mux.HandleFunc("GET /applications/employer/{id}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "emp-1", r.PathValue("id"))
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "applications": []map[string]any{
			{"id": 42, "job_id": 7, "job_title": "Go Developer", "full_name": "Ada", "status": "pending"},
		}})
	})
	env.mux.HandleFunc("PUT /applications/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		putPath = r.URL.Path
		auth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&put)
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	})

	out, err := env.run("", "employer", "applications", "shortlist", "42", "-m", "Let's talk")
	require.NoError(t, err)
	assert.Contains(t, out, "Application #42 shortlisted")
	assert.Equal(t, "/applications/42/status", putPath)
	assert.Equal(t, "Bearer tok-employer", auth)
	assert.Equal(t, map[string]any{"status": "shortlisted", "message": "Let's talk"}, put)

	_, err = env.run("", "employer", "applications", "hire", "42")
	assert.ErrorContains(t, err, "cannot hire")
}

func TestEmployerApplications_ListWithHighlight(t *testing.T) {
	env := newCLIEnv(t)
	env.loginAs(employer)
	env.mux.HandleFunc("GET /applications/employer/{id}", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "applications": []map[string]any{
			{"id": 1, "job_title": "A", "full_name": "Ada", "status": "pending"},
			{"id": 2, "job_title": "B", "full_name": "Bob", "status": "shortlisted"},
		}})
	})

	out, err := env.run("", "employer", "applications", "--highlight", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "A (1)")
	assert.Contains(t, out, "B (1)")
	assert.Contains(t, out, "» #2  Bob")
}

func TestEmployerDownloadCV(t *testing.T) {
	env := newCLIEnv(t)
	env.loginAs(employer)
	env.mux.HandleFunc("GET /applications/employer/{id}", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "applications": []map[string]any{
			{"id": 1, "full_name": "Ada Lovelace", "cv_file": "uploads/cv-1.pdf", "status": "pending"},
			{"id": 2, "full_name": "Bob", "cv_file": "uploads/empty.pdf", "status": "pending"},
		}})
	})
	env.mux.HandleFunc("GET /applications/download-cv/{name}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("name") == "cv-1.pdf" {
			_, _ = w.Write([]byte("%PDF-1.4"))
		}
	})

	dir := t.TempDir()
	out, err := env.run("", "employer", "applications", "download-cv", "1", "--dir", dir)
	require.NoError(t, err)
	saved := filepath.Join(dir, "Ada Lovelace_CV.pdf")
	assert.Contains(t, out, "CV saved to "+saved)
	data, err := os.ReadFile(saved)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))

	_, err = env.run("", "employer", "applications", "download-cv", "2", "--dir", dir)
	assert.EqualError(t, err, "CV file is empty")
	_, statErr := os.Stat(filepath.Join(dir, "Bob_CV.pdf"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestEmployerJobs_DeleteAsksForConfirmation(t *testing.T) {
	env := newCLIEnv(t)
	env.loginAs(employer)
	var deletes atomic.Int32
	env.mux.HandleFunc("GET /jobs/employer/{id}", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "jobs": []map[string]any{
			{"id": 7, "title": "Go Developer", "status": "active"},
		}})
	})
	env.mux.HandleFunc("DELETE /jobs/{id}", func(w http.ResponseWriter, _ *http.Request) {
		deletes.Add(1)
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	})

	out, err := env.run("n\n", "employer", "jobs", "delete", "7")
	assert.EqualError(t, err, "action not confirmed")
	assert.Contains(t, out, `Delete job "Go Developer" permanently?`)
	assert.Zero(t, deletes.Load())

	out, err = env.run("y\n", "employer", "jobs", "delete", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "Job #7 deleted")
	assert.EqualValues(t, 1, deletes.Load())

	_, err = env.run("", "employer", "jobs", "delete", "7", "--yes")
	require.NoError(t, err)
	assert.EqualValues(t, 2, deletes.Load())
}

func TestEmployerJobs_Close(t *testing.T) {
	env := newCLIEnv(t)
	env.loginAs(employer)
	var body map[string]any
	env.mux.HandleFunc("GET /jobs/employer/{id}", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "jobs": []map[string]any{
			{"id": 7, "title": "Go Developer", "status": "active"},
		}})
	})
	env.mux.HandleFunc("PUT /jobs/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	})

	out, err := env.run("", "employer", "jobs", "close", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "Job #7 closed")
	assert.Equal(t, "closed", body["status"])

	out, err = env.run("", "employer", "jobs")
	require.NoError(t, err)
	assert.Contains(t, out, "MY JOBS (1)")
	assert.Contains(t, out, "Actions: close, draft")
}

func TestAdminApprove_BlockedWhenUnpaid(t *testing.T) {
	env := newCLIEnv(t)
	env.loginAs(admin)
	var approvals atomic.Int32
	env.mux.HandleFunc("GET /admin/jobs", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "jobs": []map[string]any{
			{"id": 9, "title": "SRE", "status": "pending"},
		}})
	})
	env.mux.HandleFunc("GET /admin/jobs/{id}/payment-status", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": false, "message": "unpaid"})
	})
	env.mux.HandleFunc("PUT /admin/jobs/{id}/status", func(w http.ResponseWriter, _ *http.Request) {
		approvals.Add(1)
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	})

	_, err := env.run("", "admin", "moderation", "approve", "9")
	assert.EqualError(t, err, "Cannot approve job: unpaid")
	assert.Zero(t, approvals.Load())

	out, err := env.run("", "admin", "moderation", "approve", "9", "--check-payment=false")
	require.NoError(t, err)
	assert.Contains(t, out, "Job #9 approved")
	assert.EqualValues(t, 1, approvals.Load())
}

func TestAdminFlag_RequiresReason(t *testing.T) {
	env := newCLIEnv(t)
	env.loginAs(admin)
	var body map[string]any
	env.mux.HandleFunc("GET /admin/jobs", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "jobs": []map[string]any{
			{"id": 9, "title": "SRE", "status": "pending"},
		}})
	})
	env.mux.HandleFunc("PUT /admin/jobs/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	})

	_, err := env.run("", "admin", "moderation", "flag", "9")
	assert.ErrorContains(t, err, "reason")
	assert.Nil(t, body)

	_, err = env.run("", "admin", "moderation", "flag", "9", "--reason", "Salary looks wrong")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"status": "flagged", "reason": "Salary looks wrong"}, body)
}

func TestAdminOverviewAndJobs(t *testing.T) {
	env := newCLIEnv(t)
	env.loginAs(admin)
	env.mux.HandleFunc("GET /admin/jobs", func(w http.ResponseWriter, r *http.Request) {
		jobs := []map[string]any{}
		if r.URL.Query().Get("status") == "pending" {
			jobs = append(jobs, map[string]any{"id": 1, "title": "SRE", "status": "pending"})
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "jobs": jobs})
	})

	out, err := env.run("", "admin", "overview")
	require.NoError(t, err)
	assert.Contains(t, out, "JOB MODERATION OVERVIEW")

	out, err = env.run("", "admin", "jobs", "--status", "pending")
	require.NoError(t, err)
	assert.Contains(t, out, "PENDING JOBS (1)")

	_, err = env.run("", "admin", "jobs", "--status", "bogus")
	assert.ErrorContains(t, err, `unknown job status "bogus"`)
}

func TestUnauthorizedClearsSession(t *testing.T) {
	env := newCLIEnv(t)
	env.loginAs(seeker)
	env.mux.HandleFunc("GET /applications/user/{email}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := env.run("", "my-applications")
	require.Error(t, err)
	assert.Equal(t, "Authentication failed. Please log in again.", errorMessage(err))
	assert.Empty(t, env.state().Token)
}

func TestApply(t *testing.T) {
	env := newCLIEnv(t)
	env.loginAs(seeker)

	var submits atomic.Int32
	var gotEmail, gotName string
	env.mux.HandleFunc("GET /jobs/{id}", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "job": map[string]any{
			"id": 7, "title": "Go Developer", "company_name": "Acme", "status": "active",
		}})
	})
	env.mux.HandleFunc("POST /applications/submit", func(w http.ResponseWriter, r *http.Request) {
		submits.Add(1)
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		gotEmail = r.FormValue("email")
		gotName = r.FormValue("fullName")
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "application": map[string]any{"id": 99}})
	})

	cv := filepath.Join(t.TempDir(), "cv.pdf")
	require.NoError(t, os.WriteFile(cv, []byte("%PDF-1.4\n%%EOF\n"), 0o644))
	args := []string{"apply", "7", "--cv", cv, "--experience", "6 years of Go"}

	_, err := env.run("", append(args, "--cover-letter", strings.Repeat("a", 99))...)
	require.Error(t, err)
	assert.Contains(t, errorMessage(err), "coverLetter: Cover letter must be at least 100 characters")
	assert.Zero(t, submits.Load(), "invalid form makes no network call")

	_, err = env.run("", append(args, "--cover-letter", strings.Repeat("a", 100), "--email", "other@example.com")...)
	assert.EqualError(t, err, "email is taken from your account and cannot be changed")

	out, err := env.run("", append(args, "--cover-letter", strings.Repeat("a", 100))...)
	require.NoError(t, err)
	assert.Contains(t, out, "Application #99 submitted for Go Developer at Acme")
	assert.Equal(t, "ada@example.com", gotEmail)
	assert.Equal(t, "Ada Lovelace", gotName)
}

func TestJobPage_PublicWithPlaceholderRelated(t *testing.T) {
	env := newCLIEnv(t)
	env.mux.HandleFunc("GET /jobs/{id}", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "job": map[string]any{
			"id": 7, "title": "Go Developer", "description": "<p>Build <b>services</b>.</p>", "status": "active",
		}})
	})
	env.mux.HandleFunc("GET /jobs/{id}/related", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	out, err := env.run("", "job", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "GO DEVELOPER")
	assert.Contains(t, out, "Build services.")
	assert.Contains(t, out, "RELATED JOBS (suggestions)")
}
