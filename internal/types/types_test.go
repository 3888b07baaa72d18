//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected ID
	}{
		{name: "string id", input: `"abc-123"`, expected: "abc-123"},
		{name: "numeric id", input: `42`, expected: "42"},
		{name: "null id", input: `null`, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id ID
			require.NoError(t, json.Unmarshal([]byte(tt.input), &id))
			assert.Equal(t, tt.expected, id)
		})
	}
}

func TestID_UnmarshalJSON_Invalid(t *testing.T) {
	var id ID
	err := json.Unmarshal([]byte(`{"x":1}`), &id)
	assert.Error(t, err)
}

func TestID_MarshalJSON_AlwaysString(t *testing.T) {
	data, err := json.Marshal(struct {
		ID ID `json:"id"`
	}{ID: "42"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"42"}`, string(data))
}

func TestApplication_DecodesNumericIDs(t *testing.T) {
	raw := `{"id": 42, "job_id": 7, "job_title": "Backend Engineer", "full_name": "Ada", "status": "pending", "applied_at": "2024-03-01T10:00:00Z"}`

	var app Application
	require.NoError(t, json.Unmarshal([]byte(raw), &app))
	assert.Equal(t, ID("42"), app.ID)
	assert.Equal(t, ID("7"), app.JobID)
	assert.Equal(t, "pending", app.Status)
	assert.Equal(t, 2024, app.AppliedAt.Year())
}

func TestScalar_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Scalar
	}{
		{name: "string", input: `"50k-60k"`, expected: "50k-60k"},
		{name: "integer", input: `50000`, expected: "50000"},
		{name: "decimal", input: `85000.5`, expected: "85000.5"},
		{name: "null", input: `null`, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Scalar
			require.NoError(t, json.Unmarshal([]byte(tt.input), &s))
			assert.Equal(t, tt.expected, s)
		})
	}
}

func TestScalar_MarshalJSON_AlwaysString(t *testing.T) {
	data, err := json.Marshal(Job{ID: "1", Salary: "85000"})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"salary":"85000"`)
}

func TestApplication_DecodesNumericSalary(t *testing.T) {
	raw := `{"id": 1, "job_id": 7, "full_name": "Ada", "status": "pending", "expected_salary": 50000}`

	var app Application
	require.NoError(t, json.Unmarshal([]byte(raw), &app))
	assert.Equal(t, Scalar("50000"), app.ExpectedSalary)
}

func TestJob_DecodesSalaryAndRejectionReason(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		salary Scalar
		reason string
	}{
		{
			name:   "numeric salary with rejection_reason",
			input:  `{"id": 3, "title": "Ops", "status": "rejected", "salary": 85000, "rejection_reason": "duplicate"}`,
			salary: "85000",
			reason: "duplicate",
		},
		{
			name:   "string salary with reason",
			input:  `{"id": 3, "title": "Ops", "status": "flagged", "salary": "DOE", "reason": "spam"}`,
			salary: "DOE",
			reason: "spam",
		},
		{
			name:   "rejection_reason wins",
			input:  `{"id": 3, "status": "rejected", "rejection_reason": "a", "reason": "b"}`,
			reason: "a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var job Job
			require.NoError(t, json.Unmarshal([]byte(tt.input), &job))
			assert.Equal(t, ID("3"), job.ID)
			assert.Equal(t, tt.salary, job.Salary)
			assert.Equal(t, tt.reason, job.Reason)
		})
	}
}

func TestApplication_CVExtension(t *testing.T) {
	tests := []struct {
		file     string
		expected string
	}{
		{file: "uploads/cv/1700000-resume.PDF", expected: "pdf"},
		{file: "1700000-resume.docx", expected: "docx"},
		{file: "resume", expected: "pdf"},
		{file: "", expected: "pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			app := Application{CVFile: tt.file}
			assert.Equal(t, tt.expected, app.CVExtension())
		})
	}
}

func TestApplication_CVFileName(t *testing.T) {
	app := Application{CVFile: "uploads/cv/1700000-resume.pdf"}
	assert.Equal(t, "1700000-resume.pdf", app.CVFileName())

	empty := Application{}
	assert.Empty(t, empty.CVFileName())
}

func TestUserType_Valid(t *testing.T) {
	assert.True(t, UserTypeJobSeeker.Valid())
	assert.True(t, UserTypeEmployer.Valid())
	assert.True(t, UserTypeAdmin.Valid())
	assert.False(t, UserType("recruiter").Valid())
}

func TestLoginRequest_Validation(t *testing.T) {
	validate := validator.New()

	tests := []struct {
		name    string
		request LoginRequest
		wantErr bool
	}{
		{name: "valid", request: LoginRequest{Email: "ada@example.com", Password: "secret"}},
		{name: "missing email", request: LoginRequest{Password: "secret"}, wantErr: true},
		{name: "bad email", request: LoginRequest{Email: "ada", Password: "secret"}, wantErr: true},
		{name: "missing password", request: LoginRequest{Email: "ada@example.com"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.request)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.NoError(t, tt.request.Validate())
			}
		})
	}
}
