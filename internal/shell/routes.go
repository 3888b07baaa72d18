// Package shell maps page paths to pages and gates them by user type.
package shell

import (
	"strings"

	"github.com/jonathan/jobboard/internal/types"
)

// Page names a screen of the client.
type Page string

const (
	PageLogin                Page = "login"
	PageJob                  Page = "job"
	PageApply                Page = "apply"
	PageMyApplications       Page = "my-applications"
	PageEmployerApplications Page = "employer-applications"
	PageEmployerJobs         Page = "employer-jobs"
	PageAdminJobs            Page = "admin-jobs"
	PageAdminModeration      Page = "admin-moderation"
)

// LoginPath is where unauthenticated or unauthorized users are sent.
const LoginPath = "/login"

// Route binds a path pattern to a page. Pattern segments in braces capture
// path values, as in "/jobs/{id}". A nil Allowed list means the page is public.
type Route struct {
	Pattern string
	Page    Page
	Allowed []types.UserType
}

// Routes is the page table.
var Routes = []Route{
	{Pattern: "/login", Page: PageLogin},
	{Pattern: "/jobs/{id}", Page: PageJob},
	{Pattern: "/jobs/{id}/apply", Page: PageApply, Allowed: []types.UserType{types.UserTypeJobSeeker}},
	{Pattern: "/my-applications", Page: PageMyApplications, Allowed: []types.UserType{types.UserTypeJobSeeker}},
	{Pattern: "/employer/applications", Page: PageEmployerApplications, Allowed: []types.UserType{types.UserTypeEmployer}},
	{Pattern: "/employer/jobs", Page: PageEmployerJobs, Allowed: []types.UserType{types.UserTypeEmployer}},
	{Pattern: "/admin/jobs", Page: PageAdminJobs, Allowed: []types.UserType{types.UserTypeAdmin}},
	{Pattern: "/admin/moderation", Page: PageAdminModeration, Allowed: []types.UserType{types.UserTypeAdmin}},
}

// match reports whether path fits the pattern and returns the captured values.
func (r Route) match(path string) (map[string]string, bool) {
	want := splitPath(r.Pattern)
	got := splitPath(path)
	if len(want) != len(got) {
		return nil, false
	}

	params := map[string]string{}
	for i, seg := range want {
		if name, ok := strings.CutPrefix(seg, "{"); ok {
			name = strings.TrimSuffix(name, "}")
			if got[i] == "" {
				return nil, false
			}
			params[name] = got[i]
			continue
		}
		if seg != got[i] {
			return nil, false
		}
	}
	return params, true
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

func (r Route) allows(u *types.User) bool {
	if r.Allowed == nil {
		return true
	}
	if u == nil {
		return false
	}
	for _, t := range r.Allowed {
		if u.Type == t {
			return true
		}
	}
	return false
}
