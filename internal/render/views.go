package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/jobboard/internal/apply"
	"github.com/jonathan/jobboard/internal/board"
	"github.com/jonathan/jobboard/internal/status"
	"github.com/jonathan/jobboard/internal/types"
)

// PrintApplicationGroups outputs the employer board, one box per job title.
// highlighted may be nil.
func (p *Printer) PrintApplicationGroups(groups []board.Group, highlighted func(types.ID) bool) {
	if len(groups) == 0 {
		p.Linef("No applications yet.")
		return
	}

	for _, g := range groups {
		var sb strings.Builder
		for i, app := range g.Applications {
			marker := " "
			if highlighted != nil && highlighted(app.ID) {
				marker = "»"
			}
			style := status.StyleFor(status.KindApplication, app.Status)
			sb.WriteString(fmt.Sprintf("%s #%s  %s  %s\n", marker, app.ID, app.FullName, p.Badge(style)))
			sb.WriteString(fmt.Sprintf("    %s · %s\n", app.Email, app.Phone))
			if preview := board.Preview(app); preview != "" {
				sb.WriteString(fmt.Sprintf("    %s\n", preview))
			}
			if i < len(g.Applications)-1 {
				sb.WriteString("\n")
			}
		}
		title := fmt.Sprintf("%s (%d)", strings.ToUpper(g.Title), len(g.Applications))
		p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
	}
}

// PrintApplication outputs every field of one application.
func (p *Printer) PrintApplication(app types.Application, actions []status.Action) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Applicant:  %s\n", app.FullName))
	sb.WriteString(fmt.Sprintf("Email:      %s\n", app.Email))
	sb.WriteString(fmt.Sprintf("Phone:      %s\n", app.Phone))
	sb.WriteString(fmt.Sprintf("Job:        %s\n", orDash(app.JobTitle)))
	sb.WriteString(fmt.Sprintf("Status:     %s\n", p.Badge(status.StyleFor(status.KindApplication, app.Status))))
	sb.WriteString(fmt.Sprintf("Applied:    %s\n", formatTime(app.AppliedAt)))
	sb.WriteString(fmt.Sprintf("Experience: %s\n", app.Experience))
	if app.ExpectedSalary != "" {
		sb.WriteString(fmt.Sprintf("Salary:     %s\n", app.ExpectedSalary))
	}
	if app.AvailableStartDate != "" {
		sb.WriteString(fmt.Sprintf("Available:  %s\n", app.AvailableStartDate))
	}
	if app.CVFile != "" {
		sb.WriteString(fmt.Sprintf("CV:         %s\n", app.CVFileName()))
	}
	sb.WriteString("\nCover letter:\n")
	sb.WriteString(app.CoverLetter)
	sb.WriteString("\n")
	if app.AdditionalInfo != "" {
		sb.WriteString("\nAdditional information:\n")
		sb.WriteString(app.AdditionalInfo)
		sb.WriteString("\n")
	}
	if app.ResponseMessage != "" {
		sb.WriteString("\nYour message to the applicant:\n")
		sb.WriteString(app.ResponseMessage)
		sb.WriteString("\n")
	}
	if len(actions) > 0 {
		sb.WriteString("\nActions: ")
		sb.WriteString(joinActions(actions))
		sb.WriteString("\n")
	}

	p.printBox("APPLICATION #"+app.ID.String(), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintTracker outputs the job seeker's applications.
func (p *Printer) PrintTracker(entries []board.TrackerEntry) {
	if len(entries) == 0 {
		p.Linef("You have not applied to any jobs yet.")
		return
	}

	var sb strings.Builder
	for i, e := range entries {
		title := e.Application.JobTitle
		if title == "" {
			title = board.UnknownJobTitle
		}
		sb.WriteString(title)
		if e.Application.CompanyName != "" {
			sb.WriteString(" at " + e.Application.CompanyName)
		}
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("  %s · applied %s · %s\n", p.Badge(e.Style), e.AppliedOn, e.JobPath))
		if e.Response != "" {
			sb.WriteString(fmt.Sprintf("  Employer: %s\n", e.Response))
		}
		if i < len(entries)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox(fmt.Sprintf("MY APPLICATIONS (%d)", len(entries)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJobs outputs a job list with the actions available per job.
// actions may be nil.
func (p *Printer) PrintJobs(title string, jobs []types.Job, actions func(types.ID) []status.Action) {
	if len(jobs) == 0 {
		p.Linef("No jobs found.")
		return
	}

	var sb strings.Builder
	for i, job := range jobs {
		sb.WriteString(fmt.Sprintf("#%s  %s  %s\n", job.ID, job.Title, p.Badge(status.StyleFor(status.KindJob, job.Status))))
		sb.WriteString(fmt.Sprintf("    %s · %s · posted %s\n", orDash(job.CompanyName), orDash(job.Location), formatTime(job.CreatedAt)))
		if job.Reason != "" {
			sb.WriteString(fmt.Sprintf("    Reason: %s\n", job.Reason))
		}
		if actions != nil {
			if acts := actions(job.ID); len(acts) > 0 {
				sb.WriteString(fmt.Sprintf("    Actions: %s\n", joinActions(acts)))
			}
		}
		if i < len(jobs)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox(fmt.Sprintf("%s (%d)", title, len(jobs)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJob outputs a job listing with its related jobs.
func (p *Printer) PrintJob(jc *apply.JobContext) {
	if jc == nil || jc.Job == nil {
		return
	}
	job := jc.Job

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Company:    %s\n", orDash(job.CompanyName)))
	sb.WriteString(fmt.Sprintf("Location:   %s\n", orDash(job.Location)))
	if job.JobType != "" {
		sb.WriteString(fmt.Sprintf("Type:       %s\n", job.JobType))
	}
	if job.ExperienceLevel != "" {
		sb.WriteString(fmt.Sprintf("Experience: %s\n", job.ExperienceLevel))
	}
	if job.Salary != "" {
		sb.WriteString(fmt.Sprintf("Salary:     %s\n", job.Salary))
	}
	sb.WriteString("\n")
	desc, err := DescriptionText(job.Description)
	if err != nil {
		desc = job.Description
	}
	sb.WriteString(desc)
	p.printBox(strings.ToUpper(job.Title), sb.String())

	if len(jc.Related) == 0 {
		return
	}
	sb.Reset()
	count := min(len(jc.Related), maxRelatedJobs)
	for i := 0; i < count; i++ {
		r := jc.Related[i]
		sb.WriteString(fmt.Sprintf("• %s, %s (%s)\n", r.Title, orDash(r.CompanyName), orDash(r.Location)))
	}
	title := "RELATED JOBS"
	if jc.RelatedPlaceholder {
		title += " (suggestions)"
	}
	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintOverview outputs the admin dashboard counts.
func (p *Printer) PrintOverview(ov *board.Overview) {
	if ov == nil {
		return
	}
	var sb strings.Builder
	for _, c := range ov.Counts {
		style := status.StyleFor(status.KindJob, string(c.Status))
		sb.WriteString(fmt.Sprintf("%s %5d\n", pad(p.Badge(style), 24), c.Count))
	}
	sb.WriteString(fmt.Sprintf("%s %5d", pad("Total", 24), ov.Total))
	p.printBox("JOB MODERATION OVERVIEW", sb.String())
}

// PrintFieldErrors outputs form validation failures.
func (p *Printer) PrintFieldErrors(errs apply.FieldErrors) {
	p.Linef("Please fix the following:")
	for _, e := range errs {
		p.Linef("  • %s: %s", e.Field, e.Message)
	}
}

func joinActions(actions []status.Action) string {
	names := make([]string, len(actions))
	for i, a := range actions {
		names[i] = string(a)
	}
	return strings.Join(names, ", ")
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(board.AppliedDateLayout)
}
