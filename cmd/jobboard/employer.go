package main

import (
	"context"
	"net/url"

	"github.com/jonathan/jobboard/internal/board"
	"github.com/jonathan/jobboard/internal/types"
	"github.com/spf13/cobra"
)

var employerCmd = &cobra.Command{
	Use:   "employer",
	Short: "Review applicants and manage your job postings",
}

var employerApplicationsCmd = &cobra.Command{
	Use:   "applications",
	Short: "List applications to your jobs, grouped by job",
	Args:  cobra.NoArgs,
	RunE:  runPage(runEmployerApplications),
}

var employerViewCmd = &cobra.Command{
	Use:   "view <application-id>",
	Short: "Show one application in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runPage(runEmployerView),
}

var employerShortlistCmd = &cobra.Command{
	Use:   "shortlist <application-id>",
	Short: "Shortlist a pending application",
	Args:  cobra.ExactArgs(1),
	RunE:  runPage(applicationAction((*board.ApplicationBoard).Shortlist, "shortlisted")),
}

var employerRejectCmd = &cobra.Command{
	Use:   "reject <application-id>",
	Short: "Reject a pending application",
	Args:  cobra.ExactArgs(1),
	RunE:  runPage(applicationAction((*board.ApplicationBoard).Reject, "rejected")),
}

var employerHireCmd = &cobra.Command{
	Use:   "hire <application-id>",
	Short: "Hire a shortlisted applicant",
	Args:  cobra.ExactArgs(1),
	RunE:  runPage(applicationAction((*board.ApplicationBoard).Hire, "hired")),
}

var employerDownloadCmd = &cobra.Command{
	Use:   "download-cv <application-id>",
	Short: "Download an applicant's CV",
	Args:  cobra.ExactArgs(1),
	RunE:  runPage(runDownloadCV),
}

var employerJobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List your job postings",
	Args:  cobra.NoArgs,
	RunE:  runPage(runEmployerJobs),
}

var (
	highlightFlag   string
	messageFlag     string
	downloadDirFlag string
	yesFlag         bool
)

func init() {
	employerApplicationsCmd.Flags().StringVar(&highlightFlag, "highlight", "", "Application to highlight")
	for _, c := range []*cobra.Command{employerShortlistCmd, employerRejectCmd, employerHireCmd} {
		c.Flags().StringVarP(&messageFlag, "message", "m", "", "Message to the applicant")
	}
	employerDownloadCmd.Flags().StringVar(&downloadDirFlag, "dir", "", "Directory to save the CV in (defaults to JOBBOARD_DOWNLOAD_DIR)")
	employerApplicationsCmd.AddCommand(employerViewCmd, employerShortlistCmd, employerRejectCmd, employerHireCmd, employerDownloadCmd)

	for _, m := range jobManagementCommands() {
		employerJobsCmd.AddCommand(m)
	}

	employerCmd.AddCommand(employerApplicationsCmd, employerJobsCmd)
	rootCmd.AddCommand(employerCmd)
}

// loadApplicationBoard opens path and loads the employer's applications.
func loadApplicationBoard(ctx context.Context, a *app, path string) (*board.ApplicationBoard, error) {
	_, user, err := a.open(path)
	if err != nil {
		return nil, err
	}
	b := board.NewApplicationBoard(a.client, a.boardOptions()...)
	if err := b.Load(ctx, user.ID); err != nil {
		return nil, err
	}
	return b, nil
}

func runEmployerApplications(ctx context.Context, a *app, _ []string) error {
	path := "/employer/applications"
	if highlightFlag != "" {
		path += "?" + url.Values{"highlight": {highlightFlag}}.Encode()
	}
	b, err := loadApplicationBoard(ctx, a, path)
	if err != nil {
		return err
	}
	if id := a.router.Current().Highlight(); !id.IsZero() {
		b.Highlight(id)
	}
	a.printer.PrintApplicationGroups(b.Groups(), b.Highlighted)
	return nil
}

func runEmployerView(ctx context.Context, a *app, args []string) error {
	b, err := loadApplicationBoard(ctx, a, "/employer/applications")
	if err != nil {
		return err
	}
	id := types.ID(args[0])
	if err := b.Open(id); err != nil {
		return err
	}
	detail, _ := b.Detail()
	a.printer.PrintApplication(detail, b.Actions(id))
	return nil
}

type applicationTransition func(b *board.ApplicationBoard, ctx context.Context, id types.ID, message string) error

func applicationAction(transition applicationTransition, done string) func(context.Context, *app, []string) error {
	return func(ctx context.Context, a *app, args []string) error {
		b, err := loadApplicationBoard(ctx, a, "/employer/applications")
		if err != nil {
			return err
		}
		id := types.ID(args[0])
		if err := transition(b, ctx, id, messageFlag); err != nil {
			return err
		}
		a.successf("Application #%s %s", id, done)
		return nil
	}
}

func runDownloadCV(ctx context.Context, a *app, args []string) error {
	b, err := loadApplicationBoard(ctx, a, "/employer/applications")
	if err != nil {
		return err
	}
	dir := downloadDirFlag
	if dir == "" {
		dir = a.cfg.DownloadDir
	}
	path, err := b.DownloadCV(ctx, types.ID(args[0]), board.FileSaver{Dir: dir})
	if err != nil {
		return err
	}
	a.successf("CV saved to %s", path)
	return nil
}

func loadJobManager(ctx context.Context, a *app) (*board.JobManager, error) {
	_, user, err := a.open("/employer/jobs")
	if err != nil {
		return nil, err
	}
	m := board.NewJobManager(a.client, a.boardOptions()...)
	if err := m.Load(ctx, user.ID); err != nil {
		return nil, err
	}
	return m, nil
}

func runEmployerJobs(ctx context.Context, a *app, _ []string) error {
	m, err := loadJobManager(ctx, a)
	if err != nil {
		return err
	}
	a.printer.PrintJobs("MY JOBS", m.Jobs(), m.Actions)
	return nil
}

func jobManagementCommands() []*cobra.Command {
	actions := []struct {
		use, short, done string
		do               func(*board.JobManager, context.Context, types.ID) error
	}{
		{"close", "Stop accepting applications", "closed", (*board.JobManager).Close},
		{"reopen", "Accept applications again", "reopened", (*board.JobManager).Reopen},
		{"draft", "Move a job back to draft", "moved to draft", (*board.JobManager).Draft},
		{"publish", "Publish a draft job", "published", (*board.JobManager).Publish},
	}

	var cmds []*cobra.Command
	for _, act := range actions {
		cmds = append(cmds, &cobra.Command{
			Use:   act.use + " <job-id>",
			Short: act.short,
			Args:  cobra.ExactArgs(1),
			RunE: runPage(func(ctx context.Context, a *app, args []string) error {
				m, err := loadJobManager(ctx, a)
				if err != nil {
					return err
				}
				id := types.ID(args[0])
				if err := act.do(m, ctx, id); err != nil {
					return err
				}
				a.successf("Job #%s %s", id, act.done)
				return nil
			}),
		})
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <job-id>",
		Short: "Delete a job permanently",
		Args:  cobra.ExactArgs(1),
		RunE: runPage(func(ctx context.Context, a *app, args []string) error {
			m, err := loadJobManager(ctx, a)
			if err != nil {
				return err
			}
			id := types.ID(args[0])
			if err := m.Delete(ctx, id, a.confirmer()); err != nil {
				return err
			}
			a.successf("Job #%s deleted", id)
			return nil
		}),
	}
	deleteCmd.Flags().BoolVarP(&yesFlag, "yes", "y", false, "Do not ask for confirmation")
	return append(cmds, deleteCmd)
}

// confirmer asks on the terminal unless --yes was given.
func (a *app) confirmer() board.Confirm {
	if yesFlag {
		return func(string) bool { return true }
	}
	return a.confirm
}
