package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/jobboard/internal/board"
	"github.com/jonathan/jobboard/internal/status"
	"github.com/jonathan/jobboard/internal/types"
	"github.com/spf13/cobra"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Moderate job postings",
}

var adminJobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List jobs, optionally by moderation status",
	Args:  cobra.NoArgs,
	RunE:  runPage(runAdminJobs),
}

var adminOverviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Count jobs in each moderation status",
	Args:  cobra.NoArgs,
	RunE:  runPage(runAdminOverview),
}

var adminModerationCmd = &cobra.Command{
	Use:   "moderation",
	Short: "Show the moderation queue",
	Args:  cobra.NoArgs,
	RunE:  runPage(runAdminModeration),
}

var adminApproveCmd = &cobra.Command{
	Use:   "approve <job-id>",
	Short: "Approve a pending or rejected job",
	Args:  cobra.ExactArgs(1),
	RunE:  runPage(runAdminApprove),
}

var adminRejectCmd = &cobra.Command{
	Use:   "reject <job-id>",
	Short: "Reject a job (reason required for approved jobs)",
	Args:  cobra.ExactArgs(1),
	RunE:  runPage(moderationAction((*board.ModerationBoard).Reject, "rejected")),
}

var adminFlagCmd = &cobra.Command{
	Use:   "flag <job-id>",
	Short: "Flag a pending job for review (reason required)",
	Args:  cobra.ExactArgs(1),
	RunE:  runPage(moderationAction((*board.ModerationBoard).Flag, "flagged")),
}

var adminDeleteCmd = &cobra.Command{
	Use:   "delete <job-id>",
	Short: "Delete a job permanently",
	Args:  cobra.ExactArgs(1),
	RunE:  runPage(runAdminDelete),
}

var (
	jobsStatusFilter  string
	queueStatusFilter string
	reasonFlag        string
	checkPaymentFlag  bool
)

func init() {
	adminJobsCmd.Flags().StringVar(&jobsStatusFilter, "status", "", "Only jobs in this status (pending, approved, rejected, flagged)")
	adminModerationCmd.Flags().StringVar(&queueStatusFilter, "status", string(status.JobPending), "Queue to show")
	adminRejectCmd.Flags().StringVarP(&reasonFlag, "reason", "r", "", "Reason shown to the employer")
	adminFlagCmd.Flags().StringVarP(&reasonFlag, "reason", "r", "", "Reason shown to the employer")
	adminApproveCmd.Flags().BoolVar(&checkPaymentFlag, "check-payment", true, "Check the job is paid for before approving")
	adminDeleteCmd.Flags().BoolVarP(&yesFlag, "yes", "y", false, "Do not ask for confirmation")

	adminModerationCmd.AddCommand(adminApproveCmd, adminRejectCmd, adminFlagCmd, adminDeleteCmd)
	adminCmd.AddCommand(adminJobsCmd, adminOverviewCmd, adminModerationCmd)
	rootCmd.AddCommand(adminCmd)
}

func parseStatusFilter(raw string) (status.JobStatus, error) {
	st := status.JobStatus(strings.TrimSpace(raw))
	if st != "" && !st.Known() {
		return "", fmt.Errorf("unknown job status %q", raw)
	}
	return st, nil
}

// loadModeration opens path and loads jobs in filter.
func loadModeration(ctx context.Context, a *app, path string, filter status.JobStatus, opts ...board.Option) (*board.ModerationBoard, error) {
	if _, _, err := a.open(path); err != nil {
		return nil, err
	}
	b := board.NewModerationBoard(a.client, append(a.boardOptions(), opts...)...)
	if err := b.Load(ctx, filter); err != nil {
		return nil, err
	}
	return b, nil
}

func runAdminJobs(ctx context.Context, a *app, _ []string) error {
	filter, err := parseStatusFilter(jobsStatusFilter)
	if err != nil {
		return err
	}
	b, err := loadModeration(ctx, a, "/admin/jobs", filter)
	if err != nil {
		return err
	}
	title := "ALL JOBS"
	if filter != "" {
		title = strings.ToUpper(string(filter)) + " JOBS"
	}
	a.printer.PrintJobs(title, b.Jobs(), b.Actions)
	return nil
}

func runAdminOverview(ctx context.Context, a *app, _ []string) error {
	if _, _, err := a.open("/admin/jobs"); err != nil {
		return err
	}
	ov, err := board.LoadOverview(ctx, a.client)
	if err != nil {
		return err
	}
	a.printer.PrintOverview(ov)
	return nil
}

func runAdminModeration(ctx context.Context, a *app, _ []string) error {
	filter, err := parseStatusFilter(queueStatusFilter)
	if err != nil {
		return err
	}
	b, err := loadModeration(ctx, a, "/admin/moderation", filter)
	if err != nil {
		return err
	}
	a.printer.PrintJobs("MODERATION QUEUE", b.Jobs(), b.Actions)
	return nil
}

func runAdminApprove(ctx context.Context, a *app, args []string) error {
	b, err := loadModeration(ctx, a, "/admin/moderation", "", board.WithPaymentCheck(checkPaymentFlag))
	if err != nil {
		return err
	}
	id := types.ID(args[0])
	if err := b.Approve(ctx, id); err != nil {
		return err
	}
	a.successf("Job #%s approved", id)
	return nil
}

type moderationTransition func(b *board.ModerationBoard, ctx context.Context, id types.ID, reason string) error

func moderationAction(transition moderationTransition, done string) func(context.Context, *app, []string) error {
	return func(ctx context.Context, a *app, args []string) error {
		b, err := loadModeration(ctx, a, "/admin/moderation", "")
		if err != nil {
			return err
		}
		id := types.ID(args[0])
		if err := transition(b, ctx, id, reasonFlag); err != nil {
			return err
		}
		a.successf("Job #%s %s", id, done)
		return nil
	}
}

func runAdminDelete(ctx context.Context, a *app, args []string) error {
	b, err := loadModeration(ctx, a, "/admin/moderation", "")
	if err != nil {
		return err
	}
	id := types.ID(args[0])
	if err := b.Delete(ctx, id, a.confirmer()); err != nil {
		return err
	}
	a.successf("Job #%s deleted", id)
	return nil
}
