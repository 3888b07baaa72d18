package main

import (
	"context"

	"github.com/jonathan/jobboard/internal/board"
	"github.com/spf13/cobra"
)

var myApplicationsCmd = &cobra.Command{
	Use:   "my-applications",
	Short: "Track the status of your applications",
	Args:  cobra.NoArgs,
	RunE:  runPage(runMyApplications),
}

func init() {
	rootCmd.AddCommand(myApplicationsCmd)
}

func runMyApplications(ctx context.Context, a *app, _ []string) error {
	_, user, err := a.open("/my-applications")
	if err != nil {
		return err
	}

	tracker := board.NewTracker(a.client, a.boardOptions()...)
	if err := tracker.Load(ctx, user); err != nil {
		return err
	}
	a.printer.PrintTracker(tracker.Entries())
	return nil
}
