package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/jobboard/internal/apply"
	"github.com/jonathan/jobboard/internal/types"
	"github.com/spf13/cobra"
)

var jobCmd = &cobra.Command{
	Use:   "job <job-id>",
	Short: "Show a job listing with related jobs",
	Args:  cobra.ExactArgs(1),
	RunE:  runPage(runJob),
}

var applyCmd = &cobra.Command{
	Use:   "apply <job-id>",
	Short: "Apply to a job",
	Long: `Apply to a job with a CV (PDF, DOC or DOCX, up to 5MB) and a cover letter of at least 100 characters.
Name, email and phone are taken from your account when it has them; the account email cannot be changed.`,
	Args: cobra.ExactArgs(1),
	RunE: runPage(runApply),
}

var (
	applyName            string
	applyEmail           string
	applyPhone           string
	applyCoverLetter     string
	applyCoverLetterFile string
	applyExperience      string
	applySalary          string
	applyStartDate       string
	applyInfo            string
	applyCV              string
)

func init() {
	applyCmd.Flags().StringVar(&applyName, "name", "", "Full name (defaults to your account name)")
	applyCmd.Flags().StringVar(&applyEmail, "email", "", "Email (defaults to your account email)")
	applyCmd.Flags().StringVar(&applyPhone, "phone", "", "Phone number (defaults to your account phone)")
	applyCmd.Flags().StringVar(&applyCoverLetter, "cover-letter", "", "Cover letter text")
	applyCmd.Flags().StringVar(&applyCoverLetterFile, "cover-letter-file", "", "Read the cover letter from a file")
	applyCmd.Flags().StringVar(&applyExperience, "experience", "", "Relevant experience")
	applyCmd.Flags().StringVar(&applySalary, "salary", "", "Expected salary")
	applyCmd.Flags().StringVar(&applyStartDate, "start-date", "", "Available start date")
	applyCmd.Flags().StringVar(&applyInfo, "info", "", "Additional information")
	applyCmd.Flags().StringVar(&applyCV, "cv", "", "Path to your CV")
	applyCmd.MarkFlagsMutuallyExclusive("cover-letter", "cover-letter-file")

	rootCmd.AddCommand(jobCmd, applyCmd)
}

func runJob(ctx context.Context, a *app, args []string) error {
	loc, _, err := a.open("/jobs/" + args[0])
	if err != nil {
		return err
	}

	jc, err := apply.LoadJobContext(ctx, a.client, types.ID(loc.Param("id")))
	if err != nil {
		return err
	}
	a.printer.PrintJob(jc)
	return nil
}

func runApply(ctx context.Context, a *app, args []string) error {
	loc, user, err := a.open("/jobs/" + args[0] + "/apply")
	if err != nil {
		return err
	}

	job, err := a.client.Job(ctx, types.ID(loc.Param("id")))
	if err != nil {
		return err
	}

	form := apply.NewForm(apply.RefFor(job), user)
	if err := fillForm(form); err != nil {
		return err
	}

	_, err = form.Submit(ctx, a.client, func(r apply.Result) {
		a.successf("Application #%s submitted for %s at %s", r.ApplicationID, r.Job.Title, r.Job.Company)
		a.router.Navigate("/my-applications")
	})
	return err
}

func fillForm(f *apply.Form) error {
	if applyName != "" {
		f.FullName = applyName
	}
	if applyEmail != "" {
		if err := f.SetEmail(applyEmail); err != nil {
			return err
		}
	}
	if applyPhone != "" {
		f.Phone = applyPhone
	}

	f.CoverLetter = applyCoverLetter
	if applyCoverLetterFile != "" {
		data, err := os.ReadFile(applyCoverLetterFile)
		if err != nil {
			return fmt.Errorf("failed to read cover letter: %w", err)
		}
		f.CoverLetter = string(data)
	}

	f.Experience = applyExperience
	f.ExpectedSalary = applySalary
	f.AvailableStartDate = applyStartDate
	f.AdditionalInfo = applyInfo

	if applyCV != "" {
		cv, err := apply.OpenCV(applyCV)
		if err != nil {
			return err
		}
		f.CV = cv
	}
	return nil
}
