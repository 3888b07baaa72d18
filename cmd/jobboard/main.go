// Package main provides the jobboard command-line client.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "jobboard",
	Short:         "Job board client",
	Long:          "jobboard lets job seekers apply to jobs and track applications, employers review applicants and manage postings, and admins moderate job postings.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	configPath      string
	apiURLFlag      string
	sessionFileFlag string
	verboseFlag     bool
	colorFlag       bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON config file")
	rootCmd.PersistentFlags().StringVar(&apiURLFlag, "api-url", "", "Backend base URL (overrides JOBBOARD_API_URL)")
	rootCmd.PersistentFlags().StringVar(&sessionFileFlag, "session-file", "", "Where the login session is stored (overrides JOBBOARD_SESSION_FILE)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Log every request")
	rootCmd.PersistentFlags().BoolVar(&colorFlag, "color", false, "Color status badges")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", errorMessage(err))
		os.Exit(1)
	}
}
