package main

import (
	"context"
	"fmt"

	"github.com/jonathan/jobboard/internal/types"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session",
	Long:  "Log in with email and password. The session token and user are stored in the session file and sent with every later command.",
	Args:  cobra.NoArgs,
	RunE:  runPage(runLogin),
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	Args:  cobra.NoArgs,
	RunE:  runPage(runLogout),
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	Args:  cobra.NoArgs,
	RunE:  runPage(runWhoami),
}

var (
	loginEmail    string
	loginPassword string
)

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email (required)")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password (prompted when omitted)")
	_ = loginCmd.MarkFlagRequired("email")

	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
}

// homePath is the page each user type lands on after login.
func homePath(t types.UserType) string {
	switch t {
	case types.UserTypeEmployer:
		return "/employer/applications"
	case types.UserTypeAdmin:
		return "/admin/moderation"
	default:
		return "/my-applications"
	}
}

func runLogin(ctx context.Context, a *app, _ []string) error {
	password := loginPassword
	if password == "" {
		var err error
		if password, err = a.readLine("Password: "); err != nil {
			return err
		}
	}

	user, err := a.session.Login(ctx, a.client, loginEmail, password)
	if err != nil {
		return err
	}
	a.router.Navigate(homePath(user.Type))

	a.successf("Logged in as %s (%s)", displayName(user), user.Type)
	return nil
}

func runLogout(_ context.Context, a *app, _ []string) error {
	if err := a.session.Logout(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	a.successf("Logged out")
	return nil
}

func runWhoami(_ context.Context, a *app, _ []string) error {
	user, ok := a.session.User()
	if !ok {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s> (%s)\n", displayName(user), user.Email, user.Type)
	return nil
}

func displayName(u *types.User) string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
