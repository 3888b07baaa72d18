package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/jonathan/jobboard/internal/api"
	"github.com/jonathan/jobboard/internal/apply"
	"github.com/jonathan/jobboard/internal/board"
	"github.com/jonathan/jobboard/internal/config"
	"github.com/jonathan/jobboard/internal/render"
	"github.com/jonathan/jobboard/internal/session"
	"github.com/jonathan/jobboard/internal/shell"
	"github.com/jonathan/jobboard/internal/types"
	"github.com/spf13/cobra"
)

// app is what every command works with: config, session, client and router.
type app struct {
	cfg     config.Config
	session *session.Provider
	client  *api.Client
	router  *shell.Router
	printer *render.Printer
	logger  *log.Logger
	out     io.Writer
	in      *bufio.Reader
}

// loadConfig layers flags over the config file over the environment.
func loadConfig() (config.Config, error) {
	env, err := config.NewEnvConfig()
	if err != nil {
		return config.Config{}, err
	}

	file := &config.Config{}
	if configPath != "" {
		if file, err = config.LoadConfig(configPath); err != nil {
			return config.Config{}, err
		}
	}

	if apiURLFlag != "" {
		file.APIURL = apiURLFlag
	}
	if sessionFileFlag != "" {
		file.SessionFile = sessionFileFlag
	}
	if verboseFlag {
		file.Verbose = true
	}

	cfg := file.MergeWithDefaults(*env)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	provider, err := session.NewProvider(session.NewFileStore(cfg.SessionFile))
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	logger := log.New(io.Discard, "", log.LstdFlags)
	if cfg.Verbose {
		logger.SetOutput(cmd.ErrOrStderr())
	}

	router := shell.NewRouter(provider)
	client := api.New(cfg.APIURL, provider,
		api.WithNavigator(router),
		api.WithLogger(logger),
		api.WithUserAgent(cfg.UserAgent),
		api.WithContractChecks(cfg.StrictContract),
	)

	printer := render.NewPrinter(cmd.OutOrStdout())
	printer.SetColor(colorFlag)

	return &app{
		cfg:     cfg,
		session: provider,
		client:  client,
		router:  router,
		printer: printer,
		logger:  logger,
		out:     cmd.OutOrStdout(),
		in:      bufio.NewReader(cmd.InOrStdin()),
	}, nil
}

// open navigates to a page and fails when the router sent the user to the login page instead.
func (a *app) open(path string) (shell.Location, *types.User, error) {
	loc, err := a.router.Go(path)
	if err != nil {
		return shell.Location{}, nil, err
	}
	user, _ := a.session.User()
	if loc.Page == shell.PageLogin && loc.From != "" {
		if user == nil {
			return loc, nil, fmt.Errorf("%w: run 'jobboard login' first", session.ErrNotLoggedIn)
		}
		return loc, nil, fmt.Errorf("%s is not available to %s accounts", loc.From, user.Type)
	}
	return loc, user, nil
}

func (a *app) boardOptions() []board.Option {
	return []board.Option{board.WithLogger(a.logger)}
}

// confirm asks a yes/no question on the command's input.
func (a *app) confirm(prompt string) bool {
	fmt.Fprintf(a.out, "%s [y/N]: ", prompt)
	answer, err := a.in.ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// readLine reads one line of input, for passwords and similar.
func (a *app) readLine(prompt string) (string, error) {
	fmt.Fprint(a.out, prompt)
	line, err := a.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (a *app) successf(format string, args ...any) {
	fmt.Fprintf(a.out, "✓ "+format+"\n", args...)
}

// runPage builds the app and runs fn with a context for the command.
func runPage(fn func(ctx context.Context, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		return fn(cmd.Context(), a, args)
	}
}

// errorMessage converts an error into what the user is shown.
func errorMessage(err error) string {
	var fieldErrs apply.FieldErrors
	var submitErr *apply.SubmitError
	var downloadErr *board.DownloadError
	var apiErr *api.Error
	switch {
	case errors.As(err, &fieldErrs):
		var sb strings.Builder
		sb.WriteString("please fix the following:")
		for _, fe := range fieldErrs {
			sb.WriteString("\n  • " + fe.Field + ": " + fe.Message)
		}
		return sb.String()
	case errors.As(err, &submitErr):
		return submitErr.Message
	case errors.As(err, &downloadErr):
		return downloadErr.Message
	case errors.As(err, &apiErr):
		return api.UserMessage(err)
	default:
		return err.Error()
	}
}
