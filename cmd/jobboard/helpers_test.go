package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/jobboard/internal/config"
	"github.com/jonathan/jobboard/internal/session"
	"github.com/jonathan/jobboard/internal/types"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// cliEnv is a backend plus a session file for one test.
type cliEnv struct {
	t           *testing.T
	mux         *http.ServeMux
	sessionFile string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	dir := t.TempDir()
	env := &cliEnv{t: t, mux: mux, sessionFile: filepath.Join(dir, "session.json")}

	t.Setenv(config.EnvAPIURL, server.URL)
	t.Setenv(config.EnvSessionFile, env.sessionFile)
	t.Setenv(config.EnvDownloadDir, dir)
	t.Setenv(config.EnvStrictContract, "")
	t.Setenv(config.EnvVerbose, "")
	return env
}

// loginAs stores a session as if the user had logged in.
func (e *cliEnv) loginAs(u types.User) {
	e.t.Helper()
	require.NoError(e.t, session.NewFileStore(e.sessionFile).Save(&session.State{Token: "tok-" + string(u.Type), User: &u}))
}

func (e *cliEnv) state() *session.State {
	e.t.Helper()
	st, err := session.NewFileStore(e.sessionFile).Load()
	require.NoError(e.t, err)
	return st
}

// run executes the CLI in-process with the given stdin.
func (e *cliEnv) run(stdin string, args ...string) (string, error) {
	e.t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores every flag to its default between in-process runs.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

var (
	seeker   = types.User{ID: "3", Email: "ada@example.com", Name: "Ada Lovelace", Phone: "555-0100", Type: types.UserTypeJobSeeker}
	employer = types.User{ID: "emp-1", Email: "hr@acme.test", Name: "Acme HR", Type: types.UserTypeEmployer}
	admin    = types.User{ID: "1", Email: "admin@jobs.test", Name: "Admin", Type: types.UserTypeAdmin}
)
