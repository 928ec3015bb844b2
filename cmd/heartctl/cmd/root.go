// Package cmd contains the heartctl commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/oksasatya/heart-api/internal/cli/output"
	"github.com/oksasatya/heart-api/pkg/client"
	"github.com/oksasatya/heart-api/pkg/client/store"
)

// app is the state shared by every command of one invocation.
type app struct {
	in      io.Reader
	printer *output.Printer
	session *store.Session
	api     *client.Client
	drafts  *store.Drafts

	baseURL     string
	sessionPath string
	noColor     bool
	timeout     time.Duration
}

func defaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".heartctl-session.json"
	}
	return filepath.Join(dir, "heartctl", "session.json")
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// NewRootCmd builds the command tree reading from in and writing to out/errOut.
func NewRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{in: in, drafts: store.NewDrafts()}

	root := &cobra.Command{
		Use:   "heartctl",
		Short: "Terminal client for the Heart research-writing API",
		Long: `heartctl talks to a Heart API server: manage research topics and entries,
keep article drafts, and run the writing tools (rewrite, grammar, AI detection,
citations, research suggestions).

Example usage:
  heartctl login -e me@example.com
  heartctl topics create "Heart failure"
  heartctl rewrite -f notes.txt
  heartctl grammar "Their is a error here."`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(out, errOut)
		},
	}

	root.PersistentFlags().StringVar(&a.baseURL, "api", getenv("HEART_API_URL", client.DefaultBaseURL), "API base URL")
	root.PersistentFlags().StringVar(&a.sessionPath, "session", getenv("HEARTCTL_SESSION", defaultSessionPath()), "session file")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable colored output")
	root.PersistentFlags().DurationVar(&a.timeout, "timeout", client.DefaultTimeout, "request timeout")

	root.AddCommand(
		a.signupCmd(), a.loginCmd(), a.logoutCmd(), a.meCmd(),
		a.topicsCmd(), a.entriesCmd(), a.draftsCmd(),
		a.rewriteCmd(), a.grammarCmd(), a.detectCmd(), a.citeCmd(), a.researchCmd(),
		a.searchCmd(),
	)
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetIn(in)
	return root
}

func (a *app) init(out, errOut io.Writer) error {
	a.printer = output.NewPrinter(out, errOut, output.ResolveColors(a.noColor))
	sess, err := store.LoadSession(a.sessionPath)
	if err != nil {
		return fmt.Errorf("loading session: %w", err)
	}
	a.session = sess
	a.api = client.New(a.baseURL, sess)
	a.api.HTTP.Timeout = a.timeout
	return nil
}

func (a *app) ctx(cmd *cobra.Command) context.Context {
	if c := cmd.Context(); c != nil {
		return c
	}
	return context.Background()
}

// requireLogin fails early when no token is stored.
func (a *app) requireLogin() error {
	if !a.session.LoggedIn() {
		return errors.New("not logged in; run `heartctl login` first")
	}
	return nil
}

// readText returns the joined args, the file contents, or stdin for "-".
func (a *app) readText(args []string, file string) (string, error) {
	if file != "" {
		var (
			b   []byte
			err error
		)
		if file == "-" {
			b, err = io.ReadAll(a.in)
		} else {
			b, err = os.ReadFile(file)
		}
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	if len(args) == 1 && args[0] == "-" {
		b, err := io.ReadAll(a.in)
		return string(b), err
	}
	return strings.Join(args, " "), nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
