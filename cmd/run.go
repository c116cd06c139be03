package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/studyhub/studydesk/internal/api"
	"github.com/studyhub/studydesk/internal/app"
	"github.com/studyhub/studydesk/internal/calendar"
	"github.com/studyhub/studydesk/internal/guide"
	"github.com/studyhub/studydesk/internal/screen"
	"github.com/studyhub/studydesk/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command, opts app.Options) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	env, err := buildEnv(cmd, st.EventRepo())
	if err != nil {
		return err
	}
	return app.Run(env, opts)
}

// buildEnv wires the backend client and guide source. A backend that is
// misconfigured or outdated is reported on stderr and the TUI still
// starts with local guides.
func buildEnv(cmd *cobra.Command, repo store.EventRepo) (*screen.Env, error) {
	env := &screen.Env{Events: repo}

	client, err := newClient(cmd, repo)
	if err != nil {
		if guidesDir(cmd) == "" {
			return nil, err
		}
		fmt.Fprintf(os.Stderr, "warning: %v; running with local guides only\n", err)
		env.Guides = guideSource(cmd, nil)
		return env, nil
	}

	checkBackend(cmd.Context(), client)
	env.Assignments = client
	env.Generator = client
	env.Guides = guideSource(cmd, client)
	return env, nil
}

// checkBackend warns when the backend is unreachable or requires a newer
// client.
func checkBackend(ctx context.Context, client *api.Client) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := client.CheckCompatibility(ctx, version)
	var outdated *api.ErrClientOutdated
	switch {
	case err == nil:
	case errors.As(err, &outdated):
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	default:
		fmt.Fprintf(os.Stderr, "warning: backend unreachable: %v\n", err)
	}
}

func viewMode(cmd *cobra.Command) (calendar.ViewMode, error) {
	s, _ := cmd.Flags().GetString("view")
	if s == "" {
		return calendar.ViewMonth, nil
	}
	return calendar.ParseViewMode(s)
}

func guideSource(cmd *cobra.Command, client *api.Client) guide.Source {
	if dir := guidesDir(cmd); dir != "" {
		return guide.FileSource{Dir: dir}
	}
	return client.Guides()
}

func guidesDir(cmd *cobra.Command) string {
	if d, _ := cmd.Flags().GetString("guides"); d != "" {
		return d
	}
	return os.Getenv("STUDYDESK_GUIDES")
}
