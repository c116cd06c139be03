package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/studyhub/studydesk/internal/api"
	"github.com/studyhub/studydesk/internal/app"
	"github.com/studyhub/studydesk/internal/store"
)

var rootCmd = &cobra.Command{
	Use:           "studydesk",
	Short:         "Study guides and assignment calendar in the terminal",
	Long:          "studydesk runs quiz and flashcard review sessions over your study guides and shows when assignments are due.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := viewMode(cmd)
		if err != nil {
			return err
		}
		return runApp(cmd, app.Options{CalendarMode: mode})
	},
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides STUDYDESK_DB env var)")
	pf.String("api-url", "", "Backend base URL (overrides STUDYDESK_API_URL env var)")
	pf.String("guides", "", "Read study guides from this directory instead of the backend")
	rootCmd.Flags().String("view", "month", "Calendar view: day, three_day, week or month")

	rootCmd.AddCommand(studyCmd)
	rootCmd.AddCommand(calendarCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(requestsCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then STUDYDESK_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the local activity database.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// apiConfig reads the backend configuration from the environment and
// applies --api-url on top.
func apiConfig(cmd *cobra.Command) (api.Config, error) {
	cfg := api.ConfigFromEnv()
	if u, _ := cmd.Flags().GetString("api-url"); u != "" {
		cfg.BaseURL = u
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("backend config: %w", err)
	}
	return cfg, nil
}

// newClient builds a backend client whose requests are logged to repo.
func newClient(cmd *cobra.Command, repo store.EventRepo) (*api.Client, error) {
	cfg, err := apiConfig(cmd)
	if err != nil {
		return nil, err
	}
	return api.NewFromConfig(cfg, repo)
}
