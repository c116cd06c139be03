package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/studyhub/studydesk/internal/app"
	"github.com/studyhub/studydesk/internal/guide"
	"github.com/studyhub/studydesk/internal/screen"
	"github.com/studyhub/studydesk/internal/screens/notice"
	"github.com/studyhub/studydesk/internal/screens/review"
	"github.com/studyhub/studydesk/internal/store"
)

var studyCmd = &cobra.Command{
	Use:   "study <file|guide-id>",
	Short: "Review a quiz or flashcard set",
	Long: "Open a study guide directly. The argument is a path to a guide JSON file or " +
		"the ID of a guide on the backend (or in --guides).",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		env, err := loadEnvForStudy(cmd, st.EventRepo(), args[0])
		if err != nil {
			return err
		}
		g, err := loadGuide(cmd, env, args[0])
		if err != nil {
			return err
		}
		// Validate before the TUI starts so a malformed guide never opens a
		// session.
		if g.Type != guide.TypeStudyGuide {
			if _, err := g.Start(); err != nil {
				return fmt.Errorf("guide %s: %w", g.ID, err)
			}
		}

		return app.Run(env, app.Options{Start: func(env *screen.Env) screen.Screen {
			if g.Type == guide.TypeStudyGuide {
				return notice.Text(g.Title, g.Body)
			}
			rs, err := review.New(env, g)
			if err != nil {
				return notice.Error("Could not start review", err)
			}
			return rs
		}})
	},
}

// loadEnvForStudy skips the backend when the argument is a local file.
func loadEnvForStudy(cmd *cobra.Command, repo store.EventRepo, arg string) (*screen.Env, error) {
	if isFile(arg) {
		return &screen.Env{Events: repo}, nil
	}
	return buildEnv(cmd, repo)
}

func loadGuide(cmd *cobra.Command, env *screen.Env, arg string) (*guide.Guide, error) {
	if isFile(arg) {
		return guide.ReadFile(arg)
	}
	if env.Guides == nil {
		return nil, fmt.Errorf("guide %q: %w", arg, guide.ErrNotFound)
	}
	g, err := env.Guides.Get(cmd.Context(), arg)
	if err != nil {
		return nil, fmt.Errorf("load guide %q: %w", arg, err)
	}
	return g, nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
