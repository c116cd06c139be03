package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/studyhub/studydesk/internal/screens/history"
)

var historyCmd = &cobra.Command{
	Use:   "history [session-id]",
	Short: "Show finished review sessions",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()
		repo := s.EventRepo()

		if len(args) == 1 {
			outcomes, err := repo.QueryOutcomeEvents(ctx, args[0])
			if err != nil {
				return fmt.Errorf("query outcomes: %w", err)
			}
			if len(outcomes) == 0 {
				fmt.Printf("No answers recorded for session %s.\n", args[0])
				return nil
			}
			fmt.Printf("%-5s  %-10s  %-6s  %s\n", "Item", "Outcome", "Answer", "Time")
			fmt.Println(strings.Repeat("─", 40))
			for _, o := range outcomes {
				fmt.Printf("%-5d  %-10s  %-6s  %.1fs\n", o.ItemID+1, o.Outcome, o.Answer, float64(o.TimeMs)/1000)
			}
			return nil
		}

		sessions, err := history.Finished(ctx, repo, limit)
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		if len(sessions) == 0 {
			fmt.Println("No sessions yet.")
			return nil
		}
		for _, sess := range sessions {
			fmt.Printf("%s  %s\n", sess.SessionID[:min(8, len(sess.SessionID))], history.FormatSession(sess))
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of sessions to show")
}
