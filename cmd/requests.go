package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/studyhub/studydesk/internal/store"
)

var requestsCmd = &cobra.Command{
	Use:   "requests",
	Short: "List recent backend requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		failed, _ := cmd.Flags().GetBool("failed")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryRequestEvents(context.Background(), store.QueryOpts{Limit: limit, Newest: true})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		if len(events) == 0 {
			fmt.Println("No requests recorded.")
			return nil
		}

		// Header.
		fmt.Printf("%-5s  %-19s  %-10s  %-6s  %-32s  %-6s  %-3s  %-7s  %s\n",
			"ID", "Timestamp", "Purpose", "Method", "Path", "Status", "Try", "Ms", "OK")
		fmt.Println(strings.Repeat("─", 110))

		for _, e := range events {
			if purpose != "" && e.Purpose != purpose {
				continue
			}
			if failed && e.Success {
				continue
			}
			ok := "✓"
			if !e.Success {
				ok = "✗ " + e.ErrorMessage
			}
			path := e.Path
			if len(path) > 32 {
				path = path[:32]
			}
			fmt.Printf("%-5d  %-19s  %-10s  %-6s  %-32s  %-6d  %-3d  %-7d  %s\n",
				e.ID,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Purpose,
				e.Method,
				path,
				e.Status,
				e.Attempt,
				e.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

func init() {
	requestsCmd.Flags().Int("limit", 20, "Maximum number of requests to show")
	requestsCmd.Flags().String("purpose", "", "Only show requests with this purpose (guide, guide_list, assignments, generate, version)")
	requestsCmd.Flags().Bool("failed", false, "Only show failed requests")
}
