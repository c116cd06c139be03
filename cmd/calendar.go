package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/studyhub/studydesk/internal/app"
	"github.com/studyhub/studydesk/internal/calendar"
	"github.com/studyhub/studydesk/internal/screen"
	calendarscreen "github.com/studyhub/studydesk/internal/screens/calendar"
)

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show assignments due on a calendar",
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := viewMode(cmd)
		if err != nil {
			return err
		}
		anchor := time.Now()
		if d, _ := cmd.Flags().GetString("date"); d != "" {
			anchor, err = time.ParseInLocation(time.DateOnly, d, time.Local)
			if err != nil {
				return fmt.Errorf("invalid --date %q: want YYYY-MM-DD", d)
			}
		}

		if p, _ := cmd.Flags().GetBool("print"); p {
			return printCalendar(cmd, calendar.New(anchor, mode))
		}
		return runApp(cmd, app.Options{
			CalendarMode: mode,
			Start: func(env *screen.Env) screen.Screen {
				return calendarscreen.New(env, mode).WithAnchor(anchor)
			},
		})
	},
}

func init() {
	calendarCmd.Flags().String("view", "month", "View: day, three_day, week or month")
	calendarCmd.Flags().String("date", "", "Show the range containing this date (YYYY-MM-DD)")
	calendarCmd.Flags().Bool("print", false, "Print the assignments instead of opening the TUI")
}

// printCalendar lists the assignments due in the range of nav.
func printCalendar(cmd *cobra.Command, nav calendar.NavState) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	client, err := newClient(cmd, st.EventRepo())
	if err != nil {
		return err
	}
	items, err := client.ListAssignments(cmd.Context(), nav.Range())
	if err != nil {
		return fmt.Errorf("list assignments: %w", err)
	}

	fmt.Println(nav.Label())
	fmt.Println(strings.Repeat("─", 60))
	if len(items) == 0 {
		fmt.Println("No assignments due.")
		return nil
	}
	for _, a := range items {
		fmt.Printf("%-10s  %-36s  %s\n", a.Due.Format(time.DateOnly), a.Title, a.CourseName)
	}
	return nil
}
