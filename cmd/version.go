package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// version is set via -ldflags at build time.
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("studydesk", version)

		check, _ := cmd.Flags().GetBool("check")
		if !check {
			return nil
		}
		cfg, err := apiConfig(cmd)
		if err != nil {
			return err
		}
		client, err := newClient(cmd, nil)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		info, err := client.CheckCompatibility(ctx, version)
		if err != nil {
			return err
		}
		fmt.Printf("backend %s at %s (minimum client %s)\n", info.Version, cfg.BaseURL, info.MinClientVersion)
		return nil
	},
}

func init() {
	versionCmd.Flags().Bool("check", false, "Check compatibility with the backend")
}
