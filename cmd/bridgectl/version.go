package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"webbridge/internal/version"
)

// versionCmd prints the CLI version and, when a server is reachable, the
// server version too.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show CLI and server version information",

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()

		serverVersion := "unknown"
		if info, err := newClient(serverAddr).root(ctx); err == nil && info.Version != "" {
			serverVersion = info.Version
		}

		fmt.Printf("bridgectl %s\nserver    %s\n", version.Version, serverVersion)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
