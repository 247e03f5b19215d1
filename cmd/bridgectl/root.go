package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var serverAddr string

// rootCmd represents the base command when called without any subcommands.
// Every subcommand talks to a running webbridge server over its HTTP API.
var rootCmd = &cobra.Command{
	Use:   "bridgectl",
	Short: "Operator CLI for the webbridge service",
	Long: `bridgectl talks to a running webbridge server over its HTTP API.
It lists the available web tools, executes them from the terminal, and
inspects worker diagnostics without going through an agent host.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the CLI application.
// It executes the root command and handles any errors that occur during execution.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverAddr, "server", defaultServer(), "webbridge server address")
}

// defaultServer resolves the server address from the environment so CI and
// shell profiles can pin it without repeating the flag.
func defaultServer() string {
	if addr := os.Getenv("WEBBRIDGE_ADDR"); addr != "" {
		return addr
	}
	return "http://localhost:8000"
}
