package main

import (
	"context"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"webbridge/internal/shared/types"
)

// opsCmd lists every tool the server exposes, one row per operation.
var opsCmd = &cobra.Command{
	Use:   "ops",
	Short: "List the web tools the server exposes",
	Long: `The ops command fetches the service catalog from the server and prints
one row per tool: its ID, parameters, and description. Tool IDs feed
directly into 'bridgectl exec'.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		services, err := newClient(serverAddr).services(ctx)
		if err != nil {
			return err
		}
		if len(services) == 0 {
			pterm.Println("⚠️  The server exposes no services")
			return nil
		}

		for _, svc := range services {
			pterm.Println(pterm.NewStyle(pterm.FgLightCyan, pterm.Bold).Sprintf("%s (%s)", svc.Name, svc.ID))
			pterm.Println(svc.Description)
			pterm.Println()

			data := pterm.TableData{{"TOOL", "PARAMETERS", "DESCRIPTION"}}
			for _, tool := range svc.Tools {
				data = append(data, []string{tool.ID, paramSummary(tool.Parameters), tool.Description})
			}
			if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
				return err
			}
			pterm.Println()
		}

		pterm.Println("Required parameters are marked with *")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(opsCmd)
}

// paramSummary renders a tool's parameters as "url*, format, timeout",
// marking required ones with an asterisk.
func paramSummary(params []types.Parameter) string {
	if len(params) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(params))
	for _, p := range params {
		name := p.Name
		if p.Required {
			name += "*"
		}
		parts = append(parts, name)
	}
	return strings.Join(parts, ", ")
}
