package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// doctorCmd inspects a running server: identity, health, and the worker
// diagnostics the debug tool reports.
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose a running webbridge server",
	Long: `The doctor command checks a running server from the outside in: the
identity endpoint, the health report (worker runtime, search backend,
registry), and the debug tool's full diagnostic report. The debug tool
spawns a real worker, so a passing doctor run also proves the Python
side of the installation works.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient(serverAddr)

		statusCtx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		info, err := c.root(statusCtx)
		if err != nil {
			pterm.Println("❌ Server is unreachable at " + serverAddr)
			return err
		}
		pterm.Println(fmt.Sprintf("✅ %s %s is %s", info.Service, info.Version, info.Status))

		health, err := c.health(statusCtx)
		if err != nil {
			return err
		}
		renderHealth(health)
		pterm.Println()

		spinner, _ := pterm.DefaultSpinner.WithWriter(os.Stderr).Start("Collecting worker diagnostics")
		result, err := c.execute(cmd.Context(), "web.debug", map[string]any{})
		_ = spinner.Stop()
		if err != nil {
			return err
		}
		if !result.Success {
			msg := "no error message"
			if result.Error != nil && *result.Error != "" {
				msg = *result.Error
			}
			pterm.Println("❌ Diagnostics failed: " + msg)
			return fmt.Errorf("web.debug was rejected")
		}

		pterm.DefaultBox.
			WithTitle(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint("Worker Diagnostics")).
			WithPadding(1).
			Println(result.Output())

		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// renderHealth prints the interesting lines of the health report.
func renderHealth(health map[string]any) {
	if b, ok := health["bridge"].(map[string]any); ok {
		pterm.Println(fmt.Sprintf("   Worker script:  %v", b["script"]))
		pterm.Println(fmt.Sprintf("   Worker runtime: %v", b["runtime"]))
		pterm.Println(fmt.Sprintf("   Invocations:    %v", b["invocations"]))
	}

	sx, ok := health["searx"].(map[string]any)
	if !ok {
		return
	}
	if configured, _ := sx["configured"].(bool); !configured {
		pterm.Println("   Search backend: not configured, search falls back to DuckDuckGo")
		return
	}
	if reachable, _ := sx["reachable"].(bool); reachable {
		pterm.Println(fmt.Sprintf("   Search backend: reachable at %v", sx["url"]))
	} else {
		pterm.Println(fmt.Sprintf("⚠️  Search backend unreachable: %v", sx["detail"]))
	}
}
