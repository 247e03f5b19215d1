package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	execParams []string
	execJSON   string
)

// execCmd executes one web tool against the server and prints its textual
// answer.
var execCmd = &cobra.Command{
	Use:   "exec <action>",
	Short: "Execute a web tool",
	Long: `The exec command runs one tool on the server and prints the textual
answer it produces. A bare action name is qualified with the "web."
service prefix, so 'bridgectl exec fetch' and 'bridgectl exec web.fetch'
are the same call.

Parameters are passed as repeated --param key=value flags. Values that
parse as JSON keep their type ("10" becomes a number, "true" a bool);
quote a value to force a string: --param 'query="42"'. A full parameter
object can be passed at once with --json; --param entries win on
conflict.

Examples:
  bridgectl exec fetch --param url=https://example.com
  bridgectl exec search --param query=golang --param limit=5
  bridgectl exec extract --param url=https://example.com --json '{"schema":{"title":"h1"}}'`,
	Args: cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		toolID := args[0]
		if !strings.Contains(toolID, ".") {
			toolID = "web." + toolID
		}

		params := map[string]any{}
		if execJSON != "" {
			if err := json.Unmarshal([]byte(execJSON), &params); err != nil {
				return fmt.Errorf("invalid --json payload: %w", err)
			}
		}
		flagParams, err := parseParamFlags(execParams)
		if err != nil {
			return err
		}
		for k, v := range flagParams {
			params[k] = v
		}

		spinner, _ := pterm.DefaultSpinner.WithWriter(os.Stderr).Start("Executing " + toolID)
		result, err := newClient(serverAddr).execute(cmd.Context(), toolID, params)
		_ = spinner.Stop()
		if err != nil {
			return err
		}

		if !result.Success {
			msg := "no error message"
			if result.Error != nil && *result.Error != "" {
				msg = *result.Error
			}
			pterm.Println("❌ " + msg)
			return fmt.Errorf("%s was rejected", toolID)
		}

		if out := result.Output(); out != "" {
			fmt.Println(out)
			return nil
		}

		// Tools always answer with text; fall back to the raw data just in case.
		raw, err := json.MarshalIndent(result.Data, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(raw))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(execCmd)
	execCmd.Flags().StringArrayVar(&execParams, "param", nil, "Tool parameter as key=value (repeatable)")
	execCmd.Flags().StringVar(&execJSON, "json", "", "Tool parameters as a JSON object")
}

// parseParamFlags turns repeated key=value flags into a params map. Values
// that parse as JSON keep their type; anything else stays a string.
func parseParamFlags(pairs []string) (map[string]any, error) {
	params := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, raw, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid --param %q, expected key=value", pair)
		}
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			params[key] = raw
			continue
		}
		params[key] = v
	}
	return params, nil
}
