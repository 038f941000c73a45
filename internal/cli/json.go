package cli

// ABOUTME: Helper functions for --json flag support across CLI commands.

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// jsonEnabled checks if the --json persistent flag is set on the command.
func jsonEnabled(cmd *cobra.Command) bool {
	// Check persistent flags first (where --json is registered)
	if f := cmd.PersistentFlags().Lookup("json"); f != nil {
		v, _ := cmd.PersistentFlags().GetBool("json")
		return v
	}
	// Fallback to checking inherited flags (for subcommands)
	v, _ := cmd.Flags().GetBool("json")
	return v
}

// writeJSON marshals v as indented JSON and writes it to w with a trailing newline.
func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
