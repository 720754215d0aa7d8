package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func NewStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show vault status",
		Long:  `Show the active embedding model and how much of the log has cached vectors.`,
		RunE:  makeStatusRunner(),
	}

	return cmd
}

func makeStatusRunner() func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		engine, err := engineFromFlags(cmd)
		if err != nil {
			return err
		}

		out, err := engine.Status()
		if err != nil {
			return fmt.Errorf("read status: %w", err)
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{
				"vault":   engine.Vault().Dir,
				"model":   out.ModelID,
				"active":  out.Active,
				"entries": out.Entries,
				"vectors": out.Vectors,
			})
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Vault:   %s\n", engine.Vault().Dir)
		fmt.Fprintf(cmd.OutOrStdout(), "Model:   %s\n", out.ModelID)
		fmt.Fprintf(cmd.OutOrStdout(), "Entries: %d\n", out.Entries)
		fmt.Fprintf(cmd.OutOrStdout(), "Vectors: %d\n", out.Vectors)
		return nil
	}
}
