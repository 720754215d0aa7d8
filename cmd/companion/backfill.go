package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewBackfillCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backfill",
		Short: "Embed memories missing a vector",
		Long:  `Sync the vector cache against the memory log and embed every entry still missing a vector.`,
		RunE:  makeBackfillRunner(),
	}

	return cmd
}

func makeBackfillRunner() func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		engine, err := engineFromFlags(cmd)
		if err != nil {
			return err
		}

		out, err := engine.Backfill(cmd.Context())
		if err != nil {
			return fmt.Errorf("backfill vectors: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%d entries, %d embedded, %d still missing\n",
			out.Entries, out.Filled, out.Missing)
		return nil
	}
}
