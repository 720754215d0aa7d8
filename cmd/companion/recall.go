package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tranvuongquocdat/life-companition-AI-sub000/internal"
)

func NewRecallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recall [query]",
		Short: "Recall memories",
		Long:  `Recall memories by hybrid keyword and semantic ranking, or list the most recent ones when no query is given.`,
		Args:  cobra.MaximumNArgs(1),
		RunE:  makeRecallRunner(),
	}

	cmd.Flags().IntP("days", "d", -1, "Only consider memories from the last N days")
	cmd.Flags().IntP("number", "n", internal.DefaultRecallLimit, "Maximum results")
	return cmd
}

func makeRecallRunner() func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		query := ""
		if len(args) >= 1 {
			query = args[0]
		}

		days, _ := cmd.Flags().GetInt("days")
		limit, _ := cmd.Flags().GetInt("number")
		asJSON, _ := cmd.Flags().GetBool("json")

		engine, err := engineFromFlags(cmd)
		if err != nil {
			return err
		}

		out, err := engine.Recall(cmd.Context(), internal.RecallInput{
			Query: query, Days: days, Limit: limit,
		})
		if err != nil {
			return fmt.Errorf("recall memories: %w", err)
		}

		if asJSON {
			return outputRecallJSON(cmd, out.Results)
		}

		if !out.HasLog {
			fmt.Fprintln(cmd.OutOrStdout(), "No memories saved yet.")
			return nil
		}
		if len(out.Results) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No memories matched.")
			return nil
		}

		for _, r := range out.Results {
			fmt.Fprintf(cmd.OutOrStdout(), "%s [%s] %s\n", r.Entry.ID, r.Entry.Kind, r.Entry.Content)
		}
		return nil
	}
}

func outputRecallJSON(cmd *cobra.Command, results []internal.Ranked) error {
	out := make([]map[string]any, 0, len(results))
	for _, r := range results {
		out = append(out, map[string]any{
			"id":      r.Entry.ID,
			"type":    r.Entry.Kind,
			"content": r.Entry.Content,
			"score":   r.Score,
		})
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
