package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func NewSaveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save [content]",
		Short: "Save a memory",
		Long:  `Append a memory to the log. Reads from stdin if content is not provided.`,
		Args:  cobra.MaximumNArgs(1),
		RunE:  makeSaveRunner(),
	}

	cmd.Flags().StringP("type", "t", "", "Memory type (fact|preference|context|emotional)")
	return cmd
}

func makeSaveRunner() func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		content, err := resolveSaveContent(args)
		if err != nil {
			return err
		}

		kind, _ := cmd.Flags().GetString("type")

		engine, err := engineFromFlags(cmd)
		if err != nil {
			return err
		}

		out, err := engine.Save(cmd.Context(), content, kind)
		if err != nil {
			return fmt.Errorf("save memory: %w", err)
		}

		note := ""
		if !out.Embedded {
			note = " (embedding pending)"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved [%s] %s%s\n", out.Entry.Kind, out.Entry.ID, note)
		return nil
	}
}

func resolveSaveContent(args []string) (string, error) {
	if len(args) >= 1 {
		return args[0], nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}
