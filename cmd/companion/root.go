package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tranvuongquocdat/life-companition-AI-sub000/internal"
)

func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "companion",
		Short:         "Long-term memory for an AI companion",
		Long:          `An append-only memory log with hybrid keyword and semantic recall.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	addPersistentFlags(rootCmd)
	addSubcommands(rootCmd)

	return rootCmd
}

func addPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("vault", "", "Vault directory (default $COMPANION_HOME or ~/.companion)")
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
}

func addSubcommands(root *cobra.Command) {
	root.AddCommand(
		NewSaveCmd(),
		NewRecallCmd(),
		NewBackfillCmd(),
		NewWatchCmd(),
		NewStatusCmd(),
	)
}

// engineFromFlags builds an engine for the vault the invocation targets. Each
// run resolves the vault and config fresh so --vault behaves per command.
func engineFromFlags(cmd *cobra.Command) (*internal.Engine, error) {
	dir, _ := cmd.Flags().GetString("vault")
	vault := internal.ResolveVault(dir)

	cfg, err := internal.LoadConfig(vault)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return internal.NewEngine(vault, internal.NewGatewayFromConfig(cfg)), nil
}
