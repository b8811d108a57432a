package main

import (
	"fmt"

	"github.com/aretw0/ringlens/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [source]",
	Short: "Check scenarios for consistency",
	Long: `Loads scenarios and reports missing ids, duplicate node ids and edges that
reference unknown nodes. The source defaults to the configured scenarios.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source := cfg.Scenarios
		if len(args) > 0 {
			source = args[0]
		}
		if err := cli.RunValidate(cmd.Context(), cli.NewOutput(cmd.OutOrStdout()), source); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
