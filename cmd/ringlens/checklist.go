package main

import (
	"github.com/aretw0/ringlens"
	"github.com/aretw0/ringlens/internal/cli"
	"github.com/aretw0/ringlens/pkg/adapters/clipboard"
	"github.com/spf13/cobra"
)

// newClipboard is replaced in tests.
var newClipboard = func() ringlens.Option {
	return ringlens.WithClipboard(clipboard.New())
}

var checklistCmd = &cobra.Command{
	Use:   "checklist [scenario]",
	Short: "Print the investigation checklist of a scenario",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		toClipboard, _ := cmd.Flags().GetBool("copy")

		var opts []ringlens.Option
		if toClipboard {
			opts = append(opts, newClipboard())
		}
		engine, err := loadEngine(cmd, opts...)
		if err != nil {
			return err
		}
		scenarioID, err := scenarioArg(engine, args)
		if err != nil {
			return err
		}
		return cli.RunChecklist(cli.NewOutput(cmd.OutOrStdout()), engine, scenarioID, toClipboard)
	},
}

func init() {
	rootCmd.AddCommand(checklistCmd)
	checklistCmd.Flags().BoolP("copy", "c", false, "Also copy the checklist to the system clipboard")
}
