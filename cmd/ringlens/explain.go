package main

import (
	"github.com/aretw0/ringlens/internal/cli"
	"github.com/spf13/cobra"
)

var explainCmd = &cobra.Command{
	Use:   "explain <scenario> [node]",
	Short: "Explain a node from its direct neighbors",
	Long: `Counts the sellers, buyers, banks, devices, cards and disputes one edge away
from a node and explains its role. Without a node, lists the scenario's nodes.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := loadEngine(cmd)
		if err != nil {
			return err
		}

		out := cli.NewOutput(cmd.OutOrStdout())
		if len(args) == 1 {
			return cli.RunNodes(out, engine, args[0])
		}
		return cli.RunExplain(out, engine, args[0], args[1])
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary [scenario]",
	Short: "Summarize the composition of a scenario",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := loadEngine(cmd)
		if err != nil {
			return err
		}
		scenarioID, err := scenarioArg(engine, args)
		if err != nil {
			return err
		}
		return cli.RunSummary(cli.NewOutput(cmd.OutOrStdout()), engine, scenarioID)
	},
}

func init() {
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(summaryCmd)
}
