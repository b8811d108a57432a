package main

import (
	"github.com/aretw0/ringlens/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [scenario]",
	Short: "Export the scenario graph visualization",
	Long: `Outputs the decorated graph of a scenario, as a Mermaid diagram (graph LR)
or as the JSON consumed by the browser renderer. Defaults to the first scenario.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := loadEngine(cmd)
		if err != nil {
			return err
		}
		scenarioID, err := scenarioArg(engine, args)
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		node, _ := cmd.Flags().GetString("node")
		return cli.RunGraph(cli.NewOutput(cmd.OutOrStdout()), engine, scenarioID, format, node)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringP("format", "f", cli.FormatMermaid, "Output format: mermaid or json")
	graphCmd.Flags().String("node", "", "Highlight a node in the Mermaid output")
}
