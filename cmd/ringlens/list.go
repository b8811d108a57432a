package main

import (
	"github.com/aretw0/ringlens/internal/cli"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the loaded scenarios",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := loadEngine(cmd)
		if err != nil {
			return err
		}
		return cli.RunList(cli.NewOutput(cmd.OutOrStdout()), engine)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
