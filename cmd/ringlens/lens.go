package main

import (
	"github.com/aretw0/ringlens/internal/cli"
	"github.com/aretw0/ringlens/pkg/domain"
	"github.com/spf13/cobra"
)

var lensCmd = &cobra.Command{
	Use:   "lens <scenario> [fraud|aml|ts]",
	Short: "Interpret a scenario through an analytical lens",
	Long: `Prints the fraud, AML or trust & safety narrative of a scenario.
The lens defaults to the configured default_lens.`,
	Args:      cobra.RangeArgs(1, 2),
	ValidArgs: []string{string(domain.LensFraud), string(domain.LensAML), string(domain.LensTS)},
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := loadEngine(cmd)
		if err != nil {
			return err
		}

		lens := domain.Lens(cfg.DefaultLens)
		if len(args) == 2 {
			lens = domain.Lens(args[1])
		}
		return cli.RunLens(cli.NewOutput(cmd.OutOrStdout()), engine, args[0], lens)
	},
}

func init() {
	rootCmd.AddCommand(lensCmd)
	lensCmd.Flags().String("default-lens", "", "Lens used when none is given")
}
