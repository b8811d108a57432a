package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/ringlens"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of ringlens",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "ringlens version %s\n", strings.TrimSpace(ringlens.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
