package main

import (
	"errors"

	"github.com/aretw0/ringlens/internal/cli"
	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage stored viewer sessions",
	Long:  `List, inspect, and remove sessions kept in the configured store.`,
}

var sessionLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all active sessions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStores(cmd, func(stores *cli.Stores) error {
			return cli.RunSessionList(cmd.Context(), cli.NewOutput(cmd.OutOrStdout()), stores.State)
		})
	},
}

var sessionInspectCmd = &cobra.Command{
	Use:   "inspect <session-id>",
	Short: "Inspect the view state of a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStores(cmd, func(stores *cli.Stores) error {
			return cli.RunSessionInspect(cmd.Context(), cli.NewOutput(cmd.OutOrStdout()), stores.State, args[0])
		})
	},
}

var sessionRmCmd = &cobra.Command{
	Use:   "rm [session-id...]",
	Short: "Remove one or more sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		if all == (len(args) > 0) {
			return errors.New("expected session ids or --all, not both")
		}
		return withStores(cmd, func(stores *cli.Stores) error {
			return cli.RunSessionRemove(cmd.Context(), cli.NewOutput(cmd.OutOrStdout()), stores.State, args, all)
		})
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionLsCmd)
	sessionCmd.AddCommand(sessionInspectCmd)
	sessionCmd.AddCommand(sessionRmCmd)

	sessionCmd.PersistentFlags().String("store", "", "Session store driver: memory, file or redis")
	sessionCmd.PersistentFlags().String("store-path", "", "Session directory for the file store")
	sessionCmd.PersistentFlags().String("redis-addr", "", "Redis address for the redis store")
	sessionRmCmd.Flags().Bool("all", false, "Remove every session")
}

func withStores(cmd *cobra.Command, fn func(*cli.Stores) error) error {
	stores, err := cli.OpenStores(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer stores.Close()
	return fn(stores)
}
