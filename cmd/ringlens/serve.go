package main

import (
	"github.com/aretw0/ringlens"
	"github.com/aretw0/ringlens/internal/cli"
	"github.com/aretw0/ringlens/internal/presentation/tui"
	"github.com/aretw0/ringlens/web"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and browser UI",
	Long: `Serves the JSON API, the SSE session stream, Prometheus metrics and the
embedded single-page UI. Sessions are kept in the configured store
(memory, file or redis).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cli.NewOutput(cmd.OutOrStdout())
		if out.Interactive() {
			tui.PrintBanner(out.Writer(), ringlens.Version)
		}

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		err := cli.RunServe(sigCtx, out.Writer(), cfg, logger, cli.ServeOptions{UI: web.Static()})
		if sig := sigCtx.Signal(); sig != nil {
			logger.Info("Server stopped", "signal", sig.String())
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "", "Address to listen on (default :8080)")
	serveCmd.Flags().String("store", "", "Session store driver: memory, file or redis")
	serveCmd.Flags().String("store-path", "", "Session directory for the file store")
	serveCmd.Flags().String("redis-addr", "", "Redis address for the redis store")
	serveCmd.Flags().String("cors-origin", "", "Allowed CORS origin")
	serveCmd.Flags().String("default-lens", "", "Lens of new sessions: fraud, aml or ts")
}
