package main

import (
	"log"
	"os"

	"github.com/aretw0/ringlens/internal/cli"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes the scenario catalog and its narratives as MCP tools, so AI agents
can list scenarios, explain nodes and read lens narratives.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP when --sse is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sseAddr, _ := cmd.Flags().GetString("sse")
		if sseAddr == "" {
			// Ensure logs don't corrupt JSON-RPC on Stdout
			log.SetOutput(os.Stderr)
		}

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		if err := cli.RunMCP(sigCtx, cfg, logger, sseAddr); err != nil {
			return err
		}
		logger.Info("MCP server stopped gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().String("sse", "", "Serve over SSE on this address (e.g. :8081) instead of stdio")
}
