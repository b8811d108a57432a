package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/ringlens"
	"github.com/aretw0/ringlens/internal/cli"
	"github.com/aretw0/ringlens/internal/config"
	"github.com/spf13/cobra"
)

// Resolved by the root command before any subcommand runs.
var (
	cfg    *config.Config
	logger *slog.Logger
)

// flagKeys maps command-line flags to config keys. Flags override the
// config file and the environment when set explicitly.
var flagKeys = map[string]string{
	"scenarios":    "scenarios",
	"log-level":    "log.level",
	"log-format":   "log.format",
	"addr":         "addr",
	"store":        "store.driver",
	"store-path":   "store.path",
	"redis-addr":   "store.redis.addr",
	"cors-origin":  "cors.origin",
	"default-lens": "default_lens",
}

var rootCmd = &cobra.Command{
	Use:   "ringlens",
	Short: "Ringlens explains synthetic fraud and abuse networks",
	Long: `Ringlens loads synthetic fraud, AML and trust & safety scenarios and
explains them: node neighborhoods, scenario summaries, lens narratives and
investigation checklists, from the terminal, a browser UI or an MCP client.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Config file (default ./"+config.DefaultFile+" if present)")
	rootCmd.PersistentFlags().String("scenarios", "", "Scenario source: JSON/YAML file, loam directory or URL (default embedded samples)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json")
}

func loadConfig(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	c, err := config.Load(path, nil)
	if err != nil {
		return err
	}

	overrides := map[string]string{}
	for name, key := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f != nil && f.Changed {
			overrides[key] = f.Value.String()
		}
	}
	if err := c.Apply(overrides); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	if err := c.Validate(); err != nil {
		return err
	}

	l, err := c.Logger()
	if err != nil {
		return err
	}
	cfg, logger = c, l
	return nil
}

// loadEngine builds an engine for read-only commands, without a session store.
func loadEngine(cmd *cobra.Command, opts ...ringlens.Option) (*ringlens.Engine, error) {
	return cli.CreateEngine(cmd.Context(), cfg, logger, nil, opts...)
}

// scenarioArg returns the scenario named by args, or the first loaded one.
func scenarioArg(engine *ringlens.Engine, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	sc, ok := engine.Catalog().Default()
	if !ok {
		return "", fmt.Errorf("no scenarios loaded from %s", engine.Source)
	}
	return sc.ID, nil
}
