package main

import (
	"fmt"
	"os"

	"github.com/aretw0/amigurumi/internal/cli"
	"github.com/aretw0/amigurumi/internal/config"
	"github.com/aretw0/amigurumi/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "amigurumi",
	Short: "Amigurumi generates crochet patterns for spheres",
	Long: `Amigurumi computes how many stitches every round of a crocheted sphere needs
and writes the rounds out as a pattern: increases, decreases, joins and stuffing.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, tui.Error(err))
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Configuration file (default "+config.DefaultFile+" if present)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}

// loadApp resolves the configuration and builds the shared wiring for cmd.
func loadApp(cmd *cobra.Command) (*cli.App, error) {
	path, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	logger, err := cli.NewLogger(cfg.Log, debug, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	return cli.NewApp(cmd.Context(), cfg, logger)
}
