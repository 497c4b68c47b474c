package main

import (
	"fmt"

	"github.com/aretw0/amigurumi/internal/cli"
	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect the pattern cache",
	Long: `Inspect the pattern cache configured by pattern.cache.

The memory cache lives inside a single process, so these commands are most
useful with the shared redis cache.`,
}

var cacheListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List cached pattern keys",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		keys, err := app.CacheKeys(cmd.Context())
		if err != nil {
			return err
		}
		if len(keys) == 0 {
			cli.PrintSystemMessage(cmd.ErrOrStderr(), "No cached patterns.")
			return nil
		}
		for _, key := range keys {
			fmt.Fprintln(cmd.OutOrStdout(), key)
		}
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear [key...]",
	Short: "Evict cached patterns, all of them when no key is given",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		n, err := app.ClearCache(cmd.Context(), args...)
		if err != nil {
			return err
		}
		cli.PrintSystemMessage(cmd.ErrOrStderr(), "Evicted %d cached pattern(s).", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheListCmd, cacheClearCmd)
}
