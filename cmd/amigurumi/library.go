package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/aretw0/amigurumi/internal/cli"
	"github.com/aretw0/amigurumi/pkg/domain"
	"github.com/spf13/cobra"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Browse saved patterns",
}

var libraryListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List saved patterns",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		lib, err := app.OpenLibrary()
		if err != nil {
			return err
		}
		entries, err := lib.List(cmd.Context())
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			cli.PrintSystemMessage(cmd.ErrOrStderr(), "No saved patterns in '%s'.", app.Config.Library.Path)
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSTITCHES\tSTITCH\tROUNDS")
		for _, e := range entries {
			rounds := "continuous"
			if e.Joined {
				rounds = "joined"
			}
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", e.ID, e.Circumference, e.Stitch, rounds)
		}
		return w.Flush()
	},
}

var libraryShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a saved pattern",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		descriptive, _ := cmd.Flags().GetBool("descriptive")

		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		lib, err := app.OpenLibrary()
		if err != nil {
			return err
		}
		result, err := lib.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("descriptive") {
			result.Request.Mode = domain.ModeAbbrev
			if descriptive {
				result.Request.Mode = domain.ModeDesc
			}
		}
		return cli.WritePattern(cmd.OutOrStdout(), result, format)
	},
}

func init() {
	rootCmd.AddCommand(libraryCmd)
	libraryCmd.AddCommand(libraryListCmd, libraryShowCmd)
	libraryShowCmd.Flags().StringP("format", "f", cli.FormatText, "Output format: text, markdown, json or yaml")
	libraryShowCmd.Flags().BoolP("descriptive", "d", false, "Spell instructions out instead of abbreviating")
}
