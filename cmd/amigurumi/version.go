package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/amigurumi"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of amigurumi",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "amigurumi version %s\n", strings.TrimSpace(amigurumi.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
