package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/aretw0/amigurumi"
	"github.com/spf13/cobra"
)

var stitchesCmd = &cobra.Command{
	Use:   "stitches",
	Short: "List the built-in stitches",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "KEY\tNAME\tRATIO\tCHAINS")
		for _, s := range amigurumi.New().Stitches() {
			fmt.Fprintf(w, "%s\t%s\t%.3f\t%d\n", s.Key, s.Name, s.Ratio, s.ChainCount)
		}
		fmt.Fprintln(w, "custom\tstitch\twidth/height\tceil(height/width)")
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(stitchesCmd)
}
