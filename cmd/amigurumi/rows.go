package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/amigurumi/internal/presentation/chart"
	"github.com/aretw0/amigurumi/pkg/pattern"
	"github.com/aretw0/amigurumi/pkg/request"
	"github.com/spf13/cobra"
)

var rowsCmd = &cobra.Command{
	Use:   "rows <circumference>",
	Short: "Print the stitch count of every round",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		withChart, _ := cmd.Flags().GetBool("chart")

		raw, err := rawFromFlags(cmd, args[0])
		if err != nil {
			return err
		}
		req, err := request.Parse(raw)
		if err != nil {
			return err
		}

		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		rows, err := app.Generator.Rows(cmd.Context(), req)
		if err != nil {
			return err
		}
		stuffing := pattern.FindStuffingRow(rows)

		out := cmd.OutOrStdout()
		if withChart {
			fmt.Fprint(out, chart.GenerateMermaid(chart.Profile{
				Title:       fmt.Sprintf("Sphere of %d stitches (%s)", req.Circumference, req.Stitch),
				Rows:        rows,
				StuffingRow: stuffing,
			}))
			return nil
		}

		counts := make([]string, len(rows))
		for i, n := range rows {
			counts[i] = strconv.Itoa(n)
		}
		fmt.Fprintln(out, strings.Join(counts, " "))
		fmt.Fprintf(out, "rounds: %d, stuffing after round: %d\n", len(rows), stuffing)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rowsCmd)
	addStitchFlags(rowsCmd)
	rowsCmd.Flags().Bool("chart", false, "Print a Mermaid xychart instead of plain numbers")
}
