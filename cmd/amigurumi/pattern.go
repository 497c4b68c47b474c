package main

import (
	"github.com/aretw0/amigurumi/internal/cli"
	"github.com/aretw0/amigurumi/pkg/request"
	"github.com/spf13/cobra"
)

var patternCmd = &cobra.Command{
	Use:   "pattern <circumference>",
	Short: "Generate the pattern for a sphere",
	Long: `Generates a round-by-round crochet pattern for a sphere with the given
circumference in stitches.

Examples:
  amigurumi pattern 20
  amigurumi pattern 36 --stitch hdc --continuous
  amigurumi pattern 30 --stitch custom --width 0.5 --height 0.8 --format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		save, _ := cmd.Flags().GetBool("save")

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

		result, err := app.Generator.Generate(cmd.Context(), req)
		if err != nil {
			return err
		}

		if err := cli.WritePattern(cmd.OutOrStdout(), result, format); err != nil {
			return err
		}

		if save {
			lib, err := app.OpenLibrary()
			if err != nil {
				return err
			}
			id, err := lib.Save(cmd.Context(), result)
			if err != nil {
				return err
			}
			cli.PrintSystemMessage(cmd.ErrOrStderr(), "Saved as '%s'.", id)
		}
		return nil
	},
}

// addStitchFlags registers the flags every request-taking command shares.
func addStitchFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("stitch", "s", "sc", "Stitch type: sc, hdc, dc, tr or custom")
	cmd.Flags().String("width", "", "Width of one custom stitch")
	cmd.Flags().String("height", "", "Height of one custom stitch")
}

func rawFromFlags(cmd *cobra.Command, circumference string) (request.Raw, error) {
	raw := request.Defaults()
	raw.Circumference = circumference
	raw.Stitch, _ = cmd.Flags().GetString("stitch")
	raw.Width, _ = cmd.Flags().GetString("width")
	raw.Height, _ = cmd.Flags().GetString("height")

	if f := cmd.Flags().Lookup("continuous"); f != nil {
		continuous, err := cmd.Flags().GetBool("continuous")
		if err != nil {
			return request.Raw{}, err
		}
		raw.Joined = !continuous
	}
	if f := cmd.Flags().Lookup("descriptive"); f != nil {
		descriptive, err := cmd.Flags().GetBool("descriptive")
		if err != nil {
			return request.Raw{}, err
		}
		raw.Descriptive = descriptive
	}
	return raw, nil
}

func init() {
	rootCmd.AddCommand(patternCmd)
	addStitchFlags(patternCmd)
	patternCmd.Flags().Bool("continuous", false, "Crochet in a continuous spiral instead of joined rounds")
	patternCmd.Flags().BoolP("descriptive", "d", false, "Spell instructions out instead of abbreviating")
	patternCmd.Flags().StringP("format", "f", cli.FormatText, "Output format: text, markdown, json or yaml")
	patternCmd.Flags().Bool("save", false, "Save the pattern to the library")
}
