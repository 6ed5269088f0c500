/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"fmt"

	"github.com/fulmenhq/pagesmith/internal/pipeline"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate <config> [<input.html> <output.html>]",
	Short: "Validate a config and fill the image slots of a page",
	Long: `Generate validates a page config and, when it has no errors, fills every
image placeholder of the input page from the config's slot map and writes the
result. Nothing is written when validation fails.

With --validate-only only the config is needed and no markup is touched.`,
	Args: func(cmd *cobra.Command, args []string) error {
		validateOnly, _ := cmd.Flags().GetBool("validate-only")
		if validateOnly {
			return cobra.ExactArgs(1)(cmd, args)
		}
		if len(args) != 3 {
			return fmt.Errorf("generate needs <config> <input.html> <output.html> (or --validate-only), got %d argument(s)", len(args))
		}
		return nil
	},
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().Bool("validate-only", false, "Only validate the config")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	opts, out, err := prepareRun(cmd)
	if err != nil {
		return err
	}

	if validateOnly, _ := cmd.Flags().GetBool("validate-only"); validateOnly {
		rep, err := pipeline.Validate(cmd.Context(), args[0])
		return emit(out.Validate, rep, err)
	}
	rep, err := pipeline.Generate(cmd.Context(), args[0], args[1], args[2], opts)
	return emit(out.Generate, rep, err)
}
