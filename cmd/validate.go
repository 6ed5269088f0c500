/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"github.com/fulmenhq/pagesmith/internal/pipeline"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <config>",
	Short: "Check a page config for errors and suggestions",
	Long: `Validate loads a page config (JSON, YAML or TOML) and reports errors and
suggestions. The command fails only when there are errors.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, out, err := prepareRun(cmd)
		if err != nil {
			return err
		}
		rep, err := pipeline.Validate(cmd.Context(), args[0])
		return emit(out.Validate, rep, err)
	},
}
