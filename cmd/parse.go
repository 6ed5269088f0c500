/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"github.com/fulmenhq/pagesmith/internal/pipeline"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <input.html> <output-config>",
	Short: "Reconstruct a page config from an existing page",
	Long: `Parse classifies an existing landing page, extracts its content and writes
a page config. The output format follows the extension (.json, .yaml, .yml or
.toml). Every image found is listed under _parsed_images for review; the
validator ignores that block when the config is fed back in.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, out, err := prepareRun(cmd)
		if err != nil {
			return err
		}
		rep, err := pipeline.Parse(cmd.Context(), args[0], args[1], opts)
		return emit(out.Parse, rep, err)
	},
}
