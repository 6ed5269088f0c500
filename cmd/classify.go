/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"github.com/fulmenhq/pagesmith/internal/pipeline"
	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <file|glob>...",
	Short: "Detect which template existing pages follow",
	Long: `Classify scores each page against the template signatures and reports the
best match, its score and the confidence gap to the runner-up. Arguments may
be doublestar globs such as "site/**/*.html"; quote them so the shell leaves
them alone. Glob matches listed in .gitignore or .pagesmithignore in the
working directory are skipped; files named explicitly are always classified.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, out, err := prepareRun(cmd)
		if err != nil {
			return err
		}
		opts.IgnoreRoot = "."
		rep, err := pipeline.Classify(cmd.Context(), args, opts)
		return emit(out.Classify, rep, err)
	},
}
