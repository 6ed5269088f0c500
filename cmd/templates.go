/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"github.com/fulmenhq/pagesmith/pkg/catalog"
	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the supported templates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, out, err := prepareRun(cmd)
		if err != nil {
			return err
		}
		return out.Templates(catalog.Templates())
	},
}
