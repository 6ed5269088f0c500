/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/fulmenhq/pagesmith/pkg/ascii"
	"github.com/fulmenhq/pagesmith/pkg/buildinfo"
	"github.com/fulmenhq/pagesmith/pkg/config"
	"github.com/spf13/cobra"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the pagesmith version",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().Bool("extended", false, "Show detailed build information")
}

func runVersion(cmd *cobra.Command, _ []string) error {
	extended, _ := cmd.Flags().GetBool("extended")
	format, _ := cmd.Flags().GetString("format")
	out := cmd.OutOrStdout()
	info := buildinfo.Current()

	if format == config.FormatJSON {
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	if !extended {
		_, err := fmt.Fprintln(out, info.String())
		return err
	}
	rows := [][]string{
		{"Version", info.Version},
		{"Module", orUnknown(info.Module)},
		{"Commit", orUnknown(info.Commit)},
		{"Built", orUnknown(info.BuildDate)},
		{"Go", info.GoVersion},
		{"Platform", info.Platform},
	}
	_, err := fmt.Fprint(out, ascii.Table(rows))
	return err
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
