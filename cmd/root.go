/*
Copyright © 2025 3 Leaps <info@3leaps.com>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/fulmenhq/pagesmith/internal/ops"
	"github.com/fulmenhq/pagesmith/internal/pipeline"
	"github.com/fulmenhq/pagesmith/internal/report"
	"github.com/fulmenhq/pagesmith/pkg/buildinfo"
	"github.com/fulmenhq/pagesmith/pkg/config"
	"github.com/fulmenhq/pagesmith/pkg/exitcode"
	"github.com/fulmenhq/pagesmith/pkg/logger"
	"github.com/fulmenhq/pagesmith/pkg/pageconfig"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// newRootCommand creates a fresh root command instance.
// This factory pattern allows tests to create isolated command trees without shared state.
func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pagesmith",
		Short: "Landing page generator and reverse parser",
		Long: `Pagesmith fills the image slots of a landing page template from a page config,
and reconstructs a page config from an existing landing page.

Examples:
   pagesmith validate page.yaml                       # Check a config without touching markup
   pagesmith generate page.yaml in.html out.html      # Fill image slots and write the page
   pagesmith parse landing.html page.json             # Reconstruct a config from a page
   pagesmith classify "site/**/*.html"                # Detect the template of existing pages`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadDotEnv(); err != nil {
				return err
			}
			initializeLogger(cmd)
			return nil
		},
	}

	// Add global flags
	cmd.PersistentFlags().String("log-level", "info", "Set log level (trace|debug|info|warn|error)")
	cmd.PersistentFlags().Bool("json", false, "Output logs in JSON format")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	cmd.PersistentFlags().String("format", "", "Report format (console|json|markdown); defaults to report.format")
	cmd.PersistentFlags().String("config", "", "Settings file (default: pagesmith.yaml in ., $HOME or $PAGESMITH_HOME/config)")

	cmd.Version = buildinfo.BinaryVersion
	cmd.SetVersionTemplate("pagesmith {{.Version}}\n")

	// Grouped help by command group (Pipeline → Inspection → Support)
	defaultHelp := cmd.HelpFunc()
	cmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd.HasParent() {
			defaultHelp(cmd, args)
			return
		}
		reg := ops.GetRegistry()
		cmd.Println(cmd.Long)
		for _, group := range ops.Groups() {
			cmd.Println()
			cmd.Println(group.Title() + ":")
			for _, c := range reg.GetCommandsByGroup(group) {
				cmd.Printf("  %-12s %s\n", c.Name, c.Description)
			}
		}
		cmd.Println()
		cmd.Println("Flags:")
		cmd.Print(cmd.UsageString())
	})

	return cmd
}

// registerSubcommands adds all subcommands to the root command and records
// them in the command registry used by the grouped help.
func registerSubcommands(cmd *cobra.Command) {
	subcommands := []struct {
		cmd   *cobra.Command
		group ops.CommandGroup
	}{
		{generateCmd, ops.GroupPipeline},
		{parseCmd, ops.GroupPipeline},
		{validateCmd, ops.GroupInspect},
		{classifyCmd, ops.GroupInspect},
		{templatesCmd, ops.GroupSupport},
		{versionCmd, ops.GroupSupport},
	}
	for _, s := range subcommands {
		cmd.AddCommand(s.cmd)
		if err := ops.RegisterCommand(s.cmd.Name(), s.group, s.cmd, s.cmd.Short); err != nil {
			panic(fmt.Sprintf("failed to register %s command: %v", s.cmd.Name(), err))
		}
	}
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCommand()

// Execute runs the root command and exits with the code matching the
// returned error. This is called by main.main().
func Execute() {
	err := rootCmd.ExecuteContext(context.Background())
	if err == nil {
		return
	}
	code := exitCodeFor(err)
	logger.Error("Command execution failed", logger.Err(err), logger.String("exit", exitcode.String(code)))
	os.Exit(code)
}

func init() {
	registerSubcommands(rootCmd)
}

// exitCodeFor maps a command error onto the process exit code.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return exitcode.Success
	case errors.Is(err, pipeline.ErrValidation):
		return exitcode.ValidationError
	case errors.Is(err, pageconfig.ErrUnsupportedFormat), errors.Is(err, pageconfig.ErrMalformed):
		return exitcode.UnsupportedFormat
	case errors.Is(err, pipeline.ErrSettings):
		return exitcode.ConfigError
	case errors.Is(err, pipeline.ErrInput), errors.Is(err, pipeline.ErrOutput), errors.Is(err, fs.ErrNotExist):
		return exitcode.FileSystemError
	default:
		return exitcode.GeneralError
	}
}

// loadDotEnv reads a .env file from the working directory when present.
// Variables already set in the environment win.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: load .env: %w", pipeline.ErrSettings, err)
	}
	return nil
}

// initializeLogger sets up the logger based on command flags
func initializeLogger(cmd *cobra.Command) {
	logLevelStr, _ := cmd.Flags().GetString("log-level")
	jsonLogs, _ := cmd.Flags().GetBool("json")
	noColor, _ := cmd.Flags().GetBool("no-color")

	logLevel, ok := logger.ParseLevel(logLevelStr)
	if !ok {
		logLevel = logger.InfoLevel
	}

	cfg := logger.Config{
		Level:     logLevel,
		UseColor:  !noColor,
		JSON:      jsonLogs,
		Component: "pagesmith",
	}

	if err := logger.Initialize(cfg); err != nil {
		_, _ = os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(exitcode.ConfigError)
	}
	if !ok {
		logger.Warn("unknown log level, using info", logger.String("level", logLevelStr))
	}
}

// loadSettings reads tool settings from --config or the search path.
func loadSettings(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	var (
		settings *config.Config
		err      error
	)
	if path != "" {
		settings, err = config.LoadConfigFile(path)
	} else {
		settings, err = config.LoadConfig()
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", pipeline.ErrSettings, err)
	}
	return settings, nil
}

// prepareRun resolves settings into pipeline options and a report renderer
// writing to the command's output.
func prepareRun(cmd *cobra.Command) (pipeline.Options, *report.Renderer, error) {
	settings, err := loadSettings(cmd)
	if err != nil {
		return pipeline.Options{}, nil, err
	}

	format := settings.Report.Format
	if f, _ := cmd.Flags().GetString("format"); f != "" {
		format = f
	}
	noColor, _ := cmd.Flags().GetBool("no-color")
	renderer, err := report.New(cmd.OutOrStdout(), format, !noColor && os.Getenv("NO_COLOR") == "")
	if err != nil {
		return pipeline.Options{}, nil, fmt.Errorf("%w: %w", pipeline.ErrSettings, err)
	}

	opts := pipeline.Options{
		SlotAttribute:  settings.Slots.Attribute,
		CheckStructure: settings.Structure.Enabled,
		SignaturesFile: settings.Classifier.SignaturesFile,
	}
	logger.Debug("settings resolved",
		logger.String("format", renderer.Format()),
		logger.String("slot_attribute", opts.SlotAttribute),
		logger.Bool("structure_checks", opts.CheckStructure))
	return opts, renderer, nil
}

// emit renders rep when the run produced one and returns the run error.
func emit[T any](render func(*T) error, rep *T, runErr error) error {
	if rep != nil {
		if err := render(rep); err != nil && runErr == nil {
			return err
		}
	}
	return runErr
}
