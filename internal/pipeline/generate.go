/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package pipeline

import (
	"context"
	"fmt"

	"github.com/fulmenhq/pagesmith/pkg/catalog"
	"github.com/fulmenhq/pagesmith/pkg/configcheck"
	"github.com/fulmenhq/pagesmith/pkg/logger"
	"github.com/fulmenhq/pagesmith/pkg/markup"
	"github.com/fulmenhq/pagesmith/pkg/pageconfig"
	"github.com/fulmenhq/pagesmith/pkg/safeio"
	"github.com/fulmenhq/pagesmith/pkg/slots"
)

// ValidateReport is the outcome of a validate-only run.
type ValidateReport struct {
	ConfigPath   string              `json:"config_path"`
	TemplateID   string              `json:"template_id,omitempty"`
	TemplateName string              `json:"template_name,omitempty"`
	Validation   configcheck.Outcome `json:"validation"`
}

// GenerateReport is the outcome of a forward run.
type GenerateReport struct {
	ValidateReport
	InputPath         string              `json:"input_path"`
	OutputPath        string              `json:"output_path"`
	Written           bool                `json:"written"`
	SlotMap           map[string][]string `json:"slot_map,omitempty"`
	Stats             slots.Stats         `json:"stats"`
	StructureWarnings []string            `json:"structure_warnings"`
	OutputBytes       int                 `json:"output_bytes"`
}

// Success reports whether the run wrote its output.
func (r *GenerateReport) Success() bool {
	return r.Written && r.Validation.OK()
}

// Validate loads and validates a config without touching any markup.
func Validate(ctx context.Context, configPath string) (*ValidateReport, error) {
	_, report, err := loadAndValidate(ctx, configPath)
	return report, err
}

func loadAndValidate(ctx context.Context, configPath string) (*pageconfig.Config, *ValidateReport, error) {
	if err := checkpoint(ctx); err != nil {
		return nil, nil, err
	}
	cfg, err := pageconfig.Load(configPath)
	if err != nil {
		return nil, nil, inputErr(err)
	}

	report := &ValidateReport{ConfigPath: configPath}
	report.TemplateID = cfg.String("template_id")
	if catalog.IsValid(report.TemplateID) {
		report.TemplateName = catalog.StyleName(report.TemplateID)
	}
	report.Validation = configcheck.Validate(cfg)
	logger.Debug("config validated",
		logger.String("config", configPath),
		logger.Int("errors", len(report.Validation.Errors)),
		logger.Int("warnings", len(report.Validation.Warnings)))

	if !report.Validation.OK() {
		return cfg, report, fmt.Errorf("%w: %d error(s) in %s", ErrValidation, len(report.Validation.Errors), configPath)
	}
	return cfg, report, nil
}

// Generate runs the forward pipeline: validate the config, fill the slot
// placeholders of the input markup and write the result. Nothing is written
// unless validation passes and the input is readable.
func Generate(ctx context.Context, configPath, inputPath, outputPath string, opts Options) (*GenerateReport, error) {
	cfg, vr, err := loadAndValidate(ctx, configPath)
	if vr == nil {
		return nil, err
	}
	report := &GenerateReport{ValidateReport: *vr, InputPath: inputPath, OutputPath: outputPath, StructureWarnings: []string{}}
	if err != nil {
		return report, err
	}

	if err := checkpoint(ctx); err != nil {
		return report, err
	}
	raw, err := safeio.ReadInput(inputPath)
	if err != nil {
		return report, inputErr(err)
	}

	slotMap := slots.BuildSlotMap(cfg)
	traceSlots("config", slotMap)
	report.SlotMap = slotMap.ToMap()

	out, stats := slots.Inject(string(raw), slotMap, opts.slotOptions()...)
	report.Stats = stats
	logger.Info("images injected",
		logger.Int("injected", stats.Injected),
		logger.Int("empty_slots", stats.EmptySlots),
		logger.Int("unmarked", stats.Unmarked))

	if opts.CheckStructure {
		if w := markup.CheckStructure(out); w != nil {
			report.StructureWarnings = w
		}
		for _, w := range report.StructureWarnings {
			logger.Debug("structure check", logger.String("warning", w))
		}
	}

	if err := checkpoint(ctx); err != nil {
		return report, err
	}
	if err := safeio.WriteOutput(outputPath, []byte(out)); err != nil {
		return report, outputErr(err)
	}
	report.Written = true
	report.OutputBytes = len(out)
	logger.Info("page written", logger.String("output", outputPath), logger.Int("bytes", len(out)))
	return report, nil
}
