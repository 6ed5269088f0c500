/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package pipeline

import (
	"context"
	"fmt"

	"github.com/fulmenhq/pagesmith/pkg/catalog"
	"github.com/fulmenhq/pagesmith/pkg/extract"
	"github.com/fulmenhq/pagesmith/pkg/logger"
	"github.com/fulmenhq/pagesmith/pkg/markup"
	"github.com/fulmenhq/pagesmith/pkg/pageconfig"
	"github.com/fulmenhq/pagesmith/pkg/safeio"
	"github.com/fulmenhq/pagesmith/pkg/signature"
	"github.com/fulmenhq/pagesmith/pkg/slots"
)

// ReconstructedConfig is the page config written by the reverse pipeline.
// Field order follows the forward config so diffs against a hand-written one
// stay readable.
type ReconstructedConfig struct {
	TemplateID string             `json:"template_id" yaml:"template_id" toml:"template_id"`
	Product    extract.Product    `json:"product" yaml:"product" toml:"product"`
	Features   []extract.Feature  `json:"features" yaml:"features" toml:"features"`
	MockData   *MockData          `json:"mock_data,omitempty" yaml:"mock_data,omitempty" toml:"mock_data,omitempty"`
	Theme      *extract.Theme     `json:"theme,omitempty" yaml:"theme,omitempty" toml:"theme,omitempty"`
	FAQ        []extract.FAQEntry `json:"faq,omitempty" yaml:"faq,omitempty" toml:"faq,omitempty"`
	CTA        *extract.CTA       `json:"cta,omitempty" yaml:"cta,omitempty" toml:"cta,omitempty"`

	// ParsedImages lists every image found, for review. Validators skip it.
	ParsedImages []slots.ImageRecord `json:"_parsed_images,omitempty" yaml:"_parsed_images,omitempty" toml:"_parsed_images,omitempty"`
}

// MockData groups the social-proof collections.
type MockData struct {
	Testimonials []extract.Testimonial `json:"testimonials,omitempty" yaml:"testimonials,omitempty" toml:"testimonials,omitempty"`
	Stats        []extract.Stat        `json:"stats,omitempty" yaml:"stats,omitempty" toml:"stats,omitempty"`
}

// ParseReport summarises a reverse run.
type ParseReport struct {
	InputPath        string           `json:"input_path"`
	OutputPath       string           `json:"output_path"`
	Classification   signature.Result `json:"classification"`
	StyleName        string           `json:"style_name,omitempty"`
	Product          extract.Product  `json:"product"`
	FeatureCount     int              `json:"feature_count"`
	TestimonialCount int              `json:"testimonial_count"`
	StatCount        int              `json:"stat_count"`
	ImageCount       int              `json:"image_count"`
	HasTheme         bool             `json:"has_theme"`
	HasFAQ           bool             `json:"has_faq"`
	HasCTA           bool             `json:"has_cta"`

	Config *ReconstructedConfig `json:"-"`
}

// Reconstruct builds a config from extracted content and a classification.
func Reconstruct(templateID string, content extract.Content) *ReconstructedConfig {
	cfg := &ReconstructedConfig{
		TemplateID:   templateID,
		Product:      content.Product,
		Features:     content.Features,
		FAQ:          content.FAQ,
		ParsedImages: slots.Records(content.Images),
	}
	if cfg.Features == nil {
		cfg.Features = []extract.Feature{}
	}
	if len(content.Testimonials) > 0 || len(content.Stats) > 0 {
		cfg.MockData = &MockData{Testimonials: content.Testimonials, Stats: content.Stats}
	}
	if !content.Theme.IsZero() {
		theme := content.Theme
		cfg.Theme = &theme
	}
	if !content.CTA.IsZero() {
		cta := content.CTA
		cfg.CTA = &cta
	}
	return cfg
}

// Parse runs the reverse pipeline: classify the input markup, extract its
// content and write a config in the format named by outputPath's extension.
func Parse(ctx context.Context, inputPath, outputPath string, opts Options) (*ParseReport, error) {
	if _, err := pageconfig.FormatFromPath(outputPath); err != nil {
		return nil, inputErr(err)
	}
	if err := checkpoint(ctx); err != nil {
		return nil, err
	}

	raw, err := safeio.ReadInput(inputPath)
	if err != nil {
		return nil, inputErr(err)
	}
	doc, err := markup.Parse(string(raw))
	if err != nil {
		return nil, inputErr(fmt.Errorf("parse %s: %w", inputPath, err))
	}

	manifest, err := signature.LoadManifest(opts.SignaturesFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSettings, err)
	}
	result := signature.NewClassifier(manifest).Classify(doc)
	logger.Info("template classified",
		logger.String("template", result.TemplateID),
		logger.Float("score", result.Score),
		logger.Float("confidence", result.Confidence))

	if err := checkpoint(ctx); err != nil {
		return nil, err
	}
	content := extract.All(doc, opts.slotOptions()...)
	traceSlots("extracted", slots.Group(content.Images))

	cfg := Reconstruct(result.TemplateID, content)
	report := &ParseReport{
		InputPath:        inputPath,
		OutputPath:       outputPath,
		Classification:   result,
		StyleName:        catalog.StyleName(result.TemplateID),
		Product:          content.Product,
		FeatureCount:     len(content.Features),
		TestimonialCount: len(content.Testimonials),
		StatCount:        len(content.Stats),
		ImageCount:       len(content.Images),
		HasTheme:         cfg.Theme != nil,
		HasFAQ:           len(content.FAQ) > 0,
		HasCTA:           cfg.CTA != nil,
		Config:           cfg,
	}

	if err := checkpoint(ctx); err != nil {
		return report, err
	}
	if err := pageconfig.Save(outputPath, cfg); err != nil {
		return report, outputErr(err)
	}
	logger.Info("config written",
		logger.String("output", outputPath),
		logger.Int("features", report.FeatureCount),
		logger.Int("images", report.ImageCount))
	return report, nil
}
