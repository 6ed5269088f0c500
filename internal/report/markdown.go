/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package report

import (
	"fmt"
	"sync"

	"github.com/aymerick/raymond"
	"github.com/fulmenhq/pagesmith/internal/assets"
	"github.com/fulmenhq/pagesmith/internal/pipeline"
	"github.com/fulmenhq/pagesmith/pkg/configcheck"
)

var helpersOnce sync.Once

// registerHelpers installs the template helpers. raymond keeps helpers in a
// process-wide table and panics on duplicates.
func registerHelpers() {
	helpersOnce.Do(func() {
		raymond.RegisterHelper("yesno", yesNo)
	})
}

func (r *Renderer) writeMarkdown(kind string, data map[string]any) error {
	tpl, err := assets.GetReportTemplate(kind)
	if err != nil {
		return err
	}
	registerHelpers()
	out, err := raymond.Render(tpl, data)
	if err != nil {
		return fmt.Errorf("render %s report: %w", kind, err)
	}
	_, err = fmt.Fprint(r.w, out)
	return err
}

func findings(list []configcheck.Finding) []map[string]any {
	out := make([]map[string]any, 0, len(list))
	for _, f := range list {
		out = append(out, map[string]any{"field": f.Field, "message": f.Message})
	}
	return out
}

func validateData(rep *pipeline.ValidateReport) map[string]any {
	return map[string]any{
		"configPath":   rep.ConfigPath,
		"templateId":   rep.TemplateID,
		"templateName": rep.TemplateName,
		"errors":       findings(rep.Validation.Errors),
		"errorCount":   len(rep.Validation.Errors),
		"warnings":     findings(rep.Validation.Warnings),
		"warningCount": len(rep.Validation.Warnings),
	}
}

func generateData(rep *pipeline.GenerateReport) map[string]any {
	data := validateData(&rep.ValidateReport)
	data["ran"] = rep.Written
	data["injected"] = rep.Stats.Injected
	data["emptySlots"] = rep.Stats.EmptySlots
	data["unmarked"] = rep.Stats.Unmarked
	data["htmlWarnings"] = rep.StructureWarnings
	data["success"] = rep.Success()
	data["outputPath"] = rep.OutputPath
	data["sizeKB"] = sizeKB(rep.OutputBytes)
	return data
}

func parseData(rep *pipeline.ParseReport) map[string]any {
	return map[string]any{
		"styleName":        rep.StyleName,
		"templateId":       rep.Classification.TemplateID,
		"confidence":       fmt.Sprintf("%.1f", rep.Classification.Confidence),
		"productName":      rep.Product.Name,
		"tagline":          rep.Product.Tagline,
		"featureCount":     rep.FeatureCount,
		"testimonialCount": rep.TestimonialCount,
		"statCount":        rep.StatCount,
		"imageCount":       rep.ImageCount,
		"hasTheme":         rep.HasTheme,
		"hasFAQ":           rep.HasFAQ,
		"hasCTA":           rep.HasCTA,
		"outputPath":       rep.OutputPath,
	}
}

func classifyData(rep *pipeline.ClassifyReport) map[string]any {
	rows := make([]map[string]any, 0, len(rep.Files))
	for _, f := range rep.Files {
		rows = append(rows, map[string]any{
			"file":       f.File,
			"templateId": f.Result.TemplateID,
			"styleName":  f.StyleName,
			"score":      fmt.Sprintf("%.1f", f.Result.Score),
			"confidence": fmt.Sprintf("%.1f", f.Result.Confidence),
		})
	}
	return map[string]any{"rows": rows}
}

func templatesData(entries []templateEntry) map[string]any {
	rows := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, map[string]any{"id": e.ID, "style": e.Style, "recommended": recommendedList(e.Recommended)})
	}
	return map[string]any{"templates": rows}
}

func sizeKB(n int) string {
	return fmt.Sprintf("%.1f", float64(n)/1024)
}
