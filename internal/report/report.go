/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/

// Package report prints pipeline results as a console summary, JSON or
// Markdown.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fulmenhq/pagesmith/internal/pipeline"
	"github.com/fulmenhq/pagesmith/pkg/catalog"
	"github.com/fulmenhq/pagesmith/pkg/config"
)

// Renderer writes reports to a single writer in a fixed format.
type Renderer struct {
	w      io.Writer
	format string
	styles styles
}

// New returns a renderer for format (console, json or markdown). Color only
// affects console output.
func New(w io.Writer, format string, color bool) (*Renderer, error) {
	if format == "" {
		format = config.FormatConsole
	}
	if !config.ValidFormat(format) {
		return nil, fmt.Errorf("unsupported report format %q (use console, json or markdown)", format)
	}
	return &Renderer{w: w, format: format, styles: newStyles(w, color)}, nil
}

// Format returns the renderer's output format.
func (r *Renderer) Format() string { return r.format }

// Generate prints the outcome of a forward run.
func (r *Renderer) Generate(rep *pipeline.GenerateReport) error {
	switch r.format {
	case config.FormatJSON:
		return r.writeJSON(rep)
	case config.FormatMarkdown:
		return r.writeMarkdown("generate", generateData(rep))
	default:
		return r.consoleGenerate(rep)
	}
}

// Validate prints the outcome of a validate-only run.
func (r *Renderer) Validate(rep *pipeline.ValidateReport) error {
	switch r.format {
	case config.FormatJSON:
		return r.writeJSON(rep)
	case config.FormatMarkdown:
		return r.writeMarkdown("validate", validateData(rep))
	default:
		return r.consoleValidate(rep)
	}
}

// Parse prints the outcome of a reverse run.
func (r *Renderer) Parse(rep *pipeline.ParseReport) error {
	switch r.format {
	case config.FormatJSON:
		return r.writeJSON(rep)
	case config.FormatMarkdown:
		return r.writeMarkdown("parse", parseData(rep))
	default:
		return r.consoleParse(rep)
	}
}

// Classify prints one row per classified file.
func (r *Renderer) Classify(rep *pipeline.ClassifyReport) error {
	switch r.format {
	case config.FormatJSON:
		return r.writeJSON(rep)
	case config.FormatMarkdown:
		return r.writeMarkdown("classify", classifyData(rep))
	default:
		return r.consoleClassify(rep)
	}
}

// templateEntry is the serialised form of a catalogue entry.
type templateEntry struct {
	ID          string   `json:"id"`
	Style       string   `json:"style"`
	Recommended []string `json:"recommended"`
}

// Templates prints the template catalogue.
func (r *Renderer) Templates(list []catalog.Template) error {
	entries := make([]templateEntry, 0, len(list))
	for _, t := range list {
		rec := t.Recommended
		if rec == nil {
			rec = []string{}
		}
		entries = append(entries, templateEntry{ID: t.ID, Style: t.Style, Recommended: rec})
	}
	switch r.format {
	case config.FormatJSON:
		return r.writeJSON(entries)
	case config.FormatMarkdown:
		return r.writeMarkdown("templates", templatesData(entries))
	default:
		return r.consoleTemplates(entries)
	}
}

func (r *Renderer) writeJSON(v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	_, err := r.w.Write(buf.Bytes())
	return err
}

func recommendedList(fields []string) string {
	if len(fields) == 0 {
		return "-"
	}
	return strings.Join(fields, ", ")
}
