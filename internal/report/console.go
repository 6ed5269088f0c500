/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package report

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fulmenhq/pagesmith/internal/pipeline"
	"github.com/fulmenhq/pagesmith/pkg/ascii"
	"github.com/fulmenhq/pagesmith/pkg/configcheck"
	"github.com/muesli/termenv"
)

type styles struct {
	heading lipgloss.Style
	ok      lipgloss.Style
	warn    lipgloss.Style
	fail    lipgloss.Style
	dim     lipgloss.Style
}

func newStyles(w io.Writer, color bool) styles {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}
	return styles{
		heading: r.NewStyle().Bold(true),
		ok:      r.NewStyle().Foreground(lipgloss.Color("2")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("3")),
		fail:    r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		dim:     r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// summary boxes aligned key/value rows.
func summary(rows [][]string) string {
	table := strings.TrimSuffix(ascii.Table(rows), "\n")
	return ascii.Box(strings.Split(table, "\n"))
}

func (r *Renderer) println(s string) {
	_, _ = fmt.Fprintln(r.w, s)
}

func (r *Renderer) findings(rep configcheck.Outcome) {
	if rep.OK() {
		line := "Config validation: passed"
		if n := len(rep.Warnings); n > 0 {
			line += fmt.Sprintf(" (%d suggestion(s))", n)
		}
		r.println(r.styles.ok.Render(line))
	} else {
		r.println(r.styles.fail.Render(fmt.Sprintf("Config validation: failed with %d error(s)", len(rep.Errors))))
	}
	for _, f := range rep.Errors {
		r.println("  " + r.styles.fail.Render("✗") + " " + f.String())
	}
	for _, f := range rep.Warnings {
		r.println("  " + r.styles.warn.Render("⚠") + " " + f.String())
	}
}

func (r *Renderer) consoleValidate(rep *pipeline.ValidateReport) error {
	rows := [][]string{{"Config", rep.ConfigPath}}
	if rep.TemplateName != "" {
		rows = append(rows, []string{"Template", rep.TemplateID + " (" + rep.TemplateName + ")"})
	}
	_, _ = fmt.Fprint(r.w, summary(rows))
	r.findings(rep.Validation)
	return nil
}

func (r *Renderer) consoleGenerate(rep *pipeline.GenerateReport) error {
	if err := r.consoleValidate(&rep.ValidateReport); err != nil {
		return err
	}
	if !rep.Written {
		return nil
	}

	r.println("")
	r.println(r.styles.heading.Render("Image injection"))
	r.println(fmt.Sprintf("  injected %d, empty slots %d, unmarked %d",
		rep.Stats.Injected, rep.Stats.EmptySlots, rep.Stats.Unmarked))
	for _, slot := range slices.Sorted(maps.Keys(rep.SlotMap)) {
		r.println(r.styles.dim.Render(fmt.Sprintf("  %s: %d url(s)", slot, len(rep.SlotMap[slot]))))
	}

	r.println("")
	r.println(r.styles.heading.Render("Markup structure"))
	if len(rep.StructureWarnings) == 0 {
		r.println("  no structural issues found")
	}
	for _, w := range rep.StructureWarnings {
		r.println("  " + r.styles.warn.Render("⚠") + " " + w)
	}

	r.println("")
	r.println(r.styles.ok.Render(fmt.Sprintf("Wrote %s (%s KB)", rep.OutputPath, sizeKB(rep.OutputBytes))))
	return nil
}

func (r *Renderer) consoleParse(rep *pipeline.ParseReport) error {
	_, _ = fmt.Fprint(r.w, summary([][]string{
		{"Style", fmt.Sprintf("%s (%s)", rep.StyleName, rep.Classification.TemplateID)},
		{"Confidence", fmt.Sprintf("%.1f", rep.Classification.Confidence)},
		{"Product", ascii.TruncateForBox(rep.Product.Name, 60)},
		{"Tagline", ascii.TruncateForBox(rep.Product.Tagline, 60)},
	}))
	r.println(fmt.Sprintf("  features %d, testimonials %d, stats %d, images %d",
		rep.FeatureCount, rep.TestimonialCount, rep.StatCount, rep.ImageCount))
	r.println(fmt.Sprintf("  theme %s, faq %s, cta %s", yesNo(rep.HasTheme), yesNo(rep.HasFAQ), yesNo(rep.HasCTA)))
	r.println(r.styles.ok.Render("Config written to " + rep.OutputPath))
	return nil
}

func (r *Renderer) consoleClassify(rep *pipeline.ClassifyReport) error {
	rows := [][]string{{"FILE", "TEMPLATE", "SCORE", "CONFIDENCE", "STYLE"}}
	for _, f := range rep.Files {
		rows = append(rows, []string{
			f.File,
			f.Result.TemplateID,
			fmt.Sprintf("%.1f", f.Result.Score),
			fmt.Sprintf("%.1f", f.Result.Confidence),
			f.StyleName,
		})
	}
	_, _ = fmt.Fprint(r.w, ascii.Table(rows))
	return nil
}

func (r *Renderer) consoleTemplates(entries []templateEntry) error {
	rows := [][]string{{"ID", "STYLE", "RECOMMENDED"}}
	for _, e := range entries {
		rows = append(rows, []string{e.ID, e.Style, recommendedList(e.Recommended)})
	}
	_, _ = fmt.Fprint(r.w, ascii.Table(rows))
	return nil
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
