// Package configcheck validates a page config before anything is written.
//
// Validate runs every rule; none short-circuits. Errors block the forward
// pipeline, warnings are advisory only.
package configcheck

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/fulmenhq/pagesmith/pkg/catalog"
	"github.com/fulmenhq/pagesmith/pkg/pageconfig"
	"github.com/sahilm/fuzzy"
	"golang.org/x/text/unicode/norm"
)

// Severity classifies a finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is a single validation result.
type Finding struct {
	Field    string   `json:"field"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

func (f Finding) String() string {
	if f.Field == "" {
		return f.Message
	}
	return f.Field + ": " + f.Message
}

// Outcome keeps errors and warnings apart, each in rule order.
type Outcome struct {
	Errors   []Finding `json:"errors"`
	Warnings []Finding `json:"warnings"`
}

// OK reports whether the config may proceed to a write.
func (o Outcome) OK() bool {
	return len(o.Errors) == 0
}

func (o *Outcome) errorf(field, format string, args ...any) {
	o.Errors = append(o.Errors, Finding{Field: field, Message: fmt.Sprintf(format, args...), Severity: SeverityError})
}

func (o *Outcome) warnf(field, format string, args ...any) {
	o.Warnings = append(o.Warnings, Finding{Field: field, Message: fmt.Sprintf(format, args...), Severity: SeverityWarning})
}

type rule func(cfg *pageconfig.Config, out *Outcome)

var rules = []rule{
	checkTemplateID,
	checkRequiredProduct,
	checkProductLengths,
	checkFeatures,
	checkTheme,
	checkProductImage,
	checkRecommended,
}

// Validate applies every rule to cfg. Metadata keys are never inspected.
func Validate(cfg *pageconfig.Config) Outcome {
	out := Outcome{Errors: []Finding{}, Warnings: []Finding{}}
	if cfg == nil {
		cfg = pageconfig.New(nil)
	}
	for _, r := range rules {
		r(cfg, &out)
	}
	return out
}

func checkTemplateID(cfg *pageconfig.Config, out *Outcome) {
	raw, ok := cfg.Lookup("template_id")
	if !ok || raw == nil {
		out.errorf("template_id", "missing required field")
		return
	}
	id, isString := raw.(string)
	if !isString {
		out.errorf("template_id", "invalid value %v (expected a string from template-01 to template-15)", raw)
		return
	}
	if blank(id) {
		out.errorf("template_id", "missing required field")
		return
	}
	if catalog.IsValid(id) {
		return
	}
	msg := fmt.Sprintf("invalid value %q (valid range: template-01 to template-15)", id)
	if s := suggestTemplate(id); s != "" {
		msg += fmt.Sprintf("; did you mean %q?", s)
	}
	out.errorf("template_id", "%s", msg)
}

func suggestTemplate(id string) string {
	normalized := strings.ToLower(strings.TrimSpace(id))
	if catalog.IsValid(normalized) {
		return normalized
	}
	if normalized == "" {
		return ""
	}
	matches := fuzzy.Find(normalized, catalog.IDs())
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}

func checkRequiredProduct(cfg *pageconfig.Config, out *Outcome) {
	for _, path := range []string{"product.name", "product.tagline"} {
		if blank(cfg.String(path)) {
			out.errorf(path, "missing required field")
		}
	}
}

// blank reports whether a text field holds nothing but whitespace. Blank
// required fields count as missing; blank optional fields as absent.
func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func checkProductLengths(cfg *pageconfig.Config, out *Outcome) {
	checks := []struct {
		path string
		rule catalog.LengthRule
	}{
		{"product.name", catalog.ProductNameLength},
		{"product.tagline", catalog.ProductTaglineLength},
		{"product.description", catalog.ProductDescriptionLength},
	}
	for _, c := range checks {
		value := cfg.String(c.path)
		if blank(value) {
			continue
		}
		n := textLength(value)
		switch {
		case n < c.rule.Min:
			out.warnf(c.path, "too short (%d characters, recommended at least %d)", n, c.rule.Min)
		case n > c.rule.Max:
			out.warnf(c.path, "too long (%d characters, recommended at most %d)", n, c.rule.Max)
		}
	}
}

func checkFeatures(cfg *pageconfig.Config, out *Outcome) {
	features := cfg.List("features")
	if len(features) == 0 {
		out.warnf("features", "not provided (most templates recommend %d to %d features)",
			catalog.RecommendedFeatureCount.Min, catalog.RecommendedFeatureCount.Max)
		return
	}
	for i, entry := range features {
		title := pageconfig.Field(entry, "title")
		if blank(title) {
			out.errorf(fmt.Sprintf("features[%d]", i), "missing title")
		} else if n := textLength(title); !catalog.FeatureTitleLength.Contains(n) {
			out.warnf(fmt.Sprintf("features[%d].title", i), "length %d outside recommended range (%s)", n, catalog.FeatureTitleLength)
		}
		desc := pageconfig.Field(entry, "description")
		if blank(desc) {
			continue
		}
		if n := textLength(desc); !catalog.FeatureDescriptionLength.Contains(n) {
			out.warnf(fmt.Sprintf("features[%d].description", i), "length %d outside recommended range (%s)", n, catalog.FeatureDescriptionLength)
		}
	}
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func checkTheme(cfg *pageconfig.Config, out *Outcome) {
	for _, role := range catalog.ColorRoles {
		path := "theme." + role
		value := cfg.String(path)
		if value == "" || hexColor.MatchString(value) {
			continue
		}
		out.warnf(path, "non-standard color %q (use #RRGGBB)", value)
	}
}

func checkProductImage(cfg *pageconfig.Config, out *Outcome) {
	image := cfg.String("product.image")
	if image == "" {
		return
	}
	if strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://") {
		return
	}
	out.warnf("product.image", "not an absolute http(s) URL: %s", image)
}

func checkRecommended(cfg *pageconfig.Config, out *Outcome) {
	id := cfg.String("template_id")
	if !catalog.IsValid(id) {
		return
	}
	style := catalog.StyleName(id)
	for _, path := range catalog.RecommendedFields(id) {
		if !cfg.Has(path) {
			out.warnf(path, "the %q style recommends providing this field", style)
		}
	}
}

// textLength counts user-perceived characters of NFC-normalized text.
func textLength(s string) int {
	return utf8.RuneCountInString(norm.NFC.String(s))
}
