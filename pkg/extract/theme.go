package extract

import (
	"regexp"
	"strings"

	"github.com/fulmenhq/pagesmith/pkg/markup"
)

// Theme holds the color roles a page config understands.
type Theme struct {
	PrimaryColor    string `json:"primary_color,omitempty" yaml:"primary_color,omitempty" toml:"primary_color,omitempty"`
	SecondaryColor  string `json:"secondary_color,omitempty" yaml:"secondary_color,omitempty" toml:"secondary_color,omitempty"`
	BackgroundColor string `json:"background_color,omitempty" yaml:"background_color,omitempty" toml:"background_color,omitempty"`
	TextColor       string `json:"text_color,omitempty" yaml:"text_color,omitempty" toml:"text_color,omitempty"`
}

func (t Theme) IsZero() bool { return t == Theme{} }

var (
	primaryVarRe   = regexp.MustCompile(`--(?:primary|accent|main)[-_]?color\s*:\s*(#[0-9a-fA-F]{3,8})`)
	secondaryVarRe = regexp.MustCompile(`--(?:secondary|accent2)[-_]?color\s*:\s*(#[0-9a-fA-F]{3,8})`)
	styleHexRe     = regexp.MustCompile(`#[0-9a-fA-F]{6}`)
	bodyBgRe       = regexp.MustCompile(`background[-_]?color\s*:\s*(#[0-9a-fA-F]{3,8})`)
)

// neutrals are skipped when guessing brand colors from stylesheets.
var neutrals = map[string]bool{
	"#ffffff": true, "#000000": true, "#333333": true, "#666666": true, "#999999": true,
	"#f5f5f5": true, "#fafafa": true, "#eeeeee": true, "#e5e5e5": true, "#cccccc": true,
}

// FindTheme reads color roles from CSS custom properties. Without any, the
// first two non-neutral hex colors of the <style> blocks are used. The body's
// inline background color fills the background role.
func FindTheme(doc *markup.Document) Theme {
	var t Theme
	if m := primaryVarRe.FindStringSubmatch(doc.Raw()); m != nil {
		t.PrimaryColor = m[1]
	}
	if m := secondaryVarRe.FindStringSubmatch(doc.Raw()); m != nil {
		t.SecondaryColor = m[1]
	}

	if t.IsZero() {
		var palette []string
		seen := map[string]bool{}
		for _, style := range markup.FindAll(doc.Root(), markup.Tag("style")) {
			for _, c := range styleHexRe.FindAllString(markup.RawText(style), -1) {
				c = strings.ToLower(c)
				if neutrals[c] || seen[c] {
					continue
				}
				seen[c] = true
				palette = append(palette, c)
			}
		}
		if len(palette) > 0 {
			t.PrimaryColor = palette[0]
		}
		if len(palette) > 1 {
			t.SecondaryColor = palette[1]
		}
	}

	if body := markup.Find(doc.Root(), markup.Tag("body")); body != nil {
		if m := bodyBgRe.FindStringSubmatch(markup.AttrOr(body, "style", "")); m != nil {
			t.BackgroundColor = m[1]
		}
	}
	return t
}
