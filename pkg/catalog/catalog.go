// Package catalog holds the static lookup tables shared by the validator,
// the classifier and the reports: the fifteen landing page templates, their
// human-readable style names, the optional fields each template recommends,
// the theme color roles and the recommended text length ranges.
package catalog

import "fmt"

// Template describes one of the fixed visual layouts a page can follow.
type Template struct {
	ID          string
	Style       string
	Recommended []string
}

// LengthRule is an inclusive recommended length range, in characters.
type LengthRule struct {
	Min int
	Max int
}

// Contains reports whether n lies inside the range.
func (r LengthRule) Contains(n int) bool {
	return n >= r.Min && n <= r.Max
}

func (r LengthRule) String() string {
	return fmt.Sprintf("%d-%d", r.Min, r.Max)
}

var templates = []Template{
	{ID: "template-01", Style: "Classic Hero + Features"},
	{ID: "template-02", Style: "Product Showcase + CTA", Recommended: []string{"product.price", "product.image"}},
	{ID: "template-03", Style: "Storytelling", Recommended: []string{"story"}},
	{ID: "template-04", Style: "Split Layout + Video", Recommended: []string{"content_sections", "video_embed"}},
	{ID: "template-05", Style: "Dark Cyberpunk", Recommended: []string{"product.info"}},
	{ID: "template-06", Style: "Minimal Illustration", Recommended: []string{"zigzag_sections", "faq"}},
	{ID: "template-07", Style: "Colorful Layers", Recommended: []string{"hero.image_url"}},
	{ID: "template-08", Style: "Dark Immersive", Recommended: []string{"hero.image_url", "immersive_section"}},
	{ID: "template-09", Style: "Playful Connected", Recommended: []string{"connected_sections"}},
	{ID: "template-10", Style: "Dynamic Business", Recommended: []string{"structured_sections"}},
	{ID: "template-11", Style: "Bento Box", Recommended: []string{"input_placeholder"}},
	{ID: "template-12", Style: "Cinematic Hardware"},
	{ID: "template-13", Style: "Code Native", Recommended: []string{"code_snippets"}},
	{ID: "template-14", Style: "Iridescent Liquid Glass"},
	{ID: "template-15", Style: "Digital Atelier / Quiet Gallery", Recommended: []string{"gallery_images"}},
}

var index = func() map[string]int {
	m := make(map[string]int, len(templates))
	for i, t := range templates {
		m[t.ID] = i
	}
	return m
}()

// ColorRoles are the theme keys that must hold #RRGGBB values.
var ColorRoles = []string{"primary_color", "secondary_color", "background_color", "text_color"}

// Recommended length ranges keyed by field path. Feature rules apply to
// every entry of the features array.
var (
	ProductNameLength        = LengthRule{Min: 2, Max: 50}
	ProductTaglineLength     = LengthRule{Min: 10, Max: 100}
	ProductDescriptionLength = LengthRule{Min: 50, Max: 500}
	FeatureTitleLength       = LengthRule{Min: 2, Max: 30}
	FeatureDescriptionLength = LengthRule{Min: 10, Max: 200}
)

// RecommendedFeatureCount is the advisory range for the features array.
var RecommendedFeatureCount = LengthRule{Min: 3, Max: 6}

// Templates returns the catalogue in declaration order.
func Templates() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}

// IDs returns every valid template id in declaration order.
func IDs() []string {
	ids := make([]string, len(templates))
	for i, t := range templates {
		ids[i] = t.ID
	}
	return ids
}

// Lookup returns the template registered under id.
func Lookup(id string) (Template, bool) {
	i, ok := index[id]
	if !ok {
		return Template{}, false
	}
	return templates[i], true
}

// IsValid reports whether id is one of the fifteen template ids.
func IsValid(id string) bool {
	_, ok := index[id]
	return ok
}

// StyleName returns the human-readable style of id, or "unknown".
func StyleName(id string) string {
	if t, ok := Lookup(id); ok {
		return t.Style
	}
	return "unknown"
}

// RecommendedFields returns the optional field paths the template suggests.
func RecommendedFields(id string) []string {
	t, ok := Lookup(id)
	if !ok {
		return nil
	}
	return append([]string(nil), t.Recommended...)
}
