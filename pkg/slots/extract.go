package slots

import (
	"strings"

	"github.com/fulmenhq/pagesmith/pkg/markup"
	"golang.org/x/net/html"
)

// Image is one <img> element found in a document.
type Image struct {
	URL   string
	Alt   string
	Size  string
	Class string
	Slot  Ref
}

// ImageRecord is the flat form of an Image written to reconstructed configs.
type ImageRecord struct {
	URL      string `json:"url" yaml:"url" toml:"url"`
	Alt      string `json:"alt" yaml:"alt" toml:"alt"`
	Slot     string `json:"slot" yaml:"slot" toml:"slot"`
	Inferred bool   `json:"inferred" yaml:"inferred" toml:"inferred"`
	Size     string `json:"size,omitempty" yaml:"size,omitempty" toml:"size,omitempty"`
	Class    string `json:"class,omitempty" yaml:"class,omitempty" toml:"class,omitempty"`
}

// Record flattens img.
func (img Image) Record() ImageRecord {
	return ImageRecord{
		URL:      img.URL,
		Alt:      img.Alt,
		Slot:     img.Slot.Name(),
		Inferred: img.Slot.Kind() == Inferred,
		Size:     img.Size,
		Class:    img.Class,
	}
}

// Records flattens images in order.
func Records(images []Image) []ImageRecord {
	out := make([]ImageRecord, 0, len(images))
	for _, img := range images {
		out = append(out, img.Record())
	}
	return out
}

// inference lists class keywords in priority order.
var inference = []struct {
	slot     string
	keywords []string
}{
	{"hero", []string{"hero"}},
	{"gallery", []string{"gallery"}},
	{"feature", []string{"feature"}},
	{"editorial", []string{"story", "editorial"}},
	{"step", []string{"step", "connected"}},
	{"immersive", []string{"immersive"}},
}

// Extract parses raw and lists its images.
func Extract(raw string, opts ...Option) ([]Image, error) {
	doc, err := markup.Parse(raw)
	if err != nil {
		return nil, err
	}
	return ExtractDocument(doc, opts...), nil
}

// ExtractDocument lists the images of doc in document order. An explicit
// marker names the slot; otherwise the slot is inferred from the classes of
// the image and its parent. Inline SVG data URIs are skipped.
func ExtractDocument(doc *markup.Document, opts ...Option) []Image {
	o := resolve(opts)
	images := []Image{}
	for _, n := range markup.FindAll(doc.Root(), markup.Tag("img")) {
		src := markup.AttrOr(n, "src", "")
		if strings.HasPrefix(strings.ToLower(src), "data:image/svg") {
			continue
		}
		img := Image{
			URL:   src,
			Alt:   markup.AttrOr(n, "alt", ""),
			Size:  markup.AttrOr(n, "data-size", ""),
			Class: strings.Join(markup.Classes(n), " "),
		}
		if name := strings.TrimSpace(markup.AttrOr(n, o.attribute, "")); name != "" {
			img.Slot = ExplicitSlot(name)
		} else if name := inferSlot(n); name != "" {
			img.Slot = InferredSlot(name)
		}
		images = append(images, img)
	}
	return images
}

func inferSlot(n *html.Node) string {
	tokens := markup.Classes(n)
	if p := n.Parent; p != nil && p.Type == html.ElementNode {
		tokens = append(tokens, markup.Classes(p)...)
	}
	if len(tokens) == 0 {
		return ""
	}
	joined := strings.ToLower(strings.Join(tokens, " "))
	for _, rule := range inference {
		for _, kw := range rule.keywords {
			if strings.Contains(joined, kw) {
				return rule.slot
			}
		}
	}
	return ""
}

// Group collects the URLs of slotted images per slot, in document order.
// Position k of a slot's list is its k-th placeholder: an unfilled
// placeholder followed by filled ones leaves an empty entry. Trailing
// unfilled placeholders are dropped.
func Group(images []Image) *Map {
	m := NewMap()
	pending := map[string]int{}
	for _, img := range images {
		if !img.Slot.Assigned() {
			continue
		}
		slot := img.Slot.Name()
		if img.URL == "" {
			pending[slot]++
			continue
		}
		for ; pending[slot] > 0; pending[slot]-- {
			m.appendURL(slot, "")
		}
		m.appendURL(slot, img.URL)
	}
	return m
}
