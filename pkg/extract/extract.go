// Package extract recovers page content from existing markup: product
// identity, features, testimonials, stats, theme colors, FAQ and the call to
// action. Matching is heuristic and keyed on class names, in the same spirit
// as slot inference. Missing content degrades to empty fragments.
package extract

import (
	"bytes"
	"html"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/fulmenhq/pagesmith/pkg/markup"
	"github.com/fulmenhq/pagesmith/pkg/slots"
	"github.com/microcosm-cc/bluemonday"
	xhtml "golang.org/x/net/html"
)

// Defaults used when the markup names no product.
const (
	DefaultProductName    = "Product name"
	DefaultProductTagline = "Product tagline"
)

type Product struct {
	Name        string `json:"name" yaml:"name" toml:"name"`
	Tagline     string `json:"tagline" yaml:"tagline" toml:"tagline"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Image       string `json:"image,omitempty" yaml:"image,omitempty" toml:"image,omitempty"`
	Price       string `json:"price,omitempty" yaml:"price,omitempty" toml:"price,omitempty"`
}

type Feature struct {
	Title       string `json:"title" yaml:"title" toml:"title"`
	Description string `json:"description" yaml:"description" toml:"description"`
}

type Testimonial struct {
	Quote  string `json:"quote" yaml:"quote" toml:"quote"`
	Author string `json:"author,omitempty" yaml:"author,omitempty" toml:"author,omitempty"`
}

type Stat struct {
	Value string `json:"value" yaml:"value" toml:"value"`
	Label string `json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty"`
}

type FAQEntry struct {
	Question string `json:"question" yaml:"question" toml:"question"`
	Answer   string `json:"answer,omitempty" yaml:"answer,omitempty" toml:"answer,omitempty"`
}

// Content is everything the extractor found in one document.
type Content struct {
	Product      Product
	Features     []Feature
	Testimonials []Testimonial
	Stats        []Stat
	Theme        Theme
	FAQ          []FAQEntry
	CTA          CTA
	Images       []slots.Image
}

// All runs every extractor over doc.
func All(doc *markup.Document, opts ...slots.Option) Content {
	images := slots.ExtractDocument(doc, opts...)
	return Content{
		Product:      productFrom(doc, images),
		Features:     FindFeatures(doc),
		Testimonials: FindTestimonials(doc),
		Stats:        FindStats(doc),
		Theme:        FindTheme(doc),
		FAQ:          FindFAQ(doc),
		CTA:          FindCTA(doc),
		Images:       images,
	}
}

var (
	brandRe    = regexp.MustCompile(`(?i)brand|logo|site-name`)
	heroRe     = regexp.MustCompile(`hero`)
	subtitleRe = regexp.MustCompile(`(?i)subtitle|tagline|hero-desc`)
	priceRe    = regexp.MustCompile(`(?i)price`)
	currencyRe = regexp.MustCompile(`[¥$€£\d]`)
)

// FindProduct extracts the product identity.
func FindProduct(doc *markup.Document, opts ...slots.Option) Product {
	return productFrom(doc, slots.ExtractDocument(doc, opts...))
}

func productFrom(doc *markup.Document, images []slots.Image) Product {
	root := doc.Root()
	var p Product

	if h1 := markup.Find(root, markup.Tag("h1")); h1 != nil {
		p.Name = text(h1)
	}
	if p.Name == "" {
		if brand := markup.Find(root, markup.ClassMatches(brandRe)); brand != nil {
			p.Name = text(brand)
		}
	}

	hero := markup.Find(root, markup.ClassMatches(heroRe))
	if hero != nil {
		if sub := markup.Find(hero, markup.ClassMatches(subtitleRe)); sub != nil {
			p.Tagline = text(sub)
		} else if para := markup.Find(hero, markup.Tag("p")); para != nil {
			if t := text(para); between(t, 10, 100) {
				p.Tagline = t
			}
		}
	}

	for _, scope := range []*xhtml.Node{hero, markup.Find(root, markup.Tag("section"))} {
		if scope == nil || p.Description != "" {
			continue
		}
		for _, para := range markup.FindAll(scope, markup.Tag("p")) {
			if t := text(para); between(t, 50, 500) && t != p.Tagline {
				p.Description = t
				break
			}
		}
	}

	for _, img := range images {
		if img.Slot.Name() == "hero" {
			p.Image = img.URL
			break
		}
	}

	if el := markup.Find(root, markup.ClassMatches(priceRe)); el != nil {
		if t := text(el); currencyRe.MatchString(t) {
			p.Price = t
		}
	}

	if p.Name == "" {
		p.Name = DefaultProductName
	}
	if p.Tagline == "" {
		p.Tagline = DefaultProductTagline
	}
	return p
}

var (
	featureCardRe = regexp.MustCompile(`(?i)feature[-_]?(card|item|box)`)
	featureGridRe = regexp.MustCompile(`(?i)features?[-_]?(grid|list|container)`)
	bentoCellRe   = regexp.MustCompile(`(?i)cell|bento[-_]?item`)
)

// FindFeatures tries feature cards, then the children of a features grid,
// then bento cells. The first strategy that yields anything wins.
func FindFeatures(doc *markup.Document) []Feature {
	root := doc.Root()
	headings := markup.Tag("h3", "h4", "h2")

	features := featuresFrom(markup.FindAll(root, markup.ClassMatches(featureCardRe)), headings)
	if len(features) > 0 {
		return features
	}
	if grid := markup.Find(root, markup.ClassMatches(featureGridRe)); grid != nil {
		features = featuresFrom(markup.Children(grid, markup.Tag("div", "article", "li")), headings)
		if len(features) > 0 {
			return features
		}
	}
	return featuresFrom(markup.FindAll(root, markup.ClassMatches(bentoCellRe)), markup.Tag("h3", "h4"))
}

func featuresFrom(nodes []*xhtml.Node, headings markup.Predicate) []Feature {
	out := []Feature{}
	for _, n := range nodes {
		title := markup.Find(n, headings)
		if title == nil {
			continue
		}
		f := Feature{Title: text(title)}
		if desc := markup.Find(n, markup.Tag("p")); desc != nil {
			f.Description = text(desc)
		}
		out = append(out, f)
	}
	return out
}

var (
	testimonialRe = regexp.MustCompile(`(?i)testimonial[-_]?(card|item|quote)`)
	quoteRe       = regexp.MustCompile(`(?i)quote|text|content`)
	authorRe      = regexp.MustCompile(`(?i)author|name|attribution`)
)

// FindTestimonials extracts quotes with their authors. Entries without a
// quote are dropped.
func FindTestimonials(doc *markup.Document) []Testimonial {
	out := []Testimonial{}
	for _, card := range markup.FindAll(doc.Root(), markup.ClassMatches(testimonialRe)) {
		q := firstOf(card, markup.ClassMatches(quoteRe), markup.Tag("p"))
		a := firstOf(card, markup.ClassMatches(authorRe), markup.Tag("cite"))
		t := Testimonial{Quote: text(q), Author: text(a)}
		if t.Quote != "" {
			out = append(out, t)
		}
	}
	return out
}

var (
	statRe      = regexp.MustCompile(`(?i)stat[-_]?(item|card|value|number)`)
	statValueRe = regexp.MustCompile(`(?i)value|number|count`)
	statLabelRe = regexp.MustCompile(`(?i)label|desc|text`)
	numericRe   = regexp.MustCompile(`^[\d,.]+[+%KMkm]*`)
)

// FindStats extracts figure/label pairs.
func FindStats(doc *markup.Document) []Stat {
	out := []Stat{}
	for _, item := range markup.FindAll(doc.Root(), markup.ClassMatches(statRe)) {
		value := markup.Find(item, markup.ClassMatches(statValueRe))
		if value == nil {
			for _, el := range markup.FindAll(item, markup.Tag("h2", "h3", "span", "div")) {
				if numericRe.MatchString(text(el)) {
					value = el
					break
				}
			}
		}
		s := Stat{Value: text(value)}
		if label := markup.Find(item, markup.ClassMatches(statLabelRe)); label != nil {
			s.Label = text(label)
		}
		if s.Value != "" {
			out = append(out, s)
		}
	}
	return out
}

var (
	faqRe      = regexp.MustCompile(`(?i)faq[-_]?(item|question|entry)`)
	questionRe = regexp.MustCompile(`(?i)question|title|header`)
	answerRe   = regexp.MustCompile(`(?i)answer|content|body|text`)
)

// FindFAQ extracts question/answer pairs.
func FindFAQ(doc *markup.Document) []FAQEntry {
	out := []FAQEntry{}
	for _, item := range markup.FindAll(doc.Root(), markup.ClassMatches(faqRe)) {
		q := firstOf(item, markup.ClassMatches(questionRe), markup.Tag("h3", "h4", "button"))
		a := firstOf(item, markup.ClassMatches(answerRe), markup.Tag("p"))
		e := FAQEntry{Question: text(q), Answer: text(a)}
		if e.Question != "" {
			out = append(out, e)
		}
	}
	return out
}

// CTA is the page's closing call to action.
type CTA struct {
	Title      string `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	Subtitle   string `json:"subtitle,omitempty" yaml:"subtitle,omitempty" toml:"subtitle,omitempty"`
	ButtonText string `json:"button_text,omitempty" yaml:"button_text,omitempty" toml:"button_text,omitempty"`
}

func (c CTA) IsZero() bool { return c == CTA{} }

var (
	ctaSectionRe = regexp.MustCompile(`(?i)cta[-_]?(section|area|block)`)
	ctaButtonRe  = regexp.MustCompile(`(?i)cta[-_]?(btn|button)`)
	primaryRe    = regexp.MustCompile(`(?i)btn[-_]?primary|button[-_]?primary|get[-_]?started`)
)

// FindCTA extracts the call-to-action title, subtitle and button label.
func FindCTA(doc *markup.Document) CTA {
	root := doc.Root()
	var c CTA
	if section := markup.Find(root, markup.ClassMatches(ctaSectionRe)); section != nil {
		if title := markup.Find(section, markup.Tag("h2", "h3")); title != nil {
			c.Title = text(title)
		}
		if sub := markup.Find(section, markup.Tag("p")); sub != nil {
			c.Subtitle = text(sub)
		}
	}
	btn := markup.Find(root, markup.ClassMatches(ctaButtonRe))
	if btn == nil {
		btn = markup.Find(root, markup.And(markup.Tag("a"), markup.ClassMatches(primaryRe)))
	}
	if btn != nil {
		c.ButtonText = text(btn)
	}
	return c
}

// firstOf returns the first descendant matching preferred, else fallback.
func firstOf(n *xhtml.Node, preferred, fallback markup.Predicate) *xhtml.Node {
	if found := markup.Find(n, preferred); found != nil {
		return found
	}
	return markup.Find(n, fallback)
}

var strict = func() *bluemonday.Policy {
	p := bluemonday.StrictPolicy()
	p.AddSpaceWhenStrippingTag(true)
	return p
}()

// text returns the visible text of n. The node is rendered back to markup
// so the sanitizer sees tags as tags and escaped text as text.
func text(n *xhtml.Node) string {
	if n == nil {
		return ""
	}
	var buf bytes.Buffer
	if err := xhtml.Render(&buf, n); err != nil {
		return ""
	}
	return clean(buf.String())
}

// clean strips the tags of an HTML fragment and returns its decoded text
// with whitespace collapsed.
func clean(fragment string) string {
	if fragment == "" {
		return ""
	}
	return strings.Join(strings.Fields(html.UnescapeString(strict.Sanitize(fragment))), " ")
}

func between(s string, lo, hi int) bool {
	n := utf8.RuneCountInString(s)
	return n >= lo && n <= hi
}
