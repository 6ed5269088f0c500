package extract

import (
	"testing"

	"github.com/fulmenhq/pagesmith/pkg/markup"
	"github.com/fulmenhq/pagesmith/pkg/slots"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const landing = `<!DOCTYPE html>
<html>
<head>
<style>
  :root { --primary-color: #7c3aed; --secondary-color: #f59e0b; }
  body { color: #333333; }
</style>
</head>
<body style="background-color: #0b0b12">
<nav><a class="logo">Ignored Brand</a></nav>
<header class="hero">
  <h1>Nebula   Notes</h1>
  <p class="hero-subtitle">Notes that think with you</p>
  <p>Nebula Notes links every idea you capture into a living graph, so the right note finds you when you need it most.</p>
  <img data-slot="hero" src="https://cdn.example.com/hero.png" alt="App screenshot">
  <span class="price">$12 / month</span>
</header>
<section class="features-grid">
  <div class="feature-card"><h3>Graph view</h3><p>See how every note connects.</p></div>
  <div class="feature-card"><h3>Offline</h3></div>
  <div class="feature-card"><p>No heading, skipped</p></div>
</section>
<section class="testimonials">
  <div class="testimonial-card"><p class="quote">Changed how I &lt;b&gt;work&lt;/b&gt;.</p><span class="author">Sam</span></div>
  <div class="testimonial-card"><p>Plain paragraph quote</p><cite>Riley</cite></div>
  <div class="testimonial-card"><span class="author">No quote</span></div>
</section>
<section class="stats">
  <div class="stat-card"><span class="count">10K+</span><span class="label">Users</span></div>
  <div class="stat-card"><h3>99.9%</h3><p>Uptime</p></div>
</section>
<section class="faq">
  <div class="faq-item"><h4>Is there a free plan?</h4><p>Yes, forever.</p></div>
  <div class="faq-item"><button class="faq-question">Can I export?</button><div class="faq-answer">Markdown and PDF.</div></div>
</section>
<section class="cta-section">
  <h2>Start thinking in graphs</h2>
  <p>Free for 14 days.</p>
  <a class="btn-primary" href="#">Get started</a>
</section>
</body>
</html>`

func parse(t *testing.T, raw string) *markup.Document {
	t.Helper()
	doc, err := markup.Parse(raw)
	require.NoError(t, err)
	return doc
}

func TestFindProduct(t *testing.T) {
	got := FindProduct(parse(t, landing))
	want := Product{
		Name:        "Nebula Notes",
		Tagline:     "Notes that think with you",
		Description: "Nebula Notes links every idea you capture into a living graph, so the right note finds you when you need it most.",
		Image:       "https://cdn.example.com/hero.png",
		Price:       "$12 / month",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("product mismatch (-want +got):\n%s", diff)
	}
}

func TestFindProductFallbacks(t *testing.T) {
	got := FindProduct(parse(t, `<div class="site-name">Acme</div><div class="hero-wrap"><p>Short</p></div>`))
	assert.Equal(t, "Acme", got.Name)
	assert.Equal(t, DefaultProductTagline, got.Tagline, "hero paragraph under 10 characters is not a tagline")

	got = FindProduct(parse(t, `<p>nothing here</p>`))
	assert.Equal(t, DefaultProductName, got.Name)
	assert.Equal(t, DefaultProductTagline, got.Tagline)
	assert.Empty(t, got.Image)
	assert.Empty(t, got.Price)
}

func TestFindProductUsesInferredHeroImage(t *testing.T) {
	got := FindProduct(parse(t, `<div class="hero-media"><img src="https://x/h.png"></div>`))
	assert.Equal(t, "https://x/h.png", got.Image)
}

func TestFindProductWithCustomSlotAttribute(t *testing.T) {
	doc := parse(t, `<img data-image-slot="hero" src="https://x/h.png">`)
	assert.Empty(t, FindProduct(doc).Image)
	assert.Equal(t, "https://x/h.png", FindProduct(doc, slots.WithAttribute("data-image-slot")).Image)
}

func TestFindPriceNeedsCurrencyOrDigit(t *testing.T) {
	got := FindProduct(parse(t, `<span class="price-tag">Contact sales</span>`))
	assert.Empty(t, got.Price)
}

func TestFindFeatures(t *testing.T) {
	got := FindFeatures(parse(t, landing))
	want := []Feature{
		{Title: "Graph view", Description: "See how every note connects."},
		{Title: "Offline"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("features mismatch (-want +got):\n%s", diff)
	}
}

func TestFindFeaturesGridChildren(t *testing.T) {
	doc := parse(t, `<ul class="feature-list"><li><h4>Sync</h4><p>Everywhere</p></li><li><span>no title</span></li></ul>`)
	assert.Equal(t, []Feature{{Title: "Sync", Description: "Everywhere"}}, FindFeatures(doc))
}

func TestFindFeaturesBentoCells(t *testing.T) {
	doc := parse(t, `<div class="bento"><div class="cell-a"><h3>Agents</h3><p>Autonomous helpers</p></div><div class="bento-item"><h2>h2 is ignored</h2></div></div>`)
	assert.Equal(t, []Feature{{Title: "Agents", Description: "Autonomous helpers"}}, FindFeatures(doc))
}

func TestFindTestimonials(t *testing.T) {
	got := FindTestimonials(parse(t, landing))
	want := []Testimonial{
		{Quote: "Changed how I <b>work</b>.", Author: "Sam"},
		{Quote: "Plain paragraph quote", Author: "Riley"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("testimonials mismatch (-want +got):\n%s", diff)
	}
}

func TestFindStats(t *testing.T) {
	got := FindStats(parse(t, landing))
	assert.Equal(t, []Stat{{Value: "10K+", Label: "Users"}, {Value: "99.9%"}}, got)
}

func TestFindTheme(t *testing.T) {
	got := FindTheme(parse(t, landing))
	assert.Equal(t, Theme{PrimaryColor: "#7c3aed", SecondaryColor: "#f59e0b", BackgroundColor: "#0b0b12"}, got)
}

func TestFindThemeFromStylePalette(t *testing.T) {
	doc := parse(t, `<style>h1{color:#FFFFFF} a{color:#E11D48} b{color:#e11d48} p{color:#0EA5E9}</style>`)
	assert.Equal(t, Theme{PrimaryColor: "#e11d48", SecondaryColor: "#0ea5e9"}, FindTheme(doc))
	assert.True(t, FindTheme(parse(t, `<p>plain</p>`)).IsZero())
}

func TestFindFAQ(t *testing.T) {
	got := FindFAQ(parse(t, landing))
	assert.Equal(t, []FAQEntry{
		{Question: "Is there a free plan?", Answer: "Yes, forever."},
		{Question: "Can I export?", Answer: "Markdown and PDF."},
	}, got)
}

func TestFindCTA(t *testing.T) {
	got := FindCTA(parse(t, landing))
	assert.Equal(t, CTA{Title: "Start thinking in graphs", Subtitle: "Free for 14 days.", ButtonText: "Get started"}, got)
	assert.True(t, FindCTA(parse(t, `<p>none</p>`)).IsZero())
}

func TestAllCollectsImages(t *testing.T) {
	c := All(parse(t, landing))
	require.Len(t, c.Images, 1)
	assert.Equal(t, slots.Explicit, c.Images[0].Slot.Kind())
	assert.Equal(t, "Nebula Notes", c.Product.Name)
	assert.Len(t, c.Features, 2)
}

func TestCleanStripsMarkup(t *testing.T) {
	assert.Equal(t, "bold & brave", clean("<b>bold</b> &amp; brave"))
	assert.Equal(t, "a < b", clean("a &lt; b"))
	assert.Equal(t, "", clean(""))
}

func TestEscapedAngleBracketsSurvive(t *testing.T) {
	doc := parse(t, `<div class="feature-card"><h3>Generics &lt;T&gt;</h3>`+
		`<p>Compare when a&lt;b and b&gt;c in one pass, fast.</p></div>`)

	want := []Feature{{Title: "Generics <T>", Description: "Compare when a<b and b>c in one pass, fast."}}
	if diff := cmp.Diff(want, FindFeatures(doc)); diff != "" {
		t.Errorf("features mismatch (-want +got):\n%s", diff)
	}
}

func TestTextSeparatesAdjacentElements(t *testing.T) {
	doc := parse(t, `<div class="faq-item"><h4>Pricing<span>?</span></h4><p>Free<br>forever.<script>x()</script></p></div>`)
	got := FindFAQ(doc)
	require.Len(t, got, 1)
	assert.Equal(t, "Free forever.", got[0].Answer)
}
