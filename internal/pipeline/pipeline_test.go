package pipeline

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fulmenhq/pagesmith/pkg/extract"
	"github.com/fulmenhq/pagesmith/pkg/pageconfig"
	"github.com/fulmenhq/pagesmith/pkg/slots"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const showcaseConfig = `{
  "template_id": "template-02",
  "product": {
    "name": "Aurora Lamp",
    "tagline": "Light that follows the sun",
    "image": "https://cdn.example.com/lamp.png",
    "price": "$89"
  },
  "features": [
    {"title": "Circadian", "description": "Shifts color through the day"},
    {"title": "Quiet", "description": "No fan and no hum at all"},
    {"title": "Portable", "description": "Runs a week on one charge"}
  ],
  "hero": {"image_url": "https://cdn.example.com/hero.png"},
  "gallery_images": [{"url": "https://cdn.example.com/g1.png"}]
}`

const showcasePage = `<!DOCTYPE html>
<html><head><title>Aurora</title></head>
<body>
<section class="product-showcase hero">
  <h1>Aurora Lamp</h1>
  <p class="tagline">Light that follows the sun</p>
  <IMG data-slot="hero" alt="lamp">
  <img data-slot="hero" src="placeholder.png" alt="room">
  <span class="price">$89</span>
</section>
<div class="gallery"><img data-slot="gallery" src="old.png" alt="detail"></div>
<img src="https://cdn.example.com/logo.svg" alt="logo">
</body></html>`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestGenerateFillsPlaceholders(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "page.json", showcaseConfig)
	inPath := writeFile(t, dir, "in.html", showcasePage)
	outPath := filepath.Join(dir, "out", "page.html")

	report, err := Generate(context.Background(), cfgPath, inPath, outPath, DefaultOptions())
	require.NoError(t, err)
	require.NotNil(t, report)

	assert.True(t, report.Success())
	assert.Equal(t, "template-02", report.TemplateID)
	assert.Equal(t, "Product Showcase + CTA", report.TemplateName)
	assert.Equal(t, slots.Stats{Injected: 3, Unmarked: 1}, report.Stats)

	wantSlots := map[string][]string{
		"hero":    {"https://cdn.example.com/lamp.png", "https://cdn.example.com/hero.png"},
		"gallery": {"https://cdn.example.com/g1.png"},
	}
	if diff := cmp.Diff(wantSlots, report.SlotMap); diff != "" {
		t.Errorf("slot map mismatch (-want +got):\n%s", diff)
	}

	out, err := os.ReadFile(outPath)
	require.NoError(t, err)
	page := string(out)
	assert.Equal(t, len(out), report.OutputBytes)
	assert.Contains(t, page, `<IMG src="https://cdn.example.com/lamp.png" data-slot="hero" alt="lamp">`)
	assert.Contains(t, page, `src="https://cdn.example.com/hero.png"`)
	assert.Contains(t, page, `src="https://cdn.example.com/g1.png"`)
	assert.NotContains(t, page, "placeholder.png")
	assert.Contains(t, page, `<img src="https://cdn.example.com/logo.svg" alt="logo">`)
	assert.NotEmpty(t, report.StructureWarnings, "page has no nav, footer or viewport")
}

func TestGenerateWithoutStructureChecks(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "page.yaml", "template_id: template-01\nproduct:\n  name: Kite\n  tagline: Fly anything\n")
	inPath := writeFile(t, dir, "in.html", `<img data-slot="hero">`)
	outPath := filepath.Join(dir, "out.html")

	opts := DefaultOptions()
	opts.CheckStructure = false
	report, err := Generate(context.Background(), cfgPath, inPath, outPath, opts)
	require.NoError(t, err)
	assert.NotNil(t, report.StructureWarnings)
	assert.Empty(t, report.StructureWarnings)
	assert.Equal(t, slots.Stats{EmptySlots: 1}, report.Stats)
	assert.FileExists(t, outPath)
}

func TestGenerateRefusesInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "page.json", `{"template_id": "template-99", "product": {"name": "Kite"}}`)
	inPath := writeFile(t, dir, "in.html", showcasePage)
	outPath := filepath.Join(dir, "out.html")

	report, err := Generate(context.Background(), cfgPath, inPath, outPath, DefaultOptions())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
	require.NotNil(t, report)
	assert.False(t, report.Written)
	assert.False(t, report.Success())
	assert.Len(t, report.Validation.Errors, 2)
	assert.NoFileExists(t, outPath)
}

func TestGenerateMissingInput(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "page.json", showcaseConfig)
	outPath := filepath.Join(dir, "out.html")

	report, err := Generate(context.Background(), cfgPath, filepath.Join(dir, "nope.html"), outPath, DefaultOptions())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInput))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	require.NotNil(t, report)
	assert.True(t, report.Validation.OK())
	assert.NoFileExists(t, outPath)
}

func TestGenerateMissingConfig(t *testing.T) {
	dir := t.TempDir()
	report, err := Generate(context.Background(), filepath.Join(dir, "nope.json"), "in.html", "out.html", DefaultOptions())
	assert.Nil(t, report)
	assert.True(t, errors.Is(err, ErrInput))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestGenerateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Generate(ctx, "page.json", "in.html", "out.html", DefaultOptions())
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestValidateOnly(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.toml", "template_id = \"template-08\"\n[product]\nname = \"Nightfall\"\ntagline = \"See in the dark\"\n")
	report, err := Validate(context.Background(), good)
	require.NoError(t, err)
	assert.Equal(t, "Dark Immersive", report.TemplateName)
	assert.NotEmpty(t, report.Validation.Warnings)

	bad := writeFile(t, dir, "bad.json", `{"product": {"name": "x", "tagline": "y"}}`)
	report, err = Validate(context.Background(), bad)
	assert.True(t, errors.Is(err, ErrValidation))
	require.NotNil(t, report)
	assert.Empty(t, report.TemplateName)
	require.Len(t, report.Validation.Errors, 1)
	assert.Equal(t, "template_id", report.Validation.Errors[0].Field)

	shape := writeFile(t, dir, "shape.json", `{"template_id": "template-01", "features": "many"}`)
	_, err = Validate(context.Background(), shape)
	assert.True(t, errors.Is(err, ErrInput))
	assert.True(t, errors.Is(err, pageconfig.ErrMalformed))
}

func TestParseRoundTrip(t *testing.T) {
	for _, ext := range []string{".json", ".yaml", ".toml"} {
		t.Run(ext, func(t *testing.T) {
			dir := t.TempDir()
			inPath := writeFile(t, dir, "page.html", showcasePage)
			outPath := filepath.Join(dir, "config"+ext)

			report, err := Parse(context.Background(), inPath, outPath, DefaultOptions())
			require.NoError(t, err)
			assert.Equal(t, "template-02", report.Classification.TemplateID)
			assert.Equal(t, "Product Showcase + CTA", report.StyleName)
			assert.Equal(t, "Aurora Lamp", report.Product.Name)
			assert.Equal(t, "Light that follows the sun", report.Product.Tagline)
			assert.Equal(t, 4, report.ImageCount)

			cfg, err := pageconfig.Load(outPath)
			require.NoError(t, err)
			assert.Equal(t, "template-02", cfg.String("template_id"))
			assert.Equal(t, "Aurora Lamp", cfg.String("product.name"))
			assert.Len(t, cfg.List("_parsed_images"), 4)

			vr, err := Validate(context.Background(), outPath)
			require.NoError(t, err)
			for _, w := range vr.Validation.Warnings {
				assert.False(t, strings.HasPrefix(w.Field, "_"), "metadata must not be validated: %s", w)
			}
		})
	}
}

func TestParseRecordsImageSlots(t *testing.T) {
	dir := t.TempDir()
	inPath := writeFile(t, dir, "page.html", showcasePage)
	outPath := filepath.Join(dir, "config.json")

	report, err := Parse(context.Background(), inPath, outPath, DefaultOptions())
	require.NoError(t, err)

	want := []slots.ImageRecord{
		{URL: "", Alt: "lamp", Slot: "hero"},
		{URL: "placeholder.png", Alt: "room", Slot: "hero"},
		{URL: "old.png", Alt: "detail", Slot: "gallery"},
		{URL: "https://cdn.example.com/logo.svg", Alt: "logo"},
	}
	if diff := cmp.Diff(want, report.Config.ParsedImages); diff != "" {
		t.Errorf("parsed images mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRejectsUnknownExtension(t *testing.T) {
	dir := t.TempDir()
	inPath := writeFile(t, dir, "page.html", showcasePage)

	_, err := Parse(context.Background(), inPath, filepath.Join(dir, "config.ini"), DefaultOptions())
	assert.True(t, errors.Is(err, pageconfig.ErrUnsupportedFormat))
	assert.True(t, errors.Is(err, ErrInput))
	assert.NoFileExists(t, filepath.Join(dir, "config.ini"))
}

func TestParseBrokenSignatureOverride(t *testing.T) {
	dir := t.TempDir()
	inPath := writeFile(t, dir, "page.html", showcasePage)
	opts := DefaultOptions()
	opts.SignaturesFile = writeFile(t, dir, "sig.yaml", "templates: [unclosed\n")

	_, err := Parse(context.Background(), inPath, filepath.Join(dir, "out.json"), opts)
	assert.True(t, errors.Is(err, ErrSettings))
}

func TestReconstructOmitsEmptySections(t *testing.T) {
	cfg := Reconstruct("template-01", extract.Content{})
	assert.NotNil(t, cfg.Features)
	assert.Nil(t, cfg.MockData)
	assert.Nil(t, cfg.Theme)
	assert.Nil(t, cfg.CTA)
	assert.Empty(t, cfg.ParsedImages)
}

func TestClassifyGlobs(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.html", `<div class="cyberpunk neon">x</div>`)
	b := writeFile(t, dir, filepath.Join("nested", "b.html"), `<div class="bento-grid">x</div>`)
	writeFile(t, dir, "notes.txt", "not markup")

	report, err := Classify(context.Background(), []string{filepath.Join(dir, "**", "*.html"), a}, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, report.Files, 2)
	assert.Equal(t, a, report.Files[0].File)
	assert.Equal(t, "template-05", report.Files[0].Result.TemplateID)
	assert.Equal(t, "Dark Cyberpunk", report.Files[0].StyleName)
	assert.Equal(t, b, report.Files[1].File)
}

func TestClassifySkipsIgnoredGlobMatches(t *testing.T) {
	dir := t.TempDir()
	keep := writeFile(t, dir, "index.html", showcasePage)
	draft := writeFile(t, dir, "promo.draft.html", showcasePage)
	writeFile(t, dir, filepath.Join("dist", "index.html"), showcasePage)
	writeFile(t, dir, ".gitignore", "dist/\n")
	writeFile(t, dir, ".pagesmithignore", "*.draft.html\n")

	opts := DefaultOptions()
	opts.IgnoreRoot = dir
	report, err := Classify(context.Background(), []string{filepath.Join(dir, "**", "*.html")}, opts)
	require.NoError(t, err)
	require.Len(t, report.Files, 1)
	assert.Equal(t, keep, report.Files[0].File)

	// Explicit arguments bypass the ignore files.
	report, err = Classify(context.Background(), []string{draft}, opts)
	require.NoError(t, err)
	require.Len(t, report.Files, 1)
	assert.Equal(t, draft, report.Files[0].File)
}

func TestClassifyNoMatches(t *testing.T) {
	_, err := Classify(context.Background(), []string{filepath.Join(t.TempDir(), "*.html")}, DefaultOptions())
	assert.True(t, errors.Is(err, ErrInput))

	_, err = Classify(context.Background(), []string{filepath.Join(t.TempDir(), "missing.html")}, DefaultOptions())
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestClassifyIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "page.html", showcasePage)

	first, err := Classify(context.Background(), []string{path}, DefaultOptions())
	require.NoError(t, err)
	second, err := Classify(context.Background(), []string{path}, DefaultOptions())
	require.NoError(t, err)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("classification changed between runs:\n%s", diff)
	}
}
