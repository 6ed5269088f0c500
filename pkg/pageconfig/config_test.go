package pageconfig

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupWalksNestedMappings(t *testing.T) {
	cfg := New(map[string]any{
		"product": map[string]any{"name": "Acme", "price": 9},
		"hero":    map[string]any{"image_url": "https://x/hero.png"},
		"faq":     []any{map[string]any{"question": "q"}},
	})

	assert.Equal(t, "Acme", cfg.String("product.name"))
	assert.Equal(t, "", cfg.String("product.price"), "non-strings degrade to empty")
	assert.True(t, cfg.Has("product.price"))
	assert.False(t, cfg.Has("product.image"))
	assert.False(t, cfg.Has("faq.question"), "sequences are not walked")
	assert.Len(t, cfg.List("faq"), 1)
	assert.Nil(t, cfg.List("product"))
	assert.NotNil(t, cfg.Map("hero"))
	assert.Nil(t, cfg.Map("missing.deeper"))
	assert.Equal(t, "q", Field(cfg.List("faq")[0], "question"))
	assert.Equal(t, "", Field("not a map", "question"))
}

func TestNewNilIsEmpty(t *testing.T) {
	cfg := New(nil)
	assert.NotNil(t, cfg.Data())
	assert.False(t, cfg.Has("template_id"))
}

func TestIsMetadataKey(t *testing.T) {
	assert.True(t, IsMetadataKey("_parsed_images"))
	assert.False(t, IsMetadataKey("product"))
}

func TestDecodeAllFormats(t *testing.T) {
	cases := map[Format]string{
		FormatJSON: `{"template_id":"template-01","product":{"name":"Acme","tagline":"Rockets for everyone"}}`,
		FormatYAML: "template_id: template-01\nproduct:\n  name: Acme\n  tagline: Rockets for everyone\n",
		FormatTOML: "template_id = \"template-01\"\n[product]\nname = \"Acme\"\ntagline = \"Rockets for everyone\"\n",
	}
	for format, raw := range cases {
		t.Run(string(format), func(t *testing.T) {
			cfg, err := Decode([]byte(raw), format)
			require.NoError(t, err)
			assert.Equal(t, "template-01", cfg.String("template_id"))
			assert.Equal(t, "Acme", cfg.String("product.name"))
			assert.Equal(t, "Rockets for everyone", cfg.String("product.tagline"))
		})
	}
}

func TestDecodeRejectsWrongShape(t *testing.T) {
	_, err := Decode([]byte(`{"features":"not a list"}`), FormatJSON)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformed))
	assert.Contains(t, err.Error(), "features")
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode([]byte(`{"template_id":`), FormatJSON)
	assert.True(t, errors.Is(err, ErrMalformed))

	_, err = Decode([]byte(""), FormatYAML)
	assert.True(t, errors.Is(err, ErrMalformed))
}

func TestDecodeKeepsUnknownAndForeignValues(t *testing.T) {
	cfg, err := Decode([]byte(`{"template_id":"template-99","story":{"chapters":3},"_parsed_images":[{"url":"a"}]}`), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "template-99", cfg.String("template_id"))
	assert.True(t, cfg.Has("story.chapters"))
	assert.Len(t, cfg.List("_parsed_images"), 1)
}

func TestFormatFromPath(t *testing.T) {
	for path, want := range map[string]Format{"a.json": FormatJSON, "b.YAML": FormatYAML, "c.yml": FormatYAML, "d.toml": FormatTOML} {
		got, err := FormatFromPath(path)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := FormatFromPath("config.ini")
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "config.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

type sample struct {
	TemplateID string `json:"template_id" yaml:"template_id" toml:"template_id"`
	Note       string `json:"note,omitempty" yaml:"note,omitempty" toml:"note,omitempty"`
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"out.json", "out.yaml", "out.toml"} {
		path := filepath.Join(dir, name)
		require.NoError(t, Save(path, sample{TemplateID: "template-04", Note: "a <b> & c"}))

		cfg, err := Load(path)
		require.NoError(t, err, name)
		assert.Equal(t, "template-04", cfg.String("template_id"), name)
		assert.Equal(t, "a <b> & c", cfg.String("note"), name)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "out.json"))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(raw), "a <b> & c"), "json output must not escape markup")
}
