package signature

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/fulmenhq/pagesmith/internal/assets"
	"gopkg.in/yaml.v3"
)

const embeddedManifestSource = "embedded:signatures.yaml"

// Manifest is the top-level structure of the signature table.
type Manifest struct {
	Version   string     `yaml:"version"`
	Templates []Template `yaml:"templates"`
}

// Template lists the weighted keywords that identify one template.
type Template struct {
	ID       string    `yaml:"id"`
	Keywords []Keyword `yaml:"keywords"`
	source   string
}

// Keyword is a single weighted signature entry.
type Keyword struct {
	Value  string `yaml:"value"`
	Weight int    `yaml:"weight"`
}

// Source returns where the template signature was defined.
func (t Template) Source() string {
	return t.source
}

var (
	defaultOnce     sync.Once
	defaultManifest *Manifest
	defaultErr      error
)

// DefaultManifest returns the embedded signature table. It is parsed once per
// process; callers must treat the result as read-only.
func DefaultManifest() (*Manifest, error) {
	defaultOnce.Do(func() {
		defaultManifest, defaultErr = parseManifest(assets.SignatureManifest, embeddedManifestSource)
		if defaultErr == nil {
			normaliseManifest(defaultManifest)
		}
	})
	return defaultManifest, defaultErr
}

// LoadManifest returns the embedded table with the override file at path
// merged over it. An empty path or a missing file yields the embedded table.
func LoadManifest(path string) (*Manifest, error) {
	base, err := DefaultManifest()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(path) == "" {
		return base, nil
	}

	overlay, err := loadManifestFromFile(path)
	if err != nil {
		return nil, err
	}
	if overlay == nil {
		return base, nil
	}

	merged := base.clone()
	mergeManifest(merged, overlay)
	normaliseManifest(merged)
	return merged, nil
}

func loadManifestFromFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- operator-supplied settings path
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read signature manifest %s: %w", path, err)
	}
	return parseManifest(data, path)
}

func parseManifest(data []byte, source string) (*Manifest, error) {
	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parse signature manifest %s: %w", source, err)
	}
	for i := range manifest.Templates {
		manifest.Templates[i].source = source
	}
	return &manifest, nil
}

func (m *Manifest) clone() *Manifest {
	out := &Manifest{Version: m.Version, Templates: make([]Template, len(m.Templates))}
	for i, t := range m.Templates {
		t.Keywords = append([]Keyword(nil), t.Keywords...)
		out.Templates[i] = t
	}
	return out
}

// mergeManifest replaces templates with a matching id in place, keeping the
// declaration order of the base table, and appends new ones.
func mergeManifest(base, overlay *Manifest) {
	if overlay.Version != "" {
		base.Version = overlay.Version
	}
	index := make(map[string]int, len(base.Templates))
	for i, t := range base.Templates {
		index[strings.ToLower(t.ID)] = i
	}
	for _, t := range overlay.Templates {
		key := strings.ToLower(strings.TrimSpace(t.ID))
		if idx, ok := index[key]; ok {
			base.Templates[idx] = t
			continue
		}
		base.Templates = append(base.Templates, t)
		index[key] = len(base.Templates) - 1
	}
}

func normaliseManifest(manifest *Manifest) {
	seen := make(map[string]struct{})
	kept := manifest.Templates[:0]
	for _, t := range manifest.Templates {
		t.ID = strings.ToLower(strings.TrimSpace(t.ID))
		if t.ID == "" {
			continue
		}
		if _, ok := seen[t.ID]; ok {
			continue
		}
		seen[t.ID] = struct{}{}

		keywords := t.Keywords[:0]
		for _, k := range t.Keywords {
			k.Value = strings.ToLower(strings.TrimSpace(k.Value))
			if k.Value == "" {
				continue
			}
			if k.Weight <= 0 {
				k.Weight = 1
			}
			keywords = append(keywords, k)
		}
		t.Keywords = keywords
		kept = append(kept, t)
	}
	manifest.Templates = kept
}
