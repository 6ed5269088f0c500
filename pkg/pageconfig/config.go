// Package pageconfig holds the page config tree and its file codecs.
//
// A config is decoded generically so template-specific collections and
// unknown keys survive a load. Typed accessors resolve dotted paths through
// nested mappings and degrade to zero values instead of failing.
package pageconfig

import (
	"strings"
)

// MetadataPrefix marks keys that carry tool metadata rather than page content.
const MetadataPrefix = "_"

// Config is a loaded page config.
type Config struct {
	data map[string]any
}

// New wraps an already decoded tree. A nil map yields an empty config.
func New(data map[string]any) *Config {
	if data == nil {
		data = map[string]any{}
	}
	return &Config{data: data}
}

// Data returns the underlying tree.
func (c *Config) Data() map[string]any {
	return c.data
}

// Lookup walks a dotted path through nested mappings.
func (c *Config) Lookup(path string) (any, bool) {
	var cur any = c.data
	for _, part := range strings.Split(path, ".") {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Has reports whether path resolves.
func (c *Config) Has(path string) bool {
	_, ok := c.Lookup(path)
	return ok
}

// String returns the string at path, or "" when absent or not a string.
func (c *Config) String(path string) string {
	v, _ := c.Lookup(path)
	s, _ := v.(string)
	return s
}

// Map returns the mapping at path, or nil.
func (c *Config) Map(path string) map[string]any {
	v, _ := c.Lookup(path)
	m, _ := asMap(v)
	return m
}

// List returns the sequence at path, or nil.
func (c *Config) List(path string) []any {
	v, _ := c.Lookup(path)
	l, _ := v.([]any)
	return l
}

// Field returns the string field of a sequence entry, or "" when the entry is
// not a mapping or the field is not a string.
func Field(entry any, key string) string {
	m, ok := asMap(entry)
	if !ok {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

// IsMetadataKey reports whether a top-level key is tool metadata.
func IsMetadataKey(key string) bool {
	return strings.HasPrefix(key, MetadataPrefix)
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				continue
			}
			out[ks] = val
		}
		return out, true
	default:
		return nil, false
	}
}
