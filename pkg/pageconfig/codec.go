package pageconfig

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fulmenhq/pagesmith/internal/assets"
	"github.com/fulmenhq/pagesmith/pkg/safeio"
	"github.com/pelletier/go-toml/v2"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// Format is a config file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

var (
	// ErrUnsupportedFormat is returned for file extensions with no codec.
	ErrUnsupportedFormat = errors.New("unsupported config format")
	// ErrMalformed is returned when a file does not decode to a config tree
	// or violates the config shape.
	ErrMalformed = errors.New("malformed config")
)

// FormatFromPath picks the codec from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q (use .json, .yaml, .yml or .toml)", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load reads, decodes and shape-checks the config file at path.
func Load(path string) (*Config, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := safeio.ReadInput(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode turns raw bytes into a config and checks it against the embedded
// shape schema. Presence and value rules are left to the validator.
func Decode(data []byte, format Format) (*Config, error) {
	var tree map[string]any
	var err error
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		err = dec.Decode(&tree)
	case FormatYAML:
		err = yaml.Unmarshal(data, &tree)
	case FormatTOML:
		err = toml.Unmarshal(data, &tree)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if tree == nil {
		return nil, fmt.Errorf("%w: document is empty or not a mapping", ErrMalformed)
	}
	if err := checkShape(tree); err != nil {
		return nil, err
	}
	return New(tree), nil
}

// Encode renders v in the given format. JSON output keeps non-ASCII text and
// markup characters unescaped.
func Encode(v any, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return buf.Bytes(), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatTOML:
		out, err := toml.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode toml: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Save encodes v according to the extension of path and writes it.
func Save(path string, v any) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := Encode(v, format)
	if err != nil {
		return err
	}
	return safeio.WriteOutput(path, data)
}

var (
	shapeOnce   sync.Once
	shapeSchema *gojsonschema.Schema
	shapeErr    error
)

func checkShape(tree map[string]any) error {
	shapeOnce.Do(func() {
		shapeSchema, shapeErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(assets.ConfigSchema))
	})
	if shapeErr != nil {
		return fmt.Errorf("compile config shape schema: %w", shapeErr)
	}

	result, err := shapeSchema.Validate(gojsonschema.NewGoLoader(tree))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
	}
	return fmt.Errorf("%w: %s", ErrMalformed, strings.Join(msgs, "; "))
}
