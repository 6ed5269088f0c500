/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package assets

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed embedded/signatures.yaml
var SignatureManifest []byte

//go:embed embedded/config.schema.json
var ConfigSchema []byte

//go:embed embedded/reports
var reports embed.FS

// GetReportsFS returns the report templates rooted at the reports directory.
func GetReportsFS() fs.FS {
	if sub, err := fs.Sub(reports, "embedded/reports"); err == nil {
		return sub
	}
	return reports
}

// GetReportTemplate returns the Handlebars template for a report kind
// (generate, validate, parse, classify).
func GetReportTemplate(kind string) (string, error) {
	data, err := fs.ReadFile(GetReportsFS(), kind+".md.hbs")
	if err != nil {
		return "", fmt.Errorf("report template %q not embedded: %w", kind, err)
	}
	return string(data), nil
}
