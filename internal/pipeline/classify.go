/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fulmenhq/pagesmith/pkg/catalog"
	"github.com/fulmenhq/pagesmith/pkg/ignore"
	"github.com/fulmenhq/pagesmith/pkg/logger"
	"github.com/fulmenhq/pagesmith/pkg/markup"
	"github.com/fulmenhq/pagesmith/pkg/safeio"
	"github.com/fulmenhq/pagesmith/pkg/signature"
)

// Classification is the classifier verdict for one file.
type Classification struct {
	File      string           `json:"file"`
	StyleName string           `json:"style_name"`
	Result    signature.Result `json:"result"`
}

// ClassifyReport holds one row per classified file, in input order.
type ClassifyReport struct {
	Files []Classification `json:"files"`
}

// ExpandPatterns resolves file arguments. Arguments with glob metacharacters
// are matched with doublestar (so "pages/**/*.html" works); plain arguments
// are kept as given. Glob matches the ignore matcher rejects are dropped; a
// nil matcher keeps everything. Duplicates are dropped, first occurrence wins.
func ExpandPatterns(patterns []string, skip *ignore.Matcher) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(p string) {
		key := filepath.Clean(p)
		if seen[key] {
			return
		}
		seen[key] = true
		files = append(files, p)
	}

	for _, pattern := range patterns {
		if !hasMeta(pattern) {
			add(pattern)
			continue
		}
		if !doublestar.ValidatePathPattern(pattern) {
			return nil, inputErr(fmt.Errorf("invalid glob pattern %q", pattern))
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, inputErr(fmt.Errorf("expand %q: %w", pattern, err))
		}
		sort.Strings(matches)
		kept := 0
		for _, m := range matches {
			if skip.IsIgnored(m) {
				continue
			}
			add(m)
			kept++
		}
		logger.Debug("pattern expanded",
			logger.String("pattern", pattern),
			logger.Int("matches", len(matches)),
			logger.Int("ignored", len(matches)-kept))
	}

	if len(files) == 0 {
		return nil, inputErr(fmt.Errorf("no files match %v", patterns))
	}
	return files, nil
}

func hasMeta(p string) bool {
	for _, r := range p {
		switch r {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}

// Classify runs the template classifier over every file the patterns name.
// Files are processed one after the other; the first unreadable file aborts
// the run.
func Classify(ctx context.Context, patterns []string, opts Options) (*ClassifyReport, error) {
	var skip *ignore.Matcher
	if opts.IgnoreRoot != "" {
		m, err := ignore.NewMatcher(opts.IgnoreRoot)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSettings, err)
		}
		skip = m
	}
	files, err := ExpandPatterns(patterns, skip)
	if err != nil {
		return nil, err
	}
	manifest, err := signature.LoadManifest(opts.SignaturesFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSettings, err)
	}
	classifier := signature.NewClassifier(manifest)

	report := &ClassifyReport{Files: make([]Classification, 0, len(files))}
	for _, file := range files {
		if err := checkpoint(ctx); err != nil {
			return report, err
		}
		raw, err := safeio.ReadInput(file)
		if err != nil {
			return report, inputErr(err)
		}
		doc, err := markup.Parse(string(raw))
		if err != nil {
			return report, inputErr(fmt.Errorf("parse %s: %w", file, err))
		}
		result := classifier.Classify(doc)
		logger.Debug("file classified",
			logger.String("file", file),
			logger.String("template", result.TemplateID),
			logger.Float("confidence", result.Confidence))
		report.Files = append(report.Files, Classification{
			File:      file,
			StyleName: catalog.StyleName(result.TemplateID),
			Result:    result,
		})
	}
	return report, nil
}
