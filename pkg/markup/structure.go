package markup

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	imgTagRe  = regexp.MustCompile(`(?i)<img\b[^>]*>`)
	altAttrRe = regexp.MustCompile(`(?i)\salt\s*=`)
)

var ctaMarkers = []string{"cta", "call-to-action", "btn-primary", "button-primary", "get-started"}

// CheckStructure looks for the handful of elements every landing page is
// expected to carry and returns one advisory message per missing element.
// It is a presence check over the raw source, not a grammar check.
func CheckStructure(raw string) []string {
	lower := strings.ToLower(raw)
	var warnings []string
	missing := func(msg string) { warnings = append(warnings, msg) }

	if !strings.Contains(lower, "<!doctype html>") {
		missing("missing <!DOCTYPE html> declaration")
	}
	if !strings.Contains(lower, "<html") {
		missing("missing <html> element")
	}
	if !strings.Contains(lower, "<head") {
		missing("missing <head> element")
	}
	if !strings.Contains(lower, "<meta") && !strings.Contains(lower, "charset") {
		missing("add a <meta charset> declaration")
	}
	if !strings.Contains(lower, "<title") {
		missing("missing <title> element")
	}
	if !strings.Contains(lower, "viewport") {
		missing("missing viewport meta tag (affects mobile layout)")
	}
	if !strings.Contains(lower, "<nav") && !strings.Contains(lower, "navbar") {
		missing("no navigation bar detected (nav/navbar)")
	}
	if !strings.Contains(lower, "hero") {
		missing("no hero section detected")
	}
	if !containsAny(lower, ctaMarkers) {
		missing("no call-to-action button or section detected")
	}
	if !strings.Contains(lower, "<footer") {
		missing("missing <footer> element")
	}

	withoutAlt := 0
	for _, tag := range imgTagRe.FindAllString(raw, -1) {
		if !altAttrRe.MatchString(tag) {
			withoutAlt++
		}
	}
	if withoutAlt > 0 {
		missing(fmt.Sprintf("%d <img> element(s) without an alt attribute", withoutAlt))
	}
	return warnings
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
