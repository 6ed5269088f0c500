// Package markup wraps golang.org/x/net/html with the small set of queries
// the classifier, the slot reconciler and the content extractor share: class
// vocabularies, attribute access, text collection and predicate searches.
//
// The package never enforces document grammar. Malformed markup is parsed
// with the HTML5 error-recovery rules and queried as-is.
package markup

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Document is a parsed markup document together with its raw source.
type Document struct {
	raw     string
	root    *html.Node
	lower   string
	classes []string
}

// Parse builds a Document from raw markup.
func Parse(raw string) (*Document, error) {
	root, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse markup: %w", err)
	}
	return &Document{raw: raw, root: root}, nil
}

// Raw returns the unmodified source.
func (d *Document) Raw() string { return d.raw }

// Root returns the document node.
func (d *Document) Root() *html.Node { return d.root }

// LowerText returns the lower-cased raw source, markup included.
func (d *Document) LowerText() string {
	if d.lower == "" && d.raw != "" {
		d.lower = strings.ToLower(d.raw)
	}
	return d.lower
}

// ClassTokens returns the distinct lower-cased class tokens of every element,
// in first-seen document order.
func (d *Document) ClassTokens() []string {
	if d.classes != nil {
		return d.classes
	}
	seen := make(map[string]struct{})
	tokens := []string{}
	Walk(d.root, func(n *html.Node) bool {
		for _, cls := range Classes(n) {
			cls = strings.ToLower(cls)
			if _, ok := seen[cls]; ok {
				continue
			}
			seen[cls] = struct{}{}
			tokens = append(tokens, cls)
		}
		return true
	})
	d.classes = tokens
	return tokens
}

// Walk visits n and its descendants in document order. Returning false from
// fn skips the children of the visited node.
func Walk(n *html.Node, fn func(*html.Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		Walk(c, fn)
	}
}

// Attr returns the value of the named attribute.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}

// AttrOr returns the named attribute or fallback when absent.
func AttrOr(n *html.Node, key, fallback string) string {
	if v, ok := Attr(n, key); ok {
		return v
	}
	return fallback
}

// Classes splits the class attribute of an element node.
func Classes(n *html.Node) []string {
	if n == nil || n.Type != html.ElementNode {
		return nil
	}
	v, ok := Attr(n, "class")
	if !ok {
		return nil
	}
	return strings.Fields(v)
}

// IsElement reports whether n is an element with one of the given tag names.
func IsElement(n *html.Node, tags ...string) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	if len(tags) == 0 {
		return true
	}
	for _, t := range tags {
		if n.Data == t {
			return true
		}
	}
	return false
}

// Predicate selects nodes during a search.
type Predicate func(*html.Node) bool

// Tag matches elements by tag name.
func Tag(tags ...string) Predicate {
	return func(n *html.Node) bool { return IsElement(n, tags...) }
}

// ClassMatches matches elements carrying at least one class token the
// expression finds a match in.
func ClassMatches(re *regexp.Regexp) Predicate {
	return func(n *html.Node) bool {
		for _, cls := range Classes(n) {
			if re.MatchString(cls) {
				return true
			}
		}
		return false
	}
}

// And combines predicates.
func And(preds ...Predicate) Predicate {
	return func(n *html.Node) bool {
		for _, p := range preds {
			if !p(n) {
				return false
			}
		}
		return true
	}
}

// Find returns the first descendant of n (n excluded) matching pred.
func Find(n *html.Node, pred Predicate) *html.Node {
	var found *html.Node
	for c := firstChild(n); c != nil && found == nil; c = c.NextSibling {
		Walk(c, func(x *html.Node) bool {
			if found != nil {
				return false
			}
			if pred(x) {
				found = x
				return false
			}
			return true
		})
	}
	return found
}

// FindAll returns every descendant of n (n excluded) matching pred, in
// document order.
func FindAll(n *html.Node, pred Predicate) []*html.Node {
	var out []*html.Node
	for c := firstChild(n); c != nil; c = c.NextSibling {
		Walk(c, func(x *html.Node) bool {
			if pred(x) {
				out = append(out, x)
			}
			return true
		})
	}
	return out
}

// Children returns the direct element children of n matching pred.
func Children(n *html.Node, pred Predicate) []*html.Node {
	var out []*html.Node
	for c := firstChild(n); c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && pred(c) {
			out = append(out, c)
		}
	}
	return out
}

func firstChild(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	return n.FirstChild
}

// Text returns the text content of n, whitespace collapsed to single spaces.
// Script and style bodies are skipped.
func Text(n *html.Node) string {
	var parts []string
	Walk(n, func(x *html.Node) bool {
		if x.Type == html.ElementNode && (x.Data == "script" || x.Data == "style") {
			return false
		}
		if x.Type == html.TextNode {
			if f := strings.Fields(x.Data); len(f) > 0 {
				parts = append(parts, strings.Join(f, " "))
			}
		}
		return true
	})
	return strings.Join(parts, " ")
}

// RawText returns the concatenated text children of n without trimming.
// Used for style bodies.
func RawText(n *html.Node) string {
	var sb strings.Builder
	for c := firstChild(n); c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return sb.String()
}
