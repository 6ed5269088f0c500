package slots

import (
	"strings"

	"golang.org/x/net/html"
)

// Stats counts what Inject did.
type Stats struct {
	// Injected placeholders received a URL.
	Injected int `json:"injected"`
	// EmptySlots are placeholders whose slot list ran out.
	EmptySlots int `json:"empty_slots"`
	// Unmarked images carry no slot marker and were passed through.
	Unmarked int `json:"unmarked"`
}

type options struct {
	attribute string
}

// Option adjusts Inject and Extract.
type Option func(*options)

// WithAttribute sets the marker attribute. Empty names keep the default.
func WithAttribute(name string) Option {
	return func(o *options) {
		if name = strings.TrimSpace(name); name != "" {
			o.attribute = strings.ToLower(name)
		}
	}
}

func resolve(opts []Option) options {
	o := options{attribute: DefaultAttribute}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Inject fills slot placeholders in raw from m.
//
// The k-th placeholder of slot S gets m's k-th URL for S, replacing any
// existing src. Placeholders beyond the list are left alone. Every byte
// outside a rewritten <img> tag is copied unchanged.
func Inject(raw string, m *Map, opts ...Option) (string, Stats) {
	o := resolve(opts)
	var (
		out      strings.Builder
		stats    Stats
		counters = map[string]int{}
	)
	out.Grow(len(raw))

	z := html.NewTokenizer(strings.NewReader(raw))
	for {
		tt := z.Next()
		// TagName and TagAttr lower-case the buffer in place, so copy first.
		tok := string(z.Raw())
		if tt == html.ErrorToken {
			out.WriteString(tok)
			break
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			out.WriteString(tok)
			continue
		}
		name, hasAttr := z.TagName()
		if !isImageTag(string(name)) {
			out.WriteString(tok)
			continue
		}
		nameEnd := 1 + len(name)
		slot := ""
		for hasAttr {
			var key, val []byte
			key, val, hasAttr = z.TagAttr()
			if string(key) == o.attribute {
				slot = strings.TrimSpace(string(val))
				break
			}
		}
		if slot == "" {
			stats.Unmarked++
			out.WriteString(tok)
			continue
		}

		k := counters[slot]
		counters[slot] = k + 1
		url, ok := m.At(slot, k)
		if !ok || url == "" {
			stats.EmptySlots++
			out.WriteString(tok)
			continue
		}
		stats.Injected++
		out.WriteString(setSrc(tok, nameEnd, url))
	}
	return out.String(), stats
}

// isImageTag reports whether a start tag is a placeholder candidate. The
// HTML parser rewrites <image> to <img>, so both count.
func isImageTag(name string) bool {
	return name == "img" || name == "image"
}

// setSrc replaces the src attribute of a raw image tag, or adds one right
// after the tag name, which ends at byte nameEnd.
func setSrc(tag string, nameEnd int, url string) string {
	attr := `src="` + html.EscapeString(url) + `"`
	if start, end, ok := attrSpan(tag, nameEnd, "src"); ok {
		return tag[:start] + attr + tag[end:]
	}
	return tag[:nameEnd] + " " + attr + tag[nameEnd:]
}

// attrSpan returns the byte range of the first attribute called name in a
// raw start tag, value included. Attributes start at byte from.
func attrSpan(tag string, from int, name string) (int, int, bool) {
	n := len(tag)
	i := from
	for i < n {
		for i < n && (isSpace(tag[i]) || tag[i] == '/') {
			i++
		}
		if i >= n || tag[i] == '>' {
			return 0, 0, false
		}
		start := i
		for i < n && !isSpace(tag[i]) && tag[i] != '=' && tag[i] != '>' && tag[i] != '/' {
			i++
		}
		if i == start {
			// a leading '=' belongs to the name
			i++
		}
		key := strings.ToLower(tag[start:i])
		end := i

		j := i
		for j < n && isSpace(tag[j]) {
			j++
		}
		if j < n && tag[j] == '=' {
			j++
			for j < n && isSpace(tag[j]) {
				j++
			}
			switch {
			case j < n && (tag[j] == '"' || tag[j] == '\''):
				if k := strings.IndexByte(tag[j+1:], tag[j]); k >= 0 {
					end = j + 1 + k + 1
				} else {
					end = n
				}
			default:
				end = j
				for end < n && !isSpace(tag[end]) && tag[end] != '>' {
					end++
				}
			}
			i = end
		}
		if key == name {
			return start, end, true
		}
	}
	return 0, 0, false
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}
