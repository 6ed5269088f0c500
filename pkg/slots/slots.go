// Package slots reconciles named image slots between a page config and the
// placeholders of a markup document.
//
// Within a slot, position N of the config's URL list belongs to the N-th
// placeholder of that slot in document order. Inject fills placeholders from
// a Map; Extract reads images back and Group turns them into a Map again.
package slots

import "fmt"

// DefaultAttribute is the marker attribute that names a placeholder's slot.
const DefaultAttribute = "data-slot"

// Kind tells how an image came to belong to a slot.
type Kind int

const (
	Unassigned Kind = iota
	Explicit
	Inferred
)

func (k Kind) String() string {
	switch k {
	case Explicit:
		return "explicit"
	case Inferred:
		return "inferred"
	default:
		return "unassigned"
	}
}

// Ref is the slot an image belongs to. The zero value is Unassigned.
type Ref struct {
	kind Kind
	name string
}

// ExplicitSlot is a slot named by a marker attribute in the markup.
func ExplicitSlot(name string) Ref { return Ref{kind: Explicit, name: name} }

// InferredSlot is a slot guessed from class names.
func InferredSlot(name string) Ref { return Ref{kind: Inferred, name: name} }

func (r Ref) Kind() Kind     { return r.kind }
func (r Ref) Name() string   { return r.name }
func (r Ref) Assigned() bool { return r.kind != Unassigned }

func (r Ref) String() string {
	switch r.kind {
	case Explicit:
		return r.name
	case Inferred:
		return fmt.Sprintf("%s (inferred)", r.name)
	default:
		return "unassigned"
	}
}

// Map holds ordered URL lists per slot. Slots keep the order in which they
// first received a URL. The zero value is ready to use.
type Map struct {
	order []string
	urls  map[string][]string
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{urls: map[string][]string{}}
}

// Add appends url to slot. Empty slot names and URLs are ignored.
func (m *Map) Add(slot, url string) {
	if slot == "" || url == "" {
		return
	}
	m.appendURL(slot, url)
}

// appendURL appends url to slot, keeping empty URLs as positional holes.
func (m *Map) appendURL(slot, url string) {
	if m.urls == nil {
		m.urls = map[string][]string{}
	}
	if _, ok := m.urls[slot]; !ok {
		m.order = append(m.order, slot)
	}
	m.urls[slot] = append(m.urls[slot], url)
}

// At returns the k-th URL of slot.
func (m *Map) At(slot string, k int) (string, bool) {
	if m == nil {
		return "", false
	}
	list := m.urls[slot]
	if k < 0 || k >= len(list) {
		return "", false
	}
	return list[k], true
}

// URLs returns a copy of the URL list of slot.
func (m *Map) URLs(slot string) []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.urls[slot]...)
}

// Slots returns the slot names in first-seen order.
func (m *Map) Slots() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.order...)
}

// Len returns the total number of URLs across all slots.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	n := 0
	for _, list := range m.urls {
		n += len(list)
	}
	return n
}

// ToMap returns a plain copy, handy for encoding and comparisons.
func (m *Map) ToMap() map[string][]string {
	out := map[string][]string{}
	if m == nil {
		return out
	}
	for slot, list := range m.urls {
		out[slot] = append([]string(nil), list...)
	}
	return out
}
