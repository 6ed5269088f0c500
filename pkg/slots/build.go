package slots

import "github.com/fulmenhq/pagesmith/pkg/pageconfig"

// binding ties a config field to the slot it feeds. When field is set, path
// names a sequence and field is read from each entry.
type binding struct {
	path  string
	field string
	slot  string
}

// Declaration order decides concatenation order within a slot.
var bindings = []binding{
	{path: "product.image", slot: "hero"},
	{path: "hero.image_url", slot: "hero"},
	{path: "immersive_section.image_url", slot: "immersive"},
	{path: "connected_sections", field: "image_url", slot: "step"},
	{path: "structured_sections", field: "image_url", slot: "section"},
	{path: "zigzag_sections", field: "image_url", slot: "section"},
	{path: "content_sections", field: "image_url", slot: "content"},
	{path: "gallery_images", field: "url", slot: "gallery"},
}

// BuildSlotMap collects every image URL of cfg into its slot.
func BuildSlotMap(cfg *pageconfig.Config) *Map {
	m := NewMap()
	if cfg == nil {
		return m
	}
	for _, b := range bindings {
		if b.field == "" {
			m.Add(b.slot, cfg.String(b.path))
			continue
		}
		for _, entry := range cfg.List(b.path) {
			m.Add(b.slot, pageconfig.Field(entry, b.field))
		}
	}
	return m
}
