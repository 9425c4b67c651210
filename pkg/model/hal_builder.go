package model

import (
	"github.com/goliatone/go-hypermedia/pkg/links"
	"github.com/goliatone/go-hypermedia/pkg/relations"
)

// HalBuilder extends Builder with embeds and previews keyed by relation. It
// is not safe for concurrent use.
type HalBuilder struct {
	entities   []any
	collection bool
	links      links.Links
	embeds     []*embedSlot
	index      map[links.Relation]*embedSlot
	relations  relations.Provider
}

type embedSlot struct {
	rel        links.Relation
	items      []Embedded
	collection bool
}

// HalOption configures a HalBuilder.
type HalOption func(*HalBuilder)

// WithRelationProvider sets the provider deriving relations for entities
// added without one.
func WithRelationProvider(provider relations.Provider) HalOption {
	return func(b *HalBuilder) {
		if provider != nil {
			b.relations = provider
		}
	}
}

// Hal returns an empty HAL-aware builder.
func Hal(opts ...HalOption) *HalBuilder {
	b := &HalBuilder{
		index:     make(map[links.Relation]*embedSlot),
		relations: relations.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Entity appends value. Without embeds it behaves like Builder.Entity; once
// embeds exist, entities are embedded under their derived collection relation.
func (b *HalBuilder) Entity(value any) *HalBuilder {
	b.entities = append(b.entities, value)
	return b
}

// Entities appends values and forces collection mode.
func (b *HalBuilder) Entities(values ...any) *HalBuilder {
	b.entities = append(b.entities, values...)
	b.collection = true
	return b
}

// Link appends a top-level link.
func (b *HalBuilder) Link(link links.Link) *HalBuilder {
	b.links = append(b.links, link)
	return b
}

// Links appends top-level links in order.
func (b *HalBuilder) Links(ls ...links.Link) *HalBuilder {
	b.links = append(b.links, ls...)
	return b
}

// Embed registers value under rel. Repeated calls for the same relation
// accumulate an ordered list. A *Builder or *HalBuilder value is built when
// this builder builds.
func (b *HalBuilder) Embed(rel links.Relation, value any) *HalBuilder {
	slot := b.slot(rel)
	slot.items = append(slot.items, Embedded{kind: Full, value: value})
	return b
}

// EmbedCollection registers values under rel as a list, even when there is
// only one value or none.
func (b *HalBuilder) EmbedCollection(rel links.Relation, values ...any) *HalBuilder {
	slot := b.slot(rel)
	slot.collection = true
	for _, value := range values {
		slot.items = append(slot.items, Embedded{kind: Full, value: value})
	}
	return b
}

// PreviewFor registers value under rel as a preview of the related resource.
// value may be an entity, a *Model or a builder. HAL renders previews like
// embeds; the tag stays on the model for renderers that treat them
// differently.
func (b *HalBuilder) PreviewFor(rel links.Relation, value any) *HalBuilder {
	slot := b.slot(rel)
	slot.items = append(slot.items, Embedded{kind: Preview, value: value})
	return b
}

// Build snapshots the current state into a model. Without embeds the result
// matches Builder.Build. With embeds, entities are embedded first under the
// collection relation derived from their type, then explicit embeds follow in
// insertion order; a derived relation equal to an explicit one shares its entry.
func (b *HalBuilder) Build() *Model {
	if len(b.embeds) == 0 {
		return buildPlain(b.entities, b.collection, b.links)
	}

	var entries []EmbedEntry
	position := make(map[links.Relation]int)
	add := func(rel links.Relation, items []Embedded, collection bool) {
		frozen := make([]Embedded, len(items))
		for i, item := range items {
			frozen[i] = Embedded{kind: item.kind, value: freeze(item.value)}
		}
		if idx, ok := position[rel]; ok {
			entries[idx].Items = append(entries[idx].Items, frozen...)
			entries[idx].collection = entries[idx].collection || collection
			return
		}
		position[rel] = len(entries)
		entries = append(entries, EmbedEntry{Rel: rel, Items: frozen, collection: collection})
	}
	for _, entity := range b.entities {
		value := freeze(entity)
		rel := b.relations.CollectionRelation(Unwrap(value))
		add(rel, []Embedded{{kind: Full, value: value}}, true)
	}
	for _, slot := range b.embeds {
		add(slot.rel, slot.items, slot.collection)
	}
	return &Model{kind: KindEmbedded, links: b.links.Clone(), embeds: entries}
}

func (b *HalBuilder) slot(rel links.Relation) *embedSlot {
	if slot, ok := b.index[rel]; ok {
		return slot
	}
	slot := &embedSlot{rel: rel}
	b.index[rel] = slot
	b.embeds = append(b.embeds, slot)
	return slot
}
