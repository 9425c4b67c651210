package model

import "github.com/goliatone/go-hypermedia/pkg/links"

// Builder accumulates entities and links into a single entity model or a
// collection model. It is not safe for concurrent use.
type Builder struct {
	entities   []any
	collection bool
	links      links.Links
}

// NewBuilder returns an empty, format-neutral builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Entity appends value. A single Entity call builds an entity model; two or
// more build a collection. A lone *Model value is returned as a copy carrying
// the builder's links. Builder values are built along with b.
func (b *Builder) Entity(value any) *Builder {
	b.entities = append(b.entities, value)
	return b
}

// Entities appends values and forces collection mode, even for one value or
// none.
func (b *Builder) Entities(values ...any) *Builder {
	b.entities = append(b.entities, values...)
	b.collection = true
	return b
}

// Link appends a top-level link.
func (b *Builder) Link(link links.Link) *Builder {
	b.links = append(b.links, link)
	return b
}

// Links appends top-level links in order.
func (b *Builder) Links(ls ...links.Link) *Builder {
	b.links = append(b.links, ls...)
	return b
}

// Build snapshots the current state. The builder stays usable; later
// mutations only show up in later Build calls.
func (b *Builder) Build() *Model {
	return buildPlain(b.entities, b.collection, b.links)
}

func buildPlain(entities []any, collection bool, ls links.Links) *Model {
	entities = cloneValues(entities)
	for i, entity := range entities {
		entities[i] = freeze(entity)
	}
	switch {
	case collection || len(entities) > 1:
		return &Model{kind: KindCollection, items: entities, links: ls.Clone()}
	case len(entities) == 1:
		if nested, ok := entities[0].(*Model); ok && nested != nil {
			return nested.withLinks(ls)
		}
		return &Model{kind: KindEntity, content: entities[0], links: ls.Clone()}
	default:
		return &Model{kind: KindEmpty, links: ls.Clone()}
	}
}

// Source produces a model on demand. *Builder and *HalBuilder implement it.
type Source interface {
	Build() *Model
}

// freeze replaces builder values with the model they currently build.
func freeze(value any) any {
	switch v := value.(type) {
	case *Builder:
		if v == nil {
			return nil
		}
		return v.Build()
	case *HalBuilder:
		if v == nil {
			return nil
		}
		return v.Build()
	case Source:
		return v.Build()
	}
	return value
}
