package model

import "github.com/goliatone/go-hypermedia/pkg/links"

// Kind describes the shape of a model node.
type Kind int

const (
	// KindEmpty carries links only.
	KindEmpty Kind = iota
	// KindEntity carries a single entity.
	KindEntity
	// KindCollection carries an ordered list of entities.
	KindCollection
	// KindEmbedded carries embeds keyed by relation.
	KindEmbedded
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindEntity:
		return "entity"
	case KindCollection:
		return "collection"
	case KindEmbedded:
		return "embedded"
	default:
		return "unknown"
	}
}

// Model is an immutable representation node. Accessors return copies.
type Model struct {
	kind    Kind
	content any
	items   []any
	links   links.Links
	embeds  []EmbedEntry
}

// Of returns an entity model for content with the given links.
func Of(content any, ls ...links.Link) *Model {
	return &Model{kind: KindEntity, content: content, links: links.Links(ls).Clone()}
}

// CollectionOf returns a collection model over items with the given links.
func CollectionOf(items []any, ls ...links.Link) *Model {
	return &Model{kind: KindCollection, items: cloneValues(items), links: links.Links(ls).Clone()}
}

// Empty returns a model carrying only links.
func Empty(ls ...links.Link) *Model {
	return &Model{kind: KindEmpty, links: links.Links(ls).Clone()}
}

// Kind reports the node shape.
func (m *Model) Kind() Kind {
	if m == nil {
		return KindEmpty
	}
	return m.kind
}

// Content returns the entity of an entity model, nil otherwise.
func (m *Model) Content() any {
	if m == nil {
		return nil
	}
	return m.content
}

// Items returns a copy of a collection model's entities.
func (m *Model) Items() []any {
	if m == nil {
		return nil
	}
	return cloneValues(m.items)
}

// Links returns a copy of the model's links.
func (m *Model) Links() links.Links {
	if m == nil {
		return nil
	}
	return m.links.Clone()
}

// Link returns the first link with rel.
func (m *Model) Link(rel links.Relation) (links.Link, bool) {
	if m == nil {
		return links.Link{}, false
	}
	return m.links.Find(rel)
}

// RequiredLink returns the first link with rel or a *links.MissingLinkError.
func (m *Model) RequiredLink(rel links.Relation) (links.Link, error) {
	if m == nil {
		return links.Link{}, &links.MissingLinkError{Rel: rel}
	}
	return m.links.Required(rel)
}

// Embeds returns a copy of the embed entries in insertion order.
func (m *Model) Embeds() []EmbedEntry {
	if m == nil || len(m.embeds) == 0 {
		return nil
	}
	out := make([]EmbedEntry, len(m.embeds))
	for i, entry := range m.embeds {
		out[i] = entry.clone()
	}
	return out
}

// HasEmbeds reports whether the model carries any embed entry.
func (m *Model) HasEmbeds() bool {
	return m != nil && len(m.embeds) > 0
}

// EmbeddedRelations lists the embed relations in insertion order.
func (m *Model) EmbeddedRelations() []links.Relation {
	if m == nil {
		return nil
	}
	out := make([]links.Relation, len(m.embeds))
	for i, entry := range m.embeds {
		out[i] = entry.Rel
	}
	return out
}

// Unwrap returns the entity behind m when m is an entity model, descending
// through nested entity models. Used to derive relations from content types.
func Unwrap(value any) any {
	for {
		nested, ok := value.(*Model)
		if !ok || nested == nil || nested.kind != KindEntity {
			return value
		}
		value = nested.content
	}
}

func (m *Model) withLinks(extra links.Links) *Model {
	out := &Model{
		kind:    m.kind,
		content: m.content,
		items:   cloneValues(m.items),
		links:   append(m.links.Clone(), extra...),
		embeds:  m.Embeds(),
	}
	return out
}

func cloneValues(values []any) []any {
	if values == nil {
		return nil
	}
	out := make([]any, len(values))
	copy(out, values)
	return out
}
