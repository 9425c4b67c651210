package model

import "github.com/goliatone/go-hypermedia/pkg/links"

// EmbedKind tags an embedded value as the canonical resource or a preview.
type EmbedKind int

const (
	// Full marks a fully resolved embedded resource.
	Full EmbedKind = iota
	// Preview marks a partial, representative view of a resource.
	Preview
)

func (k EmbedKind) String() string {
	if k == Preview {
		return "preview"
	}
	return "full"
}

// Embedded is one value registered under an embed relation.
type Embedded struct {
	kind  EmbedKind
	value any
}

// Kind reports whether the value is a full embed or a preview.
func (e Embedded) Kind() EmbedKind { return e.kind }

// IsPreview reports whether the value was registered as a preview.
func (e Embedded) IsPreview() bool { return e.kind == Preview }

// Value returns the embedded entity or *Model.
func (e Embedded) Value() any { return e.value }

// EmbedEntry groups the values embedded under one relation.
type EmbedEntry struct {
	Rel        links.Relation
	Items      []Embedded
	collection bool
}

// IsCollection reports whether the entry renders as a list. Entries become
// collections when explicitly declared so or when they hold several values.
func (e EmbedEntry) IsCollection() bool {
	return e.collection || len(e.Items) != 1
}

// Values returns the embedded values in insertion order.
func (e EmbedEntry) Values() []any {
	out := make([]any, len(e.Items))
	for i, item := range e.Items {
		out[i] = item.value
	}
	return out
}

// HasPreview reports whether any value in the entry is a preview.
func (e EmbedEntry) HasPreview() bool {
	for _, item := range e.Items {
		if item.IsPreview() {
			return true
		}
	}
	return false
}

func (e EmbedEntry) clone() EmbedEntry {
	items := make([]Embedded, len(e.Items))
	copy(items, e.Items)
	return EmbedEntry{Rel: e.Rel, Items: items, collection: e.collection}
}
