// Package collectionjson renders models as Collection+JSON documents
// (application/vnd.collection+json).
//
// The format is a flat list of items, so models embedding under more than one
// relation, or nesting embeds, are rejected with a
// *render.StructuralMismatchError.
package collectionjson

import (
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-hypermedia/internal/jsonutil"
	"github.com/goliatone/go-hypermedia/pkg/links"
	"github.com/goliatone/go-hypermedia/pkg/model"
	"github.com/goliatone/go-hypermedia/pkg/render"
)

// Version is the Collection+JSON version emitted.
const Version = "1.0"

type document struct {
	Collection collection `json:"collection"`
}

type collection struct {
	Version string `json:"version"`
	Href    string `json:"href,omitempty"`
	Links   []link `json:"links,omitempty"`
	Items   []item `json:"items,omitempty"`
}

type item struct {
	Href  string  `json:"href,omitempty"`
	Data  []datum `json:"data,omitempty"`
	Links []link  `json:"links,omitempty"`
}

type datum struct {
	Name  string          `json:"name"`
	Value json.RawMessage `json:"value"`
}

type link struct {
	Rel    string `json:"rel"`
	Href   string `json:"href"`
	Name   string `json:"name,omitempty"`
	Prompt string `json:"prompt,omitempty"`
}

// Renderer serializes models into Collection+JSON.
type Renderer struct {
	indent string
}

var _ render.Renderer = (*Renderer)(nil)

// Option configures the renderer.
type Option func(*Renderer)

// WithIndent pretty prints output using indent per level.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

// New returns a Collection+JSON renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Format returns render.CollectionJSON.
func (r *Renderer) Format() render.Format { return render.CollectionJSON }

// Render serializes m or rejects shapes the format cannot express.
func (r *Renderer) Render(m *model.Model) ([]byte, error) {
	if err := render.RequireFlatEmbeds(render.CollectionJSON, m); err != nil {
		return nil, err
	}
	ls := m.Links()
	doc := document{Collection: collection{
		Version: Version,
		Links:   convertLinks(ls.Without(links.Self)),
	}}
	if self, ok := ls.Find(links.Self); ok {
		doc.Collection.Href = self.Href
	}

	var values []any
	switch m.Kind() {
	case model.KindEntity:
		entity, err := r.item(m.Content())
		if err != nil {
			return nil, err
		}
		if entity.Href, err = mergeHref(doc.Collection.Href, entity.Href); err != nil {
			return nil, err
		}
		doc.Collection.Items = []item{entity}
	case model.KindCollection:
		values = m.Items()
	case model.KindEmbedded:
		for _, entry := range m.Embeds() {
			values = append(values, entry.Values()...)
		}
	}
	for _, value := range values {
		entry, err := r.item(value)
		if err != nil {
			return nil, err
		}
		doc.Collection.Items = append(doc.Collection.Items, entry)
	}
	return jsonutil.Encode(doc, r.indent)
}

func (r *Renderer) item(value any) (item, error) {
	var out item
	if nested, ok := value.(*model.Model); ok {
		ls := nested.Links()
		if self, ok := ls.Find(links.Self); ok {
			out.Href = self.Href
		}
		out.Links = convertLinks(ls.Without(links.Self))
		if nested.Kind() != model.KindEntity {
			return out, nil
		}
		value = nested.Content()
		if _, ok := value.(*model.Model); ok {
			inner, err := r.item(value)
			if err != nil {
				return out, err
			}
			if out.Href, err = mergeHref(out.Href, inner.Href); err != nil {
				return out, err
			}
			out.Data = inner.Data
			out.Links = append(out.Links, inner.Links...)
			return out, nil
		}
	}
	fields, ok, err := jsonutil.Fields(value)
	if err != nil {
		return out, fmt.Errorf("collectionjson: encode %T: %w", value, err)
	}
	if !ok {
		return out, render.Mismatch(render.CollectionJSON, fmt.Sprintf("entity of type %T does not encode as a JSON object", value))
	}
	var keep []string
	if keeper, ok := value.(render.NullFieldKeeper); ok {
		keep = keeper.KeepNullFields()
	}
	for _, f := range fields.WithoutNulls(keep...) {
		out.Data = append(out.Data, datum{Name: f.Key, Value: f.Value})
	}
	return out, nil
}

// mergeHref folds the self href of a nested entity model into its wrapper.
// An item carries one href, so two different self links cannot be expressed.
func mergeHref(outer, inner string) (string, error) {
	switch {
	case inner == "" || inner == outer:
		return outer, nil
	case outer == "":
		return inner, nil
	default:
		return "", render.Mismatch(render.CollectionJSON,
			fmt.Sprintf("nested entity models with distinct self links %q and %q", outer, inner))
	}
}

func convertLinks(ls links.Links) []link {
	if len(ls) == 0 {
		return nil
	}
	out := make([]link, len(ls))
	for i, l := range ls {
		out[i] = link{Rel: string(l.Rel), Href: l.Href, Name: l.Name, Prompt: l.Title}
	}
	return out
}
