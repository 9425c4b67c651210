// Package hal renders models as HAL documents (application/hal+json).
//
// Entity fields come first, then _embedded, then _links. Relations and embeds
// are emitted in insertion order. A relation with one link renders as an
// object and with several as an array, unless configured otherwise.
package hal

import (
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-hypermedia/internal/jsonutil"
	"github.com/goliatone/go-hypermedia/pkg/links"
	"github.com/goliatone/go-hypermedia/pkg/messages"
	"github.com/goliatone/go-hypermedia/pkg/model"
	"github.com/goliatone/go-hypermedia/pkg/relations"
	"github.com/goliatone/go-hypermedia/pkg/render"
)

const (
	linksKey    = "_links"
	embeddedKey = "_embedded"
)

// Renderer serializes models into HAL.
type Renderer struct {
	relations          relations.Provider
	curies             relations.CurieProvider
	messages           messages.Resolver
	singleLinksAsArray bool
	arrayRelations     map[links.Relation]struct{}
	indent             string
}

var _ render.Renderer = (*Renderer)(nil)

// Option configures the HAL renderer.
type Option func(*Renderer)

// WithRelationProvider sets the provider naming collection item relations.
func WithRelationProvider(provider relations.Provider) Option {
	return func(r *Renderer) {
		if provider != nil {
			r.relations = provider
		}
	}
}

// WithCurieProvider namespaces extension relations and publishes curies.
func WithCurieProvider(provider relations.CurieProvider) Option {
	return func(r *Renderer) {
		if provider != nil {
			r.curies = provider
		}
	}
}

// WithMessageResolver resolves titles for links that carry none.
func WithMessageResolver(resolver messages.Resolver) Option {
	return func(r *Renderer) {
		if resolver != nil {
			r.messages = resolver
		}
	}
}

// WithSingleLinksAsArray renders every relation as an array of links.
func WithSingleLinksAsArray(enabled bool) Option {
	return func(r *Renderer) {
		r.singleLinksAsArray = enabled
	}
}

// WithArrayRelations renders the given relations as arrays even when they
// hold a single link.
func WithArrayRelations(rels ...links.Relation) Option {
	return func(r *Renderer) {
		for _, rel := range rels {
			r.arrayRelations[rel] = struct{}{}
		}
	}
}

// WithIndent pretty prints output using indent per level.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

// New returns a HAL renderer with default relation naming, no curies and
// defaults-only messages.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		relations:      relations.Default(),
		curies:         relations.NoCuries,
		messages:       messages.DefaultsOnly,
		arrayRelations: make(map[links.Relation]struct{}),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Format returns render.HAL.
func (r *Renderer) Format() render.Format { return render.HAL }

// Render serializes m as a HAL document.
func (r *Renderer) Render(m *model.Model) ([]byte, error) {
	if m == nil {
		return nil, render.ErrNilModel
	}
	doc, err := r.node(m, true)
	if err != nil {
		return nil, err
	}
	return jsonutil.Encode(doc, r.indent)
}

func (r *Renderer) node(m *model.Model, root bool) (jsonutil.Object, error) {
	var (
		doc      jsonutil.Object
		embedded jsonutil.Object
		err      error
	)
	switch m.Kind() {
	case model.KindEntity:
		doc, err = r.value(m.Content())
		if err != nil {
			return nil, err
		}
	case model.KindCollection:
		embedded, err = r.collection(m.Items())
		if err != nil {
			return nil, err
		}
	case model.KindEmbedded:
		embedded, err = r.embeds(m.Embeds())
		if err != nil {
			return nil, err
		}
	}
	if doc == nil {
		doc = jsonutil.Object{}
	}
	if len(embedded) > 0 {
		if err := doc.Set(embeddedKey, embedded); err != nil {
			return nil, err
		}
	}
	linkObj, err := r.links(m.Links(), root && r.curied(m))
	if err != nil {
		return nil, err
	}
	if len(linkObj) > 0 {
		if err := doc.Set(linksKey, linkObj); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// value renders an entity or a nested model as an object.
func (r *Renderer) value(v any) (jsonutil.Object, error) {
	if nested, ok := v.(*model.Model); ok {
		if nested == nil {
			return jsonutil.Object{}, nil
		}
		return r.node(nested, false)
	}
	fields, ok, err := jsonutil.Fields(v)
	if err != nil {
		return nil, fmt.Errorf("hal: encode %T: %w", v, err)
	}
	if !ok {
		return nil, render.Mismatch(render.HAL, fmt.Sprintf("entity of type %T does not encode as a JSON object", v))
	}
	var keep []string
	if keeper, ok := v.(render.NullFieldKeeper); ok {
		keep = keeper.KeepNullFields()
	}
	return fields.WithoutNulls(keep...), nil
}

func (r *Renderer) collection(items []any) (jsonutil.Object, error) {
	var (
		order  []links.Relation
		groups = make(map[links.Relation][]jsonutil.Object)
	)
	for _, item := range items {
		rel := r.curies.Namespace(r.relations.CollectionRelation(model.Unwrap(item)))
		obj, err := r.value(item)
		if err != nil {
			return nil, err
		}
		if _, ok := groups[rel]; !ok {
			order = append(order, rel)
		}
		groups[rel] = append(groups[rel], obj)
	}
	out := jsonutil.Object{}
	for _, rel := range order {
		if err := out.Set(string(rel), groups[rel]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *Renderer) embeds(entries []model.EmbedEntry) (jsonutil.Object, error) {
	out := jsonutil.Object{}
	for _, entry := range entries {
		rendered := make([]jsonutil.Object, 0, len(entry.Items))
		for _, value := range entry.Values() {
			obj, err := r.value(value)
			if err != nil {
				return nil, err
			}
			rendered = append(rendered, obj)
		}
		key := string(r.curies.Namespace(entry.Rel))
		var err error
		if entry.IsCollection() {
			err = out.Set(key, rendered)
		} else {
			err = out.Set(key, rendered[0])
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *Renderer) links(ls links.Links, withCuries bool) (jsonutil.Object, error) {
	out := jsonutil.Object{}
	for _, rel := range ls.Relations() {
		key := r.curies.Namespace(rel)
		group := ls.All(rel)
		for i := range group {
			group[i] = r.titled(group[i])
		}
		var (
			raw json.RawMessage
			err error
		)
		if len(group) == 1 && !r.asArray(rel) {
			raw, err = json.Marshal(group[0])
		} else {
			raw, err = json.Marshal([]links.Link(group))
		}
		if err != nil {
			return nil, err
		}
		out.SetRaw(string(key), raw)
	}
	if withCuries {
		curies := r.curies.Curies()
		if len(curies) > 0 {
			raw, err := json.Marshal([]links.Link(curies))
			if err != nil {
				return nil, err
			}
			out = append(jsonutil.Object{{Key: string(relations.CuriesRelation), Value: raw}}, out...)
		}
	}
	return out, nil
}

// curied reports whether any relation of m's top level gets namespaced.
func (r *Renderer) curied(m *model.Model) bool {
	rels := append(m.Links().Relations(), m.EmbeddedRelations()...)
	for _, item := range m.Items() {
		rels = append(rels, r.relations.CollectionRelation(model.Unwrap(item)))
	}
	for _, rel := range rels {
		if r.curies.Namespace(rel) != rel {
			return true
		}
	}
	return false
}

func (r *Renderer) asArray(rel links.Relation) bool {
	if r.singleLinksAsArray {
		return true
	}
	_, ok := r.arrayRelations[rel]
	return ok
}

func (r *Renderer) titled(l links.Link) links.Link {
	if l.Title != "" {
		return l
	}
	if title := r.messages.Resolve([]string{messages.LinkTitleCode(string(l.Rel))}, ""); title != "" {
		return l.WithTitle(title)
	}
	return l
}
