// Package uber renders models as UBER documents
// (application/vnd.amundsen-uber+json).
//
// Links sharing an href collapse into one data element carrying every
// relation. Entity properties become named data elements. Like
// Collection+JSON, the format has no slot for embeds under several relations,
// so such models are rejected.
package uber

import (
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-hypermedia/internal/jsonutil"
	"github.com/goliatone/go-hypermedia/pkg/links"
	"github.com/goliatone/go-hypermedia/pkg/model"
	"github.com/goliatone/go-hypermedia/pkg/relations"
	"github.com/goliatone/go-hypermedia/pkg/render"
)

// Version is the UBER version emitted.
const Version = "1.0"

type document struct {
	Uber body `json:"uber"`
}

type body struct {
	Version string  `json:"version"`
	Data    []datum `json:"data,omitempty"`
}

type datum struct {
	Name      string          `json:"name,omitempty"`
	Rel       []string        `json:"rel,omitempty"`
	URL       string          `json:"url,omitempty"`
	Templated bool            `json:"templated,omitempty"`
	Label     string          `json:"label,omitempty"`
	Value     json.RawMessage `json:"value,omitempty"`
	Data      []datum         `json:"data,omitempty"`
}

// Renderer serializes models into UBER.
type Renderer struct {
	relations relations.Provider
	indent    string
}

var _ render.Renderer = (*Renderer)(nil)

// Option configures the renderer.
type Option func(*Renderer)

// WithRelationProvider sets the provider naming entity data elements.
func WithRelationProvider(provider relations.Provider) Option {
	return func(r *Renderer) {
		if provider != nil {
			r.relations = provider
		}
	}
}

// WithIndent pretty prints output using indent per level.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

// New returns an UBER renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{relations: relations.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Format returns render.Uber.
func (r *Renderer) Format() render.Format { return render.Uber }

// Render serializes m or rejects shapes the format cannot express.
func (r *Renderer) Render(m *model.Model) ([]byte, error) {
	if err := render.RequireFlatEmbeds(render.Uber, m); err != nil {
		return nil, err
	}
	data, err := r.model(m)
	if err != nil {
		return nil, err
	}
	return jsonutil.Encode(document{Uber: body{Version: Version, Data: data}}, r.indent)
}

func (r *Renderer) model(m *model.Model) ([]datum, error) {
	data := convertLinks(m.Links())
	switch m.Kind() {
	case model.KindEntity:
		entity, err := r.entity(m.Content())
		if err != nil {
			return nil, err
		}
		data = append(data, entity...)
	case model.KindCollection:
		for _, item := range m.Items() {
			inner, err := r.item(item)
			if err != nil {
				return nil, err
			}
			data = append(data, datum{Data: inner})
		}
	case model.KindEmbedded:
		for _, entry := range m.Embeds() {
			group := datum{Name: string(entry.Rel)}
			for _, value := range entry.Values() {
				inner, err := r.item(value)
				if err != nil {
					return nil, err
				}
				group.Data = append(group.Data, datum{Data: inner})
			}
			data = append(data, group)
		}
	}
	return data, nil
}

func (r *Renderer) item(value any) ([]datum, error) {
	if nested, ok := value.(*model.Model); ok {
		if nested == nil {
			return nil, nil
		}
		return r.model(nested)
	}
	return r.entity(value)
}

// entity renders content as a single data element named after its item
// relation. Objects expand into one element per field, anything else becomes
// the element value.
func (r *Renderer) entity(value any) ([]datum, error) {
	if nested, ok := value.(*model.Model); ok {
		return r.item(nested)
	}
	name := string(r.relations.ItemRelation(value))
	fields, ok, err := jsonutil.Fields(value)
	if err != nil {
		return nil, fmt.Errorf("uber: encode %T: %w", value, err)
	}
	if !ok {
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("uber: encode %T: %w", value, err)
		}
		if jsonutil.IsNull(raw) {
			return nil, nil
		}
		return []datum{{Name: name, Value: raw}}, nil
	}
	var keep []string
	if keeper, ok := value.(render.NullFieldKeeper); ok {
		keep = keeper.KeepNullFields()
	}
	out := datum{Name: name}
	for _, f := range fields.WithoutNulls(keep...) {
		out.Data = append(out.Data, datum{Name: f.Key, Value: f.Value})
	}
	return []datum{out}, nil
}

// convertLinks merges links pointing at the same href, keeping the order in
// which each href first appears.
func convertLinks(ls links.Links) []datum {
	var (
		out      []datum
		position = make(map[string]int)
	)
	for _, l := range ls {
		if idx, ok := position[l.Href]; ok {
			out[idx].Rel = append(out[idx].Rel, string(l.Rel))
			out[idx].Templated = out[idx].Templated || l.Templated
			if out[idx].Label == "" {
				out[idx].Label = l.Title
			}
			continue
		}
		position[l.Href] = len(out)
		out = append(out, datum{
			Name:      string(l.Rel),
			Rel:       []string{string(l.Rel)},
			URL:       l.Href,
			Templated: l.Templated,
			Label:     l.Title,
		})
	}
	return out
}
