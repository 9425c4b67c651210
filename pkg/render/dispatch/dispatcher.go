// Package dispatch routes a built model to the renderer for an explicitly
// chosen format. The set of formats is closed: HAL, Collection+JSON and UBER.
package dispatch

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-hypermedia/pkg/interfaces/logger"
	"github.com/goliatone/go-hypermedia/pkg/links"
	"github.com/goliatone/go-hypermedia/pkg/metrics"
	"github.com/goliatone/go-hypermedia/pkg/model"
	"github.com/goliatone/go-hypermedia/pkg/render"
	"github.com/goliatone/go-hypermedia/pkg/render/collectionjson"
	"github.com/goliatone/go-hypermedia/pkg/render/hal"
	"github.com/goliatone/go-hypermedia/pkg/render/uber"
)

// ErrUnsupportedFormat is returned for formats outside render.Formats.
var ErrUnsupportedFormat = render.ErrUnsupportedFormat

// Dependencies groups the collaborators of a Dispatcher. Renderers replace
// the default renderer of their format; formats left out use defaults.
type Dependencies struct {
	Renderers []render.Renderer
	Logger    logger.Logger
	Metrics   metrics.Recorder
}

// Dispatcher renders models in one of the supported formats.
type Dispatcher struct {
	renderers map[render.Format]render.Renderer
	logger    logger.Logger
	metrics   metrics.Recorder
}

// New builds a dispatcher.
func New(deps Dependencies) (*Dispatcher, error) {
	if deps.Logger == nil {
		deps.Logger = &logger.Nop{}
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.Nop
	}
	d := &Dispatcher{
		renderers: map[render.Format]render.Renderer{
			render.HAL:            hal.New(),
			render.CollectionJSON: collectionjson.New(),
			render.Uber:           uber.New(),
		},
		logger:  deps.Logger,
		metrics: deps.Metrics,
	}
	for _, r := range deps.Renderers {
		if r == nil {
			continue
		}
		if _, ok := d.renderers[r.Format()]; !ok {
			return nil, fmt.Errorf("dispatch: renderer for %q: %w", r.Format(), ErrUnsupportedFormat)
		}
		d.renderers[r.Format()] = r
	}
	return d, nil
}

// Renderer returns the renderer registered for format.
func (d *Dispatcher) Renderer(format render.Format) (render.Renderer, error) {
	r, ok := d.renderers[format]
	if !ok {
		return nil, fmt.Errorf("dispatch: %q: %w", format, ErrUnsupportedFormat)
	}
	return r, nil
}

// Render serializes m in format. Structural mismatches are returned
// unchanged so callers can match *render.StructuralMismatchError.
func (d *Dispatcher) Render(format render.Format, m *model.Model) ([]byte, error) {
	start := time.Now()
	out, err := d.render(format, m)
	label := format
	if _, ok := d.renderers[format]; !ok {
		label = metrics.UnsupportedFormat
	}
	d.metrics.ObserveRender(label, metrics.Outcome(err), time.Since(start), len(out))

	fields := []logger.Field{
		logger.F("format", string(format)),
		logger.F("kind", m.Kind().String()),
	}
	if self, ok := m.Link(links.Self); ok {
		fields = append(fields, logger.F("self", MaskHref(self.Href)))
	}
	var mismatch *render.StructuralMismatchError
	switch {
	case err == nil:
		d.logger.Debug("dispatch: rendered", append(fields, logger.F("bytes", len(out)))...)
	case errors.As(err, &mismatch):
		d.logger.Warn("dispatch: model rejected", append(fields,
			logger.F("reason", mismatch.Reason),
			logger.F("relations", relationNames(mismatch.Relations)),
		)...)
	default:
		d.logger.Error("dispatch: render failed", append(fields, logger.F("error", err))...)
	}
	return out, err
}

func (d *Dispatcher) render(format render.Format, m *model.Model) ([]byte, error) {
	r, err := d.Renderer(format)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, render.ErrNilModel
	}
	return r.Render(m)
}

// RenderTo renders m and writes the document to w. Nothing is written when
// rendering fails.
func (d *Dispatcher) RenderTo(w io.Writer, format render.Format, m *model.Model) error {
	out, err := d.Render(format, m)
	if err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("dispatch: write: %w", err)
	}
	return nil
}

// Negotiate picks the supported format with the highest quality in an
// Accept header value. Ties go to the earliest entry. An entry with q=0
// refuses its format, and wildcards select the first format of
// render.Formats that was not refused.
func (d *Dispatcher) Negotiate(accept string) (render.Format, error) {
	type candidate struct {
		format   render.Format
		wildcard bool
		q        float64
	}
	var (
		candidates []candidate
		refused    = map[render.Format]bool{}
	)
	for _, part := range strings.Split(accept, ",") {
		media, q := mediaRange(part)
		switch media {
		case "":
			continue
		case "*/*", "application/*", "application/json":
			candidates = append(candidates, candidate{wildcard: true, q: q})
			continue
		}
		format, err := render.ParseFormat(media)
		if err != nil {
			continue
		}
		if _, ok := d.renderers[format]; !ok {
			continue
		}
		if q == 0 {
			refused[format] = true
		}
		candidates = append(candidates, candidate{format: format, q: q})
	}

	var (
		best  render.Format
		bestQ float64
	)
	for _, c := range candidates {
		if c.wildcard {
			for _, format := range render.Formats() {
				if !refused[format] {
					c.format = format
					break
				}
			}
		}
		if c.format == "" || refused[c.format] || c.q <= bestQ {
			continue
		}
		best, bestQ = c.format, c.q
	}
	if best == "" {
		return "", fmt.Errorf("dispatch: accept %q: %w", accept, ErrUnsupportedFormat)
	}
	return best, nil
}

// mediaRange splits an Accept entry into its media type and quality.
// A malformed q refuses the entry.
func mediaRange(part string) (string, float64) {
	params := strings.Split(part, ";")
	media := strings.ToLower(strings.TrimSpace(params[0]))
	q := 1.0
	for _, param := range params[1:] {
		key, value, ok := strings.Cut(strings.TrimSpace(param), "=")
		if !ok || !strings.EqualFold(strings.TrimSpace(key), "q") {
			continue
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || parsed < 0 || parsed > 1 {
			return media, 0
		}
		q = parsed
	}
	return media, q
}

func relationNames(rels []links.Relation) string {
	names := make([]string, len(rels))
	for i, rel := range rels {
		names[i] = string(rel)
	}
	return strings.Join(names, ",")
}
