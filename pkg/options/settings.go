package options

import opts "github.com/goliatone/go-options"

// Paths of the render settings inside a snapshot payload.
const (
	PathFormat             = "render.format"
	PathIndent             = "render.indent"
	PathSingleLinksAsArray = "hal.single_links_as_array"
	PathArrayRelations     = "hal.array_relations"
)

var (
	// SystemScope holds settings derived from configuration.
	SystemScope = opts.NewScope("system", opts.ScopePrioritySystem, opts.WithScopeLabel("System"))
	// RequestScope holds per-call overrides and wins over SystemScope.
	RequestScope = opts.NewScope("request", opts.ScopePriorityUser, opts.WithScopeLabel("Request"))
)

// RenderSettings is the resolved set of knobs applied to a single render.
type RenderSettings struct {
	Format             string
	Indent             string
	SingleLinksAsArray bool
	ArrayRelations     []string
}

// Data returns the snapshot payload for s.
func (s RenderSettings) Data() map[string]any {
	rels := make([]any, len(s.ArrayRelations))
	for i, rel := range s.ArrayRelations {
		rels[i] = rel
	}
	return map[string]any{
		"render": map[string]any{
			"format": s.Format,
			"indent": s.Indent,
		},
		"hal": map[string]any{
			"single_links_as_array": s.SingleLinksAsArray,
			"array_relations":       rels,
		},
	}
}

// ResolveRenderSettings layers overrides, shaped like RenderSettings.Data,
// over base and returns the merged settings.
func ResolveRenderSettings(base RenderSettings, overrides map[string]any) (RenderSettings, error) {
	l, err := stack(base, overrides)
	if err != nil {
		return RenderSettings{}, err
	}

	var out RenderSettings
	if out.Format, err = l.str(PathFormat); err != nil {
		return RenderSettings{}, err
	}
	if out.Indent, err = l.str(PathIndent); err != nil {
		return RenderSettings{}, err
	}
	if out.SingleLinksAsArray, err = l.boolean(PathSingleLinksAsArray); err != nil {
		return RenderSettings{}, err
	}
	if out.ArrayRelations, err = l.strs(PathArrayRelations); err != nil {
		return RenderSettings{}, err
	}
	return out, nil
}
