package commands

import (
	command "github.com/goliatone/go-command"
	internalcommands "github.com/goliatone/go-hypermedia/internal/commands"
	"github.com/goliatone/go-hypermedia/pkg/interfaces/logger"
	"github.com/goliatone/go-hypermedia/pkg/model"
	"github.com/goliatone/go-hypermedia/pkg/render"
)

// Re-export request types so consumers need not import internal packages.
type (
	RenderModel = internalcommands.RenderModel
	CheckModel  = internalcommands.CheckModel
	ExpandLink  = internalcommands.ExpandLink
)

// Renderer is the render service the commands drive, usually a
// *dispatch.Dispatcher or a *hypermedia.Module.
type Renderer interface {
	Render(format render.Format, m *model.Model) ([]byte, error)
}

// Registry exposes go-command compatible handlers backed by the module services.
type Registry struct {
	Catalog     *internalcommands.Catalog
	RenderModel command.Commander[RenderModel]
	CheckModel  command.Commander[CheckModel]
	ExpandLink  command.Commander[ExpandLink]
}

// Dependencies mirror the internal command dependencies but keep them public.
type Dependencies struct {
	Renderer      Renderer
	DefaultFormat render.Format
	Logger        logger.Logger
}

// New builds the registry using the provided dependencies.
func New(deps Dependencies) (*Registry, error) {
	catalog, err := internalcommands.NewCatalog(internalcommands.Dependencies{
		Renderer:      deps.Renderer,
		DefaultFormat: deps.DefaultFormat,
		Logger:        deps.Logger,
	})
	if err != nil {
		return nil, err
	}
	return &Registry{
		Catalog:     catalog,
		RenderModel: catalog.RenderModel,
		CheckModel:  catalog.CheckModel,
		ExpandLink:  catalog.ExpandLink,
	}, nil
}

// Commanders returns every handler so callers can register them with go-command registries.
func (r *Registry) Commanders() []any {
	if r == nil {
		return nil
	}
	return []any{
		r.RenderModel,
		r.CheckModel,
		r.ExpandLink,
	}
}
