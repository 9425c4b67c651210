// Package hypermedia bundles the builders, renderers, dispatcher and commands
// behind a single configured Module.
package hypermedia

import (
	"fmt"

	"github.com/goliatone/go-hypermedia/internal/di"
	"github.com/goliatone/go-hypermedia/pkg/commands"
	"github.com/goliatone/go-hypermedia/pkg/config"
	"github.com/goliatone/go-hypermedia/pkg/interfaces/logger"
	"github.com/goliatone/go-hypermedia/pkg/model"
	"github.com/goliatone/go-hypermedia/pkg/options"
	"github.com/goliatone/go-hypermedia/pkg/relations"
	"github.com/goliatone/go-hypermedia/pkg/render"
	"github.com/goliatone/go-hypermedia/pkg/render/dispatch"
	i18n "github.com/goliatone/go-i18n"
	"github.com/prometheus/client_golang/prometheus"
)

// ModuleOptions configure the module facade.
type ModuleOptions struct {
	Config     config.Config
	Logger     logger.Logger
	Translator i18n.Translator
	Relations  relations.Provider
	Registerer prometheus.Registerer
}

// Module bundles the container and exposes high-level accessors.
type Module struct {
	container *di.Container
}

// NewModule assembles providers, renderers, dispatcher and commands.
func NewModule(opts ModuleOptions) (*Module, error) {
	container, err := di.New(di.Options{
		Config:     opts.Config,
		Logger:     opts.Logger,
		Translator: opts.Translator,
		Relations:  opts.Relations,
		Registerer: opts.Registerer,
	})
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Builder returns a fresh plain model builder.
func (m *Module) Builder() *model.Builder {
	return model.NewBuilder()
}

// Hal returns a fresh HAL builder sharing the module's relation provider.
func (m *Module) Hal() *model.HalBuilder {
	if m == nil || m.container == nil {
		return model.Hal()
	}
	return model.Hal(model.WithRelationProvider(m.container.Relations))
}

// DefaultFormat returns the configured default media type.
func (m *Module) DefaultFormat() render.Format {
	if m == nil || m.container == nil {
		return render.HAL
	}
	return render.Format(m.container.Config.Render.DefaultFormat)
}

// Render serializes model in format. An empty format uses DefaultFormat.
func (m *Module) Render(format render.Format, doc *model.Model) ([]byte, error) {
	if m == nil || m.container == nil {
		return nil, fmt.Errorf("hypermedia: module not initialised")
	}
	if format == "" {
		format = m.DefaultFormat()
	}
	return m.container.Dispatcher.Render(format, doc)
}

// RenderWithOverrides renders doc with per-call settings layered over the
// configured ones. Overrides follow the options.RenderSettings.Data layout,
// for example {"render": {"indent": "  "}}. An empty format falls back to
// an overridden "render.format", then to DefaultFormat.
func (m *Module) RenderWithOverrides(format render.Format, doc *model.Model, overrides map[string]any) ([]byte, error) {
	if m == nil || m.container == nil {
		return nil, fmt.Errorf("hypermedia: module not initialised")
	}
	if len(overrides) == 0 {
		return m.Render(format, doc)
	}
	settings, err := options.ResolveRenderSettings(m.container.Settings, overrides)
	if err != nil {
		return nil, err
	}
	if format == "" {
		if format, err = render.ParseFormat(settings.Format); err != nil {
			return nil, err
		}
	}
	dispatcher, err := m.container.NewDispatcher(settings)
	if err != nil {
		return nil, err
	}
	return dispatcher.Render(format, doc)
}

// Negotiate picks a format from an Accept header value.
func (m *Module) Negotiate(accept string) (render.Format, error) {
	if m == nil || m.container == nil {
		return "", fmt.Errorf("hypermedia: module not initialised")
	}
	return m.container.Dispatcher.Negotiate(accept)
}

// Dispatcher returns the configured dispatcher.
func (m *Module) Dispatcher() *dispatch.Dispatcher {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Dispatcher
}

// Commands returns the go-command registry.
func (m *Module) Commands() *commands.Registry {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Commands
}

// Config returns the effective module configuration.
func (m *Module) Config() config.Config {
	if m == nil || m.container == nil {
		return config.Config{}
	}
	return m.container.Config
}

// Container returns the internal DI container.
// This is exposed for advanced use cases like swapping renderers.
func (m *Module) Container() *di.Container {
	if m == nil {
		return nil
	}
	return m.container
}
