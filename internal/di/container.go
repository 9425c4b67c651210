package di

import (
	"reflect"

	"github.com/goliatone/go-hypermedia/pkg/commands"
	"github.com/goliatone/go-hypermedia/pkg/config"
	"github.com/goliatone/go-hypermedia/pkg/interfaces/logger"
	"github.com/goliatone/go-hypermedia/pkg/links"
	"github.com/goliatone/go-hypermedia/pkg/messages"
	"github.com/goliatone/go-hypermedia/pkg/metrics"
	"github.com/goliatone/go-hypermedia/pkg/options"
	"github.com/goliatone/go-hypermedia/pkg/relations"
	"github.com/goliatone/go-hypermedia/pkg/render"
	"github.com/goliatone/go-hypermedia/pkg/render/collectionjson"
	"github.com/goliatone/go-hypermedia/pkg/render/dispatch"
	"github.com/goliatone/go-hypermedia/pkg/render/hal"
	"github.com/goliatone/go-hypermedia/pkg/render/uber"
	i18n "github.com/goliatone/go-i18n"
	"github.com/prometheus/client_golang/prometheus"
)

// Options configure the DI container.
type Options struct {
	Config     config.Config
	Logger     logger.Logger
	Translator i18n.Translator
	Relations  relations.Provider
	Registerer prometheus.Registerer
}

// Container wires providers, renderers, dispatcher and commands.
type Container struct {
	Config     config.Config
	Logger     logger.Logger
	Relations  relations.Provider
	Curies     relations.CurieProvider
	Messages   messages.Resolver
	Metrics    metrics.Recorder
	Settings   options.RenderSettings
	Dispatcher *dispatch.Dispatcher
	Commands   *commands.Registry
}

func isZeroConfig(cfg config.Config) bool {
	return reflect.ValueOf(cfg).IsZero()
}

// New constructs the container using the supplied options.
func New(opts Options) (*Container, error) {
	cfg := opts.Config
	if isZeroConfig(cfg) {
		cfg = config.Defaults()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	lgr := opts.Logger
	if lgr == nil {
		lgr = &logger.Nop{}
	}

	provider := opts.Relations
	if provider == nil {
		provider = relations.Default()
	}

	curies := relations.NoCuries
	if cfg.Curie.Name != "" {
		curie, err := relations.NewCurieProvider(cfg.Curie.Name, cfg.Curie.Href)
		if err != nil {
			return nil, err
		}
		curies = curie
	}

	resolver := messages.DefaultsOnly
	if opts.Translator != nil {
		msgOpts := []messages.Option{messages.WithLogger(lgr)}
		if cfg.Messages.PlainText {
			msgOpts = append(msgOpts, messages.WithPlainText())
		}
		translated, err := messages.NewTranslatorResolver(opts.Translator, cfg.Messages.Locale, msgOpts...)
		if err != nil {
			return nil, err
		}
		resolver = translated
	}

	recorder := metrics.Nop
	if cfg.Metrics.Enabled {
		reg := opts.Registerer
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		prom, err := metrics.NewPrometheus(reg, cfg.Metrics.Subsystem)
		if err != nil {
			return nil, err
		}
		recorder = prom
	}

	c := &Container{
		Config:    cfg,
		Logger:    lgr,
		Relations: provider,
		Curies:    curies,
		Messages:  resolver,
		Metrics:   recorder,
		Settings: options.RenderSettings{
			Format:             cfg.Render.DefaultFormat,
			Indent:             cfg.Render.Indent,
			SingleLinksAsArray: cfg.HAL.SingleLinksAsArray,
			ArrayRelations:     append([]string(nil), cfg.HAL.ArrayRelations...),
		},
	}

	dispatcher, err := c.NewDispatcher(c.Settings)
	if err != nil {
		return nil, err
	}
	c.Dispatcher = dispatcher

	cmdRegistry, err := commands.New(commands.Dependencies{
		Renderer:      dispatcher,
		DefaultFormat: render.Format(cfg.Render.DefaultFormat),
		Logger:        lgr,
	})
	if err != nil {
		return nil, err
	}
	c.Commands = cmdRegistry

	return c, nil
}

// Renderers builds the three format renderers for settings.
func (c *Container) Renderers(settings options.RenderSettings) []render.Renderer {
	arrayRels := make([]links.Relation, 0, len(settings.ArrayRelations))
	for _, rel := range settings.ArrayRelations {
		if parsed, err := links.ParseRelation(rel); err == nil {
			arrayRels = append(arrayRels, parsed)
		}
	}
	return []render.Renderer{
		hal.New(
			hal.WithRelationProvider(c.Relations),
			hal.WithCurieProvider(c.Curies),
			hal.WithMessageResolver(c.Messages),
			hal.WithSingleLinksAsArray(settings.SingleLinksAsArray),
			hal.WithArrayRelations(arrayRels...),
			hal.WithIndent(settings.Indent),
		),
		collectionjson.New(collectionjson.WithIndent(settings.Indent)),
		uber.New(
			uber.WithRelationProvider(c.Relations),
			uber.WithIndent(settings.Indent),
		),
	}
}

// NewDispatcher returns a dispatcher whose renderers follow settings and
// share the container's logger and metrics.
func (c *Container) NewDispatcher(settings options.RenderSettings) (*dispatch.Dispatcher, error) {
	return dispatch.New(dispatch.Dependencies{
		Renderers: c.Renderers(settings),
		Logger:    c.Logger,
		Metrics:   c.Metrics,
	})
}
