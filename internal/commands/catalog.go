package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-hypermedia/pkg/interfaces/logger"
	"github.com/goliatone/go-hypermedia/pkg/links"
	"github.com/goliatone/go-hypermedia/pkg/model"
	"github.com/goliatone/go-hypermedia/pkg/render"
	"github.com/google/uuid"
)

// Catalog exposes go-command compatible handlers for host transports.
type Catalog struct {
	RenderModel command.Commander[RenderModel]
	CheckModel  command.Commander[CheckModel]
	ExpandLink  command.Commander[ExpandLink]
}

type renderService interface {
	Render(format render.Format, m *model.Model) ([]byte, error)
}

// Dependencies wires the render service into the command catalog.
type Dependencies struct {
	Renderer      renderService
	DefaultFormat render.Format
	Logger        logger.Logger
}

var (
	ErrMissingRenderer = errors.New("commands: renderer is required")
	ErrMissingModel    = errors.New("commands: model is required")
	ErrMissingWriter   = errors.New("commands: writer is required")
)

// NewCatalog builds the command catalog using the supplied dependencies.
func NewCatalog(deps Dependencies) (*Catalog, error) {
	if deps.Renderer == nil {
		return nil, ErrMissingRenderer
	}
	if deps.DefaultFormat == "" {
		deps.DefaultFormat = render.HAL
	}
	if deps.Logger == nil {
		deps.Logger = &logger.Nop{}
	}
	base := renderCommand{svc: deps.Renderer, format: deps.DefaultFormat, logger: deps.Logger}
	return &Catalog{
		RenderModel: renderModelCommand{base},
		CheckModel:  checkModelCommand{base},
		ExpandLink:  expandLinkCommand{},
	}, nil
}

// RenderModel renders Model and writes the document to Writer. An empty
// Format selects the catalog default; an empty CorrelationID is generated.
type RenderModel struct {
	Format        string       `json:"format"`
	Model         *model.Model `json:"-"`
	Writer        io.Writer    `json:"-"`
	CorrelationID string       `json:"correlation_id"`
}

// CheckModel verifies that Model can be expressed in Format without
// producing output.
type CheckModel struct {
	Format string       `json:"format"`
	Model  *model.Model `json:"-"`
}

// ExpandLink expands a templated link, storing the result in Result.
type ExpandLink struct {
	Link   links.Link     `json:"link"`
	Values map[string]any `json:"values"`
	Result *links.Link    `json:"-"`
}

type renderCommand struct {
	svc    renderService
	format render.Format
	logger logger.Logger
}

func (c renderCommand) resolve(format string) (render.Format, error) {
	if format == "" {
		return c.format, nil
	}
	return render.ParseFormat(format)
}

type renderModelCommand struct {
	renderCommand
}

func (c renderModelCommand) Execute(ctx context.Context, msg RenderModel) error {
	if msg.Model == nil {
		return ErrMissingModel
	}
	if msg.Writer == nil {
		return ErrMissingWriter
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	format, err := c.resolve(msg.Format)
	if err != nil {
		return err
	}
	if msg.CorrelationID == "" {
		msg.CorrelationID = uuid.NewString()
	}
	log := c.logger.With(
		logger.F("correlation_id", msg.CorrelationID),
		logger.F("format", string(format)),
	)

	out, err := c.svc.Render(format, msg.Model)
	if err != nil {
		log.Warn("commands: render model failed", logger.F("error", err))
		return err
	}
	if _, err := msg.Writer.Write(out); err != nil {
		log.Error("commands: write document failed", logger.F("error", err))
		return fmt.Errorf("commands: write document: %w", err)
	}
	log.Info("commands: model rendered", logger.F("bytes", len(out)))
	return nil
}

type checkModelCommand struct {
	renderCommand
}

func (c checkModelCommand) Execute(ctx context.Context, msg CheckModel) error {
	if msg.Model == nil {
		return ErrMissingModel
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	format, err := c.resolve(msg.Format)
	if err != nil {
		return err
	}
	_, err = c.svc.Render(format, msg.Model)
	return err
}

type expandLinkCommand struct{}

func (expandLinkCommand) Execute(ctx context.Context, msg ExpandLink) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	expanded, err := msg.Link.ExpandNamed(msg.Values)
	if err != nil {
		return err
	}
	if msg.Result != nil {
		*msg.Result = expanded
	}
	return nil
}
