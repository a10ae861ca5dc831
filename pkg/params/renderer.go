// Package params drives the service selection of the quote editor: it fills
// the service select from a category and renders one control per parameter of
// the chosen service.
package params

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/goliatone/go-cotizador/pkg/form"
	"github.com/goliatone/go-cotizador/pkg/prompt"
	"github.com/goliatone/go-cotizador/pkg/quote"
)

// Option attributes carried by service options.
const (
	AttrPrice          = "precio"
	AttrParametrizable = "parametrizable"
)

// PlaceholderLabel is the label of the empty service option.
const PlaceholderLabel = "Seleccionar servicio"

// MsgLoadServicesFailed is shown when a category's services cannot be fetched.
const MsgLoadServicesFailed = "Error al cargar los servicios"

// Source fetches services and parameter schemas.
type Source interface {
	ListServices(ctx context.Context, categoryID string) ([]quote.Service, error)
	ListServiceParameters(ctx context.Context, serviceID string) ([]quote.Parameter, error)
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithNotifier sets where load failures are reported.
func WithNotifier(n prompt.Notifier) Option {
	return func(r *Renderer) {
		r.notifier = n
	}
}

// Renderer populates service selects and parameter containers.
type Renderer struct {
	src      Source
	logger   *zap.Logger
	notifier prompt.Notifier
}

// NewRenderer builds a Renderer on src.
func NewRenderer(src Source, opts ...Option) *Renderer {
	r := &Renderer{src: src, logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// LoadServices resets sel to its placeholder, hides container and, when
// categoryID is set, appends one option per service of the category.
func (r *Renderer) LoadServices(ctx context.Context, categoryID string, sel *form.Control, container *Container) error {
	sel.Options = []form.Option{{Value: "", Label: PlaceholderLabel}}
	sel.Value = ""
	if container != nil {
		container.Clear()
	}
	if categoryID == "" {
		return nil
	}

	services, err := r.src.ListServices(ctx, categoryID)
	if err != nil {
		r.logger.Error("load services failed", zap.String("categoria_id", categoryID), zap.Error(err))
		r.notify(ctx, MsgLoadServicesFailed)
		return err
	}
	for _, svc := range services {
		sel.Options = append(sel.Options, ServiceOption(svc))
	}
	r.logger.Debug("services loaded", zap.String("categoria_id", categoryID), zap.Int("count", len(services)))
	return nil
}

// ServiceOption is the select option describing a service.
func ServiceOption(svc quote.Service) form.Option {
	return form.Option{
		Value: strconv.FormatInt(svc.ID, 10),
		Label: svc.Name,
		Attrs: map[string]string{
			AttrPrice:          svc.BasePrice.String(),
			AttrParametrizable: strconv.FormatBool(svc.Parametrizable),
		},
	}
}

// SelectService makes serviceID the selection of sel, copies its base price
// into price and rebuilds container from the service's parameter schema.
// Fetch failures are logged only. A result that arrives after a newer
// selection, or after the container was cleared, is dropped. With a nil
// container only the price is copied.
func (r *Renderer) SelectService(ctx context.Context, sel *form.Control, serviceID string, price *form.Control, container *Container) error {
	if serviceID == "" || !sel.Select(serviceID) {
		sel.Value = ""
	}
	opt, hasOption := sel.Selected()
	if hasOption && price != nil {
		if p, ok := opt.Attrs[AttrPrice]; ok {
			price.Value = p
		}
	}

	if container == nil {
		return nil
	}

	id := sel.Value
	gen := container.begin()
	if id == "" || opt.Attr(AttrParametrizable) == "false" {
		return nil
	}

	schema, err := r.src.ListServiceParameters(ctx, id)
	if err != nil {
		r.logger.Error("load service parameters failed", zap.String("servicio_id", id), zap.Error(err))
		return err
	}

	fields := make([]Field, 0, len(schema))
	for _, p := range schema {
		fields = append(fields, BuildField(p))
	}
	if !container.publish(gen, fields) {
		r.logger.Debug("discarded stale parameter schema", zap.String("servicio_id", id))
	}
	return nil
}

func (r *Renderer) notify(ctx context.Context, msg string) {
	if r.notifier == nil {
		return
	}
	if err := r.notifier.Notify(ctx, msg); err != nil {
		r.logger.Warn("notify failed", zap.Error(err))
	}
}
