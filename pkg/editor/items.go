package editor

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-cotizador/pkg/apiclient"
	"github.com/goliatone/go-cotizador/pkg/form"
	"github.com/goliatone/go-cotizador/pkg/params"
	"github.com/goliatone/go-cotizador/pkg/quote"
)

// Control ids of the line-item dialogs.
const (
	ServiceSelectID      = "servicio-select"
	ServiceQuantityID    = "cantidad-servicio"
	ServicePriceID       = "precio-servicio"
	ServiceDescriptionID = "descripcion-servicio"

	MaterialSelectID      = "material-select"
	MaterialQuantityID    = "cantidad-material"
	MaterialPriceID       = "precio-material"
	MaterialDescriptionID = "descripcion-material"

	LaborDescriptionID = "descripcion-mano-obra"
	LaborHoursID       = "horas-mano-obra"
	LaborRateID        = "precio-hora-mano-obra"
)

// ServiceItem holds the values of the add-service dialog.
type ServiceItem struct {
	ServiceID   string
	Quantity    string
	UnitPrice   string
	Description string
	Parameters  map[string]string
}

// MaterialItem holds the values of the add-material dialog.
type MaterialItem struct {
	MaterialID  string
	Quantity    string
	UnitPrice   string
	Description string
}

// LaborItem holds the values of the add-labor dialog.
type LaborItem struct {
	Description string
	Hours       string
	HourlyRate  string
}

// ReadServiceItem collects the add-service dialog. Parameters come from the
// container; a nil container yields no parameters.
func ReadServiceItem(f *form.Form, container *params.Container) ServiceItem {
	item := ServiceItem{
		ServiceID:   f.Value(ServiceSelectID),
		Quantity:    f.Value(ServiceQuantityID),
		UnitPrice:   f.Value(ServicePriceID),
		Description: f.Value(ServiceDescriptionID),
	}
	if container != nil {
		item.Parameters = container.Values()
	}
	return item
}

// ReadMaterialItem collects the add-material dialog.
func ReadMaterialItem(f *form.Form) MaterialItem {
	return MaterialItem{
		MaterialID:  f.Value(MaterialSelectID),
		Quantity:    f.Value(MaterialQuantityID),
		UnitPrice:   f.Value(MaterialPriceID),
		Description: f.Value(MaterialDescriptionID),
	}
}

// ReadLaborItem collects the add-labor dialog.
func ReadLaborItem(f *form.Form) LaborItem {
	return LaborItem{
		Description: f.Value(LaborDescriptionID),
		Hours:       f.Value(LaborHoursID),
		HourlyRate:  f.Value(LaborRateID),
	}
}

// AddServiceItem adds a service line to the quote.
func (e *Editor) AddServiceItem(ctx context.Context, item ServiceItem) Result {
	if res, ok := e.precheck(ctx, item.ServiceID, item.Quantity, item.UnitPrice); !ok {
		return res
	}
	parameters := item.Parameters
	if parameters == nil {
		parameters = map[string]string{}
	}
	payload := apiclient.ServiceItemPayload{
		ServiceID:   item.ServiceID,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		Description: item.Description,
		Parameters:  parameters,
	}
	return e.addItem(ctx, quote.ItemService, func() (apiclient.MutationResult, error) {
		return e.api.AddServiceItem(ctx, e.quoteID, payload)
	})
}

// AddMaterialItem adds a material line to the quote.
func (e *Editor) AddMaterialItem(ctx context.Context, item MaterialItem) Result {
	if res, ok := e.precheck(ctx, item.MaterialID, item.Quantity, item.UnitPrice); !ok {
		return res
	}
	payload := apiclient.MaterialItemPayload{
		MaterialID:  item.MaterialID,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		Description: item.Description,
	}
	return e.addItem(ctx, quote.ItemMaterial, func() (apiclient.MutationResult, error) {
		return e.api.AddMaterialItem(ctx, e.quoteID, payload)
	})
}

// AddLaborItem adds a labor line to the quote.
func (e *Editor) AddLaborItem(ctx context.Context, item LaborItem) Result {
	if res, ok := e.precheck(ctx, item.Description, item.Hours, item.HourlyRate); !ok {
		return res
	}
	payload := apiclient.LaborItemPayload{
		Description: item.Description,
		Hours:       item.Hours,
		HourlyRate:  item.HourlyRate,
	}
	return e.addItem(ctx, quote.ItemLabor, func() (apiclient.MutationResult, error) {
		return e.api.AddLaborItem(ctx, e.quoteID, payload)
	})
}

// AddFailedMessage is the generic message shown when an item of kind could
// not be sent.
func AddFailedMessage(kind quote.ItemKind) string {
	switch kind {
	case quote.ItemService:
		return "Error al agregar el servicio"
	case quote.ItemMaterial:
		return "Error al agregar el material"
	default:
		return "Error al agregar la mano de obra"
	}
}

// precheck enforces the quote id and the presence of required values.
func (e *Editor) precheck(ctx context.Context, required ...string) (Result, bool) {
	if e.quoteID == "" {
		return e.invalid(ctx, MsgMissingQuote, ErrMissingQuote), false
	}
	for _, v := range required {
		if strings.TrimSpace(v) == "" {
			return e.invalid(ctx, MsgRequiredFields, ErrRequired), false
		}
	}
	return Result{}, true
}

func (e *Editor) addItem(ctx context.Context, kind quote.ItemKind, send func() (apiclient.MutationResult, error)) Result {
	res, err := send()
	if err != nil {
		return e.unreachable(ctx, "add "+string(kind)+" item", AddFailedMessage(kind), err)
	}
	if !res.Success {
		return e.rejected(ctx, res.Error)
	}
	e.logger.Info("item added", zap.String("quote_id", e.quoteID), zap.String("kind", string(kind)))
	return e.applied(ctx, "")
}
