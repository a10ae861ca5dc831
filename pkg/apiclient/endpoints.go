package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/goliatone/go-cotizador/pkg/quote"
)

// MutationResult is the common answer of every write endpoint.
type MutationResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// ServiceItemPayload is the body of the add-service-item endpoint. Values are
// the raw strings the user typed; the server parses them.
type ServiceItemPayload struct {
	ServiceID   string            `json:"servicio_id"`
	Quantity    string            `json:"cantidad"`
	UnitPrice   string            `json:"precio_unitario"`
	Description string            `json:"descripcion_personalizada"`
	Parameters  map[string]string `json:"parametros"`
}

// MaterialItemPayload is the body of the add-material-item endpoint.
type MaterialItemPayload struct {
	MaterialID  string `json:"material_id"`
	Quantity    string `json:"cantidad"`
	UnitPrice   string `json:"precio_unitario"`
	Description string `json:"descripcion_personalizada"`
}

// LaborItemPayload is the body of the add-labor-item endpoint.
type LaborItemPayload struct {
	Description string `json:"descripcion"`
	Hours       string `json:"horas"`
	HourlyRate  string `json:"precio_hora"`
}

// TotalsResult answers a transport cost update. Missing amounts decode as zero.
type TotalsResult struct {
	MutationResult
	quote.Totals
}

// StateResult answers a lifecycle state change.
type StateResult struct {
	MutationResult
	State        string `json:"nuevo_estado,omitempty"`
	StateDisplay string `json:"estado_display,omitempty"`
}

// EntityResult answers master-data create, update and delete calls. Only the
// id matching the entity kind is populated on create.
type EntityResult struct {
	MutationResult
	ClientID   int64 `json:"cliente_id,omitempty"`
	ServiceID  int64 `json:"servicio_id,omitempty"`
	MaterialID int64 `json:"material_id,omitempty"`
}

// CreatedID returns the id assigned to a newly created entity of kind.
func (r EntityResult) CreatedID(kind quote.EntityKind) int64 {
	switch kind {
	case quote.EntityClient:
		return r.ClientID
	case quote.EntityService:
		return r.ServiceID
	case quote.EntityMaterial:
		return r.MaterialID
	default:
		return 0
	}
}

// ListServices returns the services of a category.
func (c *Client) ListServices(ctx context.Context, categoryID string) ([]quote.Service, error) {
	var out []quote.Service
	if err := c.call(ctx, "list_services", http.MethodGet, ServicesPath(categoryID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListServiceParameters returns the parameter schema of a service.
func (c *Client) ListServiceParameters(ctx context.Context, serviceID string) ([]quote.Parameter, error) {
	var out []quote.Parameter
	if err := c.call(ctx, "list_parameters", http.MethodGet, ParametersPath(serviceID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddServiceItem adds a service line item to a quote.
func (c *Client) AddServiceItem(ctx context.Context, quoteID string, payload ServiceItemPayload) (MutationResult, error) {
	if payload.Parameters == nil {
		payload.Parameters = map[string]string{}
	}
	var out MutationResult
	err := c.call(ctx, "add_item", http.MethodPost, ItemPath(quoteID, quote.ItemService), payload, &out)
	return out, err
}

// AddMaterialItem adds a material line item to a quote.
func (c *Client) AddMaterialItem(ctx context.Context, quoteID string, payload MaterialItemPayload) (MutationResult, error) {
	var out MutationResult
	err := c.call(ctx, "add_item", http.MethodPost, ItemPath(quoteID, quote.ItemMaterial), payload, &out)
	return out, err
}

// AddLaborItem adds a labor line item to a quote.
func (c *Client) AddLaborItem(ctx context.Context, quoteID string, payload LaborItemPayload) (MutationResult, error) {
	var out MutationResult
	err := c.call(ctx, "add_item", http.MethodPost, ItemPath(quoteID, quote.ItemLabor), payload, &out)
	return out, err
}

// DeleteItem removes a line item of the given kind.
func (c *Client) DeleteItem(ctx context.Context, quoteID string, kind quote.ItemKind, itemID string) (MutationResult, error) {
	var out MutationResult
	err := c.call(ctx, "delete_item", http.MethodDelete, DeleteItemPath(quoteID, kind, itemID), nil, &out)
	return out, err
}

// UpdateTransportCost sets the quote's transport cost and returns the new
// totals.
func (c *Client) UpdateTransportCost(ctx context.Context, quoteID, value string) (TotalsResult, error) {
	var out TotalsResult
	payload := map[string]string{"gastos_traslado": value}
	err := c.call(ctx, "transport_cost", http.MethodPost, quotePath(quoteID, "gastos-traslado"), payload, &out)
	return out, err
}

// ChangeState requests a lifecycle transition. The server validates it.
func (c *Client) ChangeState(ctx context.Context, quoteID, state string) (StateResult, error) {
	var out StateResult
	payload := map[string]string{"estado": state}
	err := c.call(ctx, "change_state", http.MethodPost, quotePath(quoteID, "estado"), payload, &out)
	return out, err
}

// CreateEntity creates a master-data record.
func (c *Client) CreateEntity(ctx context.Context, kind quote.EntityKind, values map[string]any) (EntityResult, error) {
	var out EntityResult
	err := c.call(ctx, "create_entity", http.MethodPost, EntityPath(kind, "", "crear"), values, &out)
	return out, err
}

// UpdateEntity edits a master-data record.
func (c *Client) UpdateEntity(ctx context.Context, kind quote.EntityKind, id string, values map[string]any) (EntityResult, error) {
	var out EntityResult
	err := c.call(ctx, "update_entity", http.MethodPut, EntityPath(kind, id, "editar"), values, &out)
	return out, err
}

// DeleteEntity removes a master-data record.
func (c *Client) DeleteEntity(ctx context.Context, kind quote.EntityKind, id string) (EntityResult, error) {
	var out EntityResult
	err := c.call(ctx, "delete_entity", http.MethodDelete, EntityPath(kind, id, "eliminar"), nil, &out)
	return out, err
}

// QuotePath is the server-rendered detail page of a quote.
func QuotePath(quoteID string) string {
	return fmt.Sprintf("/cotizaciones/%s/", url.PathEscape(quoteID))
}

// ServicesPath lists the services of a category.
func ServicesPath(categoryID string) string {
	return fmt.Sprintf("/cotizaciones/api/categoria/%s/servicios/", url.PathEscape(categoryID))
}

// ParametersPath lists the parameter schema of a service.
func ParametersPath(serviceID string) string {
	return fmt.Sprintf("/cotizaciones/api/servicio/%s/parametros/", url.PathEscape(serviceID))
}

// ItemPath is the creation endpoint for a line item kind.
func ItemPath(quoteID string, kind quote.ItemKind) string {
	return quotePath(quoteID, "item-"+string(kind))
}

// DeleteItemPath is the deletion endpoint for one line item.
func DeleteItemPath(quoteID string, kind quote.ItemKind, itemID string) string {
	return fmt.Sprintf("/cotizaciones/%s/item-%s/%s/eliminar/", url.PathEscape(quoteID), kind, url.PathEscape(itemID))
}

// EntityPath builds a master-data endpoint. An empty id yields the
// collection-level action (crear).
func EntityPath(kind quote.EntityKind, id, action string) string {
	if id == "" {
		return fmt.Sprintf("/cotizaciones/%s/%s/", kind, action)
	}
	return fmt.Sprintf("/cotizaciones/%s/%s/%s/", kind, url.PathEscape(id), action)
}

func quotePath(quoteID, action string) string {
	return fmt.Sprintf("/cotizaciones/%s/%s/", url.PathEscape(quoteID), action)
}
