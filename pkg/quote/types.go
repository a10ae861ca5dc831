package quote

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParameterType is the declared input kind of a service parameter.
type ParameterType string

const (
	ParameterText    ParameterType = "text"
	ParameterNumber  ParameterType = "number"
	ParameterSelect  ParameterType = "select"
	ParameterBoolean ParameterType = "boolean"
)

// Service is a catalog entry returned by the services-by-category endpoint.
type Service struct {
	ID             int64           `json:"id"`
	Name           string          `json:"nombre"`
	BasePrice      decimal.Decimal `json:"precio_base"`
	Unit           string          `json:"unidad,omitempty"`
	Parametrizable bool            `json:"es_parametrizable"`
}

// Parameter describes one entry of a service's parameter schema.
type Parameter struct {
	ID           int64         `json:"id"`
	Name         string        `json:"nombre"`
	Type         ParameterType `json:"tipo"`
	Options      []string      `json:"opciones_list,omitempty"`
	DefaultValue string        `json:"valor_por_defecto"`
	Required     bool          `json:"requerido"`
}

// UnmarshalJSON tolerates a null default value and the raw comma separated
// "opciones" field when "opciones_list" is absent.
func (p *Parameter) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID           int64         `json:"id"`
		Name         string        `json:"nombre"`
		Type         ParameterType `json:"tipo"`
		Options      []string      `json:"opciones_list"`
		RawOptions   *string       `json:"opciones"`
		DefaultValue *string       `json:"valor_por_defecto"`
		Required     bool          `json:"requerido"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("quote: decode parameter: %w", err)
	}
	p.ID = raw.ID
	p.Name = raw.Name
	p.Type = raw.Type
	p.Required = raw.Required
	p.Options = raw.Options
	if len(p.Options) == 0 && raw.RawOptions != nil {
		p.Options = SplitOptions(*raw.RawOptions)
	}
	p.DefaultValue = ""
	if raw.DefaultValue != nil {
		p.DefaultValue = *raw.DefaultValue
	}
	return nil
}

// SplitOptions splits a comma separated option list, trimming each entry.
func SplitOptions(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		out = append(out, strings.TrimSpace(part))
	}
	return out
}

// Totals are the derived monetary figures of a quote.
type Totals struct {
	TransportCost decimal.Decimal `json:"gastos_traslado"`
	Net           decimal.Decimal `json:"valor_neto"`
	Tax           decimal.Decimal `json:"valor_iva"`
	Gross         decimal.Decimal `json:"valor_total"`
}

// Entity is the opaque master-data handle used for confirmation messages.
type Entity struct {
	Kind EntityKind
	ID   string
	Name string
}
