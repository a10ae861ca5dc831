package quote

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

func TestParameterUnmarshal_NullDefaultAndRawOptions(t *testing.T) {
	raw := `[
		{"id": 4, "nombre": "Diámetro", "tipo": "select", "requerido": true, "opciones": "10mm, 20mm ,30mm", "valor_por_defecto": null},
		{"id": 5, "nombre": "Metros", "tipo": "number", "requerido": false, "opciones": null, "valor_por_defecto": "12"},
		{"id": 6, "nombre": "Color", "tipo": "select", "opciones_list": ["rojo", "azul"], "opciones": "ignored"}
	]`

	var params []Parameter
	if err := json.Unmarshal([]byte(raw), &params); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := []Parameter{
		{ID: 4, Name: "Diámetro", Type: ParameterSelect, Required: true, Options: []string{"10mm", "20mm", "30mm"}},
		{ID: 5, Name: "Metros", Type: ParameterNumber, DefaultValue: "12"},
		{ID: 6, Name: "Color", Type: ParameterSelect, Options: []string{"rojo", "azul"}},
	}
	if diff := cmp.Diff(want, params); diff != "" {
		t.Fatalf("parameters mismatch (-want +got):\n%s", diff)
	}
}

func TestServiceUnmarshal_DecimalAsString(t *testing.T) {
	var svc Service
	if err := json.Unmarshal([]byte(`{"id": 9, "nombre": "Poda", "precio_base": "15000.00", "es_parametrizable": false}`), &svc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !svc.BasePrice.Equal(decimal.NewFromInt(15000)) {
		t.Fatalf("expected base price 15000, got %s", svc.BasePrice)
	}
	if svc.Parametrizable {
		t.Fatalf("expected non-parametrizable service")
	}
}

func TestItemKindNouns(t *testing.T) {
	got := map[ItemKind]string{}
	for _, kind := range ItemKinds() {
		got[kind] = kind.Noun()
	}
	want := map[ItemKind]string{
		ItemService:  "servicio",
		ItemMaterial: "material",
		ItemLabor:    "trabajo",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("nouns mismatch (-want +got):\n%s", diff)
	}

	if _, err := ParseItemKind("descuento"); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
	if _, err := ParseEntityKind("cliente"); err != nil {
		t.Fatalf("parse entity kind: %v", err)
	}
}

func TestDefaultStates(t *testing.T) {
	catalog := DefaultStates()

	var tokens []string
	for _, state := range catalog.States() {
		tokens = append(tokens, state.Token)
	}
	want := []string{"borrador", "enviada", "aprobada", "rechazada", "vencida"}
	if diff := cmp.Diff(want, tokens); diff != "" {
		t.Fatalf("state tokens mismatch (-want +got):\n%s", diff)
	}
	if got := catalog.Label("aprobada"); got != "Aprobada" {
		t.Fatalf("expected label Aprobada, got %q", got)
	}
	if got := catalog.Label("archivada"); got != "archivada" {
		t.Fatalf("expected unknown token to fall back to itself, got %q", got)
	}
}

func TestParseStates_RejectsDuplicates(t *testing.T) {
	_, err := ParseStates([]byte("states:\n  - token: a\n  - token: a\n"))
	if err == nil {
		t.Fatalf("expected duplicate token error")
	}
}

func TestMoneyFormatter_Integer(t *testing.T) {
	tests := []struct {
		name   string
		locale string
		amount decimal.Decimal
		want   string
	}{
		{name: "english grouping", locale: "en", amount: decimal.RequireFromString("1234567.89"), want: "$1,234,567"},
		{name: "chilean grouping", locale: "es-CL", amount: decimal.RequireFromString("2380000.4"), want: "$2.380.000"},
		{name: "zero", locale: "en", amount: decimal.Zero, want: "$0"},
		{name: "small", locale: "es-CL", amount: decimal.RequireFromString("950.99"), want: "$950"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewMoneyFormatter(tt.locale, "")
			if err != nil {
				t.Fatalf("new formatter: %v", err)
			}
			if got := f.Integer(tt.amount); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
