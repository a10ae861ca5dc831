package editor

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cotizador/pkg/apiclient"
	"github.com/goliatone/go-cotizador/pkg/form"
	"github.com/goliatone/go-cotizador/pkg/params"
	"github.com/goliatone/go-cotizador/pkg/quote"
)

func TestAddItem_BlankRequiredFieldSendsNothing(t *testing.T) {
	service := ServiceItem{ServiceID: "5", Quantity: "2", UnitPrice: "45000"}
	material := MaterialItem{MaterialID: "9", Quantity: "3", UnitPrice: "1200"}
	labor := LaborItem{Description: "Instalación", Hours: "8", HourlyRate: "15000"}

	cases := []struct {
		name string
		add  func(*Editor) Result
	}{
		{"servicio sin servicio", func(e *Editor) Result {
			item := service
			item.ServiceID = ""
			return e.AddServiceItem(context.Background(), item)
		}},
		{"servicio sin cantidad", func(e *Editor) Result {
			item := service
			item.Quantity = " "
			return e.AddServiceItem(context.Background(), item)
		}},
		{"servicio sin precio", func(e *Editor) Result {
			item := service
			item.UnitPrice = ""
			return e.AddServiceItem(context.Background(), item)
		}},
		{"material sin material", func(e *Editor) Result {
			item := material
			item.MaterialID = ""
			return e.AddMaterialItem(context.Background(), item)
		}},
		{"material sin cantidad", func(e *Editor) Result {
			item := material
			item.Quantity = ""
			return e.AddMaterialItem(context.Background(), item)
		}},
		{"material sin precio", func(e *Editor) Result {
			item := material
			item.UnitPrice = "\t"
			return e.AddMaterialItem(context.Background(), item)
		}},
		{"mano de obra sin descripcion", func(e *Editor) Result {
			item := labor
			item.Description = ""
			return e.AddLaborItem(context.Background(), item)
		}},
		{"mano de obra sin horas", func(e *Editor) Result {
			item := labor
			item.Hours = "  "
			return e.AddLaborItem(context.Background(), item)
		}},
		{"mano de obra sin precio hora", func(e *Editor) Result {
			item := labor
			item.HourlyRate = ""
			return e.AddLaborItem(context.Background(), item)
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness("42")

			res := tc.add(h.editor)

			if res.Outcome != Invalid {
				t.Fatalf("expected invalid, got %s", res.Outcome)
			}
			if !errors.Is(res.Err, ErrRequired) {
				t.Fatalf("expected ErrRequired, got %v", res.Err)
			}
			if len(h.api.calls) != 0 {
				t.Fatalf("expected no request, got %v", h.api.calls)
			}
			if diff := cmp.Diff([]string{MsgRequiredFields}, h.dialogs.messages); diff != "" {
				t.Fatalf("messages mismatch (-want +got):\n%s", diff)
			}
			if h.refresh.count != 0 {
				t.Fatalf("expected no refresh, got %d", h.refresh.count)
			}
		})
	}
}

func TestAddItem_MissingQuote(t *testing.T) {
	h := newHarness("")

	res := h.editor.AddMaterialItem(context.Background(), MaterialItem{MaterialID: "9", Quantity: "1", UnitPrice: "10"})

	if !errors.Is(res.Err, ErrMissingQuote) {
		t.Fatalf("expected ErrMissingQuote, got %v", res.Err)
	}
	if diff := cmp.Diff([]string{MsgMissingQuote}, h.dialogs.messages); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
	if len(h.api.calls) != 0 {
		t.Fatalf("expected no request, got %v", h.api.calls)
	}
}

func TestAddServiceItem_SuccessRefreshesOnce(t *testing.T) {
	h := newHarness("42")
	h.api.mutation = apiclient.MutationResult{Success: true}

	controls := form.New("modal-servicio",
		&form.Control{ID: ServiceSelectID, Kind: form.KindSelect, Value: "5"},
		&form.Control{ID: ServiceQuantityID, Kind: form.KindNumber, Value: "2"},
		&form.Control{ID: ServicePriceID, Kind: form.KindNumber, Value: "45000"},
		&form.Control{ID: ServiceDescriptionID, Kind: form.KindTextArea},
	)
	container := params.NewContainer("parametros-servicio")

	res := h.editor.AddServiceItem(context.Background(), ReadServiceItem(controls, container))

	if res.Outcome != Applied || res.Err != nil {
		t.Fatalf("expected applied without error, got %s %v", res.Outcome, res.Err)
	}
	want := []call{{Method: "AddServiceItem", Args: []string{"42", "5", "2", "45000", ""}}}
	if diff := cmp.Diff(want, h.api.calls); diff != "" {
		t.Fatalf("calls mismatch (-want +got):\n%s", diff)
	}
	if h.api.serviceParams == nil || len(h.api.serviceParams) != 0 {
		t.Fatalf("expected empty parameter map, got %#v", h.api.serviceParams)
	}
	if h.refresh.count != 1 {
		t.Fatalf("expected one refresh, got %d", h.refresh.count)
	}
	if len(h.dialogs.messages) != 0 {
		t.Fatalf("expected no messages, got %v", h.dialogs.messages)
	}
}

func TestAddMaterialItem_ServerErrorShownVerbatim(t *testing.T) {
	h := newHarness("42")
	h.api.mutation = apiclient.MutationResult{Success: false, Error: "Material no encontrado"}

	res := h.editor.AddMaterialItem(context.Background(), MaterialItem{MaterialID: "9", Quantity: "1", UnitPrice: "10"})

	if res.Outcome != Failed {
		t.Fatalf("expected failed, got %s", res.Outcome)
	}
	var serverErr *ServerError
	if !errors.As(res.Err, &serverErr) || serverErr.Message != "Material no encontrado" {
		t.Fatalf("expected server error, got %v", res.Err)
	}
	if diff := cmp.Diff([]string{"Error: Material no encontrado"}, h.dialogs.messages); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
	if h.refresh.count != 0 {
		t.Fatalf("expected no refresh, got %d", h.refresh.count)
	}
}

func TestAddItem_TransportFailureMessages(t *testing.T) {
	tests := []struct {
		name string
		add  func(e *Editor) Result
		want string
	}{
		{
			name: "service",
			add: func(e *Editor) Result {
				return e.AddServiceItem(context.Background(), ServiceItem{ServiceID: "5", Quantity: "1", UnitPrice: "1"})
			},
			want: "Error al agregar el servicio",
		},
		{
			name: "material",
			add: func(e *Editor) Result {
				return e.AddMaterialItem(context.Background(), MaterialItem{MaterialID: "9", Quantity: "1", UnitPrice: "1"})
			},
			want: "Error al agregar el material",
		},
		{
			name: "labor",
			add: func(e *Editor) Result {
				return e.AddLaborItem(context.Background(), LaborItem{Description: "x", Hours: "1", HourlyRate: "1"})
			},
			want: "Error al agregar la mano de obra",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness("42")
			h.api.err = errNetwork

			res := tt.add(h.editor)
			if res.Outcome != Failed || !errors.Is(res.Err, errNetwork) {
				t.Fatalf("expected failed transport result, got %s %v", res.Outcome, res.Err)
			}
			if diff := cmp.Diff([]string{tt.want}, h.dialogs.messages); diff != "" {
				t.Fatalf("messages mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReadItems_FromForms(t *testing.T) {
	labor := form.New("modal-mano-obra",
		&form.Control{ID: LaborDescriptionID, Value: "Montaje"},
		&form.Control{ID: LaborHoursID, Value: "3"},
		&form.Control{ID: LaborRateID, Value: "12000"},
	)
	if diff := cmp.Diff(LaborItem{Description: "Montaje", Hours: "3", HourlyRate: "12000"}, ReadLaborItem(labor)); diff != "" {
		t.Fatalf("labor mismatch (-want +got):\n%s", diff)
	}

	material := form.New("modal-material",
		&form.Control{ID: MaterialSelectID, Value: "9"},
		&form.Control{ID: MaterialQuantityID, Value: "4"},
		&form.Control{ID: MaterialPriceID, Value: "2500"},
		&form.Control{ID: MaterialDescriptionID, Value: "Cable 2mm"},
	)
	want := MaterialItem{MaterialID: "9", Quantity: "4", UnitPrice: "2500", Description: "Cable 2mm"}
	if diff := cmp.Diff(want, ReadMaterialItem(material)); diff != "" {
		t.Fatalf("material mismatch (-want +got):\n%s", diff)
	}
}

func TestAddFailedMessage(t *testing.T) {
	if got := AddFailedMessage(quote.ItemLabor); got != "Error al agregar la mano de obra" {
		t.Fatalf("unexpected message %q", got)
	}
}
