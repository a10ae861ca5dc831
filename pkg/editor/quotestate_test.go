package editor

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"github.com/goliatone/go-cotizador/pkg/apiclient"
	"github.com/goliatone/go-cotizador/pkg/page"
	"github.com/goliatone/go-cotizador/pkg/quote"
)

func TestUpdateTransportCost_PatchesTotalsWithoutRefresh(t *testing.T) {
	h := newHarness("42")
	h.api.totals = apiclient.TotalsResult{
		MutationResult: apiclient.MutationResult{Success: true},
		Totals: quote.Totals{
			TransportCost: decimal.NewFromInt(15000),
			Net:           decimal.NewFromInt(2000000),
			Tax:           decimal.NewFromInt(380000),
			Gross:         decimal.RequireFromString("2380000.75"),
		},
	}
	board := NewBoard()

	res := h.editor.UpdateTransportCost(context.Background(), "15000", board)

	if res.Outcome != Applied {
		t.Fatalf("expected applied, got %s (%v)", res.Outcome, res.Err)
	}
	want := map[string]string{
		DisplayTransportCost: "$15.000",
		DisplayNet:           "$2.000.000",
		DisplayTax:           "$380.000",
		DisplayGross:         "$2.380.000",
	}
	for id, text := range want {
		if got := board.Text(id); got != text {
			t.Fatalf("%s: expected %q, got %q", id, text, got)
		}
	}
	if diff := cmp.Diff(TotalsFields(), board.Patched()); diff != "" {
		t.Fatalf("patched mismatch (-want +got):\n%s", diff)
	}
	if h.refresh.count != 0 {
		t.Fatalf("expected no refresh, got %d", h.refresh.count)
	}
}

func TestUpdateTransportCost_FailuresAreSilent(t *testing.T) {
	h := newHarness("42")
	h.api.err = errNetwork
	board := NewBoard()

	res := h.editor.UpdateTransportCost(context.Background(), "abc", board)

	if res.Outcome != Failed || !errors.Is(res.Err, errNetwork) {
		t.Fatalf("expected failed, got %s %v", res.Outcome, res.Err)
	}
	if len(h.dialogs.messages) != 0 {
		t.Fatalf("expected no messages, got %v", h.dialogs.messages)
	}
	if len(board.Patched()) != 0 {
		t.Fatalf("expected untouched board, got %v", board.Patched())
	}

	h = newHarness("")
	if res := h.editor.UpdateTransportCost(context.Background(), "1", board); !errors.Is(res.Err, ErrMissingQuote) {
		t.Fatalf("expected ErrMissingQuote, got %v", res.Err)
	}
	if len(h.dialogs.messages) != 0 || len(h.api.calls) != 0 {
		t.Fatalf("expected a silent no-op, got %v %v", h.dialogs.messages, h.api.calls)
	}
}

func TestChangeState_InvalidTransition(t *testing.T) {
	h := newHarness("42")
	h.api.state = apiclient.StateResult{MutationResult: apiclient.MutationResult{Error: "invalid transition"}}
	h.editor.Menu().Toggle()

	res := h.editor.ChangeState(context.Background(), "aprobada")

	if res.Outcome != Failed {
		t.Fatalf("expected failed, got %s", res.Outcome)
	}
	if diff := cmp.Diff([]string{MsgConfirmStateChange}, h.dialogs.questions); diff != "" {
		t.Fatalf("questions mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Error: invalid transition"}, h.dialogs.messages); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
	if h.refresh.count != 0 {
		t.Fatalf("expected no refresh, got %d", h.refresh.count)
	}
	if h.editor.Menu().IsOpen() {
		t.Fatalf("expected menu closed")
	}
}

func TestChangeState_Paths(t *testing.T) {
	t.Run("success refreshes", func(t *testing.T) {
		h := newHarness("42")
		h.api.state = apiclient.StateResult{
			MutationResult: apiclient.MutationResult{Success: true},
			State:          "enviada",
			StateDisplay:   "Enviada",
		}
		res := h.editor.ChangeState(context.Background(), "enviada")
		if res.Outcome != Applied || h.refresh.count != 1 {
			t.Fatalf("expected applied with one refresh, got %s / %d", res.Outcome, h.refresh.count)
		}
		if diff := cmp.Diff([]call{{Method: "ChangeState", Args: []string{"42", "enviada"}}}, h.api.calls); diff != "" {
			t.Fatalf("calls mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("declined closes menu", func(t *testing.T) {
		h := newHarness("42")
		h.dialogs.answer = false
		h.editor.Menu().Toggle()
		res := h.editor.ChangeState(context.Background(), "enviada")
		if res.Outcome != Declined || len(h.api.calls) != 0 {
			t.Fatalf("expected declined without request, got %s %v", res.Outcome, h.api.calls)
		}
		if h.editor.Menu().IsOpen() {
			t.Fatalf("expected menu closed")
		}
	})

	t.Run("transport", func(t *testing.T) {
		h := newHarness("42")
		h.api.err = errNetwork
		h.editor.ChangeState(context.Background(), "enviada")
		if diff := cmp.Diff([]string{MsgStateChangeFailed}, h.dialogs.messages); diff != "" {
			t.Fatalf("messages mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("missing quote is silent", func(t *testing.T) {
		h := newHarness("")
		res := h.editor.ChangeState(context.Background(), "enviada")
		if !errors.Is(res.Err, ErrMissingQuote) || len(h.dialogs.questions) != 0 || len(h.dialogs.messages) != 0 {
			t.Fatalf("expected silent no-op, got %v %v %v", res.Err, h.dialogs.questions, h.dialogs.messages)
		}
	})
}

func TestBoardFromDocument(t *testing.T) {
	doc, err := page.ParseString(`<div>
		<span id="display-gastos-traslado">$0</span>
		<span id="valor-neto">$1.000</span>
		<span id="valor-total"> $1.190 </span>
	</div>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	board := BoardFromDocument(doc)
	if got := board.Text(DisplayGross); got != "$1.190" {
		t.Fatalf("expected $1.190, got %q", got)
	}
	if got := board.Text(DisplayTax); got != "" {
		t.Fatalf("expected missing tax to be empty, got %q", got)
	}
	if len(board.Patched()) != 0 {
		t.Fatalf("reading a page must not count as patching")
	}
}
