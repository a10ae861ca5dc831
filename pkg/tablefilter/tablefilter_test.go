package tablefilter

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cotizador/pkg/page"
	"github.com/goliatone/go-cotizador/pkg/testsupport"
)

func clientsTable() *Table {
	return New("tabla-clientes",
		[]string{"Nombre", "RUT", "Email"},
		[]string{"Constructora Sur", "76.123.456-7", "contacto@sur.cl"},
		[]string{"Inmobiliaria Norte", "77.222.333-4", "ventas@norte.cl"},
		[]string{"Ferretería Central", "78.999.000-1", "info@central.cl"},
	)
}

func TestFilter_CaseInsensitive(t *testing.T) {
	table := clientsTable()

	if shown := table.Filter("NORTE"); shown != 1 {
		t.Fatalf("expected 1 visible row, got %d", shown)
	}
	want := [][]string{{"Inmobiliaria Norte", "77.222.333-4", "ventas@norte.cl"}}
	if diff := cmp.Diff(want, table.VisibleRows()); diff != "" {
		t.Fatalf("visible rows mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Nombre", "RUT", "Email"}, table.Header()); diff != "" {
		t.Fatalf("header mismatch (-want +got):\n%s", diff)
	}
}

func TestFilter_MatchesAcrossCells(t *testing.T) {
	table := clientsTable()

	if shown := table.Filter("sur 76"); shown != 1 {
		t.Fatalf("expected a match spanning two cells, got %d", shown)
	}
	if shown := table.Filter("zzz"); shown != 0 {
		t.Fatalf("expected no rows, got %d", shown)
	}
	if shown := table.Filter(""); shown != 3 {
		t.Fatalf("expected every row for empty query, got %d", shown)
	}
}

func TestBind_KeyUpFiltersUntilUnbound(t *testing.T) {
	table := clientsTable()
	input := NewSearchInput("buscar-cliente")
	unbind := Bind(input, table)

	input.KeyUp("c")
	input.KeyUp("ce")
	input.KeyUp("cen")
	if got := len(table.VisibleRows()); got != 1 {
		t.Fatalf("expected 1 visible row after typing, got %d", got)
	}
	if input.Value() != "cen" {
		t.Fatalf("unexpected input value %q", input.Value())
	}

	unbind()
	input.KeyUp("")
	if got := len(table.VisibleRows()); got != 1 {
		t.Fatalf("expected unbound input to leave rows alone, got %d", got)
	}
}

func TestSearchInput_ListenerOrder(t *testing.T) {
	input := NewSearchInput("q")
	var got []string
	input.On(func(v string) { got = append(got, "a:"+v) })
	input.On(func(v string) { got = append(got, "b:"+v) })

	input.KeyUp("x")
	if diff := cmp.Diff([]string{"a:x", "b:x"}, got); diff != "" {
		t.Fatalf("dispatch mismatch (-want +got):\n%s", diff)
	}
}

func TestFromDocument(t *testing.T) {
	doc, err := page.ParseString(`<table id="tabla-materiales">
		<thead><tr><th>Código</th><th>Nombre</th></tr></thead>
		<tbody>
			<tr><td>MAT-1</td><td>Cable  2mm</td></tr>
			<tr><td>MAT-2</td><td>Tubo PVC</td></tr>
		</tbody>
	</table>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	table, err := FromDocument(doc, "tabla-materiales")
	if err != nil {
		t.Fatalf("from document: %v", err)
	}
	if diff := cmp.Diff([]string{"Código", "Nombre"}, table.Header()); diff != "" {
		t.Fatalf("header mismatch (-want +got):\n%s", diff)
	}
	if shown := table.Filter("pvc"); shown != 1 {
		t.Fatalf("expected 1 row, got %d", shown)
	}

	if _, err := FromDocument(doc, "missing"); err == nil {
		t.Fatalf("expected error for missing table")
	}
}

func TestFromDocument_ClientList(t *testing.T) {
	doc := testsupport.MustLoadPage(t, "testdata/clientes.html")

	table, err := FromDocument(doc, "tabla-clientes")
	if err != nil {
		t.Fatalf("from document: %v", err)
	}
	input := NewSearchInput("buscar-cliente")
	Bind(input, table)

	input.KeyUp("FERRE")
	want := [][]string{{"Ferretería Central", "78.999.000-1", "info@central.cl", "Editar"}}
	if diff := cmp.Diff(want, table.VisibleRows()); diff != "" {
		t.Fatalf("visible rows mismatch (-want +got):\n%s", diff)
	}
}
