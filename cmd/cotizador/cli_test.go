package main

import (
	"bytes"
	"errors"
	"flag"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/urfave/cli/v2"

	"github.com/goliatone/go-cotizador/pkg/editor"
)

func TestNewCLI_Commands(t *testing.T) {
	var names []string
	for _, cmd := range newCLI().Commands {
		names = append(names, cmd.Name)
	}
	want := []string{"servicio", "material", "mano-obra", "eliminar-item", "traslado", "estado", "entidad", "filtrar", "parametros", "carrusel"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("commands mismatch (-want +got):\n%s", diff)
	}
}

func TestReport(t *testing.T) {
	var out bytes.Buffer
	app := &cli.App{Writer: &out}
	ctx := cli.NewContext(app, flag.NewFlagSet("test", flag.ContinueOnError), nil)

	if err := report(ctx, editor.Result{Outcome: editor.Declined}); err != nil {
		t.Fatalf("declined should not fail, got %v", err)
	}
	err := report(ctx, editor.Result{Outcome: editor.Failed, Err: errors.New("boom")})
	var exit cli.ExitCoder
	if !errors.As(err, &exit) || exit.ExitCode() != 1 {
		t.Fatalf("expected exit code 1, got %v", err)
	}
	if got := out.String(); got != "resultado: declined\nresultado: failed\n" {
		t.Fatalf("unexpected output %q", got)
	}
}
