package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/goliatone/go-cotizador/pkg/carousel"
	"github.com/goliatone/go-cotizador/pkg/editor"
	"github.com/goliatone/go-cotizador/pkg/form"
	"github.com/goliatone/go-cotizador/pkg/params"
	"github.com/goliatone/go-cotizador/pkg/prompt"
	"github.com/goliatone/go-cotizador/pkg/tablefilter"
)

func filterCommand() *cli.Command {
	return &cli.Command{
		Name:      "filtrar",
		Usage:     "filter the rows of a table on a server page",
		ArgsUsage: "<pagina> <tabla-id> [texto]",
		Action: withApp(func(c *cli.Context, a *app) error {
			if c.NArg() < 2 {
				return cli.Exit("expected a page path and a table id", 2)
			}
			doc, err := a.client.FetchPage(c.Context, c.Args().Get(0))
			if err != nil {
				return err
			}
			table, err := tablefilter.FromDocument(doc, c.Args().Get(1))
			if err != nil {
				return err
			}

			query := c.Args().Get(2)
			if query == "" {
				query, err = a.driver.Input(c.Context, prompt.InputConfig{Message: "Buscar"})
				if err != nil {
					return err
				}
			}

			input := tablefilter.NewSearchInput("buscar")
			unbind := tablefilter.Bind(input, table)
			defer unbind()
			input.KeyUp("")
			var typed strings.Builder
			for _, r := range query {
				typed.WriteRune(r)
				input.KeyUp(typed.String())
			}

			fmt.Fprintln(c.App.Writer, strings.Join(table.Header(), " | "))
			for _, row := range table.VisibleRows() {
				fmt.Fprintln(c.App.Writer, strings.Join(row, " | "))
			}
			return nil
		}),
	}
}

func parametersCommand() *cli.Command {
	return &cli.Command{
		Name:      "parametros",
		Usage:     "print the parameter fragment of a service",
		ArgsUsage: "<servicio-id>",
		Action: withApp(func(c *cli.Context, a *app) error {
			if c.NArg() != 1 {
				return cli.Exit("expected the service id", 2)
			}
			id := c.Args().First()
			sel := &form.Control{ID: editor.ServiceSelectID, Kind: form.KindSelect, Options: []form.Option{{Value: id, Label: id}}}
			container := params.NewContainer(paramsID)

			renderer := params.NewRenderer(a.client, params.WithLogger(a.logger.Named("params")))
			if err := renderer.SelectService(c.Context, sel, id, nil, container); err != nil {
				return err
			}
			markup, err := params.NewMarkup(nil)
			if err != nil {
				return err
			}
			out, err := markup.Render(container)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, out)
			return nil
		}),
	}
}

func carouselCommand() *cli.Command {
	return &cli.Command{
		Name:  "carrusel",
		Usage: "run the service strip auto-advance and print the final offset",
		Flags: []cli.Flag{
			&cli.Float64Flag{Name: "ancho", Usage: "content width", Value: 2000},
			&cli.Float64Flag{Name: "visible", Usage: "viewport width", Value: 660},
			&cli.DurationFlag{Name: "duracion", Usage: "how long to run", Value: 20 * time.Second},
		},
		Action: withApp(func(c *cli.Context, a *app) error {
			ctrl := carousel.New(
				carousel.Strip{ContentWidth: c.Float64("ancho"), ClientWidth: c.Float64("visible")},
				carousel.WithStep(a.cfg.Carousel.Step),
				carousel.WithInterval(a.cfg.Carousel.Interval),
				carousel.WithLogger(a.logger.Named("carousel")),
			)
			ctx, cancel := context.WithTimeout(c.Context, c.Duration("duracion"))
			defer cancel()
			// Run only returns once ctx is done.
			_ = ctrl.Run(ctx)
			fmt.Fprintf(c.App.Writer, "offset: %.0f\n", ctrl.Offset())
			return nil
		}),
	}
}
