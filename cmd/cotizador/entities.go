package main

import (
	"github.com/urfave/cli/v2"

	"github.com/goliatone/go-cotizador/pkg/catalog"
	"github.com/goliatone/go-cotizador/pkg/prompt"
	"github.com/goliatone/go-cotizador/pkg/quote"
)

func entityCommand() *cli.Command {
	kindFlag := &cli.StringFlag{Name: "tipo", Usage: "cliente, servicio or material", Required: true}
	return &cli.Command{
		Name:  "entidad",
		Usage: "manage clients, services and materials",
		Subcommands: []*cli.Command{
			{
				Name:  "crear",
				Usage: "create a record",
				Flags: []cli.Flag{kindFlag},
				Action: withApp(func(c *cli.Context, a *app) error {
					kind, err := quote.ParseEntityKind(c.String("tipo"))
					if err != nil {
						return cli.Exit(err.Error(), 2)
					}
					values, err := askEntity(c, a, kind, catalog.ActionCreate)
					if err != nil {
						return err
					}
					return report(c, a.editor.CreateEntity(c.Context, kind, values))
				}),
			},
			{
				Name:      "editar",
				Usage:     "update a record",
				ArgsUsage: "<id>",
				Flags:     []cli.Flag{kindFlag},
				Action: withApp(func(c *cli.Context, a *app) error {
					kind, err := quote.ParseEntityKind(c.String("tipo"))
					if err != nil {
						return cli.Exit(err.Error(), 2)
					}
					if c.NArg() != 1 {
						return cli.Exit("expected the record id", 2)
					}
					values, err := askEntity(c, a, kind, catalog.ActionUpdate)
					if err != nil {
						return err
					}
					return report(c, a.editor.UpdateEntity(c.Context, kind, c.Args().First(), values))
				}),
			},
			{
				Name:      "eliminar",
				Usage:     "delete a record",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					kindFlag,
					&cli.StringFlag{Name: "nombre", Usage: "display name used in the confirmation"},
				},
				Action: withApp(func(c *cli.Context, a *app) error {
					kind, err := quote.ParseEntityKind(c.String("tipo"))
					if err != nil {
						return cli.Exit(err.Error(), 2)
					}
					if c.NArg() != 1 {
						return cli.Exit("expected the record id", 2)
					}
					if err := a.load(c.Context); err != nil {
						return err
					}
					return report(c, a.editor.DeleteEntity(c.Context, kind, c.Args().First(), c.String("nombre")))
				}),
			},
		},
	}
}

// askEntity prompts for every field of the kind's form and returns the
// payload.
func askEntity(c *cli.Context, a *app, kind quote.EntityKind, action catalog.Action) (map[string]any, error) {
	if err := a.load(c.Context); err != nil {
		return nil, err
	}
	f, err := a.editor.EntityForm(kind, action)
	if err != nil {
		return nil, err
	}
	controls := f.Controls()
	if err := prompt.Fill(c.Context, a.driver, controls); err != nil {
		return nil, err
	}
	return f.Values(controls), nil
}
