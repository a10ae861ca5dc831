package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/goliatone/go-cotizador/pkg/editor"
	"github.com/goliatone/go-cotizador/pkg/form"
	"github.com/goliatone/go-cotizador/pkg/page"
	"github.com/goliatone/go-cotizador/pkg/params"
	"github.com/goliatone/go-cotizador/pkg/prompt"
	"github.com/goliatone/go-cotizador/pkg/quote"
)

const (
	serviceModalID  = "modal-servicio"
	materialModalID = "modal-material"
	laborModalID    = "modal-mano-obra"
	paramsID        = "parametros-servicio"
)

func serviceForm() *form.Form {
	return form.New("form-servicio",
		&form.Control{ID: editor.ServiceSelectID, Label: "Servicio", Kind: form.KindSelect, Required: true},
		&form.Control{ID: editor.ServiceQuantityID, Label: "Cantidad", Kind: form.KindNumber, Required: true, Value: "1"},
		&form.Control{ID: editor.ServicePriceID, Label: "Precio unitario", Kind: form.KindNumber, Required: true},
		&form.Control{ID: editor.ServiceDescriptionID, Label: "Descripción", Kind: form.KindTextArea},
	)
}

func materialForm() *form.Form {
	return form.New("form-material",
		&form.Control{ID: editor.MaterialSelectID, Label: "Material", Kind: form.KindSelect, Required: true},
		&form.Control{ID: editor.MaterialQuantityID, Label: "Cantidad", Kind: form.KindNumber, Required: true, Value: "1"},
		&form.Control{ID: editor.MaterialPriceID, Label: "Precio unitario", Kind: form.KindNumber, Required: true},
		&form.Control{ID: editor.MaterialDescriptionID, Label: "Descripción", Kind: form.KindTextArea},
	)
}

func laborForm() *form.Form {
	return form.New("form-mano-obra",
		&form.Control{ID: editor.LaborDescriptionID, Label: "Descripción", Kind: form.KindText, Required: true},
		&form.Control{ID: editor.LaborHoursID, Label: "Horas", Kind: form.KindNumber, Required: true},
		&form.Control{ID: editor.LaborRateID, Label: "Precio por hora", Kind: form.KindNumber, Required: true},
	)
}

func serviceCommand() *cli.Command {
	return &cli.Command{
		Name:  "servicio",
		Usage: "add a service line item",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "categoria", Usage: "service category id", Required: true},
		},
		Action: withApp(func(c *cli.Context, a *app) error {
			ctx := c.Context
			if err := a.load(ctx); err != nil {
				return err
			}

			container := params.NewContainer(paramsID)
			modals := form.NewModals(form.NewModal(serviceModalID, serviceForm(), container))
			if err := modals.Show(serviceModalID); err != nil {
				return err
			}
			defer func() { _ = modals.Hide(serviceModalID) }()
			modal, _ := modals.Get(serviceModalID)
			f := modal.Form

			sel, _ := f.Control(editor.ServiceSelectID)
			price, _ := f.Control(editor.ServicePriceID)
			renderer := params.NewRenderer(a.client, params.WithLogger(a.logger.Named("params")), params.WithNotifier(a.dialogs))
			if err := renderer.LoadServices(ctx, c.String("categoria"), sel, container); err != nil {
				return err
			}
			if err := prompt.Ask(ctx, a.driver, sel); err != nil {
				return err
			}
			if err := renderer.SelectService(ctx, sel, sel.Value, price, container); err != nil {
				a.logger.Warn("service parameters unavailable", zap.Error(err))
			}
			for _, field := range container.Fields() {
				ctrl := *field.Control
				ctrl.Label = field.Label()
				ctrl.Required = false
				if err := prompt.Ask(ctx, a.driver, &ctrl); err != nil {
					return err
				}
				container.Set(field.Param.ID, ctrl.Current())
			}
			if err := prompt.Fill(ctx, a.driver, f, editor.ServiceQuantityID, editor.ServicePriceID, editor.ServiceDescriptionID); err != nil {
				return err
			}
			return report(c, a.editor.AddServiceItem(ctx, editor.ReadServiceItem(f, container)))
		}),
	}
}

func materialCommand() *cli.Command {
	return &cli.Command{
		Name:  "material",
		Usage: "add a material line item",
		Action: withApp(func(c *cli.Context, a *app) error {
			ctx := c.Context
			if err := a.load(ctx); err != nil {
				return err
			}
			modals := form.NewModals(form.NewModal(materialModalID, materialForm()))
			if err := modals.Show(materialModalID); err != nil {
				return err
			}
			defer func() { _ = modals.Hide(materialModalID) }()
			modal, _ := modals.Get(materialModalID)
			f := modal.Form

			sel, _ := f.Control(editor.MaterialSelectID)
			price, _ := f.Control(editor.MaterialPriceID)
			if err := loadMaterials(a, sel); err != nil {
				return err
			}
			if err := prompt.Ask(ctx, a.driver, sel); err != nil {
				return err
			}
			params.SelectMaterial(sel, sel.Value, price)
			if err := prompt.Fill(ctx, a.driver, f, editor.MaterialQuantityID, editor.MaterialPriceID, editor.MaterialDescriptionID); err != nil {
				return err
			}
			return report(c, a.editor.AddMaterialItem(ctx, editor.ReadMaterialItem(f)))
		}),
	}
}

// loadMaterials copies the material options of the quote page into sel. A
// page without the select falls back to typing the material id.
func loadMaterials(a *app, sel *form.Control) error {
	options, err := a.refresher.Document().SelectOptions(editor.MaterialSelectID)
	if errors.Is(err, page.ErrNotFound) {
		sel.Kind = form.KindText
		sel.Label = "Material (id)"
		return nil
	}
	if err != nil {
		return err
	}
	sel.Options = options
	return nil
}

func laborCommand() *cli.Command {
	return &cli.Command{
		Name:  "mano-obra",
		Usage: "add a labor line item",
		Action: withApp(func(c *cli.Context, a *app) error {
			ctx := c.Context
			if err := a.load(ctx); err != nil {
				return err
			}
			modals := form.NewModals(form.NewModal(laborModalID, laborForm()))
			if err := modals.Show(laborModalID); err != nil {
				return err
			}
			defer func() { _ = modals.Hide(laborModalID) }()
			modal, _ := modals.Get(laborModalID)

			if err := prompt.Fill(ctx, a.driver, modal.Form); err != nil {
				return err
			}
			return report(c, a.editor.AddLaborItem(ctx, editor.ReadLaborItem(modal.Form)))
		}),
	}
}

func deleteItemCommand() *cli.Command {
	return &cli.Command{
		Name:      "eliminar-item",
		Usage:     "remove a line item",
		ArgsUsage: "<servicio|material|mano-obra> <item-id>",
		Action: withApp(func(c *cli.Context, a *app) error {
			if c.NArg() != 2 {
				return cli.Exit("expected a kind and an item id", 2)
			}
			kind, err := quote.ParseItemKind(c.Args().Get(0))
			if err != nil {
				return cli.Exit(err.Error(), 2)
			}
			if err := a.load(c.Context); err != nil {
				return err
			}
			return report(c, a.editor.DeleteItem(c.Context, kind, c.Args().Get(1)))
		}),
	}
}

func transportCommand() *cli.Command {
	return &cli.Command{
		Name:      "traslado",
		Usage:     "set the transport cost and show the new totals",
		ArgsUsage: "<valor>",
		Action: withApp(func(c *cli.Context, a *app) error {
			if c.NArg() != 1 {
				return cli.Exit("expected the transport cost", 2)
			}
			if err := a.load(c.Context); err != nil {
				return err
			}
			board := a.refresher.Board()
			res := a.editor.UpdateTransportCost(c.Context, c.Args().First(), board)
			for _, id := range editor.TotalsFields() {
				fmt.Fprintf(c.App.Writer, "%-24s %s\n", id, board.Text(id))
			}
			return report(c, res)
		}),
	}
}

func stateCommand() *cli.Command {
	return &cli.Command{
		Name:      "estado",
		Usage:     "change the lifecycle state of the quote",
		ArgsUsage: "[estado]",
		Action: withApp(func(c *cli.Context, a *app) error {
			ctx := c.Context
			if err := a.load(ctx); err != nil {
				return err
			}
			state := c.Args().First()
			if state == "" {
				menu := a.editor.Menu()
				menu.HandleClick(editor.DefaultMenuTrigger)
				states := menu.States()
				labels := make([]string, len(states))
				for i, s := range states {
					labels[i] = s.Label
				}
				idx, err := a.driver.Select(ctx, prompt.SelectConfig{Message: "Nuevo estado", Options: labels})
				if err != nil {
					menu.Close()
					return err
				}
				state = states[idx].Token
			}
			return report(c, a.editor.ChangeState(ctx, state))
		}),
	}
}
