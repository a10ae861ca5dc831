package editor

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-cotizador/pkg/apiclient"
	"github.com/goliatone/go-cotizador/pkg/catalog"
	"github.com/goliatone/go-cotizador/pkg/quote"
)

// DeleteEntityQuestion asks for confirmation before removing a master-data
// record. The name is quoted when known.
func DeleteEntityQuestion(kind quote.EntityKind, name string) string {
	if name != "" {
		return fmt.Sprintf("¿Estás seguro de eliminar %s \"%s\"?", kind.Noun(), name)
	}
	return fmt.Sprintf("¿Estás seguro de eliminar este %s?", kind.Noun())
}

// EntityFailedMessage is the generic message shown when a master-data action
// could not be sent.
func EntityFailedMessage(action catalog.Action, kind quote.EntityKind) string {
	switch action {
	case catalog.ActionCreate:
		return fmt.Sprintf("Error al crear el %s", kind.Noun())
	case catalog.ActionUpdate:
		return fmt.Sprintf("Error al actualizar el %s", kind.Noun())
	default:
		return fmt.Sprintf("Error al eliminar el %s", kind.Noun())
	}
}

// DeleteEntity removes a master-data record after the user confirms. On
// success the server's message is shown before refreshing.
func (e *Editor) DeleteEntity(ctx context.Context, kind quote.EntityKind, id, name string) Result {
	if !kind.Valid() {
		return Result{Outcome: Invalid, Err: fmt.Errorf("editor: unknown entity kind %q", kind)}
	}

	ok, err := e.confirm(ctx, DeleteEntityQuestion(kind, name))
	if err != nil {
		return Result{Outcome: Declined, Err: err}
	}
	if !ok {
		return Result{Outcome: Declined}
	}

	res, err := e.api.DeleteEntity(ctx, kind, id)
	return e.entityOutcome(ctx, catalog.ActionDelete, kind, id, res, err)
}

// CreateEntity creates a master-data record once every required field of the
// kind's form is present.
func (e *Editor) CreateEntity(ctx context.Context, kind quote.EntityKind, values map[string]any) Result {
	if res, ok := e.validateEntity(ctx, kind, catalog.ActionCreate, values); !ok {
		return res
	}
	res, err := e.api.CreateEntity(ctx, kind, values)
	return e.entityOutcome(ctx, catalog.ActionCreate, kind, "", res, err)
}

// UpdateEntity edits a master-data record once every required field of the
// kind's form is present.
func (e *Editor) UpdateEntity(ctx context.Context, kind quote.EntityKind, id string, values map[string]any) Result {
	if res, ok := e.validateEntity(ctx, kind, catalog.ActionUpdate, values); !ok {
		return res
	}
	res, err := e.api.UpdateEntity(ctx, kind, id, values)
	return e.entityOutcome(ctx, catalog.ActionUpdate, kind, id, res, err)
}

// EntityForm returns the catalog form used to validate kind and action.
func (e *Editor) EntityForm(kind quote.EntityKind, action catalog.Action) (catalog.Form, error) {
	forms := e.catalog
	if forms == nil {
		var err error
		if forms, err = catalog.Default(); err != nil {
			return catalog.Form{}, err
		}
	}
	return forms.Form(kind, action)
}

func (e *Editor) validateEntity(ctx context.Context, kind quote.EntityKind, action catalog.Action, values map[string]any) (Result, bool) {
	f, err := e.EntityForm(kind, action)
	if err != nil {
		return Result{Outcome: Invalid, Err: err}, false
	}
	if missing := f.Missing(values); len(missing) > 0 {
		e.logger.Debug("entity fields missing", zap.String("kind", string(kind)), zap.Strings("fields", missing))
		return e.invalid(ctx, MsgRequiredFields, fmt.Errorf("%w: %v", ErrRequired, missing)), false
	}
	return Result{}, true
}

func (e *Editor) entityOutcome(ctx context.Context, action catalog.Action, kind quote.EntityKind, id string, res apiclient.EntityResult, err error) Result {
	if err != nil {
		return e.unreachable(ctx, string(action)+" "+string(kind), EntityFailedMessage(action, kind), err)
	}
	if !res.Success {
		return e.rejected(ctx, res.Error)
	}
	if id == "" {
		if created := res.CreatedID(kind); created != 0 {
			id = fmt.Sprint(created)
		}
	}
	e.logger.Info("entity "+string(action), zap.String("kind", string(kind)), zap.String("id", id))
	return e.applied(ctx, res.Message)
}
