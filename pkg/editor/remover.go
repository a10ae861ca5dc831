package editor

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-cotizador/pkg/quote"
)

// DeleteItemQuestion asks for confirmation before removing an item of kind.
func DeleteItemQuestion(kind quote.ItemKind) string {
	return fmt.Sprintf("¿Estás seguro de eliminar este %s?", kind.Noun())
}

// DeleteItemFailedMessage is shown when the item could not be removed.
func DeleteItemFailedMessage(kind quote.ItemKind) string {
	return fmt.Sprintf("Error al eliminar el %s", kind.Noun())
}

// DeleteItem removes a line item after the user confirms.
func (e *Editor) DeleteItem(ctx context.Context, kind quote.ItemKind, itemID string) Result {
	if e.quoteID == "" {
		return e.invalid(ctx, MsgMissingQuote, ErrMissingQuote)
	}
	if !kind.Valid() {
		return Result{Outcome: Invalid, Err: fmt.Errorf("editor: unknown item kind %q", kind)}
	}

	ok, err := e.confirm(ctx, DeleteItemQuestion(kind))
	if err != nil {
		return Result{Outcome: Declined, Err: err}
	}
	if !ok {
		return Result{Outcome: Declined}
	}

	res, err := e.api.DeleteItem(ctx, e.quoteID, kind, itemID)
	if err != nil {
		return e.unreachable(ctx, "delete "+string(kind)+" item", DeleteItemFailedMessage(kind), err)
	}
	if !res.Success {
		msg := DeleteItemFailedMessage(kind)
		e.notify(ctx, msg)
		return Result{Outcome: Failed, Message: msg, Err: &ServerError{Message: res.Error}}
	}
	e.logger.Info("item deleted", zap.String("quote_id", e.quoteID), zap.String("kind", string(kind)), zap.String("item_id", itemID))
	return e.applied(ctx, "")
}
