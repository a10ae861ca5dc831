package editor

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// UpdateTransportCost sends the transport cost and, on success, patches the
// four totals on board in place. Nothing is refreshed and failures are only
// logged.
func (e *Editor) UpdateTransportCost(ctx context.Context, value string, board *Board) Result {
	if e.quoteID == "" {
		return Result{Outcome: Invalid, Err: ErrMissingQuote}
	}

	res, err := e.api.UpdateTransportCost(ctx, e.quoteID, value)
	if err != nil {
		e.logger.Error("update transport cost failed", zap.String("quote_id", e.quoteID), zap.Error(err))
		return Result{Outcome: Failed, Err: err}
	}
	if !res.Success {
		e.logger.Warn("transport cost rejected", zap.String("quote_id", e.quoteID), zap.String("error", res.Error))
		return Result{Outcome: Failed, Err: &ServerError{Message: res.Error}}
	}

	if board != nil {
		board.Set(DisplayTransportCost, e.money.Integer(res.TransportCost))
		board.Set(DisplayNet, e.money.Integer(res.Net))
		board.Set(DisplayTax, e.money.Integer(res.Tax))
		board.Set(DisplayGross, e.money.Integer(res.Gross))
	}
	e.logger.Debug("transport cost updated", zap.String("quote_id", e.quoteID), zap.String("total", res.Gross.String()))
	return Result{Outcome: Applied}
}

// ChangeState asks for confirmation and requests the lifecycle transition to
// state. The state menu is closed whatever happens.
func (e *Editor) ChangeState(ctx context.Context, state string) Result {
	defer e.menu.Close()

	if e.quoteID == "" {
		return Result{Outcome: Invalid, Err: ErrMissingQuote}
	}
	if state == "" {
		return Result{Outcome: Invalid, Err: errors.New("editor: state is empty")}
	}

	ok, err := e.confirm(ctx, MsgConfirmStateChange)
	if err != nil {
		return Result{Outcome: Declined, Err: err}
	}
	if !ok {
		return Result{Outcome: Declined}
	}

	res, err := e.api.ChangeState(ctx, e.quoteID, state)
	if err != nil {
		return e.unreachable(ctx, "change state", MsgStateChangeFailed, err)
	}
	if !res.Success {
		return e.rejected(ctx, res.Error)
	}
	e.logger.Info("state changed", zap.String("quote_id", e.quoteID), zap.String("estado", res.State), zap.String("label", res.StateDisplay))
	return e.applied(ctx, "")
}
