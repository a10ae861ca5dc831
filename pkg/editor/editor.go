// Package editor implements the quote editing actions: adding and removing
// line items, updating the transport cost, changing the lifecycle state and
// managing master data. Every action is one request; on success the caller's
// view is re-derived from the server through a Refresher.
package editor

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-cotizador/pkg/apiclient"
	"github.com/goliatone/go-cotizador/pkg/catalog"
	"github.com/goliatone/go-cotizador/pkg/prompt"
	"github.com/goliatone/go-cotizador/pkg/quote"
)

// User-facing messages.
const (
	MsgMissingQuote       = "Error: No se encontró ID de cotización"
	MsgRequiredFields     = "Por favor completa todos los campos requeridos"
	MsgConfirmStateChange = "¿Estás seguro de cambiar el estado de la cotización?"
	MsgStateChangeFailed  = "Error al cambiar el estado"
)

var (
	// ErrMissingQuote is returned by quote actions when no quote id is set.
	ErrMissingQuote = errors.New("editor: quote id is missing")
	// ErrRequired is returned when required values are blank.
	ErrRequired = errors.New("editor: required fields are blank")
)

// ServerError carries a logical failure reported by the server.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string {
	return "editor: server rejected request: " + e.Message
}

// API is the subset of the quote API used by the editor.
type API interface {
	AddServiceItem(ctx context.Context, quoteID string, payload apiclient.ServiceItemPayload) (apiclient.MutationResult, error)
	AddMaterialItem(ctx context.Context, quoteID string, payload apiclient.MaterialItemPayload) (apiclient.MutationResult, error)
	AddLaborItem(ctx context.Context, quoteID string, payload apiclient.LaborItemPayload) (apiclient.MutationResult, error)
	DeleteItem(ctx context.Context, quoteID string, kind quote.ItemKind, itemID string) (apiclient.MutationResult, error)
	UpdateTransportCost(ctx context.Context, quoteID, value string) (apiclient.TotalsResult, error)
	ChangeState(ctx context.Context, quoteID, state string) (apiclient.StateResult, error)
	CreateEntity(ctx context.Context, kind quote.EntityKind, values map[string]any) (apiclient.EntityResult, error)
	UpdateEntity(ctx context.Context, kind quote.EntityKind, id string, values map[string]any) (apiclient.EntityResult, error)
	DeleteEntity(ctx context.Context, kind quote.EntityKind, id string) (apiclient.EntityResult, error)
}

var _ API = (*apiclient.Client)(nil)

// Refresher re-derives client state from the server after a mutation.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// RefreshFunc adapts a function to Refresher.
type RefreshFunc func(ctx context.Context) error

// Refresh implements Refresher.
func (f RefreshFunc) Refresh(ctx context.Context) error { return f(ctx) }

// Outcome classifies how an action ended.
type Outcome int

const (
	// Applied means the server accepted the change.
	Applied Outcome = iota
	// Invalid means the action was rejected locally and no request was sent.
	Invalid
	// Declined means the user did not confirm.
	Declined
	// Failed means the server refused the change or could not be reached.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case Invalid:
		return "invalid"
	case Declined:
		return "declined"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Result reports the end of an action: the outcome, the message shown to the
// user if any, and the underlying error.
type Result struct {
	Outcome Outcome
	Message string
	Err     error
}

// Option configures an Editor.
type Option func(*Editor)

// WithNotifier sets where messages are shown.
func WithNotifier(n prompt.Notifier) Option {
	return func(e *Editor) { e.notifier = n }
}

// WithConfirmer sets who answers confirmation questions. Without one every
// confirmation is declined.
func WithConfirmer(c prompt.Confirmer) Option {
	return func(e *Editor) { e.confirmer = c }
}

// WithRefresher sets the post-mutation refresh.
func WithRefresher(r Refresher) Option {
	return func(e *Editor) { e.refresher = r }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMoneyFormatter sets the currency format used to patch totals.
func WithMoneyFormatter(m *quote.MoneyFormatter) Option {
	return func(e *Editor) {
		if m != nil {
			e.money = m
		}
	}
}

// WithCatalog sets the master-data forms used to validate entity payloads.
func WithCatalog(c *catalog.Catalog) Option {
	return func(e *Editor) { e.catalog = c }
}

// WithStates sets the lifecycle states listed by the state menu.
func WithStates(states *quote.StateCatalog) Option {
	return func(e *Editor) {
		if states != nil {
			e.menu.states = states
		}
	}
}

// Editor performs the actions of one quote page.
type Editor struct {
	quoteID   string
	api       API
	notifier  prompt.Notifier
	confirmer prompt.Confirmer
	refresher Refresher
	logger    *zap.Logger
	money     *quote.MoneyFormatter
	catalog   *catalog.Catalog
	menu      *StateMenu
}

// New builds an Editor for quoteID. An empty quote id is accepted; quote
// actions then fail with MsgMissingQuote.
func New(quoteID string, api API, opts ...Option) *Editor {
	money, _ := quote.NewMoneyFormatter(quote.DefaultLocale, "")
	e := &Editor{
		quoteID: quoteID,
		api:     api,
		logger:  zap.NewNop(),
		money:   money,
		menu:    NewStateMenu(DefaultMenuTrigger, quote.DefaultStates()),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// QuoteID returns the quote the editor acts on.
func (e *Editor) QuoteID() string { return e.quoteID }

// Menu returns the editor's state menu.
func (e *Editor) Menu() *StateMenu { return e.menu }

func (e *Editor) notify(ctx context.Context, msg string) {
	if e.notifier == nil {
		e.logger.Info("message", zap.String("text", msg))
		return
	}
	if err := e.notifier.Notify(ctx, msg); err != nil {
		e.logger.Warn("notify failed", zap.String("text", msg), zap.Error(err))
	}
}

func (e *Editor) confirm(ctx context.Context, msg string) (bool, error) {
	if e.confirmer == nil {
		e.logger.Warn("no confirmer configured, declining", zap.String("question", msg))
		return false, nil
	}
	return e.confirmer.Confirm(ctx, msg)
}

func (e *Editor) refresh(ctx context.Context) error {
	if e.refresher == nil {
		return nil
	}
	if err := e.refresher.Refresh(ctx); err != nil {
		e.logger.Error("refresh failed", zap.String("quote_id", e.quoteID), zap.Error(err))
		return err
	}
	return nil
}

// invalid shows msg and returns an Invalid result.
func (e *Editor) invalid(ctx context.Context, msg string, err error) Result {
	e.notify(ctx, msg)
	return Result{Outcome: Invalid, Message: msg, Err: err}
}

// applied refreshes once and reports success. A refresh failure is kept on
// the result but does not change the outcome.
func (e *Editor) applied(ctx context.Context, msg string) Result {
	if msg != "" {
		e.notify(ctx, msg)
	}
	return Result{Outcome: Applied, Message: msg, Err: e.refresh(ctx)}
}

// rejected shows the server's error.
func (e *Editor) rejected(ctx context.Context, serverMsg string) Result {
	msg := "Error: " + serverMsg
	e.notify(ctx, msg)
	return Result{Outcome: Failed, Message: msg, Err: &ServerError{Message: serverMsg}}
}

// unreachable logs a transport failure and shows a generic message.
func (e *Editor) unreachable(ctx context.Context, action, msg string, err error) Result {
	e.logger.Error(action+" failed", zap.String("quote_id", e.quoteID), zap.Error(err))
	e.notify(ctx, msg)
	return Result{Outcome: Failed, Message: msg, Err: err}
}
