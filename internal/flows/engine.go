package flows

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/xuelxng/exchange-bot/core/logger"
	"github.com/xuelxng/exchange-bot/core/telegram/state"
	"github.com/xuelxng/exchange-bot/internal/models"
)

// Dialogue states. Review is not a state of its own: once the summary is
// rendered the explicit tag is cleared and the collected data waits for
// submit or restart.
const (
	StateAwaitingAmount   state.State = "exchange:awaiting_amount"
	StateAwaitingCurrency state.State = "exchange:awaiting_currency"
	StateAwaitingAccount  state.State = "exchange:awaiting_account_number"
	StateAwaitingBank     state.State = "exchange:awaiting_bank"
	StateAwaitingReceiver state.State = "exchange:awaiting_receiver"

	StateAwaitingCategory      state.State = "payment:awaiting_category"
	StateAwaitingPaymentAmount state.State = "payment:awaiting_amount_with_currency"
	StateAwaitingLink          state.State = "payment:awaiting_link"
)

const stateIdle = state.Idle

// Session data keys.
const (
	keyAnchorMessage = "order_message"
	keyAnchorChat    = "order_chat"
	keyAmount        = "amount"
	keyCurrency      = "currency_symbol"
	keyAccount       = "account_number"
	keyBank          = "bank"
	keyReceiver      = "receiver"
	keySummary       = "order_text"

	keyCategory      = "payment_category"
	keyPaymentAmount = "amount_with_currency"
	keyLink          = "link"
)

// Dialogue is the slice of the session manager the engine drives.
type Dialogue interface {
	SetState(userID int64, st state.State)
	Current(userID int64) state.State
	Set(userID int64, key, value string)
	SetInt(userID int64, key string, value int)
	Get(userID int64, key string) (string, bool)
	GetInt(userID int64, key string) (int, bool)
	Reset(userID int64)
}

// TextSource resolves localized texts with the fallback chain applied.
type TextSource interface {
	Resolve(ctx context.Context, keys []string, language string) map[string]string
}

// CurrencySource is the currency slice of the record store.
type CurrencySource interface {
	ListActive(ctx context.Context) ([]models.Currency, error)
	BySymbol(ctx context.Context, symbol string) (models.Currency, error)
}

// CategorySource is the payment-category slice of the record store.
type CategorySource interface {
	ListActive(ctx context.Context, language string) ([]models.PaymentCategory, error)
	Get(ctx context.Context, uniqueName, language string) (models.PaymentCategory, error)
}

// Engine runs both order dialogues. One engine serves every user; all
// per-user state lives in the Dialogue store, so sessions never interfere.
type Engine struct {
	states     Dialogue
	texts      TextSource
	currencies CurrencySource
	categories CategorySource
	transport  Transport
	janitor    Janitor

	reviewChatID int64
	log          *slog.Logger
}

// Config wires an Engine. All fields are required except Log.
type Config struct {
	States       Dialogue
	Texts        TextSource
	Currencies   CurrencySource
	Categories   CategorySource
	Transport    Transport
	Janitor      Janitor
	ReviewChatID int64
	Log          *slog.Logger
}

func NewEngine(cfg Config) *Engine {
	log := cfg.Log
	if log == nil {
		log = logger.SVCOrders
	}
	return &Engine{
		states:       cfg.States,
		texts:        cfg.Texts,
		currencies:   cfg.Currencies,
		categories:   cfg.Categories,
		transport:    cfg.Transport,
		janitor:      cfg.Janitor,
		reviewChatID: cfg.ReviewChatID,
		log:          log,
	}
}

// Handle advances the actor's dialogue with one event. Events that do not
// apply to the current state are ignored without touching session data.
func (e *Engine) Handle(ctx context.Context, actor Actor, ev Event) error {
	current := e.states.Current(actor.ID)

	var err error
	switch ev := ev.(type) {
	case Start:
		err = e.start(ctx, actor, ev.Flow, ev.Anchor)
	case CurrencySelected:
		if current == StateAwaitingCurrency {
			err = e.currencyChosen(ctx, actor, ev)
		}
	case CategorySelected:
		if current == StateAwaitingCategory {
			err = e.categoryChosen(ctx, actor, ev)
		}
	case TextEntered:
		err = e.textEntered(ctx, actor, current, ev)
	case Submit:
		err = e.submit(ctx, actor, ev.Flow, ev.Anchor)
	case StartOver:
		e.states.Reset(actor.ID)
		err = e.start(ctx, actor, ev.Flow, ev.Anchor)
	default:
		err = fmt.Errorf("unknown event %T", ev)
	}

	if err != nil {
		e.log.LogAttrs(ctx, slog.LevelError, "flow step failed",
			slog.String("event", "flow.step"),
			slog.String("status", "error"),
			slog.String("trigger", fmt.Sprintf("%T", ev)),
			slog.String("state", string(current)),
			slog.Int64("user_id", actor.ID),
			slog.String("err", logger.Sanitize(err.Error())))
		return err
	}
	e.log.LogAttrs(ctx, slog.LevelDebug, "flow step",
		slog.String("event", "flow.step"),
		slog.String("trigger", fmt.Sprintf("%T", ev)),
		slog.String("from_state", string(current)),
		slog.String("to_state", string(e.states.Current(actor.ID))),
		slog.Int64("user_id", actor.ID))
	return nil
}

func (e *Engine) start(ctx context.Context, actor Actor, flow Flow, anchor Ref) error {
	switch flow {
	case FlowPayment:
		return e.startPayment(ctx, actor, anchor)
	default:
		return e.startExchange(ctx, actor, anchor)
	}
}

func (e *Engine) textEntered(ctx context.Context, actor Actor, current state.State, ev TextEntered) error {
	switch current {
	case StateAwaitingAmount:
		return e.amountEntered(ctx, actor, ev)
	case StateAwaitingAccount:
		return e.accountEntered(ctx, actor, ev)
	case StateAwaitingBank:
		return e.bankEntered(ctx, actor, ev)
	case StateAwaitingReceiver:
		return e.receiverEntered(ctx, actor, ev)
	case StateAwaitingPaymentAmount:
		return e.paymentAmountEntered(ctx, actor, ev)
	case StateAwaitingLink:
		return e.linkEntered(ctx, actor, ev)
	}
	// Free text outside a flow is the menu layer's business.
	return nil
}

// anchor rebuilds the stored anchor reference for the user.
func (e *Engine) anchor(userID int64) (Ref, error) {
	msgID, ok := e.states.GetInt(userID, keyAnchorMessage)
	if !ok {
		return Ref{}, fmt.Errorf("user %d: no anchor message in session", userID)
	}
	chatRaw, ok := e.states.Get(userID, keyAnchorChat)
	if !ok {
		return Ref{}, fmt.Errorf("user %d: no anchor chat in session", userID)
	}
	chatID, err := strconv.ParseInt(chatRaw, 10, 64)
	if err != nil {
		return Ref{}, fmt.Errorf("user %d: bad anchor chat %q: %w", userID, chatRaw, err)
	}
	return Ref{ChatID: chatID, MessageID: msgID}, nil
}

func (e *Engine) rememberAnchor(userID int64, anchor Ref) {
	e.states.SetInt(userID, keyAnchorMessage, anchor.MessageID)
	e.states.Set(userID, keyAnchorChat, strconv.FormatInt(anchor.ChatID, 10))
}

func (e *Engine) language(actor Actor) string {
	if actor.Language != "" {
		return actor.Language
	}
	return "ru"
}
