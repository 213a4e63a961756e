package bot

import (
	tele "gopkg.in/telebot.v4"

	"github.com/xuelxng/exchange-bot/core/telegram/callbacks"
	"github.com/xuelxng/exchange-bot/core/telegram/commands"
	"github.com/xuelxng/exchange-bot/core/telegram/helpers"
	"github.com/xuelxng/exchange-bot/core/telegram/state"
	"github.com/xuelxng/exchange-bot/internal/flows"
)

// wire registers commands, menu callbacks, flow triggers, and the FSM text
// handlers. Everything dispatches through the registry or the state table;
// no handler parses raw callback data beyond its own payload.
func (a *App) wire() {
	reg := a.registry

	// Stale keyboards from before a restart carry keys nobody owns anymore;
	// re-rendering the menu beats a dead button.
	reg.SetCallbackNotFound(a.handleMainMenu)
	// Free text outside a dialogue has no meaning here. Removing it keeps
	// the chat down to the single anchor message.
	reg.SetTextFallback(func(c tele.Context) error {
		helpers.Discard(c, c.Message())
		return nil
	})

	reg.RegisterCommand("/start", commands.Command{
		Handler:     a.handleStart,
		Description: "Запуск / перезапуск бота 🚀",
	})
	reg.RegisterCommand("/admin", commands.Command{
		Handler:     a.handleAdmin,
		Description: "Панель администратора",
		AdminOnly:   true,
		Hidden:      true,
	})

	// Menu surface.
	_ = reg.RegisterCallback(cbMainMenu, a.handleMainMenu)
	_ = reg.RegisterCallback(cbRates, a.handleRates)
	_ = reg.RegisterCallback(cbAbout, a.handleAbout)
	_ = reg.RegisterCallback(cbSettings, a.handleSettings)
	_ = reg.RegisterCallback(cbSetLanguage, a.handleSetLanguage)
	_ = reg.RegisterCallback(cbAgreeTerms, a.handleAgreeTerms)
	_ = reg.RegisterCallback(cbAdminPanel, a.handleAdmin)

	// Flow triggers and review actions.
	_ = reg.RegisterCallback(cbExchange, a.flowEvent(func(c tele.Context) (flows.Event, error) {
		anchor, err := anchorRef(c)
		return flows.Start{Flow: flows.FlowExchange, Anchor: anchor}, err
	}))
	_ = reg.RegisterCallback(cbPaymentOrder, a.flowEvent(func(c tele.Context) (flows.Event, error) {
		anchor, err := anchorRef(c)
		return flows.Start{Flow: flows.FlowPayment, Anchor: anchor}, err
	}))
	_ = reg.RegisterCallback(flows.CallbackCurrency, a.flowEvent(func(c tele.Context) (flows.Event, error) {
		anchor, err := anchorRef(c)
		return flows.CurrencySelected{Symbol: callbacks.Payload(c), Anchor: anchor}, err
	}))
	_ = reg.RegisterCallback(flows.CallbackCategory, a.flowEvent(func(c tele.Context) (flows.Event, error) {
		anchor, err := anchorRef(c)
		return flows.CategorySelected{Key: callbacks.Payload(c), Anchor: anchor}, err
	}))
	_ = reg.RegisterCallback(flows.CallbackSubmitOrder, a.flowEvent(func(c tele.Context) (flows.Event, error) {
		anchor, err := anchorRef(c)
		return flows.Submit{Flow: flows.FlowExchange, Anchor: anchor}, err
	}))
	_ = reg.RegisterCallback(flows.CallbackRestartOrder, a.flowEvent(func(c tele.Context) (flows.Event, error) {
		anchor, err := anchorRef(c)
		return flows.StartOver{Flow: flows.FlowExchange, Anchor: anchor}, err
	}))
	_ = reg.RegisterCallback(flows.CallbackSubmitPayment, a.flowEvent(func(c tele.Context) (flows.Event, error) {
		anchor, err := anchorRef(c)
		return flows.Submit{Flow: flows.FlowPayment, Anchor: anchor}, err
	}))
	_ = reg.RegisterCallback(flows.CallbackRestartPayment, a.flowEvent(func(c tele.Context) (flows.Event, error) {
		anchor, err := anchorRef(c)
		return flows.StartOver{Flow: flows.FlowPayment, Anchor: anchor}, err
	}))

	// Free text while a dialogue is open lands here via the text route.
	for _, st := range []state.State{
		flows.StateAwaitingAmount,
		flows.StateAwaitingAccount,
		flows.StateAwaitingBank,
		flows.StateAwaitingReceiver,
		flows.StateAwaitingPaymentAmount,
		flows.StateAwaitingLink,
	} {
		state.RegisterHandler(st, a.flowText)
	}
}

// flowEvent adapts a callback press into one engine event.
func (a *App) flowEvent(build func(c tele.Context) (flows.Event, error)) tele.HandlerFunc {
	return func(c tele.Context) error {
		ev, err := build(c)
		if err != nil {
			return err
		}
		return a.engine.Handle(requestContext(c), a.actorFrom(c), ev)
	}
}

// flowText feeds in-dialogue free text to the engine.
func (a *App) flowText(c tele.Context) error {
	msg := c.Message()
	if msg == nil || msg.Chat == nil {
		return nil
	}
	return a.engine.Handle(requestContext(c), a.actorFrom(c), flows.TextEntered{
		Text:    msg.Text,
		Message: flows.Ref{ChatID: msg.Chat.ID, MessageID: msg.ID},
	})
}
