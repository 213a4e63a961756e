package flows

import (
	"context"
	"fmt"

	"github.com/xuelxng/exchange-bot/core/telegram/format"
	"github.com/xuelxng/exchange-bot/internal/texts"
)

// Callback keys the presentation layer routes back into the engine.
const (
	CallbackCurrency     = "order_currency"
	CallbackSubmitOrder  = "submit_order"
	CallbackRestartOrder = "start_over"
)

func (e *Engine) startExchange(ctx context.Context, actor Actor, anchor Ref) error {
	t := e.texts.Resolve(ctx, []string{"enter_amount_text"}, e.language(actor))

	e.rememberAnchor(actor.ID, anchor)
	e.states.SetState(actor.ID, StateAwaitingAmount)
	return e.transport.Edit(ctx, anchor, t["enter_amount_text"], nil)
}

func (e *Engine) amountEntered(ctx context.Context, actor Actor, ev TextEntered) error {
	anchor, err := e.anchor(actor.ID)
	if err != nil {
		return err
	}
	t := e.texts.Resolve(ctx,
		[]string{"incorrect_amount", "choose_currency_to_exchange"}, e.language(actor))

	e.janitor.Discard(ev.Message)

	amount, ok := ParseAmount(ev.Text)
	if !ok {
		return e.transport.Edit(ctx, anchor, t["incorrect_amount"], nil)
	}
	e.states.Set(actor.ID, keyAmount, format.Amount(amount))

	kb, err := e.currencyKeyboard(ctx)
	if err != nil {
		return err
	}
	e.states.SetState(actor.ID, StateAwaitingCurrency)
	return e.transport.Edit(ctx, anchor, t["choose_currency_to_exchange"], kb)
}

func (e *Engine) currencyChosen(ctx context.Context, actor Actor, ev CurrencySelected) error {
	t := e.texts.Resolve(ctx, []string{"enter_account_number"}, e.language(actor))

	e.states.Set(actor.ID, keyCurrency, ev.Symbol)
	e.states.SetState(actor.ID, StateAwaitingAccount)
	return e.transport.Edit(ctx, ev.Anchor, t["enter_account_number"], nil)
}

func (e *Engine) accountEntered(ctx context.Context, actor Actor, ev TextEntered) error {
	anchor, err := e.anchor(actor.ID)
	if err != nil {
		return err
	}
	t := e.texts.Resolve(ctx,
		[]string{"invalid_account_number", "enter_bank"}, e.language(actor))

	e.janitor.Discard(ev.Message)

	account, ok := NormalizeAccount(ev.Text)
	if !ok {
		return e.transport.Edit(ctx, anchor, t["invalid_account_number"], nil)
	}
	e.states.Set(actor.ID, keyAccount, account)
	e.states.SetState(actor.ID, StateAwaitingBank)
	return e.transport.Edit(ctx, anchor, t["enter_bank"], nil)
}

func (e *Engine) bankEntered(ctx context.Context, actor Actor, ev TextEntered) error {
	anchor, err := e.anchor(actor.ID)
	if err != nil {
		return err
	}
	t := e.texts.Resolve(ctx, []string{"enter_receiver"}, e.language(actor))

	e.janitor.Discard(ev.Message)

	e.states.Set(actor.ID, keyBank, ev.Text)
	e.states.SetState(actor.ID, StateAwaitingReceiver)
	return e.transport.Edit(ctx, anchor, t["enter_receiver"], nil)
}

func (e *Engine) receiverEntered(ctx context.Context, actor Actor, ev TextEntered) error {
	anchor, err := e.anchor(actor.ID)
	if err != nil {
		return err
	}
	lang := e.language(actor)
	t := e.texts.Resolve(ctx,
		[]string{"order_application_template", "submit_button", "start_over_button"}, lang)

	e.janitor.Discard(ev.Message)

	symbol, _ := e.states.Get(actor.ID, keyCurrency)
	currency, err := e.currencies.BySymbol(ctx, symbol)
	if err != nil {
		return fmt.Errorf("currency %q vanished mid-flow: %w", symbol, err)
	}

	e.states.Set(actor.ID, keyReceiver, ev.Text)
	amount, _ := e.states.Get(actor.ID, keyAmount)
	account, _ := e.states.Get(actor.ID, keyAccount)
	bank, _ := e.states.Get(actor.ID, keyBank)

	summary := texts.Fill(t["order_application_template"], map[string]string{
		"amount":         amount,
		"currency_name":  currency.Name,
		"account_number": account,
		"bank":           bank,
		"receiver":       ev.Text,
	})
	e.states.Set(actor.ID, keySummary, summary)

	// Review is at rest: the tag is cleared and the keyboard decides what
	// happens next.
	e.states.SetState(actor.ID, stateIdle)
	return e.transport.Edit(ctx, anchor, summary, reviewKeyboard(t, FlowExchange))
}

func (e *Engine) currencyKeyboard(ctx context.Context) (Keyboard, error) {
	currencies, err := e.currencies.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list currencies: %w", err)
	}
	buttons := make([]Button, 0, len(currencies))
	for _, c := range currencies {
		buttons = append(buttons, Button{Text: c.Name, Key: CallbackCurrency, Data: c.Symbol})
	}
	return gridKeyboard(buttons, 2), nil
}
