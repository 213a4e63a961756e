package flows

import (
	"context"
	"fmt"

	"github.com/xuelxng/exchange-bot/internal/texts"
)

const (
	CallbackCategory       = "payment_category"
	CallbackSubmitPayment  = "submit_payment_order"
	CallbackRestartPayment = "start_over_payment_order"
)

func (e *Engine) startPayment(ctx context.Context, actor Actor, anchor Ref) error {
	t := e.texts.Resolve(ctx, []string{"choose_payment_category"}, e.language(actor))

	kb, err := e.categoryKeyboard(ctx, e.language(actor))
	if err != nil {
		return err
	}
	e.rememberAnchor(actor.ID, anchor)
	e.states.SetState(actor.ID, StateAwaitingCategory)
	return e.transport.Edit(ctx, anchor, t["choose_payment_category"], kb)
}

func (e *Engine) categoryChosen(ctx context.Context, actor Actor, ev CategorySelected) error {
	lang := e.language(actor)
	t := e.texts.Resolve(ctx, []string{"choose_payment_amount"}, lang)

	category, err := e.categories.Get(ctx, ev.Key, lang)
	if err != nil {
		return fmt.Errorf("payment category %q: %w", ev.Key, err)
	}

	// The press confirms which rendered message the flow owns.
	e.rememberAnchor(actor.ID, ev.Anchor)
	e.states.Set(actor.ID, keyCategory, category.Name)
	e.states.SetState(actor.ID, StateAwaitingPaymentAmount)
	return e.transport.Edit(ctx, ev.Anchor, t["choose_payment_amount"], nil)
}

func (e *Engine) paymentAmountEntered(ctx context.Context, actor Actor, ev TextEntered) error {
	anchor, err := e.anchor(actor.ID)
	if err != nil {
		return err
	}
	t := e.texts.Resolve(ctx, []string{"send_link"}, e.language(actor))

	e.janitor.Discard(ev.Message)

	// Stored verbatim: this is a display string like "100 USD", not a
	// number.
	e.states.Set(actor.ID, keyPaymentAmount, ev.Text)
	e.states.SetState(actor.ID, StateAwaitingLink)
	return e.transport.Edit(ctx, anchor, t["send_link"], nil)
}

func (e *Engine) linkEntered(ctx context.Context, actor Actor, ev TextEntered) error {
	anchor, err := e.anchor(actor.ID)
	if err != nil {
		return err
	}
	t := e.texts.Resolve(ctx,
		[]string{"payment_order_template", "submit_button", "start_over_button"}, e.language(actor))

	e.janitor.Discard(ev.Message)

	e.states.Set(actor.ID, keyLink, ev.Text)
	amount, _ := e.states.Get(actor.ID, keyPaymentAmount)
	category, _ := e.states.Get(actor.ID, keyCategory)

	summary := texts.Fill(t["payment_order_template"], map[string]string{
		"amount_with_currency": amount,
		"category":             category,
		"link":                 ev.Text,
	})
	e.states.Set(actor.ID, keySummary, summary)

	e.states.SetState(actor.ID, stateIdle)
	return e.transport.Edit(ctx, anchor, summary, reviewKeyboard(t, FlowPayment))
}

func (e *Engine) categoryKeyboard(ctx context.Context, language string) (Keyboard, error) {
	categories, err := e.categories.ListActive(ctx, language)
	if err != nil {
		return nil, fmt.Errorf("list payment categories: %w", err)
	}
	buttons := make([]Button, 0, len(categories))
	for _, c := range categories {
		buttons = append(buttons, Button{Text: c.Name, Key: CallbackCategory, Data: c.UniqueName})
	}
	return gridKeyboard(buttons, 2), nil
}

// reviewKeyboard is the submit / start-over pair under a rendered summary.
func reviewKeyboard(t map[string]string, flow Flow) Keyboard {
	submit, restart := CallbackSubmitOrder, CallbackRestartOrder
	if flow == FlowPayment {
		submit, restart = CallbackSubmitPayment, CallbackRestartPayment
	}
	return Keyboard{
		{{Text: t["submit_button"], Key: submit}},
		{{Text: t["start_over_button"], Key: restart}},
	}
}

// gridKeyboard packs buttons into rows of perRow.
func gridKeyboard(buttons []Button, perRow int) Keyboard {
	if perRow < 1 {
		perRow = 1
	}
	var kb Keyboard
	for len(buttons) > 0 {
		n := perRow
		if len(buttons) < n {
			n = len(buttons)
		}
		kb = append(kb, buttons[:n])
		buttons = buttons[n:]
	}
	return kb
}
