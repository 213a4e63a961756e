package flows

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentFlowEndToEnd(t *testing.T) {
	h := newHarness(t)
	actor := Actor{ID: 555, FirstName: "Aibek", Language: "ru"}
	anchor := Ref{ChatID: actor.ID, MessageID: 77}

	h.handle(t, actor, Start{Flow: FlowPayment, Anchor: anchor})
	assert.Equal(t, StateAwaitingCategory, h.states.Current(actor.ID))

	// The category prompt offers the localized catalog.
	prompt := h.transport.lastEdit(t)
	require.NotEmpty(t, prompt.kb)
	assert.Equal(t, CallbackCategory, prompt.kb[0][0].Key)
	assert.Equal(t, "Товары", prompt.kb[0][0].Text)

	h.handle(t, actor, CategorySelected{Key: "digital_goods", Anchor: anchor})
	assert.Equal(t, StateAwaitingPaymentAmount, h.states.Current(actor.ID))

	// The amount is a display string, stored verbatim.
	h.handle(t, actor, TextEntered{Text: "100 USD", Message: Ref{ChatID: actor.ID, MessageID: 301}})
	assert.Equal(t, StateAwaitingLink, h.states.Current(actor.ID))
	stored, _ := h.states.Get(actor.ID, "amount_with_currency")
	assert.Equal(t, "100 USD", stored)

	h.handle(t, actor, TextEntered{Text: "https://example.com/item", Message: Ref{ChatID: actor.ID, MessageID: 302}})
	assert.Equal(t, stateIdle, h.states.Current(actor.ID))

	review := h.transport.lastEdit(t)
	for _, want := range []string{"100 USD", "Цифровые товары", "https://example.com/item"} {
		assert.Contains(t, review.text, want)
	}
	require.Len(t, review.kb, 2)
	assert.Equal(t, CallbackSubmitPayment, review.kb[0][0].Key)
	assert.Equal(t, CallbackRestartPayment, review.kb[1][0].Key)
	assert.Len(t, h.janitor.discarded, 2)

	h.handle(t, actor, Submit{Flow: FlowPayment, Anchor: anchor})
	require.Len(t, h.transport.forwards, 1)
	fwd := h.transport.forwards[0]
	assert.Equal(t, reviewChat, fwd.chatID)
	assert.Contains(t, fwd.html, fmt.Sprintf("tg://user?id=%d", actor.ID))
	assert.Contains(t, fwd.html, "https://example.com/item")
	assert.NotContains(t, fwd.html, "Платежный заказ:")
	assert.Contains(t, h.transport.lastEdit(t).text, "Платежный заказ успешно отправлен")
}

func TestPaymentStartOverReentersCategory(t *testing.T) {
	h := newHarness(t)
	actor := Actor{ID: 556, Language: "en"}
	anchor := Ref{ChatID: actor.ID, MessageID: 78}

	h.handle(t, actor, Start{Flow: FlowPayment, Anchor: anchor})
	h.handle(t, actor, CategorySelected{Key: "goods", Anchor: anchor})
	h.handle(t, actor, TextEntered{Text: "50 EUR", Message: Ref{ChatID: actor.ID, MessageID: 310}})

	h.handle(t, actor, StartOver{Flow: FlowPayment, Anchor: anchor})
	assert.Equal(t, StateAwaitingCategory, h.states.Current(actor.ID))
	_, ok := h.states.Get(actor.ID, "amount_with_currency")
	assert.False(t, ok)
	_, ok = h.states.Get(actor.ID, "payment_category")
	assert.False(t, ok)
}

func TestPaymentCategoryOutOfStateIgnored(t *testing.T) {
	h := newHarness(t)
	actor := Actor{ID: 557, Language: "en"}
	anchor := Ref{ChatID: actor.ID, MessageID: 79}

	// A stray category press with no flow open changes nothing.
	h.handle(t, actor, CategorySelected{Key: "goods", Anchor: anchor})
	assert.Equal(t, stateIdle, h.states.Current(actor.ID))
	assert.Empty(t, h.transport.edits)
}
