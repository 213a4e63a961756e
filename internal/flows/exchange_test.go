package flows

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ivan = Actor{ID: 777, FirstName: "Ivan", Language: "ru"}

func anchorFor(actor Actor) Ref { return Ref{ChatID: actor.ID, MessageID: 42} }

// walkToReview drives the exchange flow from start to the review screen.
func walkToReview(t *testing.T, h *harness, actor Actor) {
	t.Helper()
	anchor := anchorFor(actor)
	userMsg := func(i int) Ref { return Ref{ChatID: actor.ID, MessageID: 100 + i} }

	h.handle(t, actor, Start{Flow: FlowExchange, Anchor: anchor})
	h.handle(t, actor, TextEntered{Text: "100", Message: userMsg(1)})
	h.handle(t, actor, CurrencySelected{Symbol: "kzt", Anchor: anchor})
	h.handle(t, actor, TextEntered{Text: "+7 700 123 45 67", Message: userMsg(2)})
	h.handle(t, actor, TextEntered{Text: "Kaspi", Message: userMsg(3)})
	h.handle(t, actor, TextEntered{Text: "Ivan", Message: userMsg(4)})
}

func TestExchangeFlowEndToEnd(t *testing.T) {
	h := newHarness(t)
	walkToReview(t, h, ivan)

	// Review screen carries every collected value plus the final keyboard.
	review := h.transport.lastEdit(t)
	for _, want := range []string{"100", "🇰🇿 KZT", "+77001234567", "Kaspi", "Ivan"} {
		assert.Contains(t, review.text, want)
	}
	require.Len(t, review.kb, 2)
	assert.Equal(t, CallbackSubmitOrder, review.kb[0][0].Key)
	assert.Equal(t, CallbackRestartOrder, review.kb[1][0].Key)

	// Review is at rest, not a waiting state.
	assert.Equal(t, stateIdle, h.states.Current(ivan.ID))

	// Each free-text input was handed to the janitor.
	assert.Len(t, h.janitor.discarded, 4)

	h.handle(t, ivan, Submit{Flow: FlowExchange, Anchor: anchorFor(ivan)})

	require.Len(t, h.transport.forwards, 1)
	fwd := h.transport.forwards[0]
	assert.Equal(t, reviewChat, fwd.chatID)
	assert.Contains(t, fwd.html, "Ivan")
	assert.Contains(t, fwd.html, fmt.Sprintf("tg://user?id=%d", ivan.ID))
	// The header paragraph of the summary does not travel.
	assert.NotContains(t, fwd.html, "Заявка на обмен")

	assert.Contains(t, h.transport.lastEdit(t).text, "Заявка успешно отправлена")
}

func TestExchangeAmountRejected(t *testing.T) {
	h := newHarness(t)
	anchor := anchorFor(ivan)

	h.handle(t, ivan, Start{Flow: FlowExchange, Anchor: anchor})
	h.handle(t, ivan, TextEntered{Text: "not a number", Message: Ref{ChatID: ivan.ID, MessageID: 101}})

	assert.Equal(t, StateAwaitingAmount, h.states.Current(ivan.ID))
	assert.Contains(t, h.transport.lastEdit(t).text, "Неверная сумма")
	assert.Len(t, h.janitor.discarded, 1)

	// A valid amount still moves the flow on.
	h.handle(t, ivan, TextEntered{Text: "250,5", Message: Ref{ChatID: ivan.ID, MessageID: 102}})
	assert.Equal(t, StateAwaitingCurrency, h.states.Current(ivan.ID))
	assert.NotEmpty(t, h.transport.lastEdit(t).kb)
}

func TestExchangeAccountRejected(t *testing.T) {
	h := newHarness(t)
	anchor := anchorFor(ivan)

	h.handle(t, ivan, Start{Flow: FlowExchange, Anchor: anchor})
	h.handle(t, ivan, TextEntered{Text: "100", Message: Ref{ChatID: ivan.ID, MessageID: 101}})
	h.handle(t, ivan, CurrencySelected{Symbol: "rub", Anchor: anchor})
	h.handle(t, ivan, TextEntered{Text: "12345", Message: Ref{ChatID: ivan.ID, MessageID: 102}})

	assert.Equal(t, StateAwaitingAccount, h.states.Current(ivan.ID))
	assert.Contains(t, h.transport.lastEdit(t).text, "Неверный номер счета")
}

func TestExchangeStartOverClearsFields(t *testing.T) {
	h := newHarness(t)
	walkToReview(t, h, ivan)

	h.handle(t, ivan, StartOver{Flow: FlowExchange, Anchor: anchorFor(ivan)})
	assert.Equal(t, StateAwaitingAmount, h.states.Current(ivan.ID))
	_, ok := h.states.Get(ivan.ID, "account_number")
	assert.False(t, ok)

	// Completing again must not leak values from the aborted attempt.
	anchor := anchorFor(ivan)
	h.handle(t, ivan, TextEntered{Text: "55", Message: Ref{ChatID: ivan.ID, MessageID: 201}})
	h.handle(t, ivan, CurrencySelected{Symbol: "rub", Anchor: anchor})
	h.handle(t, ivan, TextEntered{Text: "8 700 765 43 21", Message: Ref{ChatID: ivan.ID, MessageID: 202}})
	h.handle(t, ivan, TextEntered{Text: "Halyk", Message: Ref{ChatID: ivan.ID, MessageID: 203}})
	h.handle(t, ivan, TextEntered{Text: "Olga", Message: Ref{ChatID: ivan.ID, MessageID: 204}})

	review := h.transport.lastEdit(t).text
	assert.Contains(t, review, "Halyk")
	assert.NotContains(t, review, "Kaspi")
	assert.NotContains(t, review, "+77001234567")
	assert.NotContains(t, review, "Ivan")
}

func TestExchangeTwoUsersIndependent(t *testing.T) {
	h := newHarness(t)
	alice := Actor{ID: 1, FirstName: "Alice", Language: "en"}
	bob := Actor{ID: 2, FirstName: "Bob", Language: "en"}

	h.handle(t, alice, Start{Flow: FlowExchange, Anchor: anchorFor(alice)})
	h.handle(t, bob, Start{Flow: FlowExchange, Anchor: anchorFor(bob)})

	h.handle(t, alice, TextEntered{Text: "10", Message: Ref{ChatID: 1, MessageID: 101}})
	h.handle(t, alice, CurrencySelected{Symbol: "kzt", Anchor: anchorFor(alice)})

	assert.Equal(t, StateAwaitingAccount, h.states.Current(alice.ID))
	assert.Equal(t, StateAwaitingAmount, h.states.Current(bob.ID))

	h.handle(t, bob, TextEntered{Text: "999", Message: Ref{ChatID: 2, MessageID: 102}})
	assert.Equal(t, StateAwaitingCurrency, h.states.Current(bob.ID))
	assert.Equal(t, StateAwaitingAccount, h.states.Current(alice.ID))

	amount, _ := h.states.Get(bob.ID, "amount")
	assert.Equal(t, "999", amount)
	amount, _ = h.states.Get(alice.ID, "amount")
	assert.Equal(t, "10", amount)
}

func TestExchangeSubmitForwardFailure(t *testing.T) {
	h := newHarness(t)
	walkToReview(t, h, ivan)
	h.transport.forwardErr = errors.New("review chat unreachable")

	editsBefore := len(h.transport.edits)
	err := h.engine.Handle(context.Background(), ivan, Submit{Flow: FlowExchange, Anchor: anchorFor(ivan)})
	require.Error(t, err)

	// No false confirmation: the anchor is untouched on a failed forward.
	assert.Len(t, h.transport.edits, editsBefore)
	assert.Empty(t, h.transport.forwards)
}

func TestExchangeFallbackSubmitterLabel(t *testing.T) {
	h := newHarness(t)
	nameless := Actor{ID: 9, Language: "ru"}
	walkToReview(t, h, nameless)

	h.handle(t, nameless, Submit{Flow: FlowExchange, Anchor: anchorFor(nameless)})
	require.Len(t, h.transport.forwards, 1)
	assert.Contains(t, h.transport.forwards[0].html, "Клиент")
}
