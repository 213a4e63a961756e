package flows

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuelxng/exchange-bot/core/telegram/format"
)

// fallbackSubmitter labels users whose profile carries no first name.
const fallbackSubmitter = "Клиент"

func (e *Engine) submit(ctx context.Context, actor Actor, flow Flow, anchor Ref) error {
	summary, ok := e.states.Get(actor.ID, keySummary)
	if !ok || summary == "" {
		return fmt.Errorf("user %d: submit with no composed order", actor.ID)
	}

	sentKey := "order_sent"
	if flow == FlowPayment {
		sentKey = "payment_order_sent"
	}
	t := e.texts.Resolve(ctx, []string{sentKey}, e.language(actor))

	// The review chat hears about the order before the user sees a
	// confirmation; a failed forward must not read as success.
	if err := e.transport.Forward(ctx, e.reviewChatID, composeForward(actor, summary)); err != nil {
		return fmt.Errorf("forward order to review chat: %w", err)
	}
	return e.transport.Edit(ctx, anchor, t[sentKey], nil)
}

// composeForward turns a rendered summary into the review-chat message:
// the header paragraph is dropped and the submitter's clickable identity
// is prepended.
func composeForward(actor Actor, summary string) string {
	body := summary
	if parts := strings.SplitN(summary, "\n\n", 3); len(parts) > 1 {
		body = parts[1]
	}
	display := actor.FirstName
	if display == "" {
		display = fallbackSubmitter
	}
	return fmt.Sprintf("НОВАЯ ЗАЯВКА от %s\n\n%s", format.UserLink(actor.ID, display), body)
}
