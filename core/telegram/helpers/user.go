package helpers

import (
	"context"

	tele "gopkg.in/telebot.v4"
)

// UserResolver loads a domain user entity by Telegram ID. The type parameter
// lets each bot carry its own user model through the shared helpers.
type UserResolver[T any] interface {
	ByTelegramID(ctx context.Context, tgID int64) (T, error)
}

// ResolveSender loads the domain entity behind the update's sender.
func ResolveSender[T any](c tele.Context, resolver UserResolver[T]) (T, error) {
	var zero T
	sender := c.Sender()
	if sender == nil || resolver == nil {
		return zero, nil
	}
	return resolver.ByTelegramID(BuildContext(c), sender.ID)
}
