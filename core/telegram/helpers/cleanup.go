package helpers

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/xuelxng/exchange-bot/core/logger"
	"github.com/xuelxng/exchange-bot/core/telegram/sender"
)

const (
	discardAttempts = 3
	discardDelay    = 500 * time.Millisecond
)

// Discard schedules best-effort deletion of a message. The flow never waits
// for the result and never learns about failures; a message the user already
// removed counts as success.
func Discard(c tele.Context, msg tele.Editable) {
	if msg == nil {
		return
	}
	discard(c, msg, 0)
}

// DiscardAfter schedules deletion to start after the given delay, for
// notices that should stay on screen briefly before vanishing.
func DiscardAfter(c tele.Context, msg tele.Editable, delay time.Duration) {
	if msg == nil {
		return
	}
	discard(c, msg, delay)
}

// DiscardRef schedules best-effort deletion by raw chat and message ids,
// for callers that hold no handler context.
func DiscardRef(bot *tele.Bot, chatID int64, messageID int) {
	if bot == nil {
		return
	}
	msg := tele.StoredMessage{MessageID: strconv.Itoa(messageID), ChatID: chatID}
	ctx := context.Background()
	run := deleteWithRetry(ctx, bot, msg)

	disp := currentDispatcher()
	if disp == nil {
		go func() { _ = run() }()
		return
	}
	if err := disp.Enqueue(ctx, "discard", "deleteMessage", run); err != nil {
		if errors.Is(err, sender.ErrQueueFull) || errors.Is(err, sender.ErrQueueClosed) {
			go func() { _ = run() }()
			return
		}
		logger.Debug(ctx, "tg", "discard.enqueue_fail",
			slog.String("err", err.Error()),
		)
	}
}

func discard(c tele.Context, msg tele.Editable, delay time.Duration) {
	bot := c.Bot()
	ctx := BuildContext(c)
	run := deleteWithRetry(ctx, bot, msg)

	enqueue := func() {
		if err := sendAsync(c, "discard", "deleteMessage", run); err != nil {
			logger.Debug(ctx, "tg", "discard.enqueue_fail",
				slog.String("err", err.Error()),
			)
		}
	}

	if delay > 0 {
		time.AfterFunc(delay, enqueue)
		return
	}
	enqueue()
}

// deleteWithRetry builds the bounded retry loop shared by every discard
// variant. The returned closure never reports an error; the final failure
// is logged and swallowed.
func deleteWithRetry(ctx context.Context, bot tele.API, msg tele.Editable) func() error {
	msgID, chatID := msg.MessageSig()
	return func() error {
		var lastErr error
		for attempt := 1; attempt <= discardAttempts; attempt++ {
			err := bot.Delete(msg)
			if err == nil || isGone(err) {
				return nil
			}
			lastErr = err
			if attempt < discardAttempts {
				time.Sleep(discardDelay)
			}
		}
		logger.Debug(ctx, "tg", "discard.fail",
			slog.String("msg_id", msgID),
			slog.Int64("chat_id", chatID),
			slog.String("err", lastErr.Error()),
		)
		// Swallowed on purpose: stale keyboards are cosmetic.
		return nil
	}
}

// isGone reports whether deletion failed only because the message no longer
// exists or is too old for the API to touch.
func isGone(err error) bool {
	if err == nil {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "message to delete not found") ||
		strings.Contains(msg, "message can't be deleted") ||
		strings.Contains(msg, "message_id_invalid")
}
