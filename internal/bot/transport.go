package bot

import (
	"context"
	"strconv"
	"sync/atomic"

	tele "gopkg.in/telebot.v4"

	"github.com/xuelxng/exchange-bot/core/telegram/helpers"
	"github.com/xuelxng/exchange-bot/core/telegram/keyboard"
	"github.com/xuelxng/exchange-bot/internal/flows"
)

// teleTransport adapts the flow engine's transport contract onto a live
// telebot instance. The bot arrives only once the runtime is up, so it is
// bound late via Bind.
type teleTransport struct {
	bot atomic.Pointer[tele.Bot]
}

func newTeleTransport() *teleTransport { return &teleTransport{} }

// Bind attaches the live bot. Must happen before any update is processed;
// the runtime's OnStart hook is the natural place.
func (t *teleTransport) Bind(bot *tele.Bot) { t.bot.Store(bot) }

func (t *teleTransport) Edit(_ context.Context, ref flows.Ref, text string, kb flows.Keyboard) error {
	bot := t.bot.Load()
	msg := storedMessage(ref)
	if kb == nil {
		_, err := bot.Edit(msg, text)
		return err
	}
	_, err := bot.Edit(msg, text, markupFor(kb))
	return err
}

func (t *teleTransport) Forward(_ context.Context, chatID int64, html string) error {
	_, err := t.bot.Load().Send(tele.ChatID(chatID), html, &tele.SendOptions{ParseMode: tele.ModeHTML})
	return err
}

// Discard satisfies the engine's janitor contract with the shared
// best-effort deletion helper.
func (t *teleTransport) Discard(ref flows.Ref) {
	helpers.DiscardRef(t.bot.Load(), ref.ChatID, ref.MessageID)
}

func storedMessage(ref flows.Ref) tele.StoredMessage {
	return tele.StoredMessage{
		MessageID: strconv.Itoa(ref.MessageID),
		ChatID:    ref.ChatID,
	}
}

func markupFor(kb flows.Keyboard) *tele.ReplyMarkup {
	rows := make([][]keyboard.InlineBtn, 0, len(kb))
	for _, row := range kb {
		btns := make([]keyboard.InlineBtn, 0, len(row))
		for _, b := range row {
			btns = append(btns, keyboard.InlineBtn{Text: b.Text, Unique: b.Key, Data: b.Data})
		}
		rows = append(rows, btns)
	}
	return keyboard.InlineRows(rows...)
}
