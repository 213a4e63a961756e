package router

import (
	"time"

	tele "gopkg.in/telebot.v4"

	tg "github.com/xuelxng/exchange-bot/core/telegram"
	"github.com/xuelxng/exchange-bot/core/telegram/middleware"
)

// FSM is the slice of the state manager the text router needs.
type FSM interface {
	InProgress(userID int64) bool
	Dispatch(c tele.Context) error
}

// TextOptions controls fallback behaviour for unrecognized text.
type TextOptions struct {
	UnknownText tele.HandlerFunc
}

// TextRoute builds the OnText handler. An active dialogue always wins:
// whatever the user typed goes to the FSM state handler. Outside a dialogue
// the text may match a command alias, then the fallback.
func TextRoute(fsmMgr FSM, reg *tg.Registry, opts TextOptions) tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()

		if fsmMgr != nil {
			if sender := c.Sender(); sender != nil && fsmMgr.InProgress(sender.ID) {
				return handleWithSummary(c, "fsm", start, func() error {
					return fsmMgr.Dispatch(c)
				})
			}
		}

		if reg != nil {
			if key, cmd, ok := reg.LookupCommand(c.Text()); ok && cmd.Handler != nil {
				return handleWithSummary(c, normalizeHandlerName(key), start, func() error {
					return cmd.Handler(c)
				})
			}
			if fb := reg.TextFallback(); fb != nil {
				return handleWithSummary(c, "fallback", start, func() error {
					return fb(c)
				})
			}
		}

		if opts.UnknownText != nil {
			return handleWithSummary(c, "unknown_text", start, func() error {
				return opts.UnknownText(c)
			})
		}

		logHandlerSummary(c, "unknown_text", start, "skip", nil)
		return nil
	}

	return tg.Route{
		Endpoint: tele.OnText,
		Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
	}
}
