package bot

import (
	"context"
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/xuelxng/exchange-bot/core/telegram/callbacks"
	"github.com/xuelxng/exchange-bot/core/telegram/format"
	"github.com/xuelxng/exchange-bot/core/telegram/helpers"
	"github.com/xuelxng/exchange-bot/internal/flows"
	"github.com/xuelxng/exchange-bot/internal/models"
	"github.com/xuelxng/exchange-bot/internal/repository"
)

func requestContext(c tele.Context) context.Context {
	return helpers.BuildContext(c)
}

// senderLanguage prefers the stored preference, then the Telegram client
// language, then the configured default.
func (a *App) senderLanguage(c tele.Context) string {
	sender := c.Sender()
	if sender == nil {
		return a.cfg.Bot.DefaultLanguage
	}
	if user, err := helpers.ResolveSender[models.User](c, a.users); err == nil && user.Language != "" {
		return user.Language
	}
	if sender.LanguageCode != "" {
		return sender.LanguageCode
	}
	return a.cfg.Bot.DefaultLanguage
}

func (a *App) actorFrom(c tele.Context) flows.Actor {
	sender := c.Sender()
	if sender == nil {
		return flows.Actor{Language: a.cfg.Bot.DefaultLanguage}
	}
	return flows.Actor{
		ID:        sender.ID,
		FirstName: sender.FirstName,
		Username:  sender.Username,
		Language:  a.senderLanguage(c),
	}
}

// anchorRef addresses the message a callback was pressed on.
func anchorRef(c tele.Context) (flows.Ref, error) {
	msg := c.Message()
	if msg == nil || msg.Chat == nil {
		return flows.Ref{}, fmt.Errorf("callback without a message")
	}
	return flows.Ref{ChatID: msg.Chat.ID, MessageID: msg.ID}, nil
}

// handleStart refreshes the user record, clears any open dialogue, and
// shows either the terms gate or the main menu.
func (a *App) handleStart(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	ctx := requestContext(c)

	a.states.Reset(sender.ID)

	user, err := a.users.GetOrCreate(ctx, sender.ID, repository.Profile{
		Username:  emptyToNil(sender.Username),
		FirstName: emptyToNil(sender.FirstName),
		LastName:  emptyToNil(sender.LastName),
	})
	if err != nil {
		return err
	}

	lang := user.Language
	if !user.AgreedTerms {
		t := a.resolver.Resolve(ctx,
			[]string{"must_agree_with_terms", "terms_of_service_button", "terms_of_service_link", "agree_button"}, lang)
		return helpers.SendText(c, t["must_agree_with_terms"], termsKeyboard(t))
	}
	return a.sendMainMenu(c, user.IsAdmin, lang)
}

// handleAgreeTerms flips the agreement flag and lets the user in.
func (a *App) handleAgreeTerms(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	ctx := requestContext(c)
	if err := a.users.AgreeTerms(ctx, sender.ID); err != nil {
		return err
	}
	return a.editMainMenu(c)
}

// handleAdmin opens the admin panel. The admin gate runs in middleware.
func (a *App) handleAdmin(c tele.Context) error {
	a.states.Reset(c.Sender().ID)
	lang := a.senderLanguage(c)
	t := a.resolver.Resolve(requestContext(c),
		[]string{"admin_panel", "back_to_main_menu_button"}, lang)
	return helpers.SendText(c, t["admin_panel"], backToMenuKeyboard(t))
}

func (a *App) handleMainMenu(c tele.Context) error {
	a.states.Reset(c.Sender().ID)
	return a.editMainMenu(c)
}

func (a *App) sendMainMenu(c tele.Context, isAdmin bool, lang string) error {
	t := a.resolver.Resolve(requestContext(c), mainMenuKeys(), lang)
	return helpers.SendText(c, t["greetings"], mainMenuKeyboard(t, isAdmin))
}

func (a *App) editMainMenu(c tele.Context) error {
	isAdmin := false
	lang := a.cfg.Bot.DefaultLanguage
	if user, err := helpers.ResolveSender[models.User](c, a.users); err == nil {
		isAdmin = user.IsAdmin
		if user.Language != "" {
			lang = user.Language
		}
	}
	t := a.resolver.Resolve(requestContext(c), mainMenuKeys(), lang)
	return helpers.EditOrSendText(c, t["greetings"], mainMenuKeyboard(t, isAdmin))
}

func mainMenuKeys() []string {
	return []string{
		"greetings", "exchange_button", "payment_order_button",
		"rate_button", "about_button", "settings_button", "admin_button",
	}
}

// handleRates renders the published currency pairs.
func (a *App) handleRates(c tele.Context) error {
	ctx := requestContext(c)
	lang := a.senderLanguage(c)
	t := a.resolver.Resolve(ctx,
		[]string{"rate_template", "no_currency_pairs", "back_to_main_menu_button"}, lang)

	pairs, err := a.pairs.ListActive(ctx)
	if err != nil {
		return err
	}
	if len(pairs) == 0 {
		return helpers.EditText(c, t["no_currency_pairs"], backToMenuKeyboard(t))
	}

	var b strings.Builder
	b.WriteString(t["rate_template"])
	for _, p := range pairs {
		b.WriteString(fmt.Sprintf("\n%s → %s: %s", p.FromName, p.ToName, format.Amount(p.Rate)))
	}
	return helpers.EditText(c, b.String(), backToMenuKeyboard(t))
}

func (a *App) handleAbout(c tele.Context) error {
	t := a.resolver.Resolve(requestContext(c),
		[]string{"about_us_text", "back_to_main_menu_button"}, a.senderLanguage(c))
	return helpers.EditText(c, t["about_us_text"], backToMenuKeyboard(t))
}

func (a *App) handleSettings(c tele.Context) error {
	t := a.resolver.Resolve(requestContext(c),
		[]string{"settings_text", "back_to_main_menu_button"}, a.senderLanguage(c))
	return helpers.EditText(c, t["settings_text"], settingsKeyboard(t))
}

// handleSetLanguage persists the chosen language and re-renders settings
// in it.
func (a *App) handleSetLanguage(c tele.Context) error {
	lang := callbacks.Payload(c)
	if lang != "ru" && lang != "en" {
		return nil
	}
	if err := a.users.SetLanguage(requestContext(c), c.Sender().ID, lang); err != nil {
		return err
	}
	return a.handleSettings(c)
}

func emptyToNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
