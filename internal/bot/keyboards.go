package bot

import (
	tele "gopkg.in/telebot.v4"

	"github.com/xuelxng/exchange-bot/core/telegram/keyboard"
)

// Callback keys owned by the menu layer. Flow keys live in internal/flows.
const (
	cbMainMenu     = "main_menu"
	cbExchange     = "exchange_button"
	cbPaymentOrder = "payment_order_button"
	cbRates        = "rate_button"
	cbAbout        = "about_button"
	cbSettings     = "settings_button"
	cbAdminPanel   = "admin_button"
	cbSetLanguage  = "set_lang"
	cbAgreeTerms   = "agree_terms"
)

func mainMenuKeyboard(t map[string]string, isAdmin bool) *tele.ReplyMarkup {
	rows := [][]keyboard.InlineBtn{
		{{Text: t["exchange_button"], Unique: cbExchange}},
		{{Text: t["payment_order_button"], Unique: cbPaymentOrder}},
		{
			{Text: t["rate_button"], Unique: cbRates},
			{Text: t["about_button"], Unique: cbAbout},
		},
		{{Text: t["settings_button"], Unique: cbSettings}},
	}
	if isAdmin {
		rows = append(rows, []keyboard.InlineBtn{{Text: t["admin_button"], Unique: cbAdminPanel}})
	}
	return keyboard.InlineRows(rows...)
}

func termsKeyboard(t map[string]string) *tele.ReplyMarkup {
	return keyboard.InlineRows(
		[]keyboard.InlineBtn{{Text: t["terms_of_service_button"], URL: t["terms_of_service_link"]}},
		[]keyboard.InlineBtn{{Text: t["agree_button"], Unique: cbAgreeTerms}},
	)
}

func settingsKeyboard(t map[string]string) *tele.ReplyMarkup {
	return keyboard.InlineRows(
		[]keyboard.InlineBtn{
			{Text: "🇷🇺 Русский", Unique: cbSetLanguage, Data: "ru"},
			{Text: "🇺🇸 English", Unique: cbSetLanguage, Data: "en"},
		},
		[]keyboard.InlineBtn{{Text: t["back_to_main_menu_button"], Unique: cbMainMenu}},
	)
}

func backToMenuKeyboard(t map[string]string) *tele.ReplyMarkup {
	return keyboard.InlineRows(
		[]keyboard.InlineBtn{{Text: t["back_to_main_menu_button"], Unique: cbMainMenu}},
	)
}
