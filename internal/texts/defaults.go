package texts

// builtin is the shipped text catalog. Stored overrides win over these;
// the English entry is the last resort before the missing-translation
// placeholder.
var builtin = map[string]map[string]string{
	"greetings": {
		"en": "Hello! Welcome to the bot. How can I assist you today?",
		"ru": "Привет! Добро пожаловать в бота. Чем я могу вам помочь сегодня?",
	},
	"admin_panel": {
		"en": "Welcome to the admin panel. Here you can manage users and settings.",
		"ru": "Добро пожаловать в панель администратора. Здесь вы можете управлять пользователями и настройками.",
	},
	"exchange_button": {"en": "💱 Exchange", "ru": "💱 Обмен"},
	"rate_button":     {"en": "📊 Get rate", "ru": "📊 Узнать курс"},
	"about_button":    {"en": "ℹ️ About Us", "ru": "ℹ️ О нас"},
	"settings_button": {"en": "⚙️ Settings", "ru": "⚙️ Настройки"},
	"admin_button":    {"en": "🔧 Admin Panel", "ru": "🔧 Панель администратора"},
	"back_to_main_menu_button": {
		"en": "🏠 Back to Main Menu",
		"ru": "🏠 Назад в главное меню",
	},
	"settings_text": {
		"en": "Here you can adjust the bot settings.",
		"ru": "Здесь вы можете настроить параметры бота.",
	},
	"enter_amount_text": {
		"en": "Enter the amount you want to exchange.",
		"ru": "Введите сумму, которую вы хотите обменять.",
	},
	"choose_currency_to_exchange": {
		"en": "Choose the currency you want to get.",
		"ru": "Выберите валюту, которую вы хотите получить.",
	},
	"enter_account_number": {
		"en": "Enter card or phone number of receiver.",
		"ru": "Введите номер карты или телефона получателя.",
	},
	"enter_bank": {
		"en": "Enter bank name.",
		"ru": "Введите название банка.",
	},
	"enter_receiver": {
		"en": "Enter name of receiver.",
		"ru": "Введите имя получателя.",
	},
	"incorrect_amount": {
		"en": "Incorrect amount. Please enter a valid number.",
		"ru": "Неверная сумма. Пожалуйста, введите корректное число.",
	},
	"invalid_account_number": {
		"en": "Invalid account number. Please enter a valid phone number or bank card number.",
		"ru": "Неверный номер счета. Пожалуйста, введите корректный номер телефона или банковской карты.",
	},
	"order_application_template": {
		"en": "Order Application:\n\n- Amount: {amount}\n- Currency: {currency_name}\n- Account Number: {account_number}\n- Bank: {bank}\n- Receiver: {receiver}\n\nMake sure you have filled correctly all fields before submitting the order.",
		"ru": "Заявка на обмен:\n\n- Сумма: {amount}\n- Валюта: {currency_name}\n- Номер счета: {account_number}\n- Банк: {bank}\n- Получатель: {receiver}\n\nПожалуйста, убедитесь, что все поля заполнены правильно перед отправкой заявки на обмен.",
	},
	"submit_button":     {"en": "Submit", "ru": "Отправить"},
	"start_over_button": {"en": "Start Over", "ru": "Начать заново"},
	"order_sent": {
		"en": "Order sent successfully!",
		"ru": "Заявка успешно отправлена!",
	},
	"rate_template": {
		"en": "Current exchange rates:",
		"ru": "Текущие курсы обмена:",
	},
	"no_currency_pairs": {
		"en": "No currency pairs available.",
		"ru": "Нет доступных пар валют.",
	},
	"about_us_text": {"en": "About Us", "ru": "О нас"},
	"payment_order_button": {
		"en": "🛒 Payment Orders",
		"ru": "🛒 Платежные заказы",
	},
	"payment_order_template": {
		"en": "Payment Order:\n\n- Amount with currency: {amount_with_currency}\n- Category: {category}\n- Link: {link}\n\nMake sure you have filled correctly all fields before submitting the order.",
		"ru": "Платежный заказ:\n\n- Сумма с валютой: {amount_with_currency}\n- Категория: {category}\n- Ссылка: {link}\n\nПожалуйста, убедитесь, что все поля заполнены правильно перед отправкой платежного заказа.",
	},
	"choose_payment_category": {
		"en": "Choose payment category:",
		"ru": "Выберите категорию платежей:",
	},
	"choose_payment_amount": {
		"en": "Enter payment amount with currency:",
		"ru": "Введите сумму платежа с валютой:",
	},
	"send_link": {
		"en": "Send link to the payment target:",
		"ru": "Отправьте ссылку на цель платежа:",
	},
	"payment_order_sent": {
		"en": "Payment order sent successfully!",
		"ru": "Платежный заказ успешно отправлен!",
	},
	"terms_of_service_button": {
		"en": "📝 Terms of Service",
		"ru": "📝 Пользовательское соглашение",
	},
	"terms_of_service_link": {
		"en": "https://simple-exchange-bot.example.com/terms-of-service",
		"ru": "https://simple-exchange-bot.example.com/terms-of-service",
	},
	"agree_button": {"en": "✅ Agree", "ru": "✅ Соглашаюсь"},
	"must_agree_with_terms": {
		"en": "You must agree with the terms of service to use the bot.",
		"ru": "Вы должны согласиться с пользовательским соглашением для использования бота.",
	},
	"too_many_requests": {
		"en": "Please do not send messages too frequently.",
		"ru": "Пожалуйста, не отправляйте сообщения слишком часто.",
	},
}

// BuiltinKeys returns every key in the shipped catalog, for seeding.
func BuiltinKeys() []string {
	keys := make([]string, 0, len(builtin))
	for k := range builtin {
		keys = append(keys, k)
	}
	return keys
}

// BuiltinEntry returns the shipped translations for a key, or nil.
func BuiltinEntry(key string) map[string]string {
	return builtin[key]
}
