package menus

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/diary-helper/internal/bot/keyboards"
	"github.com/vladimiradmaev/diary-helper/internal/database"
)

// SendMainMenu sends the greeting with the command overview
func SendMainMenu(api *tgbotapi.BotAPI, chatID int64, firstName string) error {
	if firstName == "" {
		firstName = "Пользователь"
	}

	text := fmt.Sprintf(`👋 Привет, %s!

📔 Это бот-дневник для ведения записей.

🔹 Основные команды:
• /add [оценка] текст - добавить запись
• /today - посмотреть запись на сегодня
• /list [YYYY-MM] - список записей за месяц
• /stats [YYYY] - статистика за год
• /export csv|json [YYYY] - экспорт записей

⚙️ Настройки:
• /settings - показать настройки
• /reminder_on/off - напоминания
• /reminder_time HH:MM - время напоминания
• /timezone <IANA> - часовой пояс`, firstName)

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboards.MainMenu()
	_, err := api.Send(msg)
	return err
}

// SendSettingsMenu sends the current settings view
func SendSettingsMenu(api *tgbotapi.BotAPI, chatID int64, settings database.Settings) error {
	remindersText := "❌ Выключены"
	if settings.RemindersEnabled {
		remindersText = "✅ Включены"
	}

	text := fmt.Sprintf(`⚙️ Текущие настройки:

🔔 Напоминания: %s
⏰ Время напоминания: %02d:%02d
🌍 Часовой пояс: %s

Команды для изменения:
• /reminder_on - включить напоминания
• /reminder_off - выключить напоминания
• /reminder_time HH:MM - изменить время
• /timezone <IANA> - изменить часовой пояс`,
		remindersText, settings.ReminderHour, settings.ReminderMinute, settings.Timezone)

	msg := tgbotapi.NewMessage(chatID, text)
	_, err := api.Send(msg)
	return err
}
