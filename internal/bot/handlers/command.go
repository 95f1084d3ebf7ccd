package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/diary-helper/internal/bot/keyboards"
	"github.com/vladimiradmaev/diary-helper/internal/bot/menus"
	"github.com/vladimiradmaev/diary-helper/internal/bot/parsing"
	"github.com/vladimiradmaev/diary-helper/internal/bot/state"
	"github.com/vladimiradmaev/diary-helper/internal/database"
	"github.com/vladimiradmaev/diary-helper/internal/dateutil"
	apperrors "github.com/vladimiradmaev/diary-helper/internal/errors"
	"github.com/vladimiradmaev/diary-helper/internal/logger"
)

// CommandHandler handles bot commands
type CommandHandler struct {
	api    *tgbotapi.BotAPI
	deps   Dependencies
	states state.StateManager
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(api *tgbotapi.BotAPI, deps Dependencies, states state.StateManager) *CommandHandler {
	return &CommandHandler{
		api:    api,
		deps:   deps,
		states: states,
	}
}

func userTimezone(user *database.User) string {
	if user.Settings.Timezone == "" {
		return dateutil.DefaultTimezone
	}
	return user.Settings.Timezone
}

// Handle processes a command message
func (h *CommandHandler) Handle(ctx context.Context, message *tgbotapi.Message, user *database.User) error {
	logger.Infof("Handling command %s from user %d", message.Command(), user.TelegramID)

	chatID := message.Chat.ID
	args := strings.TrimSpace(message.CommandArguments())

	switch message.Command() {
	case "start", "help":
		return menus.SendMainMenu(h.api, chatID, message.From.FirstName)
	case "add":
		return h.handleAdd(ctx, chatID, user, args)
	case "today":
		return h.handleToday(ctx, chatID, user)
	case "list":
		return h.handleList(ctx, chatID, user, args)
	case "stats":
		return h.handleStats(ctx, chatID, user, args)
	case "export":
		return h.handleExport(ctx, chatID, user, args)
	case "settings":
		return menus.SendSettingsMenu(h.api, chatID, user.Settings)
	case "reminder_on":
		if err := h.deps.UserService.SetRemindersEnabled(ctx, user.ID, true); err != nil {
			return h.replyError(chatID, err)
		}
		return h.send(chatID, "✅ Напоминания включены")
	case "reminder_off":
		if err := h.deps.UserService.SetRemindersEnabled(ctx, user.ID, false); err != nil {
			return h.replyError(chatID, err)
		}
		return h.send(chatID, "❌ Напоминания выключены")
	case "reminder_time":
		return h.handleReminderTime(ctx, chatID, user, args)
	case "timezone":
		return h.handleTimezone(ctx, chatID, user, args)
	default:
		return h.send(chatID, "Неизвестная команда. Используйте /help для просмотра доступных команд.")
	}
}

func (h *CommandHandler) send(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := h.api.Send(msg)
	return err
}

// replyError surfaces validation and not-found messages to the user and
// hides everything else behind a generic reply.
func (h *CommandHandler) replyError(chatID int64, err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) &&
		(appErr.Type == apperrors.ErrorTypeValidation || appErr.Type == apperrors.ErrorTypeNotFound) {
		return h.send(chatID, "❌ "+appErr.Message)
	}

	logger.Errorf("Command failed: %v", err)
	return h.send(chatID, "❌ Произошла ошибка. Попробуйте позже.")
}

func (h *CommandHandler) handleAdd(ctx context.Context, chatID int64, user *database.User, args string) error {
	if args == "" {
		return h.send(chatID, `📝 Добавление записи в дневник

Формат: /add [оценка] текст

Примеры:
• /add Хороший день на работе
• /add 8 Отличная встреча с друзьями

Оценка от 1 до 10 (необязательно)`)
	}

	parsed, ok := parsing.ParseAddCommand(args)
	if !ok {
		return h.send(chatID, "❌ Неверный формат команды. Используйте: /add [оценка] текст")
	}

	entry, wasUpdate, err := h.deps.DiaryService.AddEntry(ctx, user, parsed.Text, parsed.Rating)
	if err != nil {
		return h.replyError(chatID, err)
	}

	status := "✅ Запись добавлена"
	if wasUpdate {
		status = "✏️ Запись обновлена"
	}
	return h.send(chatID, status+"\n\n"+formatEntryMessage(entry, userTimezone(user)))
}

func (h *CommandHandler) handleToday(ctx context.Context, chatID int64, user *database.User) error {
	entry, err := h.deps.DiaryService.TodayEntry(ctx, user)
	if err != nil {
		return h.replyError(chatID, err)
	}

	if entry == nil {
		return h.send(chatID, "📝 Записи на сегодня пока нет.\n\nДобавьте запись: /add [оценка] текст")
	}
	return h.send(chatID, "📅 Запись на сегодня:\n\n"+formatEntryMessage(entry, userTimezone(user)))
}

func (h *CommandHandler) handleList(ctx context.Context, chatID int64, user *database.User, args string) error {
	year, month := dateutil.CurrentMonth(userTimezone(user))
	if args != "" {
		var ok bool
		year, month, ok = parsing.ParseMonth(args)
		if !ok {
			return h.send(chatID, "❌ Неверный формат месяца. Используйте: YYYY-MM")
		}
	}

	// Pagination buttons carry only the page; remember which month is open.
	h.states.SetListContext(user.TelegramID, state.ListContext{Year: year, Month: month})

	return h.sendEntriesPage(ctx, chatID, user, year, month, 1)
}

func (h *CommandHandler) sendEntriesPage(ctx context.Context, chatID int64, user *database.User, year, month, page int) error {
	entries, err := h.deps.DiaryService.EntriesForMonth(ctx, user, year, month, page)
	if err != nil {
		return h.replyError(chatID, err)
	}

	msg := tgbotapi.NewMessage(chatID, formatEntriesList(entries))
	if entries.HasNext || entries.HasPrevious {
		msg.ReplyMarkup = keyboards.EntriesPagination(page, entries.HasPrevious, entries.HasNext)
	}
	_, err = h.api.Send(msg)
	return err
}

func (h *CommandHandler) handleStats(ctx context.Context, chatID int64, user *database.User, args string) error {
	year := dateutil.CurrentYear(userTimezone(user))
	if args != "" {
		var ok bool
		year, ok = parsing.ParseYear(args)
		if !ok {
			return h.send(chatID, "❌ Неверный формат года. Используйте: YYYY")
		}
	}

	stats, err := h.deps.StatsService.ForYear(ctx, user, year)
	if err != nil {
		return h.replyError(chatID, err)
	}
	return h.send(chatID, formatStatsMessage(stats, year))
}

func (h *CommandHandler) handleExport(ctx context.Context, chatID int64, user *database.User, args string) error {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return h.send(chatID, `📤 Экспорт записей

Формат: /export <format> [год]

Форматы: csv, json
Примеры:
• /export csv
• /export json 2023
• /export csv 2024`)
	}

	format, ok := parsing.ParseExportFormat(fields[0])
	if !ok {
		return h.send(chatID, "❌ Неверный формат. Используйте: csv или json")
	}

	year := dateutil.CurrentYear(userTimezone(user))
	if len(fields) > 1 {
		year, ok = parsing.ParseYear(fields[1])
		if !ok {
			return h.send(chatID, "❌ Неверный формат года. Используйте: YYYY")
		}
	}

	if err := h.send(chatID, "⏳ Готовлю экспорт..."); err != nil {
		return err
	}

	content, filename, err := h.deps.DiaryService.Export(ctx, user, format, year)
	if err != nil {
		return h.replyError(chatID, err)
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  filename,
		Bytes: []byte(content),
	})
	doc.Caption = fmt.Sprintf("📤 Экспорт записей в формате %s", strings.ToUpper(string(format)))
	_, err = h.api.Send(doc)
	return err
}

func (h *CommandHandler) handleReminderTime(ctx context.Context, chatID int64, user *database.User, args string) error {
	if args == "" {
		return h.send(chatID, `⏰ Установка времени напоминания

Формат: /reminder_time HH:MM

Примеры:
• /reminder_time 21:00
• /reminder_time 09:30`)
	}

	hour, minute, ok := parsing.ParseReminderTime(args)
	if !ok {
		return h.send(chatID, "❌ Неверный формат времени. Используйте: HH:MM (например, 21:00)")
	}

	if err := h.deps.UserService.SetReminderTime(ctx, user.ID, hour, minute); err != nil {
		return h.replyError(chatID, err)
	}
	return h.send(chatID, fmt.Sprintf("⏰ Время напоминания установлено: %02d:%02d", hour, minute))
}

func (h *CommandHandler) handleTimezone(ctx context.Context, chatID int64, user *database.User, args string) error {
	if args == "" {
		return h.send(chatID, `🌍 Установка часового пояса

Формат: /timezone <IANA>

Примеры:
• /timezone Europe/Warsaw
• /timezone America/New_York
• /timezone Asia/Tokyo
• /timezone UTC`)
	}

	if err := h.deps.UserService.SetTimezone(ctx, user.ID, args); err != nil {
		return h.replyError(chatID, err)
	}
	return h.send(chatID, "🌍 Часовой пояс установлен: "+args)
}
