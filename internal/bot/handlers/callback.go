package handlers

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/diary-helper/internal/bot/menus"
	"github.com/vladimiradmaev/diary-helper/internal/bot/state"
	"github.com/vladimiradmaev/diary-helper/internal/database"
	"github.com/vladimiradmaev/diary-helper/internal/dateutil"
)

// CallbackHandler handles inline keyboard button presses
type CallbackHandler struct {
	api    *tgbotapi.BotAPI
	cmd    *CommandHandler
	states state.StateManager
}

// NewCallbackHandler creates a new callback handler
func NewCallbackHandler(api *tgbotapi.BotAPI, cmd *CommandHandler, states state.StateManager) *CallbackHandler {
	return &CallbackHandler{
		api:    api,
		cmd:    cmd,
		states: states,
	}
}

// Handle processes a callback query
func (h *CallbackHandler) Handle(ctx context.Context, query *tgbotapi.CallbackQuery, user *database.User) error {
	chatID := query.Message.Chat.ID

	switch {
	case query.Data == "show_today":
		return h.cmd.handleToday(ctx, chatID, user)

	case query.Data == "show_settings":
		return menus.SendSettingsMenu(h.api, chatID, user.Settings)

	case strings.HasPrefix(query.Data, "entries_prev_"), strings.HasPrefix(query.Data, "entries_next_"):
		return h.handleEntriesPage(ctx, query, user)
	}

	return nil
}

func (h *CallbackHandler) handleEntriesPage(ctx context.Context, query *tgbotapi.CallbackQuery, user *database.User) error {
	parts := strings.Split(query.Data, "_")
	page, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil || page < 1 {
		page = 1
	}

	lc, ok := h.states.GetListContext(user.TelegramID)
	if !ok {
		// Context expired; fall back to the current month.
		lc.Year, lc.Month = dateutil.CurrentMonth(userTimezone(user))
	}

	if err := h.cmd.sendEntriesPage(ctx, query.Message.Chat.ID, user, lc.Year, lc.Month, page); err != nil {
		return err
	}

	// Drop the superseded page to keep the chat tidy.
	deleteMsg := tgbotapi.NewDeleteMessage(query.Message.Chat.ID, query.Message.MessageID)
	h.api.Request(deleteMsg)
	return nil
}
