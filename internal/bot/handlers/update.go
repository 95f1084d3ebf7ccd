package handlers

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/diary-helper/internal/bot/state"
	"github.com/vladimiradmaev/diary-helper/internal/logger"
)

// UpdateHandler handles telegram updates and coordinates other handlers
type UpdateHandler struct {
	api             *tgbotapi.BotAPI
	deps            Dependencies
	commandHandler  *CommandHandler
	callbackHandler *CallbackHandler
}

// NewUpdateHandler creates a new update handler
func NewUpdateHandler(api *tgbotapi.BotAPI, deps Dependencies, states state.StateManager) *UpdateHandler {
	commandHandler := NewCommandHandler(api, deps, states)
	return &UpdateHandler{
		api:             api,
		deps:            deps,
		commandHandler:  commandHandler,
		callbackHandler: NewCallbackHandler(api, commandHandler, states),
	}
}

// Handle processes a telegram update
func (h *UpdateHandler) Handle(ctx context.Context, update tgbotapi.Update) error {
	if update.Message == nil && update.CallbackQuery == nil {
		return nil
	}

	var from *tgbotapi.User
	if update.Message != nil {
		from = update.Message.From
	} else {
		from = update.CallbackQuery.From
	}
	if from == nil {
		return nil
	}

	// Users and their default settings are created eagerly on first contact.
	user, err := h.deps.UserService.RegisterUser(ctx, from.ID, from.UserName, from.FirstName, from.LastName)
	if err != nil {
		logger.Errorf("Error registering user %d: %v", from.ID, err)
		return fmt.Errorf("failed to register user: %w", err)
	}

	if update.CallbackQuery != nil {
		// Answer callback query to remove loading state
		callback := tgbotapi.NewCallback(update.CallbackQuery.ID, "")
		if _, err := h.api.Request(callback); err != nil {
			logger.Warningf("Failed to answer callback query: %v", err)
		}
		return h.callbackHandler.Handle(ctx, update.CallbackQuery, user)
	}

	if update.Message.IsCommand() {
		return h.commandHandler.Handle(ctx, update.Message, user)
	}

	if update.Message.Text != "" {
		msg := tgbotapi.NewMessage(update.Message.Chat.ID,
			"Я понимаю только команды. Используйте /help для просмотра доступных команд.")
		_, err := h.api.Send(msg)
		return err
	}

	return nil
}
