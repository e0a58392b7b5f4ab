package telegram

import (
	"context"
	"strings"

	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/location"
)

// handleStart обрабатывает команду /start
func (h *Handlers) handleStart(msg *Message) {
	text, keyboard := h.formatter.FormatMainMenu()
	if err := h.client.SendMessageWithKeyboard(msg.ChatID, text, keyboard); err != nil {
		h.logger.Error("failed to send main menu", "chat_id", msg.ChatID, "error", err)
	}
}

// handleRatingCommand отвечает таблицей рейтинга на /rating
func (h *Handlers) handleRatingCommand(ctx context.Context, msg *Message) {
	ratings, err := h.ratingService.CalculateRatings(ctx)
	if err != nil {
		h.logger.Error("failed to calculate ratings", "chat_id", msg.ChatID, "error", err)
		h.reply(msg.ChatID, "Ошибка расчёта рейтинга")
		return
	}
	h.reply(msg.ChatID, h.formatter.FormatRatings(ratings, ratingLimit))
}

// handleRating показывает рейтинг из главного меню
func (h *Handlers) handleRating(ctx context.Context, cb *CallbackQuery) {
	ratings, err := h.ratingService.CalculateRatings(ctx)
	if err != nil {
		h.logger.Error("failed to calculate ratings", "chat_id", cb.Message.ChatID, "error", err)
		h.reply(cb.Message.ChatID, "Ошибка расчёта рейтинга")
		return
	}
	keyboard := NewInlineKeyboardMarkup(NewInlineKeyboardRow(
		NewInlineKeyboardButtonData("🏠 Главное меню", "back:main"),
	))
	if err := h.client.EditMessageTextAndMarkup(cb.Message.ChatID, cb.Message.MessageID, h.formatter.FormatRatings(ratings, ratingLimit), keyboard); err != nil {
		h.logger.Error("failed to edit message with ratings", "chat_id", cb.Message.ChatID, "error", err)
	}
}

// handleLocations обрабатывает запрос списка локаций
func (h *Handlers) handleLocations(ctx context.Context, cb *CallbackQuery) {
	locations, err := h.locationService.List(ctx)
	if err != nil {
		h.logger.Error("failed to list locations", "chat_id", cb.Message.ChatID, "error", err)
		h.reply(cb.Message.ChatID, "Ошибка получения локаций")
		return
	}

	text, keyboard := h.formatter.FormatLocationsList(locations, "loc:")
	if err := h.client.EditMessageTextAndMarkup(cb.Message.ChatID, cb.Message.MessageID, text, keyboard); err != nil {
		h.logger.Error("failed to edit message with locations list", "chat_id", cb.Message.ChatID, "error", err)
	}
}

// handleLocationSelection обрабатывает выбор конкретной локации (формат: loc:{id})
func (h *Handlers) handleLocationSelection(ctx context.Context, cb *CallbackQuery) {
	id := strings.TrimPrefix(cb.Data, "loc:")
	loc, err := h.locationService.Get(ctx, location.LocationID(id))
	if err != nil {
		h.logger.Error("failed to get location", "location_id", id, "chat_id", cb.Message.ChatID, "error", err)
		h.reply(cb.Message.ChatID, "Локация не найдена")
		return
	}

	text, keyboard := h.formatter.FormatLocationDetails(loc)
	if err := h.client.EditMessageTextAndMarkup(cb.Message.ChatID, cb.Message.MessageID, text, keyboard); err != nil {
		h.logger.Error("failed to edit message with location details", "chat_id", cb.Message.ChatID, "error", err)
	}
}

// handleBackToMain обрабатывает возврат в главное меню
func (h *Handlers) handleBackToMain(cb *CallbackQuery) {
	text, keyboard := h.formatter.FormatMainMenu()
	if err := h.client.EditMessageTextAndMarkup(cb.Message.ChatID, cb.Message.MessageID, text, keyboard); err != nil {
		h.logger.Error("failed to edit message with main menu", "chat_id", cb.Message.ChatID, "error", err)
	}
}
