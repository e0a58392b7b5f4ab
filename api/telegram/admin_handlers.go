package telegram

import (
	"context"
	"fmt"
	"strings"

	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/location"
)

// handleAdminCallback обрабатывает admin:* callback'и, права уже проверены
func (h *Handlers) handleAdminCallback(ctx context.Context, cb *CallbackQuery) {
	switch {
	case cb.Data == "admin:menu":
		text, keyboard := h.formatter.FormatAdminMenu()
		if err := h.client.EditMessageTextAndMarkup(cb.Message.ChatID, cb.Message.MessageID, text, keyboard); err != nil {
			h.logger.Error("failed to edit message with admin menu", "chat_id", cb.Message.ChatID, "error", err)
		}
	case cb.Data == "admin:create_location":
		h.reply(cb.Message.ChatID, h.formatter.FormatCreateLocationPrompt())
	case cb.Data == "admin:delete_location":
		h.handleAdminDeleteLocation(ctx, cb)
	case strings.HasPrefix(cb.Data, "admin:del:"):
		h.handleAdminConfirmDeleteLocation(ctx, cb)
	default:
		h.logger.Warn("unknown admin callback", "callback_data", cb.Data)
	}
}

// handleAdminCreateLocation: /add_location Название|Адрес|URL карты
func (h *Handlers) handleAdminCreateLocation(ctx context.Context, msg *Message, input string) {
	if !h.isAdmin(ctx, msg.From.ID) {
		h.reply(msg.ChatID, "❌ У вас нет прав администратора")
		return
	}

	var name, address, addressURL string
	parts := strings.Split(input, "|")
	name = strings.TrimSpace(parts[0])
	if len(parts) >= 2 {
		address = strings.TrimSpace(parts[1])
	}
	if len(parts) >= 3 {
		addressURL = strings.TrimSpace(parts[2])
	}

	if name == "" {
		h.reply(msg.ChatID, h.formatter.FormatCreateLocationPrompt())
		return
	}

	loc, err := h.locationService.Create(ctx, location.CreateLocationInput{
		Name:          name,
		Address:       address,
		AddressMapURL: addressURL,
	})
	if err != nil {
		h.logger.Error("failed to create location", "location_name", name, "chat_id", msg.ChatID, "error", err)
		h.reply(msg.ChatID, fmt.Sprintf("❌ Ошибка создания локации: %v", err))
		return
	}

	text, keyboard := h.formatter.FormatLocationCreated(loc)
	if err := h.client.SendMessageWithKeyboard(msg.ChatID, text, keyboard); err != nil {
		h.logger.Error("failed to send location created message", "chat_id", msg.ChatID, "location_id", string(loc.ID), "error", err)
	}
}

// handleAdminDeleteLocation показывает локации с кнопками удаления
func (h *Handlers) handleAdminDeleteLocation(ctx context.Context, cb *CallbackQuery) {
	locations, err := h.locationService.List(ctx)
	if err != nil {
		h.logger.Error("failed to list locations", "chat_id", cb.Message.ChatID, "error", err)
		h.reply(cb.Message.ChatID, "Ошибка получения локаций")
		return
	}
	text, keyboard := h.formatter.FormatLocationsList(locations, "admin:del:")
	if err := h.client.EditMessageTextAndMarkup(cb.Message.ChatID, cb.Message.MessageID, text, keyboard); err != nil {
		h.logger.Error("failed to edit message with locations list", "chat_id", cb.Message.ChatID, "error", err)
	}
}

// handleAdminConfirmDeleteLocation удаляет локацию (формат: admin:del:{id})
func (h *Handlers) handleAdminConfirmDeleteLocation(ctx context.Context, cb *CallbackQuery) {
	id := location.LocationID(strings.TrimPrefix(cb.Data, "admin:del:"))
	if err := h.locationService.Delete(ctx, id); err != nil {
		h.logger.Error("failed to delete location", "location_id", string(id), "error", err)
		h.reply(cb.Message.ChatID, "❌ Не удалось удалить локацию")
		return
	}
	h.logger.Info("location deleted", "event", "location_deleted", "location_id", string(id), "admin_id", cb.From.ID)
	text, keyboard := h.formatter.FormatAdminMenu()
	if err := h.client.EditMessageTextAndMarkup(cb.Message.ChatID, cb.Message.MessageID, "✅ Локация удалена\n\n"+text, keyboard); err != nil {
		h.logger.Error("failed to edit message", "chat_id", cb.Message.ChatID, "error", err)
	}
}
