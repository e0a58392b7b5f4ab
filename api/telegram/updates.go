package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/voting"
)

// Update представляет обновление от Telegram
type Update struct {
	Message       *Message
	CallbackQuery *CallbackQuery
	PollAnswer    *voting.PollAnswer
}

// Message представляет сообщение от Telegram
type Message struct {
	ChatID    int64
	MessageID int
	Text      string
	From      *User
}

// CallbackQuery представляет callback query от Telegram
type CallbackQuery struct {
	ID      string
	Data    string
	Message *Message
	From    *User
}

// User представляет пользователя Telegram
type User struct {
	ID        int64
	FirstName string
	LastName  string
	Username  string
}

// InlineKeyboardMarkup представляет inline клавиатуру
type InlineKeyboardMarkup struct {
	InlineKeyboard [][]InlineKeyboardButton
}

// InlineKeyboardButton представляет кнопку inline клавиатуры
type InlineKeyboardButton struct {
	Text         string
	CallbackData string
	URL          string // URL для кнопки-ссылки
}

func NewInlineKeyboardMarkup(rows ...[]InlineKeyboardButton) *InlineKeyboardMarkup {
	return &InlineKeyboardMarkup{InlineKeyboard: rows}
}

func NewInlineKeyboardRow(buttons ...InlineKeyboardButton) []InlineKeyboardButton {
	return buttons
}

func NewInlineKeyboardButtonData(text, callbackData string) InlineKeyboardButton {
	return InlineKeyboardButton{Text: text, CallbackData: callbackData}
}

func NewInlineKeyboardButtonURL(text, url string) InlineKeyboardButton {
	return InlineKeyboardButton{Text: text, URL: url}
}

// convertInlineKeyboard конвертирует нашу клавиатуру в tgbotapi формат
func convertInlineKeyboard(keyboard *InlineKeyboardMarkup) tgbotapi.InlineKeyboardMarkup {
	if keyboard == nil {
		return tgbotapi.InlineKeyboardMarkup{}
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, row := range keyboard.InlineKeyboard {
		var buttons []tgbotapi.InlineKeyboardButton
		for _, btn := range row {
			if btn.URL != "" {
				buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonURL(btn.Text, btn.URL))
			} else {
				buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(btn.Text, btn.CallbackData))
			}
		}
		rows = append(rows, buttons)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// ConvertUpdate конвертирует tgbotapi.Update в наш Update.
// Используется и при long polling, и в webhook.
func ConvertUpdate(update tgbotapi.Update) *Update {
	result := &Update{}

	if update.Message != nil {
		result.Message = &Message{
			ChatID:    update.Message.Chat.ID,
			MessageID: update.Message.MessageID,
			Text:      update.Message.Text,
			From:      convertUser(update.Message.From),
		}
	}

	if update.CallbackQuery != nil {
		result.CallbackQuery = &CallbackQuery{
			ID:   update.CallbackQuery.ID,
			Data: update.CallbackQuery.Data,
			From: convertUser(update.CallbackQuery.From),
		}
		if update.CallbackQuery.Message != nil {
			result.CallbackQuery.Message = &Message{
				ChatID:    update.CallbackQuery.Message.Chat.ID,
				MessageID: update.CallbackQuery.Message.MessageID,
				Text:      update.CallbackQuery.Message.Text,
			}
		}
	}

	if update.PollAnswer != nil {
		pa := update.PollAnswer
		result.PollAnswer = &voting.PollAnswer{
			PollID: pa.PollID,
			User: voting.PollUser{
				ID:        pa.User.ID,
				FirstName: pa.User.FirstName,
				LastName:  pa.User.LastName,
				Username:  pa.User.UserName,
			},
			OptionIDs: append([]int(nil), pa.OptionIDs...),
		}
	}

	return result
}

// convertUser конвертирует tgbotapi.User в наш User
func convertUser(user *tgbotapi.User) *User {
	if user == nil {
		return nil
	}
	return &User{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Username:  user.UserName,
	}
}
