package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/voting"
)

// Client обертка над Telegram Bot API
type Client struct {
	bot *tgbotapi.BotAPI
}

// NewClient создает новый клиент для работы с Telegram
func NewClient(bot *tgbotapi.BotAPI) *Client {
	return &Client{bot: bot}
}

// SendMessage отправляет текстовое сообщение
func (c *Client) SendMessage(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := c.bot.Send(msg)
	return err
}

// SendMessageWithKeyboard отправляет сообщение с клавиатурой
func (c *Client) SendMessageWithKeyboard(chatID int64, text string, keyboard *InlineKeyboardMarkup) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if keyboard != nil {
		msg.ReplyMarkup = convertInlineKeyboard(keyboard)
	}
	_, err := c.bot.Send(msg)
	return err
}

// EditMessageTextAndMarkup редактирует сообщение с клавиатурой
func (c *Client) EditMessageTextAndMarkup(chatID int64, messageID int, text string, keyboard *InlineKeyboardMarkup) error {
	if keyboard == nil {
		_, err := c.bot.Send(tgbotapi.NewEditMessageText(chatID, messageID, text))
		return err
	}
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, convertInlineKeyboard(keyboard))
	_, err := c.bot.Send(edit)
	return err
}

// AnswerCallbackQuery отвечает на callback query
func (c *Client) AnswerCallbackQuery(callbackQueryID string) error {
	answer := tgbotapi.NewCallback(callbackQueryID, "")
	_, err := c.bot.Request(answer)
	return err
}

// SendPoll отправляет неанонимный опрос
func (c *Client) SendPoll(chatID int64, question string, options []string) (voting.SentPoll, error) {
	cfg := tgbotapi.NewPoll(chatID, question, options...)
	cfg.IsAnonymous = false
	msg, err := c.bot.Send(cfg)
	if err != nil {
		return voting.SentPoll{}, err
	}
	if msg.Poll == nil {
		return voting.SentPoll{}, errors.New("telegram response has no poll")
	}
	return voting.SentPoll{MessageID: msg.MessageID, PollID: msg.Poll.ID}, nil
}

// PinMessage закрепляет сообщение в чате
func (c *Client) PinMessage(chatID int64, messageID int) error {
	_, err := c.bot.Request(tgbotapi.PinChatMessageConfig{
		ChatID:    chatID,
		MessageID: messageID,
	})
	return err
}

// GetUpdatesChan запускает long polling и возвращает канал обновлений.
// Канал закрывается после отмены ctx.
func (c *Client) GetUpdatesChan(ctx context.Context) <-chan *Update {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	u.AllowedUpdates = []string{"message", "callback_query", "poll_answer"}
	updates := c.bot.GetUpdatesChan(u)

	updateChan := make(chan *Update)
	go func() {
		defer close(updateChan)
		for {
			select {
			case <-ctx.Done():
				c.bot.StopReceivingUpdates()
				return
			case update, ok := <-updates:
				if !ok {
					return
				}
				select {
				case updateChan <- ConvertUpdate(update):
				case <-ctx.Done():
					c.bot.StopReceivingUpdates()
					return
				}
			}
		}
	}()

	return updateChan
}
