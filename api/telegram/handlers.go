package telegram

import (
	"context"
	"log/slog"
	"strings"

	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/location"
	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/rating"
	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/user"
	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/voting"
	"github.com/VolleyLabs/VolleyballRating-sub000/internal/logging"
)

// Sender - то, что обработчикам нужно от клиента Telegram
type Sender interface {
	SendMessage(chatID int64, text string) error
	SendMessageWithKeyboard(chatID int64, text string, keyboard *InlineKeyboardMarkup) error
	EditMessageTextAndMarkup(chatID int64, messageID int, text string, keyboard *InlineKeyboardMarkup) error
	AnswerCallbackQuery(callbackQueryID string) error
}

type PollAnswerHandler interface {
	HandlePollAnswer(ctx context.Context, ans voting.PollAnswer) error
}

// Handlers обрабатывает обновления от Telegram и маппит их в вызовы бизнес-сервисов
type Handlers struct {
	polls           PollAnswerHandler
	ratingService   rating.RatingService
	locationService location.LocationService
	userService     user.UserService
	client          Sender
	formatter       *Formatter
	logger          *slog.Logger
}

// NewHandlers создает новый набор обработчиков
func NewHandlers(
	polls PollAnswerHandler,
	ratingService rating.RatingService,
	locationService location.LocationService,
	userService user.UserService,
	client Sender,
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		polls:           polls,
		ratingService:   ratingService,
		locationService: locationService,
		userService:     userService,
		client:          client,
		formatter:       NewFormatter(),
		logger:          logging.ResolveLogger(logger).With("module", "telegram"),
	}
}

// HandleUpdate обрабатывает обновление от Telegram
func (h *Handlers) HandleUpdate(ctx context.Context, update *Update) {
	if update == nil {
		return
	}
	if update.PollAnswer != nil {
		h.HandlePollAnswer(ctx, *update.PollAnswer)
	}
	if update.Message != nil {
		h.HandleMessage(ctx, update.Message)
	}
	if update.CallbackQuery != nil {
		h.HandleCallback(ctx, update.CallbackQuery)
	}
}

// HandlePollAnswer передаёт ответ на опрос в сверку состава. Ошибки только логируются.
func (h *Handlers) HandlePollAnswer(ctx context.Context, ans voting.PollAnswer) {
	if err := h.polls.HandlePollAnswer(ctx, ans); err != nil {
		h.logger.Error("failed to handle poll answer", "event", "poll_answer_failed",
			"poll_id", ans.PollID, "user_id", ans.User.ID, "error", err)
	}
}

// HandleMessage обрабатывает текстовые сообщения
func (h *Handlers) HandleMessage(ctx context.Context, msg *Message) {
	if msg == nil || msg.From == nil {
		return
	}

	command, args, _ := strings.Cut(strings.TrimSpace(msg.Text), " ")
	// в группах команды приходят как /rating@bot_name
	command, _, _ = strings.Cut(command, "@")

	switch command {
	case "/start":
		h.handleStart(msg)
	case "/rating":
		h.handleRatingCommand(ctx, msg)
	case "/add_location":
		h.handleAdminCreateLocation(ctx, msg, args)
	default:
		if strings.HasPrefix(command, "/") {
			h.reply(msg.ChatID, "Нажмите /start для меню")
		}
	}
}

// HandleCallback обрабатывает callback запросы
func (h *Handlers) HandleCallback(ctx context.Context, cb *CallbackQuery) {
	if cb == nil || cb.Message == nil {
		return
	}

	// Подтверждаем нажатие кнопки
	if err := h.client.AnswerCallbackQuery(cb.ID); err != nil {
		h.logger.Error("failed to answer callback query", "callback_id", cb.ID, "error", err)
	}

	if strings.HasPrefix(cb.Data, "admin:") {
		if cb.From == nil || !h.isAdmin(ctx, cb.From.ID) {
			h.reply(cb.Message.ChatID, "❌ У вас нет прав администратора")
			return
		}
		h.handleAdminCallback(ctx, cb)
		return
	}

	switch {
	case cb.Data == "rating":
		h.handleRating(ctx, cb)
	case cb.Data == "locations":
		h.handleLocations(ctx, cb)
	case strings.HasPrefix(cb.Data, "loc:"):
		h.handleLocationSelection(ctx, cb)
	case cb.Data == "back:main":
		h.handleBackToMain(cb)
	default:
		h.logger.Warn("unknown callback", "callback_data", cb.Data, "chat_id", cb.Message.ChatID)
	}
}

// isAdmin проверяет флаг admin в справочнике пользователей
func (h *Handlers) isAdmin(ctx context.Context, userID int64) bool {
	if h.userService == nil {
		return false
	}
	usr, err := h.userService.Get(ctx, userID)
	if err != nil {
		return false
	}
	return usr.Admin
}

func (h *Handlers) reply(chatID int64, text string) {
	if err := h.client.SendMessage(chatID, text); err != nil {
		h.logger.Error("failed to send message", "chat_id", chatID, "error", err)
	}
}
