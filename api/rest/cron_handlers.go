package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/VolleyLabs/VolleyballRating-sub000/api/telegram"
)

// startVoting - внешний триггер, вызывается раз в минуту
func (s *server) startVoting(c *gin.Context) {
	opened, err := s.Lifecycle.StartVotings(c.Request.Context(), s.Now())
	ids := make([]string, 0, len(opened))
	for _, v := range opened {
		ids = append(ids, string(v.ID))
	}
	if err != nil {
		s.logger.Error("start voting failed", "event", "start_voting_failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "opened": ids})
		return
	}
	c.JSON(http.StatusOK, gin.H{"opened": ids})
}

// closeVoting - внешний триггер, вызывается раз в день
func (s *server) closeVoting(c *gin.Context) {
	closed, err := s.Lifecycle.NotifyAndClose(c.Request.Context(), s.Now())
	if err != nil {
		s.logger.Error("close voting failed", "event", "close_voting_failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"closed": closed})
}

// telegramWebhook всегда отвечает 200, иначе Telegram будет повторять доставку
func (s *server) telegramWebhook(c *gin.Context) {
	var upd tgbotapi.Update
	if err := c.ShouldBindJSON(&upd); err != nil {
		s.logger.Warn("invalid telegram update", "event", "webhook_bad_payload", "error", err)
		c.JSON(http.StatusOK, gin.H{"ok": false})
		return
	}
	s.Updates.HandleUpdate(c.Request.Context(), telegram.ConvertUpdate(upd))
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
