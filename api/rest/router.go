package rest

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/VolleyLabs/VolleyballRating-sub000/api/telegram"
	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/location"
	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/rating"
	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/schedule"
	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/voting"
	"github.com/VolleyLabs/VolleyballRating-sub000/internal/logging"
)

type VotingLifecycle interface {
	StartVotings(ctx context.Context, now time.Time) ([]voting.Voting, error)
	NotifyAndClose(ctx context.Context, now time.Time) (int, error)
}

type UpdateHandler interface {
	HandleUpdate(ctx context.Context, update *telegram.Update)
}

// Deps - сервисы, которые обслуживает HTTP API
type Deps struct {
	Lifecycle  VotingLifecycle
	Updates    UpdateHandler
	Ratings    rating.RatingService
	Locations  location.LocationService
	Schedules  schedule.ScheduleService
	CronSecret string
	Logger     *slog.Logger
	Now        func() time.Time
}

type server struct {
	Deps
	logger *slog.Logger
}

// NewRouter собирает gin-роутер со всеми маршрутами
func NewRouter(deps Deps) *gin.Engine {
	s := &server{Deps: deps, logger: logging.ResolveLogger(deps.Logger).With("module", "http")}
	if s.Now == nil {
		s.Now = time.Now
	}

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.POST("/telegram/webhook", s.telegramWebhook)

	cron := r.Group("/cron", s.requireSecret())
	cron.POST("/start-voting", s.startVoting)
	cron.POST("/close-voting", s.closeVoting)

	api := r.Group("/api")
	api.GET("/ratings", s.listRatings)
	api.GET("/ratings/export", s.exportRatings)
	api.GET("/locations", s.listLocations)
	api.GET("/schedules", s.listSchedules)

	admin := api.Group("", s.requireSecret())
	admin.POST("/votes", s.recordVote)
	admin.POST("/locations", s.createLocation)
	admin.POST("/schedules", s.createSchedule)
	admin.PUT("/schedules/:id", s.updateSchedule)

	return r
}

func (s *server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// requireSecret проверяет заголовок Authorization: Bearer <CRON_SECRET>.
// Пустой секрет отключает проверку.
func (s *server) requireSecret() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.CronSecret == "" {
			c.Next()
			return
		}
		token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(strings.TrimSpace(token)), []byte(s.CronSecret)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}
