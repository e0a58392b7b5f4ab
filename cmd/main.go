package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"gorm.io/gorm"

	"github.com/VolleyLabs/VolleyballRating-sub000/api/rest"
	"github.com/VolleyLabs/VolleyballRating-sub000/api/telegram"
	"github.com/VolleyLabs/VolleyballRating-sub000/internal/config"
	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/location"
	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/rating"
	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/schedule"
	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/user"
	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/voting"
	"github.com/VolleyLabs/VolleyballRating-sub000/internal/logging"
	"github.com/VolleyLabs/VolleyballRating-sub000/internal/scheduler"
	"github.com/VolleyLabs/VolleyballRating-sub000/repositories/postgres"
	"github.com/VolleyLabs/VolleyballRating-sub000/storage/adapters/memory"
	"github.com/VolleyLabs/VolleyballRating-sub000/storage/adapters/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("❌ Ошибка конфигурации", "error", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.LogFormat)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("❌ Бот остановлен с ошибкой", "error", err)
		os.Exit(1)
	}
}

// repositories - набор хранилищ, выбранный по DB_DRIVER
type repositories struct {
	schedules schedule.ScheduleRepository
	locations location.LocationRepository
	users     user.UserRepository
	votings   voting.VotingRepository
	roster    voting.RosterRepository
	votes     rating.VoteRepository
	close     func()
}

func openRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*repositories, error) {
	if cfg.DBDriver == "memory" {
		logger.Warn("Используется хранилище в памяти, данные не сохранятся после перезапуска")
		store := memory.NewStore()
		return &repositories{
			schedules: store.Schedules(),
			locations: store.Locations(),
			users:     store.Users(),
			votings:   store.Votings(),
			roster:    store.Roster(),
			votes:     store.Votes(),
			close:     func() {},
		}, nil
	}

	dsn := cfg.DBURL
	if cfg.DBDriver == "sqlite" {
		dsn = cfg.SQLitePath
	}
	db, err := postgres.Open(ctx, cfg.DBDriver, dsn)
	if err != nil {
		return nil, err
	}
	logger.Info("✅ База данных подключена", "driver", cfg.DBDriver)
	return &repositories{
		schedules: postgres.NewScheduleRepository(db),
		locations: postgres.NewLocationRepository(db),
		users:     postgres.NewUserRepository(db),
		votings:   postgres.NewVotingRepository(db),
		roster:    postgres.NewRosterRepository(db),
		votes:     postgres.NewVoteRepository(db),
		close:     closeDB(db, logger),
	}, nil
}

func closeDB(db *gorm.DB, logger *slog.Logger) func() {
	return func() {
		if err := postgres.Close(db); err != nil {
			logger.Warn("close database failed", "error", err)
		}
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if cfg.TelegramToken == "" {
		return errors.New("TELEGRAM_BOT_TOKEN не найден в .env или окружении")
	}

	repos, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer repos.close()

	// Redis - необязательный кэш поверх расписаний и локаций
	if cfg.RedisURL != "" {
		redisClient, err := redis.NewClient(ctx, redis.Options{
			Addr:     cfg.RedisURL,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return err
		}
		defer redisClient.Close()
		repos.schedules = redis.NewScheduleCache(redisClient, repos.schedules, cfg.CacheTTL, logger)
		repos.locations = redis.NewLocationCache(redisClient, repos.locations, cfg.CacheTTL, logger)
		logger.Info("✅ Redis-кэш подключен", "addr", cfg.RedisURL)
	}

	scheduleService := schedule.NewScheduleService(repos.schedules)
	locationService := location.NewService(repos.locations)
	userService := user.NewUserService(repos.users)
	ratingService := rating.NewRatingService(repos.votes, userService, logger)

	tgBot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return fmt.Errorf("telegram bot: %w", err)
	}
	logger.Info("✅ Бот запущен", "username", tgBot.Self.UserName)
	tgClient := telegram.NewClient(tgBot)

	delayed := scheduler.NewDelayed(ctx, logger)
	defer delayed.Wait()

	lifecycle := voting.Lifecycle{
		Schedules: scheduleService,
		Locations: locationService,
		Votings:   repos.votings,
		Roster:    repos.roster,
		Users:     userService,
		Messenger: tgClient,
		Tasks:     delayed,
		ChatID:    cfg.TelegramChatID,
		Location:  cfg.Location(),
		PinDelay:  cfg.PinDelay,
		Logger:    logger,
	}
	reconciler := voting.Reconciler{
		Votings:         repos.votings,
		Roster:          repos.roster,
		Schedules:       scheduleService,
		Users:           userService,
		Messenger:       tgClient,
		MinPlayersCount: cfg.MinPlayersCount,
		Logger:          logger,
	}
	handlers := telegram.NewHandlers(reconciler, ratingService, locationService, userService, tgClient, logger)

	if cfg.CronSecret == "" {
		logger.Warn("CRON_SECRET не задан, cron и admin эндпоинты открыты без авторизации")
	}
	srv := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: rest.NewRouter(rest.Deps{
			Lifecycle:  lifecycle,
			Updates:    handlers,
			Ratings:    ratingService,
			Locations:  locationService,
			Schedules:  scheduleService,
			CronSecret: cfg.CronSecret,
			Logger:     logger,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP сервер слушает", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	if cfg.SchedulerEnabled {
		hour, minute, err := parseClock(cfg.CloseVotingTime)
		if err != nil {
			return err
		}
		go scheduler.Every(ctx, "start_voting", time.Minute, logger, func(ctx context.Context, now time.Time) error {
			_, err := lifecycle.StartVotings(ctx, now)
			return err
		})
		go scheduler.Daily(ctx, "close_voting", hour, minute, cfg.Location(), logger, func(ctx context.Context, now time.Time) error {
			_, err := lifecycle.NotifyAndClose(ctx, now)
			return err
		})
	}

	if cfg.TelegramMode == "polling" {
		go func() {
			for update := range tgClient.GetUpdatesChan(ctx) {
				handlers.HandleUpdate(ctx, update)
			}
		}()
	}

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	logger.Info("Останавливаемся")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func parseClock(s string) (int, int, error) {
	t, err := schedule.ParseTimeOfDay(s)
	if err != nil {
		return 0, 0, fmt.Errorf("CLOSE_VOTING_TIME: %w", err)
	}
	return t.Hour, t.Minute, nil
}
