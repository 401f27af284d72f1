package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/arabic-stories-bot/internal/config"
	"github.com/aliskhannn/arabic-stories-bot/internal/delivery/telegram"
	"github.com/aliskhannn/arabic-stories-bot/internal/domain/entities"
	"github.com/aliskhannn/arabic-stories-bot/internal/infra/postgres"
	pgrepo "github.com/aliskhannn/arabic-stories-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/arabic-stories-bot/internal/logger"
	"github.com/aliskhannn/arabic-stories-bot/internal/repository"
	"github.com/aliskhannn/arabic-stories-bot/internal/service"
	"github.com/aliskhannn/arabic-stories-bot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	if err := run(cfg, lg); err != nil {
		lg.Fatal("bot stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, lg *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Content bundles.
	wordRepo, err := repository.NewWordRepository(cfg.WordsJSONPath)
	if err != nil {
		return err
	}
	storyRepo, err := repository.NewStoryRepository(cfg.StoriesJSONPath)
	if err != nil {
		return err
	}
	lg.Info("content loaded",
		zap.Int("words", len(wordRepo.GetAll())),
		zap.Int("stories", len(storyRepo.GetAll())),
	)

	dsn, err := cfg.DB.DSN()
	if err != nil {
		return err
	}

	if cfg.DB.Migrate {
		if err := postgres.Migrate(dsn); err != nil {
			return err
		}
		lg.Info("migrations applied")
	}

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        cfg.DB.MaxConnections,
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		return err
	}
	defer pool.Close()

	userRepo := pgrepo.NewUserRepository(pool)
	masteryRepo := pgrepo.NewMasteryRepository(pool)
	progressRepo := pgrepo.NewProgressRepository(pool)
	quizRepo := pgrepo.NewQuizRepository(pool)
	resetRepo := pgrepo.NewResetRepository(postgres.NewTransactor(pool))

	policy := entities.MasteryPolicy{Floor: cfg.Mastery.Floor, Sticky: cfg.Mastery.Sticky}

	wordService := service.NewWordService(wordRepo)
	storyService := service.NewStoryService(storyRepo, wordService, lg)
	userService := service.NewUserService(userRepo)
	progressService := service.NewProgressService(wordRepo, storyRepo, masteryRepo, progressRepo, policy, lg)
	quizService := service.NewQuizService(
		progressService,
		service.NewQuizGenerator(wordRepo.GetAll(), nil),
		quizRepo,
		storage.NewQuizStorage(),
		cfg.Quiz.Size,
		lg,
	)
	resetService := service.NewResetService(resetRepo, progressService, quizService)
	flusher := service.NewMasteryFlusher(progressService, cfg.FlushInterval, lg)

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		return err
	}
	bot.Debug = !cfg.IsProduction()
	lg.Info("authorized", zap.String("account", bot.Self.UserName))

	// Set commands.
	commands := []tgbotapi.BotCommand{
		{Command: "start", Description: "Start the bot"},
		{Command: "stories", Description: "List stories"},
		{Command: "quiz", Description: "Practice unlocked words"},
		{Command: "progress", Description: "Show progress"},
		{Command: "word", Description: "Look a word up (usage: /word kitab)"},
		{Command: "reset", Description: "Reset progress"},
		{Command: "help", Description: "Help"},
	}
	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	handler := telegram.NewHandler(
		bot,
		lg,
		cfg.AudioDir,
		userService,
		storyService,
		wordService,
		progressService,
		quizService,
		resetService,
		storage.NewCardStorage(),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return handler.Run(gctx) })
	g.Go(func() error { return flusher.Run(gctx) })

	err = g.Wait()
	lg.Info("shutdown signal received")

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
