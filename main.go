package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/vladimiradmaev/diary-helper/internal/bot"
	"github.com/vladimiradmaev/diary-helper/internal/bot/handlers"
	"github.com/vladimiradmaev/diary-helper/internal/bot/state"
	"github.com/vladimiradmaev/diary-helper/internal/config"
	"github.com/vladimiradmaev/diary-helper/internal/database"
	"github.com/vladimiradmaev/diary-helper/internal/logger"
	"github.com/vladimiradmaev/diary-helper/internal/repository"
	"github.com/vladimiradmaev/diary-helper/internal/scheduler"
	"github.com/vladimiradmaev/diary-helper/internal/services"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting Diary Helper Bot...")

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.InitWithConfig(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	db, err := database.NewPostgresDB(cfg.DB)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	entryRepo := repository.NewEntryRepository(db)
	userRepo := repository.NewUserRepository(db)

	deps := handlers.Dependencies{
		UserService:  services.NewUserService(userRepo),
		DiaryService: services.NewDiaryService(entryRepo),
		StatsService: services.NewStatsService(entryRepo),
	}

	var states state.StateManager
	if cfg.Redis.Host != "" {
		redisStates, err := state.NewRedisManager(cfg.Redis.Host, cfg.Redis.Port)
		if err != nil {
			logger.Fatalf("Failed to connect to Redis: %v", err)
		}
		states = redisStates
		logger.Info("Using Redis state backend")
	} else {
		states = state.NewManager()
		logger.Info("Using in-memory state backend")
	}

	telegramBot, err := bot.New(cfg.TelegramToken, deps, states)
	if err != nil {
		logger.Fatalf("Failed to create bot: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reminderScheduler := scheduler.New(entryRepo, telegramBot)
	reminderScheduler.Start(ctx)

	logger.Info("Bot is running. Press Ctrl+C to stop.")
	if err := telegramBot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Errorf("Bot stopped with error: %v", err)
	}

	reminderScheduler.Stop()
	if err := states.Close(); err != nil {
		logger.Errorf("Failed to close state backend: %v", err)
	}
	logger.Info("Shutdown complete")
}
