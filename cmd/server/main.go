package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"TodoKeeper/internal/auth"
	"TodoKeeper/internal/bot"
	"TodoKeeper/internal/config"
	"TodoKeeper/internal/handlers"
	"TodoKeeper/internal/middleware"
	"TodoKeeper/internal/repo"
	"TodoKeeper/internal/service"
)

func main() {
	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	cfg, err := config.NewConfig()
	if err != nil {
		sugar.Fatalw("invalid configuration", "error", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	userRepo := repo.NewUserRepository(gormDB)
	itemRepo := repo.NewItemRepository(gormDB)

	tokens := auth.NewTokenAuthority([]byte(cfg.AuthSecret), cfg.TokenTTL)
	verifier := service.NewTelegramVerifier(cfg.TelegramBotToken)

	userService := service.NewUserService(userRepo, tokens, verifier, sugar)
	itemService := service.NewItemService(itemRepo, sugar)

	h := handlers.NewHandler(userService, itemService, sugar)

	// бот крутится рядом с HTTP-сервером и ходит в те же сервисы
	botClient := bot.NewClient(&http.Client{Timeout: 65 * time.Second}, cfg.TelegramBotToken)
	poller := bot.NewPoller(botClient, &bot.Env{
		Users:  userService,
		Items:  itemService,
		Logger: sugar,
	})
	go poller.Run(ctx)

	sugar.Infow(
		"Starting server",
		"addr", cfg.RunAddress,
		"token_ttl", cfg.TokenTTL,
	)

	if err := http.ListenAndServe(cfg.RunAddress, h.Router); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
}
