package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"esign-bot/internal/bot"
	"esign-bot/internal/config"
	"esign-bot/internal/ocr"
	"esign-bot/internal/relay"
	"esign-bot/internal/session"

	"go.uber.org/zap"
)

// ENTRY POINT

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	// Sessions live in memory unless a Redis address is configured.
	var sessions session.Store = session.NewMemoryStore()
	if cfg.RedisAddr != "" {
		redisStore, err := session.NewRedisStore(
			ctx,
			cfg.RedisAddr,
			cfg.RedisPassword,
			cfg.RedisDB,
			cfg.SessionTTL,
			logger,
		)
		if err != nil {
			logger.Fatal("Failed to init Redis session store", zap.Error(err))
		}
		defer redisStore.Close()
		sessions = redisStore
	}

	oracle := ocr.NewTesseractOracle(cfg.TesseractLang, logger)
	notifier := relay.New(relay.TelegramAPIBase, cfg.RelayBotToken, cfg.RelayChatID, cfg.RelayTimeout, logger)

	tgBot, err := bot.New(
		cfg.BotToken,
		sessions,
		oracle,
		notifier,
		logger,
		cfg,
	)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	if err := tgBot.Start(ctx); err != nil {
		logger.Fatal("Bot stopped with error", zap.Error(err))
	}

	logger.Info("Bot shutdown gracefully")
}
