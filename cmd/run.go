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

	"github.com/spf13/cobra"

	"wfh-bot/config"
	telegram "wfh-bot/internal/api"
	"wfh-bot/internal/container"
	"wfh-bot/internal/domain/port"
	"wfh-bot/internal/infrastructure/calendar"
	"wfh-bot/internal/infrastructure/storage"
	"wfh-bot/internal/logger"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the bot (long polling or webhook)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx)
		},
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Setup(cfg)

	if cfg.TelegramToken == "" {
		return errors.New("TELEGRAM_TOKEN is required")
	}

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	events, err := newEventSender(ctx, cfg)
	if err != nil {
		return err
	}

	bot, err := telegram.NewBot(cfg.TelegramToken)
	if err != nil {
		return fmt.Errorf("create bot: %w", err)
	}

	appContainer, err := container.New(ctx, bot.Sender(), events, store)
	if err != nil {
		return err
	}

	slog.Info("bot is running", "mode", cfg.Mode, "store", cfg.Store.Kind)
	if cfg.Mode == config.ModeWebhook {
		return bot.ServeWebhook(ctx, appContainer.Users, telegram.WebhookConfig{
			URL:    cfg.Webhook.URL,
			Listen: cfg.Webhook.Listen,
			Secret: cfg.Webhook.Secret,
		})
	}
	return bot.Run(ctx, appContainer.Users)
}

// openStore открывает хранилище состояния, выбранное в конфигурации
func openStore(ctx context.Context, cfg *config.Config) (port.StateStore, func(), error) {
	noop := func() {}

	switch cfg.Store.Kind {
	case config.StoreMemory:
		return storage.NewMemoryStateStore(), noop, nil

	case config.StoreRedis:
		rdb, err := storage.ConnectRedis(ctx, cfg.Store.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		return storage.NewRedisStateStore(rdb, cfg.Store.RedisKey), func() { _ = rdb.Close() }, nil

	case config.StoreSQLite, config.StoreMySQL:
		db, err := storage.OpenSQL(cfg.Store.Kind, cfg.Store.SQLDSN)
		if err != nil {
			return nil, nil, err
		}
		store, err := storage.NewSQLStateStore(db)
		if err != nil {
			return nil, nil, err
		}
		closeDB := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return store, closeDB, nil

	default:
		return storage.NewFileStateStore(cfg.Store.File), noop, nil
	}
}

// newEventSender собирает получателей событий: лог всегда, календарь и форма при наличии настроек
func newEventSender(ctx context.Context, cfg *config.Config) (port.EventSender, error) {
	senders := calendar.MultiSender{calendar.LogSender{}}

	if cfg.Calendar.ID != "" {
		key, err := os.ReadFile(cfg.Calendar.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read calendar credentials: %w", err)
		}
		client, err := calendar.ServiceAccountClient(ctx, key)
		if err != nil {
			return nil, err
		}
		senders = append(senders, calendar.NewGoogleCalendar(client, cfg.Calendar.BaseURL, cfg.Calendar.ID))
	}

	if cfg.Form.URL != "" {
		senders = append(senders, calendar.NewGoogleForm(http.DefaultClient, cfg.Form.URL, cfg.Form.NameField, cfg.Form.ReasonField))
	}

	return senders, nil
}
