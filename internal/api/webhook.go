package telegram

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const webhookBasePath = "/telegram/webhook"

// WebhookConfig параметры HTTP-сервера вебхука
type WebhookConfig struct {
	URL    string // публичный адрес, который регистрируется в Telegram
	Listen string // адрес HTTP-сервера
	Secret string // секретный сегмент пути, если задан
}

// WebhookPath возвращает путь, на который Telegram присылает апдейты
func WebhookPath(secret string) string {
	if secret == "" {
		return webhookBasePath
	}
	return webhookBasePath + "/" + secret
}

// NewWebhookRouter создаёт gin-роутер, передающий апдейты в handleUpdate
func NewWebhookRouter(secret string, handleUpdate func(ctx context.Context, update tgbotapi.Update)) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.POST(WebhookPath(secret), func(c *gin.Context) {
		var update tgbotapi.Update
		if err := c.ShouldBindJSON(&update); err != nil {
			slog.WarnContext(c.Request.Context(), "invalid webhook payload", "err", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid update"})
			return
		}
		handleUpdate(c.Request.Context(), update)
		c.Status(http.StatusOK)
	})

	return router
}

// ServeWebhook регистрирует вебхук и обслуживает его до отмены ctx
func (b *Bot) ServeWebhook(ctx context.Context, handler Handler, cfg WebhookConfig) error {
	if err := b.SetWebhook(cfg.URL); err != nil {
		return err
	}

	router := NewWebhookRouter(cfg.Secret, func(reqCtx context.Context, update tgbotapi.Update) {
		b.handleUpdate(reqCtx, handler, update)
	})
	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("webhook server listening", "addr", cfg.Listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
