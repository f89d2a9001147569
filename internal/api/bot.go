package telegram

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"wfh-bot/internal/domain/entity"
)

// Handler принимает входящие сообщения, false означает, что сообщение уже обрабатывалось
type Handler interface {
	Accept(ctx context.Context, msg entity.InboundMessage) bool
}

// botAPI часть Telegram API, которой пользуется бот
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Bot представляет Telegram-бота
type Bot struct {
	api    *tgbotapi.BotAPI
	client botAPI
}

// NewBot создаёт нового бота
func NewBot(token string) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	slog.Info("authorized on telegram", "account", api.Self.UserName)

	return &Bot{api: api, client: api}, nil
}

// Sender возвращает отправителя сообщений через этого бота
func (b *Bot) Sender() *Sender {
	return NewSender(b.client)
}

// Run запускает основной цикл long polling до отмены ctx
func (b *Bot) Run(ctx context.Context, handler Handler) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, handler, update)
		}
	}
}

// handleUpdate передаёт текст сообщения или данные нажатой кнопки обработчику
func (b *Bot) handleUpdate(ctx context.Context, handler Handler, update tgbotapi.Update) {
	msg, ok := inboundFromUpdate(update)
	if !ok {
		return
	}

	slog.DebugContext(ctx, "received message", "chat_id", msg.ChatID, "message_id", msg.MessageID, "from", msg.FirstName)
	handler.Accept(ctx, msg)

	if query := update.CallbackQuery; query != nil {
		b.finishCallback(ctx, query)
	}
}

// finishCallback подтверждает нажатие кнопки и убирает клавиатуру у исходного сообщения
func (b *Bot) finishCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if _, err := b.client.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		slog.WarnContext(ctx, "failed to answer callback query", "err", err)
	}
	if query.Message == nil || query.Message.Chat == nil {
		return
	}
	edit := tgbotapi.NewEditMessageReplyMarkup(query.Message.Chat.ID, query.Message.MessageID,
		tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}})
	if _, err := b.client.Request(edit); err != nil {
		slog.WarnContext(ctx, "failed to remove inline keyboard", "err", err)
	}
}

// inboundFromUpdate извлекает текстовое сообщение или нажатие кнопки
func inboundFromUpdate(update tgbotapi.Update) (entity.InboundMessage, bool) {
	switch {
	case update.Message != nil:
		m := update.Message
		if m.Text == "" || m.Chat == nil || m.From == nil {
			return entity.InboundMessage{}, false
		}
		return newInbound(int64(update.UpdateID), m.Chat.ID, m.From, m.Text), true

	case update.CallbackQuery != nil:
		q := update.CallbackQuery
		if q.Message == nil || q.Message.Chat == nil || q.From == nil {
			return entity.InboundMessage{}, false
		}
		return newInbound(int64(update.UpdateID), q.Message.Chat.ID, q.From, q.Data), true

	default:
		return entity.InboundMessage{}, false
	}
}

func newInbound(updateID, chatID int64, from *tgbotapi.User, text string) entity.InboundMessage {
	msg := entity.InboundMessage{
		ChatID:    chatID,
		MessageID: updateID,
		FirstName: from.FirstName,
		Text:      text,
	}
	if from.LastName != "" {
		last := from.LastName
		msg.LastName = &last
	}
	return msg
}

// SetWebhook регистрирует адрес вебхука в Telegram
func (b *Bot) SetWebhook(url string) error {
	wh, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return fmt.Errorf("build webhook: %w", err)
	}
	if _, err := b.client.Request(wh); err != nil {
		return fmt.Errorf("set webhook: %w", err)
	}
	return nil
}
