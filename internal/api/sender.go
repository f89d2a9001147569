package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"wfh-bot/internal/domain/entity"
	"wfh-bot/internal/domain/port"
)

// Sender отправляет ответы бота в Telegram
type Sender struct {
	client botAPI
}

// NewSender создаёт отправителя поверх Telegram API
func NewSender(client botAPI) *Sender {
	return &Sender{client: client}
}

// SendText отправляет текстовое сообщение
func (s *Sender) SendText(ctx context.Context, chatID int64, text string) error {
	if _, err := s.client.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// SendMenu отправляет сообщение с inline-кнопками; данные кнопки совпадают с её текстом
func (s *Sender) SendMenu(ctx context.Context, chatID int64, text string, menu entity.Menu) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = menuMarkup(menu)
	if _, err := s.client.Send(msg); err != nil {
		return fmt.Errorf("send menu: %w", err)
	}
	return nil
}

func menuMarkup(menu entity.Menu) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(menu))
	for _, labels := range menu {
		row := make([]tgbotapi.InlineKeyboardButton, 0, len(labels))
		for _, label := range labels {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, label))
		}
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

var _ port.MessageSender = (*Sender)(nil)
