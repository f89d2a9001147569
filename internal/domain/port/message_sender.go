package port

import (
	"context"

	"wfh-bot/internal/domain/entity"
)

// MessageSender интерфейс отправки ответов в чат
type MessageSender interface {
	// SendText отправляет обычное текстовое сообщение
	SendText(ctx context.Context, chatID int64, text string) error

	// SendMenu отправляет сообщение с кнопками выбора
	SendMenu(ctx context.Context, chatID int64, text string, menu entity.Menu) error
}
