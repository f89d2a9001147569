package port

import (
	"context"

	"wfh-bot/internal/domain/entity"
)

// EventSender интерфейс публикации событий в календарь
type EventSender interface {
	// Post публикует событие
	Post(ctx context.Context, event entity.Event) error
}
