package port

import (
	"context"
	"errors"

	"wfh-bot/internal/domain/entity"
)

var (
	// ErrStateNotFound сохранённого состояния ещё нет
	ErrStateNotFound = errors.New("state not found")
	// ErrStateCorrupt сохранённое состояние не удалось разобрать
	ErrStateCorrupt = errors.New("state is corrupt")
)

// StateStore интерфейс хранилища состояния всех чатов
type StateStore interface {
	// Load читает состояние целиком
	Load(ctx context.Context) (*entity.StateSnapshot, error)

	// Save перезаписывает состояние целиком
	Save(ctx context.Context, snapshot *entity.StateSnapshot) error
}
