package container

import (
	"context"
	"fmt"

	app "wfh-bot/internal/application"
	"wfh-bot/internal/dialog"
	"wfh-bot/internal/domain/port"
)

type Container struct {
	Registry *dialog.Registry
	Users    *app.UserCollection
}

// New собирает ядро бота со всеми диалогами в порядке dialog.DefaultPriority
func New(ctx context.Context, messages port.MessageSender, events port.EventSender, store port.StateStore) (*Container, error) {
	registry := dialog.NewDefaultRegistry()
	starters, err := registry.Starters(dialog.DefaultPriority...)
	if err != nil {
		return nil, fmt.Errorf("dialog starters: %w", err)
	}

	users := app.NewUserCollection(ctx, registry, starters, messages, events, store)

	return &Container{
		Registry: registry,
		Users:    users,
	}, nil
}
