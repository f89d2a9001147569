package app

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"

	"wfh-bot/internal/dialog"
	"wfh-bot/internal/domain/entity"
	"wfh-bot/internal/domain/port"
)

// chatEntry профиль и обработчик диалогов одного чата
type chatEntry struct {
	profile   *entity.UserProfile
	processor *dialog.Processor
}

// UserCollection ядро бота: хранит состояние всех чатов, отсекает повторные
// сообщения и сохраняет состояние после каждого обработанного сообщения.
// Все изменения состояния выполняются под одним мьютексом.
type UserCollection struct {
	mu            sync.Mutex
	registry      *dialog.Registry
	starters      []dialog.Kind
	messages      port.MessageSender
	events        port.EventSender
	store         port.StateStore
	lastMessageID *int64
	entries       map[int64]*chatEntry
}

// NewUserCollection создаёт коллекцию и загружает состояние из store.
// Отсутствующее или испорченное состояние не является ошибкой: коллекция стартует пустой.
func NewUserCollection(
	ctx context.Context,
	registry *dialog.Registry,
	starters []dialog.Kind,
	messages port.MessageSender,
	events port.EventSender,
	store port.StateStore,
) *UserCollection {
	c := &UserCollection{
		registry: registry,
		starters: starters,
		messages: messages,
		events:   events,
		store:    store,
		entries:  make(map[int64]*chatEntry),
	}
	c.load(ctx)
	return c
}

// IsNewMessage возвращает true, если id больше всех ранее принятых, и запоминает его.
func (c *UserCollection) IsNewMessage(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isNewMessage(id)
}

// ProcessMessage обрабатывает сообщение чата и сохраняет состояние.
// Вызывающий обязан предварительно проверить сообщение через IsNewMessage.
// Отмена ctx не прерывает обработку: принятое сообщение доводится до сохранения.
func (c *UserCollection) ProcessMessage(ctx context.Context, chatID int64, firstName string, lastName *string, text string) {
	ctx = context.WithoutCancel(ctx)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.processMessage(ctx, chatID, firstName, lastName, text)
}

// Accept проверяет и обрабатывает входящее сообщение атомарно.
// Возвращает false для повторно доставленных сообщений.
// Отмена ctx не прерывает обработку принятого сообщения.
func (c *UserCollection) Accept(ctx context.Context, msg entity.InboundMessage) bool {
	ctx = context.WithoutCancel(ctx)
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.isNewMessage(msg.MessageID) {
		slog.DebugContext(ctx, "skipping already processed message", "message_id", msg.MessageID, "chat_id", msg.ChatID)
		return false
	}
	c.processMessage(ctx, msg.ChatID, msg.FirstName, msg.LastName, msg.Text)
	return true
}

// Snapshot возвращает текущее состояние в сохраняемом виде, чаты упорядочены по ID.
func (c *UserCollection) Snapshot() *entity.StateSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

func (c *UserCollection) isNewMessage(id int64) bool {
	if c.lastMessageID != nil && id <= *c.lastMessageID {
		return false
	}
	c.lastMessageID = &id
	return true
}

func (c *UserCollection) processMessage(ctx context.Context, chatID int64, firstName string, lastName *string, text string) {
	entry, ok := c.entries[chatID]
	if !ok {
		last := ""
		if lastName != nil {
			last = *lastName
		}
		entry = &chatEntry{
			profile:   entity.NewUserProfile(chatID, firstName, last),
			processor: dialog.NewProcessor(),
		}
		c.entries[chatID] = entry
	}

	entry.processor.Process(ctx, text, entry.profile, c.starters, func(o dialog.Outcome) {
		c.deliver(ctx, chatID, o)
	})

	c.save(ctx)
}

// deliver отправляет ответ и событие сразу, ошибки только логируются.
func (c *UserCollection) deliver(ctx context.Context, chatID int64, o dialog.Outcome) {
	if o.Reply != nil {
		var err error
		if len(o.Reply.Menu) > 0 {
			err = c.messages.SendMenu(ctx, chatID, o.Reply.Text, o.Reply.Menu)
		} else {
			err = c.messages.SendText(ctx, chatID, o.Reply.Text)
		}
		if err != nil {
			slog.WarnContext(ctx, "failed to send reply", "chat_id", chatID, "err", err)
		}
	}

	if o.Event != nil && c.events != nil {
		if err := c.events.Post(ctx, o.Event); err != nil {
			slog.WarnContext(ctx, "failed to post event", "chat_id", chatID, "alias", o.Event.CalendarAlias(), "err", err)
		}
	}
}

func (c *UserCollection) snapshot() *entity.StateSnapshot {
	snapshot := &entity.StateSnapshot{Entries: make([]entity.ChatRecord, 0, len(c.entries))}
	if c.lastMessageID != nil {
		id := *c.lastMessageID
		snapshot.LastMessageID = &id
	}

	for chatID, entry := range c.entries {
		record := entity.ChatRecord{ChatID: chatID, Profile: *entry.profile}
		if active := entry.processor.Active(); active != nil {
			envelope, err := c.registry.Encode(active)
			if err != nil {
				slog.Error("failed to encode active dialog, chat will be saved idle", "chat_id", chatID, "dialog", active.Tag(), "err", err)
			} else {
				record.Processor.ActiveDialog = &envelope
			}
		}
		snapshot.Entries = append(snapshot.Entries, record)
	}

	sort.Slice(snapshot.Entries, func(i, j int) bool {
		return snapshot.Entries[i].ChatID < snapshot.Entries[j].ChatID
	})
	return snapshot
}

func (c *UserCollection) save(ctx context.Context) {
	if err := c.store.Save(ctx, c.snapshot()); err != nil {
		slog.ErrorContext(ctx, "failed to save bot state", "err", err)
	}
}

func (c *UserCollection) load(ctx context.Context) {
	snapshot, err := c.store.Load(ctx)
	if err != nil {
		if errors.Is(err, port.ErrStateNotFound) {
			slog.WarnContext(ctx, "no saved bot state, starting empty")
		} else {
			slog.WarnContext(ctx, "failed to load bot state, starting empty", "err", err)
		}
		return
	}

	if snapshot.LastMessageID != nil {
		id := *snapshot.LastMessageID
		c.lastMessageID = &id
	}

	for _, record := range snapshot.Entries {
		profile := record.Profile
		profile.ChatID = record.ChatID
		processor := dialog.NewProcessor()

		if envelope := record.Processor.ActiveDialog; envelope != nil {
			active, err := c.registry.Decode(*envelope)
			if err != nil {
				slog.WarnContext(ctx, "dropping saved dialog, chat restored idle",
					"chat_id", record.ChatID, "dialog", envelope.Tag, "err", err)
			} else {
				processor = dialog.RestoreProcessor(active)
			}
		}

		c.entries[record.ChatID] = &chatEntry{profile: &profile, processor: processor}
	}
}
