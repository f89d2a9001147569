package storage

import (
	"context"
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"wfh-bot/internal/domain/entity"
	"wfh-bot/internal/domain/port"
)

const stateRowID = 1

// botStateRow единственная строка с отметкой последнего сообщения
type botStateRow struct {
	ID            uint `gorm:"primaryKey"`
	LastMessageID *int64
}

func (botStateRow) TableName() string { return "bot_states" }

// chatEntryRow строка состояния одного чата
type chatEntryRow struct {
	ChatID        int64 `gorm:"primaryKey;autoIncrement:false"`
	FirstName     string
	LastName      string
	CalendarAlias *string
	DialogTag     *string
	DialogPayload *string `gorm:"type:text"`
}

func (chatEntryRow) TableName() string { return "chat_entries" }

// SQLStateStore хранит состояние в SQL-базе через GORM
type SQLStateStore struct {
	db *gorm.DB
}

// OpenSQL открывает базу: driver "sqlite" (dsn это путь к файлу) или "mysql".
func OpenSQL(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	default:
		return nil, fmt.Errorf("sql: unsupported driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("sql: open %s: %w", driver, err)
	}
	return db, nil
}

// NewSQLStateStore создаёт хранилище и таблицы, если их ещё нет
func NewSQLStateStore(db *gorm.DB) (*SQLStateStore, error) {
	if err := db.AutoMigrate(&botStateRow{}, &chatEntryRow{}); err != nil {
		return nil, fmt.Errorf("sql: migrate: %w", err)
	}
	return &SQLStateStore{db: db}, nil
}

// Load читает состояние, чаты упорядочены по ID
func (s *SQLStateStore) Load(ctx context.Context) (*entity.StateSnapshot, error) {
	var state []botStateRow
	if err := s.db.WithContext(ctx).Where("id = ?", stateRowID).Limit(1).Find(&state).Error; err != nil {
		return nil, fmt.Errorf("sql: load state: %w", err)
	}
	if len(state) == 0 {
		return nil, port.ErrStateNotFound
	}

	var rows []chatEntryRow
	if err := s.db.WithContext(ctx).Order("chat_id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("sql: load chats: %w", err)
	}

	snapshot := &entity.StateSnapshot{
		LastMessageID: state[0].LastMessageID,
		Entries:       make([]entity.ChatRecord, 0, len(rows)),
	}
	for _, row := range rows {
		record := entity.ChatRecord{
			ChatID: row.ChatID,
			Profile: entity.UserProfile{
				ChatID:        row.ChatID,
				FirstName:     row.FirstName,
				LastName:      row.LastName,
				CalendarAlias: row.CalendarAlias,
			},
		}
		if row.DialogTag != nil {
			if row.DialogPayload == nil {
				return nil, fmt.Errorf("%w: chat %d has dialog %q without payload", port.ErrStateCorrupt, row.ChatID, *row.DialogTag)
			}
			record.Processor.ActiveDialog = &entity.DialogEnvelope{Tag: *row.DialogTag, Payload: *row.DialogPayload}
		}
		snapshot.Entries = append(snapshot.Entries, record)
	}
	return snapshot, nil
}

// Save полностью перезаписывает состояние в одной транзакции
func (s *SQLStateStore) Save(ctx context.Context, snapshot *entity.StateSnapshot) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		state := botStateRow{ID: stateRowID, LastMessageID: snapshot.LastMessageID}
		if err := tx.Save(&state).Error; err != nil {
			return fmt.Errorf("sql: save state: %w", err)
		}

		if err := tx.Where("1 = 1").Delete(&chatEntryRow{}).Error; err != nil {
			return fmt.Errorf("sql: clear chats: %w", err)
		}
		if len(snapshot.Entries) == 0 {
			return nil
		}

		rows := make([]chatEntryRow, 0, len(snapshot.Entries))
		for _, record := range snapshot.Entries {
			row := chatEntryRow{
				ChatID:        record.ChatID,
				FirstName:     record.Profile.FirstName,
				LastName:      record.Profile.LastName,
				CalendarAlias: record.Profile.CalendarAlias,
			}
			if envelope := record.Processor.ActiveDialog; envelope != nil {
				tag, payload := envelope.Tag, envelope.Payload
				row.DialogTag = &tag
				row.DialogPayload = &payload
			}
			rows = append(rows, row)
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("sql: save chats: %w", err)
		}
		return nil
	})
}

var _ port.StateStore = (*SQLStateStore)(nil)
