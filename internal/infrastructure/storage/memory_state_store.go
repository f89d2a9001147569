package storage

import (
	"context"
	"sync"

	"wfh-bot/internal/domain/entity"
	"wfh-bot/internal/domain/port"
)

// MemoryStateStore in-memory хранилище состояния, хранит копию в JSON
type MemoryStateStore struct {
	mu    sync.RWMutex
	data  []byte
	saves int
}

// NewMemoryStateStore создаёт пустое in-memory хранилище
func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{}
}

// Load возвращает копию последнего сохранённого состояния
func (s *MemoryStateStore) Load(ctx context.Context) (*entity.StateSnapshot, error) {
	s.mu.RLock()
	data := s.data
	s.mu.RUnlock()

	if data == nil {
		return nil, port.ErrStateNotFound
	}
	return DecodeSnapshot(data)
}

// Save сохраняет копию состояния
func (s *MemoryStateStore) Save(ctx context.Context, snapshot *entity.StateSnapshot) error {
	data, err := EncodeSnapshot(snapshot)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.data = data
	s.saves++
	s.mu.Unlock()

	return nil
}

// Raw возвращает сохранённое состояние в сериализованном виде
func (s *MemoryStateStore) Raw() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]byte(nil), s.data...)
}

// Saves возвращает количество успешных сохранений
func (s *MemoryStateStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

// Проверка реализации интерфейса
var _ port.StateStore = (*MemoryStateStore)(nil)
