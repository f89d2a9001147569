package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"wfh-bot/internal/domain/entity"
	"wfh-bot/internal/domain/port"
)

// FileStateStore хранит состояние в JSON-файле
type FileStateStore struct {
	path string
}

// NewFileStateStore создаёт хранилище в файле path
func NewFileStateStore(path string) *FileStateStore {
	return &FileStateStore{path: path}
}

// Load читает состояние из файла
func (s *FileStateStore) Load(ctx context.Context) (*entity.StateSnapshot, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, port.ErrStateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read state %s: %w", s.path, err)
	}
	return DecodeSnapshot(data)
}

// Save атомарно заменяет файл: пишет во временный файл рядом и переименовывает его.
func (s *FileStateStore) Save(ctx context.Context, snapshot *entity.StateSnapshot) error {
	data, err := EncodeSnapshot(snapshot)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write state: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close state: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace state %s: %w", s.path, err)
	}
	return nil
}

var _ port.StateStore = (*FileStateStore)(nil)
