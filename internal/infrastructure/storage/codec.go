package storage

import (
	"encoding/json"
	"fmt"

	"wfh-bot/internal/domain/entity"
	"wfh-bot/internal/domain/port"
)

// EncodeSnapshot сериализует состояние в JSON
func EncodeSnapshot(snapshot *entity.StateSnapshot) ([]byte, error) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return data, nil
}

// DecodeSnapshot разбирает состояние из JSON, ошибка разбора оборачивает ErrStateCorrupt
func DecodeSnapshot(data []byte) (*entity.StateSnapshot, error) {
	var snapshot entity.StateSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("%w: %v", port.ErrStateCorrupt, err)
	}
	return &snapshot, nil
}
