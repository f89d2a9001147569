package dialog

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"wfh-bot/internal/domain/entity"
)

// ErrUnknownDialogKind тег диалога отсутствует в реестре
var ErrUnknownDialogKind = errors.New("unknown dialog kind")

// StartFunc пытается начать диалог по первому сообщению
type StartFunc func(text string, profile *entity.UserProfile) StartResult

// DecodeFunc восстанавливает диалог из сохранённого состояния
type DecodeFunc func(payload string) (Dialog, error)

// Kind фабрика одного типа диалога
type Kind struct {
	Tag    string
	Start  StartFunc
	Decode DecodeFunc
}

// Registry реестр типов диалогов.
// Заполняется один раз при старте, после этого только читается.
type Registry struct {
	kinds map[string]Kind
}

// NewRegistry создаёт пустой реестр
func NewRegistry() *Registry {
	return &Registry{kinds: make(map[string]Kind)}
}

// Register добавляет тип диалога. Повторная регистрация того же типа ничего не делает,
// регистрация другого типа под занятым тегом вызывает панику.
func (r *Registry) Register(kind Kind) {
	if kind.Tag == "" || kind.Start == nil || kind.Decode == nil {
		panic(fmt.Sprintf("dialog: incomplete kind %q", kind.Tag))
	}
	if existing, ok := r.kinds[kind.Tag]; ok {
		if sameFunc(existing.Start, kind.Start) && sameFunc(existing.Decode, kind.Decode) {
			return
		}
		panic(fmt.Sprintf("dialog: tag %q is already registered", kind.Tag))
	}
	r.kinds[kind.Tag] = kind
}

// Lookup возвращает тип диалога по тегу
func (r *Registry) Lookup(tag string) (Kind, bool) {
	kind, ok := r.kinds[tag]
	return kind, ok
}

// Starters возвращает типы диалогов в заданном порядке приоритета.
func (r *Registry) Starters(tags ...string) ([]Kind, error) {
	starters := make([]Kind, 0, len(tags))
	for _, tag := range tags {
		kind, ok := r.kinds[tag]
		if !ok {
			return nil, fmt.Errorf("starter %q: %w", tag, ErrUnknownDialogKind)
		}
		starters = append(starters, kind)
	}
	return starters, nil
}

// Encode сериализует диалог в конверт с тегом.
func (r *Registry) Encode(d Dialog) (entity.DialogEnvelope, error) {
	tag := d.Tag()
	if _, ok := r.kinds[tag]; !ok {
		return entity.DialogEnvelope{}, fmt.Errorf("encode %q: %w", tag, ErrUnknownDialogKind)
	}
	payload, err := json.Marshal(d)
	if err != nil {
		return entity.DialogEnvelope{}, fmt.Errorf("encode %q: %w", tag, err)
	}
	return entity.DialogEnvelope{Tag: tag, Payload: string(payload)}, nil
}

// Decode восстанавливает диалог из конверта.
func (r *Registry) Decode(envelope entity.DialogEnvelope) (Dialog, error) {
	kind, ok := r.kinds[envelope.Tag]
	if !ok {
		return nil, fmt.Errorf("decode %q: %w", envelope.Tag, ErrUnknownDialogKind)
	}
	d, err := kind.Decode(envelope.Payload)
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", envelope.Tag, err)
	}
	return d, nil
}

// decodeJSON разбирает состояние диалога, сохранённое через json.Marshal.
func decodeJSON[T any, PT interface {
	*T
	Dialog
}](payload string) (Dialog, error) {
	var d T
	if err := json.Unmarshal([]byte(payload), &d); err != nil {
		return nil, err
	}
	return PT(&d), nil
}

func sameFunc(a, b any) bool {
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}
