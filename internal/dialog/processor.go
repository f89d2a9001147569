package dialog

import (
	"context"
	"log/slog"

	"wfh-bot/internal/domain/entity"
)

// EmitFunc получает ответы и события по мере их появления
type EmitFunc func(Outcome)

// Processor хранит не более одного активного диалога чата
type Processor struct {
	active Dialog
}

// NewProcessor создаёт обработчик без активного диалога
func NewProcessor() *Processor {
	return &Processor{}
}

// RestoreProcessor создаёт обработчик с восстановленным активным диалогом
func RestoreProcessor(active Dialog) *Processor {
	return &Processor{active: active}
}

// Active возвращает активный диалог или nil
func (p *Processor) Active() Dialog {
	return p.active
}

// Process передаёт сообщение активному диалогу, а если его нет,
// опрашивает starters по порядку до первого, принявшего сообщение.
// Если сообщение никому не подошло, оно молча отбрасывается.
func (p *Processor) Process(ctx context.Context, text string, profile *entity.UserProfile, starters []Kind, emit EmitFunc) {
	if p.active != nil {
		p.continueActive(ctx, text, profile, emit)
		return
	}

	for _, kind := range starters {
		result := kind.Start(text, profile)
		switch result.Kind {
		case StartNotApplicable:
			continue
		case StartFinishedImmediately:
			emitOutcome(emit, result.Outcome)
		case StartStarted:
			if result.Dialog == nil {
				slog.ErrorContext(ctx, "dialog started without instance", "dialog", kind.Tag, "chat_id", profile.ChatID)
				emitOutcome(emit, result.Outcome)
				return
			}
			p.active = result.Dialog
			emitOutcome(emit, result.Outcome)
		default:
			slog.ErrorContext(ctx, "unexpected start result", "dialog", kind.Tag, "kind", int(result.Kind), "chat_id", profile.ChatID)
		}
		return
	}

	slog.DebugContext(ctx, "message matched no dialog", "chat_id", profile.ChatID)
}

func (p *Processor) continueActive(ctx context.Context, text string, profile *entity.UserProfile, emit EmitFunc) {
	action := p.active.TryProcess(text, profile)
	switch action.Kind {
	case ActionContinue:
		emitOutcome(emit, action.Outcome)
	case ActionFinish:
		p.active = nil
		emitOutcome(emit, action.Outcome)
	default:
		// Активный диалог обязан принять сообщение, иначе чат застрянет.
		slog.ErrorContext(ctx, "active dialog violated its invariant, resetting chat",
			"dialog", p.active.Tag(), "action", action.Kind.String(), "chat_id", profile.ChatID)
		p.active = nil
	}
}

func emitOutcome(emit EmitFunc, o Outcome) {
	if emit == nil || o.Empty() {
		return
	}
	emit(o)
}
