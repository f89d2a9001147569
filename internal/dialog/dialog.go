// Package dialog содержит движок многошаговых диалогов бота: типы диалогов,
// реестр для их сериализации и обработчик диалогов отдельного чата.
package dialog

import "wfh-bot/internal/domain/entity"

// Dialog многошаговый диалог со своим внутренним состоянием.
// Состояние сериализуется в JSON и восстанавливается по тегу Tag через Registry.
type Dialog interface {
	// Tag стабильный тег типа диалога
	Tag() string

	// TryProcess обрабатывает очередное сообщение активного диалога
	TryProcess(text string, profile *entity.UserProfile) Action
}

// Outcome ответ и событие, которые нужно отправить после шага диалога
type Outcome struct {
	Reply *entity.Reply
	Event entity.Event
}

// Empty сообщает, что отправлять нечего.
func (o Outcome) Empty() bool {
	return o.Reply == nil && o.Event == nil
}

// ActionKind результат шага активного диалога
type ActionKind int

const (
	ActionContinue ActionKind = iota // диалог остаётся активным
	ActionFinish                     // диалог завершён
	ActionReject                     // диалог не принял сообщение
)

func (k ActionKind) String() string {
	switch k {
	case ActionContinue:
		return "continue"
	case ActionFinish:
		return "finish"
	case ActionReject:
		return "reject"
	default:
		return "unknown"
	}
}

// Action результат TryProcess
type Action struct {
	Kind ActionKind
	Outcome
}

// ContinueWith оставляет диалог активным.
func ContinueWith(reply *entity.Reply, event entity.Event) Action {
	return Action{Kind: ActionContinue, Outcome: Outcome{Reply: reply, Event: event}}
}

// FinishWith завершает диалог.
func FinishWith(reply *entity.Reply, event entity.Event) Action {
	return Action{Kind: ActionFinish, Outcome: Outcome{Reply: reply, Event: event}}
}

// Reject сообщает, что диалог не принимает сообщение.
func Reject() Action {
	return Action{Kind: ActionReject}
}

// StartKind результат попытки начать диалог
type StartKind int

const (
	StartNotApplicable       StartKind = iota // сообщение не относится к диалогу
	StartFinishedImmediately                  // однократная команда выполнена
	StartStarted                              // начат многошаговый диалог
)

// StartResult результат Kind.Start
type StartResult struct {
	Kind StartKind
	Outcome
	Dialog Dialog // только для StartStarted
}

// NotApplicable сообщение не подходит для старта диалога.
func NotApplicable() StartResult {
	return StartResult{Kind: StartNotApplicable}
}

// FinishedImmediately команда выполнена за один шаг.
func FinishedImmediately(reply *entity.Reply, event entity.Event) StartResult {
	return StartResult{Kind: StartFinishedImmediately, Outcome: Outcome{Reply: reply, Event: event}}
}

// Started диалог начат и становится активным.
func Started(reply *entity.Reply, event entity.Event, d Dialog) StartResult {
	return StartResult{Kind: StartStarted, Outcome: Outcome{Reply: reply, Event: event}, Dialog: d}
}
