package dialog

import (
	"fmt"
	"strings"
	"time"

	"wfh-bot/internal/domain/entity"
)

const TagWfh = "wfh-dialog"

// WfhMode вариант работы из дома
type WfhMode string

const (
	ModeToday    WfhMode = "today"     // весь сегодняшний день
	ModeTomorrow WfhMode = "tomorrow"  // весь завтрашний день
	ModeUntilNow WfhMode = "until now" // с начала рабочего дня до текущего момента
)

type wfhStage string

const (
	stageAwaitingMode         wfhStage = "awaiting_mode"
	stageAwaitingConfirmation wfhStage = "awaiting_confirmation"
)

const (
	msgWhen          = "When?"
	msgSetNameFirst  = "Please specify your calendar name using /setmyname"
	msgApplied       = "Applied!"
	fmtConfirm       = "Confirm event wfh for %s?"
	fmtSummary       = "%s WFH"
	answerYes        = "yes"
	workdayStartHour = 9
)

var (
	modeMenu  = entity.Menu{{string(ModeToday), string(ModeTomorrow)}, {string(ModeUntilNow)}}
	yesNoMenu = entity.Menu{{answerYes, "no"}}
)

// now подменяется в тестах.
var now = time.Now

// Wfh диалог заявки на работу из дома:
// выбор варианта, затем подтверждение и публикация события.
type Wfh struct {
	Stage wfhStage `json:"stage"`
	Mode  WfhMode  `json:"mode,omitempty"`
}

func (*Wfh) Tag() string { return TagWfh }

func (d *Wfh) TryProcess(text string, profile *entity.UserProfile) Action {
	switch d.Stage {
	case stageAwaitingMode:
		mode, ok := parseMode(text)
		if !ok {
			return FinishWith(entity.NewReply(msgCanceled), nil)
		}
		d.Stage = stageAwaitingConfirmation
		d.Mode = mode
		return ContinueWith(entity.NewMenuReply(fmt.Sprintf(fmtConfirm, mode), yesNoMenu), nil)

	case stageAwaitingConfirmation:
		if _, ok := parseMode(string(d.Mode)); !ok || profile.CalendarAlias == nil {
			return Reject()
		}
		if strings.TrimSpace(text) != answerYes {
			return FinishWith(entity.NewReply(msgCanceled), nil)
		}
		return FinishWith(entity.NewReply(msgApplied), wfhEvent(d.Mode, *profile.CalendarAlias, now()))

	default:
		return Reject()
	}
}

// WfhKind возвращает фабрику диалога /wfh
func WfhKind() Kind {
	return Kind{Tag: TagWfh, Start: startWfh, Decode: decodeJSON[Wfh]}
}

func startWfh(text string, profile *entity.UserProfile) StartResult {
	if _, ok := parseCommand(text, "wfh"); !ok {
		return NotApplicable()
	}
	if profile.CalendarAlias == nil {
		return FinishedImmediately(entity.NewReply(msgSetNameFirst), nil)
	}
	return Started(entity.NewMenuReply(msgWhen, modeMenu), nil, &Wfh{Stage: stageAwaitingMode})
}

func parseMode(text string) (WfhMode, bool) {
	switch mode := WfhMode(strings.TrimSpace(text)); mode {
	case ModeToday, ModeTomorrow, ModeUntilNow:
		return mode, true
	default:
		return "", false
	}
}

// wfhEvent строит событие календаря для выбранного варианта на момент at.
func wfhEvent(mode WfhMode, alias string, at time.Time) entity.Event {
	summary := fmt.Sprintf(fmtSummary, alias)
	today := entity.DateOf(at)

	switch mode {
	case ModeTomorrow:
		return entity.NewSingleDayEvent(alias, summary, today.AddDays(1))
	case ModeUntilNow:
		y, m, day := at.Date()
		start := time.Date(y, m, day, workdayStartHour, 0, 0, 0, at.Location())
		if at.Before(start) {
			start = time.Date(y, m, day, 0, 0, 0, 0, at.Location())
		}
		return entity.NewPartialDayEvent(alias, summary, start, at)
	default:
		return entity.NewSingleDayEvent(alias, summary, today)
	}
}
