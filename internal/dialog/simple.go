package dialog

import (
	"fmt"
	"strings"

	"wfh-bot/internal/domain/entity"
)

const (
	TagHelp      = "help-dialog"
	TagWhoAmI    = "whoami-dialog"
	TagSetMyName = "setmyname-dialog"
)

const (
	msgHelp = `Available commands:
/wfh - request work from home
/whoami - show your name and the name used in calendar
/setmyname <name> - set the name used in calendar, e.g. /setmyname J.Doe
/help - this message`

	msgNotSpecified = "<not specified>"
	msgEnterName    = "Enter the name to be used in calendar"
	msgInvalidName  = `No valid name is specified. Please specify name in format "/setmyname J.Doe"`
	msgCanceled     = "Canceled!"
	fmtWhoAmI       = "%s %s\nIn calendar will be \"%s\""
	fmtNameAccepted = "Your calendar name will be \"%s\""
)

// Help однократная команда /help
type Help struct{}

func (*Help) Tag() string { return TagHelp }

// TryProcess не вызывается: /help никогда не становится активным диалогом.
func (*Help) TryProcess(string, *entity.UserProfile) Action { return Reject() }

// HelpKind возвращает фабрику диалога /help
func HelpKind() Kind {
	return Kind{Tag: TagHelp, Start: startHelp, Decode: decodeJSON[Help]}
}

func startHelp(text string, _ *entity.UserProfile) StartResult {
	if _, ok := parseCommand(text, "help"); !ok {
		return NotApplicable()
	}
	return FinishedImmediately(entity.NewReply(msgHelp), nil)
}

// WhoAmI однократная команда /whoami
type WhoAmI struct{}

func (*WhoAmI) Tag() string { return TagWhoAmI }

func (*WhoAmI) TryProcess(string, *entity.UserProfile) Action { return Reject() }

// WhoAmIKind возвращает фабрику диалога /whoami
func WhoAmIKind() Kind {
	return Kind{Tag: TagWhoAmI, Start: startWhoAmI, Decode: decodeJSON[WhoAmI]}
}

func startWhoAmI(text string, profile *entity.UserProfile) StartResult {
	if _, ok := parseCommand(text, "whoami"); !ok {
		return NotApplicable()
	}
	reply := fmt.Sprintf(fmtWhoAmI, profile.FirstName, profile.LastName, profile.CalendarAliasOr(msgNotSpecified))
	return FinishedImmediately(entity.NewReply(reply), nil)
}

// SetMyName команда /setmyname. С аргументом выполняется сразу,
// без аргумента ждёт имя следующим сообщением.
type SetMyName struct {
	AwaitingName bool `json:"awaiting_name"`
}

func (*SetMyName) Tag() string { return TagSetMyName }

func (d *SetMyName) TryProcess(text string, profile *entity.UserProfile) Action {
	if !d.AwaitingName {
		return Reject()
	}
	if isCommand(text) {
		return FinishWith(entity.NewReply(msgCanceled), nil)
	}
	return FinishWith(applyName(text, profile), nil)
}

// SetMyNameKind возвращает фабрику диалога /setmyname
func SetMyNameKind() Kind {
	return Kind{Tag: TagSetMyName, Start: startSetMyName, Decode: decodeJSON[SetMyName]}
}

func startSetMyName(text string, profile *entity.UserProfile) StartResult {
	name, ok := parseCommand(text, "setmyname")
	if !ok {
		return NotApplicable()
	}
	if name == "" {
		return Started(entity.NewReply(msgEnterName), nil, &SetMyName{AwaitingName: true})
	}
	return FinishedImmediately(applyName(name, profile), nil)
}

func applyName(text string, profile *entity.UserProfile) *entity.Reply {
	name := normalizeName(text)
	if name == "" {
		return entity.NewReply(msgInvalidName)
	}
	profile.SetCalendarAlias(name)
	return entity.NewReply(fmt.Sprintf(fmtNameAccepted, name))
}

// normalizeName схлопывает пробелы; пустая строка означает невалидное имя.
func normalizeName(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
