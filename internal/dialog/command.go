package dialog

import (
	"strings"
	"unicode"
)

// parseCommand проверяет, что text является командой name ("/name", "/name@bot"),
// и возвращает её аргументы.
func parseCommand(text, name string) (string, bool) {
	text = strings.TrimSpace(text)
	head, args := text, ""
	if i := strings.IndexFunc(text, unicode.IsSpace); i >= 0 {
		head, args = text[:i], text[i:]
	}
	if at := strings.IndexByte(head, '@'); at >= 0 {
		head = head[:at]
	}
	if head != "/"+name {
		return "", false
	}
	return strings.TrimSpace(args), true
}

func isCommand(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), "/")
}
