package entity

import (
	"fmt"
	"unicode/utf8"
)

// UserProfile представляет пользователя бота в конкретном чате
type UserProfile struct {
	ChatID        int64   `json:"chat_id"`        // Telegram Chat ID
	FirstName     string  `json:"first_name"`     // Имя на момент первого сообщения
	LastName      string  `json:"last_name"`      // Фамилия (может быть пустой)
	CalendarAlias *string `json:"calendar_alias"` // Имя для календаря, nil если не задано
}

// NewUserProfile создаёт профиль и вычисляет имя для календаря
func NewUserProfile(chatID int64, firstName, lastName string) *UserProfile {
	return &UserProfile{
		ChatID:        chatID,
		FirstName:     firstName,
		LastName:      lastName,
		CalendarAlias: deriveCalendarAlias(firstName, lastName),
	}
}

// SetCalendarAlias задаёт имя для календаря вручную
func (p *UserProfile) SetCalendarAlias(alias string) {
	p.CalendarAlias = &alias
}

// CalendarAliasOr возвращает имя для календаря или def, если оно не задано
func (p *UserProfile) CalendarAliasOr(def string) string {
	if p.CalendarAlias == nil {
		return def
	}
	return *p.CalendarAlias
}

// deriveCalendarAlias строит имя вида "V.Pupkin" из первой буквы имени и фамилии.
func deriveCalendarAlias(firstName, lastName string) *string {
	if firstName == "" || lastName == "" {
		return nil
	}
	initial, _ := utf8.DecodeRuneInString(firstName)
	alias := fmt.Sprintf("%c.%s", initial, lastName)
	return &alias
}
