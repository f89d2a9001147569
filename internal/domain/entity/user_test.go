package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewUserProfile_DerivesAlias(t *testing.T) {
	p := NewUserProfile(10, "Vasiliy", "Pupkin")
	require.Equal(t, int64(10), p.ChatID)
	require.NotNil(t, p.CalendarAlias)
	require.Equal(t, "V.Pupkin", *p.CalendarAlias)
}

func TestNewUserProfile_NoLastName(t *testing.T) {
	p := NewUserProfile(10, "Vasiliy", "")
	require.Nil(t, p.CalendarAlias)
	require.Equal(t, "<not specified>", p.CalendarAliasOr("<not specified>"))
}

func TestNewUserProfile_MultibyteInitial(t *testing.T) {
	p := NewUserProfile(10, "Василий", "Пупкин")
	require.Equal(t, "В.Пупкин", *p.CalendarAlias)
}

func TestUserProfile_SetCalendarAlias(t *testing.T) {
	p := NewUserProfile(10, "Vasiliy", "")
	p.SetCalendarAlias("A.Crowley")
	require.Equal(t, "A.Crowley", p.CalendarAliasOr("-"))
}
