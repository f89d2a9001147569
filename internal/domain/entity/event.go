package entity

import (
	"encoding/json"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Date календарная дата без времени и часового пояса
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf возвращает дату момента t в его часовом поясе.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate разбирает дату в формате YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// AddDays сдвигает дату на n дней.
func (d Date) AddDays(n int) Date {
	return DateOf(time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.UTC))
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Event событие для календаря: WholeDayEvent или PartialDayEvent
type Event interface {
	CalendarAlias() string
	EventSummary() string
	isEvent()
}

// WholeDayEvent событие на целые дни, End не включается
type WholeDayEvent struct {
	Alias   string `json:"alias"`
	Summary string `json:"summary"`
	Start   Date   `json:"start_date"`
	End     Date   `json:"end_date"`
}

// NewSingleDayEvent создаёт событие на один день.
func NewSingleDayEvent(alias, summary string, day Date) WholeDayEvent {
	return WholeDayEvent{Alias: alias, Summary: summary, Start: day, End: day.AddDays(1)}
}

func (e WholeDayEvent) CalendarAlias() string { return e.Alias }
func (e WholeDayEvent) EventSummary() string  { return e.Summary }
func (WholeDayEvent) isEvent()                {}

// PartialDayEvent событие с точным временем начала и конца
type PartialDayEvent struct {
	Alias   string    `json:"alias"`
	Summary string    `json:"summary"`
	Start   time.Time `json:"start_date_time"`
	End     time.Time `json:"end_date_time"`
}

// NewPartialDayEvent создаёт событие, время округляется до секунд (RFC 3339).
func NewPartialDayEvent(alias, summary string, start, end time.Time) PartialDayEvent {
	return PartialDayEvent{
		Alias:   alias,
		Summary: summary,
		Start:   start.Truncate(time.Second),
		End:     end.Truncate(time.Second),
	}
}

func (e PartialDayEvent) CalendarAlias() string { return e.Alias }
func (e PartialDayEvent) EventSummary() string  { return e.Summary }
func (PartialDayEvent) isEvent()                {}
