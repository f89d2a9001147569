package calendar

import (
	"context"
	"errors"
	"log/slog"

	"wfh-bot/internal/domain/entity"
	"wfh-bot/internal/domain/port"
)

// LogSender только пишет событие в лог
type LogSender struct{}

func (LogSender) Post(ctx context.Context, event entity.Event) error {
	attrs := []any{"alias", event.CalendarAlias(), "summary", event.EventSummary()}
	switch e := event.(type) {
	case entity.WholeDayEvent:
		attrs = append(attrs, "start_date", e.Start.String(), "end_date", e.End.String())
	case entity.PartialDayEvent:
		attrs = append(attrs, "start", e.Start, "end", e.End)
	}
	slog.InfoContext(ctx, "calendar event", attrs...)
	return nil
}

// MultiSender отправляет событие всем получателям по очереди
type MultiSender []port.EventSender

func (m MultiSender) Post(ctx context.Context, event entity.Event) error {
	var errs []error
	for _, sender := range m {
		if err := sender.Post(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var (
	_ port.EventSender = LogSender{}
	_ port.EventSender = MultiSender(nil)
)
