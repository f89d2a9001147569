package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2/jwt"

	"wfh-bot/internal/domain/entity"
	"wfh-bot/internal/domain/port"
)

const (
	DefaultCalendarBaseURL = "https://www.googleapis.com/calendar/v3"
	calendarScope          = "https://www.googleapis.com/auth/calendar"
	googleTokenURL         = "https://oauth2.googleapis.com/token"
)

// GoogleCalendar публикует события в Google Calendar
type GoogleCalendar struct {
	client     *http.Client
	baseURL    string
	calendarID string
}

// NewGoogleCalendar создаёт отправителя событий; client должен быть авторизован.
// Пустой baseURL заменяется на DefaultCalendarBaseURL.
func NewGoogleCalendar(client *http.Client, baseURL, calendarID string) *GoogleCalendar {
	if baseURL == "" {
		baseURL = DefaultCalendarBaseURL
	}
	return &GoogleCalendar{client: client, baseURL: baseURL, calendarID: calendarID}
}

// serviceAccountKey поля JSON-ключа сервисного аккаунта Google
type serviceAccountKey struct {
	ClientEmail  string `json:"client_email"`
	PrivateKey   string `json:"private_key"`
	PrivateKeyID string `json:"private_key_id"`
	TokenURI     string `json:"token_uri"`
}

// ServiceAccountClient создаёт HTTP-клиент по ключу сервисного аккаунта Google
func ServiceAccountClient(ctx context.Context, credentialsJSON []byte) (*http.Client, error) {
	conf, err := serviceAccountConfig(credentialsJSON)
	if err != nil {
		return nil, err
	}
	return conf.Client(ctx), nil
}

func serviceAccountConfig(credentialsJSON []byte) (*jwt.Config, error) {
	var key serviceAccountKey
	if err := json.Unmarshal(credentialsJSON, &key); err != nil {
		return nil, fmt.Errorf("parse service account key: %w", err)
	}
	if key.ClientEmail == "" || key.PrivateKey == "" {
		return nil, errors.New("parse service account key: client_email and private_key are required")
	}
	if key.TokenURI == "" {
		key.TokenURI = googleTokenURL
	}
	return &jwt.Config{
		Email:        key.ClientEmail,
		PrivateKey:   []byte(key.PrivateKey),
		PrivateKeyID: key.PrivateKeyID,
		TokenURL:     key.TokenURI,
		Scopes:       []string{calendarScope},
	}, nil
}

type calendarTime struct {
	Date     string `json:"date,omitempty"`
	DateTime string `json:"dateTime,omitempty"`
}

type calendarEvent struct {
	Summary string       `json:"summary"`
	Start   calendarTime `json:"start"`
	End     calendarTime `json:"end"`
}

// Post создаёт событие в календаре
func (c *GoogleCalendar) Post(ctx context.Context, event entity.Event) error {
	body, err := json.Marshal(toCalendarEvent(event))
	if err != nil {
		return fmt.Errorf("encode calendar event: %w", err)
	}

	endpoint := fmt.Sprintf("%s/calendars/%s/events", c.baseURL, url.PathEscape(c.calendarID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build calendar request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("post calendar event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("post calendar event: status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}
	return nil
}

func toCalendarEvent(event entity.Event) calendarEvent {
	out := calendarEvent{Summary: event.EventSummary()}
	switch e := event.(type) {
	case entity.WholeDayEvent:
		out.Start.Date = e.Start.String()
		out.End.Date = e.End.String()
	case entity.PartialDayEvent:
		out.Start.DateTime = e.Start.Format(time.RFC3339)
		out.End.DateTime = e.End.Format(time.RFC3339)
	}
	return out
}

var _ port.EventSender = (*GoogleCalendar)(nil)
