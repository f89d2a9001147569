package calendar

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"wfh-bot/internal/domain/entity"
	"wfh-bot/internal/domain/port"
)

const (
	DefaultFormNameField   = "entry.656124513"
	DefaultFormReasonField = "entry.1251169846"
	formReasonWorkFromHome = "Work from home"
)

// GoogleForm отправляет заявку в Google Form: имя из календаря и причину
type GoogleForm struct {
	client      *http.Client
	formURL     string
	nameField   string
	reasonField string
}

// NewGoogleForm создаёт отправителя заявок в форму formURL (адрес formResponse).
// Пустые имена полей заменяются на поля формы по умолчанию.
func NewGoogleForm(client *http.Client, formURL, nameField, reasonField string) *GoogleForm {
	if nameField == "" {
		nameField = DefaultFormNameField
	}
	if reasonField == "" {
		reasonField = DefaultFormReasonField
	}
	return &GoogleForm{client: client, formURL: formURL, nameField: nameField, reasonField: reasonField}
}

// Post отправляет ответ формы для события
func (f *GoogleForm) Post(ctx context.Context, event entity.Event) error {
	form := url.Values{}
	form.Set(f.nameField, event.CalendarAlias())
	form.Set(f.reasonField, formReasonWorkFromHome)
	form.Set(f.reasonField+".other_option_response", "")
	form.Set("pageHistory", "0,1")
	form.Set("fvv", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.formURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build form request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("post form: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("post form: status %d", resp.StatusCode)
	}
	return nil
}

var _ port.EventSender = (*GoogleForm)(nil)
