package container

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"wfh-bot/internal/domain/entity"
	"wfh-bot/internal/infrastructure/calendar"
	"wfh-bot/internal/infrastructure/storage"
)

type discardSender struct {
	texts []string
}

func (d *discardSender) SendText(_ context.Context, _ int64, text string) error {
	d.texts = append(d.texts, text)
	return nil
}

func (d *discardSender) SendMenu(_ context.Context, _ int64, text string, _ entity.Menu) error {
	d.texts = append(d.texts, text)
	return nil
}

func TestNew_WiresDefaultDialogs(t *testing.T) {
	messages := &discardSender{}
	c, err := New(context.Background(), messages, calendar.LogSender{}, storage.NewMemoryStateStore())
	require.NoError(t, err)

	ctx := context.Background()
	c.Users.Accept(ctx, entity.InboundMessage{ChatID: 1, MessageID: 1, FirstName: "Vasiliy", Text: "/setmyname V.Pupkin"})
	c.Users.Accept(ctx, entity.InboundMessage{ChatID: 1, MessageID: 2, FirstName: "Vasiliy", Text: "/wfh"})

	require.Equal(t, []string{"Your calendar name will be \"V.Pupkin\"", "When?"}, messages.texts)
	for _, tag := range []string{"wfh-dialog", "help-dialog", "whoami-dialog", "setmyname-dialog"} {
		_, ok := c.Registry.Lookup(tag)
		require.True(t, ok, tag)
	}
}
