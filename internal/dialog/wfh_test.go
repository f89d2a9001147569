package dialog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"wfh-bot/internal/domain/entity"
)

func defaultStarters(t *testing.T) []Kind {
	t.Helper()
	starters, err := NewDefaultRegistry().Starters(DefaultPriority...)
	require.NoError(t, err)
	return starters
}

func TestWfh_TodayScenario(t *testing.T) {
	at := time.Date(2024, time.May, 6, 15, 4, 5, 0, time.Local)
	withClock(t, at)

	ctx := context.Background()
	starters := defaultStarters(t)
	profile := entity.NewUserProfile(1, "Vasiliy", "Pupkin")
	rec := &recorder{}
	p := NewProcessor()

	p.Process(ctx, "/wfh", profile, starters, rec.emit)
	require.Equal(t, entity.NewMenuReply("When?", modeMenu), rec.outcomes[0].Reply)

	p.Process(ctx, "today", profile, starters, rec.emit)
	require.Equal(t, entity.NewMenuReply("Confirm event wfh for today?", entity.Menu{{"yes", "no"}}), rec.outcomes[1].Reply)

	p.Process(ctx, "yes", profile, starters, rec.emit)
	require.Equal(t, entity.NewReply("Applied!"), rec.outcomes[2].Reply)
	require.Equal(t, entity.NewSingleDayEvent("V.Pupkin", "V.Pupkin WFH", entity.DateOf(at)), rec.outcomes[2].Event)
	require.Nil(t, p.Active())

	p.Process(ctx, "/wfh", profile, starters, rec.emit)
	require.Equal(t, "When?", rec.outcomes[3].Reply.Text)
	require.Equal(t, &Wfh{Stage: stageAwaitingMode}, p.Active())
}

func TestWfh_RequiresCalendarAlias(t *testing.T) {
	rec := &recorder{}
	p := NewProcessor()

	p.Process(context.Background(), "/wfh", entity.NewUserProfile(1, "Vasiliy", ""), defaultStarters(t), rec.emit)

	require.Equal(t, []string{"Please specify your calendar name using /setmyname"}, rec.texts())
	require.Nil(t, p.Active())
}

func TestWfh_UnexpectedModeCancels(t *testing.T) {
	d := &Wfh{Stage: stageAwaitingMode}
	action := d.TryProcess("next week", entity.NewUserProfile(1, "Vasiliy", "Pupkin"))
	require.Equal(t, FinishWith(entity.NewReply("Canceled!"), nil), action)
}

func TestWfh_DeclineConfirmation(t *testing.T) {
	d := &Wfh{Stage: stageAwaitingConfirmation, Mode: ModeTomorrow}
	action := d.TryProcess("no", entity.NewUserProfile(1, "Vasiliy", "Pupkin"))
	require.Equal(t, ActionFinish, action.Kind)
	require.Equal(t, "Canceled!", action.Reply.Text)
	require.Nil(t, action.Event)
}

func TestWfh_ConfirmationWithoutAliasIsRejected(t *testing.T) {
	d := &Wfh{Stage: stageAwaitingConfirmation, Mode: ModeToday}
	action := d.TryProcess("yes", entity.NewUserProfile(1, "Vasiliy", ""))
	require.Equal(t, ActionReject, action.Kind)
}

func TestWfh_ConfirmationWithUnknownModeIsRejected(t *testing.T) {
	d := &Wfh{Stage: stageAwaitingConfirmation, Mode: "next week"}
	action := d.TryProcess("yes", entity.NewUserProfile(1, "Vasiliy", "Pupkin"))
	require.Equal(t, ActionReject, action.Kind)
}

func TestWfhEvent(t *testing.T) {
	loc := time.FixedZone("MSK", 3*60*60)

	t.Run("tomorrow", func(t *testing.T) {
		at := time.Date(2024, time.May, 31, 20, 0, 0, 0, loc)
		e := wfhEvent(ModeTomorrow, "V.Pupkin", at)
		require.Equal(t, entity.NewSingleDayEvent("V.Pupkin", "V.Pupkin WFH", entity.Date{Year: 2024, Month: time.June, Day: 1}), e)
	})

	t.Run("until now", func(t *testing.T) {
		at := time.Date(2024, time.May, 6, 13, 30, 0, 0, loc)
		e := wfhEvent(ModeUntilNow, "V.Pupkin", at)
		require.Equal(t, entity.NewPartialDayEvent("V.Pupkin", "V.Pupkin WFH",
			time.Date(2024, time.May, 6, 9, 0, 0, 0, loc), at), e)
	})

	t.Run("until now before workday", func(t *testing.T) {
		at := time.Date(2024, time.May, 6, 7, 15, 0, 0, loc)
		e := wfhEvent(ModeUntilNow, "V.Pupkin", at)
		require.Equal(t, entity.NewPartialDayEvent("V.Pupkin", "V.Pupkin WFH",
			time.Date(2024, time.May, 6, 0, 0, 0, 0, loc), at), e)
	})
}
