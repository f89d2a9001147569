package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDate_JSON(t *testing.T) {
	d := Date{Year: 2024, Month: time.March, Day: 5}
	data, err := json.Marshal(d)
	require.NoError(t, err)
	require.Equal(t, `"2024-03-05"`, string(data))

	var back Date
	require.NoError(t, json.Unmarshal(data, &back))
	require.Equal(t, d, back)
}

func TestDate_AddDaysCrossesMonth(t *testing.T) {
	d := Date{Year: 2024, Month: time.February, Day: 29}
	require.Equal(t, "2024-03-01", d.AddDays(1).String())
}

func TestNewSingleDayEvent_EndIsExclusive(t *testing.T) {
	e := NewSingleDayEvent("V.Pupkin", "V.Pupkin WFH", Date{Year: 2024, Month: time.December, Day: 31})
	require.Equal(t, "2025-01-01", e.End.String())
}

func TestPartialDayEvent_RFC3339(t *testing.T) {
	loc := time.FixedZone("MSK", 3*60*60)
	start := time.Date(2024, time.May, 6, 9, 0, 0, 0, loc)
	end := time.Date(2024, time.May, 6, 13, 30, 15, 999, loc)
	e := NewPartialDayEvent("V.Pupkin", "V.Pupkin WFH", start, end)

	data, err := json.Marshal(e)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"alias": "V.Pupkin",
		"summary": "V.Pupkin WFH",
		"start_date_time": "2024-05-06T09:00:00+03:00",
		"end_date_time": "2024-05-06T13:30:15+03:00"
	}`, string(data))
}
