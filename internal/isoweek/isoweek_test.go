package isoweek

import (
	"testing"
	"time"

	"daybook-backend/internal/journal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var utc = New(time.UTC)

func TestMondayOf(t *testing.T) {
	tests := []struct {
		week, year int
		want       string
	}{
		{1, 2021, "2021-01-04"},
		{1, 2020, "2019-12-30"},
		{53, 2020, "2020-12-28"},
		{1, 2016, "2016-01-04"}, // 2016 年从周五开始
		{53, 2015, "2015-12-28"},
		{23, 2024, "2024-06-03"},
		{1, 2026, "2025-12-29"},
	}
	for _, tt := range tests {
		got, err := utc.MondayOf(tt.week, tt.year)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got.Format("2006-01-02"), "week %d of %d", tt.week, tt.year)
		assert.Equal(t, time.Monday, got.Weekday())
	}
}

func TestWeeksInYear(t *testing.T) {
	assert.Equal(t, 53, utc.WeeksInYear(2020))
	assert.Equal(t, 52, utc.WeeksInYear(2021))
	assert.Equal(t, 53, utc.WeeksInYear(2015))
	assert.Equal(t, 52, utc.WeeksInYear(2024))
	assert.Equal(t, 53, utc.WeeksInYear(2026))
}

func TestRoundTrip(t *testing.T) {
	for year := 1999; year <= 2040; year++ {
		for week := 1; week <= utc.WeeksInYear(year); week++ {
			monday, err := utc.MondayOf(week, year)
			require.NoError(t, err)
			w, y := utc.ISOWeekOf(monday)
			require.Equal(t, [2]int{week, year}, [2]int{w, y})
		}
	}
}

func TestInvalidWeek(t *testing.T) {
	for _, tc := range [][2]int{{0, 2021}, {53, 2021}, {54, 2020}, {-3, 2020}, {10, 0}} {
		_, err := utc.MondayOf(tc[0], tc[1])
		assert.ErrorIs(t, err, ErrInvalidWeek, "week %d of %d", tc[0], tc[1])
		_, _, err = utc.WeekRange(tc[0], tc[1])
		assert.ErrorIs(t, err, ErrInvalidWeek)
	}
}

func TestWeekRange(t *testing.T) {
	start, end, err := utc.WeekRange(23, 2024)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 6, 9, 23, 59, 59, int(999*time.Millisecond), time.UTC), end)
}

func TestWeekRangeInLocalZone(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	cal := New(loc)
	start, _, err := cal.WeekRange(23, 2024)
	require.NoError(t, err)
	assert.Equal(t, loc, start.Location())
	assert.Equal(t, 0, start.Hour())

	// 周一 08:00 本地
	w, y := cal.ISOWeekOf(time.Date(2024, 6, 3, 13, 0, 0, 0, time.UTC))
	assert.Equal(t, 23, w)
	assert.Equal(t, 2024, y)
}

func TestEndToEndMonday(t *testing.T) {
	created := time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC)
	w, y := utc.ISOWeekOf(created)
	assert.Equal(t, 23, w)
	assert.Equal(t, 2024, y)

	monday, err := utc.MondayOf(w, y)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), monday)
}

func TestNextPrev(t *testing.T) {
	w, y := utc.Next(53, 2020)
	assert.Equal(t, [2]int{1, 2021}, [2]int{w, y})
	w, y = utc.Next(52, 2021)
	assert.Equal(t, [2]int{1, 2022}, [2]int{w, y})
	w, y = utc.Next(10, 2021)
	assert.Equal(t, [2]int{11, 2021}, [2]int{w, y})

	w, y = utc.Prev(1, 2021)
	assert.Equal(t, [2]int{53, 2020}, [2]int{w, y})
	w, y = utc.Prev(1, 2022)
	assert.Equal(t, [2]int{52, 2021}, [2]int{w, y})
}

func TestBucketEntriesByDay(t *testing.T) {
	monday := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	early := &journal.Entry{ID: "early", CreatedAt: monday.Add(8 * time.Hour), UpdatedAt: monday.Add(9 * time.Hour)}
	late := &journal.Entry{ID: "late", CreatedAt: monday.Add(7 * time.Hour), UpdatedAt: monday.Add(20 * time.Hour)}
	sunday := &journal.Entry{ID: "sun", CreatedAt: monday.AddDate(0, 0, 6).Add(23 * time.Hour), UpdatedAt: monday}
	outside := &journal.Entry{ID: "next", CreatedAt: monday.AddDate(0, 0, 7), UpdatedAt: monday}

	days := utc.BucketEntriesByDay([]*journal.Entry{early, late, nil, sunday, outside}, monday)
	require.NotNil(t, days[0])
	assert.Equal(t, "late", days[0].ID)
	assert.Equal(t, "sun", days[6].ID)
	for i := 1; i < 6; i++ {
		assert.Nil(t, days[i])
	}
}
