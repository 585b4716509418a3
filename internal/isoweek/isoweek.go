// Package isoweek ISO-8601 周计算及按天归档日记。
// 所有边界都使用 Calendar.Location 一个时区。
package isoweek

import (
	"errors"
	"fmt"
	"time"

	"daybook-backend/internal/journal"
)

var ErrInvalidWeek = errors.New("invalid ISO week")

// Calendar 周历
type Calendar struct {
	Location *time.Location
}

func New(loc *time.Location) Calendar {
	if loc == nil {
		loc = time.Local
	}
	return Calendar{Location: loc}
}

func (c Calendar) loc() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

// ISOWeekOf 日期所在的 ISO 周
func (c Calendar) ISOWeekOf(t time.Time) (week, year int) {
	year, week = t.In(c.loc()).ISOWeek()
	return week, year
}

// WeeksInYear 52 或 53，取 12 月 31 日所在周
func (c Calendar) WeeksInYear(year int) int {
	week, _ := c.ISOWeekOf(time.Date(year, time.December, 31, 12, 0, 0, 0, c.loc()))
	if week == 1 {
		// 12-31 属于下一年第 1 周，则本年最后一周为 52
		return 52
	}
	return week
}

// Validate 周数必须在 1..WeeksInYear(year)，不做截断
func (c Calendar) Validate(week, year int) error {
	if year < 1 || year > 9999 {
		return fmt.Errorf("%w: year %d", ErrInvalidWeek, year)
	}
	if n := c.WeeksInYear(year); week < 1 || week > n {
		return fmt.Errorf("%w: week %d of %d (1..%d)", ErrInvalidWeek, week, year, n)
	}
	return nil
}

// MondayOf 第 week 周的周一 00:00。第 1 周为包含 1 月 4 日的那一周。
func (c Calendar) MondayOf(week, year int) (time.Time, error) {
	if err := c.Validate(week, year); err != nil {
		return time.Time{}, err
	}
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, c.loc())
	offset := (int(jan4.Weekday()) + 6) % 7
	return jan4.AddDate(0, 0, -offset+(week-1)*7), nil
}

// WeekRange 周一 00:00:00.000 至周日 23:59:59.999
func (c Calendar) WeekRange(week, year int) (start, end time.Time, err error) {
	start, err = c.MondayOf(week, year)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end = start.AddDate(0, 0, 7).Add(-time.Millisecond)
	return start, end, nil
}

// Next 下一周，跨年时进位
func (c Calendar) Next(week, year int) (int, int) {
	if week >= c.WeeksInYear(year) {
		return 1, year + 1
	}
	return week + 1, year
}

// Prev 上一周
func (c Calendar) Prev(week, year int) (int, int) {
	if week <= 1 {
		return c.WeeksInYear(year - 1), year - 1
	}
	return week - 1, year
}

// Days weekStart 起连续 7 天的 00:00
func (c Calendar) Days(weekStart time.Time) [7]time.Time {
	var days [7]time.Time
	s := weekStart.In(c.loc())
	s = time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, c.loc())
	for i := range days {
		days[i] = s.AddDate(0, 0, i)
	}
	return days
}

// BucketEntriesByDay 按 CreatedAt 的本地日期放入 0..6，同一天多条时取 UpdatedAt 最新的
func (c Calendar) BucketEntriesByDay(entries []*journal.Entry, weekStart time.Time) [7]*journal.Entry {
	var out [7]*journal.Entry
	days := c.Days(weekStart)
	for _, e := range entries {
		if e == nil {
			continue
		}
		idx := dayIndex(days, e.CreatedAt.In(c.loc()))
		if idx < 0 {
			continue
		}
		if cur := out[idx]; cur == nil || e.UpdatedAt.After(cur.UpdatedAt) {
			out[idx] = e
		}
	}
	return out
}

func dayIndex(days [7]time.Time, t time.Time) int {
	for i, d := range days {
		if !t.Before(d) && t.Before(d.AddDate(0, 0, 1)) {
			return i
		}
	}
	return -1
}
