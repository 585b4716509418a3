package logic

import (
	"time"

	"daybook-backend/internal/journal"
)

// EntryView 接口返回的条目
type EntryView struct {
	ID               string                   `json:"id"`
	Status           journal.Status           `json:"status"`
	CreatedAt        time.Time                `json:"created_at"`
	UpdatedAt        time.Time                `json:"updated_at"`
	MorningText      []journal.TextStamp      `json:"journal_entry"`
	EveningText      []journal.TextStamp      `json:"journal_entry2"`
	MorningQuestions journal.QuestionSet      `json:"user_response"`
	EveningQuestions journal.QuestionSet      `json:"user_response2"`
	Summary          journal.Summary          `json:"summary"`
	Sentiment        float64                  `json:"sentiment"`
	SentimentLabel   string                   `json:"sentiment_label"`
	SentimentHistory []journal.SentimentPoint `json:"sentiment_history"`
	Tags             []string                 `json:"tags"`
	NegativePhrases  []journal.NegativePhrase `json:"negative_phrases"`
}

func NewEntryView(e *journal.Entry) *EntryView {
	if e == nil {
		return nil
	}
	return &EntryView{
		ID:               e.ID,
		Status:           e.Status,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
		MorningText:      e.MorningText,
		EveningText:      e.EveningText,
		MorningQuestions: e.MorningQuestions,
		EveningQuestions: e.EveningQuestions,
		Summary:          e.Summary,
		Sentiment:        e.Sentiment,
		SentimentLabel:   journal.SentimentLabel(e.Sentiment),
		SentimentHistory: e.SentimentHistory,
		Tags:             e.Tags,
		NegativePhrases:  e.NegativePhrases,
	}
}

func entryViews(entries []*journal.Entry) []*EntryView {
	out := make([]*EntryView, 0, len(entries))
	for _, e := range entries {
		out = append(out, NewEntryView(e))
	}
	return out
}

// TodayView 首页
type TodayView struct {
	State       journal.State  `json:"state"`
	Action      journal.Action `json:"action"`
	Title       string         `json:"title"`
	Entry       *EntryView     `json:"entry,omitempty"`
	Cutoff      time.Time      `json:"cutoff"`
	Countdown   string         `json:"countdown"`
	SecondsLeft int64          `json:"seconds_left"`
}

// 周视图中每天的跳转目标
const (
	LinkPlan    = "plan"
	LinkJournal = "journal"
)

// DayView 周视图中的一天
type DayView struct {
	Date      time.Time  `json:"date"`
	Weekday   string     `json:"weekday"`
	IsToday   bool       `json:"is_today"`
	Entry     *EntryView `json:"entry,omitempty"`
	Link      string     `json:"link,omitempty"`
	Sentiment *float64   `json:"sentiment,omitempty"`
	Label     string     `json:"label,omitempty"`
}

type WeekRef struct {
	Year int `json:"year"`
	Week int `json:"week"`
}

// WeekView 周视图
type WeekView struct {
	Year        int            `json:"year"`
	Week        int            `json:"week"`
	WeeksInYear int            `json:"weeks_in_year"`
	Start       time.Time      `json:"start"`
	End         time.Time      `json:"end"`
	Days        [7]DayView     `json:"days"`
	Prev        WeekRef        `json:"prev"`
	Next        WeekRef        `json:"next"`
	Trend       *journal.Trend `json:"trend,omitempty"`
	Swept       SweepResult    `json:"swept"`
}

// SweepResult 一次清理的结果
type SweepResult struct {
	Closed  int `json:"closed"`
	Deleted int `json:"deleted"`
}
