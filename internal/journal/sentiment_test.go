package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSentimentLabel(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{90, LabelPositive},
		{55.5, LabelPositive},
		{55, LabelNeutral},
		{50, LabelNeutral},
		{45, LabelNeutral},
		{44.9, LabelChallenging},
		{0, LabelChallenging},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SentimentLabel(tt.score), "score %v", tt.score)
	}
}

func TestClampSentiment(t *testing.T) {
	assert.Equal(t, 0.0, ClampSentiment(-0.4))
	assert.Equal(t, 100.0, ClampSentiment(101))
	assert.Equal(t, 42.0, ClampSentiment(42))
}

func TestSentimentTrend(t *testing.T) {
	_, ok := SentimentTrend(nil)
	assert.False(t, ok)

	entries := []*Entry{
		{SentimentHistory: []SentimentPoint{{Score: 30, Version: VersionOriginal}, {Score: 45, Version: VersionReframed}}},
		nil,
		{SentimentHistory: []SentimentPoint{{Score: 70, Version: VersionOriginal}}},
	}
	trend, ok := SentimentTrend(entries)
	assert.True(t, ok)
	assert.Equal(t, Trend{First: 30, Latest: 70, Improvement: 40, Points: 3}, trend)
}

func TestAverageClosedSentiment(t *testing.T) {
	_, ok := AverageClosedSentiment([]*Entry{{Status: StatusOpen, Sentiment: 90}})
	assert.False(t, ok)

	avg, ok := AverageClosedSentiment([]*Entry{
		{Status: StatusClosed, Sentiment: 40},
		{Status: StatusPartial, Sentiment: 100},
		{Status: StatusClosed, Sentiment: 60},
	})
	assert.True(t, ok)
	assert.Equal(t, 50.0, avg)
}

func TestSearchClosed(t *testing.T) {
	day := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	gym := &Entry{ID: "gym", Status: StatusClosed, CreatedAt: day, Summary: Summary{Title: "Gym day", Summary: "Lifted weights"}}
	work := &Entry{ID: "work", Status: StatusClosed, CreatedAt: day.AddDate(0, 0, 1), Summary: Summary{Title: "Deadline", Summary: "Shipped release"}, Tags: []string{"Work"}}
	draft := &Entry{ID: "draft", Status: StatusOpen, CreatedAt: day, Summary: Summary{Title: "gym plan"}}
	all := []*Entry{gym, work, draft}

	got := SearchClosed(all, "")
	assert.Equal(t, []*Entry{work, gym}, got)

	got = SearchClosed(all, "GYM")
	assert.Equal(t, []*Entry{gym}, got)

	got = SearchClosed(all, "shipped")
	assert.Equal(t, []*Entry{work}, got)

	assert.Empty(t, SearchClosed(all, "zzzz"))
}
