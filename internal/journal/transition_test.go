package journal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var morningQs = PendingQuestions{
	{Question: "What is your focus?", InputType: 0},
	{Question: "How rested are you?", InputType: 1},
}

func scored(title string, p float64) Summary {
	return Summary{Title: title, Summary: title + " summary", Tags: []string{"work"}, Positivity: p, Scored: true}
}

func TestStartDay(t *testing.T) {
	e := newTestEngine(t)
	now := at(8, 0)

	en, err := e.StartDay(nil, "id-1", "u1", "slept well", morningQs, now)
	require.NoError(t, err)
	assert.Equal(t, StatusOpen, en.Status)
	assert.Equal(t, "slept well", en.MorningString())
	assert.Equal(t, now, en.CreatedAt)
	assert.Equal(t, float64(NeutralSentiment), en.Sentiment)
	assert.Equal(t, StateDraftIncomplete, e.State(en, now))

	_, err = e.StartDay(en, "id-2", "u1", "again", nil, now)
	assert.ErrorIs(t, err, ErrDuplicateEntry)
}

func TestFullLifecycle(t *testing.T) {
	e := newTestEngine(t)
	en, err := e.StartDay(nil, "id-1", "u1", "big presentation", morningQs, at(8, 0))
	require.NoError(t, err)

	answers := map[string]string{"What is your focus?": "slides", "How rested are you?": "7"}
	en, err = e.CompleteMorningPlan(en, answers, scored("Prep", 62), at(8, 30))
	require.NoError(t, err)
	assert.Equal(t, StatusPartial, en.Status)
	assert.Equal(t, AnsweredQuestions(answers), en.MorningQuestions)
	assert.Equal(t, 62.0, en.Sentiment)
	assert.Empty(t, en.SentimentHistory)
	assert.Equal(t, StateWaitingForEvening, e.State(en, at(12, 0)))

	_, err = e.StartFollowUp(en, "went ok", nil, nil, at(12, 0))
	assert.ErrorIs(t, err, ErrInvalidTransition)

	evening := PendingQuestions{{Question: "What went well?"}}
	en, err = e.StartFollowUp(en, "went ok", evening, []string{"work", "talk"}, at(18, 0))
	require.NoError(t, err)
	assert.Equal(t, StatusPartialOpen, en.Status)
	assert.Equal(t, []string{"work", "talk"}, en.Tags)
	assert.Equal(t, StateDraftIncompleteEvening, e.State(en, at(18, 5)))

	en, err = e.CompleteFollowUp(en, map[string]string{"What went well?": "Q&A"}, scored("Done", 80), at(19, 0))
	require.NoError(t, err)
	assert.Equal(t, StatusClosed, en.Status)
	require.Len(t, en.SentimentHistory, 1)
	assert.Equal(t, SentimentPoint{Score: 80, Timestamp: at(19, 0), Version: VersionOriginal}, en.SentimentHistory[0])
	assert.Equal(t, StateClosed, e.State(en, at(19, 0)))
}

func TestCompleteMorningPlanRequiresAllAnswers(t *testing.T) {
	e := newTestEngine(t)
	en, err := e.StartDay(nil, "id-1", "u1", "text", morningQs, at(8, 0))
	require.NoError(t, err)

	_, err = e.CompleteMorningPlan(en, map[string]string{"What is your focus?": "x"}, scored("t", 50), at(9, 0))
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, StatusOpen, en.Status)
	assert.Equal(t, morningQs, en.MorningQuestions)
}

func TestClosedRejectsEverythingButReframe(t *testing.T) {
	e := newTestEngine(t)
	closed := &Entry{
		ID:               "c",
		Status:           StatusClosed,
		Sentiment:        40,
		SentimentHistory: []SentimentPoint{{Score: 40, Version: VersionOriginal}},
	}

	_, err := e.CompleteFollowUp(closed, map[string]string{"q": "a"}, scored("x", 90), at(19, 0))
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Len(t, closed.SentimentHistory, 1)

	_, err = e.CompleteMorningPlan(closed, map[string]string{"q": "a"}, scored("x", 90), at(19, 0))
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = e.StartFollowUp(closed, "t", nil, nil, at(19, 0))
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, 40.0, closed.Sentiment)
}

func TestReframeAppendsHistory(t *testing.T) {
	e := newTestEngine(t)
	closed := &Entry{
		Status:           StatusClosed,
		Sentiment:        30,
		SentimentHistory: []SentimentPoint{{Score: 30, Version: VersionOriginal}},
	}

	once, err := e.Reframe(closed, "it was a lesson", scored("Lesson", 55), at(20, 0))
	require.NoError(t, err)
	twice, err := e.Reframe(once, "it made me stronger", scored("Growth", 70), at(21, 0))
	require.NoError(t, err)

	assert.Len(t, closed.SentimentHistory, 1)
	require.Len(t, twice.SentimentHistory, 3)
	assert.Equal(t, VersionOriginal, twice.SentimentHistory[0].Version)
	assert.Equal(t, VersionReframed, twice.SentimentHistory[1].Version)
	assert.Equal(t, 70.0, twice.SentimentHistory[2].Score)
	assert.Equal(t, StatusClosed, twice.Status)
}

func TestUnscoredSummaryKeepsSentiment(t *testing.T) {
	e := newTestEngine(t)
	en := &Entry{Status: StatusPartialOpen, Sentiment: 64}

	out, err := e.CompleteFollowUp(en, map[string]string{"q": "a"}, Summary{Summary: "Error summarizing entry."}, at(19, 0))
	require.NoError(t, err)
	assert.Equal(t, 64.0, out.Sentiment)
	assert.Equal(t, "Error summarizing entry.", out.Summary.Summary)
	assert.Equal(t, 64.0, out.SentimentHistory[0].Score)
}

func TestScoredSummaryIsClamped(t *testing.T) {
	e := newTestEngine(t)
	out, err := e.Reframe(&Entry{Status: StatusClosed}, "x", scored("t", 140), at(19, 0))
	require.NoError(t, err)
	assert.Equal(t, 100.0, out.Sentiment)
}

func TestAutoCloseIsIdempotent(t *testing.T) {
	e := newTestEngine(t)
	en := &Entry{Status: StatusPartial, UpdatedAt: at(8, 0)}

	once := e.AutoClose(en, at(9, 0))
	twice := e.AutoClose(once, at(10, 0))
	assert.Equal(t, StatusClosed, once.Status)
	assert.Equal(t, once, twice)
	assert.Equal(t, StatusPartial, en.Status)
}

func TestCheckUnknownEvent(t *testing.T) {
	e := newTestEngine(t)
	err := e.Check(&Entry{Status: StatusOpen}, Event("dance"), at(8, 0))
	assert.True(t, errors.Is(err, ErrInvalidTransition))

	err = e.Check(nil, EventReframe, at(8, 0))
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestStoreErrorMatchesUnavailable(t *testing.T) {
	cause := errors.New("connection refused")
	err := WrapStore("find entry", cause)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "find entry")
	assert.NoError(t, WrapStore("noop", nil))
}

func TestCloneIsDeep(t *testing.T) {
	en := &Entry{
		Tags:             []string{"a"},
		MorningQuestions: AnsweredQuestions{"q": "a"},
		SentimentHistory: []SentimentPoint{{Score: 1}},
	}
	c := en.Clone()
	c.Tags[0] = "b"
	c.MorningQuestions.(AnsweredQuestions)["q"] = "changed"
	c.SentimentHistory[0].Score = 2

	assert.Equal(t, "a", en.Tags[0])
	assert.Equal(t, "a", en.MorningQuestions.(AnsweredQuestions)["q"])
	assert.Equal(t, 1.0, en.SentimentHistory[0].Score)
	assert.Nil(t, (*Entry)(nil).Clone())
}
