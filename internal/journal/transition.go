package journal

import (
	"fmt"
	"time"
)

// Event 用户触发的事件
type Event string

const (
	EventStartDay            Event = "startDay"
	EventCompleteMorningPlan Event = "completeMorningPlan"
	EventStartFollowUp       Event = "startFollowUp"
	EventCompleteFollowUp    Event = "completeFollowUp"
	EventReframe             Event = "reframe"
)

// Check 校验事件是否合法。startDay 时 entry 应为今天的条目（没有则为 nil）。
func (e *Engine) Check(entry *Entry, ev Event, now time.Time) error {
	if ev == EventStartDay {
		if entry != nil {
			return ErrDuplicateEntry
		}
		return nil
	}
	if entry == nil {
		return fmt.Errorf("%w: %s without an entry", ErrInvalidTransition, ev)
	}
	var want Status
	switch ev {
	case EventCompleteMorningPlan:
		want = StatusOpen
	case EventStartFollowUp:
		want = StatusPartial
	case EventCompleteFollowUp:
		want = StatusPartialOpen
	case EventReframe:
		want = StatusClosed
	default:
		return fmt.Errorf("%w: unknown event %q", ErrInvalidTransition, ev)
	}
	if entry.Status != want {
		return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, ev, entry.Status)
	}
	if ev == EventStartFollowUp && !e.AfterCutoff(now) {
		return fmt.Errorf("%w: %s before evening cutoff", ErrInvalidTransition, ev)
	}
	return nil
}

// StartDay 新建 open 条目，id 由调用方生成
func (e *Engine) StartDay(today *Entry, id, authorID, text string, questions QuestionSet, now time.Time) (*Entry, error) {
	if err := e.Check(today, EventStartDay, now); err != nil {
		return nil, err
	}
	return &Entry{
		ID:               id,
		AuthorID:         authorID,
		Status:           StatusOpen,
		CreatedAt:        now,
		UpdatedAt:        now,
		MorningText:      []TextStamp{{Text: text, Timestamp: now}},
		MorningQuestions: questions,
		Summary:          Summary{Title: PlaceholderTitle},
		Sentiment:        NeutralSentiment,
	}, nil
}

// CompleteMorningPlan open -> partial
func (e *Engine) CompleteMorningPlan(entry *Entry, answers map[string]string, sum Summary, now time.Time) (*Entry, error) {
	if err := e.Check(entry, EventCompleteMorningPlan, now); err != nil {
		return nil, err
	}
	if err := CheckAnswers(entry.MorningQuestions, answers); err != nil {
		return nil, err
	}
	next := entry.Clone()
	next.Status = StatusPartial
	next.MorningQuestions = answered(answers)
	applySummary(next, sum)
	next.UpdatedAt = now
	return next, nil
}

// StartFollowUp partial -> partial_open，仅在分界之后
func (e *Engine) StartFollowUp(entry *Entry, text string, questions QuestionSet, tags []string, now time.Time) (*Entry, error) {
	if err := e.Check(entry, EventStartFollowUp, now); err != nil {
		return nil, err
	}
	next := entry.Clone()
	next.Status = StatusPartialOpen
	next.EveningText = append(next.EveningText, TextStamp{Text: text, Timestamp: now})
	next.EveningQuestions = questions
	next.Tags = mergeTags(next.Tags, tags)
	next.UpdatedAt = now
	return next, nil
}

// CompleteFollowUp partial_open -> closed，记录一条 original 情绪历史
func (e *Engine) CompleteFollowUp(entry *Entry, answers map[string]string, sum Summary, now time.Time) (*Entry, error) {
	if err := e.Check(entry, EventCompleteFollowUp, now); err != nil {
		return nil, err
	}
	if err := CheckAnswers(entry.EveningQuestions, answers); err != nil {
		return nil, err
	}
	next := entry.Clone()
	next.Status = StatusClosed
	next.EveningQuestions = answered(answers)
	applySummary(next, sum)
	next.SentimentHistory = append(next.SentimentHistory, SentimentPoint{
		Score: next.Sentiment, Timestamp: now, Version: VersionOriginal,
	})
	next.UpdatedAt = now
	return next, nil
}

// Reframe closed -> closed，每次追加一条 reframed 历史
func (e *Engine) Reframe(entry *Entry, text string, sum Summary, now time.Time) (*Entry, error) {
	if err := e.Check(entry, EventReframe, now); err != nil {
		return nil, err
	}
	next := entry.Clone()
	next.EveningText = append(next.EveningText, TextStamp{Text: text, Timestamp: now})
	applySummary(next, sum)
	next.SentimentHistory = append(next.SentimentHistory, SentimentPoint{
		Score: next.Sentiment, Timestamp: now, Version: VersionReframed,
	})
	next.UpdatedAt = now
	return next, nil
}

// AutoClose 清理路径，已关闭的条目原样返回
func (e *Engine) AutoClose(entry *Entry, now time.Time) *Entry {
	next := entry.Clone()
	if next.Status == StatusClosed {
		return next
	}
	next.Status = StatusClosed
	next.UpdatedAt = now
	return next
}

func answered(answers map[string]string) AnsweredQuestions {
	out := make(AnsweredQuestions, len(answers))
	for q, a := range answers {
		out[q] = a
	}
	return out
}

func applySummary(e *Entry, sum Summary) {
	if sum.Scored {
		sum.Positivity = ClampSentiment(sum.Positivity)
		e.Sentiment = sum.Positivity
	} else {
		sum.Positivity = e.Sentiment
	}
	e.Summary = sum
	e.Tags = mergeTags(e.Tags, sum.Tags)
	if len(sum.NegativePhrases) > 0 {
		e.NegativePhrases = append([]NegativePhrase(nil), sum.NegativePhrases...)
	}
}

func mergeTags(have, add []string) []string {
	seen := make(map[string]bool, len(have)+len(add))
	out := make([]string, 0, len(have)+len(add))
	for _, t := range append(append([]string(nil), have...), add...) {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
