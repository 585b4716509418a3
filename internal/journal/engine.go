package journal

import (
	"fmt"
	"strings"
	"time"
)

// State 由状态和当前时间推导出的界面状态
type State string

const (
	StateNoEntryMorning          State = "NoEntryMorning"
	StateNoEntryEvening          State = "NoEntryEvening"
	StateDraftIncomplete         State = "DraftIncomplete"
	StateWaitingForEvening       State = "WaitingForEvening"
	StateReadyForEveningFollowUp State = "ReadyForEveningFollowUp"
	StateDraftIncompleteEvening  State = "DraftIncompleteEvening"
	StateClosed                  State = "Closed"
)

// Action 每个状态对应唯一的用户动作
type Action string

const (
	ActionStartDay       Action = "start_day"
	ActionResumeMorning  Action = "resume_morning"
	ActionWait           Action = "wait"
	ActionStartFollowUp  Action = "start_follow_up"
	ActionResumeFollowUp Action = "resume_follow_up"
	ActionReview         Action = "review"
)

const (
	DefaultCutoffHour = 17
	DefaultStaleAfter = 24 * time.Hour
	WrapUpMessage     = "Let's Wrap Up"
)

// Engine 日记生命周期规则。所有判断都显式传入 now，不读全局时钟。
type Engine struct {
	CutoffHour int
	Location   *time.Location
	StaleAfter time.Duration
}

func NewEngine(cutoffHour int, loc *time.Location, staleAfter time.Duration) (*Engine, error) {
	if cutoffHour < 0 || cutoffHour > 24 {
		return nil, fmt.Errorf("cutoff hour must be within 0..24, got %d", cutoffHour)
	}
	if loc == nil {
		loc = time.Local
	}
	if staleAfter <= 0 {
		staleAfter = DefaultStaleAfter
	}
	return &Engine{CutoffHour: cutoffHour, Location: loc, StaleAfter: staleAfter}, nil
}

func (e *Engine) loc() *time.Location {
	if e.Location == nil {
		return time.Local
	}
	return e.Location
}

// DayBounds now 所在自然日 [start, end)
func (e *Engine) DayBounds(now time.Time) (time.Time, time.Time) {
	t := now.In(e.loc())
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, e.loc())
	return start, start.AddDate(0, 0, 1)
}

// Cutoff 当天晚间分界时刻，按本地钟点计算，夏令时切换日也是 CutoffHour 点
func (e *Engine) Cutoff(now time.Time) time.Time {
	t := now.In(e.loc())
	return time.Date(t.Year(), t.Month(), t.Day(), e.CutoffHour, 0, 0, 0, e.loc())
}

func (e *Engine) AfterCutoff(now time.Time) bool {
	return !now.Before(e.Cutoff(now))
}

// TimeLeft 距离分界的时长，已过则为非正数
func (e *Engine) TimeLeft(now time.Time) time.Duration {
	return e.Cutoff(now).Sub(now)
}

// SameDay t 与 now 是否在同一本地自然日
func (e *Engine) SameDay(t, now time.Time) bool {
	start, end := e.DayBounds(now)
	return !t.Before(start) && t.Before(end)
}

// PickToday 选出今天的条目：创建于今天，多条时取 UpdatedAt 最新的
func (e *Engine) PickToday(entries []*Entry, now time.Time) *Entry {
	var best *Entry
	for _, en := range entries {
		if en == nil || !e.SameDay(en.CreatedAt, now) {
			continue
		}
		if best == nil || en.UpdatedAt.After(best.UpdatedAt) {
			best = en
		}
	}
	return best
}

// State entry 为今天的条目，可以为 nil
func (e *Engine) State(entry *Entry, now time.Time) State {
	after := e.AfterCutoff(now)
	if entry == nil {
		if after {
			return StateNoEntryEvening
		}
		return StateNoEntryMorning
	}
	switch entry.Status {
	case StatusClosed:
		return StateClosed
	case StatusPartial:
		if after {
			return StateReadyForEveningFollowUp
		}
		return StateWaitingForEvening
	case StatusPartialOpen:
		if after {
			return StateDraftIncompleteEvening
		}
		return StateDraftIncomplete
	default:
		// open：过了分界早间计划仍未完成，视为草稿
		if after || HasPending(entry.MorningQuestions) {
			return StateDraftIncomplete
		}
		return StateWaitingForEvening
	}
}

// Action 状态对应的动作
func (s State) Action() Action {
	switch s {
	case StateNoEntryMorning, StateNoEntryEvening:
		return ActionStartDay
	case StateDraftIncomplete:
		return ActionResumeMorning
	case StateWaitingForEvening:
		return ActionWait
	case StateReadyForEveningFollowUp:
		return ActionStartFollowUp
	case StateDraftIncompleteEvening:
		return ActionResumeFollowUp
	}
	return ActionReview
}

// NeedsAutoClose 未关闭且 UpdatedAt 超过 StaleAfter
func (e *Engine) NeedsAutoClose(entry *Entry, now time.Time) bool {
	if entry == nil || entry.Status == StatusClosed {
		return false
	}
	stale := e.StaleAfter
	if stale <= 0 {
		stale = DefaultStaleAfter
	}
	return now.Sub(entry.UpdatedAt) > stale
}

// IsEmptyClosed 已关闭、无文字、标题为空或占位
func IsEmptyClosed(entry *Entry) bool {
	if entry == nil || entry.Status != StatusClosed || entry.HasText() {
		return false
	}
	title := strings.TrimSpace(entry.Summary.Title)
	return title == "" || title == PlaceholderTitle
}

// FormatCountdown 形如 "3h 4m 5s"，到点后返回 WrapUpMessage
func FormatCountdown(d time.Duration) string {
	if d <= 0 {
		return WrapUpMessage
	}
	secs := int64(d / time.Second)
	return fmt.Sprintf("%dh %dm %ds", secs/3600, secs%3600/60, secs%60)
}
