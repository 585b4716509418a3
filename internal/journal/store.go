package journal

import (
	"context"
	"time"
)

// Filter 查询条件，零值字段不参与过滤。CreatedTo 为开区间。
type Filter struct {
	AuthorID    string
	CreatedFrom time.Time
	CreatedTo   time.Time
	Statuses    []Status
}

// Match 供内存实现和测试使用
func (f Filter) Match(e *Entry) bool {
	if f.AuthorID != "" && e.AuthorID != f.AuthorID {
		return false
	}
	if !f.CreatedFrom.IsZero() && e.CreatedAt.Before(f.CreatedFrom) {
		return false
	}
	if !f.CreatedTo.IsZero() && !e.CreatedAt.Before(f.CreatedTo) {
		return false
	}
	if len(f.Statuses) > 0 {
		for _, s := range f.Statuses {
			if e.Status == s {
				return true
			}
		}
		return false
	}
	return true
}

type OrderField string

const (
	OrderByCreatedAt OrderField = "created_at"
	OrderByUpdatedAt OrderField = "updated_at"
)

type OrderBy struct {
	Field OrderField
	Desc  bool
}

// Patch 部分更新，nil 字段保持不变
type Patch struct {
	Status           *Status
	UpdatedAt        *time.Time
	MorningText      []TextStamp
	EveningText      []TextStamp
	MorningQuestions QuestionSet
	EveningQuestions QuestionSet
	Summary          *Summary
	Sentiment        *float64
	SentimentHistory []SentimentPoint
	Tags             []string
	NegativePhrases  []NegativePhrase
}

// PatchFrom 转移结果的全部可变字段
func PatchFrom(e *Entry) Patch {
	status := e.Status
	updated := e.UpdatedAt
	sum := e.Summary
	sentiment := e.Sentiment
	return Patch{
		Status:           &status,
		UpdatedAt:        &updated,
		MorningText:      e.MorningText,
		EveningText:      e.EveningText,
		MorningQuestions: e.MorningQuestions,
		EveningQuestions: e.EveningQuestions,
		Summary:          &sum,
		Sentiment:        &sentiment,
		SentimentHistory: e.SentimentHistory,
		Tags:             e.Tags,
		NegativePhrases:  e.NegativePhrases,
	}
}

// Apply 把 patch 写到 e 上
func (p Patch) Apply(e *Entry) {
	if p.Status != nil {
		e.Status = *p.Status
	}
	if p.UpdatedAt != nil {
		e.UpdatedAt = *p.UpdatedAt
	}
	if p.MorningText != nil {
		e.MorningText = append([]TextStamp(nil), p.MorningText...)
	}
	if p.EveningText != nil {
		e.EveningText = append([]TextStamp(nil), p.EveningText...)
	}
	if p.MorningQuestions != nil {
		e.MorningQuestions = cloneQuestionSet(p.MorningQuestions)
	}
	if p.EveningQuestions != nil {
		e.EveningQuestions = cloneQuestionSet(p.EveningQuestions)
	}
	if p.Summary != nil {
		e.Summary = *p.Summary
	}
	if p.Sentiment != nil {
		e.Sentiment = *p.Sentiment
	}
	if p.SentimentHistory != nil {
		e.SentimentHistory = append([]SentimentPoint(nil), p.SentimentHistory...)
	}
	if p.Tags != nil {
		e.Tags = append([]string(nil), p.Tags...)
	}
	if p.NegativePhrases != nil {
		e.NegativePhrases = append([]NegativePhrase(nil), p.NegativePhrases...)
	}
}

// EntryStore 条目存储。驱动错误包装为 StoreError，找不到返回 ErrNotFound。
type EntryStore interface {
	Create(ctx context.Context, e *Entry) error
	FindByID(ctx context.Context, id string) (*Entry, error)
	FindMany(ctx context.Context, f Filter, order OrderBy) ([]*Entry, error)
	Update(ctx context.Context, id string, p Patch) error
	Delete(ctx context.Context, id string) error
}

// UserStore 用户存储
type UserStore interface {
	FindUser(ctx context.Context, id string) (*User, error)
	UpsertUser(ctx context.Context, u *User) error
}
