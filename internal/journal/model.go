package journal

import (
	"strings"
	"time"
)

// Status 日记条目存储状态
type Status string

const (
	StatusOpen        Status = "open"
	StatusPartial     Status = "partial"
	StatusPartialOpen Status = "partial_open"
	StatusClosed      Status = "closed"
)

// Valid 是否为已知状态
func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusPartial, StatusPartialOpen, StatusClosed:
		return true
	}
	return false
}

// 情绪历史版本
const (
	VersionOriginal = "original"
	VersionReframed = "reframed"
)

// PlaceholderTitle 草稿占位标题，清理时视为空标题
const PlaceholderTitle = "Started Draft"

// TextStamp 一段文字及其记录时间
type TextStamp struct {
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Question AI 生成的问题，InputType 由前端决定输入控件
type Question struct {
	Question  string `json:"question"`
	InputType int    `json:"inputType"`
}

// NegativePhrase 负面表达及建议替换
type NegativePhrase struct {
	Negative  string `json:"negative"`
	Suggested string `json:"suggested"`
}

// Summary AI 总结
type Summary struct {
	Title           string           `json:"title"`
	Summary         string           `json:"summary"`
	Tags            []string         `json:"tags"`
	NegativePhrases []NegativePhrase `json:"negativePhrases"`
	Positivity      float64          `json:"positivity"`
	// Scored 为 false 时 Positivity 无效（纯文本或兜底总结）
	Scored bool `json:"-"`
}

// SentimentPoint 情绪分数历史点
type SentimentPoint struct {
	Score     float64   `json:"score"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// Entry 某用户某一天的日记
type Entry struct {
	ID               string
	AuthorID         string
	Status           Status
	CreatedAt        time.Time
	UpdatedAt        time.Time
	MorningText      []TextStamp
	EveningText      []TextStamp
	MorningQuestions QuestionSet
	EveningQuestions QuestionSet
	Summary          Summary
	Sentiment        float64
	SentimentHistory []SentimentPoint
	Tags             []string
	NegativePhrases  []NegativePhrase
}

// User 用户，Preference 为写入提示词的语气偏好
type User struct {
	ID         string
	Email      string
	Preference string
}

// MorningString 早间文字拼接
func (e *Entry) MorningString() string {
	return joinTexts(e.MorningText)
}

// EveningString 晚间文字拼接
func (e *Entry) EveningString() string {
	return joinTexts(e.EveningText)
}

// HasText 是否有任何非空文字
func (e *Entry) HasText() bool {
	return strings.TrimSpace(e.MorningString()) != "" || strings.TrimSpace(e.EveningString()) != ""
}

func joinTexts(ts []TextStamp) string {
	parts := make([]string, 0, len(ts))
	for _, t := range ts {
		if s := strings.TrimSpace(t.Text); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n")
}

// Clone 深拷贝，转移函数只在副本上修改
func (e *Entry) Clone() *Entry {
	if e == nil {
		return nil
	}
	c := *e
	c.MorningText = append([]TextStamp(nil), e.MorningText...)
	c.EveningText = append([]TextStamp(nil), e.EveningText...)
	c.MorningQuestions = cloneQuestionSet(e.MorningQuestions)
	c.EveningQuestions = cloneQuestionSet(e.EveningQuestions)
	c.Summary.Tags = append([]string(nil), e.Summary.Tags...)
	c.Summary.NegativePhrases = append([]NegativePhrase(nil), e.Summary.NegativePhrases...)
	c.SentimentHistory = append([]SentimentPoint(nil), e.SentimentHistory...)
	c.Tags = append([]string(nil), e.Tags...)
	c.NegativePhrases = append([]NegativePhrase(nil), e.NegativePhrases...)
	return &c
}
