package db

import (
	"time"

	"daybook-backend/internal/journal"
)

type User struct {
	ID         string    `gorm:"primaryKey;size:64" json:"id"`
	Email      string    `gorm:"size:128;index" json:"email"`
	Preference string    `gorm:"type:text" json:"preference"` // 写入提示词的语气偏好
	CreatedAt  time.Time `json:"created_at"`
}

// Entry 日记表
// journal_entry / journal_entry2: 早间、晚间文字，JSON 数组
// user_response / user_response2: 问题列表（数组）或答案（对象），原样 JSON 存储
// summary: AI 总结 JSON，历史数据可能是纯文本
// 时间由业务层传入，关闭 gorm 自动填充
type Entry struct {
	ID               string                   `gorm:"primaryKey;size:36" json:"id"`
	AuthorID         string                   `gorm:"size:64;index:idx_author_created,priority:1" json:"author_id"`
	Status           string                   `gorm:"size:16;index" json:"status"`
	CreatedAt        time.Time                `gorm:"autoCreateTime:false;index:idx_author_created,priority:2" json:"created_at"`
	UpdatedAt        time.Time                `gorm:"autoUpdateTime:false" json:"updated_at"`
	JournalEntry     []journal.TextStamp      `gorm:"serializer:json;type:text" json:"journal_entry"`
	JournalEntry2    []journal.TextStamp      `gorm:"serializer:json;type:text" json:"journal_entry2"`
	UserResponse     string                   `gorm:"type:text" json:"user_response"`
	UserResponse2    string                   `gorm:"type:text" json:"user_response2"`
	Summary          string                   `gorm:"type:text" json:"summary"`
	Sentiment        float64                  `json:"sentiment"`
	SentimentHistory []journal.SentimentPoint `gorm:"serializer:json;type:text" json:"sentiment_history"`
	Tags             []string                 `gorm:"serializer:json;type:text" json:"tags"`
	NegativePhrases  []journal.NegativePhrase `gorm:"serializer:json;type:text" json:"negative_phrases"`
}
