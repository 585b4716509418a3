package db

import (
	"testing"
	"time"

	"daybook-backend/internal/journal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// 测试数据库连接失败返回错误
func TestInitDBUnreachable(t *testing.T) {
	err := InitDB("daybook:daybook@tcp(127.0.0.1:1)/daybook?timeout=1s", zap.NewNop())
	assert.Error(t, err)
	assert.Nil(t, GetDB())
}

// 测试行与领域对象互转
func TestEntryRoundTrip(t *testing.T) {
	now := time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC)
	e := &journal.Entry{
		ID:               "0b7f7c2e-1111-4e59-9d57-5a3f5b1d0a01",
		AuthorID:         "u1",
		Status:           journal.StatusPartial,
		CreatedAt:        now,
		UpdatedAt:        now.Add(time.Hour),
		MorningText:      []journal.TextStamp{{Text: "gym then work", Timestamp: now}},
		MorningQuestions: journal.AnsweredQuestions{"Focus?": "deadline"},
		EveningQuestions: journal.PendingQuestions{{Question: "How did it go?", InputType: 1}},
		Summary:          journal.Summary{Title: "Busy", Summary: "Packed day", Positivity: 61},
		Sentiment:        61,
		Tags:             []string{"work"},
	}

	row, err := FromDomain(e)
	require.NoError(t, err)
	assert.Equal(t, "partial", row.Status)
	assert.JSONEq(t, `{"Focus?":"deadline"}`, row.UserResponse)
	assert.JSONEq(t, `[{"question":"How did it go?","inputType":1}]`, row.UserResponse2)

	back, err := ToDomain(row)
	require.NoError(t, err)
	assert.Equal(t, e, back)
}

// 测试历史纯文本总结
func TestDecodeSummaryPlainText(t *testing.T) {
	assert.Equal(t, journal.Summary{Summary: "Error summarizing entry."}, DecodeSummary("Error summarizing entry."))
	assert.Equal(t, journal.Summary{}, DecodeSummary("  "))
	assert.Equal(t, "T", DecodeSummary(`{"title":"T","positivity":10}`).Title)
}

// 测试损坏的问题字段
func TestToDomainRejectsBadQuestions(t *testing.T) {
	_, err := ToDomain(&Entry{ID: "x", UserResponse: `"oops"`})
	assert.Error(t, err)
}

// 测试用户模型
func TestUserModel(t *testing.T) {
	user := User{ID: "u1", Email: "a@example.com", Preference: "gentle", CreatedAt: time.Now()}
	assert.NotEmpty(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())
}
