package db

import (
	"encoding/json"
	"fmt"
	"strings"

	"daybook-backend/internal/journal"
)

// ToDomain 行 -> 领域对象，问题集合在这里一次性解析
func ToDomain(row *Entry) (*journal.Entry, error) {
	morningQs, err := journal.DecodeQuestionSet([]byte(row.UserResponse))
	if err != nil {
		return nil, fmt.Errorf("entry %s user_response: %w", row.ID, err)
	}
	eveningQs, err := journal.DecodeQuestionSet([]byte(row.UserResponse2))
	if err != nil {
		return nil, fmt.Errorf("entry %s user_response2: %w", row.ID, err)
	}
	return &journal.Entry{
		ID:               row.ID,
		AuthorID:         row.AuthorID,
		Status:           journal.Status(row.Status),
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
		MorningText:      row.JournalEntry,
		EveningText:      row.JournalEntry2,
		MorningQuestions: morningQs,
		EveningQuestions: eveningQs,
		Summary:          DecodeSummary(row.Summary),
		Sentiment:        row.Sentiment,
		SentimentHistory: row.SentimentHistory,
		Tags:             row.Tags,
		NegativePhrases:  row.NegativePhrases,
	}, nil
}

// FromDomain 领域对象 -> 行
func FromDomain(e *journal.Entry) (*Entry, error) {
	morning, err := journal.EncodeQuestionSet(e.MorningQuestions)
	if err != nil {
		return nil, err
	}
	evening, err := journal.EncodeQuestionSet(e.EveningQuestions)
	if err != nil {
		return nil, err
	}
	summary, err := EncodeSummary(e.Summary)
	if err != nil {
		return nil, err
	}
	return &Entry{
		ID:               e.ID,
		AuthorID:         e.AuthorID,
		Status:           string(e.Status),
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
		JournalEntry:     e.MorningText,
		JournalEntry2:    e.EveningText,
		UserResponse:     string(morning),
		UserResponse2:    string(evening),
		Summary:          summary,
		Sentiment:        e.Sentiment,
		SentimentHistory: e.SentimentHistory,
		Tags:             e.Tags,
		NegativePhrases:  e.NegativePhrases,
	}, nil
}

// DecodeSummary 非 JSON 的历史数据当作纯文本总结
func DecodeSummary(raw string) journal.Summary {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return journal.Summary{}
	}
	var s journal.Summary
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return journal.Summary{Summary: raw}
	}
	return s
}

func EncodeSummary(s journal.Summary) (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encode summary: %w", err)
	}
	return string(b), nil
}
