package pgstore

import (
	"testing"
	"time"

	"daybook-backend/internal/journal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFindMany(t *testing.T) {
	from := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	query, args := buildFindMany(journal.Filter{
		AuthorID:    "u1",
		CreatedFrom: from,
		CreatedTo:   from.AddDate(0, 0, 7),
		Statuses:    []journal.Status{journal.StatusOpen, journal.StatusPartial},
	}, journal.OrderBy{Field: journal.OrderByUpdatedAt, Desc: true})

	assert.Contains(t, query, "WHERE author_id = $1 AND created_at >= $2 AND created_at < $3 AND status = ANY($4)")
	assert.Contains(t, query, "ORDER BY updated_at DESC, id DESC")
	require.Len(t, args, 4)
	assert.Equal(t, "u1", args[0])
	assert.Equal(t, []string{"open", "partial"}, args[3])
}

func TestBuildFindManyNoFilter(t *testing.T) {
	query, args := buildFindMany(journal.Filter{}, journal.OrderBy{})
	assert.NotContains(t, query, "WHERE")
	assert.Contains(t, query, "ORDER BY created_at ASC")
	assert.Empty(t, args)
}

func TestRowArgs(t *testing.T) {
	now := time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC)
	args, err := rowArgs(&journal.Entry{
		ID:          "e1",
		AuthorID:    "u1",
		Status:      journal.StatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
		MorningText: []journal.TextStamp{{Text: "hi", Timestamp: now}},
	})
	require.NoError(t, err)
	require.Len(t, args, 14)
	assert.Equal(t, "open", args[2])
	assert.JSONEq(t, `[{"text":"hi","timestamp":"2024-06-03T08:00:00Z"}]`, string(args[5].([]byte)))
	assert.Nil(t, args[6])
	assert.Nil(t, args[12])
}
