package logic

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// 测试事件结构
func TestNewEvent(t *testing.T) {
	at := day(3, 17, 0)
	ev := NewEvent(EventReminderFollowUp, "u1", "e1", at)

	_, err := uuid.Parse(ev.ID)
	assert.NoError(t, err)
	assert.Equal(t, EventReminderFollowUp, ev.Type)
	assert.Equal(t, "u1", ev.UserID)
	assert.Equal(t, "e1", ev.EntryID)
	assert.Equal(t, at, ev.At)
}

// 测试 kafka 消息编码
func TestEncodeEvents(t *testing.T) {
	sentiment := 72.5
	ev := NewEvent(EventEntryClosed, "u1", "e1", day(3, 20, 0))
	ev.Status = "closed"
	ev.Sentiment = &sentiment

	msgs, err := encodeEvents([]Event{ev, NewEvent(EventEntryStarted, "u2", "e2", day(3, 8, 0))})
	require.NoError(t, err)
	require.Len(t, msgs, 2)

	assert.Equal(t, []byte("u1"), msgs[0].Key)
	assert.Equal(t, day(3, 20, 0), msgs[0].Time)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msgs[0].Value, &decoded))
	assert.Equal(t, "entry.closed", decoded["type"])
	assert.Equal(t, "closed", decoded["status"])
	assert.Equal(t, 72.5, decoded["sentiment"])

	require.NoError(t, json.Unmarshal(msgs[1].Value, &decoded))
	assert.Equal(t, []byte("u2"), msgs[1].Key)
	assert.NotContains(t, string(msgs[1].Value), "sentiment")
}

// 测试未配置 kafka
func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), NewEvent(EventEntryStarted, "u1", "e1", time.Now())))
	assert.NoError(t, p.Close())
}

// 测试 kafka 生产者配置
func TestNewKafkaPublisher(t *testing.T) {
	p := NewKafkaPublisher([]string{"127.0.0.1:9092"}, "daybook.events", zap.NewNop())
	assert.Equal(t, "daybook.events", p.writer.Topic)
	assert.True(t, p.writer.Async)
	assert.NoError(t, p.Close())
}
