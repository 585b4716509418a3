package logic

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// 事件类型
const (
	EventEntryStarted     = "entry.started"
	EventEntryPlanned     = "entry.planned"
	EventEntryFollowUp    = "entry.follow_up_started"
	EventEntryClosed      = "entry.closed"
	EventEntryReframed    = "entry.reframed"
	EventEntryAutoClosed  = "entry.auto_closed"
	EventEntryDeleted     = "entry.deleted"
	EventReminderFollowUp = "reminder.follow_up"
)

// Event 生命周期事件，JSON 编码后写入 kafka
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	UserID    string    `json:"user_id"`
	EntryID   string    `json:"entry_id"`
	Status    string    `json:"status,omitempty"`
	Sentiment *float64  `json:"sentiment,omitempty"`
	At        time.Time `json:"at"`
}

func NewEvent(typ, userID, entryID string, at time.Time) Event {
	return Event{ID: uuid.New().String(), Type: typ, UserID: userID, EntryID: entryID, At: at}
}

// Publisher 事件发布
type Publisher interface {
	Publish(ctx context.Context, events ...Event) error
	Close() error
}

// KafkaPublisher 以用户 ID 作为消息 key，同一用户的事件落在同一分区
type KafkaPublisher struct {
	writer *kafka.Writer
	logger *zap.Logger
}

func NewKafkaPublisher(brokers []string, topic string, logger *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			BatchSize:    10,
			BatchTimeout: 10 * time.Millisecond,
			Async:        true,
		},
		logger: logger.Named("kafka"),
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, events ...Event) error {
	msgs, err := encodeEvents(events)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("failed to publish events: %w", err)
	}
	for _, ev := range events {
		p.logger.Debug("published event", zap.String("type", ev.Type), zap.String("entry_id", ev.EntryID))
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}

func encodeEvents(events []Event) ([]kafka.Message, error) {
	msgs := make([]kafka.Message, 0, len(events))
	for _, ev := range events {
		data, err := json.Marshal(ev)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal event %s: %w", ev.Type, err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(ev.UserID),
			Value: data,
			Time:  ev.At,
		})
	}
	return msgs, nil
}

// NopPublisher 未配置 kafka 时丢弃事件
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ...Event) error { return nil }
func (NopPublisher) Close() error                              { return nil }
