package kafka

import (
	"context"
	"encoding/json"

	"github.com/IBM/sarama"

	"gitecal/internal/app/policies"
)

// Producer publishes calendar change events to the calendar.updated topic.
type Producer struct {
	sync  sarama.SyncProducer
	topic string
}

func NewProducer(brokers []string, topic string, cfg *sarama.Config) (*Producer, error) {
	if cfg == nil {
		cfg = sarama.NewConfig()
	}
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Idempotent = true
	cfg.Producer.Return.Successes = true
	cfg.Net.MaxOpenRequests = 1
	sync, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}
	return &Producer{sync: sync, topic: topic}, nil
}

func (p *Producer) PublishCalendarUpdated(ctx context.Context, event policies.CalendarEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.ID),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("kind"), Value: []byte(event.Kind)},
		},
	}
	_, _, err = p.sync.SendMessage(msg)
	return err
}

func (p *Producer) Close() error {
	if p.sync == nil {
		return nil
	}
	return p.sync.Close()
}

var _ policies.Publisher = (*Producer)(nil)
