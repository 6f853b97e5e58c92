package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/ngoctranle/mediadex/internal/application/service"
	"github.com/ngoctranle/mediadex/internal/config"
)

const (
	TopicSearchEvents = "search.events"
)

type KafkaProducerClient struct {
	SearchEventsWriter *kafka.Writer
}

func NewKafkaProducerClient(cfg config.Config) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	// writer 'search.events'
	searchWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicSearchEvents,
		Balancer: &kafka.LeastBytes{},
	}

	return &KafkaProducerClient{
		SearchEventsWriter: searchWriter,
	}, nil
}

func (c *KafkaProducerClient) PublishSearch(ctx context.Context, evt service.SearchEvent) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal search event: %w", err)
	}

	return c.SearchEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(evt.Term),
		Value: payload,
	})
}

func (c *KafkaProducerClient) Close() {
	if c.SearchEventsWriter != nil {
		c.SearchEventsWriter.Close()
	}
}
