package kafkax

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
)

type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(brokers []string, group, topic string) *Consumer {
	return &Consumer{reader: kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		GroupID:  group,
		Topic:    topic,
		MinBytes: 1,
		MaxBytes: 10e6,
	})}
}

func (c *Consumer) Fetch(ctx context.Context) (kafka.Message, error) {
	return c.reader.FetchMessage(ctx)
}

func (c *Consumer) Commit(ctx context.Context, m kafka.Message) error {
	return c.reader.CommitMessages(ctx, m)
}

func (c *Consumer) Close() error { return c.reader.Close() }

// ActionEvent is the message published to the listing-actions topic for
// every write against a listing.
type ActionEvent struct {
	Type      string `json:"type"`
	ListingID string `json:"listing_id"`
	Actor     string `json:"actor"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
	Comment   string `json:"comment,omitempty"`
}

func ParseActionEvent(b []byte) (ActionEvent, error) {
	var e ActionEvent
	err := json.Unmarshal(b, &e)
	return e, err
}
