package producer

import (
	"context"

	"go-silpa/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
)

// publishEvent mengirim satu baris outbox sebagai pesan Kafka. Key memakai
// aggregate id supaya event satu pengajuan selalu jatuh di partisi yang sama
// dan urutannya terjaga.
func publishEvent(ctx context.Context, writer *kafkago.Writer, event kafka.OutboxEvent) error {
	headers := []kafkago.Header{
		{Key: "event_type", Value: []byte(event.EventType)},
		{Key: "aggregate_type", Value: []byte(event.AggregateType)},
	}
	if event.RequestID != "" {
		headers = append(headers, kafkago.Header{
			Key:   "request_id",
			Value: []byte(event.RequestID),
		})
	}

	return writer.WriteMessages(ctx, kafkago.Message{
		Topic:   event.Topic,
		Key:     []byte(event.AggregateID),
		Value:   event.Payload,
		Headers: headers,
	})
}
