/*Package events provides a kafka implementation of core.Notifier.

Backend change notifications are published to a single topic, keyed by
resource and operation, so that downstream consumers (dashboards,
notification fan-out) can follow alert activity without polling the API.
*/
package events

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/VithorDosSantos/reflora/core"
	"github.com/VithorDosSantos/reflora/core/logger"
)

const publishTimeout = 10 * time.Second

// KafkaNotifier publishes backend notifications to a kafka topic
type KafkaNotifier struct {
	writer *kafka.Writer
}

// NewKafkaNotifier creates a notifier writing to the given brokers and topic
func NewKafkaNotifier(brokers []string, topic string) *KafkaNotifier {
	return &KafkaNotifier{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
		},
	}
}

// Notify implements core.Notifier. Publish failures are logged and
// swallowed; a notification must never fail the store operation it
// follows.
func (n *KafkaNotifier) Notify(resource string, operation core.Operation, payload []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	err := n.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(resource + "/" + string(operation)),
		Value: payload,
	})
	if err != nil {
		logger.Default().WithError(err).Errorf("cannot publish %s notification for %s", operation, resource)
	}
}

// Close flushes and closes the underlying kafka writer
func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}
