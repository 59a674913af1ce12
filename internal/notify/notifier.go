// Package notify publishes accepted submissions to the messaging topic.
package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"form-relay/internal/common/logger"
	"form-relay/internal/common/metrics"
	"form-relay/internal/form"
)

var ErrTopicNotConfigured = errors.New("destination topic is not configured")

// Publisher delivers one message to a topic and returns the sink's message ID.
type Publisher interface {
	Publish(ctx context.Context, topic, subject, body string) (string, error)
}

type Notifier struct {
	publisher Publisher
	logger    logger.Logger
}

func NewNotifier(publisher Publisher, log logger.Logger) *Notifier {
	return &Notifier{
		publisher: publisher,
		logger:    log.WithFields(map[string]interface{}{"component": "notify"}),
	}
}

// Send publishes n to topic exactly once.
func (n *Notifier) Send(ctx context.Context, formName, topic string, msg form.Notification) error {
	if topic == "" {
		return ErrTopicNotConfigured
	}

	start := time.Now()
	messageID, err := n.publisher.Publish(ctx, topic, msg.Subject, msg.Body)
	metrics.PublishDuration.WithLabelValues(formName).Observe(time.Since(start).Seconds())
	if err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}

	n.logger.Info("Notification published", map[string]interface{}{
		"form":      formName,
		"topic":     topic,
		"messageId": messageID,
	})
	return nil
}
