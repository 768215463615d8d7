package notification

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hms-backend/hms-api/internal/model"
	"github.com/hms-backend/hms-api/pkg/messaging"
	"github.com/hms-backend/hms-api/pkg/metrics"
)

// Channel is the broker channel the email worker subscribes to.
const Channel = "notifications:email"

const publishTimeout = 5 * time.Second

// Service publishes notifications for asynchronous delivery. Send is
// fire-and-forget: delivery failures never propagate to the caller.
type Service interface {
	Send(n *model.Notification)
}

type brokerService struct {
	broker  messaging.Broker
	metrics *metrics.Metrics
}

func NewService(broker messaging.Broker, m *metrics.Metrics) Service {
	return &brokerService{broker: broker, metrics: m}
}

func (s *brokerService) Send(n *model.Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := s.broker.Publish(ctx, Channel, n); err != nil {
		log.Error().Err(err).
			Str("to", n.To).
			Str("subject", n.Subject).
			Msg("failed to publish notification")
		s.metrics.NotificationsFailed.Inc()
		return
	}

	s.metrics.NotificationsPublished.Inc()
}
