package app

import (
	"context"
	"log/slog"

	"school-service/internal/kafka"
	"school-service/internal/messaging"
	"school-service/internal/provision"
)

// eventPublisher fans provisioning events out to whichever brokers were
// configured. Delivery problems are logged and swallowed: the provisioning
// result is already final by the time events go out.
type eventPublisher struct {
	nats   *messaging.Producer
	kafka  *kafka.Producer
	logger *slog.Logger
}

func (p *eventPublisher) ProvisioningCompleted(ctx context.Context, event provision.Event) {
	if p.nats != nil {
		if err := p.nats.SendMessage(ctx, event); err != nil {
			p.logger.WarnContext(ctx, "failed to publish provisioning event to NATS", "error", err)
		}
	}
	if p.kafka != nil {
		if err := p.kafka.SendMessage(ctx, event.SchoolCode, event); err != nil {
			p.logger.WarnContext(ctx, "failed to publish provisioning event to kafka", "error", err)
		}
	}
}
