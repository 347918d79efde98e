package events

import (
	"context"

	"go.uber.org/zap"
)

// RegisterAuditLog subscribes a handler that writes every lifecycle
// event to the structured log, giving deployments an audit trail of who
// changed which ticket.
func RegisterAuditLog(dispatcher Dispatcher, logger *zap.Logger) {
	handler := func(ctx context.Context, event Event) error {
		logger.Info("ticket event",
			zap.String("event_id", event.ID),
			zap.String("type", string(event.Type)),
			zap.String("ticket_id", event.TicketID),
			zap.String("actor_id", event.Actor.CallerID),
			zap.String("actor_role", string(event.Actor.Role)),
			zap.Time("at", event.Timestamp),
			zap.Any("payload", event.Payload),
		)
		return nil
	}
	for _, eventType := range []EventType{
		EventTicketCreated,
		EventTicketStatusChanged,
		EventTicketAssigned,
		EventTicketCommented,
	} {
		dispatcher.Subscribe(eventType, handler)
	}
}
