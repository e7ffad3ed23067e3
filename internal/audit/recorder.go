package audit

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/project-tracker/internal"
	"github.com/frahmantamala/project-tracker/internal/core/events"
)

// BusRecorder publishes audit entries onto the event bus. Persistence happens
// in a subscriber, off the request path; publishing never returns an error to
// the caller.
type BusRecorder struct {
	bus    *events.EventBus
	logger *slog.Logger
}

func NewBusRecorder(bus *events.EventBus, logger *slog.Logger) *BusRecorder {
	return &BusRecorder{
		bus:    bus,
		logger: logger,
	}
}

func (r *BusRecorder) Record(ctx context.Context, entry Entry) {
	meta := internal.RequestMetaFromContext(ctx)

	event := events.NewAuditRecordedEvent(
		entry.UserID,
		entry.Action,
		entry.Resource,
		entry.ResourceID,
		entry.ProjectID,
		entry.Details,
		entry.Success,
		entry.ErrorMessage,
		meta.IPAddress,
		meta.UserAgent,
	)

	// Detach from the request context so a finished request does not cancel
	// the persistence handler.
	if err := r.bus.Publish(context.WithoutCancel(ctx), event); err != nil {
		r.logger.Error("failed to publish audit event", "error", err, "action", entry.Action, "resource", entry.Resource)
	}
}
