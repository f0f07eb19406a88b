package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/RominaTrazziSpindox/CIAMS-project/internal/events"
)

// auditedEvents lists every event type the audit trail records.
var auditedEvents = []events.EventType{
	events.EventAssetCreated,
	events.EventAssetUpdated,
	events.EventAssetMoved,
	events.EventAssetDeleted,
	events.EventLicenseInstalled,
	events.EventLicenseUninstalled,
}

// StartAuditWorker subscribes an audit-log handler for all inventory
// mutation events. Entries carry the acting subject taken from the request
// identity, never any credential or token material.
func StartAuditWorker(dispatcher events.Dispatcher, logger *zap.Logger) {
	if dispatcher == nil {
		return
	}

	auditLog := logger.Named("audit")
	handler := func(_ context.Context, event events.Event) error {
		auditLog.Info("inventory mutation",
			zap.String("event_id", event.ID),
			zap.String("type", string(event.Type)),
			zap.String("resource", event.Resource),
			zap.String("actor", event.Actor),
			zap.Time("at", event.Timestamp),
			zap.Any("payload", event.Payload),
		)
		return nil
	}

	for _, eventType := range auditedEvents {
		dispatcher.Subscribe(eventType, handler)
	}
}
