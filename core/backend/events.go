package backend

import (
	"context"

	"github.com/goccy/go-json"

	"github.com/VithorDosSantos/reflora/core"
	"github.com/VithorDosSantos/reflora/core/logger"
)

// notify hands a change notification to the configured notifier, if any.
// Notifications follow a successful store operation and must never fail
// the request; an unmarshalable payload only produces a log line.
func (b *Backend) notify(ctx context.Context, resource string, operation core.Operation, payload interface{}) {
	if b.notifier == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Errorf("cannot marshal %s notification for %s", operation, resource)
		return
	}
	b.notifier.Notify(resource, operation, data)
}
