package port

import (
	"context"

	"github.com/rledge21/shardmart/internal/core/domain"
)

// SyncChannel hands synchronization events to the central sync worker at
// least once. An implementation may deliver synchronously and inline or
// buffer, batch and retry; publishers must not depend on which.
type SyncChannel interface {
	Publish(ctx context.Context, ev domain.SyncEvent) error
}

// EventApplier consumes synchronization events. Apply must be safe to call
// more than once with the same event, in any order relative to other
// events.
type EventApplier interface {
	Apply(ctx context.Context, ev domain.SyncEvent) error
}
