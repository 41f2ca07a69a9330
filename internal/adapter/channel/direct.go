package channel

import (
	"context"
	"fmt"

	"github.com/rledge21/shardmart/internal/core/domain"
	"github.com/rledge21/shardmart/internal/port"
)

// Direct hands each event to the applier synchronously and inline. It is
// the minimal conforming channel: a failed apply surfaces to the publisher
// and the event is dropped.
type Direct struct {
	applier port.EventApplier
}

func NewDirect(applier port.EventApplier) *Direct {
	return &Direct{applier: applier}
}

func (d *Direct) Publish(ctx context.Context, ev domain.SyncEvent) error {
	if err := d.applier.Apply(ctx, ev); err != nil {
		return fmt.Errorf("inline sync apply: %w", err)
	}
	return nil
}
