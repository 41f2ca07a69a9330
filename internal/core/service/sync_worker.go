package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/rledge21/shardmart/internal/core/domain"
	"github.com/rledge21/shardmart/internal/port"
)

// SyncWorker applies synchronization events to the central store. Every
// write is an idempotent upsert: the channel may deliver the same event more
// than once and in any order, and the net central state must not differ from
// a single in-order delivery.
type SyncWorker struct {
	central port.CentralStore
	log     *logrus.Logger
}

func NewSyncWorker(central port.CentralStore, log *logrus.Logger) *SyncWorker {
	return &SyncWorker{central: central, log: log}
}

func (w *SyncWorker) Apply(ctx context.Context, ev domain.SyncEvent) error {
	switch ev.Kind {
	case domain.EventKindOrder:
		if ev.Order == nil {
			return fmt.Errorf("order sync event without payload")
		}
		if err := w.central.UpsertOrder(ctx, *ev.Order); err != nil {
			return fmt.Errorf("upsert central order %d: %w", ev.Order.OrderID, err)
		}
		w.log.WithFields(logrus.Fields{
			"order_id": ev.Order.OrderID,
			"region":   ev.Order.Region,
		}).Debug("central order synced")
		return nil

	case domain.EventKindProduct:
		if ev.Product == nil {
			return fmt.Errorf("product sync event without payload")
		}
		if err := w.central.UpsertProduct(ctx, *ev.Product); err != nil {
			return fmt.Errorf("upsert central product %d: %w", ev.Product.ID, err)
		}
		w.log.WithField("product_id", ev.Product.ID).Debug("central product synced")
		return nil

	default:
		return fmt.Errorf("unknown sync event kind %q", ev.Kind)
	}
}
