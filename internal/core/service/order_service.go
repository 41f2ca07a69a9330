package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/rledge21/shardmart/internal/core/domain"
	"github.com/rledge21/shardmart/internal/port"
)

var (
	ErrUnknownRegion     = errors.New("unknown region")
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// OrderService coordinates order placement across the regional store, the
// audit log and the central synchronization channel.
type OrderService struct {
	regions map[domain.Region]port.RegionalStore
	audit   port.AuditLog
	channel port.SyncChannel
	log     *logrus.Logger
}

func NewOrderService(regions map[domain.Region]port.RegionalStore, audit port.AuditLog, channel port.SyncChannel, log *logrus.Logger) *OrderService {
	return &OrderService{regions: regions, audit: audit, channel: channel, log: log}
}

// PlaceOrder reserves stock and records the order within one regional
// transaction, appends the audit document, then hands the committed order to
// the sync channel. The regional writes and the audit append commit or fail
// together: an audit failure before commit rolls everything back. A failed
// central publish never fails an already committed order; the central store
// is allowed to be transiently stale.
func (s *OrderService) PlaceOrder(ctx context.Context, region domain.Region, customer, productName string, quantity int) error {
	store, ok := s.regions[region]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRegion, region)
	}

	tx, err := store.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin regional tx: %w", err)
	}
	defer tx.Rollback()

	item, err := tx.LockItemForUpdate(ctx, productName)
	if err != nil {
		return fmt.Errorf("lock inventory row: %w", err)
	}
	if item == nil {
		return fmt.Errorf("%w: %s in %s", ErrProductNotFound, productName, region)
	}
	if item.Quantity < quantity {
		return fmt.Errorf("%w: available %d, requested %d", ErrInsufficientStock, item.Quantity, quantity)
	}

	orderID, err := tx.InsertOrder(ctx, item.ID, quantity, customer, region)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	if err := tx.DecrementStock(ctx, item.ID, quantity); err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}

	// The audit append must land before the regional commit: if it fails,
	// the whole order rolls back.
	rec := domain.OrderAuditRecord{
		OrderIDPG: orderID,
		Customer:  customer,
		Product:   productName,
		Quantity:  quantity,
		Region:    region,
		LogID:     uuid.NewString(),
		Timestamp: time.Now().UTC(),
	}
	if err := s.audit.AppendOrderAudit(ctx, rec); err != nil {
		return fmt.Errorf("append order audit: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit regional tx: %w", err)
	}

	// Durability point. Central propagation is best-effort from here on.
	ev := domain.NewOrderSyncEvent(domain.Order{
		OrderID:      orderID,
		ProductID:    item.ID,
		Quantity:     quantity,
		CustomerName: customer,
		Region:       region,
	})
	if err := s.channel.Publish(ctx, ev); err != nil {
		s.log.WithFields(logrus.Fields{
			"order_id": orderID,
			"region":   region,
		}).WithError(err).Warn("central sync publish failed, central store stale until retry")
	}

	return nil
}
