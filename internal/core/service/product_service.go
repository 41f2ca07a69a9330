package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/rledge21/shardmart/internal/core/domain"
	"github.com/rledge21/shardmart/internal/port"
)

var ErrMissingComponent = errors.New("missing component")

// ProductService coordinates product registration: component existence
// checks and the product insert in the regional store, the mapping document
// in the audit store, and the central synchronization event.
type ProductService struct {
	regions map[domain.Region]port.RegionalStore
	audit   port.AuditLog
	channel port.SyncChannel
	log     *logrus.Logger
}

func NewProductService(regions map[domain.Region]port.RegionalStore, audit port.AuditLog, channel port.SyncChannel, log *logrus.Logger) *ProductService {
	return &ProductService{regions: regions, audit: audit, channel: channel, log: log}
}

// RegisterProduct inserts a new inventory row for the product after
// verifying every component name exists in the region. The mapping document
// is appended before the regional commit and a failure there rolls the
// insert back. A failed central publish is logged, never surfaced.
func (s *ProductService) RegisterProduct(ctx context.Context, region domain.Region, productName string, components []string, quantity int) error {
	store, ok := s.regions[region]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRegion, region)
	}

	tx, err := store.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin regional tx: %w", err)
	}
	defer tx.Rollback()

	// Existence check only; components are not locked against concurrent
	// deletion.
	for _, comp := range components {
		exists, err := tx.ItemExists(ctx, comp)
		if err != nil {
			return fmt.Errorf("look up component %q: %w", comp, err)
		}
		if !exists {
			return fmt.Errorf("%w: %q not in %s inventory", ErrMissingComponent, comp, region)
		}
	}

	productID, err := tx.InsertItem(ctx, productName, quantity)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}

	mapping := domain.ProductComponentMapping{
		Product:     productName,
		Components:  components,
		Region:      region,
		Quantity:    quantity,
		ProductIDPG: productID,
	}
	if err := s.audit.AppendProductMapping(ctx, mapping); err != nil {
		return fmt.Errorf("append product mapping: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit regional tx: %w", err)
	}

	if err := s.channel.Publish(ctx, domain.NewProductSyncEvent(productID, productName)); err != nil {
		s.log.WithFields(logrus.Fields{
			"product_id": productID,
			"region":     region,
		}).WithError(err).Warn("central sync publish failed, central store stale until retry")
	}

	return nil
}
