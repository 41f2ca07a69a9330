package port

import (
	"context"

	"github.com/rledge21/shardmart/internal/core/domain"
)

// CentralStore is the single cross-region system of record. All writes are
// idempotent upserts so that at-least-once delivery never corrupts state.
type CentralStore interface {
	// UpsertOrder inserts the order, silently absorbing duplicate deliveries
	// of the same order id.
	UpsertOrder(ctx context.Context, ev domain.OrderSyncEvent) error

	// UpsertProduct inserts the product, overwriting product_name when the
	// id is already present. Repeated deliveries converge on the last
	// applied name.
	UpsertProduct(ctx context.Context, ev domain.ProductSyncEvent) error

	// JoinedSales returns the denormalized sales view, most recent order
	// first.
	JoinedSales(ctx context.Context) ([]domain.SaleRow, error)
}
