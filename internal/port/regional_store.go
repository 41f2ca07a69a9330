package port

import (
	"context"

	"github.com/rledge21/shardmart/internal/core/domain"
)

// RegionalStore executes reads and writes against one region's relational
// store.
type RegionalStore interface {
	// Begin opens a transaction against the regional store.
	Begin(ctx context.Context) (RegionalTx, error)
}

// RegionalTx is one transaction against a regional store. Exactly one of
// Commit or Rollback ends it; a deferred Rollback after Commit is a no-op.
type RegionalTx interface {
	// LockItemForUpdate locks the inventory row matching productName with
	// SELECT ... FOR UPDATE semantics, serializing concurrent writers of the
	// same product within the region. Returns nil when no row matches.
	LockItemForUpdate(ctx context.Context, productName string) (*domain.InventoryItem, error)

	// InsertOrder persists a new order row; the store assigns the order id.
	InsertOrder(ctx context.Context, productID int64, quantity int, customer string, region domain.Region) (int64, error)

	// DecrementStock reduces the item's quantity by amount.
	DecrementStock(ctx context.Context, itemID int64, amount int) error

	// InsertItem creates a new inventory row; the store assigns the id.
	InsertItem(ctx context.Context, productName string, quantity int) (int64, error)

	// ItemExists reports whether any inventory row carries productName.
	// Plain read, no lock taken.
	ItemExists(ctx context.Context, productName string) (bool, error)

	Commit() error
	Rollback() error
}
