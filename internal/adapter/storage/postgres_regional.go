package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rledge21/shardmart/internal/core/domain"
	"github.com/rledge21/shardmart/internal/port"
)

// PostgresRegional executes reads and writes against one region's store.
// Row-level serialization of concurrent orders for the same product comes
// from the FOR UPDATE lock taken in LockItemForUpdate.
type PostgresRegional struct {
	db     *sql.DB
	region domain.Region
}

func NewPostgresRegional(db *sql.DB, region domain.Region) *PostgresRegional {
	return &PostgresRegional{db: db, region: region}
}

func (p *PostgresRegional) Begin(ctx context.Context) (port.RegionalTx, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx on %s: %w", p.region, err)
	}
	return &regionalTx{tx: tx}, nil
}

type regionalTx struct {
	tx *sql.Tx
}

func (t *regionalTx) LockItemForUpdate(ctx context.Context, productName string) (*domain.InventoryItem, error) {
	var item domain.InventoryItem
	err := t.tx.QueryRowContext(ctx, `
		SELECT id, quantity FROM inventory WHERE product_name = $1 FOR UPDATE`,
		productName,
	).Scan(&item.ID, &item.Quantity)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lock inventory row: %w", err)
	}

	item.ProductName = productName
	return &item, nil
}

func (t *regionalTx) InsertOrder(ctx context.Context, productID int64, quantity int, customer string, region domain.Region) (int64, error) {
	var orderID int64
	err := t.tx.QueryRowContext(ctx, `
		INSERT INTO orders (product_id, quantity, customer_name, region)
		VALUES ($1, $2, $3, $4) RETURNING order_id`,
		productID, quantity, customer, region,
	).Scan(&orderID)
	if err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}
	return orderID, nil
}

func (t *regionalTx) DecrementStock(ctx context.Context, itemID int64, amount int) error {
	_, err := t.tx.ExecContext(ctx, `
		UPDATE inventory SET quantity = quantity - $1 WHERE id = $2`,
		amount, itemID,
	)
	if err != nil {
		return fmt.Errorf("decrement inventory: %w", err)
	}
	return nil
}

func (t *regionalTx) InsertItem(ctx context.Context, productName string, quantity int) (int64, error) {
	var id int64
	err := t.tx.QueryRowContext(ctx, `
		INSERT INTO inventory (product_name, quantity)
		VALUES ($1, $2) RETURNING id`,
		productName, quantity,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert inventory item: %w", err)
	}
	return id, nil
}

func (t *regionalTx) ItemExists(ctx context.Context, productName string) (bool, error) {
	var one int
	err := t.tx.QueryRowContext(ctx, `
		SELECT 1 FROM inventory WHERE product_name = $1 LIMIT 1`,
		productName,
	).Scan(&one)

	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("look up inventory item: %w", err)
	}
	return true, nil
}

func (t *regionalTx) Commit() error   { return t.tx.Commit() }
func (t *regionalTx) Rollback() error { return t.tx.Rollback() }
