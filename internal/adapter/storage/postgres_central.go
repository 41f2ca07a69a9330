package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rledge21/shardmart/internal/core/domain"
)

// PostgresCentral is the cross-region system of record. Both upserts are
// idempotent so the synchronization channel may deliver duplicates freely.
//
// Known limitation: central_products.id is the regional product id of the
// owning region, so two regions registering different products can collide
// on id.
type PostgresCentral struct {
	db *sql.DB
}

func NewPostgresCentral(db *sql.DB) *PostgresCentral {
	return &PostgresCentral{db: db}
}

func (p *PostgresCentral) UpsertOrder(ctx context.Context, ev domain.OrderSyncEvent) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO orders (order_id, product_id, quantity, customer_name, region)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (order_id) DO NOTHING`,
		ev.OrderID, ev.ProductID, ev.Quantity, ev.CustomerName, ev.Region,
	)
	if err != nil {
		return fmt.Errorf("upsert central order: %w", err)
	}
	return nil
}

func (p *PostgresCentral) UpsertProduct(ctx context.Context, ev domain.ProductSyncEvent) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO central_products (id, product_name)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET product_name = EXCLUDED.product_name`,
		ev.ID, ev.ProductName,
	)
	if err != nil {
		return fmt.Errorf("upsert central product: %w", err)
	}
	return nil
}

func (p *PostgresCentral) JoinedSales(ctx context.Context) ([]domain.SaleRow, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT o.order_id, o.customer_name, cp.product_name, o.quantity, o.region
		FROM orders o
		JOIN central_products cp ON o.product_id = cp.id
		ORDER BY o.order_id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query joined sales: %w", err)
	}
	defer rows.Close()

	var sales []domain.SaleRow
	for rows.Next() {
		var s domain.SaleRow
		if err := rows.Scan(&s.OrderID, &s.CustomerName, &s.ProductName, &s.Quantity, &s.Region); err != nil {
			return nil, fmt.Errorf("scan sale row: %w", err)
		}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sale rows: %w", err)
	}
	return sales, nil
}
