package service

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/rledge21/shardmart/internal/core/domain"
	"github.com/rledge21/shardmart/internal/port"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// memRegion is an in-memory regional store. A transaction takes the store
// lock on its first operation and holds it until Commit or Rollback, which
// models the FOR UPDATE serialization of the real store closely enough for
// contention tests.
type memRegion struct {
	mu          sync.Mutex
	nextItemID  int64
	nextOrderID int64
	items       map[string]*domain.InventoryItem
	orders      []domain.Order
	beginErr    error
}

func newMemRegion() *memRegion {
	return &memRegion{items: make(map[string]*domain.InventoryItem)}
}

func (r *memRegion) addItem(name string, quantity int) *domain.InventoryItem {
	r.nextItemID++
	item := &domain.InventoryItem{ID: r.nextItemID, ProductName: name, Quantity: quantity}
	r.items[name] = item
	return item
}

func (r *memRegion) quantityOf(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if item, ok := r.items[name]; ok {
		return item.Quantity
	}
	return -1
}

func (r *memRegion) Begin(ctx context.Context) (port.RegionalTx, error) {
	if r.beginErr != nil {
		return nil, r.beginErr
	}
	return &memTx{region: r}, nil
}

type memTx struct {
	region *memRegion
	locked bool
	done   bool

	pendingOrders     []domain.Order
	pendingDecrements map[int64]int
	pendingItems      []domain.InventoryItem
}

func (t *memTx) lock() {
	if !t.locked {
		t.region.mu.Lock()
		t.locked = true
	}
}

func (t *memTx) release() {
	if t.locked {
		t.region.mu.Unlock()
		t.locked = false
	}
}

func (t *memTx) LockItemForUpdate(ctx context.Context, productName string) (*domain.InventoryItem, error) {
	t.lock()
	item, ok := t.region.items[productName]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (t *memTx) InsertOrder(ctx context.Context, productID int64, quantity int, customer string, region domain.Region) (int64, error) {
	t.lock()
	id := t.region.nextOrderID + int64(len(t.pendingOrders)) + 1
	t.pendingOrders = append(t.pendingOrders, domain.Order{
		OrderID:      id,
		ProductID:    productID,
		Quantity:     quantity,
		CustomerName: customer,
		Region:       region,
	})
	return id, nil
}

func (t *memTx) DecrementStock(ctx context.Context, itemID int64, amount int) error {
	t.lock()
	if t.pendingDecrements == nil {
		t.pendingDecrements = make(map[int64]int)
	}
	t.pendingDecrements[itemID] += amount
	return nil
}

func (t *memTx) InsertItem(ctx context.Context, productName string, quantity int) (int64, error) {
	t.lock()
	id := t.region.nextItemID + int64(len(t.pendingItems)) + 1
	t.pendingItems = append(t.pendingItems, domain.InventoryItem{
		ID:          id,
		ProductName: productName,
		Quantity:    quantity,
	})
	return id, nil
}

func (t *memTx) ItemExists(ctx context.Context, productName string) (bool, error) {
	t.lock()
	_, ok := t.region.items[productName]
	return ok, nil
}

func (t *memTx) Commit() error {
	if t.done {
		return errors.New("tx already finished")
	}
	t.done = true

	for _, o := range t.pendingOrders {
		t.region.nextOrderID = o.OrderID
		t.region.orders = append(t.region.orders, o)
	}
	for id, amount := range t.pendingDecrements {
		for _, item := range t.region.items {
			if item.ID == id {
				item.Quantity -= amount
			}
		}
	}
	for _, it := range t.pendingItems {
		t.region.nextItemID = it.ID
		cp := it
		t.region.items[it.ProductName] = &cp
	}

	t.release()
	return nil
}

func (t *memTx) Rollback() error {
	if t.done {
		return errors.New("tx already finished")
	}
	t.done = true
	t.pendingOrders = nil
	t.pendingDecrements = nil
	t.pendingItems = nil
	t.release()
	return nil
}

// mockAudit records appended documents and can be forced to fail.
type mockAudit struct {
	mu           sync.Mutex
	failOrders   bool
	failMappings bool
	orders       []domain.OrderAuditRecord
	mappings     []domain.ProductComponentMapping
}

func (m *mockAudit) AppendOrderAudit(ctx context.Context, rec domain.OrderAuditRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failOrders {
		return errors.New("audit store unavailable")
	}
	m.orders = append(m.orders, rec)
	return nil
}

func (m *mockAudit) AppendProductMapping(ctx context.Context, mapping domain.ProductComponentMapping) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failMappings {
		return errors.New("audit store unavailable")
	}
	m.mappings = append(m.mappings, mapping)
	return nil
}

// mockChannel records published events and can be forced to fail.
type mockChannel struct {
	mu     sync.Mutex
	err    error
	events []domain.SyncEvent
}

func (m *mockChannel) Publish(ctx context.Context, ev domain.SyncEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, ev)
	return nil
}

// memCentral mirrors the central store's conflict semantics in memory:
// orders are insert-or-ignore, products are insert-or-update.
type memCentral struct {
	mu       sync.Mutex
	failing  bool
	orders   map[int64]domain.OrderSyncEvent
	products map[int64]string
}

func newMemCentral() *memCentral {
	return &memCentral{
		orders:   make(map[int64]domain.OrderSyncEvent),
		products: make(map[int64]string),
	}
}

func (c *memCentral) UpsertOrder(ctx context.Context, ev domain.OrderSyncEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failing {
		return errors.New("central store unavailable")
	}
	if _, ok := c.orders[ev.OrderID]; ok {
		return nil
	}
	c.orders[ev.OrderID] = ev
	return nil
}

func (c *memCentral) UpsertProduct(ctx context.Context, ev domain.ProductSyncEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failing {
		return errors.New("central store unavailable")
	}
	c.products[ev.ID] = ev.ProductName
	return nil
}

func (c *memCentral) JoinedSales(ctx context.Context) ([]domain.SaleRow, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failing {
		return nil, errors.New("central store unavailable")
	}

	var rows []domain.SaleRow
	for _, o := range c.orders {
		name, ok := c.products[o.ProductID]
		if !ok {
			continue
		}
		rows = append(rows, domain.SaleRow{
			OrderID:      o.OrderID,
			CustomerName: o.CustomerName,
			ProductName:  name,
			Quantity:     o.Quantity,
			Region:       o.Region,
		})
	}
	for i := 0; i < len(rows); i++ {
		for j := i + 1; j < len(rows); j++ {
			if rows[j].OrderID > rows[i].OrderID {
				rows[i], rows[j] = rows[j], rows[i]
			}
		}
	}
	return rows, nil
}
