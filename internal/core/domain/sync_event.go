package domain

type EventKind string

const (
	EventKindOrder   EventKind = "order"
	EventKindProduct EventKind = "product"
)

// OrderSyncEvent mirrors a committed regional order into the central store.
type OrderSyncEvent struct {
	OrderID      int64  `json:"order_id"`
	ProductID    int64  `json:"product_id"`
	Quantity     int    `json:"quantity"`
	CustomerName string `json:"customer_name"`
	Region       Region `json:"region"`
}

// ProductSyncEvent carries a registered product into the central store.
// ID is the regional product id of the owning region.
type ProductSyncEvent struct {
	ID          int64  `json:"id"`
	ProductName string `json:"product_name"`
}

// SyncEvent is the unit carried by the synchronization channel. Exactly one
// payload is set, selected by Kind. Delivery may be duplicated and
// reordered, so consumers must apply events idempotently.
type SyncEvent struct {
	Kind    EventKind         `json:"kind"`
	Order   *OrderSyncEvent   `json:"order,omitempty"`
	Product *ProductSyncEvent `json:"product,omitempty"`
}

func NewOrderSyncEvent(o Order) SyncEvent {
	return SyncEvent{
		Kind: EventKindOrder,
		Order: &OrderSyncEvent{
			OrderID:      o.OrderID,
			ProductID:    o.ProductID,
			Quantity:     o.Quantity,
			CustomerName: o.CustomerName,
			Region:       o.Region,
		},
	}
}

func NewProductSyncEvent(id int64, productName string) SyncEvent {
	return SyncEvent{
		Kind:    EventKindProduct,
		Product: &ProductSyncEvent{ID: id, ProductName: productName},
	}
}
