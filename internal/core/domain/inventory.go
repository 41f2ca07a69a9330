package domain

// InventoryItem is one product row in a regional store. The id is assigned
// by the regional store and is unique only within that region. Quantity
// never goes negative: reservations that would overdraw it are rejected.
type InventoryItem struct {
	ID          int64
	ProductName string
	Quantity    int
}
