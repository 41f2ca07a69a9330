package domain

import "time"

// Order is a regional order row. OrderID is assigned by the regional store,
// unique and monotonically increasing within the region. Orders are created
// exactly once per successful reservation and never mutated or deleted.
type Order struct {
	OrderID      int64
	ProductID    int64
	Quantity     int
	CustomerName string
	Region       Region
	Timestamp    time.Time
}
