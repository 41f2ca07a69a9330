package domain

// SaleRow is the denormalized central reporting projection joining central
// orders with central products.
type SaleRow struct {
	OrderID      int64
	CustomerName string
	ProductName  string
	Quantity     int
	Region       Region
}
