package domain

import "time"

// OrderAuditRecord is the append-only order log document. LogID is generated
// fresh at write time and is independent of any store's own id scheme.
type OrderAuditRecord struct {
	OrderIDPG int64     `bson:"order_id_pg"`
	Customer  string    `bson:"customer"`
	Product   string    `bson:"product"`
	Quantity  int       `bson:"quantity"`
	Region    Region    `bson:"region"`
	LogID     string    `bson:"log_id"`
	Timestamp time.Time `bson:"timestamp"`
}

// ProductComponentMapping links a regional product id to the component names
// it requires. One document per registration, never updated in place.
type ProductComponentMapping struct {
	Product     string   `bson:"product"`
	Components  []string `bson:"components"`
	Region      Region   `bson:"region"`
	Quantity    int      `bson:"quantity"`
	ProductIDPG int64    `bson:"product_id_pg"`
}
