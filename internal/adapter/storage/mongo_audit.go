package storage

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rledge21/shardmart/internal/core/domain"
)

const (
	orderAuditCollection     = "order_product"
	productMappingCollection = "product_component"
)

// MongoAudit appends audit and mapping documents. Coordinators never read
// them back.
type MongoAudit struct {
	db *mongo.Database
}

func NewMongoAudit(db *mongo.Database) *MongoAudit {
	return &MongoAudit{db: db}
}

func (m *MongoAudit) AppendOrderAudit(ctx context.Context, rec domain.OrderAuditRecord) error {
	if _, err := m.db.Collection(orderAuditCollection).InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("insert order audit: %w", err)
	}
	return nil
}

func (m *MongoAudit) AppendProductMapping(ctx context.Context, mapping domain.ProductComponentMapping) error {
	if _, err := m.db.Collection(productMappingCollection).InsertOne(ctx, mapping); err != nil {
		return fmt.Errorf("insert product mapping: %w", err)
	}
	return nil
}
