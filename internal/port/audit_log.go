package port

import (
	"context"

	"github.com/rledge21/shardmart/internal/core/domain"
)

// AuditLog appends structured documents to the document store. It has no
// transactional link to the regional stores and is write-only from the
// coordinators' perspective.
type AuditLog interface {
	// AppendOrderAudit appends an order audit document.
	AppendOrderAudit(ctx context.Context, rec domain.OrderAuditRecord) error

	// AppendProductMapping appends a product-component mapping document.
	AppendProductMapping(ctx context.Context, mapping domain.ProductComponentMapping) error
}
