package service

import (
	"context"
	"fmt"

	"github.com/rledge21/shardmart/internal/core/domain"
	"github.com/rledge21/shardmart/internal/port"
)

// ReportService serves the central read path. It is the only consumer that
// observes whether the central store has converged.
type ReportService struct {
	central port.CentralStore
}

func NewReportService(central port.CentralStore) *ReportService {
	return &ReportService{central: central}
}

// ViewSales returns the joined central sales view, most recent order first.
func (s *ReportService) ViewSales(ctx context.Context) ([]domain.SaleRow, error) {
	rows, err := s.central.JoinedSales(ctx)
	if err != nil {
		return nil, fmt.Errorf("query central sales: %w", err)
	}
	return rows, nil
}
