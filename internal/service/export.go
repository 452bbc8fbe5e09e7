package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tripmarket/api/internal/domain"
	"github.com/tripmarket/api/internal/repo"
)

// ExportService assembles a flat export of a customer's placed orders.
type ExportService struct {
	orders repo.OrderRepo
}

// NewExportService constructs an ExportService backed by the provided repo.
func NewExportService(orders repo.OrderRepo) *ExportService {
	return &ExportService{orders: orders}
}

// Export returns one ExportRow per line item across the customer's placed
// orders, most recent order first. Open carts are excluded.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ExportService) Export(ctx context.Context, customerID uuid.UUID) ([]domain.ExportRow, error) {
	rows, err := s.orders.ExportPlaced(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}
	if rows == nil {
		rows = []domain.ExportRow{}
	}
	return rows, nil
}
