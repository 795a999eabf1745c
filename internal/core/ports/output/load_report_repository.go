package ports

import (
	"context"

	"disease-diagnosis-service/internal/core/domain"
)

type LoadReportRepository interface {
	SaveAll(ctx context.Context, reports []domain.LoadReport) error
	ListRecent(ctx context.Context, limit int) ([]domain.LoadReport, error)
	Ping(ctx context.Context) error
}
