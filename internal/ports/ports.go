package ports

import (
	"context"

	"FarmDashboard/internal/domain"
)

// RecordSource reads the active records of a lot, ordered by date ascending.
type RecordSource interface {
	FetchProduction(ctx context.Context, lotID int64) ([]domain.ProductionRecord, error)
	FetchClassification(ctx context.Context, lotID int64) ([]domain.ClassificationRecord, error)
	FetchLotState(ctx context.Context, lotID int64) ([]domain.LotStateRecord, error)
}

// ReportMetrics observes report executions.
type ReportMetrics interface {
	ObserveReport(family, period, outcome string, buckets int)
	ObserveFetch(family string, seconds float64)
}
