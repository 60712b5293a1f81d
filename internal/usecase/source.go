package usecase

import (
	"context"
	"time"

	"FarmDashboard/internal/domain"
	"FarmDashboard/internal/ports"
)

// observedSource times every fetch and places record dates in the report location.
type observedSource struct {
	inner    ports.RecordSource
	metrics  ports.ReportMetrics
	location *time.Location
}

var _ ports.RecordSource = (*observedSource)(nil)

func (s *observedSource) FetchProduction(ctx context.Context, lotID int64) ([]domain.ProductionRecord, error) {
	defer s.observe("produccion", time.Now())
	if s.inner == nil {
		return []domain.ProductionRecord{}, nil
	}
	records, err := s.inner.FetchProduction(ctx, lotID)
	if err != nil {
		return nil, err
	}
	for i := range records {
		records[i].RecordDate = s.localize(records[i].RecordDate)
	}
	return records, nil
}

func (s *observedSource) FetchClassification(ctx context.Context, lotID int64) ([]domain.ClassificationRecord, error) {
	defer s.observe("clasificacion", time.Now())
	if s.inner == nil {
		return []domain.ClassificationRecord{}, nil
	}
	records, err := s.inner.FetchClassification(ctx, lotID)
	if err != nil {
		return nil, err
	}
	for i := range records {
		records[i].ProductionDate = s.localize(records[i].ProductionDate)
	}
	return records, nil
}

func (s *observedSource) FetchLotState(ctx context.Context, lotID int64) ([]domain.LotStateRecord, error) {
	defer s.observe("estadolote", time.Now())
	if s.inner == nil {
		return []domain.LotStateRecord{}, nil
	}
	records, err := s.inner.FetchLotState(ctx, lotID)
	if err != nil {
		return nil, err
	}
	for i := range records {
		records[i].RecordDate = s.localize(records[i].RecordDate)
	}
	return records, nil
}

// localize keeps the stored wall clock and attaches the report location.
// Record columns carry no zone, so converting would move dates across days.
func (s *observedSource) localize(t time.Time) time.Time {
	if s.location == nil || t.IsZero() {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), s.location)
}

func (s *observedSource) observe(family string, started time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveFetch(family, time.Since(started).Seconds())
	}
}
