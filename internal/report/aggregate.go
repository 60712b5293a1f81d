package report

import (
	"fmt"

	"FarmDashboard/internal/domain"
	"FarmDashboard/internal/period"
)

// Metric names used as keys of BucketSummary.Sums.
const (
	MetricProduced  = "Produccion"
	MetricDefective = "Defectuosos"
	MetricUnitTotal = "TotalUnitaria"
	MetricHeadcount = "CantidadG"
	MetricLosses    = "Bajas"
)

type field[T any] struct {
	name  string
	value func(T) int64
}

type groupKey struct {
	bucket period.Key
	size   string
}

// AggregateProduction sums produced and defective eggs per period bucket.
func AggregateProduction(records []domain.ProductionRecord, p period.Period) ([]domain.BucketSummary, error) {
	keyOf := func(r domain.ProductionRecord) (groupKey, error) {
		k, err := p.KeyOf(r.RecordDate)
		return groupKey{bucket: k}, err
	}
	return aggregate(records, p, keyOf,
		field[domain.ProductionRecord]{MetricProduced, func(r domain.ProductionRecord) int64 { return orZero(r.TotalQuantity) }},
		field[domain.ProductionRecord]{MetricDefective, func(r domain.ProductionRecord) int64 { return orZero(r.DefectiveQuantity) }},
	)
}

// AggregateClassification sums classified units per period bucket and size category.
func AggregateClassification(records []domain.ClassificationRecord, p period.Period) ([]domain.BucketSummary, error) {
	keyOf := func(r domain.ClassificationRecord) (groupKey, error) {
		k, err := p.KeyOf(r.ProductionDate)
		return groupKey{bucket: k, size: r.SizeCategory}, err
	}
	return aggregate(records, p, keyOf,
		field[domain.ClassificationRecord]{MetricUnitTotal, func(r domain.ClassificationRecord) int64 { return orZero(r.UnitTotal) }},
	)
}

// AggregateLotState sums headcount and losses per period bucket.
func AggregateLotState(records []domain.LotStateRecord, p period.Period) ([]domain.BucketSummary, error) {
	keyOf := func(r domain.LotStateRecord) (groupKey, error) {
		k, err := p.KeyOf(r.RecordDate)
		return groupKey{bucket: k}, err
	}
	return aggregate(records, p, keyOf,
		field[domain.LotStateRecord]{MetricHeadcount, func(r domain.LotStateRecord) int64 { return int64(r.Headcount) }},
		field[domain.LotStateRecord]{MetricLosses, func(r domain.LotStateRecord) int64 { return int64(r.Losses) }},
	)
}

// aggregate groups records by key in first-seen order and sums every field per group.
func aggregate[T any](records []T, p period.Period, keyOf func(T) (groupKey, error), fields ...field[T]) ([]domain.BucketSummary, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %s", period.ErrInvalidPeriod, p)
	}

	result := make([]domain.BucketSummary, 0)
	index := make(map[groupKey]int)

	for _, rec := range records {
		key, err := keyOf(rec)
		if err != nil {
			return nil, fmt.Errorf("resolve bucket: %w", err)
		}

		i, ok := index[key]
		if !ok {
			sums := make(map[string]int64, len(fields))
			for _, f := range fields {
				sums[f.name] = 0
			}
			i = len(result)
			index[key] = i
			result = append(result, domain.BucketSummary{
				Label:        key.bucket.Label(),
				SizeCategory: key.size,
				Sums:         sums,
			})
		}

		for _, f := range fields {
			result[i].Sums[f.name] += f.value(rec)
		}
	}

	return result, nil
}

func orZero(v *int) int64 {
	if v == nil {
		return 0
	}
	return int64(*v)
}
