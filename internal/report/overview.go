package report

import (
	"time"

	"FarmDashboard/internal/domain"
	"FarmDashboard/internal/period"
)

// SummarizeLot folds the active records of a lot into an overview.
// The boolean is false when none of the sequences holds a record.
func SummarizeLot(lotID int64, production []domain.ProductionRecord, classification []domain.ClassificationRecord, states []domain.LotStateRecord) (domain.LotOverview, bool) {
	overview := domain.LotOverview{LotID: lotID}
	if len(production) == 0 && len(classification) == 0 && len(states) == 0 {
		return overview, false
	}

	observe := func(t time.Time) {
		if overview.FirstRecord.IsZero() || t.Before(overview.FirstRecord) {
			overview.FirstRecord = t
		}
		if t.After(overview.LastRecord) {
			overview.LastRecord = t
		}
	}

	days := make(map[period.Key]struct{}, len(production))
	for _, r := range production {
		observe(r.RecordDate)
		if key, err := period.Daily.KeyOf(r.RecordDate); err == nil {
			days[key] = struct{}{}
		}
		overview.TotalProduced += orZero(r.TotalQuantity)
		overview.TotalDefective += orZero(r.DefectiveQuantity)
	}
	for _, r := range classification {
		observe(r.ProductionDate)
		overview.TotalClassified += orZero(r.UnitTotal)
	}

	var latest time.Time
	for _, r := range states {
		observe(r.RecordDate)
		overview.TotalLosses += int64(r.Losses)
		if !r.RecordDate.Before(latest) {
			latest = r.RecordDate
			overview.CurrentHeadcount = int64(r.Headcount)
		}
	}

	overview.ProductionDays = len(days)

	return overview, true
}
