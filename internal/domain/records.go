package domain

import "time"

// ProductionRecord is one daily egg-production entry of a lot.
type ProductionRecord struct {
	ID                int64
	LotID             int64
	RecordDate        time.Time
	TotalQuantity     *int
	DefectiveQuantity *int
}

// ClassificationRecord counts eggs of one size category for a production entry.
// ProductionDate is taken from the parent ProductionRecord.
type ClassificationRecord struct {
	ID             int64
	LotID          int64
	ProductionID   int64
	ProductionDate time.Time
	SizeCategory   string
	UnitTotal      *int
}

// LotStateRecord captures headcount and losses of a lot on a given date.
type LotStateRecord struct {
	ID         int64
	LotID      int64
	RecordDate time.Time
	Headcount  int
	Losses     int
}

// BucketSummary is one aggregated period (and size, for classification) of a report.
type BucketSummary struct {
	Label        string
	SizeCategory string
	Sums         map[string]int64
}

// LotOverview summarizes every active record of a lot.
type LotOverview struct {
	LotID            int64
	FirstRecord      time.Time
	LastRecord       time.Time
	ProductionDays   int
	TotalProduced    int64
	TotalDefective   int64
	TotalClassified  int64
	CurrentHeadcount int64
	TotalLosses      int64
}

// Role names accepted by the dashboard.
const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// IntPtr is a convenience for building records with optional quantities.
func IntPtr(v int) *int {
	return &v
}
