package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"FarmDashboard/internal/domain"
	"FarmDashboard/internal/family"
	"FarmDashboard/internal/period"
	"FarmDashboard/internal/ports"
	"FarmDashboard/internal/report"
)

// ErrLotNotFound is returned by Overview when a lot has no active records.
var ErrLotNotFound = errors.New("lot not found")

// Report outcomes recorded in metrics.
const (
	outcomeOK            = "ok"
	outcomeInvalidPeriod = "invalid_period"
	outcomeUnknownFamily = "unknown_family"
	outcomeError         = "error"
)

// DashboardDeps wires the driven adapters into the dashboard use case.
type DashboardDeps struct {
	Source   ports.RecordSource
	Families *family.Registry
	Metrics  ports.ReportMetrics
	Location *time.Location
	Logger   *slog.Logger
}

// Dashboard serves period reports and lot overviews.
type Dashboard struct {
	source   ports.RecordSource
	families *family.Registry
	metrics  ports.ReportMetrics
	logger   *slog.Logger
}

// NewDashboard constructs the reporting component.
func NewDashboard(deps DashboardDeps) *Dashboard {
	families := deps.Families
	if families == nil {
		families = family.Defaults()
	}

	return &Dashboard{
		source: &observedSource{
			inner:    deps.Source,
			metrics:  deps.Metrics,
			location: deps.Location,
		},
		families: families,
		metrics:  deps.Metrics,
		logger:   deps.Logger,
	}
}

// Families lists the report families the dashboard can serve.
func (d *Dashboard) Families() []string {
	return d.families.Names()
}

// Report aggregates the records of one family for a lot into period buckets.
// The period is validated before the store is queried.
func (d *Dashboard) Report(ctx context.Context, familyName string, lotID int64, periodName string) ([]domain.BucketSummary, error) {
	p, err := period.Parse(periodName)
	if err != nil {
		d.observe(d.familyLabel(familyName), "invalid", outcomeInvalidPeriod, 0)
		return nil, err
	}

	fam, err := d.families.Resolve(familyName)
	if err != nil {
		d.observe("unknown", p.String(), outcomeUnknownFamily, 0)
		return nil, err
	}

	buckets, err := fam.Build(ctx, d.source, lotID, p)
	if err != nil {
		d.observe(fam.Name(), p.String(), outcomeError, 0)
		return nil, fmt.Errorf("build %s report for lot %d: %w", fam.Name(), lotID, err)
	}

	d.observe(fam.Name(), p.String(), outcomeOK, len(buckets))
	d.debug("report built", "family", fam.Name(), "lot", lotID, "period", p.String(), "buckets", len(buckets))
	return buckets, nil
}

// Overview summarizes every active record of a lot.
func (d *Dashboard) Overview(ctx context.Context, lotID int64) (domain.LotOverview, error) {
	var (
		production     []domain.ProductionRecord
		classification []domain.ClassificationRecord
		states         []domain.LotStateRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		production, err = d.source.FetchProduction(gctx, lotID)
		return err
	})
	g.Go(func() (err error) {
		classification, err = d.source.FetchClassification(gctx, lotID)
		return err
	})
	g.Go(func() (err error) {
		states, err = d.source.FetchLotState(gctx, lotID)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.LotOverview{}, fmt.Errorf("load lot %d: %w", lotID, err)
	}

	overview, ok := report.SummarizeLot(lotID, production, classification, states)
	if !ok {
		return domain.LotOverview{}, fmt.Errorf("%w: %d", ErrLotNotFound, lotID)
	}

	d.debug("overview built", "lot", lotID, "production_days", overview.ProductionDays)
	return overview, nil
}

// familyLabel keeps caller-supplied names out of metric labels.
func (d *Dashboard) familyLabel(name string) string {
	if fam, err := d.families.Resolve(name); err == nil {
		return fam.Name()
	}
	return "unknown"
}

func (d *Dashboard) observe(familyName, periodName, outcome string, buckets int) {
	if d.metrics != nil {
		d.metrics.ObserveReport(familyName, periodName, outcome, buckets)
	}
}

func (d *Dashboard) debug(msg string, args ...interface{}) {
	if d.logger != nil {
		d.logger.Debug(msg, args...)
	}
}
