package family

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"FarmDashboard/internal/domain"
	"FarmDashboard/internal/period"
	"FarmDashboard/internal/ports"
	"FarmDashboard/internal/report"
)

// ErrUnknownFamily is returned when no report family is registered under a name.
var ErrUnknownFamily = errors.New("unknown report family")

// Family captures a single report type (production, classification, lot state).
type Family interface {
	Name() string
	Aliases() []string
	Build(ctx context.Context, source ports.RecordSource, lotID int64, p period.Period) ([]domain.BucketSummary, error)
}

// Registry keeps a mapping from route names to report families.
type Registry struct {
	families map[string]Family
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{families: map[string]Family{}}
}

// Defaults returns a registry holding the three dashboard families.
func Defaults() *Registry {
	reg := NewRegistry()
	reg.Register(Production())
	reg.Register(Classification())
	reg.Register(LotState())
	return reg
}

// Register adds or replaces a family under its name and aliases.
func (r *Registry) Register(family Family) {
	if r.families == nil {
		r.families = map[string]Family{}
	}
	r.families[family.Name()] = family
	for _, alias := range family.Aliases() {
		r.families[alias] = family
	}
}

// Resolve returns a family by name or alias, ignoring case.
func (r *Registry) Resolve(name string) (Family, error) {
	if family, ok := r.families[strings.ToLower(strings.TrimSpace(name))]; ok {
		return family, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFamily, name)
}

// Names lists the canonical family names in alphabetical order.
func (r *Registry) Names() []string {
	seen := map[string]struct{}{}
	for _, family := range r.families {
		seen[family.Name()] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type builder struct {
	name    string
	aliases []string
	build   func(ctx context.Context, source ports.RecordSource, lotID int64, p period.Period) ([]domain.BucketSummary, error)
}

func (b builder) Name() string      { return b.name }
func (b builder) Aliases() []string { return b.aliases }

func (b builder) Build(ctx context.Context, source ports.RecordSource, lotID int64, p period.Period) ([]domain.BucketSummary, error) {
	return b.build(ctx, source, lotID, p)
}

// Production reports produced and defective eggs.
func Production() Family {
	return builder{
		name:    "produccion",
		aliases: []string{"production"},
		build: func(ctx context.Context, source ports.RecordSource, lotID int64, p period.Period) ([]domain.BucketSummary, error) {
			records, err := source.FetchProduction(ctx, lotID)
			if err != nil {
				return nil, fmt.Errorf("fetch production: %w", err)
			}
			return report.AggregateProduction(records, p)
		},
	}
}

// Classification reports classified units per size category.
func Classification() Family {
	return builder{
		name:    "clasificacion",
		aliases: []string{"classification"},
		build: func(ctx context.Context, source ports.RecordSource, lotID int64, p period.Period) ([]domain.BucketSummary, error) {
			records, err := source.FetchClassification(ctx, lotID)
			if err != nil {
				return nil, fmt.Errorf("fetch classification: %w", err)
			}
			return report.AggregateClassification(records, p)
		},
	}
}

// LotState reports headcount and losses.
func LotState() Family {
	return builder{
		name:    "estadolote",
		aliases: []string{"lotstate"},
		build: func(ctx context.Context, source ports.RecordSource, lotID int64, p period.Period) ([]domain.BucketSummary, error) {
			records, err := source.FetchLotState(ctx, lotID)
			if err != nil {
				return nil, fmt.Errorf("fetch lot state: %w", err)
			}
			return report.AggregateLotState(records, p)
		},
	}
}
