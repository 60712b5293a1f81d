package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"FarmDashboard/internal/domain"
	"FarmDashboard/internal/ports"
)

// SQLRepository reads lot records from Postgres or SQLite.
type SQLRepository struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.RecordSource = (*SQLRepository)(nil)

// NewSQLRepository wires a sql.DB; driver selects the placeholder style.
func NewSQLRepository(db *sql.DB, driver string) *SQLRepository {
	return &SQLRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(placeholderFor(driver)).RunWith(db),
	}
}

// FetchProduction returns the active production entries of a lot that carry a date.
func (r *SQLRepository) FetchProduction(ctx context.Context, lotID int64) ([]domain.ProductionRecord, error) {
	if r.db == nil {
		return []domain.ProductionRecord{}, nil
	}

	query := r.builder.
		Select("id_produccion", "id_lote", "fecha_registro_p", "cant_total", "defectuosos").
		From("produccion_gallinas").
		Where(sq.Eq{"id_lote": lotID, "estado": true}).
		Where(sq.NotEq{"fecha_registro_p": nil}).
		OrderBy("fecha_registro_p", "id_produccion")

	records := make([]domain.ProductionRecord, 0)
	err := queryRows(ctx, query, func(rows *sql.Rows) error {
		var (
			rec       domain.ProductionRecord
			total     sql.NullInt64
			defective sql.NullInt64
		)
		if err := rows.Scan(&rec.ID, &rec.LotID, &rec.RecordDate, &total, &defective); err != nil {
			return err
		}
		rec.TotalQuantity = nullableInt(total)
		rec.DefectiveQuantity = nullableInt(defective)
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query production: %w", err)
	}

	return records, nil
}

// FetchClassification returns active classification rows joined to their production date.
func (r *SQLRepository) FetchClassification(ctx context.Context, lotID int64) ([]domain.ClassificationRecord, error) {
	if r.db == nil {
		return []domain.ClassificationRecord{}, nil
	}

	query := r.builder.
		Select("c.id_clasificacion", "p.id_lote", "c.id_prod", "p.fecha_registro_p", "c.tamano", "c.total_unitaria").
		From("clasificacion_huevos c").
		Join("produccion_gallinas p ON p.id_produccion = c.id_prod").
		Where(sq.Eq{"p.id_lote": lotID, "c.estado": true}).
		Where(sq.NotEq{"p.fecha_registro_p": nil}).
		OrderBy("p.fecha_registro_p", "c.id_clasificacion")

	records := make([]domain.ClassificationRecord, 0)
	err := queryRows(ctx, query, func(rows *sql.Rows) error {
		var (
			rec   domain.ClassificationRecord
			units sql.NullInt64
		)
		if err := rows.Scan(&rec.ID, &rec.LotID, &rec.ProductionID, &rec.ProductionDate, &rec.SizeCategory, &units); err != nil {
			return err
		}
		rec.UnitTotal = nullableInt(units)
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query classification: %w", err)
	}

	return records, nil
}

// FetchLotState returns the active headcount entries of a lot.
func (r *SQLRepository) FetchLotState(ctx context.Context, lotID int64) ([]domain.LotStateRecord, error) {
	if r.db == nil {
		return []domain.LotStateRecord{}, nil
	}

	query := r.builder.
		Select("id_estado", "id_lote", "fecha_registro", "cantidad_g", "bajas").
		From("estado_lote").
		Where(sq.Eq{"id_lote": lotID, "estado": true}).
		OrderBy("fecha_registro", "id_estado")

	records := make([]domain.LotStateRecord, 0)
	err := queryRows(ctx, query, func(rows *sql.Rows) error {
		var rec domain.LotStateRecord
		if err := rows.Scan(&rec.ID, &rec.LotID, &rec.RecordDate, &rec.Headcount, &rec.Losses); err != nil {
			return err
		}
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query lot state: %w", err)
	}

	return records, nil
}

func queryRows(ctx context.Context, query sq.SelectBuilder, scan func(*sql.Rows) error) error {
	rows, err := query.QueryContext(ctx)
	if err != nil {
		return err
	}

	for rows.Next() {
		if err := scan(rows); err != nil {
			_ = rows.Close()
			return fmt.Errorf("scan row: %w", err)
		}
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		_ = rows.Close()
		return fmt.Errorf("rows iteration: %w", rowsErr)
	}

	if closeErr := rows.Close(); closeErr != nil {
		return fmt.Errorf("close rows: %w", closeErr)
	}

	return nil
}

func nullableInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
