package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	_ "modernc.org/sqlite"             // pure go sqlite driver

	"FarmDashboard/internal/config"
)

const (
	driverPostgres = "pgx"
	driverSQLite   = "sqlite"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS produccion_gallinas (
		id_produccion BIGINT PRIMARY KEY,
		id_lote BIGINT NOT NULL,
		fecha_registro_p TIMESTAMP,
		cant_total INTEGER,
		defectuosos INTEGER,
		estado BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS clasificacion_huevos (
		id_clasificacion BIGINT PRIMARY KEY,
		id_prod BIGINT NOT NULL REFERENCES produccion_gallinas (id_produccion),
		tamano TEXT NOT NULL,
		total_unitaria INTEGER,
		estado BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS estado_lote (
		id_estado BIGINT PRIMARY KEY,
		id_lote BIGINT NOT NULL,
		fecha_registro TIMESTAMP NOT NULL,
		cantidad_g INTEGER NOT NULL DEFAULT 0,
		bajas INTEGER NOT NULL DEFAULT 0,
		estado BOOLEAN NOT NULL DEFAULT TRUE
	)`,
}

// DriverName maps a configured driver to its database/sql name.
func DriverName(driver string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "postgres", "postgresql", "pgx":
		return driverPostgres, nil
	case "sqlite", "sqlite3":
		return driverSQLite, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Open connects to the configured database and verifies it answers.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, string, error) {
	name, err := DriverName(cfg.Driver)
	if err != nil {
		return nil, "", err
	}

	db, err := sql.Open(name, cfg.DSN)
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", name, err)
	}
	if name == driverSQLite {
		// A single connection keeps in-memory databases shared across queries.
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, "", fmt.Errorf("ping %s: %w", name, err)
	}

	if cfg.AutoMigrate {
		if err := EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, "", err
		}
	}

	return db, name, nil
}

// EnsureSchema creates the record tables when they are missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

func placeholderFor(driver string) sq.PlaceholderFormat {
	if name, err := DriverName(driver); err == nil && name == driverSQLite {
		return sq.Question
	}
	return sq.Dollar
}
