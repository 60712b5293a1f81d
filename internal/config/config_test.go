package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseAndMerge(t *testing.T) {
	t.Parallel()

	raw := []byte(`
database:
  driver: SQLite
  dsn: "file:granja.db"
  autoMigrate: true
http:
  addr: ":9090"
  shutdownTimeout: 5s
auth:
  roles: [Admin]
logging:
  format: json
report:
  timezone: America/Santiago
`)

	fileCfg, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	cfg := mergeConfig(defaultConfig(), fileCfg)
	if cfg.Database.Driver != "sqlite" || cfg.Database.DSN != "file:granja.db" || !cfg.Database.AutoMigrate {
		t.Fatalf("unexpected database config: %+v", cfg.Database)
	}
	if cfg.HTTP.Addr != ":9090" || cfg.HTTP.ShutdownTimeout != 5*time.Second {
		t.Fatalf("unexpected http config: %+v", cfg.HTTP)
	}
	if cfg.HTTP.ReadTimeout != 10*time.Second {
		t.Fatalf("default read timeout lost: %s", cfg.HTTP.ReadTimeout)
	}
	if len(cfg.Auth.Roles) != 1 || cfg.Auth.Roles[0] != "Admin" {
		t.Fatalf("unexpected roles: %v", cfg.Auth.Roles)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Fatalf("unexpected logging config: %+v", cfg.Logging)
	}
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("report:\n  timezone: Not/AZone\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(configPathEnv, path)
	t.Setenv(databaseDSNEnv, "postgres://env/granja")
	t.Setenv(jwtSecretEnv, "s3cret")
	t.Setenv(logLevelEnv, "debug")
	t.Setenv(logFormatEnv, "json")

	cfg := Load()
	if cfg.Database.DSN != "postgres://env/granja" {
		t.Fatalf("dsn override not applied: %s", cfg.Database.DSN)
	}
	if cfg.Auth.JWTSecret != "s3cret" || cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
	if cfg.Report.Location().String() != "UTC" {
		t.Fatalf("unknown timezone should fall back to UTC, got %s", cfg.Report.Location())
	}
}
