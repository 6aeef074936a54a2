package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Database.Driver != DriverSQLite {
		t.Errorf("expected sqlite by default, got %q", cfg.Database.Driver)
	}
	if cfg.Redis.Addr != "" || cfg.RabbitMQ.URL != "" {
		t.Errorf("expected redis and rabbitmq disabled by default, got %+v %+v", cfg.Redis, cfg.RabbitMQ)
	}
	if cfg.Storage.CleanupOrphans {
		t.Error("expected orphan cleanup off by default")
	}
	if got := cfg.MaxUploadBytes(); got != 10<<20 {
		t.Errorf("expected 10MB upload limit, got %d", got)
	}
	if got := cfg.JWTExpiration(); got != 2*time.Hour {
		t.Errorf("expected 2h token lifetime, got %v", got)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	path := writeConfig(t, `
[app]
port = 9000
log_format = "json"

[database]
driver = "mysql"

[mysql]
host = "db"
user = "pdf"
password = "secret"
db = "docs"
params = "parseTime=true"

[redis]
addr = "cache:6379"
page_ttl_seconds = 30

[storage]
base_url = "mem://localhost/uploads"
max_upload_mb = 4
cleanup_orphans = true
`)
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("APP_PORT", "9100")
	t.Setenv("STORAGE_CLEANUP_ORPHANS", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr() != "0.0.0.0:9100" {
		t.Errorf("expected env port to win, got %s", cfg.HTTPAddr())
	}
	if cfg.App.LogFormat != "json" {
		t.Errorf("expected json log format, got %q", cfg.App.LogFormat)
	}
	if dsn := cfg.MySQLDSN(); dsn != "pdf:secret@tcp(db:3306)/docs?parseTime=true" {
		t.Errorf("unexpected dsn %q", dsn)
	}
	if cfg.PageCacheTTL() != 30*time.Second {
		t.Errorf("unexpected page ttl %v", cfg.PageCacheTTL())
	}
	if cfg.MaxUploadBytes() != 4<<20 {
		t.Errorf("unexpected upload limit %d", cfg.MaxUploadBytes())
	}
	if cfg.Storage.CleanupOrphans {
		t.Error("expected env to disable orphan cleanup")
	}
}

func TestPostgresDSN(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("DB_DRIVER", "POSTGRES")
	t.Setenv("POSTGRES_HOST", "pg")
	t.Setenv("POSTGRES_PASSWORD", "pw")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Database.Driver != DriverPostgres {
		t.Errorf("expected postgres driver, got %q", cfg.Database.Driver)
	}
	want := "host=pg port=5432 user=postgres password=pw dbname=pdfsearch sslmode=disable"
	if got := cfg.PostgresDSN(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "driver", body: "[database]\ndriver = \"postgres\"\n"},
		{name: "upload limit", body: "[storage]\nmax_upload_mb = 0\n"},
		{name: "storage url", body: "[storage]\nbase_url = \"\"\n"},
		{name: "syntax", body: "[app\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CONFIG_FILE", writeConfig(t, tt.body))
			if _, err := Load(); err == nil {
				t.Error("expected error")
			}
		})
	}
}
