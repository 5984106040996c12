package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PORT", "")
	t.Setenv("APP_HTTP_ADDR", "")
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("DATA_PATH", "")
	t.Setenv("ADMIN_USER", "")
	t.Setenv("ADMIN_PASS", "")
	t.Setenv("ADMIN_REALM", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPAddr != ":3000" {
		t.Fatalf("unexpected HTTPAddr: %q", cfg.HTTPAddr)
	}
	if cfg.StorageDriver != StorageFile {
		t.Fatalf("unexpected StorageDriver: %q", cfg.StorageDriver)
	}
	if cfg.DataPath != "data/leaderboards.json" {
		t.Fatalf("unexpected DataPath: %q", cfg.DataPath)
	}
	if cfg.Admin.Enabled() {
		t.Fatalf("expected admin auth disabled by default")
	}
	if cfg.Admin.Realm != "Ortan Admin" {
		t.Fatalf("unexpected realm: %q", cfg.Admin.Realm)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected CORS origins: %v", cfg.CORSAllowedOrigins)
	}
	if cfg.ReadTimeout != 10*time.Second || cfg.WriteTimeout != 15*time.Second {
		t.Fatalf("unexpected timeouts: read=%s write=%s", cfg.ReadTimeout, cfg.WriteTimeout)
	}
}

func TestLoad_PortFeedsHTTPAddr(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_HTTP_ADDR", "")
	t.Setenv("PORT", "8081")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPAddr != ":8081" {
		t.Fatalf("unexpected HTTPAddr: %q", cfg.HTTPAddr)
	}
}

func TestLoad_AdminCredentials(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("ADMIN_USER", "admin")
	t.Setenv("ADMIN_PASS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Admin.Enabled() {
		t.Fatalf("expected auth disabled when only ADMIN_USER is set")
	}

	t.Setenv("ADMIN_PASS", "s3cret")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.Admin.Enabled() || cfg.Admin.User != "admin" || cfg.Admin.Password != "s3cret" {
		t.Fatalf("unexpected admin credentials: %+v", cfg.Admin)
	}
}

func TestLoad_StorageDriverValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("STORAGE_DRIVER", "sqlite")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown STORAGE_DRIVER")
	}
}

func TestLoad_PostgresRequiresDBURL(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("STORAGE_DRIVER", StoragePostgres)
	t.Setenv("DB_URL", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error when STORAGE_DRIVER=postgres without DB_URL")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}
