package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 || cfg.Storage.Backend != "memory" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, `
server:
  port: 9090
storage:
  backend: database
database:
  driver: sqlite
  dsn: "file:filmorate.db"
log:
  level: debug
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.Storage.Backend != "database" || cfg.Database.Driver != "sqlite" {
		t.Errorf("storage = %s/%s", cfg.Storage.Backend, cfg.Database.Driver)
	}
	if cfg.Database.MaxOpenConns != 100 {
		t.Errorf("max_open_conns default not applied: %d", cfg.Database.MaxOpenConns)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("log = %+v", cfg.Log)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "server:\n  port: 9090\n")
	t.Setenv("FILMORATE_PORT", "7070")
	t.Setenv("FILMORATE_STORAGE", "database")
	t.Setenv("FILMORATE_DB_DRIVER", "sqlite")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("port = %d, want 7070", cfg.Server.Port)
	}
	if cfg.Storage.Backend != "database" || cfg.Database.Driver != "sqlite" {
		t.Errorf("storage = %s/%s", cfg.Storage.Backend, cfg.Database.Driver)
	}
}

func TestValidateRejectsUnknownValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"backend", "storage:\n  backend: redis\n"},
		{"driver", "storage:\n  backend: database\ndatabase:\n  driver: oracle\n"},
		{"port", "server:\n  port: 70000\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeFile(t, tt.yaml)); err == nil {
				t.Error("Load() should fail")
			}
		})
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	if _, err := Load(writeFile(t, "server: [1, 2")); err == nil {
		t.Error("Load() should fail on malformed yaml")
	}
}
