package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Storage != StorageJSON {
		t.Errorf("expected json storage, got %q", cfg.Storage)
	}
	if cfg.Path != "todos.json" {
		t.Errorf("expected todos.json, got %q", cfg.Path)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("expected warn log level, got %q", cfg.Log.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tada.yaml")
	data := []byte("storage: sqlite\npath: /tmp/x.sqlite\nlog:\n  level: debug\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Storage != StorageSQLite || cfg.Path != "/tmp/x.sqlite" {
		t.Errorf("storage/path = %q/%q", cfg.Storage, cfg.Path)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Mode != "dev" {
		t.Errorf("log = %+v", cfg.Log)
	}
	if cfg.Theme != "classic" {
		t.Errorf("theme default lost: %q", cfg.Theme)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	bad := filepath.Join(dir, "bad.yaml")
	_ = os.WriteFile(bad, []byte("storage: [unterminated"), 0o644)
	if _, err := LoadConfig(bad); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("explicit missing config should fail")
	}
}

func TestLoadAppliesEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tada.yaml")
	_ = os.WriteFile(path, []byte("storage: json\n"), 0o644)
	t.Setenv("TADA_STORAGE", "redis")
	t.Setenv("TADA_REDIS_ADDR", "127.0.0.1:6379")
	t.Setenv("TADA_REDIS_DB", "2")
	t.Setenv("TADA_THEME", "mono")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage != StorageRedis || cfg.Redis.Addr != "127.0.0.1:6379" || cfg.Redis.DB != 2 {
		t.Errorf("env not applied: %+v", cfg)
	}
	if cfg.Theme != "mono" {
		t.Errorf("theme = %q", cfg.Theme)
	}
}

func TestApplyEnvBadRedisDB(t *testing.T) {
	cfg := DefaultConfig()
	lookup := func(k string) (string, bool) {
		if k == "TADA_REDIS_DB" {
			return "two", true
		}
		return "", false
	}
	if err := cfg.applyEnv(lookup); err == nil {
		t.Error("expected error for non-numeric TADA_REDIS_DB")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"memory", Config{Storage: "memory"}, false},
		{"json upper case", Config{Storage: "JSON", Path: "a.json"}, false},
		{"json without path", Config{Storage: "json"}, true},
		{"sqlite without path", Config{Storage: "sqlite"}, true},
		{"redis without addr", Config{Storage: "redis"}, true},
		{"redis", Config{Storage: "redis", Redis: RedisConfig{Addr: "x:1"}}, false},
		{"unknown", Config{Storage: "etcd"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOpenStorage(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	mr := miniredis.RunT(t)

	cfgs := []*Config{
		{Storage: StorageMemory},
		{Storage: StorageJSON, Path: filepath.Join(dir, "todos.json")},
		{Storage: StorageSQLite, Path: filepath.Join(dir, "todos.sqlite")},
		{Storage: StorageRedis, Redis: RedisConfig{Addr: mr.Addr()}},
	}
	for _, cfg := range cfgs {
		t.Run(cfg.Storage, func(t *testing.T) {
			s, err := OpenStorage(ctx, cfg)
			if err != nil {
				t.Fatalf("OpenStorage: %v", err)
			}
			defer s.Close()
			if err := s.Set(ctx, "k", []byte(`"v"`)); err != nil {
				t.Fatalf("Set: %v", err)
			}
			v, ok, err := s.Get(ctx, "k")
			if err != nil || !ok || string(v) != `"v"` {
				t.Errorf("Get = %q ok=%v err=%v", v, ok, err)
			}
		})
	}

	if _, err := OpenStorage(ctx, &Config{Storage: "etcd"}); err == nil {
		t.Error("expected error for unknown backend")
	}
}
