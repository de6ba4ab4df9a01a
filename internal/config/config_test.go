package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/boxwire/pkg/errors"
	"github.com/matzehuels/boxwire/pkg/gesture"
	"github.com/matzehuels/boxwire/pkg/store"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error: %v", err)
	}
	if cfg.Gesture.Threshold != gesture.DefaultThreshold {
		t.Errorf("Threshold = %v, want %v", cfg.Gesture.Threshold, gesture.DefaultThreshold)
	}
	if cfg.Store.Backend != BackendFile {
		t.Errorf("Backend = %q, want %q", cfg.Store.Backend, BackendFile)
	}
	if cfg.LogLevel() != log.InfoLevel {
		t.Errorf("LogLevel() = %v, want info", cfg.LogLevel())
	}
}

func TestParse(t *testing.T) {
	cfg, err := Parse(`
[gesture]
threshold = 5.0
required_modifiers = ["alt"]

[layout]
border_spacing = 4.0

[store]
backend = "null"

[log]
level = "debug"
`)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if cfg.Gesture.Threshold != 5 {
		t.Errorf("Threshold = %v, want 5", cfg.Gesture.Threshold)
	}
	if cfg.Layout.BorderSpacing != 4 {
		t.Errorf("BorderSpacing = %v, want 4", cfg.Layout.BorderSpacing)
	}
	if cfg.Route.Stub != 10 {
		t.Errorf("Stub = %v, want default 10", cfg.Route.Stub)
	}
	if cfg.LogLevel() != log.DebugLevel {
		t.Errorf("LogLevel() = %v, want debug", cfg.LogLevel())
	}
	if got := len(cfg.GestureOptions(nil)); got != 2 {
		t.Errorf("len(GestureOptions) = %d, want 2", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", `[gesture`},
		{"unknown key", "[gesture]\nspeed = 1"},
		{"negative threshold", "[gesture]\nthreshold = -1.0"},
		{"bad modifier", "[gesture]\nrequired_modifiers = [\"hyper\"]"},
		{"negative stub", "[route]\nstub = -2.0"},
		{"bad backend", "[store]\nbackend = \"mongo\""},
		{"bad level", "[log]\nlevel = \"loud\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.data); !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Parse() error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("BOXWIRE_STORE", "")
	t.Setenv("BOXWIRE_REDIS_ADDR", "")
	t.Setenv("BOXWIRE_LOG_LEVEL", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() without file error: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Server.Addr)
	}

	path := filepath.Join(dir, AppName, "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[server]\naddr = \":9000\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if cfg, err = Load(""); err != nil || cfg.Server.Addr != ":9000" {
		t.Errorf("Load() = %q, %v, want :9000", cfg.Server.Addr, err)
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Load(missing) error = %v, want INVALID_CONFIG", err)
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("BOXWIRE_STORE", "redis")
	t.Setenv("BOXWIRE_REDIS_ADDR", "cache:6380")
	t.Setenv("BOXWIRE_LOG_LEVEL", "warn")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Store.Backend != BackendRedis || cfg.Store.RedisAddr != "cache:6380" {
		t.Errorf("Store = %+v, want redis at cache:6380", cfg.Store)
	}
	if cfg.LogLevel() != log.WarnLevel {
		t.Errorf("LogLevel() = %v, want warn", cfg.LogLevel())
	}

	t.Setenv("BOXWIRE_STORE", "tape")
	if _, err := Load(""); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Load() with bad env error = %v, want INVALID_CONFIG", err)
	}
}

func TestPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("XDG_DATA_HOME", "/tmp/data")

	if p, _ := Path(); p != filepath.Join("/tmp/cfg", AppName, "config.toml") {
		t.Errorf("Path() = %q", p)
	}
	if p, _ := DataDir(); p != filepath.Join("/tmp/data", AppName, "diagrams") {
		t.Errorf("DataDir() = %q", p)
	}

	t.Setenv("XDG_DATA_HOME", "")
	home, _ := os.UserHomeDir()
	p, err := DataDir()
	if err != nil {
		t.Fatalf("DataDir() error: %v", err)
	}
	if !strings.HasPrefix(p, home) || !strings.Contains(p, filepath.Join(".local", "share")) {
		t.Errorf("DataDir() = %q, want under %s/.local/share", p, home)
	}

	cfg := Default()
	cfg.Store.Dir = "/srv/diagrams"
	if d, _ := cfg.StoreDir(); d != "/srv/diagrams" {
		t.Errorf("StoreDir() = %q, want /srv/diagrams", d)
	}
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	cfg := Default()
	cfg.Store.Backend = BackendNull
	s, err := cfg.OpenStore(ctx)
	if err != nil {
		t.Fatalf("OpenStore(null) error: %v", err)
	}
	if _, ok := s.(*store.NullStore); !ok {
		t.Errorf("OpenStore(null) = %T, want *store.NullStore", s)
	}

	cfg.Store.Backend = BackendFile
	cfg.Store.Dir = filepath.Join(t.TempDir(), "d")
	s, err = cfg.OpenStore(ctx)
	if err != nil {
		t.Fatalf("OpenStore(file) error: %v", err)
	}
	fs, ok := s.(*store.FileStore)
	if !ok || fs.Dir() != cfg.Store.Dir {
		t.Errorf("OpenStore(file) = %T, want *store.FileStore in %s", s, cfg.Store.Dir)
	}
}
