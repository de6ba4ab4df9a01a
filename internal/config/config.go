// Package config loads boxwire settings from a TOML file and the environment.
//
// The file lives at $XDG_CONFIG_HOME/boxwire/config.toml (or
// ~/.config/boxwire/config.toml). A missing file is not an error; every
// setting has a default. Environment variables override the file:
//
//	BOXWIRE_STORE       store backend (file, redis, null)
//	BOXWIRE_REDIS_ADDR  redis address
//	BOXWIRE_LOG_LEVEL   log level (debug, info, warn, error)
package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/boxwire/pkg/diagram"
	"github.com/matzehuels/boxwire/pkg/errors"
	"github.com/matzehuels/boxwire/pkg/export"
	"github.com/matzehuels/boxwire/pkg/gesture"
	"github.com/matzehuels/boxwire/pkg/route"
	"github.com/matzehuels/boxwire/pkg/store"
)

// AppName names the configuration and data directories.
const AppName = "boxwire"

// Store backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNull  = "null"
)

// =============================================================================
// Config
// =============================================================================

// Config holds every boxwire setting.
type Config struct {
	Gesture GestureConfig `toml:"gesture"`
	Route   RouteConfig   `toml:"route"`
	Layout  LayoutConfig  `toml:"layout"`
	Store   StoreConfig   `toml:"store"`
	Server  ServerConfig  `toml:"server"`
	Log     LogConfig     `toml:"log"`
}

// GestureConfig configures pointer sessions.
type GestureConfig struct {
	Threshold         float64  `toml:"threshold"`
	RequiredModifiers []string `toml:"required_modifiers"`
}

// RouteConfig configures wire routing.
type RouteConfig struct {
	Stub float64 `toml:"stub"`
}

// LayoutConfig configures diagram geometry and drawing.
type LayoutConfig struct {
	BorderSpacing float64 `toml:"border_spacing"`
	HitSlop       float64 `toml:"hit_slop"`
	DotRadius     float64 `toml:"dot_radius"`
}

// StoreConfig selects and configures the diagram store.
type StoreConfig struct {
	Backend   string `toml:"backend"`
	Dir       string `toml:"dir"`
	RedisAddr string `toml:"redis_addr"`
	RedisDB   int    `toml:"redis_db"`
	Prefix    string `toml:"prefix"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Gesture: GestureConfig{Threshold: gesture.DefaultThreshold},
		Route:   RouteConfig{Stub: route.DefaultStub},
		Layout: LayoutConfig{
			BorderSpacing: diagram.DefaultBorderSpacing,
			HitSlop:       diagram.DefaultHitSlop,
			DotRadius:     1,
		},
		Store: StoreConfig{
			Backend:   BackendFile,
			RedisAddr: "localhost:6379",
			Prefix:    store.DefaultPrefix,
		},
		Server: ServerConfig{Addr: ":8080"},
		Log:    LogConfig{Level: "info"},
	}
}

// =============================================================================
// Loading
// =============================================================================

// Load reads the file at path over the defaults, then applies environment
// overrides. An empty path uses [Path]; that file may be missing.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "locate config")
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := cfg.decode(string(data)); err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", path)
		}
	case os.IsNotExist(err) && !explicit:
	default:
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes TOML over the defaults without consulting the environment.
func Parse(data string) (Config, error) {
	cfg := Default()
	if err := cfg.decode(data); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) decode(data string) error {
	md, err := toml.Decode(data, c)
	if err != nil {
		return err
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown setting %q", keys[0].String())
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Store.Backend = getEnv("BOXWIRE_STORE", c.Store.Backend)
	c.Store.RedisAddr = getEnv("BOXWIRE_REDIS_ADDR", c.Store.RedisAddr)
	c.Log.Level = getEnv("BOXWIRE_LOG_LEVEL", c.Log.Level)
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

// Validate checks value ranges and names.
func (c Config) Validate() error {
	if c.Gesture.Threshold < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "gesture.threshold must be >= 0, got %g", c.Gesture.Threshold)
	}
	if _, err := gesture.ParseModifiers(c.Gesture.RequiredModifiers); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "gesture.required_modifiers")
	}
	if c.Route.Stub < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "route.stub must be >= 0, got %g", c.Route.Stub)
	}
	if c.Layout.BorderSpacing < 0 || c.Layout.HitSlop < 0 || c.Layout.DotRadius < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "layout values must be >= 0")
	}
	switch c.Store.Backend {
	case BackendFile, BackendRedis, BackendNull:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown store backend %q", c.Store.Backend)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "log.level")
	}
	return nil
}

// =============================================================================
// Paths
// =============================================================================

// Path returns the default config file using the XDG standard
// (~/.config/boxwire/config.toml).
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// DataDir returns the default diagram directory using the XDG standard
// (~/.local/share/boxwire/diagrams).
func DataDir() (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "diagrams"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", AppName, "diagrams"), nil
}

// StoreDir returns the configured diagram directory or [DataDir].
func (c Config) StoreDir() (string, error) {
	if c.Store.Dir != "" {
		return c.Store.Dir, nil
	}
	return DataDir()
}

// =============================================================================
// Wiring
// =============================================================================

// LogLevel returns the configured level. Validate has checked it.
func (c Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// DiagramOptions returns options for [diagram.New].
func (c Config) DiagramOptions(logger *log.Logger) []diagram.Option {
	opts := []diagram.Option{
		diagram.WithBorderSpacing(c.Layout.BorderSpacing),
		diagram.WithHitSlop(c.Layout.HitSlop),
		diagram.WithStub(c.Route.Stub),
	}
	if logger != nil {
		opts = append(opts, diagram.WithLogger(logger))
	}
	return opts
}

// GestureOptions returns options for [gesture.NewSession].
func (c Config) GestureOptions(logger *log.Logger) []gesture.Option {
	mods, _ := gesture.ParseModifiers(c.Gesture.RequiredModifiers)
	opts := []gesture.Option{
		gesture.WithThreshold(c.Gesture.Threshold),
		gesture.WithRequiredModifiers(mods),
	}
	if logger != nil {
		opts = append(opts, gesture.WithLogger(logger))
	}
	return opts
}

// ExportOptions returns drawing options for package export.
func (c Config) ExportOptions() export.Options {
	return export.Options{DotRadius: c.Layout.DotRadius, Labels: true}
}

// OpenStore opens the configured backend.
func (c Config) OpenStore(ctx context.Context) (store.Store, error) {
	switch c.Store.Backend {
	case BackendNull:
		return store.NewNullStore(), nil
	case BackendRedis:
		return store.NewRedisStore(ctx, store.RedisConfig{
			Addr:   c.Store.RedisAddr,
			DB:     c.Store.RedisDB,
			Prefix: c.Store.Prefix,
		})
	default:
		dir, err := c.StoreDir()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeStoreUnavailable, err, "locate store")
		}
		return store.NewFileStore(dir)
	}
}
