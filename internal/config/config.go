package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"idletycoon/internal/app/savestate"
	"idletycoon/internal/domain/catalog"
	"idletycoon/internal/domain/economy"
)

var ErrInvalidConfig = errors.New("invalid config")

const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	HTTPAddr   string  `yaml:"http_addr"`
	EventsAddr string  `yaml:"events_addr"`
	Storage    Storage `yaml:"storage"`
	Game       Game    `yaml:"game"`
}

type Storage struct {
	Driver        string `yaml:"driver"`
	Path          string `yaml:"path"`
	DSN           string `yaml:"dsn"`
	MigrationsDir string `yaml:"migrations_dir"`
}

type Game struct {
	Variant            string `yaml:"variant"`
	CatalogFile        string `yaml:"catalog_file"`
	PricePolicy        string `yaml:"price_policy"`
	KeyPrefix          string `yaml:"key_prefix"`
	AccrualIntervalMs  int    `yaml:"accrual_interval_ms"`
	AutosaveIntervalMs int    `yaml:"autosave_interval_ms"`
}

func Default() Config {
	return Config{
		HTTPAddr:   ":8080",
		EventsAddr: ":8081",
		Storage: Storage{
			Driver:        DriverFile,
			Path:          "./data",
			MigrationsDir: "./migrations/postgres",
		},
		Game: Game{
			Variant:            catalog.VariantBurger,
			PricePolicy:        string(savestate.PricePersisted),
			KeyPrefix:          savestate.DefaultKeyPrefix,
			AccrualIntervalMs:  int(economy.AccrualInterval / time.Millisecond),
			AutosaveIntervalMs: int(economy.AutosaveInterval / time.Millisecond),
		},
	}
}

// Load reads path on top of the defaults. An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("config yaml: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from TYCOON_* variables. getenv is os.Getenv
// outside tests.
func (c *Config) ApplyEnv(getenv func(string) string) {
	str := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	str("TYCOON_HTTP_ADDR", &c.HTTPAddr)
	str("TYCOON_EVENTS_ADDR", &c.EventsAddr)
	str("TYCOON_STORAGE_DRIVER", &c.Storage.Driver)
	str("TYCOON_STORAGE_PATH", &c.Storage.Path)
	str("TYCOON_DB_DSN", &c.Storage.DSN)
	str("TYCOON_MIGRATIONS_DIR", &c.Storage.MigrationsDir)
	str("TYCOON_VARIANT", &c.Game.Variant)
	str("TYCOON_CATALOG_FILE", &c.Game.CatalogFile)
	str("TYCOON_PRICE_POLICY", &c.Game.PricePolicy)
	str("TYCOON_KEY_PREFIX", &c.Game.KeyPrefix)
	c.Game.AccrualIntervalMs = intEnv(getenv, "TYCOON_ACCRUAL_INTERVAL_MS", c.Game.AccrualIntervalMs)
	c.Game.AutosaveIntervalMs = intEnv(getenv, "TYCOON_AUTOSAVE_INTERVAL_MS", c.Game.AutosaveIntervalMs)
}

func (c Config) Validate() error {
	switch c.Storage.Driver {
	case DriverMemory:
	case DriverFile, DriverSQLite:
		if strings.TrimSpace(c.Storage.Path) == "" {
			return fmt.Errorf("%w: storage.path is required for driver %q", ErrInvalidConfig, c.Storage.Driver)
		}
	case DriverPostgres:
		if strings.TrimSpace(c.Storage.DSN) == "" {
			return fmt.Errorf("%w: storage.dsn is required for driver %q", ErrInvalidConfig, c.Storage.Driver)
		}
	default:
		return fmt.Errorf("%w: unknown storage driver %q", ErrInvalidConfig, c.Storage.Driver)
	}
	switch savestate.PricePolicy(c.Game.PricePolicy) {
	case savestate.PricePersisted, savestate.PriceReconcile:
	default:
		return fmt.Errorf("%w: unknown price policy %q", ErrInvalidConfig, c.Game.PricePolicy)
	}
	if c.Game.AccrualIntervalMs <= 0 || c.Game.AutosaveIntervalMs <= 0 {
		return fmt.Errorf("%w: clock intervals must be positive", ErrInvalidConfig)
	}
	if c.Game.CatalogFile == "" {
		if _, err := catalog.Preset(c.Game.Variant); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	return nil
}

func (g Game) AccrualInterval() time.Duration {
	return time.Duration(g.AccrualIntervalMs) * time.Millisecond
}

func (g Game) AutosaveInterval() time.Duration {
	return time.Duration(g.AutosaveIntervalMs) * time.Millisecond
}

// ResolveVariant returns the catalog file's variant when one is configured,
// the named preset otherwise.
func (g Game) ResolveVariant() (catalog.Variant, error) {
	if strings.TrimSpace(g.CatalogFile) != "" {
		return LoadCatalog(g.CatalogFile)
	}
	return catalog.Preset(g.Variant)
}

func intEnv(getenv func(string) string, key string, fallback int) int {
	v := strings.TrimSpace(getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
