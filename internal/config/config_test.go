package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"idletycoon/internal/domain/achievement"
	"idletycoon/internal/domain/catalog"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoad_EmptyPathGivesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.NoError(t, cfg.Validate())
	require.Equal(t, time.Second, cfg.Game.AccrualInterval())
	require.Equal(t, 10*time.Second, cfg.Game.AutosaveInterval())
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := writeFile(t, "tycoon.yaml", `
http_addr: ":9000"
storage:
  driver: sqlite
  path: /tmp/tycoon.db
game:
  variant: stand
  price_policy: reconcile
  autosave_interval_ms: 5000
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, ":9000", cfg.HTTPAddr)
	require.Equal(t, ":8081", cfg.EventsAddr)
	require.Equal(t, DriverSQLite, cfg.Storage.Driver)
	require.Equal(t, "stand", cfg.Game.Variant)
	require.Equal(t, "reconcile", cfg.Game.PricePolicy)
	require.Equal(t, 1000, cfg.Game.AccrualIntervalMs)
	require.Equal(t, 5000, cfg.Game.AutosaveIntervalMs)
	require.NoError(t, cfg.Validate())
}

func TestLoad_BadYAML(t *testing.T) {
	path := writeFile(t, "bad.yaml", "http_addr: [")
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	cfg.ApplyEnv(envMap(map[string]string{
		"TYCOON_STORAGE_DRIVER":       "postgres",
		"TYCOON_DB_DSN":               "postgres://localhost/tycoon",
		"TYCOON_VARIANT":              " stand ",
		"TYCOON_ACCRUAL_INTERVAL_MS":  "250",
		"TYCOON_AUTOSAVE_INTERVAL_MS": "not-a-number",
	}))
	require.Equal(t, DriverPostgres, cfg.Storage.Driver)
	require.Equal(t, "postgres://localhost/tycoon", cfg.Storage.DSN)
	require.Equal(t, "stand", cfg.Game.Variant)
	require.Equal(t, 250, cfg.Game.AccrualIntervalMs)
	require.Equal(t, 10000, cfg.Game.AutosaveIntervalMs)
	require.NoError(t, cfg.Validate())
}

func TestValidate_Rejections(t *testing.T) {
	cases := map[string]func(*Config){
		"unknown driver":   func(c *Config) { c.Storage.Driver = "redis" },
		"postgres no dsn":  func(c *Config) { c.Storage.Driver = DriverPostgres },
		"file no path":     func(c *Config) { c.Storage.Path = "" },
		"bad price policy": func(c *Config) { c.Game.PricePolicy = "random" },
		"zero interval":    func(c *Config) { c.Game.AccrualIntervalMs = 0 },
		"unknown variant":  func(c *Config) { c.Game.Variant = "pizza" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)
			require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestResolveVariant_Preset(t *testing.T) {
	v, err := Default().Game.ResolveVariant()
	require.NoError(t, err)
	require.Equal(t, catalog.VariantBurger, v.Name)
	require.True(t, v.RequireShopName)
}

func TestResolveVariant_CatalogFile(t *testing.T) {
	path := writeFile(t, "catalog.yaml", `
name: noodle
require_shop_name: true
default_shop_name: Noodle Hut
items:
  - id: pot
    name: Stock pot
    base_price: 300
    earn_rate: 5
  - id: cook
    name: Line cook
    base_price: 4000
    earn_rate: 60
achievements:
  - id: first_pot
    title: First pot
    condition:
      kind: owns_item
      item_id: pot
      threshold: 1
  - id: rich
    title: Rich
    condition:
      kind: money_at_least
      threshold: 50000
`)
	g := Default().Game
	g.CatalogFile = path
	v, err := g.ResolveVariant()
	require.NoError(t, err)
	require.Equal(t, "noodle", v.Name)
	require.Equal(t, "Noodle Hut", v.DefaultShopName)
	require.Len(t, v.Items, 2)
	require.Equal(t, int64(300), v.Items[0].Price)
	require.Len(t, v.Achievements, 2)
	require.Equal(t, achievement.ConditionOwnsItem, v.Achievements[0].Condition.Kind)
	require.Equal(t, achievement.ConditionMoneyAtLeast, v.Achievements[1].Condition.Kind)
}

func TestParseCatalog_RejectsUnknownItemReference(t *testing.T) {
	_, err := ParseCatalog([]byte(`
items:
  - id: pot
    base_price: 300
    earn_rate: 5
achievements:
  - id: first_wok
    title: First wok
    condition:
      kind: owns_item
      item_id: wok
      threshold: 1
`))
	require.ErrorIs(t, err, catalog.ErrInvalidCatalog)
}

func TestParseCatalog_DefaultsName(t *testing.T) {
	v, err := ParseCatalog([]byte("items:\n  - id: pot\n    base_price: 1\n    earn_rate: 1\n"))
	require.NoError(t, err)
	require.Equal(t, "custom", v.Name)
}

func TestParseCatalog_RequiredShopNameNeedsDefault(t *testing.T) {
	_, err := ParseCatalog([]byte(`
require_shop_name: true
items:
  - id: pot
    base_price: 300
    earn_rate: 5
`))
	require.ErrorIs(t, err, catalog.ErrInvalidCatalog)
}
