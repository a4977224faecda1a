package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "listings", cfg.Store.Table)
	assert.Equal(t, 500, cfg.Store.PageSize)
	assert.Equal(t, 15.0, cfg.Filter.MinM2)
	assert.Equal(t, 50.0, cfg.Filter.MinPricePerM2)
	assert.Equal(t, 15000.0, cfg.Filter.MaxPricePerM2)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Catalog.Path)
}

func TestLoadEnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DASHBOARD_STORE_DRIVER", "sqlite")
	t.Setenv("DASHBOARD_STORE_DATABASE_URL", "file:listings.db")
	t.Setenv("DASHBOARD_FILTER_MIN_M2", "20")
	t.Setenv("DASHBOARD_LOG_FORMAT", "console")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "file:listings.db", cfg.Store.DSN())
	assert.Equal(t, 20.0, cfg.Filter.MinM2)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DASHBOARD_STORE_DRIVER", "dynamodb")

	_, err := Load()
	assert.ErrorContains(t, err, "unknown store.driver")
}

func TestValidateThresholds(t *testing.T) {
	cfg := &Config{
		Store:  StoreConfig{Driver: "csv", PageSize: 10},
		Filter: FilterConfig{MinPricePerM2: 100, MaxPricePerM2: 50},
	}
	assert.Error(t, cfg.Validate())

	cfg.Filter.MaxPricePerM2 = 100
	assert.NoError(t, cfg.Validate())
}

func TestDSN(t *testing.T) {
	s := StoreConfig{
		PostgresHost:     "db",
		PostgresPort:     "5432",
		PostgresUser:     "u",
		PostgresPassword: "p",
		PostgresDB:       "properties",
		PostgresSSLMode:  "disable",
	}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=properties sslmode=disable", s.DSN())
}
