package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Store   StoreConfig   `mapstructure:"store"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
}

// StoreConfig selects and configures the listing source.
type StoreConfig struct {
	Driver      string `mapstructure:"driver"`
	DatabaseURL string `mapstructure:"database_url"`

	PostgresHost     string `mapstructure:"postgres_host"`
	PostgresPort     string `mapstructure:"postgres_port"`
	PostgresUser     string `mapstructure:"postgres_user"`
	PostgresPassword string `mapstructure:"postgres_password"`
	PostgresDB       string `mapstructure:"postgres_db"`
	PostgresSSLMode  string `mapstructure:"postgres_sslmode"`

	Table          string `mapstructure:"table"`
	PageSize       int    `mapstructure:"page_size"`
	ConnectRetries int    `mapstructure:"connect_retries"`
	CSVPath        string `mapstructure:"csv_path"`
}

// CatalogConfig points at the metadata catalog. An empty path uses the
// bundled catalog.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// FilterConfig holds the outlier plausibility bounds.
type FilterConfig struct {
	MinM2         float64 `mapstructure:"min_m2"`
	MinPricePerM2 float64 `mapstructure:"min_price_per_m2"`
	MaxPricePerM2 float64 `mapstructure:"max_price_per_m2"`
}

// ServerConfig configures the HTTP adapter.
type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads the .env file, an optional config.yaml and DASHBOARD_* environment
// variables, in increasing order of precedence.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("DASHBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("store.driver", "postgres")
	v.SetDefault("store.database_url", "")
	v.SetDefault("store.postgres_host", "localhost")
	v.SetDefault("store.postgres_port", "5432")
	v.SetDefault("store.postgres_user", "dashboard")
	v.SetDefault("store.postgres_password", "dashboard")
	v.SetDefault("store.postgres_db", "properties_db")
	v.SetDefault("store.postgres_sslmode", "disable")
	v.SetDefault("store.table", "listings")
	v.SetDefault("store.page_size", 500)
	v.SetDefault("store.connect_retries", 5)
	v.SetDefault("store.csv_path", "./data/listings.csv")
	v.SetDefault("catalog.path", "")
	v.SetDefault("filter.min_m2", 15)
	v.SetDefault("filter.min_price_per_m2", 50)
	v.SetDefault("filter.max_price_per_m2", 15000)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// Validate rejects configurations the pipeline cannot run with.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case "postgres", "sqlite", "csv":
	default:
		return eris.Errorf("config: unknown store.driver %q", c.Store.Driver)
	}
	if c.Store.PageSize <= 0 {
		return eris.Errorf("config: store.page_size must be positive, got %d", c.Store.PageSize)
	}
	if c.Filter.MinPricePerM2 > c.Filter.MaxPricePerM2 {
		return eris.Errorf("config: filter.min_price_per_m2 (%v) exceeds filter.max_price_per_m2 (%v)",
			c.Filter.MinPricePerM2, c.Filter.MaxPricePerM2)
	}
	return nil
}

// DSN returns the database connection string. An explicit database_url wins;
// otherwise a PostgreSQL keyword/value string is assembled.
func (c *StoreConfig) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPassword,
		c.PostgresDB, c.PostgresSSLMode)
}
