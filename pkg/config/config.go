package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

const (
	EnvPrefix = "STOREFRONT"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv       = "STOREFRONT_APP_ENV"
	EnvPort         = "STOREFRONT_APP_PORT"
	EnvStoreDriver  = "STOREFRONT_STORE_DRIVER"
	EnvBadgerPath   = "STOREFRONT_STORE_BADGER_PATH"
	EnvRedisURL     = "STOREFRONT_REDIS_URL"
	EnvDBDSN        = "STOREFRONT_DB_DSN"
	EnvDBDriver     = "STOREFRONT_DB_DRIVER"
	EnvCatalogPath  = "STOREFRONT_CATALOG_PATH"
	EnvTaxRate      = "STOREFRONT_CHECKOUT_TAX_RATE"
	EnvExpressFee   = "STOREFRONT_CHECKOUT_EXPRESS_FEE"
	EnvPaymentDelay = "STOREFRONT_CHECKOUT_PAYMENT_DELAY"
)

// Store drivers backing the durable cart slot.
const (
	StoreDriverMemory = "memory"
	StoreDriverRedis  = "redis"
	StoreDriverSQL    = "sql"
	StoreDriverBadger = "badger"
)

type Config struct {
	App      AppConfig
	Store    StoreConfig
	Redis    RedisConfig
	DB       DBConfig
	Catalog  CatalogConfig
	Checkout CheckoutConfig
	CORS     CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate enforces the settings each store driver depends on.
func (c *Config) Validate() error {
	switch c.Store.Normalized() {
	case StoreDriverMemory:
	case StoreDriverRedis:
		if c.Redis.URL == "" && c.Redis.Address == "" {
			return fmt.Errorf("%s or STOREFRONT_REDIS_ADDR is required for the redis store", EnvRedisURL)
		}
	case StoreDriverSQL:
		if c.DB.DSN == "" {
			return fmt.Errorf("%s is required for the sql store", EnvDBDSN)
		}
		switch strings.ToLower(c.DB.Driver) {
		case "sqlite", "postgres":
		default:
			return fmt.Errorf("unsupported %s %q", EnvDBDriver, c.DB.Driver)
		}
	case StoreDriverBadger:
		if c.Store.BadgerPath == "" {
			return fmt.Errorf("%s is required for the badger store", EnvBadgerPath)
		}
	default:
		return fmt.Errorf("unsupported %s %q", EnvStoreDriver, c.Store.Driver)
	}

	if c.Checkout.TaxRate < 0 || c.Checkout.TaxRate >= 1 {
		return fmt.Errorf("%s must be within [0, 1)", EnvTaxRate)
	}
	if c.Checkout.ExpressFee < 0 {
		return fmt.Errorf("%s must be non-negative", EnvExpressFee)
	}
	if c.Checkout.PaymentDelay < 0 {
		return fmt.Errorf("%s must be non-negative", EnvPaymentDelay)
	}
	return nil
}

type AppConfig struct {
	Env          string `envconfig:"STOREFRONT_APP_ENV" required:"true"`
	Port         string `envconfig:"STOREFRONT_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type StoreConfig struct {
	Driver     string        `envconfig:"STOREFRONT_STORE_DRIVER" default:"memory"`
	CartKey    string        `envconfig:"STOREFRONT_STORE_CART_KEY" default:"cart"`
	BadgerPath string        `envconfig:"STOREFRONT_STORE_BADGER_PATH"`
	SlotTTL    time.Duration `envconfig:"STOREFRONT_STORE_SLOT_TTL" default:"720h"`
}

// Normalized returns the lower-cased driver name, defaulting to memory.
func (s StoreConfig) Normalized() string {
	driver := strings.ToLower(strings.TrimSpace(s.Driver))
	if driver == "" {
		return StoreDriverMemory
	}
	return driver
}

type RedisConfig struct {
	URL          string        `envconfig:"STOREFRONT_REDIS_URL"`
	Address      string        `envconfig:"STOREFRONT_REDIS_ADDR"`
	Password     string        `envconfig:"STOREFRONT_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOREFRONT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOREFRONT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOREFRONT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOREFRONT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type DBConfig struct {
	DSN         string `envconfig:"STOREFRONT_DB_DSN"`
	Driver      string `envconfig:"STOREFRONT_DB_DRIVER" default:"sqlite"`
	AutoMigrate bool   `envconfig:"STOREFRONT_DB_AUTO_MIGRATE" default:"false"`

	MaxOpenConns    int           `envconfig:"STOREFRONT_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"STOREFRONT_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type CatalogConfig struct {
	Path          string `envconfig:"STOREFRONT_CATALOG_PATH"`
	MaxPrice      int64  `envconfig:"STOREFRONT_CATALOG_MAX_PRICE" default:"3000000"`
	RelatedLimit  int    `envconfig:"STOREFRONT_CATALOG_RELATED_LIMIT" default:"4"`
	FeaturedLimit int    `envconfig:"STOREFRONT_CATALOG_FEATURED_LIMIT" default:"0"`
}

type CheckoutConfig struct {
	TaxRate           float64       `envconfig:"STOREFRONT_CHECKOUT_TAX_RATE" default:"0.18"`
	ExpressFee        int64         `envconfig:"STOREFRONT_CHECKOUT_EXPRESS_FEE" default:"5000"`
	PaymentDelay      time.Duration `envconfig:"STOREFRONT_CHECKOUT_PAYMENT_DELAY" default:"2s"`
	RedirectCountdown time.Duration `envconfig:"STOREFRONT_CHECKOUT_REDIRECT_COUNTDOWN" default:"10s"`
}

// Tax returns the configured tax rate as a decimal.
func (c CheckoutConfig) Tax() decimal.Decimal {
	return decimal.NewFromFloat(c.TaxRate)
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"STOREFRONT_CORS_ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:8080"`
}
