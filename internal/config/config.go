// internal/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the storefront
type Config struct {
	App       AppConfig
	Server    ServerConfig
	Redis     RedisConfig
	Database  DatabaseConfig
	Commerce  CommerceConfig
	Shop      ShopConfig
	Auth      AuthConfig
	Cart      CartConfig
	Menu      MenuConfig
	Feed      FeedConfig
	State     StateConfig
	Security  SecurityConfig
	Logging   LoggingConfig
	Telemetry TelemetryConfig
	Receipt   ReceiptConfig
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string `env:"APP_NAME" envDefault:"Pizza Wale Storefront"`
	Version     string `env:"APP_VERSION" envDefault:"1.0.0"`
	Environment string `env:"APP_ENV" envDefault:"development"`
	Debug       bool   `env:"APP_DEBUG" envDefault:"true"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port           string        `env:"APP_PORT" envDefault:"8080"`
	ReadTimeout    time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout   time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout    time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"60s"`
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" envDefault:"30s"`
}

// RedisConfig contains Redis configuration
type RedisConfig struct {
	Host         string `env:"REDIS_HOST" envDefault:"localhost"`
	Port         string `env:"REDIS_PORT" envDefault:"6379"`
	Password     string `env:"REDIS_PASSWORD"`
	DB           int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize     int    `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int    `env:"REDIS_MIN_IDLE_CONNS" envDefault:"5"`
}

// DatabaseConfig contains database connection configuration. It is only
// used when State.Driver is "postgres".
type DatabaseConfig struct {
	Host         string        `env:"DB_HOST" envDefault:"localhost"`
	Port         string        `env:"DB_PORT" envDefault:"5432"`
	Name         string        `env:"DB_NAME" envDefault:"storefront_db"`
	User         string        `env:"DB_USER" envDefault:"storefront_user"`
	Password     string        `env:"DB_PASSWORD" envDefault:"storefront_password"`
	SSLMode      string        `env:"DB_SSL_MODE" envDefault:"disable"`
	MaxOpenConns int           `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	MaxLifetime  time.Duration `env:"DB_MAX_LIFETIME" envDefault:"300s"`
}

// CommerceConfig points at the remote commerce API
type CommerceConfig struct {
	BaseURL string        `env:"COMMERCE_API_URL" envDefault:"http://localhost:5000"`
	Timeout time.Duration `env:"COMMERCE_TIMEOUT" envDefault:"15s"`
}

// ShopConfig holds the single storefront identifier
type ShopConfig struct {
	ID   string `env:"SHOP_ID" envDefault:"630f4828-f130-4e8d-9038-c9e3361d43fc"`
	Name string `env:"SHOP_NAME" envDefault:"Pizza Wale Store"`
}

// AuthConfig contains phone login configuration
type AuthConfig struct {
	CountryCode string `env:"PHONE_COUNTRY_CODE" envDefault:"+91"`
	LoginPath   string `env:"LOGIN_PATH" envDefault:"/login"`
}

// CartConfig contains cart behavior configuration
type CartConfig struct {
	// LineIdentity is "canonical" (option order ignored) or "ordered"
	LineIdentity string `env:"CART_LINE_IDENTITY" envDefault:"canonical"`
}

// MenuConfig contains catalog caching configuration
type MenuConfig struct {
	FreshFor    time.Duration `env:"MENU_FRESH_FOR" envDefault:"1h"`
	RetainFor   time.Duration `env:"MENU_RETAIN_FOR" envDefault:"24h"`
	CachePrefix string        `env:"MENU_CACHE_PREFIX" envDefault:"storefront:menu"`
}

// FeedConfig contains order status feed configuration
type FeedConfig struct {
	Reconnect        bool          `env:"FEED_RECONNECT" envDefault:"true"`
	InitialInterval  time.Duration `env:"FEED_RECONNECT_INITIAL" envDefault:"500ms"`
	MaxInterval      time.Duration `env:"FEED_RECONNECT_MAX" envDefault:"30s"`
	ChannelPrefix    string        `env:"FEED_CHANNEL_PREFIX" envDefault:"order-status"`
	LiveWriteTimeout time.Duration `env:"FEED_LIVE_WRITE_TIMEOUT" envDefault:"10s"`
}

// StateConfig selects where session state (cart, identity) is persisted
type StateConfig struct {
	Driver    string        `env:"STATE_DRIVER" envDefault:"redis"`
	KeyPrefix string        `env:"STATE_KEY_PREFIX" envDefault:"storefront"`
	TTL       time.Duration `env:"STATE_TTL" envDefault:"720h"`
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	RateLimitPerMinute int      `env:"RATE_LIMIT_PER_MINUTE" envDefault:"120"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:3001"`
	CORSAllowedMethods []string `env:"CORS_ALLOWED_METHODS" envSeparator:"," envDefault:"GET,POST,PUT,DELETE,OPTIONS"`
	CORSAllowedHeaders []string `env:"CORS_ALLOWED_HEADERS" envSeparator:"," envDefault:"Origin,Content-Type,Accept,Authorization"`
	SessionCookie      string   `env:"SESSION_COOKIE" envDefault:"session_id"`
	SecureCookies      bool     `env:"SECURE_COOKIES" envDefault:"false"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"debug"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// TelemetryConfig contains tracing configuration. Tracing is disabled when
// no endpoint is set.
type TelemetryConfig struct {
	OTLPEndpoint string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName  string  `env:"OTEL_SERVICE_NAME" envDefault:"pizza-wale-storefront"`
	SampleRatio  float64 `env:"OTEL_SAMPLE_RATIO" envDefault:"1"`
}

// ReceiptConfig contains order receipt rendering configuration
type ReceiptConfig struct {
	CompanyName    string `env:"RECEIPT_COMPANY_NAME" envDefault:"Pizza Wale"`
	CompanyAddress string `env:"RECEIPT_COMPANY_ADDRESS"`
	CompanyPhone   string `env:"RECEIPT_COMPANY_PHONE"`
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	return Parse()
}

// Parse builds the configuration from the current environment only
func Parse() (*Config, error) {
	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	config.Cart.LineIdentity = strings.ToLower(config.Cart.LineIdentity)
	config.State.Driver = strings.ToLower(config.State.Driver)

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Commerce.BaseURL == "" {
		return fmt.Errorf("COMMERCE_API_URL is required")
	}
	if c.Shop.ID == "" {
		return fmt.Errorf("SHOP_ID is required")
	}
	if c.Server.Port == "" {
		return fmt.Errorf("APP_PORT is required")
	}
	if c.Redis.Host == "" {
		return fmt.Errorf("REDIS_HOST is required")
	}

	switch c.State.Driver {
	case "redis":
	case "postgres":
		if c.Database.Host == "" || c.Database.Name == "" || c.Database.User == "" {
			return fmt.Errorf("DB_HOST, DB_NAME and DB_USER are required for the postgres state driver")
		}
	default:
		return fmt.Errorf("unsupported STATE_DRIVER: %s", c.State.Driver)
	}

	switch c.Cart.LineIdentity {
	case "canonical", "ordered":
	default:
		return fmt.Errorf("unsupported CART_LINE_IDENTITY: %s", c.Cart.LineIdentity)
	}

	if c.Menu.RetainFor < c.Menu.FreshFor {
		return fmt.Errorf("MENU_RETAIN_FOR must not be shorter than MENU_FRESH_FOR")
	}

	if c.Feed.InitialInterval <= 0 || c.Feed.MaxInterval < c.Feed.InitialInterval {
		return fmt.Errorf("invalid feed reconnect intervals")
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}
