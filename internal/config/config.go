package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

// Supported datastore drivers, selected by the DATABASE_URL scheme.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const sqlitePrefix = "sqlite:"

// Config holds all configuration for the application
type Config struct {
	DB        DatabaseConfig
	App       AppConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Logger    LoggerConfig
}

// DatabaseConfig holds configuration for the database
type DatabaseConfig struct {
	URL             string `mapstructure:"DATABASE_URL"`
	MaxOpenConns    int    `mapstructure:"DB_MAX_OPEN_CONNS"`
	MaxIdleConns    int    `mapstructure:"DB_MAX_IDLE_CONNS"`
	ConnMaxLifetime int    `mapstructure:"DB_CONN_MAX_LIFETIME"`  // seconds
	ConnMaxIdleTime int    `mapstructure:"DB_CONN_MAX_IDLE_TIME"` // seconds
	AutoMigrate     bool   `mapstructure:"DB_AUTO_MIGRATE"`
}

// AppConfig holds configuration for the application server
type AppConfig struct {
	Env                    string   `mapstructure:"APP_ENV"`
	HTTPPort               string   `mapstructure:"HTTP_PORT"`
	ShutdownTimeoutSeconds int      `mapstructure:"SHUTDOWN_TIMEOUT_SECONDS"`
	CORSAllowedOrigins     []string `mapstructure:"CORS_ALLOWED_ORIGINS"` // comma separated
	MetricsEnabled         bool     `mapstructure:"METRICS_ENABLED"`
}

// RedisConfig holds configuration for the optional Redis cache
type RedisConfig struct {
	Enabled     bool   `mapstructure:"REDIS_ENABLED"`
	Host        string `mapstructure:"REDIS_HOST"`
	Port        string `mapstructure:"REDIS_PORT"`
	Password    string `mapstructure:"REDIS_PASSWORD"`
	DB          int    `mapstructure:"REDIS_DB"`
	MaxRetries  int    `mapstructure:"REDIS_MAX_RETRIES"`
	PoolSize    int    `mapstructure:"REDIS_POOL_SIZE"`
	MinIdleConn int    `mapstructure:"REDIS_MIN_IDLE_CONN"`
	CacheTTL    int    `mapstructure:"REDIS_CACHE_TTL"` // seconds
}

// RateLimitConfig holds configuration for the request rate limiter
type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"RATE_LIMIT_ENABLED"`
	RequestsPerSecond float64 `mapstructure:"RATE_LIMIT_RPS"`
	BurstCapacity     int     `mapstructure:"RATE_LIMIT_BURST"`
}

// LoggerConfig holds configuration for the logger
type LoggerConfig struct {
	Level            string  `mapstructure:"LOG_LEVEL"`
	Format           string  `mapstructure:"LOG_FORMAT"`
	OutputPath       string  `mapstructure:"LOG_OUTPUT_PATH"`
	SlowQuerySeconds float64 `mapstructure:"LOG_SLOW_QUERY_SECONDS"`
	EnableSampling   bool    `mapstructure:"LOG_ENABLE_SAMPLING"`
	ServiceName      string  `mapstructure:"SERVICE_NAME"`
	ServiceVersion   string  `mapstructure:"SERVICE_VERSION"`
}

// LoadConfig reads app.env from path, then environment variables, which win.
// A missing app.env is not an error.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config

	config.DB.URL = strings.TrimSpace(v.GetString("DATABASE_URL"))
	config.DB.MaxOpenConns = v.GetInt("DB_MAX_OPEN_CONNS")
	config.DB.MaxIdleConns = v.GetInt("DB_MAX_IDLE_CONNS")
	config.DB.ConnMaxLifetime = v.GetInt("DB_CONN_MAX_LIFETIME")
	config.DB.ConnMaxIdleTime = v.GetInt("DB_CONN_MAX_IDLE_TIME")
	config.DB.AutoMigrate = v.GetBool("DB_AUTO_MIGRATE")

	config.App.Env = v.GetString("APP_ENV")
	config.App.HTTPPort = v.GetString("HTTP_PORT")
	config.App.ShutdownTimeoutSeconds = v.GetInt("SHUTDOWN_TIMEOUT_SECONDS")
	config.App.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))
	config.App.MetricsEnabled = v.GetBool("METRICS_ENABLED")

	config.Redis.Enabled = v.GetBool("REDIS_ENABLED")
	config.Redis.Host = v.GetString("REDIS_HOST")
	config.Redis.Port = v.GetString("REDIS_PORT")
	config.Redis.Password = v.GetString("REDIS_PASSWORD")
	config.Redis.DB = v.GetInt("REDIS_DB")
	config.Redis.MaxRetries = v.GetInt("REDIS_MAX_RETRIES")
	config.Redis.PoolSize = v.GetInt("REDIS_POOL_SIZE")
	config.Redis.MinIdleConn = v.GetInt("REDIS_MIN_IDLE_CONN")
	config.Redis.CacheTTL = v.GetInt("REDIS_CACHE_TTL")

	config.RateLimit.Enabled = v.GetBool("RATE_LIMIT_ENABLED")
	config.RateLimit.RequestsPerSecond = v.GetFloat64("RATE_LIMIT_RPS")
	config.RateLimit.BurstCapacity = v.GetInt("RATE_LIMIT_BURST")

	config.Logger.Level = v.GetString("LOG_LEVEL")
	config.Logger.Format = v.GetString("LOG_FORMAT")
	config.Logger.OutputPath = v.GetString("LOG_OUTPUT_PATH")
	config.Logger.SlowQuerySeconds = v.GetFloat64("LOG_SLOW_QUERY_SECONDS")
	config.Logger.EnableSampling = v.GetBool("LOG_ENABLE_SAMPLING")
	config.Logger.ServiceName = v.GetString("SERVICE_NAME")
	config.Logger.ServiceVersion = v.GetString("SERVICE_VERSION")

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 300)
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", 60)
	v.SetDefault("DB_AUTO_MIGRATE", true)

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("SHUTDOWN_TIMEOUT_SECONDS", 30)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("METRICS_ENABLED", true)

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_MAX_RETRIES", 3)
	v.SetDefault("REDIS_POOL_SIZE", 10)
	v.SetDefault("REDIS_MIN_IDLE_CONN", 2)
	v.SetDefault("REDIS_CACHE_TTL", 300)

	v.SetDefault("RATE_LIMIT_ENABLED", false)
	v.SetDefault("RATE_LIMIT_RPS", 10)
	v.SetDefault("RATE_LIMIT_BURST", 20)

	// Logger defaults depend on the environment
	if v.GetString("APP_ENV") == "production" {
		v.SetDefault("LOG_LEVEL", "info")
		v.SetDefault("LOG_FORMAT", "json")
		v.SetDefault("LOG_ENABLE_SAMPLING", true)
	} else {
		v.SetDefault("LOG_LEVEL", "debug")
		v.SetDefault("LOG_FORMAT", "console")
		v.SetDefault("LOG_ENABLE_SAMPLING", false)
	}
	v.SetDefault("LOG_OUTPUT_PATH", "stdout")
	v.SetDefault("LOG_SLOW_QUERY_SECONDS", 0.2)
	v.SetDefault("SERVICE_NAME", "user-api")
	v.SetDefault("SERVICE_VERSION", "1.0.0")
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Validate checks the configuration before any dependency is built.
func (c *Config) Validate() error {
	var errs []error

	if _, _, err := c.DB.Driver(); err != nil {
		errs = append(errs, err)
	}
	if c.DB.MaxOpenConns < 1 {
		errs = append(errs, fmt.Errorf("DB_MAX_OPEN_CONNS must be at least 1, got %d", c.DB.MaxOpenConns))
	}
	if c.DB.MaxIdleConns < 0 || c.DB.MaxIdleConns > c.DB.MaxOpenConns {
		errs = append(errs, fmt.Errorf("DB_MAX_IDLE_CONNS must be between 0 and DB_MAX_OPEN_CONNS, got %d", c.DB.MaxIdleConns))
	}
	if c.DB.ConnMaxLifetime < 0 || c.DB.ConnMaxIdleTime < 0 {
		errs = append(errs, errors.New("DB_CONN_MAX_LIFETIME and DB_CONN_MAX_IDLE_TIME must not be negative"))
	}

	if c.App.HTTPPort == "" {
		errs = append(errs, errors.New("HTTP_PORT is required"))
	}
	if c.App.ShutdownTimeoutSeconds < 1 {
		errs = append(errs, fmt.Errorf("SHUTDOWN_TIMEOUT_SECONDS must be at least 1, got %d", c.App.ShutdownTimeoutSeconds))
	}

	for _, origin := range c.App.CORSAllowedOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			errs = append(errs, fmt.Errorf("CORS_ALLOWED_ORIGINS: %q must be \"*\" or start with http:// or https://", origin))
		}
	}

	if c.Redis.Enabled {
		if c.Redis.Host == "" || c.Redis.Port == "" {
			errs = append(errs, errors.New("REDIS_HOST and REDIS_PORT are required when REDIS_ENABLED is set"))
		}
		if c.Redis.PoolSize < 1 {
			errs = append(errs, fmt.Errorf("REDIS_POOL_SIZE must be at least 1, got %d", c.Redis.PoolSize))
		}
		if c.Redis.CacheTTL < 1 {
			errs = append(errs, fmt.Errorf("REDIS_CACHE_TTL must be at least 1, got %d", c.Redis.CacheTTL))
		}
	}

	if c.RateLimit.Enabled {
		if !c.Redis.Enabled {
			errs = append(errs, errors.New("RATE_LIMIT_ENABLED requires REDIS_ENABLED"))
		}
		if c.RateLimit.RequestsPerSecond <= 0 {
			errs = append(errs, fmt.Errorf("RATE_LIMIT_RPS must be positive, got %g", c.RateLimit.RequestsPerSecond))
		}
		if c.RateLimit.BurstCapacity < 1 {
			errs = append(errs, fmt.Errorf("RATE_LIMIT_BURST must be at least 1, got %d", c.RateLimit.BurstCapacity))
		}
	}

	return errors.Join(errs...)
}

// Driver resolves DATABASE_URL into a driver name and the DSN handed to it.
// Postgres URLs are passed through unchanged; sqlite:<path> yields the path.
func (c *DatabaseConfig) Driver() (driver, dsn string, err error) {
	if c.URL == "" {
		return "", "", errors.New("DATABASE_URL is required")
	}

	if strings.HasPrefix(c.URL, sqlitePrefix) {
		path := strings.TrimPrefix(c.URL, sqlitePrefix)
		path = strings.TrimPrefix(path, "//")
		if path == "" {
			return "", "", errors.New("DATABASE_URL: sqlite URL needs a file path")
		}
		return DriverSQLite, path, nil
	}

	u, err := url.Parse(c.URL)
	if err != nil {
		return "", "", fmt.Errorf("DATABASE_URL is malformed: %w", err)
	}
	switch u.Scheme {
	case "postgres", "postgresql":
	default:
		return "", "", fmt.Errorf("DATABASE_URL: unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", "", errors.New("DATABASE_URL: missing host")
	}
	return DriverPostgres, c.URL, nil
}
