package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	CORS    CORSConfig
	Log     LogConfig
	Booking BookingConfig
	Store   StoreConfig
	Redis   RedisConfig
	MQ      MQConfig
	Sweep   SweepConfig
	Metrics MetricsConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER"`
	Password string `envconfig:"DB_PASSWORD"`
	DBName   string `envconfig:"DB_NAME"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"10"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,X-User-Name"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

type BookingConfig struct {
	GracePeriod    time.Duration `envconfig:"BOOKING_GRACE_PERIOD" default:"1m"`
	ClockLocation  string        `envconfig:"BOOKING_CLOCK_LOCATION" default:"UTC"`
	TxMaxRetries   int           `envconfig:"BOOKING_TX_MAX_RETRIES" default:"3"`
	LockTTL        time.Duration `envconfig:"BOOKING_LOCK_TTL" default:"10s"`
	LockRetries    int           `envconfig:"BOOKING_LOCK_RETRIES" default:"20"`
	LockRetryDelay time.Duration `envconfig:"BOOKING_LOCK_RETRY_DELAY" default:"50ms"`
}

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type StoreConfig struct {
	Driver string `envconfig:"STORE_DRIVER" default:"postgres"`
}

// RedisConfig enables the cross-instance room lock when Addr is set.
type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// MQConfig enables the AMQP event publisher when URL is set.
type MQConfig struct {
	URL      string `envconfig:"MQ_URL"`
	Exchange string `envconfig:"MQ_EXCHANGE" default:"studyroom.reservations"`
	// ConnectTimeout bounds dial plus handshake; a request deadline shortens it further.
	ConnectTimeout time.Duration `envconfig:"MQ_CONNECT_TIMEOUT" default:"3s"`
	// RetryBackoff is how long publishes fail fast after a failed connection attempt.
	RetryBackoff time.Duration `envconfig:"MQ_RETRY_BACKOFF" default:"10s"`
}

type SweepConfig struct {
	Enabled  bool          `envconfig:"SWEEP_ENABLED" default:"false"`
	Interval time.Duration `envconfig:"SWEEP_INTERVAL" default:"1m"`
}

type MetricsConfig struct {
	Enabled bool `envconfig:"METRICS_ENABLED" default:"true"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c *BookingConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.ClockLocation)
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKING_CLOCK_LOCATION %q: %w", c.ClockLocation, err)
	}
	return loc, nil
}

func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreDriverPostgres:
		if c.DB.User == "" || c.DB.DBName == "" {
			return fmt.Errorf("DB_USER and DB_NAME are required when STORE_DRIVER=%s", StoreDriverPostgres)
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.Store.Driver)
	}
	if c.Booking.GracePeriod < 0 {
		return fmt.Errorf("BOOKING_GRACE_PERIOD must not be negative")
	}
	if c.Booking.TxMaxRetries < 0 {
		return fmt.Errorf("BOOKING_TX_MAX_RETRIES must not be negative")
	}
	if c.Sweep.Enabled && c.Sweep.Interval <= 0 {
		return fmt.Errorf("SWEEP_INTERVAL must be positive when SWEEP_ENABLED=true")
	}
	if _, err := c.Booking.Location(); err != nil {
		return err
	}
	return nil
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 5,
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeZone:   "UTC",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		Booking: BookingConfig{
			GracePeriod:    time.Minute,
			ClockLocation:  "UTC",
			TxMaxRetries:   3,
			LockTTL:        10 * time.Second,
			LockRetries:    20,
			LockRetryDelay: 50 * time.Millisecond,
		},
		Store: StoreConfig{Driver: StoreDriverPostgres},
		MQ:    MQConfig{Exchange: "studyroom.reservations", ConnectTimeout: 3 * time.Second, RetryBackoff: 10 * time.Second},
		Sweep: SweepConfig{Interval: time.Minute},
	}
}
