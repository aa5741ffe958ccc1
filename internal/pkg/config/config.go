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
	Server   ServerConfig
	DB       DBConfig
	CORS     CORSConfig
	Log      LogConfig
	JWT      JWTConfig
	Match    MatchConfig
	Exchange ExchangeConfig
}

type ServerConfig struct {
	Port            string        `envconfig:"PORT" required:"true"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
}

// Enabled=false keeps the audit journal in memory (local development, unit tests).
type DBConfig struct {
	Enabled  bool   `envconfig:"DB_ENABLED" default:"true"`
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER"`
	Password string `envconfig:"DB_PASSWORD"`
	DBName   string `envconfig:"DB_NAME"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Idempotency-Key,X-Request-ID"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Idempotent-Replayed,X-Request-ID"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

// Tokens are issued by the account service; this service only validates them.
type JWTConfig struct {
	Secret string `envconfig:"JWT_SECRET" required:"true"`
	Issuer string `envconfig:"JWT_ISSUER" default:""`
	// lifetime of tokens minted by cmd/devtoken
	TokenTTL time.Duration `envconfig:"JWT_TOKEN_TTL" default:"1h"`
}

// Weights are defaults, not discovered requirements; operators tune them per deployment.
type MatchConfig struct {
	NameWeight        float64 `envconfig:"MATCH_WEIGHT_NAME" default:"0.5"`
	DosageWeight      float64 `envconfig:"MATCH_WEIGHT_DOSAGE" default:"0.15"`
	DistanceWeight    float64 `envconfig:"MATCH_WEIGHT_DISTANCE" default:"0.2"`
	QuantityWeight    float64 `envconfig:"MATCH_WEIGHT_QUANTITY" default:"0.1"`
	DosageTolerance   float64 `envconfig:"MATCH_DOSAGE_TOLERANCE" default:"0.05"`
	DistanceHorizonKm float64 `envconfig:"MATCH_DISTANCE_HORIZON_KM" default:"100"`
	DefaultLimit      int     `envconfig:"MATCH_DEFAULT_LIMIT" default:"50"`
}

type ExchangeConfig struct {
	CompletionWindow time.Duration `envconfig:"EXCHANGE_COMPLETION_WINDOW" default:"168h"`
	SweepInterval    time.Duration `envconfig:"EXCHANGE_SWEEP_INTERVAL" default:"1m"`
	IdempotencyTTL   time.Duration `envconfig:"EXCHANGE_IDEMPOTENCY_TTL" default:"24h"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if cfg.DB.Enabled && (cfg.DB.User == "" || cfg.DB.DBName == "") {
		return Config{}, fmt.Errorf("DB_USER and DB_NAME are required when DB_ENABLED=true")
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:            "8889", // Test port
			ShutdownTimeout: time.Second,
		},
		DB: DBConfig{
			Enabled:  false,
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
			Level:          "error", // Error level only for tests
			TimeZone:       "UTC",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			TokenTTL: time.Hour,
		},
		Match: MatchConfig{
			NameWeight:        0.5,
			DosageWeight:      0.15,
			DistanceWeight:    0.2,
			QuantityWeight:    0.1,
			DosageTolerance:   0.05,
			DistanceHorizonKm: 100,
			DefaultLimit:      50,
		},
		Exchange: ExchangeConfig{
			CompletionWindow: 7 * 24 * time.Hour,
			SweepInterval:    time.Minute,
			IdempotencyTTL:   24 * time.Hour,
		},
	}
}
