package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"hr-interviews-go/pkg/logger"
)

var allowedEnvs = map[string]struct{}{
	"development": {},
	"production":  {},
	"test":        {},
	"local":       {},
}

type Config struct {
	HTTPPort    string
	Env         string
	AutoMigrate bool
	CORSOrigins []string
	DB          DBConfig
	Cache       CacheConfig
	Events      EventsConfig
	Tracing     TracingConfig
}

type DBConfig struct {
	URL             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type CacheConfig struct {
	RedisURL    string
	EmployeeTTL time.Duration
}

type EventsConfig struct {
	KafkaBrokers      []string
	KafkaTopic        string
	KafkaWriteTimeout time.Duration
}

type TracingConfig struct {
	Endpoint    string
	ServiceName string
	Insecure    bool
}

func Load(log logger.Logger) (Config, error) {
	if err := loadDotEnv(log); err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		Env:         strings.ToLower(getEnv("ENV", "development")),
		AutoMigrate: getEnvBool("AUTO_MIGRATE", false),
		CORSOrigins: getEnvList("CORS_ORIGINS", []string{"http://localhost:5173"}),
		DB: DBConfig{
			URL:             getEnv("DATABASE_URL", getEnv("DB_DSN", "")),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Name:            getEnv("DB_NAME", "hr_interviews"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			TimeZone:        getEnv("DB_TIMEZONE", "UTC"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Cache: CacheConfig{
			RedisURL:    getEnv("REDIS_URL", ""),
			EmployeeTTL: getEnvDuration("EMPLOYEE_CACHE_TTL", time.Minute),
		},
		Events: EventsConfig{
			KafkaBrokers:      getEnvList("KAFKA_BROKERS", nil),
			KafkaTopic:        getEnv("KAFKA_TOPIC", "hr.changes"),
			KafkaWriteTimeout: getEnvDuration("KAFKA_WRITE_TIMEOUT", 5*time.Second),
		},
		Tracing: TracingConfig{
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "hr-interviews"),
			Insecure:    getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", true),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var problems []string

	if _, ok := allowedEnvs[c.Env]; !ok {
		problems = append(problems, fmt.Sprintf("ENV: must be one of development, production, test, local (got %q)", c.Env))
	}
	if c.HTTPPort == "" {
		problems = append(problems, "HTTP_PORT: must not be empty")
	}
	if c.DB.URL != "" {
		parsed, err := url.Parse(c.DB.URL)
		if err != nil || (parsed.Scheme != "postgres" && parsed.Scheme != "postgresql") || parsed.Host == "" {
			problems = append(problems, "DATABASE_URL: must be a postgres:// url")
		}
	}
	if len(c.Events.KafkaBrokers) > 0 && strings.TrimSpace(c.Events.KafkaTopic) == "" {
		problems = append(problems, "KAFKA_TOPIC: required when KAFKA_BROKERS is set")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(problems, ", "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	var items []string
	for _, part := range strings.Split(value, ",") {
		if item := strings.TrimSpace(part); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// GetDSN returns the connection string handed to gorm.
func (c DBConfig) GetDSN() string {
	if c.URL != "" {
		return c.URL
	}
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.TimeZone
}

// MigrationURL returns the database url with the given scheme, as golang-migrate
// picks its driver from the scheme.
func (c DBConfig) MigrationURL(scheme string) (string, error) {
	if c.URL != "" {
		parsed, err := url.Parse(c.URL)
		if err != nil {
			return "", fmt.Errorf("parse DATABASE_URL: %w", err)
		}
		parsed.Scheme = scheme
		return parsed.String(), nil
	}

	query := url.Values{}
	query.Set("sslmode", c.SSLMode)
	u := url.URL{
		Scheme:   scheme,
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, c.Port),
		Path:     "/" + c.Name,
		RawQuery: query.Encode(),
	}
	return u.String(), nil
}
