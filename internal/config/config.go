package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Server   ServerConfig
	Storage  StorageConfig
	DNS      DNSConfig
	Email    EmailConfig
	Platform PlatformConfig
}

// DatabaseConfig holds PostgreSQL connection settings. URL takes precedence
// over the discrete fields when set.
type DatabaseConfig struct {
	URL      string
	Host     string
	Port     int
	User     string
	Password string //nolint:gosec // G117: DB connection config
	DBName   string
	SSLMode  string
	MaxConns int
}

// RedisConfig holds Redis connection settings for the pub/sub event bus.
type RedisConfig struct {
	Addr     string
	Password string //nolint:gosec // G117: Redis connection config
	DB       int
}

// JWTConfig holds JWT authentication settings.
type JWTConfig struct {
	Secret     string //nolint:gosec // G117: JWT signing secret config
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CORSOrigins  []string
}

// StorageConfig holds S3-compatible object storage settings for menu images.
type StorageConfig struct {
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string //nolint:gosec // G117: object storage credential config
	Endpoint  string // optional, for S3-compatible services
	BaseURL   string // public URL base for serving uploaded files
}

// DNSConfig holds the DNS provider settings used to auto-create subdomain
// records at restaurant onboarding. Left empty, record creation is skipped.
type DNSConfig struct {
	APIToken   string
	ZoneID     string
	BaseDomain string // e.g. "tably.app"; records are created as <slug>.<BaseDomain>
	Target     string // CNAME target, defaults to BaseDomain
}

// EmailConfig holds transactional email settings. An empty server token
// switches the mailer to log-only mode.
type EmailConfig struct {
	PostmarkServerToken  string
	PostmarkAccountToken string
	From                 string
}

// PlatformConfig holds settings for the platform-level surface that bypasses
// tenant resolution (restaurant creation). An empty APIKey disables it.
type PlatformConfig struct {
	APIKey string //nolint:gosec // G117: platform API key config
}

// Load reads configuration from environment variables.
// Defaults are safe for local development only.
func Load() (*Config, error) {
	dbPort, err := getEnvInt("TABLY_DB_PORT", 5432)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	dbMaxConns, err := getEnvInt("TABLY_DB_MAX_CONNS", 25)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	redisDB, err := getEnvInt("TABLY_REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	accessTTL, err := getEnvDuration("TABLY_JWT_ACCESS_TTL", 15*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	refreshTTL, err := getEnvDuration("TABLY_JWT_REFRESH_TTL", 7*24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	readTimeout, err := getEnvDuration("TABLY_SERVER_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	writeTimeout, err := getEnvDuration("TABLY_SERVER_WRITE_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	corsOrigins := getEnvList("TABLY_CORS_ORIGINS", []string{"http://localhost:5173", "http://localhost:3000"})

	cfg := &Config{
		Database: DatabaseConfig{
			URL:      getEnv("TABLY_DATABASE_URL", ""),
			Host:     getEnv("TABLY_DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("TABLY_DB_USER", "tably"),
			Password: getEnv("TABLY_DB_PASSWORD", ""),
			DBName:   getEnv("TABLY_DB_NAME", "tably_dev"),
			SSLMode:  getEnv("TABLY_DB_SSLMODE", "disable"),
			MaxConns: dbMaxConns,
		},
		Redis: RedisConfig{
			Addr:     getEnv("TABLY_REDIS_ADDR", "localhost:6379"),
			Password: getEnv("TABLY_REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		JWT: JWTConfig{
			Secret:     getEnv("TABLY_JWT_SECRET", ""),
			AccessTTL:  accessTTL,
			RefreshTTL: refreshTTL,
		},
		Server: ServerConfig{
			Addr:         getEnv("TABLY_SERVER_ADDR", ":8080"),
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
			CORSOrigins:  corsOrigins,
		},
		Storage: StorageConfig{
			Bucket:    getEnv("TABLY_S3_BUCKET", ""),
			Region:    getEnv("TABLY_S3_REGION", "us-east-1"),
			AccessKey: getEnv("TABLY_S3_ACCESS_KEY", ""),
			SecretKey: getEnv("TABLY_S3_SECRET_KEY", ""),
			Endpoint:  getEnv("TABLY_S3_ENDPOINT", ""),
			BaseURL:   getEnv("TABLY_S3_BASE_URL", ""),
		},
		DNS: DNSConfig{
			APIToken:   getEnv("TABLY_DNS_API_TOKEN", ""),
			ZoneID:     getEnv("TABLY_DNS_ZONE_ID", ""),
			BaseDomain: getEnv("TABLY_BASE_DOMAIN", ""),
			Target:     getEnv("TABLY_DNS_TARGET", ""),
		},
		Email: EmailConfig{
			PostmarkServerToken:  getEnv("TABLY_POSTMARK_SERVER_TOKEN", ""),
			PostmarkAccountToken: getEnv("TABLY_POSTMARK_ACCOUNT_TOKEN", ""),
			From:                 getEnv("TABLY_EMAIL_FROM", ""),
		},
		Platform: PlatformConfig{
			APIKey: getEnv("TABLY_PLATFORM_API_KEY", ""),
		},
	}

	if cfg.DNS.Target == "" {
		cfg.DNS.Target = cfg.DNS.BaseDomain
	}

	err = cfg.validate()
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	return cfg, nil
}

// validate checks required fields and value bounds.
func (c *Config) validate() error {
	// JWT secret is required (no insecure default).
	if c.JWT.Secret == "" {
		return errors.New("TABLY_JWT_SECRET is required")
	}
	if len(c.JWT.Secret) < 32 {
		return errors.New("TABLY_JWT_SECRET must be at least 32 characters")
	}

	if c.Database.URL == "" && c.Database.SSLMode == "disable" {
		log.Warn().Msg("TABLY_DB_SSLMODE=disable is insecure for production; set to 'require' or 'verify-full'")
	}

	// Bounds checks.
	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("TABLY_DB_PORT must be 1-65535, got %d", c.Database.Port)
	}
	if c.Database.MaxConns < 1 {
		return fmt.Errorf("TABLY_DB_MAX_CONNS must be >= 1, got %d", c.Database.MaxConns)
	}
	if c.JWT.AccessTTL <= 0 {
		return fmt.Errorf("TABLY_JWT_ACCESS_TTL must be positive, got %s", c.JWT.AccessTTL)
	}
	if c.JWT.RefreshTTL <= 0 {
		return fmt.Errorf("TABLY_JWT_REFRESH_TTL must be positive, got %s", c.JWT.RefreshTTL)
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("TABLY_SERVER_READ_TIMEOUT must be positive, got %s", c.Server.ReadTimeout)
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("TABLY_SERVER_WRITE_TIMEOUT must be positive, got %s", c.Server.WriteTimeout)
	}

	// Object storage fields come as a set.
	if c.Storage.Bucket != "" {
		if c.Storage.AccessKey == "" || c.Storage.SecretKey == "" {
			return errors.New("TABLY_S3_ACCESS_KEY and TABLY_S3_SECRET_KEY are required when TABLY_S3_BUCKET is set")
		}
		if c.Storage.BaseURL == "" {
			return errors.New("TABLY_S3_BASE_URL is required when TABLY_S3_BUCKET is set")
		}
	}

	// DNS fields come as a set.
	if c.DNS.APIToken != "" && (c.DNS.ZoneID == "" || c.DNS.BaseDomain == "") {
		return errors.New("TABLY_DNS_ZONE_ID and TABLY_BASE_DOMAIN are required when TABLY_DNS_API_TOKEN is set")
	}

	if c.Email.PostmarkServerToken != "" && c.Email.From == "" {
		return errors.New("TABLY_EMAIL_FROM is required when TABLY_POSTMARK_SERVER_TOKEN is set")
	}

	return nil
}

// DSN returns the PostgreSQL connection string.
func (c *DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as int: %w", key, v, err)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as duration: %w", key, v, err)
	}
	return d, nil
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
