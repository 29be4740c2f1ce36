package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	S3      S3Config
	Email   EmailConfig
	Log     LogConfig
	Sweep   SweepConfig
	Invoice InvoiceConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds settings for the sent-invoice document archive.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	Prefix        string `mapstructure:"prefix"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SweepConfig holds reminder sweep worker settings.
type SweepConfig struct {
	IntervalSecs int `mapstructure:"interval_secs"`
	Concurrency  int `mapstructure:"concurrency"`
}

// Interval returns the sweep tick interval.
func (s *SweepConfig) Interval() time.Duration {
	return time.Duration(s.IntervalSecs) * time.Second
}

// InvoiceConfig holds invoicing defaults.
type InvoiceConfig struct {
	NumberPrefix   string `mapstructure:"number_prefix"`
	DefaultDueDays int    `mapstructure:"default_due_days"`
	FollowUpValue  int    `mapstructure:"followup_value"`
	FollowUpUnit   string `mapstructure:"followup_unit"`
}

// Load reads configuration from environment variables with the LEKHA_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("LEKHA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "lekha")
	v.SetDefault("db.password", "lekha_secret")
	v.SetDefault("db.name", "lekha_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "lekha-invoices")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.prefix", "invoices-sent")
	v.SetDefault("s3.presign_expiry", 604800)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-south-1")
	v.SetDefault("email.from_address", "billing@lekha.local")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Sweep defaults: hourly tick, modest parallelism
	v.SetDefault("sweep.interval_secs", 3600)
	v.SetDefault("sweep.concurrency", 4)

	// Invoice defaults
	v.SetDefault("invoice.number_prefix", "INV")
	v.SetDefault("invoice.default_due_days", 15)
	v.SetDefault("invoice.followup_value", 3)
	v.SetDefault("invoice.followup_unit", "Days")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":             "LEKHA_SERVER_PORT",
		"server.read_timeout":     "LEKHA_SERVER_READ_TIMEOUT",
		"server.write_timeout":    "LEKHA_SERVER_WRITE_TIMEOUT",
		"server.environment":      "LEKHA_SERVER_ENVIRONMENT",
		"db.host":                 "LEKHA_DB_HOST",
		"db.port":                 "LEKHA_DB_PORT",
		"db.user":                 "LEKHA_DB_USER",
		"db.password":             "LEKHA_DB_PASSWORD",
		"db.name":                 "LEKHA_DB_NAME",
		"db.sslmode":              "LEKHA_DB_SSLMODE",
		"db.max_open":             "LEKHA_DB_MAX_OPEN",
		"db.max_idle":             "LEKHA_DB_MAX_IDLE",
		"s3.region":               "LEKHA_S3_REGION",
		"s3.bucket":               "LEKHA_S3_BUCKET",
		"s3.endpoint":             "LEKHA_S3_ENDPOINT",
		"s3.access_key":           "LEKHA_S3_ACCESS_KEY",
		"s3.secret_key":           "LEKHA_S3_SECRET_KEY",
		"s3.prefix":               "LEKHA_S3_PREFIX",
		"s3.presign_expiry":       "LEKHA_S3_PRESIGN_EXPIRY",
		"email.provider":          "LEKHA_EMAIL_PROVIDER",
		"email.region":            "LEKHA_EMAIL_REGION",
		"email.from_address":      "LEKHA_EMAIL_FROM_ADDRESS",
		"log.level":               "LEKHA_LOG_LEVEL",
		"log.format":              "LEKHA_LOG_FORMAT",
		"sweep.interval_secs":     "LEKHA_SWEEP_INTERVAL_SECS",
		"sweep.concurrency":       "LEKHA_SWEEP_CONCURRENCY",
		"invoice.number_prefix":   "LEKHA_INVOICE_NUMBER_PREFIX",
		"invoice.default_due_days": "LEKHA_INVOICE_DEFAULT_DUE_DAYS",
		"invoice.followup_value":  "LEKHA_INVOICE_FOLLOWUP_VALUE",
		"invoice.followup_unit":   "LEKHA_INVOICE_FOLLOWUP_UNIT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// PaaS platforms set a PORT env var. Use it if LEKHA_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("LEKHA_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		Prefix:        v.GetString("s3.prefix"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.Sweep = SweepConfig{
		IntervalSecs: v.GetInt("sweep.interval_secs"),
		Concurrency:  v.GetInt("sweep.concurrency"),
	}
	cfg.Invoice = InvoiceConfig{
		NumberPrefix:   v.GetString("invoice.number_prefix"),
		DefaultDueDays: v.GetInt("invoice.default_due_days"),
		FollowUpValue:  v.GetInt("invoice.followup_value"),
		FollowUpUnit:   v.GetString("invoice.followup_unit"),
	}

	if cfg.Sweep.IntervalSecs <= 0 {
		return nil, fmt.Errorf("sweep.interval_secs must be positive, got %d", cfg.Sweep.IntervalSecs)
	}
	if cfg.Invoice.FollowUpValue <= 0 {
		return nil, fmt.Errorf("invoice.followup_value must be positive, got %d", cfg.Invoice.FollowUpValue)
	}

	return cfg, nil
}
