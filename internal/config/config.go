package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"bizcardx/internal/extraction"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	DB         DBConfig
	S3         S3Config
	Log        LogConfig
	OCR        OCRConfig
	Extraction ExtractionConfig
	Auth       AuthConfig
	CORS       CORSConfig
	Email      EmailConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// Supported database drivers.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

// DBConfig holds database connection settings. Path is only used by sqlite.
type DBConfig struct {
	Driver   string `mapstructure:"driver"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	Path     string `mapstructure:"path"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the connection string for the configured driver.
func (d *DBConfig) DSN() string {
	if d.Driver == DriverSQLite {
		return d.Path
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// MigrateURL returns the golang-migrate database URL.
func (d *DBConfig) MigrateURL() string {
	if d.Driver == DriverSQLite {
		return "sqlite://" + filepath.ToSlash(d.Path)
	}
	return d.DSN()
}

// S3Config holds AWS S3 settings for the card image archive.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// Enabled reports whether the archive is configured.
func (s *S3Config) Enabled() bool {
	return s.Bucket != ""
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// OCRConfig holds text recognition settings.
type OCRConfig struct {
	Languages      []string `mapstructure:"languages"`
	TessdataPrefix string   `mapstructure:"tessdata_prefix"`
	MaxImageSizeMB int64    `mapstructure:"max_image_size_mb"`
}

// MaxImageBytes returns the upload size limit in bytes.
func (o *OCRConfig) MaxImageBytes() int64 {
	return o.MaxImageSizeMB * 1024 * 1024
}

// ExtractionConfig holds classifier settings.
type ExtractionConfig struct {
	LeadingFields []string `mapstructure:"leading_fields"`
}

// LeadingFieldsNone disables positional tagging when used as
// extraction.leading_fields.
const LeadingFieldsNone = "none"

// LeadingTags parses LeadingFields into field tags.
func (e *ExtractionConfig) LeadingTags() ([]extraction.FieldTag, error) {
	tags := make([]extraction.FieldTag, 0, len(e.LeadingFields))
	for _, f := range e.LeadingFields {
		tag, err := extraction.ParseFieldTag(f)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// AuthConfig holds client-credentials and JWT settings.
type AuthConfig struct {
	Enabled          bool          `mapstructure:"enabled"`
	ClientID         string        `mapstructure:"client_id"`
	ClientSecretHash string        `mapstructure:"client_secret_hash"`
	JWTSecret        string        `mapstructure:"jwt_secret"`
	TokenExpiry      time.Duration `mapstructure:"token_expiry"`
	Issuer           string        `mapstructure:"issuer"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// Load reads configuration from environment variables with the BIZCARD_
// prefix. A .env file in the working directory is applied first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("BIZCARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.driver", DriverSQLite)
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "bizcard")
	v.SetDefault("db.password", "bizcard_secret")
	v.SetDefault("db.name", "bizcard_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.path", "business_card.db")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults (empty bucket disables the archive)
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// OCR defaults
	v.SetDefault("ocr.languages", "eng")
	v.SetDefault("ocr.tessdata_prefix", "")
	v.SetDefault("ocr.max_image_size_mb", 10)

	// Extraction defaults
	v.SetDefault("extraction.leading_fields", "name,designation")

	// Auth defaults
	v.SetDefault("auth.enabled", false)
	v.SetDefault("auth.client_id", "bizcard")
	v.SetDefault("auth.client_secret_hash", "")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_expiry", "1h")
	v.SetDefault("auth.issuer", "bizcardx")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:8501")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-south-1")
	v.SetDefault("email.from_address", "noreply@bizcardx.local")
	v.SetDefault("email.from_name", "BizCardX")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":               "BIZCARD_SERVER_PORT",
		"server.read_timeout":       "BIZCARD_SERVER_READ_TIMEOUT",
		"server.write_timeout":      "BIZCARD_SERVER_WRITE_TIMEOUT",
		"server.environment":        "BIZCARD_SERVER_ENVIRONMENT",
		"db.driver":                 "BIZCARD_DB_DRIVER",
		"db.host":                   "BIZCARD_DB_HOST",
		"db.port":                   "BIZCARD_DB_PORT",
		"db.user":                   "BIZCARD_DB_USER",
		"db.password":               "BIZCARD_DB_PASSWORD",
		"db.name":                   "BIZCARD_DB_NAME",
		"db.sslmode":                "BIZCARD_DB_SSLMODE",
		"db.path":                   "BIZCARD_DB_PATH",
		"db.max_open":               "BIZCARD_DB_MAX_OPEN",
		"db.max_idle":               "BIZCARD_DB_MAX_IDLE",
		"s3.region":                 "BIZCARD_S3_REGION",
		"s3.bucket":                 "BIZCARD_S3_BUCKET",
		"s3.endpoint":               "BIZCARD_S3_ENDPOINT",
		"s3.access_key":             "BIZCARD_S3_ACCESS_KEY",
		"s3.secret_key":             "BIZCARD_S3_SECRET_KEY",
		"s3.presign_expiry":         "BIZCARD_S3_PRESIGN_EXPIRY",
		"log.level":                 "BIZCARD_LOG_LEVEL",
		"log.format":                "BIZCARD_LOG_FORMAT",
		"ocr.languages":             "BIZCARD_OCR_LANGUAGES",
		"ocr.tessdata_prefix":       "BIZCARD_OCR_TESSDATA_PREFIX",
		"ocr.max_image_size_mb":     "BIZCARD_OCR_MAX_IMAGE_SIZE_MB",
		"extraction.leading_fields": "BIZCARD_EXTRACTION_LEADING_FIELDS",
		"auth.enabled":              "BIZCARD_AUTH_ENABLED",
		"auth.client_id":            "BIZCARD_AUTH_CLIENT_ID",
		"auth.client_secret_hash":   "BIZCARD_AUTH_CLIENT_SECRET_HASH",
		"auth.jwt_secret":           "BIZCARD_AUTH_JWT_SECRET",
		"auth.token_expiry":         "BIZCARD_AUTH_TOKEN_EXPIRY",
		"auth.issuer":               "BIZCARD_AUTH_ISSUER",
		"cors.allowed_origins":      "BIZCARD_CORS_ALLOWED_ORIGINS",
		"email.provider":            "BIZCARD_EMAIL_PROVIDER",
		"email.region":              "BIZCARD_EMAIL_REGION",
		"email.from_address":        "BIZCARD_EMAIL_FROM_ADDRESS",
		"email.from_name":           "BIZCARD_EMAIL_FROM_NAME",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if BIZCARD_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("BIZCARD_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Driver:   v.GetString("db.driver"),
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		Path:     v.GetString("db.path"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.OCR = OCRConfig{
		Languages:      splitList(v.GetString("ocr.languages")),
		TessdataPrefix: v.GetString("ocr.tessdata_prefix"),
		MaxImageSizeMB: v.GetInt64("ocr.max_image_size_mb"),
	}
	cfg.Extraction = ExtractionConfig{
		LeadingFields: leadingFields(v.GetString("extraction.leading_fields")),
	}
	cfg.Auth = AuthConfig{
		Enabled:          v.GetBool("auth.enabled"),
		ClientID:         v.GetString("auth.client_id"),
		ClientSecretHash: v.GetString("auth.client_secret_hash"),
		JWTSecret:        v.GetString("auth.jwt_secret"),
		TokenExpiry:      v.GetDuration("auth.token_expiry"),
		Issuer:           v.GetString("auth.issuer"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that would otherwise fail late at request time.
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("config: unsupported db driver %q", c.DB.Driver)
	}
	if c.DB.Driver == DriverSQLite && c.DB.Path == "" {
		return errors.New("config: db.path is required for sqlite")
	}
	if _, err := c.Extraction.LeadingTags(); err != nil {
		return fmt.Errorf("config: extraction.leading_fields: %w", err)
	}
	if c.OCR.MaxImageSizeMB <= 0 {
		return errors.New("config: ocr.max_image_size_mb must be positive")
	}
	if c.Auth.Enabled && (c.Auth.ClientSecretHash == "" || c.Auth.JWTSecret == "") {
		return errors.New("config: auth enabled without client_secret_hash and jwt_secret")
	}
	switch c.Email.Provider {
	case "ses", "noop", "none":
	default:
		return fmt.Errorf("config: unsupported email provider %q", c.Email.Provider)
	}
	return nil
}

// splitList parses a comma-separated list, dropping blanks.
// leadingFields parses extraction.leading_fields. Viper ignores empty
// environment values, so "none" is the way to turn positional tagging off.
func leadingFields(s string) []string {
	if strings.EqualFold(strings.TrimSpace(s), LeadingFieldsNone) {
		return []string{}
	}
	return splitList(s)
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
