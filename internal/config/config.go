package config

import (
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// minSecretLen is the shortest HS256 secret accepted.
const minSecretLen = 32

// Config stores service settings. It is built once at startup and injected everywhere.
type Config struct {
	Port     int
	DB       DB
	Auth     Auth
	Storage  Storage
	Service  Service
	Debug    Debug
	Pprof    PprofConfig
	Kafka    Kafka
	LogLevel string
}

// DB stores Postgres connection settings.
type DB struct {
	Host        string
	Port        string
	User        string
	Pass        string
	Name        string
	AutoMigrate bool
}

// DSN builds a pgx connection string.
func (d DB) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Pass),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Auth stores token and password hashing settings.
type Auth struct {
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

// Storage stores photo evidence settings.
type Storage struct {
	UploadDir      string
	MaxUploadBytes int64
}

// Service stores business layer settings.
type Service struct {
	OperationTimeout time.Duration
}

// Debug toggles diagnostic endpoints that must stay off in production.
type Debug struct {
	Endpoints bool
}

// PprofConfig stores pprof side server settings.
type PprofConfig struct {
	Enabled bool
	Addr    string
	User    string
	Pass    string
}

// Kafka stores assignment ingestion settings. Empty brokers disable the consumer.
type Kafka struct {
	Brokers          []string
	GroupID          string
	AssignmentsTopic string
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg, err := fromEnv()
	if err != nil {
		return nil, err
	}

	fs := pflag.CommandLine
	fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	fs.StringVar(&cfg.Storage.UploadDir, "upload-dir", cfg.Storage.UploadDir, "directory for delivery photos")
	fs.BoolVar(&cfg.Debug.Endpoints, "debug-endpoints", cfg.Debug.Endpoints, "mount diagnostic endpoints")
	if err := fs.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.Auth.JWTSecret == defaultAuth.JWTSecret {
		log.Printf("warning: JWT_SECRET not set, using development secret")
	}
	return cfg, nil
}

func fromEnv() (*Config, error) {
	cfg := &Config{
		Port:     DefaultPort(),
		DB:       DefaultDB(),
		Auth:     DefaultAuth(),
		Storage:  DefaultStorage(),
		Service:  DefaultService(),
		Pprof:    DefaultPprof(),
		Kafka:    DefaultKafka(),
		LogLevel: DefaultLogLevel(),
	}

	var err error
	if cfg.Port, err = envInt("PORT", cfg.Port); err != nil {
		return nil, err
	}

	cfg.DB.Host = envString("POSTGRES_HOST", cfg.DB.Host)
	cfg.DB.Port = envString("POSTGRES_PORT", cfg.DB.Port)
	if _, err := strconv.Atoi(cfg.DB.Port); err != nil {
		return nil, fmt.Errorf("invalid POSTGRES_PORT %q: %w", cfg.DB.Port, err)
	}
	cfg.DB.User = envString("POSTGRES_USER", cfg.DB.User)
	cfg.DB.Pass = envString("POSTGRES_PASSWORD", cfg.DB.Pass)
	cfg.DB.Name = envString("POSTGRES_DB", cfg.DB.Name)
	if cfg.DB.AutoMigrate, err = envBool("DB_AUTO_MIGRATE", cfg.DB.AutoMigrate); err != nil {
		return nil, err
	}

	cfg.Auth.JWTSecret = envString("JWT_SECRET", cfg.Auth.JWTSecret)
	if cfg.Auth.TokenTTL, err = envDuration("JWT_TTL", cfg.Auth.TokenTTL); err != nil {
		return nil, err
	}
	if cfg.Auth.BcryptCost, err = envInt("BCRYPT_COST", cfg.Auth.BcryptCost); err != nil {
		return nil, err
	}

	cfg.Storage.UploadDir = envString("UPLOAD_DIR", cfg.Storage.UploadDir)
	maxUpload, err := envInt("MAX_UPLOAD_BYTES", int(cfg.Storage.MaxUploadBytes))
	if err != nil {
		return nil, err
	}
	cfg.Storage.MaxUploadBytes = int64(maxUpload)

	if cfg.Service.OperationTimeout, err = envDuration("OPERATION_TIMEOUT", cfg.Service.OperationTimeout); err != nil {
		return nil, err
	}
	if cfg.Debug.Endpoints, err = envBool("DEBUG_ENDPOINTS", cfg.Debug.Endpoints); err != nil {
		return nil, err
	}

	if cfg.Pprof.Enabled, err = envBool("PPROF_ENABLED", cfg.Pprof.Enabled); err != nil {
		return nil, err
	}
	cfg.Pprof.Addr = envString("PPROF_ADDR", cfg.Pprof.Addr)
	cfg.Pprof.User = envString("PPROF_USER", cfg.Pprof.User)
	cfg.Pprof.Pass = envString("PPROF_PASS", cfg.Pprof.Pass)

	cfg.Kafka.Brokers = envList("KAFKA_BROKERS", cfg.Kafka.Brokers)
	cfg.Kafka.GroupID = envString("KAFKA_GROUP_ID", cfg.Kafka.GroupID)
	cfg.Kafka.AssignmentsTopic = envString("KAFKA_ASSIGNMENTS_TOPIC", cfg.Kafka.AssignmentsTopic)

	cfg.LogLevel = envString("LOG_LEVEL", cfg.LogLevel)
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if len(c.Auth.JWTSecret) < minSecretLen {
		return fmt.Errorf("JWT_SECRET must be at least %d bytes", minSecretLen)
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("invalid JWT_TTL: %s", c.Auth.TokenTTL)
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return fmt.Errorf("invalid BCRYPT_COST: %d", c.Auth.BcryptCost)
	}
	if strings.TrimSpace(c.Storage.UploadDir) == "" {
		return fmt.Errorf("UPLOAD_DIR must not be empty")
	}
	if c.Storage.MaxUploadBytes <= 0 {
		return fmt.Errorf("invalid MAX_UPLOAD_BYTES: %d", c.Storage.MaxUploadBytes)
	}
	if c.Service.OperationTimeout <= 0 {
		return fmt.Errorf("invalid OPERATION_TIMEOUT: %s", c.Service.OperationTimeout)
	}
	return nil
}

func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func envBool(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return b, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

func envList(key string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
