package config

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

const defaultPort = 8080

var defaultDB = DB{
	Host:        "127.0.0.1",
	Port:        "5432",
	User:        "paquexpress",
	Pass:        "paquexpress",
	Name:        "paquexpress_db",
	AutoMigrate: true,
}

var defaultAuth = Auth{
	JWTSecret:  "dev-only-secret-change-me-0123456789abcdef",
	TokenTTL:   60 * time.Minute,
	BcryptCost: bcrypt.DefaultCost,
}

var defaultStorage = Storage{
	UploadDir:      "fotos",
	MaxUploadBytes: 10 << 20,
}

var defaultService = Service{
	OperationTimeout: 3 * time.Second,
}

var defaultPprof = PprofConfig{
	Enabled: false,
	Addr:    "127.0.0.1:6060",
}

var defaultKafka = Kafka{
	GroupID:          "paquexpress-assignments",
	AssignmentsTopic: "package-assignments",
}

const defaultLogLevel = "info"

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultAuth returns the default token and hashing settings.
func DefaultAuth() Auth {
	return defaultAuth
}

// DefaultStorage returns the default photo storage settings.
func DefaultStorage() Storage {
	return defaultStorage
}

// DefaultService returns the default business layer settings.
func DefaultService() Service {
	return defaultService
}

// DefaultPprof returns the default pprof settings.
func DefaultPprof() PprofConfig {
	return defaultPprof
}

// DefaultKafka returns the default Kafka settings (no brokers).
func DefaultKafka() Kafka {
	return defaultKafka
}

// DefaultLogLevel returns the default log level.
func DefaultLogLevel() string {
	return defaultLogLevel
}
