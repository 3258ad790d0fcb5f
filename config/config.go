package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

const (
	// StoreBackendSQLite keeps employee and login records in an embedded
	// SQLite database. This is the default.
	StoreBackendSQLite = "sqlite"
	// StoreBackendMongo keeps them in MongoDB, with identifiers issued by
	// a counter document.
	StoreBackendMongo = "mongo"
)

const (
	DefaultUploadsSubDir = "uploads"

	defaultTokenTTLMinutes = 60
)

type Config struct {
	// HTTP listen port
	Port string

	// which persistence backend to use: sqlite or mongo
	StoreBackend string

	// sqlite database path (sqlite backend only)
	DatabasePath string

	// mongo connection settings (mongo backend only)
	MongoURI      string
	MongoDatabase string

	// absolute path to the employee image upload directory
	UploadsPath string

	// auth settings
	JWTSecret       string
	TokenTTLMinutes int
	BcryptCost      int
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvIntOrDefault(envVar string, defaultVal int) int {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val <= 0 {
		log.Printf("Warning: Invalid %s '%s'. Using default %d. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func LoadConfig() (Config, error) {
	backend := getEnvOrDefault("STORE_BACKEND", StoreBackendSQLite)
	if backend != StoreBackendSQLite && backend != StoreBackendMongo {
		return Config{}, fmt.Errorf("invalid STORE_BACKEND '%s': must be '%s' or '%s'", backend, StoreBackendSQLite, StoreBackendMongo)
	}

	uploads := getEnvOrDefault("UPLOADS_PATH", filepath.Join(".", DefaultUploadsSubDir))
	absUploads, err := filepath.Abs(uploads)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get absolute path for uploads directory '%s': %w", uploads, err)
	}

	secret := getEnvOrDefault("JWT_SECRET", "your_secret_key")
	if secret == "your_secret_key" {
		log.Printf("Warning: JWT_SECRET not set, using insecure default")
	}

	cfg := Config{
		Port:            getEnvOrDefault("PORT", "3000"),
		StoreBackend:    backend,
		DatabasePath:    getEnvOrDefault("DATABASE_PATH", "employees.db"),
		MongoURI:        getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:   getEnvOrDefault("MONGO_DATABASE", "employeeDB"),
		UploadsPath:     absUploads,
		JWTSecret:       secret,
		TokenTTLMinutes: getEnvIntOrDefault("JWT_TTL_MINUTES", defaultTokenTTLMinutes),
		BcryptCost:      getEnvIntOrDefault("BCRYPT_COST", bcrypt.DefaultCost),
	}

	return cfg, nil
}
