// Package config loads process configuration from the environment once at startup.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"golang.org/x/crypto/bcrypt"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMongo    = "mongo"
)

type Config struct {
	Port     int
	Database Database
	Auth     Auth
	Cache    Cache
	CORS     CORS
}

// Database selects and addresses the backing store.
type Database struct {
	Driver        string
	DSN           string
	MongoURI      string
	MongoDatabase string
}

// Auth holds the signing secret and hashing cost. Read-only after Load.
type Auth struct {
	TokenSecret []byte
	TokenTTL    time.Duration
	Issuer      string
	BcryptCost  int
}

// Cache configures the optional Redis profile cache. An empty Addr disables it.
type Cache struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	ProfileTTL    time.Duration
}

type CORS struct {
	AllowedOrigins []string
}

// Load reads the environment (and a .env file when present).
func Load() (*Config, error) {
	cfg := &Config{
		Port: getEnvAsInt("PORT", 8080),
		Database: Database{
			Driver:        strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
			DSN:           getEnv("DB_DSN", ""),
			MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			MongoDatabase: getEnv("MONGO_DATABASE", "todo_db"),
		},
		Auth: Auth{
			TokenSecret: []byte(os.Getenv("TOKEN_SECRET")),
			TokenTTL:    getEnvAsDuration("TOKEN_TTL", 30*time.Minute),
			Issuer:      getEnv("TOKEN_ISSUER", "todo-backend"),
			BcryptCost:  getEnvAsInt("BCRYPT_COST", bcrypt.DefaultCost),
		},
		Cache: Cache{
			RedisAddr:     getEnv("REDIS_ADDR", ""),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       getEnvAsInt("REDIS_DB", 0),
			ProfileTTL:    getEnvAsDuration("PROFILE_CACHE_TTL", 5*time.Minute),
		},
		CORS: CORS{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "https://*,http://*")),
		},
	}

	if cfg.Database.DSN == "" && cfg.Database.Driver == DriverPostgres {
		cfg.Database.DSN = postgresDSNFromParts()
	}
	if cfg.Database.DSN == "" && cfg.Database.Driver == DriverSQLite {
		cfg.Database.DSN = "todo.db"
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite, DriverMongo:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if len(c.Auth.TokenSecret) == 0 {
		return errors.New("TOKEN_SECRET must be set")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.Auth.TokenTTL)
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		log.Printf("Warning: BCRYPT_COST %d out of range [%d,%d]. Using default %d", c.Auth.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost, bcrypt.DefaultCost)
		c.Auth.BcryptCost = bcrypt.DefaultCost
	}
	return nil
}

// postgresDSNFromParts builds a DSN in the key=value form gorm's postgres driver accepts.
func postgresDSNFromParts() string {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_USERNAME", "postgres"),
		getEnv("DB_PASSWORD", ""),
		getEnv("DB_DATABASE", "todo"),
		getEnv("DB_PORT", "5432"),
	)
	if schema := os.Getenv("DB_SCHEMA"); schema != "" {
		dsn += " search_path=" + schema
	}
	return dsn
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: Invalid %s environment variable '%s'. Using default %d. Error: %v", key, value, defaultValue, err)
		return defaultValue
	}
	return intValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Warning: Invalid %s environment variable '%s'. Using default %s. Error: %v", key, value, defaultValue, err)
		return defaultValue
	}
	return duration
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
