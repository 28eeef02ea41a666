package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"

	defaultDBName = "test"
)

type Config struct {
	Port          string `yaml:"port"`
	MongoURI      string `yaml:"mongodb_uri"`
	DBName        string `yaml:"db_name"`      // empty: taken from the MongoDB URI path
	AllowedOrigin string `yaml:"cors_origin"`  // CORS: the single origin allowed to call the API
	StoreDriver   string `yaml:"store_driver"` // mongo, postgres or memory
	DatabaseURL   string `yaml:"database_url"` // PostgreSQL DSN, postgres driver only
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		Port:          "5000",
		MongoURI:      "mongodb://localhost:27017/mydb",
		AllowedOrigin: "http://localhost:3210",
		StoreDriver:   DriverMongo,
	}
}

// Load builds the configuration from defaults, then the YAML file named by
// CONFIG_FILE (if set), then environment variables.
func Load() (*Config, error) {
	cfg := Default()

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.MongoURI = getEnv("MONGODB_URI", cfg.MongoURI)
	cfg.DBName = getEnv("DB_NAME", cfg.DBName)
	cfg.AllowedOrigin = getEnv("CORS_ORIGIN", cfg.AllowedOrigin)
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(getEnv("STORE_DRIVER", cfg.StoreDriver)))
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)

	if cfg.DBName == "" {
		cfg.DBName = DatabaseNameFromURI(cfg.MongoURI)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port must not be empty")
	}
	if c.AllowedOrigin == "" {
		return fmt.Errorf("cors_origin must not be empty")
	}
	switch c.StoreDriver {
	case DriverMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("mongodb_uri is required for the %s driver", DriverMongo)
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("database_url is required for the %s driver", DriverPostgres)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown store_driver %q", c.StoreDriver)
	}
	return nil
}

// DatabaseNameFromURI returns the database named in the URI path, or "test"
// when the URI names none.
func DatabaseNameFromURI(uri string) string {
	rest := uri
	if i := strings.Index(rest, "://"); i >= 0 {
		rest = rest[i+3:]
	}
	i := strings.Index(rest, "/")
	if i < 0 {
		return defaultDBName
	}
	name := rest[i+1:]
	if j := strings.Index(name, "?"); j >= 0 {
		name = name[:j]
	}
	if name == "" {
		return defaultDBName
	}
	return name
}

// MaskURI hides the password of a connection string for logging.
func MaskURI(uri string) string {
	scheme := strings.Index(uri, "://")
	at := strings.LastIndex(uri, "@")
	if scheme < 0 || at < scheme {
		return uri
	}
	userinfo := uri[scheme+3 : at]
	colon := strings.Index(userinfo, ":")
	if colon < 0 {
		return uri
	}
	return uri[:scheme+3] + userinfo[:colon+1] + "***" + uri[at:]
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
