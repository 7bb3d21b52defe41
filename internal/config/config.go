package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port        string   `env:"PORT" envDefault:"3000"`
	ShimPort    string   `env:"SHIM_PORT" envDefault:"4000"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
	LogLevel    string   `env:"LOG_LEVEL" envDefault:"info"`

	// Database configuration
	DBType               string `env:"DB_TYPE" envDefault:"mysql"` // mysql, postgres, sqlite, sqlite-pure, sqlserver
	DBHost               string `env:"DB_HOST" envDefault:"localhost"`
	DBPort               string `env:"DB_PORT" envDefault:"3306"`
	DBDatabase           string `env:"DB_DATABASE"`
	DBAppUser            string `env:"DB_APP_USER"`
	DBAppPassword        string `env:"DB_APP_PASSWORD"`
	DBAppConnectionLimit int    `env:"DB_APP_CONNECTION_LIMIT" envDefault:"5"`
	DBLogLevel           string `env:"DB_LOG_LEVEL" envDefault:"warn"`

	// Elevated ("service role") credentials, used only for administrative user creation
	DBUser            string `env:"DB_USER"`
	DBPassword        string `env:"DB_PASSWORD"`
	DBConnectionLimit int    `env:"DB_CONNECTION_LIMIT" envDefault:"5"`

	// Authorizer configuration
	AuthzURL         string `env:"AUTHZ_URL"`
	AuthzClientID    string `env:"AUTHZ_CLIENT_ID"`
	AuthzRedirectURL string `env:"AUTHZ_REDIRECT_URL" envDefault:"http://localhost:3000/reset-password"`

	// Sessions
	SessionSecret string        `env:"SESSION_SECRET"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"12h"`
	SecureCookies bool          `env:"SECURE_COOKIES" envDefault:"false"`

	// Object storage for uploaded images
	StorageDir     string `env:"STORAGE_DIR" envDefault:"./storage"`
	StorageBaseURL string `env:"STORAGE_BASE_URL" envDefault:"/storage"`
}

// Load loads configuration from environment variables. A .env file is read first
// when ENV_FILE points at one or a .env exists in the working directory.
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the required fields
func (c *Config) Validate() error {
	if c.DBDatabase == "" {
		return fmt.Errorf("DB_DATABASE is required")
	}
	if c.DBAppUser == "" && !c.IsSQLite() {
		return fmt.Errorf("DB_APP_USER is required")
	}
	if c.AuthzURL == "" {
		return fmt.Errorf("AUTHZ_URL is required")
	}
	if c.AuthzClientID == "" {
		return fmt.Errorf("AUTHZ_CLIENT_ID is required")
	}
	if c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}
	return nil
}

// IsSQLite reports whether DB_TYPE selects one of the file based drivers
func (c *Config) IsSQLite() bool {
	return strings.HasPrefix(c.DBType, "sqlite")
}

// AdminCredentials returns the elevated credentials, falling back to the app
// credentials when no separate user is configured.
func (c *Config) AdminCredentials() (user, password string) {
	if c.DBUser == "" {
		return c.DBAppUser, c.DBAppPassword
	}
	return c.DBUser, c.DBPassword
}

func loadEnvFile() error {
	if path := os.Getenv("ENV_FILE"); path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
		return nil
	}
	if _, err := os.Stat(".env"); err == nil {
		return godotenv.Load()
	}
	return nil
}
