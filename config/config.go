package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// This function will Load the ENVIORNMENT VARIABLES from .env if GO_ENV variable is not set
func LoadENV() error {
	goEnv := os.Getenv("GO_ENV")

	if goEnv == "" || goEnv == "development" {
		err := godotenv.Load()
		if err != nil {
			return err
		}
	}

	return nil
}

// Config holds every setting the API needs at boot. It is built once and
// passed down to the store, token manager, and collaborators.
type Config struct {
	GO_ENV string
	PORT   int
	// Database
	DB_DRIVER    string // postgres or sqlite
	DB_PATH      string // sqlite file, used when DB_DRIVER=sqlite
	DB_USER_NAME string
	DB_PASSWORD  string
	DB_NAME      string
	DB_HOST      string
	DB_PORT      string
	DB_SSL_MODE  string
	// Auth
	JWT_SECRET         string
	JWT_ISSUER         string
	JWT_EXPIRY_MINUTES int
	AUTH_HEADER        string
	BCRYPT_COST        int
	// Redis
	REDIS_URL string
	// HTTP
	ALLOWED_ORIGINS     string
	RATE_LIMIT_REQUESTS int
	// Checkout
	MIDTRANS_SERVER_KEY  string
	MIDTRANS_PRODUCTION  bool
	CHECKOUT_SUCCESS_URL string
	CHECKOUT_CANCEL_URL  string
	CHECKOUT_CURRENCY    string
	// Receipts
	SCHOOL_NAME       string
	RECEIPT_LOGO_PATH string
	// DigitalOcean Spaces
	DO_SPACES_KEY      string
	DO_SPACES_SECRET   string
	DO_SPACES_BUCKET   string
	DO_SPACES_REGION   string
	DO_SPACES_ENDPOINT string
	DO_SPACES_CDN_URL  string
	// Misc
	CRON_ENABLED   bool
	LOG_LEVEL      string
	ADMIN_EMAIL    string
	ADMIN_PASSWORD string
}

var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set")

func Get() (*Config, error) {
	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "localhost"
	}

	dbPort := os.Getenv("DB_PORT")
	if dbPort == "" {
		dbPort = "5432"
	}

	sslMode := os.Getenv("DB_SSL_MODE")
	if sslMode == "" {
		sslMode = "disable"
	}

	cfg := &Config{
		GO_ENV: os.Getenv("GO_ENV"),
		PORT:   intEnv("PORT", 8080),
		// Database
		DB_DRIVER:    stringEnv("DB_DRIVER", "postgres"),
		DB_PATH:      stringEnv("DB_PATH", "darasa.db"),
		DB_USER_NAME: os.Getenv("DB_USER_NAME"),
		DB_PASSWORD:  os.Getenv("DB_PASSWORD"),
		DB_NAME:      os.Getenv("DB_NAME"),
		DB_HOST:      dbHost,
		DB_PORT:      dbPort,
		DB_SSL_MODE:  sslMode,
		// Auth
		JWT_SECRET:         os.Getenv("JWT_SECRET"),
		JWT_ISSUER:         stringEnv("JWT_ISSUER", "darasa-api"),
		JWT_EXPIRY_MINUTES: intEnv("JWT_EXPIRY_MINUTES", 45),
		AUTH_HEADER:        stringEnv("AUTH_HEADER", "jwttoken"),
		BCRYPT_COST:        intEnv("BCRYPT_COST", 12),
		// Redis
		REDIS_URL: os.Getenv("REDIS_URL"),
		// HTTP
		ALLOWED_ORIGINS:     stringEnv("ALLOWED_ORIGINS", "http://localhost:3000"),
		RATE_LIMIT_REQUESTS: intEnv("RATE_LIMIT_REQUESTS", 100),
		// Checkout
		MIDTRANS_SERVER_KEY:  os.Getenv("MIDTRANS_SERVER_KEY"),
		MIDTRANS_PRODUCTION:  boolEnv("MIDTRANS_PRODUCTION", false),
		CHECKOUT_SUCCESS_URL: stringEnv("CHECKOUT_SUCCESS_URL", "http://localhost:8080/success"),
		CHECKOUT_CANCEL_URL:  stringEnv("CHECKOUT_CANCEL_URL", "http://localhost:8080/cancel"),
		CHECKOUT_CURRENCY:    stringEnv("CHECKOUT_CURRENCY", "usd"),
		// Receipts
		SCHOOL_NAME:       stringEnv("SCHOOL_NAME", "Moringa School"),
		RECEIPT_LOGO_PATH: os.Getenv("RECEIPT_LOGO_PATH"),
		// DigitalOcean Spaces
		DO_SPACES_KEY:      os.Getenv("DO_SPACES_KEY"),
		DO_SPACES_SECRET:   os.Getenv("DO_SPACES_SECRET"),
		DO_SPACES_BUCKET:   os.Getenv("DO_SPACES_BUCKET"),
		DO_SPACES_REGION:   stringEnv("DO_SPACES_REGION", "blr1"),
		DO_SPACES_ENDPOINT: os.Getenv("DO_SPACES_ENDPOINT"),
		DO_SPACES_CDN_URL:  os.Getenv("DO_SPACES_CDN_URL"),
		// Misc
		CRON_ENABLED:   boolEnv("CRON_ENABLED", true),
		LOG_LEVEL:      stringEnv("LOG_LEVEL", "info"),
		ADMIN_EMAIL:    os.Getenv("ADMIN_EMAIL"),
		ADMIN_PASSWORD: os.Getenv("ADMIN_PASSWORD"),
	}

	return cfg, nil
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWT_SECRET) == "" {
		return ErrMissingJWTSecret
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.GO_ENV == "production"
}

// Origins splits ALLOWED_ORIGINS into a trimmed list.
func (c *Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.ALLOWED_ORIGINS, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func stringEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func boolEnv(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
