package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/aussiebroadwan/accounts/internal/accounts/service"
	"github.com/aussiebroadwan/accounts/internal/email"
	"github.com/aussiebroadwan/accounts/internal/email/smtp"
	"github.com/aussiebroadwan/accounts/pkg/jwtx"
)

// Database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Mail transports.
const (
	TransportLog  = "log"
	TransportSMTP = "smtp"
	TransportSES  = "ses"
)

type Config struct {
	Issuer    string        // Optional: issuer claim for tokens (default: accounts)
	Algorithm string        // Optional: token signing algorithm (EdDSA, ES256) (default: EdDSA)
	NumKeys   int           // Optional: number of signing keys to generate (default: 3, min: 1, max: 10)
	TokenTTL  time.Duration // Optional: lifetime of login tokens (default: 24h)

	DatabaseDriver string // Optional: sqlite or postgres (default: sqlite)
	DatabaseFile   string // Optional: SQLite database file (default: ./accounts.db)
	DatabaseURL    string // Required for postgres: connection URL
	PepperFile     string // Optional: file holding the password pepper (default: ./pepper)

	VerificationCodeTTL time.Duration // Optional: verification link lifetime (default: 24h)
	ResetCodeTTL        time.Duration // Optional: reset link lifetime (default: 1h)
	AllowedOrigins      []string      // Optional: frontends emailed links may point at (default: any)

	MailTransport string // Optional: log, smtp or ses (default: log)
	MailFrom      string // Optional: sender address (default: noreply@localhost)
	SMTP          smtp.Config
	SESRegion     string // Required for ses

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Expired code cleanup interval (default: 1h)
}

// LoadConfig reads the configuration from the environment. When
// ACCOUNTS_ENV_FILE names a dotenv file, it and its ".secret" sibling are
// loaded first; variables already set in the environment take precedence.
func LoadConfig() Config {
	if envFile, ok := os.LookupEnv("ACCOUNTS_ENV_FILE"); ok && envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			fmt.Fprintf(os.Stderr, "environment %v not loaded: %v\n", envFile, err)
		}
		secretEnv := envFile + ".secret"
		if _, err := os.Stat(secretEnv); err == nil {
			if err := godotenv.Load(secretEnv); err != nil {
				fmt.Fprintf(os.Stderr, "environment %v not loaded: %v\n", secretEnv, err)
			}
		}
	}

	return Config{
		Issuer:    getEnvOrDefault("ACCOUNTS_ISSUER", "accounts"),
		Algorithm: getEnvOrDefault("ACCOUNTS_ALGORITHM", jwtx.AlgorithmEdDSA),
		NumKeys:   getEnvIntOrDefault("ACCOUNTS_NUM_KEYS", 0), // 0 lets the KeyManager pick
		TokenTTL:  getEnvDurationOrDefault("ACCOUNTS_TOKEN_TTL", jwtx.DefaultTokenTTL),

		DatabaseDriver: getEnvOrDefault("ACCOUNTS_DATABASE_DRIVER", DriverSQLite),
		DatabaseFile:   getEnvOrDefault("ACCOUNTS_DATABASE_FILE", "accounts.db"),
		DatabaseURL:    os.Getenv("ACCOUNTS_DATABASE_URL"),
		PepperFile:     getEnvOrDefault("ACCOUNTS_PEPPER_FILE", "pepper"),

		VerificationCodeTTL: getEnvDurationOrDefault("ACCOUNTS_VERIFICATION_CODE_TTL", service.DefaultVerificationCodeTTL),
		ResetCodeTTL:        getEnvDurationOrDefault("ACCOUNTS_RESET_CODE_TTL", service.DefaultResetCodeTTL),
		AllowedOrigins:      getEnvListOrDefault("ACCOUNTS_ALLOWED_FRONTEND_ORIGINS", nil),

		MailTransport: getEnvOrDefault("MAIL_TRANSPORT", TransportLog),
		MailFrom:      getEnvOrDefault("MAIL_FROM", "noreply@localhost"),
		SMTP: smtp.Config{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getEnvIntOrDefault("SMTP_PORT", 587),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			TLS:      getEnvOrDefault("SMTP_TLS", smtp.TLSStartTLS),
		},
		SESRegion: os.Getenv("SES_REGION"),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
}

// Validate rejects settings that would only fail once a resource is opened.
func (c Config) Validate() error {
	var errs []error

	switch c.Algorithm {
	case jwtx.AlgorithmEdDSA, jwtx.AlgorithmES256:
	default:
		errs = append(errs, fmt.Errorf("ACCOUNTS_ALGORITHM: unsupported algorithm %q", c.Algorithm))
	}

	switch c.DatabaseDriver {
	case DriverSQLite:
		if c.DatabaseFile == "" {
			errs = append(errs, errors.New("ACCOUNTS_DATABASE_FILE is required for sqlite"))
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("ACCOUNTS_DATABASE_URL is required for postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("ACCOUNTS_DATABASE_DRIVER: unknown driver %q", c.DatabaseDriver))
	}

	if _, err := email.ParseAddress(c.MailFrom); err != nil {
		errs = append(errs, fmt.Errorf("MAIL_FROM: %w", err))
	}

	switch c.MailTransport {
	case TransportLog:
	case TransportSMTP:
		if c.SMTP.Host == "" {
			errs = append(errs, errors.New("SMTP_HOST is required for the smtp transport"))
		}
		switch c.SMTP.TLS {
		case smtp.TLSStartTLS, smtp.TLSImplicit, smtp.TLSNone:
		default:
			errs = append(errs, fmt.Errorf("SMTP_TLS: unknown mode %q", c.SMTP.TLS))
		}
	case TransportSES:
		if c.SESRegion == "" {
			errs = append(errs, errors.New("SES_REGION is required for the ses transport"))
		}
	default:
		errs = append(errs, fmt.Errorf("MAIL_TRANSPORT: unknown transport %q", c.MailTransport))
	}

	for _, origin := range c.AllowedOrigins {
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			errs = append(errs, fmt.Errorf("ACCOUNTS_ALLOWED_FRONTEND_ORIGINS: %q is not an http(s) origin", origin))
		}
	}

	if c.TokenTTL <= 0 || c.VerificationCodeTTL <= 0 || c.ResetCodeTTL <= 0 {
		errs = append(errs, errors.New("token and code lifetimes must be positive"))
	}

	return errors.Join(errs...)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}

// getEnvListOrDefault splits a comma separated value, dropping blanks and
// trailing slashes.
func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimRight(strings.TrimSpace(item), "/"); item != "" {
			out = append(out, item)
		}
	}
	return out
}
