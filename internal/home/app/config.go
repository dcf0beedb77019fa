package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/hearthhq/hearth/internal/home/relay"
	"github.com/hearthhq/hearth/pkg/httpx"
	"github.com/hearthhq/hearth/pkg/jwtx"
)

type Config struct {
	JWTSecret          string        // Optional: HMAC signing secret, at least 32 bytes (default: random per process)
	JWTPreviousSecrets []string      // Optional: retired secrets still accepted for verification
	Issuer             string        // Issuer claim for tokens (default: hearth)
	Audience           []string      // Audience claim for tokens (default: hearth-clients)
	AccessTokenTTL     time.Duration // Access token lifetime (default: 15m)
	InvitationTTL      time.Duration // Invitation token lifetime (default: 72h)

	DatabaseDriver string // sqlite or postgres (default: sqlite)
	DatabaseURL    string // SQLite file or Postgres DSN (default: ./home.db)
	PepperFile     string // Path to file containing pepper for password hashing (default: ./pepper)

	RelayInterval      time.Duration // Consumer poll cadence (default: 50ms)
	RelayMaxFrameBytes int64         // Largest producer frame (default: 4MiB)
	HandshakeTimeout   time.Duration // Wait for the relay handshake (default: 10s)
	AllowedOrigins     []string      // Extra WebSocket origin patterns

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)

	RateLimits        httpx.RateLimitProfiles // RATELIMIT_{STRICT,MODERATE,LENIENT}_* overrides
	TrustProxyHeaders bool                    // Key rate limits on X-Forwarded-For/X-Real-IP (default: false)
}

// LoadConfig reads the environment, after loading a .env file from the
// working directory when one exists.
func LoadConfig() Config {
	_ = godotenv.Load()

	return Config{
		JWTSecret:          os.Getenv("HOME_JWT_SECRET"),
		JWTPreviousSecrets: getEnvList("HOME_JWT_PREVIOUS_SECRETS"),
		Issuer:             getEnvOrDefault("HOME_JWT_ISSUER", "hearth"),
		Audience:           getEnvListOrDefault("HOME_JWT_AUDIENCE", []string{"hearth-clients"}),
		AccessTokenTTL:     getEnvDurationOrDefault("HOME_ACCESS_TOKEN_TTL", jwtx.DefaultAccessTokenTTL),
		InvitationTTL:      getEnvDurationOrDefault("HOME_INVITATION_TTL", jwtx.DefaultInvitationTTL),

		DatabaseDriver: getEnvOrDefault("HOME_DATABASE_DRIVER", "sqlite"),
		DatabaseURL:    getEnvOrDefault("HOME_DATABASE_URL", "home.db"),
		PepperFile:     getEnvOrDefault("HOME_PEPPER_FILE", "pepper"),

		RelayInterval:      getEnvDurationOrDefault("HOME_RELAY_INTERVAL", relay.DefaultInterval),
		RelayMaxFrameBytes: int64(getEnvIntOrDefault("HOME_RELAY_MAX_FRAME_BYTES", relay.DefaultMaxFrameBytes)),
		HandshakeTimeout:   getEnvDurationOrDefault("HOME_HANDSHAKE_TIMEOUT", relay.DefaultHandshakeTimeout),
		AllowedOrigins:     getEnvList("HOME_ALLOWED_ORIGINS"),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),

		RateLimits:        httpx.RateLimitProfilesFromEnv(),
		TrustProxyHeaders: getEnvBoolOrDefault("HOME_TRUST_PROXY_HEADERS", false),
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error

	switch c.DatabaseDriver {
	case "sqlite", "postgres":
	default:
		errs = append(errs, fmt.Errorf("HOME_DATABASE_DRIVER: unsupported driver %q", c.DatabaseDriver))
	}
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("HOME_DATABASE_URL: must not be empty"))
	}
	if c.JWTSecret != "" && len(c.JWTSecret) < jwtx.MinSecretBytes {
		errs = append(errs, fmt.Errorf("HOME_JWT_SECRET: %w", jwtx.ErrWeakSecret))
	}
	if c.Issuer == "" {
		errs = append(errs, errors.New("HOME_JWT_ISSUER: must not be empty"))
	}
	if c.AccessTokenTTL <= 0 || c.InvitationTTL <= 0 {
		errs = append(errs, errors.New("token lifetimes must be positive"))
	}
	if c.RelayInterval <= 0 {
		errs = append(errs, errors.New("HOME_RELAY_INTERVAL: must be positive"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT: %d out of range", c.Port))
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

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return defaultValue
}

// getEnvList splits a comma separated variable, dropping empty items.
func getEnvList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	if list := getEnvList(key); len(list) > 0 {
		return list
	}
	return defaultValue
}
