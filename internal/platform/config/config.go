package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Server captures process level configuration.
type Server struct {
	Addr           string
	LogFormat      string
	AllowedOrigins []string

	Database   DatabaseConfig
	Redis      RedisConfig
	Kafka      KafkaConfig
	Auth       AuthConfig
	Accounting AccountingConfig
	ESign      ESignConfig
	Subscriber SubscriberConfig

	// IntegrationTimeout bounds every external adapter call.
	IntegrationTimeout time.Duration
	// DuplicateCacheTTL is how long a duplicate-check result may be reused.
	DuplicateCacheTTL time.Duration
	// FallbackOperatorEmail is the second e-signature recipient when the
	// request carries no operator identity.
	FallbackOperatorEmail string
}

// DatabaseConfig selects the Postgres backing store. Empty URL means in-memory stores.
type DatabaseConfig struct {
	URL          string
	MaxConns     int32
	MinConns     int32
	ConnLifetime time.Duration
}

// RedisConfig configures the duplicate-check cache. Empty URL means in-process cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures the audit sink. No brokers means audit goes to the log.
type KafkaConfig struct {
	Brokers    []string
	AuditTopic string
}

// AuthConfig configures staff login and session tokens.
type AuthConfig struct {
	AdminEmail    string
	AdminPassword string
	JWTSigningKey string
	SessionTTL    time.Duration
	AllowedDomain string
	// SecureCookie marks the session cookie Secure; disable only for plain-HTTP development.
	SecureCookie bool
}

// AccountingConfig configures the accounting contacts API.
type AccountingConfig struct {
	BaseURL string
	User    string
	Token   string
}

// Configured reports whether credentials are present.
func (c AccountingConfig) Configured() bool { return c.User != "" && c.Token != "" }

// ESignConfig configures the e-signature submissions API.
type ESignConfig struct {
	BaseURL    string
	APIKey     string
	TemplateID string
}

// Configured reports whether credentials are present.
func (c ESignConfig) Configured() bool { return c.APIKey != "" && c.TemplateID != "" }

// SubscriberConfig configures the subscriber-provisioning API.
type SubscriberConfig struct {
	NewUserURL string
	BaseURL    string
	Token      string
}

// Configured reports whether credentials are present.
func (c SubscriberConfig) Configured() bool { return c.NewUserURL != "" && c.Token != "" }

// FromEnv builds a Server config from environment variables so main stays lean.
// A .env file in the working directory is loaded first when present; real
// environment variables win over it.
func FromEnv() Server {
	_ = godotenv.Load()

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	return Server{
		Addr:           getenv("BACKOFFICE_ADDR", ":8080"),
		LogFormat:      getenv("LOG_FORMAT", "json"),
		AllowedOrigins: splitList(getenv("ALLOWED_ORIGINS", "http://localhost:3000")),
		Database: DatabaseConfig{
			URL:          os.Getenv("DATABASE_URL"),
			MaxConns:     int32(getint("DATABASE_MAX_CONNS", 10)),
			MinConns:     int32(getint("DATABASE_MIN_CONNS", 1)),
			ConnLifetime: getduration("DATABASE_CONN_LIFETIME", time.Hour),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     getint("REDIS_POOL_SIZE", 10),
			MinIdleConns: getint("REDIS_MIN_IDLE_CONNS", 1),
			DialTimeout:  getduration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getduration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getduration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers:    splitList(os.Getenv("KAFKA_BROKERS")),
			AuditTopic: getenv("KAFKA_AUDIT_TOPIC", "backoffice.audit"),
		},
		Auth: AuthConfig{
			AdminEmail:    strings.ToLower(strings.TrimSpace(os.Getenv("APP_LOGIN_EMAIL"))),
			AdminPassword: os.Getenv("APP_LOGIN_PASSWORD"),
			JWTSigningKey: jwtSigningKey,
			SessionTTL:    getduration("SESSION_TTL", 8*time.Hour),
			AllowedDomain: os.Getenv("ALLOWED_EMAIL_DOMAIN"),
			SecureCookie:  getenv("SESSION_COOKIE_SECURE", "true") == "true",
		},
		Accounting: AccountingConfig{
			BaseURL: getenv("ALEGRA_API_BASE", "https://api.alegra.com/api/v1"),
			User:    os.Getenv("ALEGRA_USER"),
			Token:   os.Getenv("ALEGRA_TOKEN"),
		},
		ESign: ESignConfig{
			BaseURL:    getenv("DOCUSEAL_API_BASE", "https://api.docuseal.com"),
			APIKey:     os.Getenv("DOCUSEAL_API_KEY"),
			TemplateID: os.Getenv("DOCUSEAL_TEMPLATE_ID"),
		},
		Subscriber: SubscriberConfig{
			NewUserURL: os.Getenv("MIKROWISP_NEW_USER_URL"),
			BaseURL:    os.Getenv("MIKROWISP_API_BASE"),
			Token:      os.Getenv("MIKROWISP_API_TOKEN"),
		},
		IntegrationTimeout:    clampTimeout(getduration("INTEGRATION_TIMEOUT", 15*time.Second)),
		DuplicateCacheTTL:     getduration("DUPLICATE_CACHE_TTL", time.Minute),
		FallbackOperatorEmail: os.Getenv("KIVU_FALLBACK_EMAIL"),
	}
}

// clampTimeout keeps adapter timeouts within 10s..30s.
func clampTimeout(d time.Duration) time.Duration {
	switch {
	case d < 10*time.Second:
		return 10 * time.Second
	case d > 30*time.Second:
		return 30 * time.Second
	default:
		return d
	}
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getduration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func splitList(raw string) []string {
	var out []string
	for part := range strings.SplitSeq(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
