package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration loaded from environment variables.
// Defaults target local development.
type Config struct {
	AppName   string
	Env       string // development, staging, production
	Port      string
	GinMode   string
	APIPrefix string

	// Store: "postgres" or "memory"
	StoreDriver string

	// Database
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	DBMaxConns    int32
	DBMinConns    int32
	DBMaxConnLife time.Duration
	MigrationsDir string

	// Redis (rate limiting, token revocation). Empty address disables it.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Session token
	JWTSecret    string
	JWTTTL       time.Duration
	CookieName   string
	CookieDomain string
	CookieSecure bool

	// CORS
	CORSAllowedOrigins string // comma-separated

	// Notifications / matches
	NotificationTTL           time.Duration
	NotificationSweepInterval time.Duration
	MatchCheckReverseRequest  bool

	// RabbitMQ (match event emails). Empty URL disables publishing.
	RabbitMQURL        string
	RabbitMQEmailQueue string

	// Mailgun (email worker)
	MailgunDomain  string
	MailgunAPIKey  string
	MailgunSender  string
	MailgunAPIBase string // empty uses the US region

	// Elasticsearch user directory. Empty addresses disable indexing.
	ElasticsearchAddrs string // comma-separated
	ElasticsearchUser  string
	ElasticsearchPass  string
	ESUsersIndex       string

	// Links used in emails
	FrontendURL string

	MailSendEnabled     bool
	DebugMetricsEnabled bool
	HTTPLogEnabled      bool
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %v, using default %v", key, err, def)
			return def
		}
		return b
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("invalid int for %s: %v, using default %d", key, err, def)
			return def
		}
		return i
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using default %v", key, err, def)
			return def
		}
		return d
	}
	return def
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		AppName:   getenv("APP_NAME", "ud-connect"),
		Env:       getenv("APP_ENV", "development"),
		Port:      getenv("PORT", "3030"),
		GinMode:   getenv("GIN_MODE", "release"),
		APIPrefix: strings.TrimRight(getenv("API_PREFIX", ""), "/"),

		StoreDriver: strings.ToLower(getenv("STORE_DRIVER", "postgres")),

		DBHost:        getenv("DB_HOST", "localhost"),
		DBPort:        getenv("DB_PORT", "5432"),
		DBUser:        getenv("DB_USER", "postgres"),
		DBPassword:    getenv("DB_PASSWORD", "postgres"),
		DBName:        getenv("DB_NAME", "udconnect"),
		DBSSLMode:     getenv("DB_SSLMODE", "disable"),
		DBMaxConns:    int32(getint("DB_MAX_CONNS", 10)),
		DBMinConns:    int32(getint("DB_MIN_CONNS", 2)),
		DBMaxConnLife: getdur("DB_MAX_CONN_LIFETIME", time.Hour),
		MigrationsDir: getenv("MIGRATIONS_DIR", "db/migrations"),

		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       getint("REDIS_DB", 0),

		JWTSecret:    getenv("JWT_SECRET", "fallback-secret-for-dev"),
		JWTTTL:       getdur("JWT_TTL", 7*24*time.Hour),
		CookieName:   getenv("COOKIE_NAME", "token"),
		CookieDomain: getenv("COOKIE_DOMAIN", ""),
		CookieSecure: getbool("COOKIE_SECURE", false),

		CORSAllowedOrigins: getenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),

		NotificationTTL:           getdur("NOTIFICATION_TTL", 30*24*time.Hour),
		NotificationSweepInterval: getdur("NOTIFICATION_SWEEP_INTERVAL", time.Hour),
		MatchCheckReverseRequest:  getbool("MATCH_CHECK_REVERSE_REQUEST", true),

		RabbitMQURL:        getenv("RABBITMQ_URL", ""),
		RabbitMQEmailQueue: getenv("RABBITMQ_EMAIL_QUEUE", "emails"),

		MailgunDomain:  getenv("MAILGUN_DOMAIN", ""),
		MailgunAPIKey:  getenv("MAILGUN_API_KEY", ""),
		MailgunSender:  getenv("MAILGUN_SENDER", ""),
		MailgunAPIBase: getenv("MAILGUN_API_BASE", ""),

		ElasticsearchAddrs: getenv("ELASTICSEARCH_ADDRS", ""),
		ElasticsearchUser:  getenv("ELASTICSEARCH_USERNAME", ""),
		ElasticsearchPass:  getenv("ELASTICSEARCH_PASSWORD", ""),
		ESUsersIndex:       getenv("ES_USERS_INDEX", "users"),

		FrontendURL: getenv("FRONTEND_URL", "http://localhost:5173"),

		// Match emails are opt-in
		MailSendEnabled:     getbool("MAIL_SEND_ENABLED", false),
		DebugMetricsEnabled: getbool("DEBUG_METRICS_ENABLED", true),
		HTTPLogEnabled:      getbool("HTTP_LOG_ENABLED", false),
	}
}

// PostgresDSN returns a DSN compatible with pgx
func (c *Config) PostgresDSN() string {
	return "postgres://" + c.DBUser + ":" + c.DBPassword + "@" + c.DBHost + ":" + c.DBPort + "/" + c.DBName + "?sslmode=" + c.DBSSLMode
}

// CORSOrigins returns the allowed origins as slice
func (c *Config) CORSOrigins() []string {
	return splitList(c.CORSAllowedOrigins)
}

// ESAddrs returns Elasticsearch addresses as a slice
func (c *Config) ESAddrs() []string {
	return splitList(c.ElasticsearchAddrs)
}

// UseMemoryStore reports whether the process keeps its data in memory instead of Postgres.
func (c *Config) UseMemoryStore() bool {
	return c.StoreDriver == "memory"
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}
