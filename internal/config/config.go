package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	// URL wins over the individual fields when set.
	URL string
}

// DSN returns the lib/pq connection string.
func (d Database) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     d.Host + ":" + d.Port,
		Path:     "/" + d.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

func (d Database) validate() error {
	if d.URL != "" {
		return nil
	}
	var missing []string
	for name, v := range map[string]string{
		"POSTGRES_HOST": d.Host,
		"POSTGRES_PORT": d.Port,
		"POSTGRES_USER": d.User,
		"POSTGRES_DB":   d.Name,
	} {
		if v == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return fmt.Errorf("database config incomplete, set DATABASE_URL or %s", strings.Join(missing, ", "))
	}
	return nil
}

type Config struct {
	HTTPAddr string
	Database Database

	JWTSecret          string
	JWTTTL             time.Duration
	RegistrationSecret string

	CORSAllowedOrigins []string
	CookieDomain       string
	CookieSecure       bool

	RedisURL         string
	ResultsCacheSize int
	ResultsCacheTTL  time.Duration

	AutoMigrate bool
	Log         Log
}

// LoadEnv reads a .env file from the working directory if there is one.
func LoadEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env file: %w", err)
	}
	return nil
}

// BindDatabaseFlags registers the database flags, defaulting to the
// environment.
func BindDatabaseFlags(flags *flag.FlagSet, db *Database) {
	flags.StringVar(&db.Host, "db-host", os.Getenv("POSTGRES_HOST"), "Database host")
	flags.StringVar(&db.Port, "db-port", envOr("POSTGRES_PORT", "5432"), "Database port")
	flags.StringVar(&db.User, "db-user", os.Getenv("POSTGRES_USER"), "Database user")
	flags.StringVar(&db.Password, "db-pass", os.Getenv("POSTGRES_PASSWORD"), "Database password")
	flags.StringVar(&db.Name, "db-name", os.Getenv("POSTGRES_DB"), "Database name")
	flags.StringVar(&db.URL, "database-url", os.Getenv("DATABASE_URL"), "Full database URL, overrides the other db flags")
}

// BindLogFlags registers the logging flags.
func BindLogFlags(flags *flag.FlagSet, l *Log) {
	flags.StringVar(&l.Level, "log-level", envOr("LOG_LEVEL", "info"), "Log level: debug, info, warn, error")
	flags.StringVar(&l.Format, "log-format", envOr("LOG_FORMAT", "json"), "Log format: json or text")
}

// LoadDatabase builds the database config for the job commands.
func LoadDatabase(flags *flag.FlagSet, args []string) (Database, Log, error) {
	var db Database
	var l Log
	BindDatabaseFlags(flags, &db)
	BindLogFlags(flags, &l)
	if err := flags.Parse(args); err != nil {
		return db, l, err
	}
	if err := db.validate(); err != nil {
		return db, l, err
	}
	return db, l, nil
}

// Load builds the server config from the environment, with flags on top.
func Load(flags *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}

	jwtTTL, err := envDuration("JWT_TTL", 2880*time.Hour)
	if err != nil {
		return nil, err
	}
	cacheTTL, err := envDuration("RESULTS_CACHE_TTL", 10*time.Minute)
	if err != nil {
		return nil, err
	}
	cacheSize, err := envInt("RESULTS_CACHE_SIZE", 128)
	if err != nil {
		return nil, err
	}
	autoMigrate, err := envBool("AUTO_MIGRATE", true)
	if err != nil {
		return nil, err
	}
	cookieSecure, err := envBool("COOKIE_SECURE", true)
	if err != nil {
		return nil, err
	}

	var origins string
	flags.StringVar(&cfg.HTTPAddr, "addr", envOr("HTTP_ADDR", "0.0.0.0:8080"), "HTTP listen address")
	BindDatabaseFlags(flags, &cfg.Database)
	BindLogFlags(flags, &cfg.Log)
	flags.StringVar(&cfg.JWTSecret, "jwt-secret", os.Getenv("JWT_SECRET"), "Secret used to sign access tokens")
	flags.DurationVar(&cfg.JWTTTL, "jwt-ttl", jwtTTL, "Access token lifetime")
	flags.StringVar(&cfg.RegistrationSecret, "registration-secret", os.Getenv("REGISTRATION_SECRET"), "Secret required to register")
	flags.StringVar(&origins, "cors-origins", envOr("CORS_ALLOWED_ORIGINS", "http://localhost:3000"), "Comma separated allowed origins")
	flags.StringVar(&cfg.CookieDomain, "cookie-domain", os.Getenv("COOKIE_DOMAIN"), "Domain of the access token cookie")
	flags.BoolVar(&cfg.CookieSecure, "cookie-secure", cookieSecure, "Mark the access token cookie as secure")
	flags.StringVar(&cfg.RedisURL, "redis-url", os.Getenv("REDIS_URL"), "Redis URL for the shared results cache")
	flags.IntVar(&cfg.ResultsCacheSize, "results-cache-size", cacheSize, "In-process results cache entries")
	flags.DurationVar(&cfg.ResultsCacheTTL, "results-cache-ttl", cacheTTL, "Results cache entry lifetime")
	flags.BoolVar(&cfg.AutoMigrate, "auto-migrate", autoMigrate, "Apply migrations at startup")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	cfg.CORSAllowedOrigins = splitList(origins)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := c.Database.validate(); err != nil {
		return err
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.JWTTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	if c.ResultsCacheSize <= 0 {
		return errors.New("RESULTS_CACHE_SIZE must be positive")
	}
	if c.ResultsCacheTTL <= 0 {
		return errors.New("RESULTS_CACHE_TTL must be positive")
	}
	if len(c.CORSAllowedOrigins) == 0 {
		return errors.New("CORS_ALLOWED_ORIGINS must not be empty")
	}
	return c.Log.validate()
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func envBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
