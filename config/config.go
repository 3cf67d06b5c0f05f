package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	PersistenceRemote = "remote"
	PersistenceLocal  = "local"
)

type Config struct {
	AppName string
	Port    string

	// Persistence
	Persistence       string
	MongoURI          string
	DBName            string
	MongoTransactions bool
	SnapshotDir       string

	// Redis, optional. Backs the catalog cache, the session flag and, under
	// the local strategy, the snapshot.
	RedisAddr string
	RedisPass string
	CacheTTL  time.Duration

	// Auth
	JWTKey            string
	TokenTTL          time.Duration
	AdminEmail        string
	AdminPasswordHash string

	// Failed-login lockout
	MaxLoginAttempts   int
	LoginAttemptWindow time.Duration
	LoginLockDuration  time.Duration

	// Images
	PublicBaseURL string
	ImageBucket   string

	// Lead notifications, optional
	SendGridAPIKey  string
	SendGridSandbox bool
	LeadNotifyFrom  string
	LeadNotifyTo    string

	AllowedOrigins []string
}

// LoadConfig reads the environment. Call godotenv.Load first to pick up a
// local .env file.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppName:           "imobiliaria-backend",
		Port:              envOr("PORT", "8080"),
		Persistence:       strings.ToLower(envOr("PERSISTENCE", PersistenceRemote)),
		MongoURI:          os.Getenv("MONGOURI"),
		DBName:            envOr("DB", "imobiliaria"),
		SnapshotDir:       envOr("SNAPSHOT_DIR", "./data"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisPass:         os.Getenv("REDIS_PASS"),
		AdminEmail:        os.Getenv("ADMIN_EMAIL"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		PublicBaseURL:     envOr("PUBLIC_BASE_URL", "http://localhost:8080"),
		ImageBucket:       envOr("IMAGE_BUCKET", "images"),
		SendGridAPIKey:    os.Getenv("SENDGRID_API_KEY"),
		LeadNotifyFrom:    os.Getenv("LEAD_NOTIFY_FROM"),
		LeadNotifyTo:      os.Getenv("LEAD_NOTIFY_TO"),
		AllowedOrigins:    splitList(envOr("ALLOWED_ORIGINS", "*")),
	}

	var err error
	if cfg.MongoTransactions, err = envBool("MONGO_TRANSACTIONS"); err != nil {
		return nil, err
	}
	if cfg.SendGridSandbox, err = envBool("SENDGRID_SANDBOX"); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = envDuration("CACHE_TTL", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.TokenTTL, err = envDuration("TOKEN_TTL", 12*time.Hour); err != nil {
		return nil, err
	}
	if cfg.MaxLoginAttempts, err = envInt("MAX_LOGIN_ATTEMPTS", 5); err != nil {
		return nil, err
	}
	if cfg.LoginAttemptWindow, err = envDuration("LOGIN_ATTEMPT_WINDOW", 15*time.Minute); err != nil {
		return nil, err
	}
	if cfg.LoginLockDuration, err = envDuration("LOGIN_LOCK_DURATION", 15*time.Minute); err != nil {
		return nil, err
	}

	switch cfg.Persistence {
	case PersistenceRemote:
		if cfg.MongoURI == "" {
			return nil, fmt.Errorf("MONGOURI not set in environment")
		}
	case PersistenceLocal:
	default:
		return nil, fmt.Errorf("PERSISTENCE must be %q or %q, got %q", PersistenceRemote, PersistenceLocal, cfg.Persistence)
	}

	cfg.JWTKey = os.Getenv("JWT_KEY")
	if cfg.JWTKey == "" {
		return nil, fmt.Errorf("JWT_KEY not set in environment")
	}

	if cfg.AdminEmail == "" || cfg.AdminPasswordHash == "" {
		return nil, fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD_HASH must be set")
	}
	return cfg, nil
}

// NotifyEnabled reports whether lead e-mails can be sent.
func (c *Config) NotifyEnabled() bool {
	return c.SendGridAPIKey != "" && c.LeadNotifyFrom != "" && c.LeadNotifyTo != ""
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return b, nil
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, v)
	}
	return n, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
