package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("MONGOURI", "mongodb://localhost:27017")
	t.Setenv("JWT_KEY", "secret")
	t.Setenv("ADMIN_EMAIL", "admin@example.com")
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$abcdefghijklmnopqrstuv")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, PersistenceRemote, cfg.Persistence)
	assert.Equal(t, "imobiliaria", cfg.DBName)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 12*time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.False(t, cfg.MongoTransactions)
	assert.False(t, cfg.NotifyEnabled())
	assert.Equal(t, "secret", cfg.JWTKey)
	assert.Equal(t, 5, cfg.MaxLoginAttempts)
	assert.Equal(t, 15*time.Minute, cfg.LoginAttemptWindow)
	assert.Equal(t, 15*time.Minute, cfg.LoginLockDuration)
}

func TestLoadConfigLocalDoesNotNeedMongo(t *testing.T) {
	setRequired(t)
	t.Setenv("MONGOURI", "")
	t.Setenv("PERSISTENCE", "LOCAL")
	t.Setenv("MONGO_TRANSACTIONS", "true")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, PersistenceLocal, cfg.Persistence)
	assert.True(t, cfg.MongoTransactions)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestLoadConfigErrors(t *testing.T) {
	cases := map[string]func(t *testing.T){
		"remote without uri": func(t *testing.T) { t.Setenv("MONGOURI", "") },
		"unknown strategy":   func(t *testing.T) { t.Setenv("PERSISTENCE", "both") },
		"missing jwt key":    func(t *testing.T) { t.Setenv("JWT_KEY", "") },
		"missing admin":      func(t *testing.T) { t.Setenv("ADMIN_PASSWORD_HASH", "") },
		"bad ttl":            func(t *testing.T) { t.Setenv("CACHE_TTL", "ten minutes") },
		"bad bool":           func(t *testing.T) { t.Setenv("MONGO_TRANSACTIONS", "sometimes") },
		"bad attempts":       func(t *testing.T) { t.Setenv("MAX_LOGIN_ATTEMPTS", "0") },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			setRequired(t)
			mutate(t)
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestNotifyEnabled(t *testing.T) {
	cfg := &Config{SendGridAPIKey: "k", LeadNotifyFrom: "a@x", LeadNotifyTo: "b@x"}
	assert.True(t, cfg.NotifyEnabled())
	cfg.LeadNotifyTo = ""
	assert.False(t, cfg.NotifyEnabled())
}
