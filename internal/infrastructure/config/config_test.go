package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, "fms-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiration)
	assert.Equal(t, 168*time.Hour, cfg.JWT.RefreshTokenExpiration)
	assert.Equal(t, 5, cfg.Auth.MaxLoginAttempts)
	assert.Equal(t, 30*time.Minute, cfg.Auth.LockDuration)
	assert.Equal(t, 5*time.Minute, cfg.Cache.PermissionTTL)
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Auth.MaxLoginAttempts = 3
	cfg.Auth.LockDuration = time.Hour
	cfg.JWT.AccessTokenExpiration = 5 * time.Minute

	applyDefaults(cfg)

	assert.Equal(t, 3, cfg.Auth.MaxLoginAttempts)
	assert.Equal(t, time.Hour, cfg.Auth.LockDuration)
	assert.Equal(t, 5*time.Minute, cfg.JWT.AccessTokenExpiration)
}

func TestValidate(t *testing.T) {
	newValid := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg
	}

	t.Run("valid development config", func(t *testing.T) {
		require.NoError(t, newValid().validate())
	})

	t.Run("rejects idle conns above open conns", func(t *testing.T) {
		cfg := newValid()
		cfg.Database.MaxIdleConns = cfg.Database.MaxOpenConns + 1
		assert.Error(t, cfg.validate())
	})

	t.Run("rejects non-positive login attempts", func(t *testing.T) {
		cfg := newValid()
		cfg.Auth.MaxLoginAttempts = -1
		assert.Error(t, cfg.validate())
	})

	t.Run("production requires a strong JWT secret", func(t *testing.T) {
		cfg := newValid()
		cfg.App.Env = "production"
		cfg.Database.Password = "secret"
		cfg.Database.SSLMode = "require"

		cfg.JWT.Secret = ""
		assert.Error(t, cfg.validate())

		cfg.JWT.Secret = "short"
		assert.Error(t, cfg.validate())

		cfg.JWT.Secret = "a-sufficiently-long-secret-for-production-use"
		assert.NoError(t, cfg.validate())
	})

	t.Run("production rejects sslmode disable", func(t *testing.T) {
		cfg := newValid()
		cfg.App.Env = "production"
		cfg.JWT.Secret = "a-sufficiently-long-secret-for-production-use"
		cfg.Database.Password = "secret"
		cfg.Database.SSLMode = "disable"
		assert.Error(t, cfg.validate())
	})

	t.Run("production rejects wildcard CORS origin", func(t *testing.T) {
		cfg := newValid()
		cfg.App.Env = "production"
		cfg.JWT.Secret = "a-sufficiently-long-secret-for-production-use"
		cfg.Database.Password = "secret"
		cfg.Database.SSLMode = "require"
		cfg.HTTP.CORSAllowOrigins = []string{"*"}
		assert.Error(t, cfg.validate())
	})
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.internal",
		Port:     5432,
		User:     "fms",
		Password: "p@ss/word",
		DBName:   "fms",
		SSLMode:  "require",
	}

	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.internal:5432")
	assert.Contains(t, dsn, "sslmode=require")
	assert.NotContains(t, dsn, "p@ss/word", "password must be URL-escaped")
}
