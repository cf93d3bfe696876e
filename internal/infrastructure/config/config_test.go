package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("should apply defaults when no config file exists", func(t *testing.T) {
		cfg, err := Load(t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, "wims-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Environment)
		assert.Equal(t, 8080, cfg.HTTP.Port)
		assert.Equal(t, "wims", cfg.Database.Name)
		assert.Equal(t, 120, cfg.JWT.ExpiryMinutes)
		assert.True(t, cfg.Scheduler.Enabled)
		assert.Equal(t, 2, cfg.Scheduler.ReportHour)
	})

	t.Run("should read values from a toml file", func(t *testing.T) {
		dir := t.TempDir()
		content := `
[app]
name = "wims-test"

[http]
port = 9090

[database]
host = "db.internal"
name = "warehouse"
`
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644))

		cfg, err := Load(dir)
		require.NoError(t, err)

		assert.Equal(t, "wims-test", cfg.App.Name)
		assert.Equal(t, 9090, cfg.HTTP.Port)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, "warehouse", cfg.Database.Name)
		// Untouched sections keep defaults
		assert.Equal(t, "localhost", cfg.Redis.Host)
	})

	t.Run("should let environment variables override the file", func(t *testing.T) {
		t.Setenv("WIMS_DATABASE_PORT", "5433")
		t.Setenv("WIMS_LOG_LEVEL", "debug")

		cfg, err := Load(t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("should reject short jwt secrets", func(t *testing.T) {
		t.Setenv("WIMS_JWT_SECRET", "too-short")

		_, err := Load(t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt secret")
	})
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			App:       AppConfig{Environment: "development"},
			HTTP:      HTTPConfig{Port: 8080},
			JWT:       JWTConfig{ExpiryMinutes: 60},
			Scheduler: SchedulerConfig{ReportHour: 2},
		}
	}

	t.Run("should accept a valid development config", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("should reject unknown environments", func(t *testing.T) {
		cfg := valid()
		cfg.App.Environment = "qa"
		assert.Error(t, cfg.Validate())
	})

	t.Run("should reject out of range report hour", func(t *testing.T) {
		cfg := valid()
		cfg.Scheduler.ReportHour = 24
		assert.Error(t, cfg.Validate())
	})

	t.Run("should require secrets and ssl in production", func(t *testing.T) {
		cfg := valid()
		cfg.App.Environment = "production"
		assert.Error(t, cfg.Validate())

		cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
		cfg.Database.Password = "secret"
		cfg.Database.SSLMode = "disable"
		assert.Error(t, cfg.Validate())

		cfg.Database.SSLMode = "require"
		assert.NoError(t, cfg.Validate())
	})
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "wims",
		Password: "p@ss word",
		Name:     "wims",
		SSLMode:  "disable",
	}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "localhost:5432")
	assert.Contains(t, dsn, "sslmode=disable")
	// Special characters in the password are escaped
	assert.NotContains(t, dsn, "p@ss word")
}
