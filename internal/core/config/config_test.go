package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"him-backend/internal/core/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadReadsYAMLAndDefaults(t *testing.T) {
	path := writeConfig(t, `
app:
  name: him-backend
  env: test
  http:
    port: 9090
db:
  driver: mysql
  dsn: "user:pass@tcp(localhost:3306)/him"
  automigrate: true
redis:
  addr: "localhost:6379"
jwt:
  secret: "unit-test-secret"
adminsetup:
  secret: "bootstrap"
`)

	c := config.Load(path)

	assert.Equal(t, "him-backend", c.App.Name)
	assert.Equal(t, 9090, c.App.HTTP.Port)
	assert.Equal(t, "mysql", c.DB.Driver)
	assert.True(t, c.DB.AutoMigrate)
	assert.Equal(t, "bootstrap", c.AdminSetup.Secret)

	// 未写的键落到默认值
	assert.Equal(t, "0.0.0.0", c.App.HTTP.Host)
	assert.Equal(t, "him_session", c.Session.CookieName)
	assert.Equal(t, 24, c.Session.TTLHours)
	assert.Equal(t, "*", c.CORS.AllowedOrigins)
	assert.True(t, c.CORS.AllowCredentials)
	assert.Equal(t, "him-backend", c.JWT.Issuer)
	assert.Equal(t, 50, c.DB.MaxOpenConns)
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, `
app:
  name: him-backend
db:
  driver: mysql
  dsn: "x"
`)
	t.Setenv("APP_SESSION_COOKIENAME", "him_alt")
	t.Setenv("APP_APP_HTTP_PORT", "7070")

	c := config.Load(path)

	assert.Equal(t, "him_alt", c.Session.CookieName)
	assert.Equal(t, 7070, c.App.HTTP.Port)
}
