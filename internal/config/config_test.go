package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hr-interviews-go/pkg/logger"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)
	t.Setenv("ENV", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_DSN", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("EMPLOYEE_CACHE_TTL", "")

	cfg, err := Load(logger.Discard())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	assert.Equal(t, time.Minute, cfg.Cache.EmployeeTTL)
	assert.Empty(t, cfg.Events.KafkaBrokers)
	assert.Contains(t, cfg.DB.GetDSN(), "dbname=hr_interviews")
}

func TestLoadRejectsUnknownEnv(t *testing.T) {
	chdirTemp(t)
	t.Setenv("ENV", "staging")

	_, err := Load(logger.Discard())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENV: must be one of")
}

func TestLoadRejectsNonPostgresURL(t *testing.T) {
	chdirTemp(t)
	t.Setenv("ENV", "test")
	t.Setenv("DATABASE_URL", "mysql://root@localhost/db")

	_, err := Load(logger.Discard())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoadReadsDotEnvWithoutOverridingEnv(t *testing.T) {
	dir := chdirTemp(t)
	contents := "HTTP_PORT=9999\nKAFKA_BROKERS=broker-a:9092, broker-b:9092\nENV=\"local\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(contents), 0o600))

	t.Setenv("ENV", "test")
	os.Unsetenv("HTTP_PORT")
	os.Unsetenv("KAFKA_BROKERS")
	t.Cleanup(func() {
		os.Unsetenv("HTTP_PORT")
		os.Unsetenv("KAFKA_BROKERS")
	})

	cfg, err := Load(logger.Discard())
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.HTTPPort)
	assert.Equal(t, "test", cfg.Env)
	assert.Equal(t, []string{"broker-a:9092", "broker-b:9092"}, cfg.Events.KafkaBrokers)
}

func TestMigrationURL(t *testing.T) {
	fromURL := DBConfig{URL: "postgres://app:secret@db:5432/hr?sslmode=disable"}
	got, err := fromURL.MigrationURL("pgx5")
	require.NoError(t, err)
	assert.Equal(t, "pgx5://app:secret@db:5432/hr?sslmode=disable", got)

	fromParts := DBConfig{Host: "localhost", Port: "5433", User: "u", Password: "p", Name: "hr", SSLMode: "require"}
	got, err = fromParts.MigrationURL("pgx5")
	require.NoError(t, err)
	assert.Equal(t, "pgx5://u:p@localhost:5433/hr?sslmode=require", got)
}
