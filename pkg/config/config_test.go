package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gst-invoice-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.Kafka.Enabled())
	assert.Equal(t, "inclusive", cfg.Billing.TaxMethod)
	assert.Equal(t, "all", cfg.Billing.RoundingScope)
	assert.Equal(t, 0, cfg.Billing.DecimalPlaces)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, 15*time.Second, cfg.DB.StatementTimeout)
}

func TestLoad_DesdeEntorno(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_TTL_SECONDS", "60")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("GST_TAX_ENABLED", "true")
	t.Setenv("GST_DECIMAL_PLACES", "2")
	t.Setenv("GST_SUPPLIER_GSTIN", "27AAPFU0939F1ZV")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DB_STATEMENT_TIMEOUT_MS", "0")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, time.Minute, cfg.Redis.TTL)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Billing.TaxEnabled)
	assert.Equal(t, 2, cfg.Billing.DecimalPlaces)
	assert.Equal(t, "27AAPFU0939F1ZV", cfg.Billing.SupplierGSTIN)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Zero(t, cfg.DB.StatementTimeout)
}

func TestLoad_DecimalesFueraDeRango(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("GST_DECIMAL_PLACES", "5")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "gst", Password: "p@ss:w/rd", DBName: "gst_invoice", SSLMode: "disable"}
	assert.Equal(t, "postgres://gst:p%40ss%3Aw%2Frd@db:5432/gst_invoice?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}

// chdir cambia el directorio de trabajo y lo restaura al terminar el test
// (equivalente a testing.T.Chdir, disponible desde Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
