package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "none", cfg.Storage.Driver)
	assert.Equal(t, 15*time.Minute, cfg.Storage.UploadTTL)
	assert.Equal(t, "utf-8", cfg.Catalog.CSVEncoding)
	assert.Equal(t, 10.0, cfg.RateLimit.RequestsPerSecond)
	assert.True(t, cfg.DB.AutoMigrate)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("STORAGE_DRIVER", "minio")
	t.Setenv("STORAGE_BUCKET", "catalog")
	t.Setenv("STORAGE_UPLOAD_TTL", "5m")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("DB_FORCE_IPV4", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.DB.Driver)
	assert.Equal(t, "minio", cfg.Storage.Driver)
	assert.Equal(t, 5*time.Minute, cfg.Storage.UploadTTL)
	assert.Equal(t, 2.5, cfg.RateLimit.RequestsPerSecond)
	assert.True(t, cfg.DB.ForceIPv4)
	assert.Equal(t, "debug", cfg.App.LogLevel)
}

func TestLoad_Invalido(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "s3")
	_, err := Load()
	assert.ErrorContains(t, err, "STORAGE_BUCKET")

	t.Setenv("STORAGE_DRIVER", "ftp")
	_, err = Load()
	assert.ErrorContains(t, err, "STORAGE_DRIVER")
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss/word", DBName: "catalogo", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss%2Fword@db:5432/catalogo?sslmode=disable", c.ConnectionString())
}
