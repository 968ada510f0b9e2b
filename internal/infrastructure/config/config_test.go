package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, DriverMongo, cfg.StorageDriver)
	assert.Equal(t, "sweet-shop", cfg.Mongo.Database)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.JWTExpire)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, uint64(100), cfg.Mongo.MaxPoolSize)
	assert.Equal(t, 10*time.Second, cfg.Mongo.Timeout)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Empty(t, cfg.Redis.Password)
	assert.Equal(t, 10, cfg.Redis.PoolSize)
	assert.Equal(t, 5*time.Second, cfg.Redis.Timeout)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5000"}, cfg.HTTP.CORSOrigins)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 20, cfg.RateLimit.Requests)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.False(t, cfg.IsProduction())
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":     "s3cret",
		"PORT":           "8081",
		"ENV":            "production",
		"STORAGE_DRIVER": "memory",
		"JWT_EXPIRE":     "2h",
		"REDIS_ADDR":     "localhost:6379",
		"REDIS_PASSWORD": "hunter2",
		"REDIS_DB":       "3",
		"MONGO_MAX_POOL": "25",
		"CORS_ORIGINS":   "https://shop.example.com",
	}))
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, DriverMemory, cfg.StorageDriver)
	assert.Equal(t, 2*time.Hour, cfg.Auth.JWTExpire)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "hunter2", cfg.Redis.Password)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, uint64(25), cfg.Mongo.MaxPoolSize)
	assert.Equal(t, []string{"https://shop.example.com"}, cfg.HTTP.CORSOrigins)
	assert.True(t, cfg.IsProduction())
}

func TestLoadWith_MissingSecret(t *testing.T) {
	_, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadWith_UnknownDriver(t *testing.T) {
	_, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":     "s3cret",
		"STORAGE_DRIVER": "postgres",
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORAGE_DRIVER")
}

func TestLoadWith_BadDuration(t *testing.T) {
	_, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
		"JWT_EXPIRE": "forever",
	}))
	require.Error(t, err)
}
