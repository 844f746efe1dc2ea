package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"PORT", "STORE_DRIVER", "MONGO_URI", "MONGO_DATABASE", "MONGO_TRANSACTIONS",
	"BADGER_PATH", "CORS_ORIGIN", "BODY_LIMIT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, Config{
		Addr:          ":3000",
		StoreDriver:   DriverMongo,
		MongoURI:      "mongodb://localhost:27017",
		MongoDatabase: "social-network",
		BadgerPath:    "data/badger",
		CORSOrigin:    "http://localhost:5173",
		BodyLimit:     10 * 1024 * 1024,
	}, cfg)
	// Matches the 10mb limit of the JSON and urlencoded body parsers
	assert.Equal(t, int64(10485760), cfg.BodyLimit)
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "127.0.0.1:8080")
	t.Setenv("STORE_DRIVER", "Badger")
	t.Setenv("MONGO_TRANSACTIONS", "true")
	t.Setenv("BADGER_PATH", "/tmp/social")
	t.Setenv("CORS_ORIGIN", "https://app.example.com")
	t.Setenv("BODY_LIMIT", "1MiB")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8080", cfg.Addr)
	assert.Equal(t, DriverBadger, cfg.StoreDriver)
	assert.True(t, cfg.MongoTransactions)
	assert.Equal(t, "/tmp/social", cfg.BadgerPath)
	assert.Equal(t, "https://app.example.com", cfg.CORSOrigin)
	assert.Equal(t, int64(1<<20), cfg.BodyLimit)
}

func TestFromEnvErrors(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		want  string
	}{
		{"unknown driver", "STORE_DRIVER", "postgres", "unknown STORE_DRIVER"},
		{"bad transactions flag", "MONGO_TRANSACTIONS", "maybe", "invalid MONGO_TRANSACTIONS"},
		{"bad body limit", "BODY_LIMIT", "lots", "invalid BODY_LIMIT"},
		{"zero body limit", "BODY_LIMIT", "0", "must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := FromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("CORS_ORIGIN")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("CORS_ORIGIN=http://dotenv.example\n"), 0644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		os.Chdir(wd)
		os.Unsetenv("CORS_ORIGIN")
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://dotenv.example", cfg.CORSOrigin)
}
