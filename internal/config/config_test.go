package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "memory", cfg.StorageBackend)
	assert.Equal(t, "data", cfg.StoragePath)
	assert.Equal(t, "localhost:6379", cfg.RedisURL)
	assert.Equal(t, time.Minute, cfg.SweepInterval)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "sqlite")
	t.Setenv("STORAGE_PATH", "/var/lib/chatterverse")
	t.Setenv("SWEEP_INTERVAL", "30s")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.StorageBackend)
	assert.Equal(t, "/var/lib/chatterverse", cfg.StoragePath)
	assert.Equal(t, 30*time.Second, cfg.SweepInterval)
}

func TestLoadConfigRejectsUnknownBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "etcd")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"memory ok", Config{StorageBackend: "memory", SweepInterval: time.Minute}, false},
		{"file needs path", Config{StorageBackend: "file", SweepInterval: time.Minute}, true},
		{"file with path", Config{StorageBackend: "file", StoragePath: "data", SweepInterval: time.Minute}, false},
		{"sqlite needs path", Config{StorageBackend: "sqlite", SweepInterval: time.Minute}, true},
		{"redis needs url", Config{StorageBackend: "redis", SweepInterval: time.Minute}, true},
		{"redis with url", Config{StorageBackend: "redis", RedisURL: "localhost:6379", SweepInterval: time.Minute}, false},
		{"zero sweep interval", Config{StorageBackend: "memory"}, true},
		{"negative sweep interval", Config{StorageBackend: "memory", SweepInterval: -time.Second}, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
