package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoad(t *testing.T) {
	t.Run("requires a session secret", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "")
		t.Setenv("CONFIG_FILE", "")

		cfg, err := Load()
		assert.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("applies defaults", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", testSecret)
		t.Setenv("CONFIG_FILE", "")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "8091", cfg.ServerPort)
		assert.Equal(t, "http://localhost:5000", cfg.API.BaseURL)
		assert.Equal(t, int64(10<<20), cfg.Upload.MaxPhotoBytes)
		assert.Equal(t, int64(5<<20), cfg.Upload.MaxProfilePhotoBytes)
		assert.Equal(t, 0, cfg.Gallery.PageSize)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", testSecret)
		t.Setenv("CONFIG_FILE", "")
		t.Setenv("API_BASE_URL", "https://photos.example.com/")
		t.Setenv("API_TIMEOUT", "5s")
		t.Setenv("GALLERY_PAGE_SIZE", "12")
		t.Setenv("SESSION_SECURE", "true")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "https://photos.example.com", cfg.API.BaseURL)
		assert.Equal(t, 5*time.Second, cfg.API.Timeout)
		assert.Equal(t, 12, cfg.Gallery.PageSize)
		assert.True(t, cfg.Session.Secure)
	})

	t.Run("reads the yaml file before the environment", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		content := []byte("server_port: \"9000\"\napi:\n  base_url: https://file.example.com\ncache:\n  ttl: 1m\n")
		require.NoError(t, os.WriteFile(path, content, 0o600))

		t.Setenv("CONFIG_FILE", path)
		t.Setenv("SESSION_SECRET", testSecret)
		t.Setenv("SERVER_PORT", "9100")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "9100", cfg.ServerPort)
		assert.Equal(t, "https://file.example.com", cfg.API.BaseURL)
		assert.Equal(t, time.Minute, cfg.Cache.TTL)
	})

	t.Run("rejects malformed numbers", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", testSecret)
		t.Setenv("CONFIG_FILE", "")
		t.Setenv("UPLOAD_MAX_PHOTO_BYTES", "ten")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("rejects a relative api url", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", testSecret)
		t.Setenv("CONFIG_FILE", "")
		t.Setenv("API_BASE_URL", "photos.local")

		_, err := Load()
		assert.Error(t, err)
	})
}
