package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type SessionConfig struct {
	CookieName string `yaml:"cookie_name"`
	Secret     string `yaml:"secret"`
	Secure     bool   `yaml:"secure"`
	MaxAge     int    `yaml:"max_age"`
}

type UploadConfig struct {
	MaxPhotoBytes        int64 `yaml:"max_photo_bytes"`
	MaxProfilePhotoBytes int64 `yaml:"max_profile_photo_bytes"`
}

type CacheConfig struct {
	TTL time.Duration `yaml:"ttl"`
}

type GalleryConfig struct {
	// PageSize of 0 renders the whole fetched list.
	PageSize int `yaml:"page_size"`
}

type ObservabilityConfig struct {
	ServiceName  string `yaml:"service_name"`
	MetricsAddr  string `yaml:"metrics_addr"`
	OTLPEndpoint string `yaml:"otlp_endpoint"`
	PprofAddr    string `yaml:"pprof_addr"`
}

type Config struct {
	ServerPort    string              `yaml:"server_port"`
	LogLevel      string              `yaml:"log_level"`
	API           APIConfig           `yaml:"api"`
	Session       SessionConfig       `yaml:"session"`
	Upload        UploadConfig        `yaml:"upload"`
	Cache         CacheConfig         `yaml:"cache"`
	Gallery       GalleryConfig       `yaml:"gallery"`
	Observability ObservabilityConfig `yaml:"observability"`
}

const minSecretLength = 32

// Default returns the configuration used when neither a file nor the
// environment override a value.
func Default() *Config {
	return &Config{
		ServerPort: "8091",
		LogLevel:   "info",
		API: APIConfig{
			BaseURL: "http://localhost:5000",
			Timeout: 30 * time.Second,
		},
		Session: SessionConfig{
			CookieName: "photoshare_session",
			MaxAge:     int((7 * 24 * time.Hour).Seconds()),
		},
		Upload: UploadConfig{
			MaxPhotoBytes:        10 << 20,
			MaxProfilePhotoBytes: 5 << 20,
		},
		Cache: CacheConfig{
			TTL: 30 * time.Second,
		},
		Observability: ObservabilityConfig{
			ServiceName: "photoshare-web",
			MetricsAddr: ":9092",
		},
	}
}

// Load builds the configuration from defaults, the optional YAML file named by
// CONFIG_FILE and finally the environment.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.ServerPort = getEnvOrDefault("SERVER_PORT", c.ServerPort)
	c.LogLevel = getEnvOrDefault("LOG_LEVEL", c.LogLevel)

	c.API.BaseURL = strings.TrimRight(getEnvOrDefault("API_BASE_URL", c.API.BaseURL), "/")
	c.Session.CookieName = getEnvOrDefault("SESSION_COOKIE_NAME", c.Session.CookieName)
	c.Session.Secret = getEnvOrDefault("SESSION_SECRET", c.Session.Secret)

	c.Observability.ServiceName = getEnvOrDefault("OTEL_SERVICE_NAME", c.Observability.ServiceName)
	c.Observability.MetricsAddr = getEnvOrDefault("METRICS_ADDR", c.Observability.MetricsAddr)
	c.Observability.OTLPEndpoint = getEnvOrDefault("OTLP_ENDPOINT", c.Observability.OTLPEndpoint)
	c.Observability.PprofAddr = getEnvOrDefault("PPROF_ADDR", c.Observability.PprofAddr)

	var err error
	if c.API.Timeout, err = getDurationOrDefault("API_TIMEOUT", c.API.Timeout); err != nil {
		return err
	}
	if c.Cache.TTL, err = getDurationOrDefault("CACHE_TTL", c.Cache.TTL); err != nil {
		return err
	}
	if c.Session.Secure, err = getBoolOrDefault("SESSION_SECURE", c.Session.Secure); err != nil {
		return err
	}
	if c.Session.MaxAge, err = getIntOrDefault("SESSION_MAX_AGE", c.Session.MaxAge); err != nil {
		return err
	}
	if c.Gallery.PageSize, err = getIntOrDefault("GALLERY_PAGE_SIZE", c.Gallery.PageSize); err != nil {
		return err
	}
	if c.Upload.MaxPhotoBytes, err = getInt64OrDefault("UPLOAD_MAX_PHOTO_BYTES", c.Upload.MaxPhotoBytes); err != nil {
		return err
	}
	if c.Upload.MaxProfilePhotoBytes, err = getInt64OrDefault("UPLOAD_MAX_PROFILE_PHOTO_BYTES", c.Upload.MaxProfilePhotoBytes); err != nil {
		return err
	}
	return nil
}

// Validate reports the first setting that would keep the server from working.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("API_BASE_URL %q is not an absolute URL", c.API.BaseURL)
	}
	if len(c.Session.Secret) < minSecretLength {
		return fmt.Errorf("SESSION_SECRET environment variable is required (at least %d bytes)", minSecretLength)
	}
	if c.Upload.MaxPhotoBytes <= 0 || c.Upload.MaxProfilePhotoBytes <= 0 {
		return fmt.Errorf("upload size limits must be positive")
	}
	if c.Gallery.PageSize < 0 {
		return fmt.Errorf("GALLERY_PAGE_SIZE must not be negative")
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getBoolOrDefault(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getIntOrDefault(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getInt64OrDefault(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
