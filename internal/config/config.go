// Package config handles loading and validation of service configuration.
// Supports both development (env vars) and production (Secret Manager) modes.
package config

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"time"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"

	"storefront-proxy/internal/model"
	"storefront-proxy/internal/pricing"
)

// DefaultSessionTTL bounds how long an idle session's persisted documents
// are kept.
const DefaultSessionTTL = 30 * 24 * time.Hour

// Config holds all service configuration.
// Environment determines whether secrets load from env vars (development) or
// Secret Manager (production).
type Config struct {
	// Server settings
	Port        string
	Environment string // "development" or "production"
	LogLevel    string // "debug", "info", "warn", "error"

	// GCP settings (required in production)
	GCPProject string
	StoreID    string

	// Store-specific configuration (loaded from secrets)
	Store StoreConfig
}

// StoreConfig contains store-specific settings.
// In production, this is loaded from Secret Manager as JSON.
// In development, loaded from individual env vars or CONFIG_FILE.
type StoreConfig struct {
	BackendURL    string `json:"backend_url"`
	BackendAPIKey string `json:"backend_api_key"`
	StoreName     string `json:"store_name,omitempty"`

	// RedisAddr enables durable session persistence. Empty means in-memory
	// only (development).
	RedisAddr     string `json:"redis_addr,omitempty"`
	RedisPassword string `json:"redis_password,omitempty"`

	// GeoServiceURL points at the IP-geolocation service used to default
	// the display currency. Empty disables the lookup.
	GeoServiceURL string `json:"geo_service_url,omitempty"`

	DefaultCurrency string `json:"default_currency,omitempty"`

	// ShippingFlatRate is the flat-rate shipping cost in major units
	// ("10.00"). Empty uses the built-in default.
	ShippingFlatRate string `json:"shipping_flat_rate,omitempty"`

	// MinClientVersion rejects clients older than this semantic version.
	// Empty disables the gate.
	MinClientVersion string `json:"min_client_version,omitempty"`

	// SessionTTLHours overrides DefaultSessionTTL when positive.
	SessionTTLHours int `json:"session_ttl_hours,omitempty"`
}

// Load reads configuration from file, environment, or Secret Manager.
// Priority: CONFIG_FILE (if set) → ENV vars / Secret Manager.
// Validates all required fields and returns an error if any are missing.
func Load(ctx context.Context) (*Config, error) {
	// If CONFIG_FILE is set, load everything from the JSON file
	if configPath := os.Getenv("CONFIG_FILE"); configPath != "" {
		return loadFromFile(configPath)
	}

	// Otherwise, use ENV vars / Secret Manager approach
	cfg := &Config{
		Port:        envOrDefault("PORT", "8080"),
		Environment: envOrDefault("ENVIRONMENT", "development"),
		LogLevel:    envOrDefault("LOG_LEVEL", "info"),
		GCPProject:  os.Getenv("GCP_PROJECT"),
		StoreID:     os.Getenv("STORE_ID"),
	}

	// StoreID required in all environments
	if cfg.StoreID == "" {
		return nil, fmt.Errorf("STORE_ID environment variable required")
	}

	// Load store config based on environment
	var err error
	if cfg.Environment == "production" {
		if cfg.GCPProject == "" {
			return nil, fmt.Errorf("GCP_PROJECT required in production environment")
		}
		err = cfg.loadFromSecretManager(ctx)
	} else {
		err = cfg.loadFromEnv()
	}
	if err != nil {
		return nil, fmt.Errorf("loading store config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile reads all configuration from a JSON file.
// Used for local development to avoid multiple ENV vars.
func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var fileConfig struct {
		Port        string      `json:"port"`
		Environment string      `json:"environment"`
		LogLevel    string      `json:"log_level"`
		StoreID     string      `json:"store_id"`
		Store       StoreConfig `json:"store"`
	}

	if err := json.Unmarshal(data, &fileConfig); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg := &Config{
		Port:        withDefault(fileConfig.Port, "8080"),
		Environment: withDefault(fileConfig.Environment, "development"),
		LogLevel:    withDefault(fileConfig.LogLevel, "info"),
		StoreID:     fileConfig.StoreID,
		Store:       fileConfig.Store,
	}

	if cfg.StoreID == "" {
		return nil, fmt.Errorf("store_id is required")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// withDefault returns val if non-empty, otherwise defaultVal.
func withDefault(val, defaultVal string) string {
	if val != "" {
		return val
	}
	return defaultVal
}

// loadFromSecretManager fetches store config from GCP Secret Manager.
// Secret name format: projects/{project}/secrets/{store_id}/versions/latest
func (c *Config) loadFromSecretManager(ctx context.Context) error {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("creating secret manager client: %w", err)
	}
	defer client.Close()

	secretName := fmt.Sprintf("projects/%s/secrets/%s/versions/latest",
		c.GCPProject, c.StoreID)

	result, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: secretName,
	})
	if err != nil {
		return fmt.Errorf("accessing secret %s: %w", secretName, err)
	}

	if err := json.Unmarshal(result.Payload.Data, &c.Store); err != nil {
		return fmt.Errorf("parsing secret JSON: %w", err)
	}

	return nil
}

// loadFromEnv reads store config from individual environment variables.
// Used in development mode for local testing.
func (c *Config) loadFromEnv() error {
	c.Store = StoreConfig{
		BackendURL:       os.Getenv("STORE_BACKEND_URL"),
		BackendAPIKey:    os.Getenv("STORE_BACKEND_API_KEY"),
		StoreName:        os.Getenv("STORE_NAME"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		GeoServiceURL:    os.Getenv("GEO_SERVICE_URL"),
		DefaultCurrency:  os.Getenv("DEFAULT_CURRENCY"),
		ShippingFlatRate: os.Getenv("SHIPPING_FLAT_RATE"),
		MinClientVersion: os.Getenv("MIN_CLIENT_VERSION"),
	}

	if hours := os.Getenv("SESSION_TTL_HOURS"); hours != "" {
		var n int
		if _, err := fmt.Sscanf(hours, "%d", &n); err != nil {
			return fmt.Errorf("parsing SESSION_TTL_HOURS: %w", err)
		}
		c.Store.SessionTTLHours = n
	}

	return nil
}

// validate checks that all required configuration fields are present.
func (c *Config) validate() error {
	if c.Store.BackendURL == "" {
		return fmt.Errorf("backend_url is required")
	}
	if c.Store.BackendAPIKey == "" {
		return fmt.Errorf("backend_api_key is required")
	}

	// Validate backend URL is well-formed
	if _, err := url.Parse(c.Store.BackendURL); err != nil {
		return fmt.Errorf("invalid backend_url: %w", err)
	}

	if c.Store.ShippingFlatRate != "" && model.ParseCents(c.Store.ShippingFlatRate) <= 0 {
		return fmt.Errorf("invalid shipping_flat_rate %q", c.Store.ShippingFlatRate)
	}

	return nil
}

// ShippingFlatRateCents returns the configured flat shipping rate, or the
// built-in default when unset.
func (c *Config) ShippingFlatRateCents() int64 {
	if c.Store.ShippingFlatRate == "" {
		return pricing.DefaultFlatRateCents
	}
	return model.ParseCents(c.Store.ShippingFlatRate)
}

// SessionTTL returns the persisted-session lifetime.
func (c *Config) SessionTTL() time.Duration {
	if c.Store.SessionTTLHours > 0 {
		return time.Duration(c.Store.SessionTTLHours) * time.Hour
	}
	return DefaultSessionTTL
}

// envOrDefault returns the environment variable value or the default if not set.
func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
