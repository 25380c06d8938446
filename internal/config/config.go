package config

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DefaultDokployURL is the public Dokploy cloud instance used when
// VITE_DOKPLOY_URL is unset.
const DefaultDokployURL = "https://app.dokploy.com"

type Config struct {
	ServiceName     string
	Port            string        `validate:"required,numeric"`
	DokployURL      string        `validate:"required,http_url"`
	DokployAPIKey   string
	// AllowedURLs are the Dokploy instances, besides DokployURL, the
	// dashboard form may load from. The server fetches them itself.
	AllowedURLs     []string      `validate:"dive,http_url"`
	UpstreamTimeout time.Duration `validate:"gt=0"`
	LogLevel        string
	CORSOrigins     []string
	StaticDir       string
	MetricsAddr     string
	MCPEnabled      bool
	// StateDir overrides the directory holding the dokctl state file.
	StateDir string
}

func Load() (*Config, error) {
	timeout, err := time.ParseDuration(getEnv("DOKPLOY_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("parse DOKPLOY_TIMEOUT: %w", err)
	}

	var allowed []string
	for _, u := range splitList(getEnv("DOKPLOY_ALLOWED_URLS", "")) {
		allowed = append(allowed, strings.TrimRight(u, "/"))
	}

	cfg := &Config{
		ServiceName:     getEnv("SERVICE_NAME", "dokdash"),
		Port:            getEnv("PORT", "3000"),
		DokployURL:      strings.TrimRight(getEnv("VITE_DOKPLOY_URL", DefaultDokployURL), "/"),
		DokployAPIKey:   getEnv("VITE_DOKPLOY_API_KEY", ""),
		UpstreamTimeout: timeout,
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		AllowedURLs:     allowed,
		CORSOrigins:     splitList(getEnv("CORS_ORIGINS", "*")),
		StaticDir:       getEnv("STATIC_DIR", ""),
		MetricsAddr:     getEnv("METRICS_ADDR", ""),
		MCPEnabled:      getEnv("MCP_ENABLED", "true") != "false",
		StateDir:        getEnv("DOKDASH_STATE_DIR", ""),
	}

	return cfg, nil
}

var validate = validator.New()

// envNames maps struct fields to the variables that populate them so
// validation errors point at something an operator can fix.
var envNames = map[string]string{
	"Port":            "PORT",
	"DokployURL":      "VITE_DOKPLOY_URL",
	"UpstreamTimeout": "DOKPLOY_TIMEOUT",
	"AllowedURLs":     "DOKPLOY_ALLOWED_URLS",
}

// Validate checks that the loaded configuration is usable.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	var invalid []string
	for _, fe := range verrs {
		field, _, _ := strings.Cut(fe.Field(), "[")
		name := envNames[field]
		if name == "" {
			name = field
		}
		invalid = append(invalid, fmt.Sprintf("%s (%s)", name, fe.Tag()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(invalid, ", "))
}

// ListenAddr is the address the dashboard server binds to.
func (c *Config) ListenAddr() string {
	return "0.0.0.0:" + c.Port
}

// AllowsDokployURL reports whether the dashboard may fetch from baseURL on
// a user's behalf.
func (c *Config) AllowsDokployURL(baseURL string) bool {
	baseURL = strings.TrimRight(baseURL, "/")
	return baseURL == c.DokployURL || slices.Contains(c.AllowedURLs, baseURL)
}

// HasAPIKey reports whether a process-level Dokploy key is configured.
func (c *Config) HasAPIKey() bool {
	return c.DokployAPIKey != ""
}

// splitList splits a comma-separated variable, dropping empty entries.
func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
