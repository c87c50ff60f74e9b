package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	envPrefix = "STOREFRONT_"

	defaultEnvFile      = ".env"
	defaultPort         = "8080"
	defaultReadTimeout  = 15 * time.Second
	defaultWriteTimeout = 15 * time.Second
	defaultIdleTimeout  = 60 * time.Second
	defaultReqTimeout   = 30 * time.Second
	defaultTemplatesDir = "templates"
	defaultPublicDir    = "public"
	defaultEnvironment  = "local"
	defaultSiteName     = "Phương Cosmectics"
	defaultBaseURL      = "http://localhost:8080"
	defaultLocale       = "vi"
	defaultLogLevel     = "info"
)

// Config captures runtime configuration organised by concern.
type Config struct {
	Server    ServerConfig
	Site      SiteConfig
	Session   SessionConfig
	Cart      CartConfig
	Analytics AnalyticsConfig
	Log       LogConfig
}

// ServerConfig configures the HTTP listener and rendering inputs.
type ServerConfig struct {
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	RequestTimeout time.Duration
	TemplatesDir   string
	PublicDir      string
	// CatalogDir overrides the embedded catalog data when set.
	CatalogDir string
	DevMode    bool
}

// SiteConfig describes the public storefront identity.
type SiteConfig struct {
	Name          string
	BaseURL       string
	DefaultLocale string
	Environment   string
}

// Production reports whether the site runs in the prod environment.
func (s SiteConfig) Production() bool {
	return strings.EqualFold(s.Environment, "prod")
}

// SessionConfig controls the signed session cookie.
type SessionConfig struct {
	SigningKey string
	Secure     bool
}

// CartConfig selects the cart sink. An empty topic keeps the in-memory sink.
type CartConfig struct {
	PubSubProjectID string
	PubSubTopic     string
}

// AnalyticsConfig is surfaced to templates.
type AnalyticsConfig struct {
	GA4MeasurementID string
	GTMContainerID   string
	Debug            bool
}

// LogConfig controls the zap logger and trace correlation.
type LogConfig struct {
	Level     string
	ProjectID string
}

// ValidationError is returned when required fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing or invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env path. An empty path disables dotenv loading.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects explicit values that take precedence over the OS environment.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv stops Load from consulting os.LookupEnv.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load assembles configuration from defaults, the .env file, the OS environment
// and explicit overrides, in increasing order of precedence.
func Load(ctx context.Context, opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if err := ctx.Err(); err != nil {
		return Config{}, err
	}

	dotEnv, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if v, ok := options.envMap[key]; ok {
			return v, true
		}
		if options.useSystemEnv {
			if v, ok := os.LookupEnv(key); ok {
				return v, true
			}
		}
		v, ok := dotEnv[key]
		return v, ok
	}
	key := func(name string) string { return envPrefix + name }

	// Cloud Run injects PORT; the prefixed key wins when both are set.
	port := stringWithDefault(lookup, "PORT", defaultPort)
	port = stringWithDefault(lookup, key("PORT"), port)

	cfg := Config{
		Server: ServerConfig{
			Port:           port,
			ReadTimeout:    durationWithDefault(lookup, key("READ_TIMEOUT"), defaultReadTimeout),
			WriteTimeout:   durationWithDefault(lookup, key("WRITE_TIMEOUT"), defaultWriteTimeout),
			IdleTimeout:    durationWithDefault(lookup, key("IDLE_TIMEOUT"), defaultIdleTimeout),
			RequestTimeout: durationWithDefault(lookup, key("REQUEST_TIMEOUT"), defaultReqTimeout),
			TemplatesDir:   stringWithDefault(lookup, key("TEMPLATES_DIR"), defaultTemplatesDir),
			PublicDir:      stringWithDefault(lookup, key("PUBLIC_DIR"), defaultPublicDir),
			CatalogDir:     stringWithDefault(lookup, key("CATALOG_DIR"), ""),
			DevMode:        boolWithDefault(lookup, key("DEV"), false),
		},
		Site: SiteConfig{
			Name:          stringWithDefault(lookup, key("SITE_NAME"), defaultSiteName),
			BaseURL:       strings.TrimRight(stringWithDefault(lookup, key("BASE_URL"), defaultBaseURL), "/"),
			DefaultLocale: strings.ToLower(stringWithDefault(lookup, key("DEFAULT_LOCALE"), defaultLocale)),
			Environment:   strings.ToLower(stringWithDefault(lookup, key("ENV"), defaultEnvironment)),
		},
		Session: SessionConfig{
			SigningKey: stringWithDefault(lookup, key("SESSION_SIGNING_KEY"), ""),
		},
		Cart: CartConfig{
			PubSubProjectID: stringWithDefault(lookup, key("CART_PUBSUB_PROJECT"), ""),
			PubSubTopic:     stringWithDefault(lookup, key("CART_PUBSUB_TOPIC"), ""),
		},
		Analytics: AnalyticsConfig{
			GA4MeasurementID: stringWithDefault(lookup, key("GA_MEASUREMENT_ID"), ""),
			GTMContainerID:   stringWithDefault(lookup, key("GTM_CONTAINER_ID"), ""),
			Debug:            boolWithDefault(lookup, key("ANALYTICS_DEBUG"), false),
		},
		Log: LogConfig{
			Level:     stringWithDefault(lookup, "LOG_LEVEL", defaultLogLevel),
			ProjectID: stringWithDefault(lookup, "GOOGLE_CLOUD_PROJECT", ""),
		},
	}
	cfg.Log.Level = stringWithDefault(lookup, key("LOG_LEVEL"), cfg.Log.Level)
	cfg.Session.Secure = boolWithDefault(lookup, key("SESSION_SECURE"), cfg.Site.Production())
	if cfg.Log.ProjectID == "" {
		cfg.Log.ProjectID = cfg.Cart.PubSubProjectID
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg Config) error {
	var invalid []string

	if strings.TrimSpace(cfg.Server.Port) == "" {
		invalid = append(invalid, "Server.Port")
	} else if n, err := strconv.Atoi(cfg.Server.Port); err != nil || n <= 0 || n > 65535 {
		invalid = append(invalid, "Server.Port")
	}
	if cfg.Server.ReadTimeout <= 0 {
		invalid = append(invalid, "Server.ReadTimeout")
	}
	if cfg.Server.WriteTimeout <= 0 {
		invalid = append(invalid, "Server.WriteTimeout")
	}
	if cfg.Server.IdleTimeout <= 0 {
		invalid = append(invalid, "Server.IdleTimeout")
	}
	if cfg.Server.RequestTimeout <= 0 {
		invalid = append(invalid, "Server.RequestTimeout")
	}
	if u, err := url.Parse(cfg.Site.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		invalid = append(invalid, "Site.BaseURL")
	}
	if cfg.Site.Production() && strings.TrimSpace(cfg.Session.SigningKey) == "" {
		invalid = append(invalid, "Session.SigningKey")
	}
	if cfg.Cart.PubSubTopic != "" && cfg.Cart.PubSubProjectID == "" {
		invalid = append(invalid, "Cart.PubSubProjectID")
	}

	if len(invalid) > 0 {
		return &ValidationError{fields: invalid}
	}
	return nil
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	values, err := godotenv.Read(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", path, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) time.Duration {
	if value, ok := lookup(key); ok && value != "" {
		if d, err := time.ParseDuration(strings.TrimSpace(value)); err == nil {
			return d
		}
	}
	return fallback
}

func boolWithDefault(lookup func(string) (string, bool), key string, fallback bool) bool {
	if value, ok := lookup(key); ok && value != "" {
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return fallback
}
