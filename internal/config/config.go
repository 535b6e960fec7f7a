// Package config provides application configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Default configuration values.
const (
	DefaultHost                = "0.0.0.0"
	DefaultPort                = 8080
	DefaultLogLevel            = "INFO"
	DefaultSiteURL             = "http://localhost:3000"
	DefaultStorageBucket       = "pitch-decks"
	DefaultViewCacheTTL        = 30 * time.Second
	DefaultStartupSearchLimit  = 60
	DefaultInvestorSearchLimit = 120
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// IdentityConfig points at the GoTrue-compatible identity provider.
type IdentityConfig struct {
	url       string
	anonKey   string
	jwtSecret string
}

// NewIdentityConfig creates an IdentityConfig.
func NewIdentityConfig(url, anonKey, jwtSecret string) IdentityConfig {
	return IdentityConfig{
		url:       strings.TrimRight(url, "/"),
		anonKey:   anonKey,
		jwtSecret: jwtSecret,
	}
}

// URL returns the provider base URL.
func (i IdentityConfig) URL() string { return i.url }

// AnonKey returns the public API key sent with every request.
func (i IdentityConfig) AnonKey() string { return i.anonKey }

// JWTSecret returns the HS256 secret for local token verification.
func (i IdentityConfig) JWTSecret() string { return i.jwtSecret }

// IsConfigured reports whether a provider URL is set.
func (i IdentityConfig) IsConfigured() bool { return i.url != "" }

// StorageConfig selects the object storage backend. A URL selects the
// hosted storage API; otherwise files go to localDir.
type StorageConfig struct {
	url        string
	serviceKey string
	bucket     string
	localDir   string
}

// NewStorageConfig creates a StorageConfig.
func NewStorageConfig(url, serviceKey, bucket, localDir string) StorageConfig {
	if bucket == "" {
		bucket = DefaultStorageBucket
	}
	return StorageConfig{
		url:        strings.TrimRight(url, "/"),
		serviceKey: serviceKey,
		bucket:     bucket,
		localDir:   localDir,
	}
}

// URL returns the storage API base URL.
func (s StorageConfig) URL() string { return s.url }

// ServiceKey returns the storage API key.
func (s StorageConfig) ServiceKey() string { return s.serviceKey }

// Bucket returns the bucket name.
func (s StorageConfig) Bucket() string { return s.bucket }

// LocalDir returns the filesystem directory used without a storage URL.
func (s StorageConfig) LocalDir() string { return s.localDir }

// IsRemote reports whether the hosted storage API is used.
func (s StorageConfig) IsRemote() bool { return s.url != "" }

// RazorpayConfig holds payment gateway credentials.
type RazorpayConfig struct {
	keyID     string
	keySecret string
}

// NewRazorpayConfig creates a RazorpayConfig.
func NewRazorpayConfig(keyID, keySecret string) RazorpayConfig {
	return RazorpayConfig{keyID: keyID, keySecret: keySecret}
}

// KeyID returns the public key id.
func (r RazorpayConfig) KeyID() string { return r.keyID }

// KeySecret returns the signing secret.
func (r RazorpayConfig) KeySecret() string { return r.keySecret }

// IsConfigured reports whether both credentials are present.
func (r RazorpayConfig) IsConfigured() bool { return r.keyID != "" && r.keySecret != "" }

// AppConfig holds the main application configuration.
type AppConfig struct {
	host                string
	port                int
	dataDir             string
	dbURL               string
	logLevel            string
	logFormat           LogFormat
	siteURL             string
	corsAllowedOrigins  []string
	identity            IdentityConfig
	storage             StorageConfig
	razorpay            RazorpayConfig
	viewCacheTTL        time.Duration
	startupSearchLimit  int
	investorSearchLimit int
}

// DefaultDataDir returns the default data directory.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".investmatch"
	}
	return filepath.Join(home, ".investmatch")
}

// NewAppConfig creates a new AppConfig with defaults.
func NewAppConfig() AppConfig {
	dataDir := DefaultDataDir()
	return AppConfig{
		host:                DefaultHost,
		port:                DefaultPort,
		dataDir:             dataDir,
		dbURL:               "sqlite:///" + filepath.Join(dataDir, "investmatch.db"),
		logLevel:            DefaultLogLevel,
		logFormat:           LogFormatPretty,
		siteURL:             DefaultSiteURL,
		corsAllowedOrigins:  []string{},
		storage:             NewStorageConfig("", "", DefaultStorageBucket, filepath.Join(dataDir, "storage")),
		viewCacheTTL:        DefaultViewCacheTTL,
		startupSearchLimit:  DefaultStartupSearchLimit,
		investorSearchLimit: DefaultInvestorSearchLimit,
	}
}

// Host returns the server host to bind to.
func (c AppConfig) Host() string { return c.host }

// Port returns the server port to listen on.
func (c AppConfig) Port() int { return c.port }

// Addr returns the combined host:port address.
func (c AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.host, c.port)
}

// DataDir returns the data directory path.
func (c AppConfig) DataDir() string { return c.dataDir }

// DBURL returns the database connection URL.
func (c AppConfig) DBURL() string { return c.dbURL }

// LogLevel returns the log level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// SiteURL returns the public frontend origin used for redirects.
func (c AppConfig) SiteURL() string { return c.siteURL }

// CORSAllowedOrigins returns the browser origins allowed by CORS.
func (c AppConfig) CORSAllowedOrigins() []string {
	origins := make([]string, len(c.corsAllowedOrigins))
	copy(origins, c.corsAllowedOrigins)
	return origins
}

// Identity returns the identity provider config.
func (c AppConfig) Identity() IdentityConfig { return c.identity }

// Storage returns the object storage config.
func (c AppConfig) Storage() StorageConfig { return c.storage }

// Razorpay returns the payment gateway config.
func (c AppConfig) Razorpay() RazorpayConfig { return c.razorpay }

// ViewCacheTTL returns how long cached list views live.
func (c AppConfig) ViewCacheTTL() time.Duration { return c.viewCacheTTL }

// StartupSearchLimit returns the startup listing row cap.
func (c AppConfig) StartupSearchLimit() int { return c.startupSearchLimit }

// InvestorSearchLimit returns the investor listing row cap.
func (c AppConfig) InvestorSearchLimit() int { return c.investorSearchLimit }

// EnsureDataDir creates the data directory if it doesn't exist.
func (c AppConfig) EnsureDataDir() error {
	return os.MkdirAll(c.dataDir, 0o755)
}

// AppConfigOption is a functional option for AppConfig.
type AppConfigOption func(*AppConfig)

// WithHost sets the server host.
func WithHost(host string) AppConfigOption {
	return func(c *AppConfig) { c.host = host }
}

// WithPort sets the server port.
func WithPort(port int) AppConfigOption {
	return func(c *AppConfig) { c.port = port }
}

// WithDataDir sets the data directory. A default SQLite URL and local
// storage directory follow it.
func WithDataDir(dir string) AppConfigOption {
	return func(c *AppConfig) {
		c.dataDir = dir
		if c.dbURL == "" || strings.HasSuffix(c.dbURL, "investmatch.db") {
			c.dbURL = "sqlite:///" + filepath.Join(dir, "investmatch.db")
		}
		if !c.storage.IsRemote() {
			c.storage.localDir = filepath.Join(dir, "storage")
		}
	}
}

// WithDBURL sets the database URL.
func WithDBURL(url string) AppConfigOption {
	return func(c *AppConfig) { c.dbURL = url }
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) AppConfigOption {
	return func(c *AppConfig) { c.logLevel = level }
}

// WithLogFormat sets the log format.
func WithLogFormat(format LogFormat) AppConfigOption {
	return func(c *AppConfig) { c.logFormat = format }
}

// WithSiteURL sets the frontend origin.
func WithSiteURL(url string) AppConfigOption {
	return func(c *AppConfig) { c.siteURL = strings.TrimRight(url, "/") }
}

// WithCORSAllowedOrigins sets the CORS origins.
func WithCORSAllowedOrigins(origins []string) AppConfigOption {
	return func(c *AppConfig) {
		c.corsAllowedOrigins = make([]string, len(origins))
		copy(c.corsAllowedOrigins, origins)
	}
}

// WithIdentity sets the identity provider config.
func WithIdentity(i IdentityConfig) AppConfigOption {
	return func(c *AppConfig) { c.identity = i }
}

// WithStorage sets the object storage config.
func WithStorage(s StorageConfig) AppConfigOption {
	return func(c *AppConfig) { c.storage = s }
}

// WithRazorpay sets the payment gateway config.
func WithRazorpay(r RazorpayConfig) AppConfigOption {
	return func(c *AppConfig) { c.razorpay = r }
}

// WithViewCacheTTL sets the view cache lifetime.
func WithViewCacheTTL(d time.Duration) AppConfigOption {
	return func(c *AppConfig) {
		if d > 0 {
			c.viewCacheTTL = d
		}
	}
}

// WithStartupSearchLimit sets the startup listing cap.
func WithStartupSearchLimit(n int) AppConfigOption {
	return func(c *AppConfig) {
		if n > 0 {
			c.startupSearchLimit = n
		}
	}
}

// WithInvestorSearchLimit sets the investor listing cap.
func WithInvestorSearchLimit(n int) AppConfigOption {
	return func(c *AppConfig) {
		if n > 0 {
			c.investorSearchLimit = n
		}
	}
}

// NewAppConfigWithOptions creates an AppConfig with functional options.
func NewAppConfigWithOptions(opts ...AppConfigOption) AppConfig {
	return NewAppConfig().Apply(opts...)
}

// Apply returns a new AppConfig with the given options applied.
func (c AppConfig) Apply(opts ...AppConfigOption) AppConfig {
	c.corsAllowedOrigins = c.CORSAllowedOrigins()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// LogAttrs returns slog attributes for logging the configuration.
// Secrets are reported as set or unset only.
func (c AppConfig) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("data_dir", c.dataDir),
		slog.String("log_level", c.logLevel),
		slog.String("db_url", c.maskedDBURL()),
		slog.String("site_url", c.siteURL),
		slog.Int("cors_origins", len(c.corsAllowedOrigins)),
		slog.String("identity_url", orNone(c.identity.URL())),
		slog.Bool("identity_jwt_secret_set", c.identity.JWTSecret() != ""),
		slog.String("storage_url", orNone(c.storage.URL())),
		slog.String("storage_bucket", c.storage.Bucket()),
		slog.Bool("razorpay_configured", c.razorpay.IsConfigured()),
		slog.Duration("view_cache_ttl", c.viewCacheTTL),
	}
}

func (c AppConfig) maskedDBURL() string {
	if c.dbURL == "" {
		return "(default)"
	}
	if strings.HasPrefix(c.dbURL, "sqlite:") {
		return c.dbURL
	}
	return "postgres://***@***"
}

func orNone(s string) string {
	if s == "" {
		return "(not configured)"
	}
	return s
}

// ParseList parses a comma-separated list, dropping blanks.
func ParseList(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
