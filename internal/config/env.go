package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds all environment-based configuration.
type EnvConfig struct {
	// Env: HOST (default: 0.0.0.0)
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// Env: PORT (default: 8080)
	Port int `envconfig:"PORT" default:"8080"`

	// DataDir holds the default SQLite file and local uploads.
	// Env: DATA_DIR (default: ~/.investmatch)
	DataDir string `envconfig:"DATA_DIR"`

	// Env: DB_URL (default: sqlite:///{data_dir}/investmatch.db)
	DBURL string `envconfig:"DB_URL"`

	// Env: LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// Env: LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// SiteURL is the frontend origin redirects point at.
	// Env: SITE_URL (default: http://localhost:3000)
	SiteURL string `envconfig:"SITE_URL" default:"http://localhost:3000"`

	// Env: CORS_ALLOWED_ORIGINS (comma-separated)
	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS"`

	Identity IdentityEnv `envconfig:"IDENTITY"`
	Storage  StorageEnv  `envconfig:"STORAGE"`
	Razorpay RazorpayEnv `envconfig:"RAZORPAY"`

	// Env: VIEW_CACHE_TTL_SECONDS (default: 30)
	ViewCacheTTLSeconds int `envconfig:"VIEW_CACHE_TTL_SECONDS" default:"30"`

	// Env: STARTUP_SEARCH_LIMIT (default: 60)
	StartupSearchLimit int `envconfig:"STARTUP_SEARCH_LIMIT" default:"60"`

	// Env: INVESTOR_SEARCH_LIMIT (default: 120)
	InvestorSearchLimit int `envconfig:"INVESTOR_SEARCH_LIMIT" default:"120"`
}

// IdentityEnv configures the identity provider.
type IdentityEnv struct {
	// Env: IDENTITY_URL
	URL string `envconfig:"URL"`
	// Env: IDENTITY_ANON_KEY
	AnonKey string `envconfig:"ANON_KEY"`
	// Env: IDENTITY_JWT_SECRET
	JWTSecret string `envconfig:"JWT_SECRET"`
}

// StorageEnv configures object storage.
type StorageEnv struct {
	// Env: STORAGE_URL
	URL string `envconfig:"URL"`
	// Env: STORAGE_SERVICE_KEY
	ServiceKey string `envconfig:"SERVICE_KEY"`
	// Env: STORAGE_BUCKET (default: pitch-decks)
	Bucket string `envconfig:"BUCKET" default:"pitch-decks"`
	// Env: STORAGE_LOCAL_DIR (default: {data_dir}/storage)
	LocalDir string `envconfig:"LOCAL_DIR"`
}

// RazorpayEnv configures the payment gateway.
type RazorpayEnv struct {
	// Env: RAZORPAY_KEY_ID
	KeyID string `envconfig:"KEY_ID"`
	// Env: RAZORPAY_KEY_SECRET
	KeySecret string `envconfig:"KEY_SECRET"`
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// ToAppConfig converts EnvConfig to AppConfig.
func (e EnvConfig) ToAppConfig() AppConfig {
	var opts []AppConfigOption

	if e.Host != "" {
		opts = append(opts, WithHost(e.Host))
	}
	if e.Port != 0 {
		opts = append(opts, WithPort(e.Port))
	}
	if e.DataDir != "" {
		opts = append(opts, WithDataDir(e.DataDir))
	}
	if e.DBURL != "" {
		opts = append(opts, WithDBURL(e.DBURL))
	}
	if e.LogLevel != "" {
		opts = append(opts, WithLogLevel(e.LogLevel))
	}
	if e.LogFormat != "" {
		opts = append(opts, WithLogFormat(parseLogFormat(e.LogFormat)))
	}
	if e.SiteURL != "" {
		opts = append(opts, WithSiteURL(e.SiteURL))
	}
	if e.CORSAllowedOrigins != "" {
		opts = append(opts, WithCORSAllowedOrigins(ParseList(e.CORSAllowedOrigins)))
	}

	opts = append(opts,
		WithIdentity(NewIdentityConfig(e.Identity.URL, e.Identity.AnonKey, e.Identity.JWTSecret)),
		WithRazorpay(NewRazorpayConfig(e.Razorpay.KeyID, e.Razorpay.KeySecret)),
		WithViewCacheTTL(time.Duration(e.ViewCacheTTLSeconds)*time.Second),
		WithStartupSearchLimit(e.StartupSearchLimit),
		WithInvestorSearchLimit(e.InvestorSearchLimit),
	)

	cfg := NewAppConfig().Apply(opts...)

	localDir := e.Storage.LocalDir
	if localDir == "" {
		localDir = cfg.Storage().LocalDir()
	}
	return cfg.Apply(WithStorage(NewStorageConfig(e.Storage.URL, e.Storage.ServiceKey, e.Storage.Bucket, localDir)))
}

func parseLogFormat(s string) LogFormat {
	switch strings.ToLower(s) {
	case "json":
		return LogFormatJSON
	default:
		return LogFormatPretty
	}
}
