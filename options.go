package investmatch

import (
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/investmatch/investmatch/application/service"
	domainservice "github.com/investmatch/investmatch/domain/service"
	"github.com/investmatch/investmatch/internal/config"
)

// clientConfig holds configuration for Client construction.
// Use newClientConfig() to create with defaults from internal/config.
type clientConfig struct {
	dbURL        string
	dataDir      string
	siteURL      string
	logger       *slog.Logger
	httpClient   *http.Client
	viewCacheTTL time.Duration
	limits       service.SearchLimits

	identity         domainservice.Identity
	identityURL      string
	identityAnonKey  string
	identityJWT      string
	bucket           domainservice.Bucket
	storage          config.StorageConfig
	filesBaseURL     string
	orders           domainservice.Orders
	razorpayKeyID    string
	razorpaySecret   string
	skipSchemaChecks bool
}

// newClientConfig creates a clientConfig with defaults from internal/config.
func newClientConfig() *clientConfig {
	app := config.NewAppConfig()
	return &clientConfig{
		dataDir:      app.DataDir(),
		siteURL:      app.SiteURL(),
		viewCacheTTL: app.ViewCacheTTL(),
		limits:       service.DefaultSearchLimits(),
		storage:      app.Storage(),
		httpClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Option configures the Client.
type Option func(*clientConfig)

// WithConfig applies an application configuration: database, site URL,
// identity provider, storage, payments, cache and search limits.
func WithConfig(cfg config.AppConfig) Option {
	return func(c *clientConfig) {
		c.dbURL = cfg.DBURL()
		c.dataDir = cfg.DataDir()
		c.siteURL = cfg.SiteURL()
		c.viewCacheTTL = cfg.ViewCacheTTL()
		c.limits = service.SearchLimits{
			Startups:  cfg.StartupSearchLimit(),
			Investors: cfg.InvestorSearchLimit(),
		}
		c.identityURL = cfg.Identity().URL()
		c.identityAnonKey = cfg.Identity().AnonKey()
		c.identityJWT = cfg.Identity().JWTSecret()
		c.storage = cfg.Storage()
		c.razorpayKeyID = cfg.Razorpay().KeyID()
		c.razorpaySecret = cfg.Razorpay().KeySecret()
	}
}

// WithDatabaseURL sets the database, as sqlite:///path or postgres://...
func WithDatabaseURL(url string) Option {
	return func(c *clientConfig) {
		c.dbURL = url
	}
}

// WithSQLite configures a SQLite database file.
func WithSQLite(path string) Option {
	return func(c *clientConfig) {
		c.dbURL = "sqlite:///" + path
	}
}

// WithDataDir sets the directory holding the default database and local
// uploads.
func WithDataDir(dir string) Option {
	return func(c *clientConfig) {
		c.dataDir = dir
		c.storage = config.NewStorageConfig(c.storage.URL(), c.storage.ServiceKey(), c.storage.Bucket(), filepath.Join(dir, "storage"))
	}
}

// WithSiteURL sets the frontend origin used for redirects.
func WithSiteURL(url string) Option {
	return func(c *clientConfig) {
		c.siteURL = url
	}
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}

// WithHTTPClient sets the client used for the identity, storage and
// payment APIs.
func WithHTTPClient(h *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = h
	}
}

// WithIdentityProvider configures the GoTrue-compatible identity provider.
// A non-empty jwtSecret verifies access tokens locally.
func WithIdentityProvider(url, anonKey, jwtSecret string) Option {
	return func(c *clientConfig) {
		c.identityURL = url
		c.identityAnonKey = anonKey
		c.identityJWT = jwtSecret
	}
}

// WithIdentity sets a custom identity provider.
func WithIdentity(i domainservice.Identity) Option {
	return func(c *clientConfig) {
		c.identity = i
	}
}

// WithStorage configures object storage. An empty URL stores decks under
// the local directory instead.
func WithStorage(s config.StorageConfig) Option {
	return func(c *clientConfig) {
		c.storage = s
	}
}

// WithFilesBaseURL sets the public prefix for locally stored files.
// Defaults to {siteURL}/files.
func WithFilesBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.filesBaseURL = url
	}
}

// WithBucket sets a custom deck store.
func WithBucket(b domainservice.Bucket) Option {
	return func(c *clientConfig) {
		c.bucket = b
	}
}

// WithRazorpay configures the payment gateway.
func WithRazorpay(keyID, keySecret string) Option {
	return func(c *clientConfig) {
		c.razorpayKeyID = keyID
		c.razorpaySecret = keySecret
	}
}

// WithOrders sets a custom order provider. secret signs checkout callbacks.
func WithOrders(o domainservice.Orders, secret string) Option {
	return func(c *clientConfig) {
		c.orders = o
		c.razorpaySecret = secret
	}
}

// WithViewCacheTTL sets how long rendered views are cached. Zero disables
// the cache.
func WithViewCacheTTL(d time.Duration) Option {
	return func(c *clientConfig) {
		c.viewCacheTTL = d
	}
}

// WithSearchLimits sets the directory row limits.
func WithSearchLimits(startups, investors int) Option {
	return func(c *clientConfig) {
		if startups > 0 {
			c.limits.Startups = startups
		}
		if investors > 0 {
			c.limits.Investors = investors
		}
	}
}

// WithSkipSchemaValidation skips the post-migration schema check.
// Intended for tests.
func WithSkipSchemaValidation() Option {
	return func(c *clientConfig) {
		c.skipSchemaChecks = true
	}
}
