// Package investmatch connects startup founders with investors: directory
// search, a pipeline CRM, pitch sending with notifications, payments and
// admin dashboards.
//
// Basic usage:
//
//	client, err := investmatch.New(
//	    investmatch.WithSQLite("investmatch.db"),
//	    investmatch.WithIdentityProvider(url, anonKey, jwtSecret),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	investors, err := client.Directory.SearchInvestors(ctx, directory.NewFilter(
//	    directory.WithSectors("fintech"),
//	))
package investmatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/investmatch/investmatch/application/service"
	domainservice "github.com/investmatch/investmatch/domain/service"
	"github.com/investmatch/investmatch/infrastructure/identity"
	"github.com/investmatch/investmatch/infrastructure/payment"
	"github.com/investmatch/investmatch/infrastructure/persistence"
	"github.com/investmatch/investmatch/infrastructure/storage"
	"github.com/investmatch/investmatch/internal/cache"
	"github.com/investmatch/investmatch/internal/database"
)

// ErrNoDatabase is returned when neither a database URL nor a data
// directory is configured.
var ErrNoDatabase = errors.New("investmatch: no database configured")

// Client is the main entry point. Access services via struct fields:
//
//	client.Directory.SearchStartups(ctx, filter)
//	client.Pipeline.Create(ctx, actor, investorID, startupID)
type Client struct {
	Auth          *service.Auth
	Directory     *service.Directory
	Pipeline      *service.Pipeline
	Pitches       *service.Pitches
	Notifications *service.Notifications
	Payments      *service.Payments
	Admin         *service.Admin

	db            database.Database
	views         *cache.Views
	filesDir      string
	razorpayKeyID string
	siteURL       string
	logger        *slog.Logger
	closed        atomic.Bool
	mu            sync.Mutex
}

// New opens the database, migrates it and wires every service.
func New(opts ...Option) (*Client, error) {
	cfg := newClientConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	dbURL := cfg.dbURL
	if dbURL == "" {
		if cfg.dataDir == "" {
			return nil, ErrNoDatabase
		}
		if err := os.MkdirAll(cfg.dataDir, 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
		dbURL = "sqlite:///" + filepath.Join(cfg.dataDir, "investmatch.db")
	}

	ctx := context.Background()
	db, err := database.NewDatabase(ctx, dbURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := persistence.AutoMigrate(db); err != nil {
		return nil, errors.Join(err, db.Close())
	}
	if !cfg.skipSchemaChecks {
		if err := persistence.ValidateSchema(db); err != nil {
			return nil, errors.Join(fmt.Errorf("validate schema: %w", err), db.Close())
		}
	}

	client := &Client{
		db:            db,
		views:         cache.NewViews(cfg.viewCacheTTL),
		razorpayKeyID: cfg.razorpayKeyID,
		siteURL:       strings.TrimRight(cfg.siteURL, "/"),
		logger:        logger,
	}

	bucket, err := client.buildBucket(cfg)
	if err != nil {
		return nil, errors.Join(err, db.Close())
	}

	profiles := persistence.NewProfileStore(db)
	startups := persistence.NewStartupStore(db)
	investors := persistence.NewInvestorStore(db)
	entries := persistence.NewPipelineStore(db)
	pitches := persistence.NewPitchStore(db)
	recipients := persistence.NewRecipientStore(db)
	notifications := persistence.NewNotificationStore(db)
	payments := persistence.NewPaymentStore(db)

	client.Auth = service.NewAuth(client.buildIdentity(cfg), profiles, client.siteURL+"/auth/callback", logger)
	client.Directory = service.NewDirectory(startups, investors, client.views, cfg.limits, logger)
	client.Pipeline = service.NewPipeline(entries, startups, investors, notifications, client.views, logger)
	client.Pitches = service.NewPitches(pitches, recipients, startups, investors, notifications, bucket, client.views, logger)
	client.Notifications = service.NewNotifications(notifications, client.views)
	client.Payments = service.NewPayments(client.buildOrders(cfg), payments, cfg.razorpaySecret, logger)
	client.Admin = service.NewAdmin(profiles, startups, investors, entries, pitches, notifications, payments)

	return client, nil
}

func (c *Client) buildIdentity(cfg *clientConfig) domainservice.Identity {
	if cfg.identity != nil {
		return cfg.identity
	}
	if cfg.identityURL == "" {
		c.logger.Warn("identity provider not configured; authentication endpoints will fail")
	}
	return identity.NewClient(cfg.identityURL, cfg.identityAnonKey,
		identity.WithHTTPClient(cfg.httpClient),
		identity.WithJWTSecret(cfg.identityJWT),
	)
}

func (c *Client) buildBucket(cfg *clientConfig) (domainservice.Bucket, error) {
	if cfg.bucket != nil {
		return cfg.bucket, nil
	}
	s := cfg.storage
	if s.IsRemote() {
		return storage.NewRemote(s.URL(), s.ServiceKey(), s.Bucket(), cfg.httpClient), nil
	}

	dir := s.LocalDir()
	if dir == "" {
		dir = filepath.Join(cfg.dataDir, "storage")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	baseURL := cfg.filesBaseURL
	if baseURL == "" {
		baseURL = c.siteURL + "/files"
	}
	c.filesDir = dir
	return storage.NewLocal(dir, baseURL), nil
}

// buildOrders returns a nil interface when payments are not configured so
// the service can report it.
func (c *Client) buildOrders(cfg *clientConfig) domainservice.Orders {
	if cfg.orders != nil {
		return cfg.orders
	}
	if cfg.razorpayKeyID == "" || cfg.razorpaySecret == "" {
		return nil
	}
	return payment.NewRazorpay(cfg.razorpayKeyID, cfg.razorpaySecret, payment.WithHTTPClient(cfg.httpClient))
}

// Close releases the database.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return service.ErrClientClosed
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	c.logger.Info("investmatch client closed")
	return nil
}

// Ping checks the database connection.
func (c *Client) Ping(ctx context.Context) error {
	if c.closed.Load() {
		return service.ErrClientClosed
	}
	return c.db.Ping(ctx)
}

// Seed loads a directory fixture in one transaction.
func (c *Client) Seed(ctx context.Context, f persistence.Fixture) (persistence.SeedResult, error) {
	result, err := persistence.Seed(ctx, c.db, f)
	if err != nil {
		return persistence.SeedResult{}, err
	}
	c.views.Invalidate(service.ViewStartups, service.ViewInvestors, service.ViewAdmin)
	return result, nil
}

// FilesDir returns the local upload directory, or "" when decks go to
// remote object storage.
func (c *Client) FilesDir() string { return c.filesDir }

// RazorpayKeyID returns the public payment key.
func (c *Client) RazorpayKeyID() string { return c.razorpayKeyID }

// SiteURL returns the frontend origin.
func (c *Client) SiteURL() string { return c.siteURL }

// Logger returns the client's logger.
func (c *Client) Logger() *slog.Logger { return c.logger }
