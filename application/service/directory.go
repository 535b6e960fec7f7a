package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/investmatch/investmatch/domain/account"
	"github.com/investmatch/investmatch/domain/directory"
	"github.com/investmatch/investmatch/domain/errs"
	"github.com/investmatch/investmatch/domain/store"
	"github.com/investmatch/investmatch/internal/cache"
)

// SearchLimits caps directory listings.
type SearchLimits struct {
	Startups  int
	Investors int
}

// DefaultSearchLimits returns the stock limits.
func DefaultSearchLimits() SearchLimits {
	return SearchLimits{Startups: directory.DefaultStartupLimit, Investors: directory.DefaultInvestorLimit}
}

// Directory serves startup and investor listings and self-service profile
// entries.
type Directory struct {
	startups  directory.StartupStore
	investors directory.InvestorStore
	views     *cache.Views
	limits    SearchLimits
	logger    *slog.Logger
}

// NewDirectory creates a Directory service.
func NewDirectory(
	startups directory.StartupStore,
	investors directory.InvestorStore,
	views *cache.Views,
	limits SearchLimits,
	logger *slog.Logger,
) *Directory {
	if limits.Startups <= 0 {
		limits.Startups = directory.DefaultStartupLimit
	}
	if limits.Investors <= 0 {
		limits.Investors = directory.DefaultInvestorLimit
	}
	return &Directory{
		startups:  startups,
		investors: investors,
		views:     views,
		limits:    limits,
		logger:    logger,
	}
}

// SearchStartups lists startups matching the filter.
func (s *Directory) SearchStartups(ctx context.Context, filter directory.Filter) ([]directory.Startup, error) {
	filter = filter.WithDefaultLimit(s.limits.Startups)
	key := cache.Key(ViewStartups+"?"+filter.String(), "")
	return cache.Remember(s.views, key, func() ([]directory.Startup, error) {
		found, err := s.startups.Search(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("search startups: %w", err)
		}
		return found, nil
	})
}

// SearchInvestors lists investors matching the filter. The check-size
// overlap is applied after the query, so a range can return fewer rows
// than the limit.
func (s *Directory) SearchInvestors(ctx context.Context, filter directory.Filter) ([]directory.Investor, error) {
	filter = filter.WithDefaultLimit(s.limits.Investors)
	key := cache.Key(ViewInvestors+"?"+filter.String(), "")
	return cache.Remember(s.views, key, func() ([]directory.Investor, error) {
		found, err := s.investors.Search(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("search investors: %w", err)
		}
		return filter.MatchCheckSize(found), nil
	})
}

// Startup returns one startup.
func (s *Directory) Startup(ctx context.Context, id string) (directory.Startup, error) {
	return s.startups.FindOne(ctx, store.WithID(id))
}

// Investor returns one investor.
func (s *Directory) Investor(ctx context.Context, id string) (directory.Investor, error) {
	return s.investors.FindOne(ctx, store.WithID(id))
}

// MyStartup returns the founder's startup.
func (s *Directory) MyStartup(ctx context.Context, actor account.Actor) (directory.Startup, error) {
	if actor.UserID() == "" {
		return directory.Startup{}, errs.ErrUnauthenticated
	}
	return s.startups.FindOne(ctx, directory.WithFounderID(actor.UserID()))
}

// MyInvestor returns the directory entry linked to the investor.
func (s *Directory) MyInvestor(ctx context.Context, actor account.Actor) (directory.Investor, error) {
	if actor.UserID() == "" {
		return directory.Investor{}, errs.ErrUnauthenticated
	}
	return s.investors.FindOne(ctx, directory.WithUserID(actor.UserID()))
}

// SaveStartup creates or updates the founder's startup.
func (s *Directory) SaveStartup(ctx context.Context, actor account.Actor, p directory.StartupParams) (directory.Startup, error) {
	if err := requireRole(actor, account.RoleFounder); err != nil {
		return directory.Startup{}, err
	}
	if strings.TrimSpace(p.Name) == "" {
		return directory.Startup{}, fmt.Errorf("%w: name is required", errs.ErrValidation)
	}
	if p.TeamSize < 0 || p.RaiseAmount < 0 {
		return directory.Startup{}, fmt.Errorf("%w: team size and raise amount cannot be negative", errs.ErrValidation)
	}

	saved, err := s.startups.Save(ctx, directory.NewStartup(actor.UserID(), p))
	if err != nil {
		return directory.Startup{}, fmt.Errorf("save startup: %w", err)
	}
	s.views.Invalidate(ViewStartups, ViewAdmin)
	s.logger.Info("startup saved", slog.String("startup_id", saved.ID()), slog.String("founder_id", actor.UserID()))
	return saved, nil
}

// SaveInvestor creates or updates the investor's own directory entry.
func (s *Directory) SaveInvestor(ctx context.Context, actor account.Actor, p directory.InvestorParams) (directory.Investor, error) {
	if err := requireRole(actor, account.RoleInvestor); err != nil {
		return directory.Investor{}, err
	}
	if strings.TrimSpace(p.Name) == "" {
		return directory.Investor{}, fmt.Errorf("%w: name is required", errs.ErrValidation)
	}
	minCheck, hasMin := p.CheckSize.Min()
	maxCheck, hasMax := p.CheckSize.Max()
	if (hasMin && minCheck < 0) || (hasMax && maxCheck < 0) || (hasMin && hasMax && minCheck > maxCheck) {
		return directory.Investor{}, fmt.Errorf("%w: invalid check size range", errs.ErrValidation)
	}

	saved, err := s.investors.Save(ctx, directory.NewInvestor(actor.UserID(), p))
	if err != nil {
		return directory.Investor{}, fmt.Errorf("save investor: %w", err)
	}
	s.views.Invalidate(ViewInvestors, ViewAdmin)
	s.logger.Info("investor saved", slog.String("investor_id", saved.ID()), slog.String("user_id", actor.UserID()))
	return saved, nil
}

// requireRole passes authenticated actors holding role, and admins.
func requireRole(actor account.Actor, role account.Role) error {
	if !actor.Authenticated() {
		return errs.ErrUnauthenticated
	}
	if actor.Role() != role && !actor.IsAdmin() {
		return fmt.Errorf("%w: requires %s role", errs.ErrForbidden, strings.ToLower(role.String()))
	}
	return nil
}
