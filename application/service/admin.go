package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/investmatch/investmatch/domain/account"
	"github.com/investmatch/investmatch/domain/directory"
	"github.com/investmatch/investmatch/domain/notification"
	"github.com/investmatch/investmatch/domain/payment"
	"github.com/investmatch/investmatch/domain/pipeline"
	"github.com/investmatch/investmatch/domain/pitch"
	"github.com/investmatch/investmatch/domain/store"
)

// DefaultPageSize is the admin listing page size.
const DefaultPageSize = 25

// Dashboard holds platform-wide counts.
type Dashboard struct {
	Founders        int64
	InvestorUsers   int64
	Admins          int64
	Startups        int64
	Investors       int64
	PipelineEntries int64
	PipelineByStage map[pipeline.Stage]int64
	Pitches         int64
	Notifications   int64
	Payments        int64
}

// UserPage is one page of profiles.
type UserPage struct {
	Profiles []account.Profile
	Total    int64
	Page     int
	PageSize int
}

// Admin serves the admin dashboards.
type Admin struct {
	profiles      account.ProfileStore
	startups      directory.StartupStore
	investors     directory.InvestorStore
	entries       pipeline.Store
	pitches       pitch.Store
	notifications notification.Store
	payments      payment.Store
}

// NewAdmin creates an Admin service.
func NewAdmin(
	profiles account.ProfileStore,
	startups directory.StartupStore,
	investors directory.InvestorStore,
	entries pipeline.Store,
	pitches pitch.Store,
	notifications notification.Store,
	payments payment.Store,
) *Admin {
	return &Admin{
		profiles:      profiles,
		startups:      startups,
		investors:     investors,
		entries:       entries,
		pitches:       pitches,
		notifications: notifications,
		payments:      payments,
	}
}

// Dashboard runs the count queries concurrently.
func (s *Admin) Dashboard(ctx context.Context, actor account.Actor) (Dashboard, error) {
	if err := requireRole(actor, account.RoleAdmin); err != nil {
		return Dashboard{}, err
	}

	var d Dashboard
	stages := pipeline.Stages()
	byStage := make([]int64, len(stages))

	g, ctx := errgroup.WithContext(ctx)
	count := func(dst *int64, fn func(context.Context, ...store.Option) (int64, error), opts ...store.Option) {
		g.Go(func() error {
			n, err := fn(ctx, opts...)
			if err != nil {
				return err
			}
			*dst = n
			return nil
		})
	}

	count(&d.Founders, s.profiles.Count, account.WithRole(account.RoleFounder))
	count(&d.InvestorUsers, s.profiles.Count, account.WithRole(account.RoleInvestor))
	count(&d.Admins, s.profiles.Count, account.WithRole(account.RoleAdmin))
	count(&d.Startups, s.startups.Count)
	count(&d.Investors, s.investors.Count)
	count(&d.PipelineEntries, s.entries.Count)
	for i, st := range stages {
		count(&byStage[i], s.entries.Count, pipeline.WithStage(st))
	}
	count(&d.Pitches, s.pitches.Count)
	count(&d.Notifications, s.notifications.Count)
	count(&d.Payments, s.payments.Count)

	if err := g.Wait(); err != nil {
		return Dashboard{}, fmt.Errorf("dashboard counts: %w", err)
	}

	d.PipelineByStage = make(map[pipeline.Stage]int64, len(stages))
	for i, st := range stages {
		d.PipelineByStage[st] = byStage[i]
	}
	return d, nil
}

// Users lists profiles newest first, optionally filtered by role. Pages
// start at 1.
func (s *Admin) Users(ctx context.Context, actor account.Actor, role string, page, pageSize int) (UserPage, error) {
	if err := requireRole(actor, account.RoleAdmin); err != nil {
		return UserPage{}, err
	}
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = DefaultPageSize
	}

	var filters []store.Option
	if role != "" {
		r, err := account.ParseRole(role)
		if err != nil {
			return UserPage{}, err
		}
		filters = append(filters, account.WithRole(r))
	}

	total, err := s.profiles.Count(ctx, filters...)
	if err != nil {
		return UserPage{}, fmt.Errorf("count profiles: %w", err)
	}
	opts := append([]store.Option{store.WithOrderDesc("created_at")}, filters...)
	opts = append(opts, store.WithPage(store.PageOf(page, pageSize)))
	profiles, err := s.profiles.Find(ctx, opts...)
	if err != nil {
		return UserPage{}, fmt.Errorf("list profiles: %w", err)
	}
	return UserPage{Profiles: profiles, Total: total, Page: page, PageSize: pageSize}, nil
}
