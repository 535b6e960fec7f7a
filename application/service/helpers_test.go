package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/investmatch/investmatch/domain/account"
	"github.com/investmatch/investmatch/domain/directory"
	"github.com/investmatch/investmatch/domain/errs"
	"github.com/investmatch/investmatch/domain/service"
	"github.com/investmatch/investmatch/domain/store"
	"github.com/investmatch/investmatch/infrastructure/persistence"
	"github.com/investmatch/investmatch/internal/cache"
	"github.com/investmatch/investmatch/internal/database"
	"github.com/investmatch/investmatch/internal/testdb"
)

// Seeded fixture identities.
const (
	ashaID      = "7d2f7a56-2d0b-4f37-9a53-0c1f4a9b2e01"
	devID       = "7d2f7a56-2d0b-4f37-9a53-0c1f4a9b2e02"
	priyaUserID = "7d2f7a56-2d0b-4f37-9a53-0c1f4a9b2e03"
	adminID     = "7d2f7a56-2d0b-4f37-9a53-0c1f4a9b2e04"

	priyaID = "3b1c9e40-8f5a-4c8e-b7d2-5e6f7a8b9c01"
	rohanID = "3b1c9e40-8f5a-4c8e-b7d2-5e6f7a8b9c02"
	meeraID = "3b1c9e40-8f5a-4c8e-b7d2-5e6f7a8b9c03"
)

var (
	asha  = account.NewActor(ashaID, account.RoleFounder)
	dev   = account.NewActor(devID, account.RoleFounder)
	priya = account.NewActor(priyaUserID, account.RoleInvestor)
	admin = account.NewActor(adminID, account.RoleAdmin)
)

// stores bundles the GORM stores over one seeded database.
type stores struct {
	db            database.Database
	views         *cache.Views
	profiles      persistence.ProfileStore
	startups      persistence.StartupStore
	investors     persistence.InvestorStore
	entries       persistence.PipelineStore
	pitches       persistence.PitchStore
	recipients    persistence.RecipientStore
	notifications persistence.NotificationStore
	payments      persistence.PaymentStore
}

func newStores(t *testing.T) stores {
	t.Helper()
	db := testdb.Seeded(t)
	return stores{
		db:            db,
		views:         cache.NewViews(time.Minute),
		profiles:      persistence.NewProfileStore(db),
		startups:      persistence.NewStartupStore(db),
		investors:     persistence.NewInvestorStore(db),
		entries:       persistence.NewPipelineStore(db),
		pitches:       persistence.NewPitchStore(db),
		recipients:    persistence.NewRecipientStore(db),
		notifications: persistence.NewNotificationStore(db),
		payments:      persistence.NewPaymentStore(db),
	}
}

// linkInvestor claims an unlinked directory entry for a new investor user.
func (s stores) linkInvestor(t *testing.T, investorID, userID string) account.Actor {
	t.Helper()
	ctx := context.Background()
	_, err := s.profiles.Upsert(ctx, account.NewProfile(userID, userID+"@example.com", userID, account.RoleInvestor))
	require.NoError(t, err)

	inv, err := s.investors.FindOne(ctx, store.WithID(investorID))
	require.NoError(t, err)
	_, err = s.investors.Save(ctx, directory.ReconstructInvestor(inv.ID(), userID, inv.Params(), inv.CreatedAt(), inv.UpdatedAt()))
	require.NoError(t, err)
	return account.NewActor(userID, account.RoleInvestor)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeIdentity is an in-memory identity provider.
type fakeIdentity struct {
	mu       sync.Mutex
	users    map[string]service.IdentityUser // by access token
	signups  []service.SignUpRequest
	known    map[string]string // email to existing user id
	confirm  bool
	signInFn func(email, password string) (service.Session, error)
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{users: map[string]service.IdentityUser{}}
}

func (f *fakeIdentity) issue(user service.IdentityUser) service.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	token := "token-" + user.ID
	f.users[token] = user
	return service.Session{AccessToken: token, RefreshToken: "refresh", ExpiresIn: 3600, User: user}
}

func (f *fakeIdentity) SignUp(_ context.Context, req service.SignUpRequest) (service.IdentityUser, *service.Session, error) {
	f.mu.Lock()
	f.signups = append(f.signups, req)
	f.mu.Unlock()
	user := service.IdentityUser{ID: "new-" + req.Email, Email: req.Email, FullName: req.FullName, Role: req.Role}
	if id, ok := f.known[req.Email]; ok {
		user.ID = id
	}
	if f.confirm {
		s := f.issue(user)
		return user, &s, nil
	}
	return user, nil, nil
}

func (f *fakeIdentity) SignIn(_ context.Context, email, password string) (service.Session, error) {
	if f.signInFn != nil {
		return f.signInFn(email, password)
	}
	return service.Session{}, errs.ErrValidation
}

func (f *fakeIdentity) Verify(_ context.Context, email, token, _ string) (service.Session, error) {
	if token != "123456" {
		return service.Session{}, errs.ErrValidation
	}
	return f.issue(service.IdentityUser{ID: "new-" + email, Email: email}), nil
}

func (f *fakeIdentity) ExchangeCode(_ context.Context, code, _ string) (service.Session, error) {
	switch code {
	case "asha":
		return f.issue(service.IdentityUser{ID: ashaID, Email: "asha@lumenpay.example"}), nil
	case "priya":
		return f.issue(service.IdentityUser{ID: priyaUserID, Email: "priya@northstar.example", Role: "ADMIN"}), nil
	case "escalate":
		return f.issue(service.IdentityUser{ID: "fresh", Email: "fresh@example.com", Role: "ADMIN"}), nil
	}
	return service.Session{}, errs.ErrValidation
}

func (f *fakeIdentity) User(_ context.Context, token string) (service.IdentityUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[token]
	if !ok {
		return service.IdentityUser{}, errs.ErrUnauthenticated
	}
	return u, nil
}

func (f *fakeIdentity) SignOut(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, token)
	return nil
}

// fakeBucket records uploads in memory.
type fakeBucket struct {
	uploads map[string][]byte
	err     error
}

func (b *fakeBucket) Upload(_ context.Context, path, _ string, body io.Reader) (string, error) {
	if b.err != nil {
		return "", b.err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return "", err
	}
	if b.uploads == nil {
		b.uploads = map[string][]byte{}
	}
	b.uploads[path] = buf.Bytes()
	return "https://cdn.test/" + path, nil
}

var errBoom = errors.New("boom")
