package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/investmatch/investmatch/domain/account"
	"github.com/investmatch/investmatch/domain/errs"
	"github.com/investmatch/investmatch/domain/service"
	"github.com/investmatch/investmatch/domain/store"
)

func newAuthService(s stores, id *fakeIdentity) *Auth {
	return NewAuth(id, s.profiles, "http://localhost:3000/auth/callback", discardLogger())
}

func TestAuth_SignUp(t *testing.T) {
	ctx := context.Background()
	s := newStores(t)
	id := newFakeIdentity()
	svc := newAuthService(s, id)

	res, err := svc.SignUp(ctx, SignUpParams{Email: " new@example.com ", Password: "pw", FullName: "Nia", Role: "investor"})
	require.NoError(t, err)
	assert.Nil(t, res.Session)
	assert.Equal(t, account.RoleInvestor, res.Profile.Role())
	assert.Equal(t, "/investor/dashboard", res.RedirectTo)

	require.Len(t, id.signups, 1)
	assert.Equal(t, "INVESTOR", id.signups[0].Role)
	assert.Equal(t, "http://localhost:3000/auth/callback", id.signups[0].RedirectTo)

	stored, err := s.profiles.FindOne(ctx, store.WithID("new-new@example.com"))
	require.NoError(t, err)
	assert.Equal(t, "Nia", stored.FullName())
}

func TestAuth_SignUpValidation(t *testing.T) {
	svc := newAuthService(newStores(t), newFakeIdentity())
	for name, p := range map[string]SignUpParams{
		"bad email":  {Email: "nope", Password: "pw", Role: "FOUNDER"},
		"no pass":    {Email: "a@example.com", Role: "FOUNDER"},
		"bad role":   {Email: "a@example.com", Password: "pw", Role: "wizard"},
		"admin role": {Email: "a@example.com", Password: "pw", Role: "ADMIN"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.SignUp(context.Background(), p)
			assert.True(t, errors.Is(err, errs.ErrValidation), "got %v", err)
		})
	}
}

func TestAuth_SignUpKeepsExistingRole(t *testing.T) {
	ctx := context.Background()
	s := newStores(t)
	id := newFakeIdentity()
	id.known = map[string]string{"asha@lumenpay.example": ashaID}
	svc := newAuthService(s, id)

	_, err := svc.SignUp(ctx, SignUpParams{Email: "asha@lumenpay.example", Password: "pw", Role: "INVESTOR"})
	assert.True(t, errors.Is(err, errs.ErrValidation), "got %v", err)

	stored, err := s.profiles.FindOne(ctx, store.WithID(ashaID))
	require.NoError(t, err)
	assert.Equal(t, account.RoleFounder, stored.Role())
	assert.Equal(t, "Asha Menon", stored.FullName())

	res, err := svc.SignUp(ctx, SignUpParams{Email: "asha@lumenpay.example", Password: "pw", Role: "FOUNDER"})
	require.NoError(t, err)
	assert.Equal(t, account.RoleFounder, res.Profile.Role())
	assert.Equal(t, "Asha Menon", res.Profile.FullName())
}

func TestAuth_CallbackRedirectsByRole(t *testing.T) {
	ctx := context.Background()
	s := newStores(t)
	svc := newAuthService(s, newFakeIdentity())

	res, err := svc.Callback(ctx, "asha", "")
	require.NoError(t, err)
	assert.Equal(t, "/founder/dashboard", res.RedirectTo)
	assert.Equal(t, "Asha Menon", res.Profile.FullName())

	_, err = svc.Callback(ctx, "", "")
	assert.True(t, errors.Is(err, errs.ErrValidation))
}

func TestAuth_ProfileRoleIsAuthoritative(t *testing.T) {
	ctx := context.Background()
	s := newStores(t)
	id := newFakeIdentity()
	svc := newAuthService(s, id)

	res, err := svc.Callback(ctx, "priya", "")
	require.NoError(t, err)
	assert.Equal(t, account.RoleInvestor, res.Profile.Role())

	actor, err := svc.Authenticate(ctx, res.Session.AccessToken)
	require.NoError(t, err)
	assert.False(t, actor.IsAdmin())

	_, err = svc.Callback(ctx, "escalate", "")
	assert.True(t, errors.Is(err, errs.ErrForbidden))
}

func TestAuth_SignInVerifyAndMe(t *testing.T) {
	ctx := context.Background()
	s := newStores(t)
	id := newFakeIdentity()
	id.signInFn = func(email, password string) (service.Session, error) {
		if password != "secret" {
			return service.Session{}, errs.ErrValidation
		}
		return id.issue(service.IdentityUser{ID: adminID, Email: email}), nil
	}
	svc := newAuthService(s, id)

	_, err := svc.SignIn(ctx, "admin@investmatch.example", "wrong")
	assert.True(t, errors.Is(err, errs.ErrValidation))

	res, err := svc.SignIn(ctx, "admin@investmatch.example", "secret")
	require.NoError(t, err)
	assert.Equal(t, "/admin", res.RedirectTo)

	actor, err := svc.Authenticate(ctx, res.Session.AccessToken)
	require.NoError(t, err)
	assert.True(t, actor.IsAdmin())

	me, err := svc.Me(ctx, actor)
	require.NoError(t, err)
	assert.Equal(t, "Platform Admin", me.FullName())

	require.NoError(t, svc.SignOut(ctx, res.Session.AccessToken))
	_, err = svc.Authenticate(ctx, res.Session.AccessToken)
	assert.True(t, errors.Is(err, errs.ErrUnauthenticated))

	_, err = svc.Verify(ctx, "someone@example.com", "000000", "")
	assert.True(t, errors.Is(err, errs.ErrValidation))
}

func TestAuth_VerifyAfterSignUp(t *testing.T) {
	ctx := context.Background()
	s := newStores(t)
	svc := newAuthService(s, newFakeIdentity())

	_, err := svc.SignUp(ctx, SignUpParams{Email: "f@example.com", Password: "pw", FullName: "Fen", Role: "FOUNDER"})
	require.NoError(t, err)

	res, err := svc.Verify(ctx, "f@example.com", "123456", "signup")
	require.NoError(t, err)
	assert.Equal(t, account.RoleFounder, res.Profile.Role())
	assert.Equal(t, "Fen", res.Profile.FullName())
	assert.Equal(t, "/founder/dashboard", res.RedirectTo)
}
