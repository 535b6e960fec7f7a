package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/investmatch/investmatch/domain/account"
	"github.com/investmatch/investmatch/domain/errs"
	"github.com/investmatch/investmatch/domain/service"
	"github.com/investmatch/investmatch/domain/store"
)

// SignUpParams is the sign-up form.
type SignUpParams struct {
	Email    string
	Password string
	FullName string
	Role     string
}

// AuthResult is the outcome of a completed authentication step.
type AuthResult struct {
	Profile account.Profile
	// Session is nil when the provider still needs the email confirmed.
	Session    *service.Session
	RedirectTo string
}

// Auth fronts the identity provider and mirrors users into profiles.
type Auth struct {
	identity    service.Identity
	profiles    account.ProfileStore
	callbackURL string
	logger      *slog.Logger
}

// NewAuth creates an Auth service. callbackURL is where the provider sends
// users after email confirmation.
func NewAuth(identity service.Identity, profiles account.ProfileStore, callbackURL string, logger *slog.Logger) *Auth {
	return &Auth{
		identity:    identity,
		profiles:    profiles,
		callbackURL: callbackURL,
		logger:      logger,
	}
}

// SignUp registers a founder or investor. Admin accounts cannot be
// self-registered.
func (s *Auth) SignUp(ctx context.Context, p SignUpParams) (AuthResult, error) {
	email := strings.TrimSpace(p.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return AuthResult{}, fmt.Errorf("%w: invalid email", errs.ErrValidation)
	}
	if p.Password == "" {
		return AuthResult{}, fmt.Errorf("%w: password is required", errs.ErrValidation)
	}
	role, err := account.ParseRole(p.Role)
	if err != nil {
		return AuthResult{}, err
	}
	if role == account.RoleAdmin {
		return AuthResult{}, fmt.Errorf("%w: admin accounts cannot sign up", errs.ErrValidation)
	}
	fullName := strings.TrimSpace(p.FullName)

	user, session, err := s.identity.SignUp(ctx, service.SignUpRequest{
		Email:      email,
		Password:   p.Password,
		FullName:   fullName,
		Role:       role.String(),
		RedirectTo: s.callbackURL,
	})
	if err != nil {
		return AuthResult{}, fmt.Errorf("sign up: %w", err)
	}

	// A repeat sign-up can return an existing user; its role stays.
	if user.Email == "" {
		user.Email = email
	}
	if user.FullName == "" {
		user.FullName = fullName
	}
	user.Role = role.String()
	current, _, found, err := s.resolveRole(ctx, user)
	if err != nil {
		return AuthResult{}, err
	}
	if found && current != role {
		return AuthResult{}, fmt.Errorf("%w: email is already registered", errs.ErrValidation)
	}
	profile, err := s.syncProfile(ctx, user)
	if err != nil {
		return AuthResult{}, err
	}

	s.logger.Info("user signed up",
		slog.String("user_id", user.ID),
		slog.String("role", role.String()),
		slog.Bool("confirmed", session != nil),
	)

	return AuthResult{Profile: profile, Session: session, RedirectTo: role.HomePath()}, nil
}

// SignIn authenticates with email and password.
func (s *Auth) SignIn(ctx context.Context, email, password string) (AuthResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return AuthResult{}, fmt.Errorf("%w: email and password are required", errs.ErrValidation)
	}
	session, err := s.identity.SignIn(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return AuthResult{}, fmt.Errorf("sign in: %w", err)
	}
	return s.complete(ctx, session)
}

// Verify confirms an emailed one-time token.
func (s *Auth) Verify(ctx context.Context, email, token, kind string) (AuthResult, error) {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(token) == "" {
		return AuthResult{}, fmt.Errorf("%w: email and token are required", errs.ErrValidation)
	}
	session, err := s.identity.Verify(ctx, strings.TrimSpace(email), strings.TrimSpace(token), kind)
	if err != nil {
		return AuthResult{}, fmt.Errorf("verify: %w", err)
	}
	return s.complete(ctx, session)
}

// Callback completes the provider's redirect flow and picks the landing
// page for the user's role.
func (s *Auth) Callback(ctx context.Context, code, verifier string) (AuthResult, error) {
	if code == "" {
		return AuthResult{}, fmt.Errorf("%w: missing code", errs.ErrValidation)
	}
	session, err := s.identity.ExchangeCode(ctx, code, verifier)
	if err != nil {
		return AuthResult{}, fmt.Errorf("exchange code: %w", err)
	}
	return s.complete(ctx, session)
}

// Authenticate resolves an access token into an actor.
func (s *Auth) Authenticate(ctx context.Context, accessToken string) (account.Actor, error) {
	user, err := s.identity.User(ctx, accessToken)
	if err != nil {
		return account.Actor{}, err
	}
	role, err := s.roleOf(ctx, user)
	if err != nil {
		return account.Actor{}, err
	}
	return account.NewActor(user.ID, role), nil
}

// Me returns the actor's profile.
func (s *Auth) Me(ctx context.Context, actor account.Actor) (account.Profile, error) {
	if actor.UserID() == "" {
		return account.Profile{}, errs.ErrUnauthenticated
	}
	return s.profiles.FindOne(ctx, store.WithID(actor.UserID()))
}

// SignOut revokes the session.
func (s *Auth) SignOut(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return errs.ErrUnauthenticated
	}
	return s.identity.SignOut(ctx, accessToken)
}

func (s *Auth) complete(ctx context.Context, session service.Session) (AuthResult, error) {
	profile, err := s.syncProfile(ctx, session.User)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{
		Profile:    profile,
		Session:    &session,
		RedirectTo: profile.Role().HomePath(),
	}, nil
}

// syncProfile mirrors the identity user into the profile table. Once a
// profile exists its role is authoritative; metadata only seeds the first
// sync and can never grant admin. Blank metadata never overwrites what the
// profile already holds.
func (s *Auth) syncProfile(ctx context.Context, user service.IdentityUser) (account.Profile, error) {
	role, existing, found, err := s.resolveRole(ctx, user)
	if err != nil {
		return account.Profile{}, err
	}

	fullName, email := user.FullName, user.Email
	if found {
		if fullName == "" {
			fullName = existing.FullName()
		}
		if email == "" {
			email = existing.Email()
		}
	}

	profile, err := s.profiles.Upsert(ctx, account.NewProfile(user.ID, email, fullName, role))
	if err != nil {
		return account.Profile{}, fmt.Errorf("save profile: %w", err)
	}
	return profile, nil
}

func (s *Auth) roleOf(ctx context.Context, user service.IdentityUser) (account.Role, error) {
	role, _, _, err := s.resolveRole(ctx, user)
	return role, err
}

func (s *Auth) resolveRole(ctx context.Context, user service.IdentityUser) (account.Role, account.Profile, bool, error) {
	if user.ID == "" {
		return "", account.Profile{}, false, errs.ErrUnauthenticated
	}
	existing, err := s.profiles.FindOne(ctx, store.WithID(user.ID))
	if err == nil {
		return existing.Role(), existing, true, nil
	}
	if !errors.Is(err, errs.ErrNotFound) {
		return "", account.Profile{}, false, fmt.Errorf("load profile: %w", err)
	}

	role, err := account.ParseRole(user.Role)
	if err != nil || role == account.RoleAdmin {
		return "", account.Profile{}, false, fmt.Errorf("%w: account has no role", errs.ErrForbidden)
	}
	return role, account.Profile{}, false, nil
}
