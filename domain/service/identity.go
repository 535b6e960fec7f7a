package service

import "context"

// IdentityUser is a user as reported by the identity provider.
type IdentityUser struct {
	ID       string
	Email    string
	FullName string
	Role     string
}

// Session is an authenticated identity-provider session.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
	User         IdentityUser
}

// SignUpRequest carries the sign-up form.
type SignUpRequest struct {
	Email      string
	Password   string
	FullName   string
	Role       string
	RedirectTo string
}

// Identity delegates authentication to a managed identity provider.
type Identity interface {
	// SignUp registers a user. The session is nil when the provider requires
	// email confirmation first.
	SignUp(ctx context.Context, req SignUpRequest) (IdentityUser, *Session, error)
	SignIn(ctx context.Context, email, password string) (Session, error)
	// Verify confirms an emailed one-time token.
	Verify(ctx context.Context, email, token, kind string) (Session, error)
	// ExchangeCode completes a redirect flow.
	ExchangeCode(ctx context.Context, code, verifier string) (Session, error)
	// User resolves an access token.
	User(ctx context.Context, accessToken string) (IdentityUser, error)
	SignOut(ctx context.Context, accessToken string) error
}
