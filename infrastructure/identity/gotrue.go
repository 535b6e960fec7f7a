// Package identity talks to a GoTrue-compatible identity provider.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/investmatch/investmatch/domain/errs"
	"github.com/investmatch/investmatch/domain/service"
)

// ErrNotConfigured is returned when no provider URL is set.
var ErrNotConfigured = fmt.Errorf("%w: identity provider not configured", errs.ErrUnavailable)

// Client is a GoTrue REST client.
type Client struct {
	baseURL   string
	anonKey   string
	jwtSecret []byte
	http      *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for provider calls.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.http = c }
}

// WithJWTSecret enables local HS256 verification of access tokens.
func WithJWTSecret(secret string) Option {
	return func(cl *Client) {
		if secret != "" {
			cl.jwtSecret = []byte(secret)
		}
	}
}

// NewClient creates a Client for the provider at baseURL.
func NewClient(baseURL, anonKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type userMetadata struct {
	FullName string `json:"full_name,omitempty"`
	Role     string `json:"role,omitempty"`
}

type userPayload struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	UserMetadata userMetadata `json:"user_metadata"`
}

func (u userPayload) toDomain() service.IdentityUser {
	return service.IdentityUser{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.UserMetadata.FullName,
		Role:     u.UserMetadata.Role,
	}
}

type sessionPayload struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	ExpiresIn    int         `json:"expires_in"`
	User         userPayload `json:"user"`
}

func (s sessionPayload) toDomain() service.Session {
	return service.Session{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		ExpiresIn:    s.ExpiresIn,
		User:         s.User.toDomain(),
	}
}

// signUpResponse covers both shapes: a session when the provider
// auto-confirms, or the bare user when confirmation is pending.
type signUpResponse struct {
	sessionPayload
	userPayload
}

// SignUp registers a user with full name and role in user metadata.
func (c *Client) SignUp(ctx context.Context, req service.SignUpRequest) (service.IdentityUser, *service.Session, error) {
	body := map[string]any{
		"email":    req.Email,
		"password": req.Password,
		"data":     userMetadata{FullName: req.FullName, Role: req.Role},
	}
	path := "/auth/v1/signup"
	if req.RedirectTo != "" {
		path += "?redirect_to=" + url.QueryEscape(req.RedirectTo)
	}

	var resp signUpResponse
	if err := c.do(ctx, http.MethodPost, path, "", body, &resp); err != nil {
		return service.IdentityUser{}, nil, err
	}
	if resp.AccessToken != "" {
		s := resp.sessionPayload.toDomain()
		return s.User, &s, nil
	}
	return resp.userPayload.toDomain(), nil, nil
}

// SignIn exchanges email and password for a session.
func (c *Client) SignIn(ctx context.Context, email, password string) (service.Session, error) {
	var resp sessionPayload
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", "", body, &resp); err != nil {
		return service.Session{}, err
	}
	return resp.toDomain(), nil
}

// Verify confirms an emailed one-time token. kind is the GoTrue verify type
// such as "signup", "email" or "magiclink".
func (c *Client) Verify(ctx context.Context, email, token, kind string) (service.Session, error) {
	if kind == "" {
		kind = "email"
	}
	var resp sessionPayload
	body := map[string]string{"type": kind, "email": email, "token": token}
	if err := c.do(ctx, http.MethodPost, "/auth/v1/verify", "", body, &resp); err != nil {
		return service.Session{}, err
	}
	return resp.toDomain(), nil
}

// ExchangeCode completes a PKCE redirect flow.
func (c *Client) ExchangeCode(ctx context.Context, code, verifier string) (service.Session, error) {
	var resp sessionPayload
	body := map[string]string{"auth_code": code, "code_verifier": verifier}
	if err := c.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=pkce", "", body, &resp); err != nil {
		return service.Session{}, err
	}
	return resp.toDomain(), nil
}

// User resolves an access token. With a JWT secret the token is verified
// locally; otherwise the provider is asked.
func (c *Client) User(ctx context.Context, accessToken string) (service.IdentityUser, error) {
	if accessToken == "" {
		return service.IdentityUser{}, errs.ErrUnauthenticated
	}
	if len(c.jwtSecret) > 0 {
		return c.parseToken(accessToken)
	}
	var resp userPayload
	if err := c.do(ctx, http.MethodGet, "/auth/v1/user", accessToken, nil, &resp); err != nil {
		return service.IdentityUser{}, err
	}
	return resp.toDomain(), nil
}

// SignOut revokes the session behind accessToken.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	return c.do(ctx, http.MethodPost, "/auth/v1/logout", accessToken, nil, nil)
}

type claims struct {
	Email        string       `json:"email"`
	UserMetadata userMetadata `json:"user_metadata"`
	jwt.RegisteredClaims
}

func (c *Client) parseToken(accessToken string) (service.IdentityUser, error) {
	var cl claims
	_, err := jwt.ParseWithClaims(accessToken, &cl, func(*jwt.Token) (any, error) {
		return c.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return service.IdentityUser{}, fmt.Errorf("%w: %v", errs.ErrUnauthenticated, err)
	}
	if cl.Subject == "" {
		return service.IdentityUser{}, fmt.Errorf("%w: token has no subject", errs.ErrUnauthenticated)
	}
	return service.IdentityUser{
		ID:       cl.Subject,
		Email:    cl.Email,
		FullName: cl.UserMetadata.FullName,
		Role:     cl.UserMetadata.Role,
	}, nil
}

type errorPayload struct {
	Message          string `json:"msg"`
	Alt              string `json:"message"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func (e errorPayload) text() string {
	for _, s := range []string{e.Message, e.Alt, e.ErrorDescription, e.Error} {
		if s != "" {
			return s
		}
	}
	return ""
}

func (c *Client) do(ctx context.Context, method, path, bearer string, body, out any) error {
	if c.baseURL == "" {
		return ErrNotConfigured
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("identity provider: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read identity response: %w", err)
	}

	if resp.StatusCode >= 300 {
		var payload errorPayload
		_ = json.Unmarshal(data, &payload)
		msg := payload.text()
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return fmt.Errorf("%w: %s", statusError(resp.StatusCode), msg)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode identity response: %w", err)
	}
	return nil
}

func statusError(code int) error {
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return errs.ErrUnauthenticated
	case code == http.StatusNotFound:
		return errs.ErrNotFound
	case code >= 400 && code < 500:
		return errs.ErrValidation
	default:
		return fmt.Errorf("identity provider returned %d", code)
	}
}
