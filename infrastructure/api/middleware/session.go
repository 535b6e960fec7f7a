package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/investmatch/investmatch/domain/account"
	"github.com/investmatch/investmatch/domain/errs"
	"github.com/investmatch/investmatch/internal/log"
)

// SessionCookie holds the access token for browser clients.
const SessionCookie = "investmatch_session"

// Authenticator resolves an access token into an actor.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (account.Actor, error)
}

type actorKey struct{}

type tokenKey struct{}

// Session resolves the caller's access token, taken from the Authorization
// bearer header or the session cookie, and stores the actor in the request
// context. Requests without a token pass through anonymously. An invalid
// bearer token is rejected; a stale session cookie is cleared and the request
// continues anonymously.
func Session(auth Authenticator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := AccessToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			actor, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				if r.Header.Get("Authorization") == "" && errors.Is(err, errs.ErrUnauthenticated) {
					http.SetCookie(w, &http.Cookie{Name: SessionCookie, Path: "/", MaxAge: -1, HttpOnly: true})
					next.ServeHTTP(w, r)
					return
				}
				WriteError(w, r, err, logger)
				return
			}
			ctx := context.WithValue(r.Context(), actorKey{}, actor)
			ctx = context.WithValue(ctx, tokenKey{}, token)
			ctx = log.WithUserID(ctx, actor.UserID())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireActor rejects anonymous requests.
func RequireActor(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := ActorFrom(r.Context()); !ok {
				WriteError(w, r, errs.ErrUnauthenticated, logger)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole rejects callers whose role is not one of roles.
func RequireRole(logger *slog.Logger, roles ...account.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := ActorFrom(r.Context())
			if !ok {
				WriteError(w, r, errs.ErrUnauthenticated, logger)
				return
			}
			for _, role := range roles {
				if actor.Role() == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			WriteError(w, r, fmt.Errorf("%w: %s role required", errs.ErrForbidden, joinRoles(roles)), logger)
		})
	}
}

// ActorFrom returns the authenticated actor, if any.
func ActorFrom(ctx context.Context) (account.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(account.Actor)
	return actor, ok
}

// Actor returns the authenticated actor, or the zero actor for anonymous
// requests.
func Actor(ctx context.Context) account.Actor {
	actor, _ := ActorFrom(ctx)
	return actor
}

// TokenFrom returns the access token the session was resolved from.
func TokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// AccessToken extracts the raw access token from r.
func AccessToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}

func joinRoles(roles []account.Role) string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = r.String()
	}
	return strings.Join(names, " or ")
}
