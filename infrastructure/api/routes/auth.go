package routes

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/investmatch/investmatch/application/service"
	"github.com/investmatch/investmatch/infrastructure/api/jsonapi"
	"github.com/investmatch/investmatch/infrastructure/api/middleware"
	"github.com/investmatch/investmatch/infrastructure/api/routes/dto"
)

// SignInPath is the frontend page failed redirect flows land on.
const SignInPath = "/auth/signin"

// AuthRouter handles sign-up, sign-in and session endpoints.
type AuthRouter struct {
	auth       *service.Auth
	siteURL    string
	serializer *jsonapi.Serializer
	logger     *slog.Logger
}

// NewAuthRouter creates an AuthRouter. siteURL is the frontend origin the
// callback redirects to.
func NewAuthRouter(auth *service.Auth, siteURL string, logger *slog.Logger) *AuthRouter {
	return &AuthRouter{
		auth:       auth,
		siteURL:    strings.TrimRight(siteURL, "/"),
		serializer: jsonapi.NewSerializer(),
		logger:     logger,
	}
}

// Routes returns the /api/auth routes.
func (a *AuthRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/signup", a.SignUp)
	router.Post("/signin", a.SignIn)
	router.Post("/verify", a.Verify)
	router.Post("/signout", a.SignOut)
	router.With(middleware.RequireActor(a.logger)).Get("/me", a.Me)

	return router
}

// SignUp handles POST /api/auth/signup.
func (a *AuthRouter) SignUp(w http.ResponseWriter, r *http.Request) {
	var body dto.SignUpRequest
	if err := decodeJSON(w, r, &body); err != nil {
		middleware.WriteError(w, r, err, a.logger)
		return
	}

	result, err := a.auth.SignUp(r.Context(), service.SignUpParams{
		Email:    body.Email,
		Password: body.Password,
		FullName: body.FullName,
		Role:     body.Role,
	})
	if err != nil {
		middleware.WriteError(w, r, err, a.logger)
		return
	}
	a.writeResult(w, r, http.StatusCreated, result)
}

// SignIn handles POST /api/auth/signin.
func (a *AuthRouter) SignIn(w http.ResponseWriter, r *http.Request) {
	var body dto.SignInRequest
	if err := decodeJSON(w, r, &body); err != nil {
		middleware.WriteError(w, r, err, a.logger)
		return
	}

	result, err := a.auth.SignIn(r.Context(), body.Email, body.Password)
	if err != nil {
		middleware.WriteError(w, r, err, a.logger)
		return
	}
	a.writeResult(w, r, http.StatusOK, result)
}

// Verify handles POST /api/auth/verify.
func (a *AuthRouter) Verify(w http.ResponseWriter, r *http.Request) {
	var body dto.VerifyRequest
	if err := decodeJSON(w, r, &body); err != nil {
		middleware.WriteError(w, r, err, a.logger)
		return
	}

	result, err := a.auth.Verify(r.Context(), body.Email, body.Token, body.Type)
	if err != nil {
		middleware.WriteError(w, r, err, a.logger)
		return
	}
	a.writeResult(w, r, http.StatusOK, result)
}

// SignOut handles POST /api/auth/signout.
func (a *AuthRouter) SignOut(w http.ResponseWriter, r *http.Request) {
	token := middleware.TokenFrom(r.Context())
	if token == "" {
		token = middleware.AccessToken(r)
	}
	if err := a.auth.SignOut(r.Context(), token); err != nil {
		middleware.WriteError(w, r, err, a.logger)
		return
	}
	clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /api/auth/me.
func (a *AuthRouter) Me(w http.ResponseWriter, r *http.Request) {
	profile, err := a.auth.Me(r.Context(), middleware.Actor(r.Context()))
	if err != nil {
		middleware.WriteError(w, r, err, a.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewSingleResponse(a.serializer.ProfileResource(profile)))
}

// Callback handles GET /auth/callback, the identity provider's redirect
// target. It exchanges the code for a session, sets the session cookie and
// sends the user to their role's home page. Failures redirect to the
// sign-in page with an error parameter.
func (a *AuthRouter) Callback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if msg := q.Get("error_description"); msg != "" {
		a.redirectError(w, r, msg)
		return
	}
	if msg := q.Get("error"); msg != "" {
		a.redirectError(w, r, msg)
		return
	}

	result, err := a.auth.Callback(r.Context(), q.Get("code"), q.Get("code_verifier"))
	if err != nil {
		a.logger.Warn("auth callback failed", slog.Any("error", err))
		a.redirectError(w, r, middleware.PublicMessage(err))
		return
	}

	target := result.RedirectTo
	if next := q.Get("next"); localPath(next) {
		target = next
	}
	if result.Session != nil {
		a.setSessionCookie(w, result.Session.AccessToken, result.Session.ExpiresIn)
	}
	http.Redirect(w, r, a.siteURL+target, http.StatusSeeOther)
}

// localPath reports whether next is a path on this site. Browsers treat
// "//host" and "/\host" as another origin.
func localPath(next string) bool {
	if !strings.HasPrefix(next, "/") {
		return false
	}
	return len(next) == 1 || (next[1] != '/' && next[1] != '\\')
}

func (a *AuthRouter) redirectError(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, a.siteURL+SignInPath+"?error="+url.QueryEscape(msg), http.StatusSeeOther)
}

func (a *AuthRouter) writeResult(w http.ResponseWriter, r *http.Request, status int, result service.AuthResult) {
	meta := jsonapi.Meta{
		"redirect_to":           result.RedirectTo,
		"confirmation_required": result.Session == nil,
	}
	if s := result.Session; s != nil {
		a.setSessionCookie(w, s.AccessToken, s.ExpiresIn)
		meta["access_token"] = s.AccessToken
		meta["refresh_token"] = s.RefreshToken
		meta["expires_in"] = s.ExpiresIn
	}
	doc := jsonapi.NewSingleResponse(a.serializer.ProfileResource(result.Profile))
	doc.Meta = &meta
	middleware.WriteJSON(w, status, doc)
}

func (a *AuthRouter) setSessionCookie(w http.ResponseWriter, token string, expiresIn int) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   expiresIn,
		HttpOnly: true,
		Secure:   strings.HasPrefix(a.siteURL, "https://"),
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
