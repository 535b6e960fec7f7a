package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/investmatch/investmatch"
	"github.com/investmatch/investmatch/domain/errs"
	"github.com/investmatch/investmatch/domain/service"
	"github.com/investmatch/investmatch/infrastructure/persistence"
)

const (
	ashaID  = "7d2f7a56-2d0b-4f37-9a53-0c1f4a9b2e01"
	priyaID = "7d2f7a56-2d0b-4f37-9a53-0c1f4a9b2e03"
	adminID = "7d2f7a56-2d0b-4f37-9a53-0c1f4a9b2e04"
)

// tokenIdentity accepts "token-<user id>" bearer tokens for known users.
type tokenIdentity struct {
	mu    sync.Mutex
	users map[string]service.IdentityUser
}

func newTokenIdentity(users ...service.IdentityUser) *tokenIdentity {
	id := &tokenIdentity{users: map[string]service.IdentityUser{}}
	for _, u := range users {
		id.users["token-"+u.ID] = u
	}
	return id
}

func (i *tokenIdentity) SignUp(_ context.Context, req service.SignUpRequest) (service.IdentityUser, *service.Session, error) {
	return service.IdentityUser{ID: "new-user", Email: req.Email, Role: req.Role}, nil, nil
}

func (i *tokenIdentity) SignIn(_ context.Context, email, _ string) (service.Session, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	for token, u := range i.users {
		if u.Email == email {
			return service.Session{AccessToken: token, ExpiresIn: 3600, User: u}, nil
		}
	}
	return service.Session{}, errs.ErrUnauthenticated
}

func (i *tokenIdentity) Verify(context.Context, string, string, string) (service.Session, error) {
	return service.Session{}, errs.ErrValidation
}

func (i *tokenIdentity) ExchangeCode(_ context.Context, code, _ string) (service.Session, error) {
	if code != "good" {
		return service.Session{}, errs.ErrValidation
	}
	return i.SignIn(context.Background(), "asha@lumenpay.example", "")
}

func (i *tokenIdentity) User(_ context.Context, token string) (service.IdentityUser, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	u, ok := i.users[token]
	if !ok {
		return service.IdentityUser{}, errs.ErrUnauthenticated
	}
	return u, nil
}

func (i *tokenIdentity) SignOut(context.Context, string) error { return nil }

func newTestServer(t *testing.T) (*investmatch.Client, http.Handler) {
	t.Helper()
	dir := t.TempDir()
	client, err := investmatch.New(
		investmatch.WithDataDir(dir),
		investmatch.WithSiteURL("http://app.test"),
		investmatch.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		investmatch.WithIdentity(newTokenIdentity(
			service.IdentityUser{ID: ashaID, Email: "asha@lumenpay.example"},
			service.IdentityUser{ID: priyaID, Email: "priya@northstar.example"},
			service.IdentityUser{ID: adminID, Email: "admin@investmatch.example"},
		)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	f, err := persistence.DefaultFixture()
	require.NoError(t, err)
	_, err = client.Seed(context.Background(), f)
	require.NoError(t, err)

	return client, NewAPIServer(client, nil, "test").Handler()
}

type document struct {
	Data json.RawMessage `json:"data"`
	Meta map[string]any  `json:"meta"`
}

type resource struct {
	Type       string         `json:"type"`
	ID         string         `json:"id"`
	Attributes map[string]any `json:"attributes"`
}

func do(t *testing.T, h http.Handler, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("Authorization", "Bearer token-"+userID)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) ([]resource, map[string]any) {
	t.Helper()
	var doc document
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc), w.Body.String())
	var list []resource
	require.NoError(t, json.Unmarshal(doc.Data, &list))
	return list, doc.Meta
}

func decodeOne(t *testing.T, w *httptest.ResponseRecorder) resource {
	t.Helper()
	var doc document
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc), w.Body.String())
	var one resource
	require.NoError(t, json.Unmarshal(doc.Data, &one))
	return one
}

func TestAPIServer_Health(t *testing.T) {
	_, h := newTestServer(t)

	w := do(t, h, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
}

func TestAPIServer_DirectoryIsPublic(t *testing.T) {
	_, h := newTestServer(t)

	w := do(t, h, http.MethodGet, "/api/startups?sectors=fintech", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	startups, meta := decodeList(t, w)
	require.Len(t, startups, 1)
	assert.Equal(t, "LumenPay", startups[0].Attributes["name"])
	assert.EqualValues(t, 1, meta["count"])

	w = do(t, h, http.MethodGet, "/api/investors?min_check=60000000", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	investors, _ := decodeList(t, w)
	require.Len(t, investors, 1)
	assert.Equal(t, "Meera Shah", investors[0].Attributes["name"])

	w = do(t, h, http.MethodGet, "/api/investors?min_check=10&max_check=1", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAPIServer_Unauthenticated(t *testing.T) {
	_, h := newTestServer(t)

	for _, path := range []string{"/api/pipeline", "/api/notifications", "/api/pitches", "/api/auth/me"} {
		w := do(t, h, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}

	w := do(t, h, http.MethodGet, "/api/pipeline", "unknown", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAPIServer_PipelineFlow(t *testing.T) {
	_, h := newTestServer(t)

	startups, _ := decodeList(t, do(t, h, http.MethodGet, "/api/startups?q=lumenpay", "", nil))
	require.Len(t, startups, 1)
	startupID := startups[0].ID

	w := do(t, h, http.MethodPost, "/api/pipeline", priyaID, map[string]string{"startup_id": startupID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	entry := decodeOne(t, w)
	assert.Equal(t, "to_contact", entry.Attributes["stage"])

	w = do(t, h, http.MethodPatch, "/api/pipeline/"+entry.ID, priyaID, map[string]string{"stage": "negotiating"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodPatch, "/api/pipeline/"+entry.ID, priyaID, map[string]string{
		"stage":            "discussion",
		"discussion_notes": "Intro call booked",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decodeOne(t, w)
	assert.Equal(t, "discussion", updated.Attributes["stage"])
	assert.Equal(t, "Intro call booked", updated.Attributes["discussion_notes"])

	w = do(t, h, http.MethodGet, "/api/notifications", ashaID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	notes, meta := decodeList(t, w)
	assert.Len(t, notes, 2)
	assert.EqualValues(t, 2, meta["unread_count"])

	w = do(t, h, http.MethodPost, "/api/notifications/read-all", ashaID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	_, meta = decodeList(t, do(t, h, http.MethodGet, "/api/notifications", ashaID, nil))
	assert.EqualValues(t, 0, meta["unread_count"])

	w = do(t, h, http.MethodDelete, "/api/pipeline/"+entry.ID, priyaID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	list, _ := decodeList(t, do(t, h, http.MethodGet, "/api/pipeline", priyaID, nil))
	assert.Empty(t, list)
}

func TestAPIServer_AdminOnly(t *testing.T) {
	_, h := newTestServer(t)

	w := do(t, h, http.MethodGet, "/api/admin/dashboard", ashaID, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(t, h, http.MethodGet, "/api/admin/dashboard", adminID, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	dash := decodeOne(t, w)
	users, ok := dash.Attributes["users"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 2, users["founders"])

	w = do(t, h, http.MethodGet, "/api/admin/users?role=INVESTOR", adminID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	profiles, _ := decodeList(t, w)
	assert.Len(t, profiles, 1)
}

func TestAPIServer_PaymentsUnconfigured(t *testing.T) {
	_, h := newTestServer(t)

	w := do(t, h, http.MethodPost, "/api/razorpay/order", ashaID, map[string]any{"amount": 49900, "currency": "INR"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestAPIServer_AuthCallback(t *testing.T) {
	_, h := newTestServer(t)

	t.Run("provider error", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/auth/callback?error=access_denied", "", nil)
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.True(t, strings.HasPrefix(w.Header().Get("Location"), "http://app.test/auth/signin?error="))
	})

	t.Run("exchange", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/auth/callback?code=good", "", nil)
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "http://app.test/founder/dashboard", w.Header().Get("Location"))
		assert.NotEmpty(t, w.Result().Cookies())
	})

	t.Run("next path", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/auth/callback?code=good&next=/founder/pitches", "", nil)
		assert.Equal(t, "http://app.test/founder/pitches", w.Header().Get("Location"))

		w = do(t, h, http.MethodGet, "/auth/callback?code=good&next=%2F%5Cevil.example", "", nil)
		assert.Equal(t, "http://app.test/founder/dashboard", w.Header().Get("Location"))
	})
}

func TestAPIServer_Files(t *testing.T) {
	client, h := newTestServer(t)
	require.NotEmpty(t, client.FilesDir())

	path := filepath.Join(client.FilesDir(), "pitch-decks", "deck.pdf")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o600))

	w := do(t, h, http.MethodGet, "/files/pitch-decks/deck.pdf", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "%PDF-1.4", w.Body.String())

	w = do(t, h, http.MethodGet, "/files/pitch-decks/", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
