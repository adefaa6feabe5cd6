// internal/app/features/login/handler_test.go
package login_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/strivefit/coachhub/internal/app/features/login"
	"github.com/strivefit/coachhub/internal/app/store/docstore"
	"github.com/strivefit/coachhub/internal/app/system/auth"
	"github.com/strivefit/coachhub/internal/domain/models"
	"github.com/strivefit/coachhub/internal/testutil"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testSessionKey = "0123456789abcdef0123456789abcdef"

func newHandler(t *testing.T, docs docstore.Store) (*login.Handler, *auth.Tokens) {
	t.Helper()
	sm, err := auth.NewSessionManager(testSessionKey, "coachhub_session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}
	tokens := auth.NewTokens(testSessionKey, time.Hour)
	h := login.NewHandler(docs, sm, tokens, "", "", "https://coachhub.example", false, zap.NewNop())
	return h, tokens
}

func seedPasswordUser(t *testing.T, docs docstore.Store, memberID, email, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	testutil.InsertRecord(t, docs, "users", map[string]any{
		"member_id":     memberID,
		"email":         email,
		"password_hash": string(hash),
		"auth_method":   "password",
		"status":        models.StatusActive,
	})
}

func TestPasswordLogin(t *testing.T) {
	docs := testutil.NewStore(t)
	h, tokens := newHandler(t, docs)
	seedPasswordUser(t, docs, "m1", "jordan@example.com", "s3cret-pass")
	testutil.CreateMember(t, docs, "m1", "jordan@example.com", "client")

	r := testutil.JSONRequest(t, "/login", map[string]any{
		"email": "jordan@example.com", "password": "s3cret-pass",
	})
	rec := httptest.NewRecorder()
	h.ServePassword(rec, r)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Success  bool   `json:"success"`
		Token    string `json:"token"`
		MemberID string `json:"memberId"`
		Role     string `json:"role"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if !resp.Success || resp.MemberID != "m1" || resp.Role != "client" {
		t.Fatalf("response = %+v", resp)
	}

	// The bearer token must resolve back to the same identity.
	id, err := tokens.Parse(resp.Token)
	if err != nil {
		t.Fatalf("parse issued token: %v", err)
	}
	if id.MemberID != "m1" || id.Email != "jordan@example.com" {
		t.Fatalf("token identity = %+v", id)
	}

	// And a session cookie must have been set.
	if len(rec.Result().Cookies()) == 0 {
		t.Fatal("no session cookie set")
	}
}

func TestPasswordLoginWrongPassword(t *testing.T) {
	docs := testutil.NewStore(t)
	h, _ := newHandler(t, docs)
	seedPasswordUser(t, docs, "m1", "jordan@example.com", "s3cret-pass")

	r := testutil.JSONRequest(t, "/login", map[string]any{
		"email": "jordan@example.com", "password": "wrong",
	})
	rec := httptest.NewRecorder()
	h.ServePassword(rec, r)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestPasswordLoginUnknownEmail(t *testing.T) {
	docs := testutil.NewStore(t)
	h, _ := newHandler(t, docs)

	r := testutil.JSONRequest(t, "/login", map[string]any{
		"email": "nobody@example.com", "password": "whatever",
	})
	rec := httptest.NewRecorder()
	h.ServePassword(rec, r)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	var resp struct {
		Error string `json:"error"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if resp.Error != "invalid email or password" {
		t.Fatalf("error = %q; must not reveal whether the account exists", resp.Error)
	}
}

func TestPasswordLoginDisabledAccount(t *testing.T) {
	docs := testutil.NewStore(t)
	h, _ := newHandler(t, docs)
	hash, _ := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	testutil.InsertRecord(t, docs, "users", map[string]any{
		"member_id":     "m1",
		"email":         "jordan@example.com",
		"password_hash": string(hash),
		"auth_method":   "password",
		"status":        models.StatusInactive,
	})

	r := testutil.JSONRequest(t, "/login", map[string]any{
		"email": "jordan@example.com", "password": "s3cret-pass",
	})
	rec := httptest.NewRecorder()
	h.ServePassword(rec, r)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestPasswordLoginValidation(t *testing.T) {
	docs := testutil.NewStore(t)
	h, _ := newHandler(t, docs)

	r := testutil.JSONRequest(t, "/login", map[string]any{"email": "not-an-email"})
	rec := httptest.NewRecorder()
	h.ServePassword(rec, r)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGoogleStartUnconfigured(t *testing.T) {
	docs := testutil.NewStore(t)
	h, _ := newHandler(t, docs)

	r := httptest.NewRequest(http.MethodGet, "/login/google", nil)
	rec := httptest.NewRecorder()
	h.ServeGoogleStart(rec, r)
	if rec.Code != http.StatusNotImplemented {
		t.Fatalf("status = %d, want 501", rec.Code)
	}
}

func TestGoogleCallbackStateMismatch(t *testing.T) {
	docs := testutil.NewStore(t)
	h, _ := newHandler(t, docs)
	h.ClientID = "id"
	h.ClientSecret = "secret"

	r := httptest.NewRequest(http.MethodGet, "/login/google/callback?state=abc&code=xyz", nil)
	r.AddCookie(&http.Cookie{Name: "coachhub_oauth_state", Value: "different"})
	rec := httptest.NewRecorder()
	h.ServeGoogleCallback(rec, r)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want redirect", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "https://coachhub.example/login?error=invalid_state" {
		t.Fatalf("location = %q", loc)
	}
}

func TestLogout(t *testing.T) {
	docs := testutil.NewStore(t)
	h, _ := newHandler(t, docs)

	r := httptest.NewRequest(http.MethodPost, "/logout", nil)
	rec := httptest.NewRecorder()
	h.ServeLogout(rec, r)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}
