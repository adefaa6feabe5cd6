package auth_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/strivefit/coachhub/internal/app/system/auth"
	"go.uber.org/zap"
)

const testKey = "0123456789ABCDEF0123456789ABCDEF"

func TestTokens_IssueParse(t *testing.T) {
	tokens := auth.NewTokens(testKey, time.Hour)

	id := auth.Identity{MemberID: "m-123", Email: "client@example.com"}
	tok, err := tokens.Issue(id)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	got, err := tokens.Parse(tok)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got != id {
		t.Errorf("identity: got %+v, want %+v", got, id)
	}
}

func TestTokens_Expired(t *testing.T) {
	tokens := auth.NewTokens(testKey, -time.Minute)

	tok, err := tokens.Issue(auth.Identity{MemberID: "m-123"})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if _, err := tokens.Parse(tok); err == nil {
		t.Error("expected expired token to fail verification")
	}
}

func TestTokens_WrongKey(t *testing.T) {
	tok, err := auth.NewTokens(testKey, time.Hour).Issue(auth.Identity{MemberID: "m-123"})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	other := auth.NewTokens("FEDCBA9876543210FEDCBA9876543210", time.Hour)
	if _, err := other.Parse(tok); err == nil {
		t.Error("expected token signed with a different key to fail")
	}
}

func TestTokens_ResolveBearerHeader(t *testing.T) {
	tokens := auth.NewTokens(testKey, time.Hour)
	tok, err := tokens.Issue(auth.Identity{MemberID: "m-123", Email: "a@b.c"})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	req := httptest.NewRequest("POST", "/api/data", nil)
	req.Header.Set("Authorization", "Bearer "+tok)

	id, ok := tokens.Resolve(req)
	if !ok {
		t.Fatal("expected bearer token to resolve")
	}
	if id.MemberID != "m-123" {
		t.Errorf("MemberID: got %q, want %q", id.MemberID, "m-123")
	}
}

func TestTokens_ResolveMissingHeader(t *testing.T) {
	tokens := auth.NewTokens(testKey, time.Hour)
	req := httptest.NewRequest("POST", "/api/data", nil)
	if _, ok := tokens.Resolve(req); ok {
		t.Error("expected no identity without an Authorization header")
	}
}

func TestSessionManager_SignInResolve(t *testing.T) {
	logger := zap.NewNop()
	mgr, err := auth.NewSessionManager(testKey, "coachhub-session", "", false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/login", nil)
	id := auth.Identity{MemberID: "m-123", Email: "client@example.com"}
	if err := mgr.SignIn(rec, req, id); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected session cookie to be set")
	}

	next := httptest.NewRequest("POST", "/api/data", nil)
	for _, c := range cookies {
		next.AddCookie(c)
	}
	got, ok := mgr.Resolve(next)
	if !ok {
		t.Fatal("expected session to resolve")
	}
	if got != id {
		t.Errorf("identity: got %+v, want %+v", got, id)
	}
}

func TestMultiResolver_Order(t *testing.T) {
	logger := zap.NewNop()
	mgr, err := auth.NewSessionManager(testKey, "coachhub-session", "", false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	tokens := auth.NewTokens(testKey, time.Hour)
	resolver := auth.MultiResolver{tokens, mgr}

	req := httptest.NewRequest("POST", "/api/data", nil)
	if _, ok := resolver.Resolve(req); ok {
		t.Error("expected no identity on a bare request")
	}

	tok, err := tokens.Issue(auth.Identity{MemberID: "m-9"})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+tok)
	id, ok := resolver.Resolve(req)
	if !ok || id.MemberID != "m-9" {
		t.Errorf("expected bearer identity m-9, got %+v ok=%v", id, ok)
	}
}
