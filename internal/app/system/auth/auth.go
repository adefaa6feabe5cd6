// internal/app/system/auth/auth.go
package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	isAuthKey   = "is_authenticated"
	memberIDKey = "member_id"
	emailKey    = "email"
)

// Identity is the stable identity resolved from the transport-level
// credential. Role is not part of it; roles are resolved fresh per
// request from the role-assignment collection.
type Identity struct {
	MemberID string
	Email    string
}

// Resolver resolves the calling principal's identity from the request.
// A false return is terminal for the request (401); there are no retries.
type Resolver interface {
	Resolve(r *http.Request) (Identity, bool)
}

type ctxKey string

const testIdentityKey ctxKey = "testIdentity"

// WithTestIdentity injects an identity directly into the request context.
// Test-only: it bypasses both the session and bearer-token paths.
func WithTestIdentity(r *http.Request, id Identity) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), testIdentityKey, id))
}

// SessionManager resolves identities from signed cookie sessions and
// establishes/destroys them at login/logout.
type SessionManager struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
}

// NewSessionManager builds a cookie-session manager. The `secure` flag
// controls Secure cookies and SameSite mode; enable it in production.
func NewSessionManager(sessionKey, sessionName, domain string, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts

	return &SessionManager{store: store, name: sessionName, log: logger}, nil
}

// Resolve returns the identity stored in the request's session, if any.
func (m *SessionManager) Resolve(r *http.Request) (Identity, bool) {
	if id, ok := r.Context().Value(testIdentityKey).(Identity); ok {
		return id, true
	}

	sess, err := m.store.Get(r, m.name)
	if err != nil {
		// A cookie signed with a rotated key decodes as garbage; treat it
		// as signed-out rather than an error.
		if _, ok := err.(securecookie.Error); ok {
			return Identity{}, false
		}
		return Identity{}, false
	}
	if isAuth, _ := sess.Values[isAuthKey].(bool); !isAuth {
		return Identity{}, false
	}
	id := Identity{
		MemberID: getString(sess, memberIDKey),
		Email:    getString(sess, emailKey),
	}
	if id.MemberID == "" {
		return Identity{}, false
	}
	return id, true
}

// SignIn writes the identity into a fresh session cookie.
func (m *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, id Identity) error {
	sess, _ := m.store.Get(r, m.name)
	sess.Values[isAuthKey] = true
	sess.Values[memberIDKey] = id.MemberID
	sess.Values[emailKey] = id.Email
	return sess.Save(r, w)
}

// SignOut clears the session cookie.
func (m *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess, _ := m.store.Get(r, m.name)
	sess.Options.MaxAge = -1
	sess.Values = map[any]any{}
	return sess.Save(r, w)
}

func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}

// MultiResolver tries each resolver in order. The gateway uses it to
// accept either a bearer token (portal SPAs) or a cookie session.
type MultiResolver []Resolver

func (rs MultiResolver) Resolve(r *http.Request) (Identity, bool) {
	for _, res := range rs {
		if id, ok := res.Resolve(r); ok {
			return id, true
		}
	}
	return Identity{}, false
}
