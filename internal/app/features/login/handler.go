// internal/app/features/login/handler.go

// Package login authenticates members by password or Google OAuth. A
// successful login establishes a cookie session and returns a bearer
// token for API callers that cannot use cookies.
package login

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/strivefit/coachhub/internal/app/store/docstore"
	rolestore "github.com/strivefit/coachhub/internal/app/store/roles"
	"github.com/strivefit/coachhub/internal/app/system/auth"
	"github.com/strivefit/coachhub/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const usersCollection = "users"

// stateCookie holds the OAuth state nonce between the redirect to Google
// and the callback. Short-lived and HttpOnly.
const stateCookie = "coachhub_oauth_state"

type Handler struct {
	Docs     docstore.Store
	Roles    *rolestore.Store
	Sessions *auth.SessionManager
	Tokens   *auth.Tokens
	Log      *zap.Logger

	ClientID     string
	ClientSecret string
	RedirectURL  string
	PortalURL    string
	Secure       bool
}

func NewHandler(docs docstore.Store, sessions *auth.SessionManager, tokens *auth.Tokens, clientID, clientSecret, baseURL string, secure bool, logger *zap.Logger) *Handler {
	return &Handler{
		Docs:         docs,
		Roles:        rolestore.New(docs),
		Sessions:     sessions,
		Tokens:       tokens,
		Log:          logger,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  baseURL + "/login/google/callback",
		PortalURL:    baseURL,
		Secure:       secure,
	}
}

func (h *Handler) oauth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.ClientID,
		ClientSecret: h.ClientSecret,
		RedirectURL:  h.RedirectURL,
		Scopes: []string{
			"openid",
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

// GoogleConfigured reports whether the Google OAuth flow can run.
func (h *Handler) GoogleConfigured() bool {
	return h.ClientID != "" && h.ClientSecret != ""
}

type passwordRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req *passwordRequest) Validate() error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
	)
}

type loginResponse struct {
	Success  bool   `json:"success"`
	Token    string `json:"token,omitempty"`
	MemberID string `json:"memberId,omitempty"`
	Role     string `json:"role,omitempty"`
	Error    string `json:"error,omitempty"`
}

// ServePassword handles POST /login. The failure message is identical
// for unknown email, wrong password, and disabled account.
func (h *Handler) ServePassword(w http.ResponseWriter, r *http.Request) {
	var req passwordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeLogin(w, http.StatusBadRequest, loginResponse{Error: "malformed request body"})
		return
	}
	if err := req.Validate(); err != nil {
		writeLogin(w, http.StatusBadRequest, loginResponse{Error: err.Error()})
		return
	}

	user, err := h.findUser(r.Context(), req.Email, "password")
	if err != nil {
		if !errors.Is(err, errUserNotFound) {
			h.Log.Error("user lookup failed", zap.Error(err))
			writeLogin(w, http.StatusInternalServerError, loginResponse{Error: "login failed"})
			return
		}
		writeLogin(w, http.StatusUnauthorized, loginResponse{Error: "invalid email or password"})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		h.Log.Info("password login rejected", zap.String("email", req.Email))
		writeLogin(w, http.StatusUnauthorized, loginResponse{Error: "invalid email or password"})
		return
	}

	h.finishLogin(w, r, user, "password")
}

// ServeGoogleStart handles GET /login/google: sets the state cookie and
// redirects to Google's consent screen.
func (h *Handler) ServeGoogleStart(w http.ResponseWriter, r *http.Request) {
	if !h.GoogleConfigured() {
		writeLogin(w, http.StatusNotImplemented, loginResponse{Error: "Google sign-in is not configured"})
		return
	}

	state, err := generateState()
	if err != nil {
		h.Log.Error("oauth state generation failed", zap.Error(err))
		writeLogin(w, http.StatusInternalServerError, loginResponse{Error: "login failed"})
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/login/google",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		Secure:   h.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.oauth2Config().AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// ServeGoogleCallback handles GET /login/google/callback.
func (h *Handler) ServeGoogleCallback(w http.ResponseWriter, r *http.Request) {
	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.Log.Warn("google oauth error", zap.String("error", errParam))
		h.redirectPortal(w, r, "google_denied")
		return
	}

	state := r.URL.Query().Get("state")
	cookie, err := r.Cookie(stateCookie)
	if state == "" || err != nil || cookie.Value != state {
		h.Log.Warn("oauth state mismatch")
		h.redirectPortal(w, r, "invalid_state")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		h.redirectPortal(w, r, "invalid_code")
		return
	}
	token, err := h.oauth2Config().Exchange(r.Context(), code)
	if err != nil {
		h.Log.Error("oauth code exchange failed", zap.Error(err))
		h.redirectPortal(w, r, "token_exchange")
		return
	}

	info, err := fetchGoogleUserInfo(r.Context(), token)
	if err != nil {
		h.Log.Error("google userinfo fetch failed", zap.Error(err))
		h.redirectPortal(w, r, "user_info")
		return
	}

	user, err := h.findUser(r.Context(), info.Email, "google")
	if err != nil {
		if errors.Is(err, errUserNotFound) {
			h.Log.Info("google login for unknown account", zap.String("email", info.Email))
			h.redirectPortal(w, r, "no_account")
			return
		}
		h.Log.Error("user lookup failed", zap.Error(err))
		h.redirectPortal(w, r, "internal")
		return
	}

	id := auth.Identity{MemberID: user.MemberID, Email: user.Email}
	if err := h.Sessions.SignIn(w, r, id); err != nil {
		h.Log.Error("session save failed", zap.Error(err))
		h.redirectPortal(w, r, "session")
		return
	}
	h.Log.Info("member signed in", zap.String("member_id", id.MemberID), zap.String("method", "google"))
	http.Redirect(w, r, h.PortalURL, http.StatusSeeOther)
}

// ServeLogout handles POST /logout.
func (h *Handler) ServeLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.SignOut(w, r); err != nil {
		h.Log.Warn("session clear failed", zap.Error(err))
	}
	writeLogin(w, http.StatusOK, loginResponse{Success: true})
}

var errUserNotFound = errors.New("user not found")

// findUser returns the active user for the email and auth method.
// Disabled accounts are indistinguishable from missing ones.
func (h *Handler) findUser(ctx context.Context, email, method string) (models.User, error) {
	rows, err := h.Docs.Find(ctx, usersCollection, map[string]any{
		"email":       strings.ToLower(email),
		"auth_method": method,
		"status":      models.StatusActive,
	}, 1, 0)
	if err != nil {
		return models.User{}, err
	}
	if len(rows) == 0 {
		return models.User{}, errUserNotFound
	}
	d := rows[0]
	return models.User{
		ID:           d.ID(),
		MemberID:     d.Str("member_id"),
		FullName:     d.Str("full_name"),
		Email:        d.Str("email"),
		PasswordHash: d.Str("password_hash"),
		AuthMethod:   d.Str("auth_method"),
		Status:       d.Str("status"),
	}, nil
}

func (h *Handler) finishLogin(w http.ResponseWriter, r *http.Request, user models.User, method string) {
	id := auth.Identity{MemberID: user.MemberID, Email: user.Email}

	role, err := h.Roles.ActiveRole(r.Context(), id.MemberID)
	if err != nil {
		h.Log.Error("role resolution failed at login",
			zap.String("member_id", id.MemberID), zap.Error(err))
		writeLogin(w, http.StatusForbidden, loginResponse{Error: "Invalid role"})
		return
	}

	if err := h.Sessions.SignIn(w, r, id); err != nil {
		h.Log.Error("session save failed", zap.Error(err))
		writeLogin(w, http.StatusInternalServerError, loginResponse{Error: "login failed"})
		return
	}
	bearer, err := h.Tokens.Issue(id)
	if err != nil {
		h.Log.Error("token issue failed", zap.Error(err))
		writeLogin(w, http.StatusInternalServerError, loginResponse{Error: "login failed"})
		return
	}

	h.Log.Info("member signed in",
		zap.String("member_id", id.MemberID),
		zap.String("method", method),
		zap.String("role", string(role)))
	writeLogin(w, http.StatusOK, loginResponse{
		Success:  true,
		Token:    bearer,
		MemberID: id.MemberID,
		Role:     string(role),
	})
}

func (h *Handler) redirectPortal(w http.ResponseWriter, r *http.Request, errorCode string) {
	http.Redirect(w, r, h.PortalURL+"/login?error="+errorCode, http.StatusSeeOther)
}

type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"verified_email"`
	Name          string `json:"name"`
}

func fetchGoogleUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("fetch user info: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo status %d", resp.StatusCode)
	}
	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode user info: %w", err)
	}
	return &info, nil
}

func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

func writeLogin(w http.ResponseWriter, status int, resp loginResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
