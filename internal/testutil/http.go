// internal/testutil/http.go
package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/strivefit/coachhub/internal/app/system/auth"
	"github.com/strivefit/coachhub/internal/domain/models"
)

// JSONRequest builds a POST request with a JSON-encoded body.
func JSONRequest(t *testing.T, target string, body any) *http.Request {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request body: %v", err)
	}
	r := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(buf))
	r.Header.Set("Content-Type", "application/json")
	return r
}

// AuthedRequest builds a JSON request carrying the principal's identity
// in the request context, bypassing cookies and tokens.
func AuthedRequest(t *testing.T, target string, body any, p models.Principal) *http.Request {
	t.Helper()
	r := JSONRequest(t, target, body)
	return auth.WithTestIdentity(r, auth.Identity{MemberID: p.MemberID, Email: p.Email})
}

// DecodeJSON unmarshals a recorded response body into out.
func DecodeJSON(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}
