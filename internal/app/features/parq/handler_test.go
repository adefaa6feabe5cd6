// internal/app/features/parq/handler_test.go
package parq_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/strivefit/coachhub/internal/app/features/parq"
	"github.com/strivefit/coachhub/internal/app/store/docstore"
	"github.com/strivefit/coachhub/internal/testutil"
	"go.uber.org/zap"
)

func newHandler(t *testing.T) (*parq.Handler, *docstore.MemoryStore) {
	t.Helper()
	docs := testutil.NewStore(t)
	return parq.NewHandler(docs, nil, "", "CoachHub", zap.NewNop()), docs
}

func countSubmissions(t *testing.T, docs *docstore.MemoryStore, filter map[string]any) int64 {
	t.Helper()
	n, err := docs.Count(context.Background(), parq.Collection, filter)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func validBody(answers []bool) map[string]any {
	return map[string]any{
		"fullName":  "Jordan Blake",
		"email":     "jordan@example.com",
		"birthYear": 1990,
		"answers":   answers,
	}
}

func TestSubmitCleared(t *testing.T) {
	h, docs := newHandler(t)

	r := testutil.JSONRequest(t, "/api/parq", validBody([]bool{false, false, false, false, false, false, false}))
	rec := httptest.NewRecorder()
	h.Submit(rec, r)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Success           bool   `json:"success"`
		ID                string `json:"id"`
		RequiresClearance bool   `json:"requiresClearance"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if !resp.Success || resp.ID == "" || resp.RequiresClearance {
		t.Fatalf("response = %+v", resp)
	}
	if n := countSubmissions(t, docs, map[string]any{"requires_clearance": false}); n != 1 {
		t.Fatalf("stored submissions = %d, want 1", n)
	}
}

func TestSubmitFlagsClearance(t *testing.T) {
	h, docs := newHandler(t)

	r := testutil.JSONRequest(t, "/api/parq", validBody([]bool{false, false, true, false, false, false, false}))
	rec := httptest.NewRecorder()
	h.Submit(rec, r)

	var resp struct {
		RequiresClearance bool `json:"requiresClearance"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if !resp.RequiresClearance {
		t.Fatal("YES answer did not flag clearance")
	}
	if n := countSubmissions(t, docs, map[string]any{"requires_clearance": true}); n != 1 {
		t.Fatalf("flagged submissions = %d, want 1", n)
	}
}

func TestSubmitValidation(t *testing.T) {
	h, _ := newHandler(t)

	cases := []struct {
		name string
		body map[string]any
	}{
		{"missing name", map[string]any{"email": "x@example.com", "birthYear": 1990, "answers": []bool{false, false, false, false, false, false, false}}},
		{"bad email", map[string]any{"fullName": "J", "email": "not-an-email", "birthYear": 1990, "answers": []bool{false, false, false, false, false, false, false}}},
		{"wrong answer count", validBody([]bool{true, false})},
		{"future birth year", map[string]any{"fullName": "J", "email": "x@example.com", "birthYear": 3000, "answers": []bool{false, false, false, false, false, false, false}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := testutil.JSONRequest(t, "/api/parq", tc.body)
			rec := httptest.NewRecorder()
			h.Submit(rec, r)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestSubmitStripsMarkup(t *testing.T) {
	h, _ := newHandler(t)

	body := validBody([]bool{false, false, false, false, false, false, false})
	body["fullName"] = `<b>Jordan</b> Blake`
	body["details"] = `<script>alert(1)</script>knee surgery in 2019`

	r := testutil.JSONRequest(t, "/api/parq", body)
	rec := httptest.NewRecorder()
	h.Submit(rec, r)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
}
