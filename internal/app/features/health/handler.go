// internal/app/features/health/handler.go
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Pinger reports whether the backing database is reachable. The Mongo
// client satisfies it via a thin adapter in bootstrap; tests stub it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapts a function to the Pinger interface.
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error { return f(ctx) }

// Handler holds dependencies needed for health checks.
type Handler struct {
	DB  Pinger
	Log *zap.Logger
}

func NewHandler(db Pinger, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger}
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and { "status":"ok", "database":"connected" }
// On DB failure: 503 and { "status":"error", "message":"Database unavailable", "error":"…" }
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{Status: "ok", Database: "connected"}
	if err := h.DB.Ping(ctx); err != nil {
		h.Log.Error("health-check: database ping failed", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		resp.Status = "error"
		resp.Database = "disconnected"
		resp.Message = "Database unavailable"
		resp.Error = err.Error()
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	_ = json.NewEncoder(w).Encode(resp)
}
