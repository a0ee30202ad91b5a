package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/saasadmin/internal/admin/store"
	"github.com/aussiebroadwan/saasadmin/pkg/adminsdk"
	"github.com/aussiebroadwan/saasadmin/pkg/httpx"
	"github.com/aussiebroadwan/saasadmin/pkg/slogx"
)

// LivezHandler godoc
//
//	@Summary		Liveness probe
//	@Description	Always 200 while the process is serving.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	adminsdk.HealthResponse
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, adminsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness probe
//	@Description	503 while the database is unreachable.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	adminsdk.HealthResponse
//	@Failure		503	{object}	adminsdk.HealthResponse
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &adminsdk.HealthChecks{Database: "ok"}
		status, code := "ok", http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			status, code = "degraded", http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, code, adminsdk.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}

// TestDBHandler godoc
//
//	@Summary	Database round trip
//	@Tags		Health
//	@Produce	json
//	@Success	200	{object}	adminsdk.TestDBResponse
//	@Failure	500	{object}	adminsdk.APIError	"Database connection failed"
//	@Router		/test-db [get].
func TestDBHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now, err := st.Now(r.Context())
		if err != nil {
			slogx.FromContext(r.Context()).Error("database check failed", slog.Any("error", err))
			adminsdk.NewAPIError(http.StatusInternalServerError, "Database connection failed").WriteError(w)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, adminsdk.TestDBResponse{Message: "Database connected", Time: now})
	}
}
