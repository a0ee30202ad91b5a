package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/saasadmin/internal/admin/service"
	"github.com/aussiebroadwan/saasadmin/pkg/adminsdk"
	"github.com/aussiebroadwan/saasadmin/pkg/httpx"
	"github.com/aussiebroadwan/saasadmin/pkg/slogx"
)

// opErrors carries the resource-specific messages of one endpoint.
type opErrors struct {
	NotFound string // 404 on service.ErrNotFound
	Conflict string // 409 on service.ErrAlreadyExists
	Internal string // 500 for anything unexpected
}

// writeServiceError translates a service error into the {"error": ...} body.
// Unexpected errors are logged and replaced by op.Internal.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, op opErrors) {
	toAPIError(r, err, op).WriteError(w)
}

func toAPIError(r *http.Request, err error, op opErrors) *adminsdk.APIError {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		return adminsdk.NewAPIError(http.StatusBadRequest, ve.Message)
	case errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrExpiredToken),
		errors.Is(err, service.ErrMalformedToken):
		return adminsdk.ErrInvalidToken
	case errors.Is(err, service.ErrInvalidCredentials):
		return adminsdk.ErrInvalidCredentials
	case errors.Is(err, service.ErrInvalidRefresh):
		return adminsdk.ErrInvalidRefreshToken
	case errors.Is(err, service.ErrRoleNotFound):
		return adminsdk.ErrRoleNotFound
	case errors.Is(err, service.ErrTenantNotFound):
		return adminsdk.ErrTenantNotFound
	case errors.Is(err, service.ErrTenantConstraint):
		return adminsdk.ErrTenantConstraint
	case errors.Is(err, service.ErrNotFound) && op.NotFound != "":
		return adminsdk.NewAPIError(http.StatusNotFound, op.NotFound)
	case errors.Is(err, service.ErrAlreadyExists) && op.Conflict != "":
		return adminsdk.NewAPIError(http.StatusConflict, op.Conflict)
	}

	slogx.FromContext(r.Context()).Error(op.Internal, slog.Any("error", err))
	return adminsdk.NewAPIError(http.StatusInternalServerError, op.Internal)
}

const maxBodyBytes = 1 << 20

// decodeBody reads a JSON request body, writing 400 on failure. An empty body
// leaves dst zero so the service reports the missing fields.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := httpx.DecodeJSON(w, r, dst, maxBodyBytes)
	if err != nil && !errors.Is(err, io.EOF) {
		slogx.FromContext(r.Context()).Debug("invalid request body", slog.Any("error", err))
		adminsdk.ErrInvalidBody.WriteError(w)
		return false
	}
	return true
}
