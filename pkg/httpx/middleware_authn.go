package httpx

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/saasadmin/pkg/jwtx"
	"github.com/aussiebroadwan/saasadmin/pkg/slogx"
)

const (
	msgTokenRequired = "Authorization token required"
	msgTokenInvalid  = "Invalid or expired token"
)

// AccessVerifier validates a raw access token.
type AccessVerifier interface {
	VerifyAccessToken(raw string) (jwtx.AccessClaims, error)
}

type authnOptions struct {
	queryParam string
}

// AuthnOption tweaks AuthnMiddleware.
type AuthnOption func(*authnOptions)

// WithQueryToken also accepts the token from the named query parameter when
// no Authorization header is sent. Browsers cannot set headers on WebSocket
// handshakes.
func WithQueryToken(param string) AuthnOption {
	return func(o *authnOptions) { o.queryParam = param }
}

// AuthnMiddleware requires a valid bearer access token and stores its claims
// in the request context.
func AuthnMiddleware(v AccessVerifier, opts ...AuthnOption) Middleware {
	var o authnOptions
	for _, opt := range opts {
		opt(&o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw, ok := BearerToken(r)
			if !ok && o.queryParam != "" {
				raw = strings.TrimSpace(r.URL.Query().Get(o.queryParam))
				ok = raw != ""
			}
			if !ok {
				writeBearerError(w, "invalid_request", msgTokenRequired)
				return
			}

			claims, err := v.VerifyAccessToken(raw)
			if err != nil {
				log.Debug("jwt verify failed", "err", err)
				writeBearerError(w, "invalid_token", msgTokenInvalid)
				return
			}

			// Inject into context for downstream handlers.
			ctx = ContextWithClaims(ctx, claims)
			ctx = slogx.WithContext(ctx, log.With("user_id", claims.UserID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The scheme is matched case-insensitively.
func BearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(authz, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// RFC 6750 style challenge plus the JSON body clients expect.
func writeBearerError(w http.ResponseWriter, code, msg string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="`+code+`"`)
	WriteJSON(w, http.StatusUnauthorized, map[string]string{"error": msg})
}
