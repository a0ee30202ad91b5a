package httpx

import (
	"context"

	"github.com/aussiebroadwan/saasadmin/pkg/jwtx"
)

type ctxKey string

const (
	CtxKeyUserID ctxKey = "user_id"
	CtxKeyRole   ctxKey = "role"
	CtxKeyClaims ctxKey = "claims" // full jwtx.AccessClaims
)

// UserIDFromContext returns the authenticated user id, if any.
func UserIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(CtxKeyUserID).(string)
	return v, ok && v != ""
}

// RoleFromContext returns the role name carried by the access token.
func RoleFromContext(ctx context.Context) string {
	v, _ := ctx.Value(CtxKeyRole).(string)
	return v
}

// ClaimsFromContext returns the verified access claims.
func ClaimsFromContext(ctx context.Context) (jwtx.AccessClaims, bool) {
	c, ok := ctx.Value(CtxKeyClaims).(jwtx.AccessClaims)
	return c, ok
}

// ContextWithClaims stores verified claims the same way AuthnMiddleware does.
func ContextWithClaims(ctx context.Context, c jwtx.AccessClaims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, c.UserID)
	ctx = context.WithValue(ctx, CtxKeyRole, c.Role)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}
