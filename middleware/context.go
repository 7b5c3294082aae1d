package middleware

import (
	"context"

	goAuthz "github.com/MrEthical07/goAuthz"
)

type claimsContextKey struct{}

// WithClaims attaches claims to ctx.
func WithClaims(ctx context.Context, claims goAuthz.UserClaims) context.Context {
	return context.WithValue(ctx, claimsContextKey{}, claims)
}

// ClaimsFromContext returns the claims stored by Authenticate, Optional or a guard.
func ClaimsFromContext(ctx context.Context) (goAuthz.UserClaims, bool) {
	if ctx == nil {
		return goAuthz.UserClaims{}, false
	}
	claims, ok := ctx.Value(claimsContextKey{}).(goAuthz.UserClaims)
	return claims, ok
}

type decisionContextKey struct{}

// decision carries the one authorization outcome of a request through
// stacked guards. The middleware that resolved the claims owns it.
type decision struct {
	denied bool
}

func withDecision(ctx context.Context, d *decision) context.Context {
	return context.WithValue(ctx, decisionContextKey{}, d)
}

func decisionFromContext(ctx context.Context) *decision {
	d, _ := ctx.Value(decisionContextKey{}).(*decision)
	return d
}
