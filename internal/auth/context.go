package auth

import "context"

type principalKey struct{}

// WithPrincipal returns a context carrying the verified claims
func WithPrincipal(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, principalKey{}, claims)
}

// PrincipalFrom returns the claims attached by the session guard
func PrincipalFrom(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(principalKey{}).(*Claims)
	return claims, ok && claims != nil
}
