package domain

import "context"

type principalKey struct{}

// Principal is the authenticated identity derived from a verified session
// credential. Role is the claim embedded at issuance.
type Principal struct {
	Username string
	Role     Role
}

// WithPrincipal stores a Principal in the context.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext extracts the Principal from the context.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
