package api

import "context"

// Principal is the authenticated identity attached to a request after
// token verification. It is a pure function of the token claims; no
// store lookup happens during authentication, which is why a role
// change only shows up after the subject's next login or rotation.
type Principal struct {
	Subject string
	Role    string
}

type principalKey struct{}

func withPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the request's authenticated principal, or nil
// when the request carried no valid bearer token.
func PrincipalFrom(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalKey{}).(*Principal)
	return p
}
