package auth

import (
	"context"
	"fmt"

	"github.com/arkade-os/tokend/internal/core/domain"
	"github.com/arkade-os/tokend/internal/core/ports"
)

type authKey struct{}

// WithAuthorizations returns a copy of ctx carrying the accounts that signed
// the call.
func WithAuthorizations(ctx context.Context, accounts ...domain.Name) context.Context {
	auths := make(map[domain.Name]struct{}, len(accounts))
	for account := range authorizations(ctx) {
		auths[account] = struct{}{}
	}
	for _, account := range accounts {
		auths[account] = struct{}{}
	}
	return context.WithValue(ctx, authKey{}, auths)
}

func authorizations(ctx context.Context) map[domain.Name]struct{} {
	auths, _ := ctx.Value(authKey{}).(map[domain.Name]struct{})
	return auths
}

type authorizer struct {
	accounts map[domain.Name]struct{}
}

// NewAuthorizer returns an authorizer checking the authorizations carried by
// the context. If no account is given any valid name is an existing account,
// otherwise only the given ones are.
func NewAuthorizer(accounts ...domain.Name) (ports.Authorizer, error) {
	known := make(map[domain.Name]struct{}, len(accounts))
	for _, account := range accounts {
		if !account.IsValid() {
			return nil, fmt.Errorf("invalid account name %q", account)
		}
		known[account] = struct{}{}
	}
	return &authorizer{known}, nil
}

func (a *authorizer) RequireAuth(ctx context.Context, account domain.Name) error {
	if !a.HasAuth(ctx, account) {
		return fmt.Errorf("missing authority of %s", account)
	}
	return nil
}

func (a *authorizer) HasAuth(ctx context.Context, account domain.Name) bool {
	_, ok := authorizations(ctx)[account]
	return ok
}

func (a *authorizer) IsAccount(_ context.Context, account domain.Name) bool {
	if !account.IsValid() {
		return false
	}
	if len(a.accounts) == 0 {
		return true
	}
	_, ok := a.accounts[account]
	return ok
}
