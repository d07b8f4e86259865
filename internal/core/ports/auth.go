package ports

import (
	"context"

	"github.com/arkade-os/tokend/internal/core/domain"
)

type Authorizer interface {
	// RequireAuth fails if the caller did not prove the authority of account.
	RequireAuth(ctx context.Context, account domain.Name) error
	HasAuth(ctx context.Context, account domain.Name) bool
	IsAccount(ctx context.Context, account domain.Name) bool
}
