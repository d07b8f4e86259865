package auth_test

import (
	"context"
	"testing"

	"github.com/arkade-os/tokend/internal/core/domain"
	"github.com/arkade-os/tokend/internal/infrastructure/auth"
	"github.com/stretchr/testify/require"
)

func TestAuthorizer(t *testing.T) {
	t.Run("authorizations", func(t *testing.T) {
		authorizer, err := auth.NewAuthorizer()
		require.NoError(t, err)

		ctx := context.Background()
		require.False(t, authorizer.HasAuth(ctx, "alice"))
		require.Error(t, authorizer.RequireAuth(ctx, "alice"))

		ctx = auth.WithAuthorizations(ctx, "alice")
		ctx = auth.WithAuthorizations(ctx, "bob")
		require.True(t, authorizer.HasAuth(ctx, "alice"))
		require.True(t, authorizer.HasAuth(ctx, "bob"))
		require.NoError(t, authorizer.RequireAuth(ctx, "alice"))
		require.Error(t, authorizer.RequireAuth(ctx, "carol"))
	})

	t.Run("open accounts", func(t *testing.T) {
		authorizer, err := auth.NewAuthorizer()
		require.NoError(t, err)

		ctx := context.Background()
		require.True(t, authorizer.IsAccount(ctx, "anyone"))
		require.False(t, authorizer.IsAccount(ctx, "Not.Valid"))
	})

	t.Run("allow list", func(t *testing.T) {
		authorizer, err := auth.NewAuthorizer("alice", "bob")
		require.NoError(t, err)

		ctx := context.Background()
		require.True(t, authorizer.IsAccount(ctx, "alice"))
		require.False(t, authorizer.IsAccount(ctx, "carol"))
	})

	t.Run("invalid allow list", func(t *testing.T) {
		_, err := auth.NewAuthorizer(domain.Name("Alice"))
		require.Error(t, err)
	})
}
