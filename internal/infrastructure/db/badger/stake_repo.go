package badgerdb

import (
	"context"
	"fmt"

	"github.com/arkade-os/tokend/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type stakeRepository struct {
	store *badgerhold.Store
}

func (r *stakeRepository) Get(
	ctx context.Context, owner domain.Name, code domain.SymbolCode,
) (*domain.StakePosition, error) {
	var position domain.StakePosition
	found, err := get(ctx, r.store, domain.OwnerKey(owner, code), &position)
	if err != nil {
		return nil, fmt.Errorf("failed to get stake of %s: %w", owner, err)
	}
	if !found {
		return nil, nil
	}
	return &position, nil
}

func (r *stakeRepository) Upsert(ctx context.Context, position domain.StakePosition) error {
	if err := upsert(ctx, r.store, position.Key(), position); err != nil {
		return fmt.Errorf("failed to upsert stake %s: %w", position.Key(), err)
	}
	return nil
}

func (r *stakeRepository) Delete(
	ctx context.Context, owner domain.Name, code domain.SymbolCode,
) error {
	key := domain.OwnerKey(owner, code)
	if err := remove(ctx, r.store, key, domain.StakePosition{}); err != nil {
		return fmt.Errorf("failed to delete stake %s: %w", key, err)
	}
	return nil
}

type dividendRepository struct {
	store *badgerhold.Store
}

func (r *dividendRepository) Get(
	ctx context.Context, code domain.SymbolCode,
) (*domain.DividendPool, error) {
	var pool domain.DividendPool
	found, err := get(ctx, r.store, code.String(), &pool)
	if err != nil {
		return nil, fmt.Errorf("failed to get dividend pool of %s: %w", code, err)
	}
	if !found {
		return nil, nil
	}
	return &pool, nil
}

func (r *dividendRepository) Upsert(ctx context.Context, pool domain.DividendPool) error {
	code := pool.Symbol().Code
	if err := upsert(ctx, r.store, code.String(), pool); err != nil {
		return fmt.Errorf("failed to upsert dividend pool of %s: %w", code, err)
	}
	return nil
}

type refundRepository struct {
	store *badgerhold.Store
}

func (r *refundRepository) Get(
	ctx context.Context, owner domain.Name,
) (*domain.RefundRequest, error) {
	var request domain.RefundRequest
	found, err := get(ctx, r.store, owner.String(), &request)
	if err != nil {
		return nil, fmt.Errorf("failed to get refund request of %s: %w", owner, err)
	}
	if !found {
		return nil, nil
	}
	return &request, nil
}

func (r *refundRepository) Upsert(ctx context.Context, request domain.RefundRequest) error {
	if err := upsert(ctx, r.store, request.Owner.String(), request); err != nil {
		return fmt.Errorf("failed to upsert refund request of %s: %w", request.Owner, err)
	}
	return nil
}

func (r *refundRepository) Delete(ctx context.Context, owner domain.Name) error {
	if err := remove(ctx, r.store, owner.String(), domain.RefundRequest{}); err != nil {
		return fmt.Errorf("failed to delete refund request of %s: %w", owner, err)
	}
	return nil
}
