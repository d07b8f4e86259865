package sqlitedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/arkade-os/tokend/internal/core/domain"
	"github.com/arkade-os/tokend/internal/infrastructure/db/sqlite/queries"
)

type stakeRepository struct {
	db *sql.DB
}

func (r *stakeRepository) Get(
	ctx context.Context, owner domain.Name, code domain.SymbolCode,
) (*domain.StakePosition, error) {
	row, err := querier(ctx, r.db).SelectStake(ctx, owner.String(), code.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get stake of %s: %w", owner, err)
	}

	fraction, err := domain.ParseDividendFraction(row.LastDividendFraction)
	if err != nil {
		return nil, err
	}
	return &domain.StakePosition{
		Owner:                domain.Name(row.Owner),
		Staked:               toAsset(row.Staked, row.SymbolPrecision, row.Code),
		LastDividendFraction: fraction,
	}, nil
}

func (r *stakeRepository) Upsert(ctx context.Context, position domain.StakePosition) error {
	if err := querier(ctx, r.db).UpsertStake(ctx, queries.Stake{
		Owner:                position.Owner.String(),
		Code:                 position.Staked.Symbol.Code.String(),
		SymbolPrecision:      int64(position.Staked.Symbol.Precision),
		Staked:               position.Staked.Amount,
		LastDividendFraction: position.LastDividendFraction.Raw(),
	}); err != nil {
		return fmt.Errorf("failed to upsert stake %s: %w", position.Key(), err)
	}
	return nil
}

func (r *stakeRepository) Delete(
	ctx context.Context, owner domain.Name, code domain.SymbolCode,
) error {
	if err := querier(ctx, r.db).DeleteStake(ctx, owner.String(), code.String()); err != nil {
		return fmt.Errorf("failed to delete stake of %s: %w", owner, err)
	}
	return nil
}

type dividendRepository struct {
	db *sql.DB
}

func (r *dividendRepository) Get(
	ctx context.Context, code domain.SymbolCode,
) (*domain.DividendPool, error) {
	row, err := querier(ctx, r.db).SelectDividendPool(ctx, code.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get dividend pool of %s: %w", code, err)
	}

	fraction, err := domain.ParseDividendFraction(row.DividendFraction)
	if err != nil {
		return nil, err
	}
	return &domain.DividendPool{
		TotalStaked:    toAsset(row.TotalStaked, row.SymbolPrecision, row.Code),
		TotalDividends: toAsset(row.TotalDividends, row.SymbolPrecision, row.Code),
		TotalUnclaimedDividends: toAsset(
			row.TotalUnclaimedDividends, row.SymbolPrecision, row.Code,
		),
		Fraction: fraction,
	}, nil
}

func (r *dividendRepository) Upsert(ctx context.Context, pool domain.DividendPool) error {
	sym := pool.Symbol()
	if err := querier(ctx, r.db).UpsertDividendPool(ctx, queries.DividendPool{
		Code:                    sym.Code.String(),
		SymbolPrecision:         int64(sym.Precision),
		TotalStaked:             pool.TotalStaked.Amount,
		TotalDividends:          pool.TotalDividends.Amount,
		TotalUnclaimedDividends: pool.TotalUnclaimedDividends.Amount,
		DividendFraction:        pool.Fraction.Raw(),
	}); err != nil {
		return fmt.Errorf("failed to upsert dividend pool of %s: %w", sym.Code, err)
	}
	return nil
}

type refundRepository struct {
	db *sql.DB
}

func (r *refundRepository) Get(
	ctx context.Context, owner domain.Name,
) (*domain.RefundRequest, error) {
	row, err := querier(ctx, r.db).SelectRefundRequest(ctx, owner.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get refund request of %s: %w", owner, err)
	}

	return &domain.RefundRequest{
		Owner:       domain.Name(row.Owner),
		RequestTime: row.RequestTime,
		Amount:      toAsset(row.Amount, row.SymbolPrecision, row.Code),
	}, nil
}

func (r *refundRepository) Upsert(ctx context.Context, request domain.RefundRequest) error {
	if err := querier(ctx, r.db).UpsertRefundRequest(ctx, queries.RefundRequest{
		Owner:           request.Owner.String(),
		RequestTime:     request.RequestTime,
		Code:            request.Amount.Symbol.Code.String(),
		SymbolPrecision: int64(request.Amount.Symbol.Precision),
		Amount:          request.Amount.Amount,
	}); err != nil {
		return fmt.Errorf("failed to upsert refund request of %s: %w", request.Owner, err)
	}
	return nil
}

func (r *refundRepository) Delete(ctx context.Context, owner domain.Name) error {
	if err := querier(ctx, r.db).DeleteRefundRequest(ctx, owner.String()); err != nil {
		return fmt.Errorf("failed to delete refund request of %s: %w", owner, err)
	}
	return nil
}
