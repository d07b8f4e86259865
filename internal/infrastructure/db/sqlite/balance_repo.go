package sqlitedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/arkade-os/tokend/internal/core/domain"
	"github.com/arkade-os/tokend/internal/infrastructure/db/sqlite/queries"
)

type balanceRepository struct {
	db *sql.DB
}

func (r *balanceRepository) Get(
	ctx context.Context, owner domain.Name, code domain.SymbolCode,
) (*domain.Balance, error) {
	row, err := querier(ctx, r.db).SelectBalance(ctx, owner.String(), code.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get balance of %s: %w", owner, err)
	}

	return &domain.Balance{
		Owner:   domain.Name(row.Owner),
		Balance: toAsset(row.Amount, row.SymbolPrecision, row.Code),
		Claimed: row.Claimed,
		Payer:   domain.Name(row.Payer),
	}, nil
}

func (r *balanceRepository) Add(ctx context.Context, balance domain.Balance) error {
	if err := querier(ctx, r.db).InsertBalance(ctx, toBalanceRow(balance)); err != nil {
		return fmt.Errorf("failed to add balance %s: %w", balance.Key(), err)
	}
	return nil
}

func (r *balanceRepository) Update(ctx context.Context, balance domain.Balance) error {
	count, err := querier(ctx, r.db).UpdateBalance(ctx, toBalanceRow(balance))
	if err != nil {
		return fmt.Errorf("failed to update balance %s: %w", balance.Key(), err)
	}
	if count == 0 {
		return fmt.Errorf("failed to update balance %s: not found", balance.Key())
	}
	return nil
}

func (r *balanceRepository) Delete(
	ctx context.Context, owner domain.Name, code domain.SymbolCode,
) error {
	if err := querier(ctx, r.db).DeleteBalance(ctx, owner.String(), code.String()); err != nil {
		return fmt.Errorf("failed to delete balance of %s: %w", owner, err)
	}
	return nil
}

func toBalanceRow(balance domain.Balance) queries.Balance {
	return queries.Balance{
		Owner:           balance.Owner.String(),
		Code:            balance.Balance.Symbol.Code.String(),
		SymbolPrecision: int64(balance.Balance.Symbol.Precision),
		Amount:          balance.Balance.Amount,
		Claimed:         balance.Claimed,
		Payer:           balance.Payer.String(),
	}
}
