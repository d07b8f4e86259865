package sqlitedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/arkade-os/tokend/internal/core/domain"
	"github.com/arkade-os/tokend/internal/infrastructure/db/sqlite/queries"
)

type vestingRepository struct {
	db *sql.DB
}

func (r *vestingRepository) Get(
	ctx context.Context, account domain.Name,
) (*domain.VestingRecord, error) {
	row, err := querier(ctx, r.db).SelectVesting(ctx, account.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vesting record of %s: %w", account, err)
	}

	return &domain.VestingRecord{
		Account: domain.Name(row.Account),
		Issued:  toAsset(row.Issued, row.SymbolPrecision, row.Code),
	}, nil
}

func (r *vestingRepository) Upsert(ctx context.Context, record domain.VestingRecord) error {
	if err := querier(ctx, r.db).UpsertVesting(ctx, queries.Vesting{
		Account:         record.Account.String(),
		Code:            record.Issued.Symbol.Code.String(),
		SymbolPrecision: int64(record.Issued.Symbol.Precision),
		Issued:          record.Issued.Amount,
	}); err != nil {
		return fmt.Errorf("failed to upsert vesting record of %s: %w", record.Account, err)
	}
	return nil
}
