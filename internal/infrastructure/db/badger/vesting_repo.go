package badgerdb

import (
	"context"
	"fmt"

	"github.com/arkade-os/tokend/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type vestingRepository struct {
	store *badgerhold.Store
}

func (r *vestingRepository) Get(
	ctx context.Context, account domain.Name,
) (*domain.VestingRecord, error) {
	var record domain.VestingRecord
	found, err := get(ctx, r.store, account.String(), &record)
	if err != nil {
		return nil, fmt.Errorf("failed to get vesting record of %s: %w", account, err)
	}
	if !found {
		return nil, nil
	}
	return &record, nil
}

func (r *vestingRepository) Upsert(ctx context.Context, record domain.VestingRecord) error {
	if err := upsert(ctx, r.store, record.Account.String(), record); err != nil {
		return fmt.Errorf("failed to upsert vesting record of %s: %w", record.Account, err)
	}
	return nil
}
