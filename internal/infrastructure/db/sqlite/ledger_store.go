package sqlitedb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/arkade-os/tokend/internal/core/domain"
	"github.com/arkade-os/tokend/internal/core/ports"
)

type ledgerStore struct {
	db *sql.DB

	balances  *balanceRepository
	stats     *statsRepository
	vesting   *vestingRepository
	utxos     *utxoRepository
	stakes    *stakeRepository
	dividends *dividendRepository
	refunds   *refundRepository
}

func NewLedgerStore(config ...interface{}) (ports.RepoManager, error) {
	if len(config) != 1 {
		return nil, fmt.Errorf("invalid config: expected 1 argument, got %d", len(config))
	}
	db, ok := config[0].(*sql.DB)
	if !ok {
		return nil, fmt.Errorf(
			"cannot open ledger store: expected *sql.DB but got %T", config[0],
		)
	}

	return &ledgerStore{
		db:        db,
		balances:  &balanceRepository{db},
		stats:     &statsRepository{db},
		vesting:   &vestingRepository{db},
		utxos:     &utxoRepository{db},
		stakes:    &stakeRepository{db},
		dividends: &dividendRepository{db},
		refunds:   &refundRepository{db},
	}, nil
}

func (s *ledgerStore) Balances() domain.BalanceRepository {
	return s.balances
}

func (s *ledgerStore) Stats() domain.StatsRepository {
	return s.stats
}

func (s *ledgerStore) Vesting() domain.VestingRepository {
	return s.vesting
}

func (s *ledgerStore) Utxos() domain.UtxoRepository {
	return s.utxos
}

func (s *ledgerStore) Stakes() domain.StakeRepository {
	return s.stakes
}

func (s *ledgerStore) Dividends() domain.DividendRepository {
	return s.dividends
}

func (s *ledgerStore) Refunds() domain.RefundRepository {
	return s.refunds
}

func (s *ledgerStore) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	// Nested calls join the ongoing transaction.
	if getTx(ctx) != nil {
		return fn(ctx)
	}

	var lastErr error
	for range maxRetries {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}

		if err := fn(withTx(ctx, tx)); err != nil {
			//nolint:all
			tx.Rollback()

			if isConflictError(err) {
				lastErr = err
				time.Sleep(100 * time.Millisecond)
				continue
			}
			return err
		}

		if err := tx.Commit(); err != nil {
			if isConflictError(err) {
				lastErr = err
				time.Sleep(100 * time.Millisecond)
				continue
			}
			return fmt.Errorf("failed to commit transaction: %w", err)
		}
		return nil
	}

	return lastErr
}

func (s *ledgerStore) Close() {
	// nolint:all
	s.db.Close()
}
