package badgerdb

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/arkade-os/tokend/internal/core/domain"
	"github.com/arkade-os/tokend/internal/core/ports"
	"github.com/dgraph-io/badger/v4"
	"github.com/timshannon/badgerhold/v4"
)

const ledgerStoreDir = "ledger"

// ledgerStore keeps every ledger table in a single badgerhold store so that
// an operation touching several tables commits in one badger transaction.
type ledgerStore struct {
	store *badgerhold.Store

	balances  *balanceRepository
	stats     *statsRepository
	vesting   *vestingRepository
	utxos     *utxoRepository
	stakes    *stakeRepository
	dividends *dividendRepository
	refunds   *refundRepository
}

func NewLedgerStore(config ...interface{}) (ports.RepoManager, error) {
	if len(config) != 2 {
		return nil, fmt.Errorf("invalid config")
	}
	baseDir, ok := config[0].(string)
	if !ok {
		return nil, fmt.Errorf("invalid base directory")
	}
	var logger badger.Logger
	if config[1] != nil {
		logger, ok = config[1].(badger.Logger)
		if !ok {
			return nil, fmt.Errorf("invalid logger")
		}
	}

	var dir string
	if len(baseDir) > 0 {
		dir = filepath.Join(baseDir, ledgerStoreDir)
	}
	store, err := createDB(dir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger store: %s", err)
	}

	return &ledgerStore{
		store:     store,
		balances:  &balanceRepository{store},
		stats:     &statsRepository{store},
		vesting:   &vestingRepository{store},
		utxos:     &utxoRepository{store},
		stakes:    &stakeRepository{store},
		dividends: &dividendRepository{store},
		refunds:   &refundRepository{store},
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

	return retry(func() error {
		return s.store.Badger().Update(func(tx *badger.Txn) error {
			return fn(withTx(ctx, tx))
		})
	})
}

func (s *ledgerStore) Close() {
	// nolint:all
	s.store.Close()
}
