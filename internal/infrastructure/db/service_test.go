package db_test

import (
	"context"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/arkade-os/tokend/internal/core/domain"
	"github.com/arkade-os/tokend/internal/core/ports"
	"github.com/arkade-os/tokend/internal/infrastructure/db"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/stretchr/testify/require"
)

var peos = domain.NewSymbol(4, "PEOS")

func TestService(t *testing.T) {
	tests := []struct {
		name   string
		config db.ServiceConfig
	}{
		{
			name: "repo_manager_with_badger_stores",
			config: db.ServiceConfig{
				DataStoreType:   "badger",
				DataStoreConfig: []interface{}{"", nil},
			},
		},
		{
			name: "repo_manager_with_sqlite_stores",
			config: db.ServiceConfig{
				DataStoreType:   "sqlite",
				DataStoreConfig: []interface{}{t.TempDir()},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := db.NewService(tt.config)
			require.NoError(t, err)
			require.NotNil(t, svc)

			testBalanceRepository(t, svc)
			testStatsRepository(t, svc)
			testVestingRepository(t, svc)
			testUtxoRepository(t, svc)
			testStakeRepository(t, svc)
			testDividendRepository(t, svc)
			testRefundRepository(t, svc)
			testRunInTx(t, svc)

			svc.Close()
		})
	}

	t.Run("unknown_store_type", func(t *testing.T) {
		svc, err := db.NewService(db.ServiceConfig{DataStoreType: "postgres"})
		require.Error(t, err)
		require.Nil(t, svc)
	})
}

func testBalanceRepository(t *testing.T, svc ports.RepoManager) {
	t.Run("test_balance_repository", func(t *testing.T) {
		ctx := context.Background()
		repo := svc.Balances()

		balance, err := repo.Get(ctx, "alice", peos.Code)
		require.NoError(t, err)
		require.Nil(t, balance)

		newBalance := domain.Balance{
			Owner:   "alice",
			Balance: domain.NewAsset(1000, peos),
			Claimed: false,
			Payer:   "issuer",
		}
		require.NoError(t, repo.Add(ctx, newBalance))
		require.Error(t, repo.Add(ctx, newBalance))

		balance, err = repo.Get(ctx, "alice", peos.Code)
		require.NoError(t, err)
		require.NotNil(t, balance)
		require.Equal(t, newBalance, *balance)

		newBalance.Balance.Amount = 0
		newBalance.Claimed = true
		newBalance.Payer = "alice"
		require.NoError(t, repo.Update(ctx, newBalance))

		balance, err = repo.Get(ctx, "alice", peos.Code)
		require.NoError(t, err)
		require.Equal(t, newBalance, *balance)

		other, err := repo.Get(ctx, "bob", peos.Code)
		require.NoError(t, err)
		require.Nil(t, other)

		require.NoError(t, repo.Delete(ctx, "alice", peos.Code))
		balance, err = repo.Get(ctx, "alice", peos.Code)
		require.NoError(t, err)
		require.Nil(t, balance)

		require.NoError(t, repo.Delete(ctx, "alice", peos.Code))
	})
}

func testStatsRepository(t *testing.T, svc ports.RepoManager) {
	t.Run("test_stats_repository", func(t *testing.T) {
		ctx := context.Background()
		repo := svc.Stats()

		stats, err := repo.Get(ctx, peos.Code)
		require.NoError(t, err)
		require.Nil(t, stats)

		newStats := domain.NewCurrencyStats("issuer", domain.NewAsset(10000000, peos))
		require.NoError(t, repo.Add(ctx, newStats))
		require.Error(t, repo.Add(ctx, newStats))

		stats, err = repo.Get(ctx, peos.Code)
		require.NoError(t, err)
		require.NotNil(t, stats)
		require.Equal(t, newStats, *stats)

		newStats.Supply.Amount = 1000
		newStats.Issuer = "newissuer"
		require.NoError(t, repo.Update(ctx, newStats))

		stats, err = repo.Get(ctx, peos.Code)
		require.NoError(t, err)
		require.Equal(t, newStats, *stats)
		require.Equal(t, int64(9999000), stats.Available())
	})
}

func testVestingRepository(t *testing.T, svc ports.RepoManager) {
	t.Run("test_vesting_repository", func(t *testing.T) {
		ctx := context.Background()
		repo := svc.Vesting()

		record, err := repo.Get(ctx, "peosteamfund")
		require.NoError(t, err)
		require.Nil(t, record)

		newRecord := domain.VestingRecord{
			Account: "peosteamfund",
			Issued:  domain.NewAsset(100, peos),
		}
		require.NoError(t, repo.Upsert(ctx, newRecord))

		newRecord.Issued.Amount = 250
		require.NoError(t, repo.Upsert(ctx, newRecord))

		record, err = repo.Get(ctx, "peosteamfund")
		require.NoError(t, err)
		require.NotNil(t, record)
		require.Equal(t, newRecord, *record)
	})
}

func testUtxoRepository(t *testing.T, svc ports.RepoManager) {
	t.Run("test_utxo_repository", func(t *testing.T) {
		ctx := context.Background()
		repo := svc.Utxos()

		pubkey, otherPubkey := randomPubKey(t), randomPubKey(t)

		ids := make([]uint64, 0, 3)
		for range 3 {
			id, err := repo.NextId(ctx)
			require.NoError(t, err)
			ids = append(ids, id)
		}
		require.Equal(t, []uint64{1, 2, 3}, ids)

		notes := []domain.UtxoNote{
			{Id: ids[0], PubKey: pubkey, Amount: domain.NewAsset(10, peos), Payer: "alice"},
			{Id: ids[1], PubKey: otherPubkey, Amount: domain.NewAsset(20, peos), Payer: "alice"},
			{Id: ids[2], PubKey: pubkey, Amount: domain.NewAsset(30, peos), Payer: "bob"},
		}
		for _, note := range notes {
			require.NoError(t, repo.Add(ctx, note))
		}

		note, err := repo.Get(ctx, ids[1])
		require.NoError(t, err)
		require.NotNil(t, note)
		require.Equal(t, notes[1], *note)

		byKey, err := repo.GetByPubKey(ctx, pubkey)
		require.NoError(t, err)
		require.Equal(t, []domain.UtxoNote{notes[0], notes[2]}, byKey)

		require.NoError(t, repo.Delete(ctx, ids[0]))

		note, err = repo.Get(ctx, ids[0])
		require.NoError(t, err)
		require.Nil(t, note)

		byKey, err = repo.GetByPubKey(ctx, pubkey)
		require.NoError(t, err)
		require.Equal(t, []domain.UtxoNote{notes[2]}, byKey)

		byKey, err = repo.GetByPubKey(ctx, randomPubKey(t))
		require.NoError(t, err)
		require.Empty(t, byKey)

		// Ids of spent notes are never reused.
		id, err := repo.NextId(ctx)
		require.NoError(t, err)
		require.Equal(t, uint64(4), id)
	})
}

func testStakeRepository(t *testing.T, svc ports.RepoManager) {
	t.Run("test_stake_repository", func(t *testing.T) {
		ctx := context.Background()
		repo := svc.Stakes()

		position, err := repo.Get(ctx, "alice", peos.Code)
		require.NoError(t, err)
		require.Nil(t, position)

		fraction, err := domain.InitialDividendFraction.Add(10, 3)
		require.NoError(t, err)

		newPosition := domain.StakePosition{
			Owner:                "alice",
			Staked:               domain.NewAsset(100, peos),
			LastDividendFraction: domain.InitialDividendFraction,
		}
		require.NoError(t, repo.Upsert(ctx, newPosition))

		newPosition.Staked.Amount = 50
		newPosition.LastDividendFraction = fraction
		require.NoError(t, repo.Upsert(ctx, newPosition))

		position, err = repo.Get(ctx, "alice", peos.Code)
		require.NoError(t, err)
		require.NotNil(t, position)
		require.Equal(t, newPosition, *position)

		require.NoError(t, repo.Delete(ctx, "alice", peos.Code))
		position, err = repo.Get(ctx, "alice", peos.Code)
		require.NoError(t, err)
		require.Nil(t, position)
	})
}

func testDividendRepository(t *testing.T, svc ports.RepoManager) {
	t.Run("test_dividend_repository", func(t *testing.T) {
		ctx := context.Background()
		repo := svc.Dividends()

		pool, err := repo.Get(ctx, peos.Code)
		require.NoError(t, err)
		require.Nil(t, pool)

		newPool := domain.NewDividendPool(peos)
		require.NoError(t, repo.Upsert(ctx, newPool))

		pool, err = repo.Get(ctx, peos.Code)
		require.NoError(t, err)
		require.NotNil(t, pool)
		require.Equal(t, newPool, *pool)

		fraction, err := newPool.Fraction.Add(7, 3)
		require.NoError(t, err)
		newPool.TotalStaked.Amount = 3
		newPool.TotalDividends.Amount = 7
		newPool.TotalUnclaimedDividends.Amount = 7
		newPool.Fraction = fraction
		require.NoError(t, repo.Upsert(ctx, newPool))

		pool, err = repo.Get(ctx, peos.Code)
		require.NoError(t, err)
		require.Equal(t, newPool, *pool)
	})
}

func testRefundRepository(t *testing.T, svc ports.RepoManager) {
	t.Run("test_refund_repository", func(t *testing.T) {
		ctx := context.Background()
		repo := svc.Refunds()

		request, err := repo.Get(ctx, "alice")
		require.NoError(t, err)
		require.Nil(t, request)

		newRequest := domain.RefundRequest{
			Owner:       "alice",
			RequestTime: 1700000000,
			Amount:      domain.NewAsset(100, peos),
		}
		require.NoError(t, repo.Upsert(ctx, newRequest))

		newRequest.RequestTime += 60
		newRequest.Amount.Amount += 50
		require.NoError(t, repo.Upsert(ctx, newRequest))

		request, err = repo.Get(ctx, "alice")
		require.NoError(t, err)
		require.NotNil(t, request)
		require.Equal(t, newRequest, *request)

		require.NoError(t, repo.Delete(ctx, "alice"))
		request, err = repo.Get(ctx, "alice")
		require.NoError(t, err)
		require.Nil(t, request)
	})
}

func testRunInTx(t *testing.T, svc ports.RepoManager) {
	t.Run("test_run_in_tx", func(t *testing.T) {
		ctx := context.Background()
		sym := domain.NewSymbol(2, "TXTEST")

		t.Run("commit", func(t *testing.T) {
			err := svc.RunInTx(ctx, func(ctx context.Context) error {
				if err := svc.Balances().Add(ctx, domain.Balance{
					Owner: "carol", Balance: domain.NewAsset(5, sym), Claimed: true, Payer: "carol",
				}); err != nil {
					return err
				}

				// Writes are visible within the same transaction.
				balance, err := svc.Balances().Get(ctx, "carol", sym.Code)
				if err != nil {
					return err
				}
				if balance == nil {
					return fmt.Errorf("balance not found")
				}

				return svc.RunInTx(ctx, func(ctx context.Context) error {
					return svc.Refunds().Upsert(ctx, domain.RefundRequest{
						Owner: "carol", RequestTime: 1, Amount: domain.NewAsset(5, sym),
					})
				})
			})
			require.NoError(t, err)

			balance, err := svc.Balances().Get(ctx, "carol", sym.Code)
			require.NoError(t, err)
			require.NotNil(t, balance)

			request, err := svc.Refunds().Get(ctx, "carol")
			require.NoError(t, err)
			require.NotNil(t, request)
		})

		t.Run("rollback", func(t *testing.T) {
			err := svc.RunInTx(ctx, func(ctx context.Context) error {
				if err := svc.Balances().Add(ctx, domain.Balance{
					Owner: "dave", Balance: domain.NewAsset(5, sym), Claimed: true, Payer: "dave",
				}); err != nil {
					return err
				}
				if _, err := svc.Utxos().NextId(ctx); err != nil {
					return err
				}
				if err := svc.Refunds().Delete(ctx, "carol"); err != nil {
					return err
				}
				return fmt.Errorf("abort")
			})
			require.EqualError(t, err, "abort")

			balance, err := svc.Balances().Get(ctx, "dave", sym.Code)
			require.NoError(t, err)
			require.Nil(t, balance)

			request, err := svc.Refunds().Get(ctx, "carol")
			require.NoError(t, err)
			require.NotNil(t, request)

			id, err := svc.Utxos().NextId(ctx)
			require.NoError(t, err)
			require.Equal(t, uint64(5), id)
		})
	})
}

func randomPubKey(t *testing.T) string {
	key, err := btcec.NewPrivateKey()
	require.NoError(t, err)
	return hex.EncodeToString(schnorr.SerializePubKey(key.PubKey()))
}
