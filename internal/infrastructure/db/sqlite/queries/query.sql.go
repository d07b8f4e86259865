package queries

import (
	"context"
)

const selectBalance = `SELECT owner, code, symbol_precision, amount, claimed, payer
FROM balance WHERE owner = ?1 AND code = ?2`

func (q *Queries) SelectBalance(ctx context.Context, owner, code string) (Balance, error) {
	row := q.db.QueryRowContext(ctx, selectBalance, owner, code)
	var i Balance
	err := row.Scan(&i.Owner, &i.Code, &i.SymbolPrecision, &i.Amount, &i.Claimed, &i.Payer)
	return i, err
}

const insertBalance = `INSERT INTO balance (owner, code, symbol_precision, amount, claimed, payer)
VALUES (?1, ?2, ?3, ?4, ?5, ?6)`

func (q *Queries) InsertBalance(ctx context.Context, arg Balance) error {
	_, err := q.db.ExecContext(ctx, insertBalance,
		arg.Owner, arg.Code, arg.SymbolPrecision, arg.Amount, arg.Claimed, arg.Payer,
	)
	return err
}

const updateBalance = `UPDATE balance SET symbol_precision = ?3, amount = ?4, claimed = ?5, payer = ?6
WHERE owner = ?1 AND code = ?2`

func (q *Queries) UpdateBalance(ctx context.Context, arg Balance) (int64, error) {
	res, err := q.db.ExecContext(ctx, updateBalance,
		arg.Owner, arg.Code, arg.SymbolPrecision, arg.Amount, arg.Claimed, arg.Payer,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const deleteBalance = `DELETE FROM balance WHERE owner = ?1 AND code = ?2`

func (q *Queries) DeleteBalance(ctx context.Context, owner, code string) error {
	_, err := q.db.ExecContext(ctx, deleteBalance, owner, code)
	return err
}

const selectCurrencyStats = `SELECT code, symbol_precision, supply, max_supply, issuer
FROM currency_stats WHERE code = ?1`

func (q *Queries) SelectCurrencyStats(ctx context.Context, code string) (CurrencyStat, error) {
	row := q.db.QueryRowContext(ctx, selectCurrencyStats, code)
	var i CurrencyStat
	err := row.Scan(&i.Code, &i.SymbolPrecision, &i.Supply, &i.MaxSupply, &i.Issuer)
	return i, err
}

const insertCurrencyStats = `INSERT INTO currency_stats (code, symbol_precision, supply, max_supply, issuer)
VALUES (?1, ?2, ?3, ?4, ?5)`

func (q *Queries) InsertCurrencyStats(ctx context.Context, arg CurrencyStat) error {
	_, err := q.db.ExecContext(ctx, insertCurrencyStats,
		arg.Code, arg.SymbolPrecision, arg.Supply, arg.MaxSupply, arg.Issuer,
	)
	return err
}

const updateCurrencyStats = `UPDATE currency_stats
SET symbol_precision = ?2, supply = ?3, max_supply = ?4, issuer = ?5
WHERE code = ?1`

func (q *Queries) UpdateCurrencyStats(ctx context.Context, arg CurrencyStat) (int64, error) {
	res, err := q.db.ExecContext(ctx, updateCurrencyStats,
		arg.Code, arg.SymbolPrecision, arg.Supply, arg.MaxSupply, arg.Issuer,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const selectVesting = `SELECT account, code, symbol_precision, issued FROM vesting WHERE account = ?1`

func (q *Queries) SelectVesting(ctx context.Context, account string) (Vesting, error) {
	row := q.db.QueryRowContext(ctx, selectVesting, account)
	var i Vesting
	err := row.Scan(&i.Account, &i.Code, &i.SymbolPrecision, &i.Issued)
	return i, err
}

const upsertVesting = `INSERT INTO vesting (account, code, symbol_precision, issued)
VALUES (?1, ?2, ?3, ?4)
ON CONFLICT(account) DO UPDATE SET
    code = EXCLUDED.code,
    symbol_precision = EXCLUDED.symbol_precision,
    issued = EXCLUDED.issued`

func (q *Queries) UpsertVesting(ctx context.Context, arg Vesting) error {
	_, err := q.db.ExecContext(ctx, upsertVesting,
		arg.Account, arg.Code, arg.SymbolPrecision, arg.Issued,
	)
	return err
}

const selectUtxo = `SELECT id, pubkey, pubkey_hash, code, symbol_precision, amount, payer
FROM utxo WHERE id = ?1`

func (q *Queries) SelectUtxo(ctx context.Context, id int64) (Utxo, error) {
	row := q.db.QueryRowContext(ctx, selectUtxo, id)
	var i Utxo
	err := row.Scan(
		&i.ID, &i.Pubkey, &i.PubkeyHash, &i.Code, &i.SymbolPrecision, &i.Amount, &i.Payer,
	)
	return i, err
}

const selectUtxosByPubkeyHash = `SELECT id, pubkey, pubkey_hash, code, symbol_precision, amount, payer
FROM utxo WHERE pubkey_hash = ?1 ORDER BY id`

func (q *Queries) SelectUtxosByPubkeyHash(ctx context.Context, pubkeyHash string) ([]Utxo, error) {
	rows, err := q.db.QueryContext(ctx, selectUtxosByPubkeyHash, pubkeyHash)
	if err != nil {
		return nil, err
	}
	// nolint
	defer rows.Close()

	var items []Utxo
	for rows.Next() {
		var i Utxo
		if err := rows.Scan(
			&i.ID, &i.Pubkey, &i.PubkeyHash, &i.Code, &i.SymbolPrecision, &i.Amount, &i.Payer,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const insertUtxo = `INSERT INTO utxo (id, pubkey, pubkey_hash, code, symbol_precision, amount, payer)
VALUES (?1, ?2, ?3, ?4, ?5, ?6, ?7)`

func (q *Queries) InsertUtxo(ctx context.Context, arg Utxo) error {
	_, err := q.db.ExecContext(ctx, insertUtxo,
		arg.ID, arg.Pubkey, arg.PubkeyHash, arg.Code, arg.SymbolPrecision, arg.Amount, arg.Payer,
	)
	return err
}

const deleteUtxo = `DELETE FROM utxo WHERE id = ?1`

func (q *Queries) DeleteUtxo(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteUtxo, id)
	return err
}

const selectNextUtxoId = `SELECT next_id FROM utxo_globals WHERE id = 0`

func (q *Queries) SelectNextUtxoId(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, selectNextUtxoId)
	var nextId int64
	err := row.Scan(&nextId)
	return nextId, err
}

const upsertNextUtxoId = `INSERT INTO utxo_globals (id, next_id) VALUES (0, ?1)
ON CONFLICT(id) DO UPDATE SET next_id = EXCLUDED.next_id`

func (q *Queries) UpsertNextUtxoId(ctx context.Context, nextId int64) error {
	_, err := q.db.ExecContext(ctx, upsertNextUtxoId, nextId)
	return err
}

const selectStake = `SELECT owner, code, symbol_precision, staked, last_dividend_fraction
FROM stake WHERE owner = ?1 AND code = ?2`

func (q *Queries) SelectStake(ctx context.Context, owner, code string) (Stake, error) {
	row := q.db.QueryRowContext(ctx, selectStake, owner, code)
	var i Stake
	err := row.Scan(&i.Owner, &i.Code, &i.SymbolPrecision, &i.Staked, &i.LastDividendFraction)
	return i, err
}

const upsertStake = `INSERT INTO stake (owner, code, symbol_precision, staked, last_dividend_fraction)
VALUES (?1, ?2, ?3, ?4, ?5)
ON CONFLICT(owner, code) DO UPDATE SET
    symbol_precision = EXCLUDED.symbol_precision,
    staked = EXCLUDED.staked,
    last_dividend_fraction = EXCLUDED.last_dividend_fraction`

func (q *Queries) UpsertStake(ctx context.Context, arg Stake) error {
	_, err := q.db.ExecContext(ctx, upsertStake,
		arg.Owner, arg.Code, arg.SymbolPrecision, arg.Staked, arg.LastDividendFraction,
	)
	return err
}

const deleteStake = `DELETE FROM stake WHERE owner = ?1 AND code = ?2`

func (q *Queries) DeleteStake(ctx context.Context, owner, code string) error {
	_, err := q.db.ExecContext(ctx, deleteStake, owner, code)
	return err
}

const selectDividendPool = `SELECT code, symbol_precision, total_staked, total_dividends,
    total_unclaimed_dividends, dividend_fraction
FROM dividend_pool WHERE code = ?1`

func (q *Queries) SelectDividendPool(ctx context.Context, code string) (DividendPool, error) {
	row := q.db.QueryRowContext(ctx, selectDividendPool, code)
	var i DividendPool
	err := row.Scan(
		&i.Code, &i.SymbolPrecision, &i.TotalStaked, &i.TotalDividends,
		&i.TotalUnclaimedDividends, &i.DividendFraction,
	)
	return i, err
}

const upsertDividendPool = `INSERT INTO dividend_pool (
    code, symbol_precision, total_staked, total_dividends,
    total_unclaimed_dividends, dividend_fraction
) VALUES (?1, ?2, ?3, ?4, ?5, ?6)
ON CONFLICT(code) DO UPDATE SET
    symbol_precision = EXCLUDED.symbol_precision,
    total_staked = EXCLUDED.total_staked,
    total_dividends = EXCLUDED.total_dividends,
    total_unclaimed_dividends = EXCLUDED.total_unclaimed_dividends,
    dividend_fraction = EXCLUDED.dividend_fraction`

func (q *Queries) UpsertDividendPool(ctx context.Context, arg DividendPool) error {
	_, err := q.db.ExecContext(ctx, upsertDividendPool,
		arg.Code, arg.SymbolPrecision, arg.TotalStaked, arg.TotalDividends,
		arg.TotalUnclaimedDividends, arg.DividendFraction,
	)
	return err
}

const selectRefundRequest = `SELECT owner, request_time, code, symbol_precision, amount
FROM refund_request WHERE owner = ?1`

func (q *Queries) SelectRefundRequest(ctx context.Context, owner string) (RefundRequest, error) {
	row := q.db.QueryRowContext(ctx, selectRefundRequest, owner)
	var i RefundRequest
	err := row.Scan(&i.Owner, &i.RequestTime, &i.Code, &i.SymbolPrecision, &i.Amount)
	return i, err
}

const upsertRefundRequest = `INSERT INTO refund_request (owner, request_time, code, symbol_precision, amount)
VALUES (?1, ?2, ?3, ?4, ?5)
ON CONFLICT(owner) DO UPDATE SET
    request_time = EXCLUDED.request_time,
    code = EXCLUDED.code,
    symbol_precision = EXCLUDED.symbol_precision,
    amount = EXCLUDED.amount`

func (q *Queries) UpsertRefundRequest(ctx context.Context, arg RefundRequest) error {
	_, err := q.db.ExecContext(ctx, upsertRefundRequest,
		arg.Owner, arg.RequestTime, arg.Code, arg.SymbolPrecision, arg.Amount,
	)
	return err
}

const deleteRefundRequest = `DELETE FROM refund_request WHERE owner = ?1`

func (q *Queries) DeleteRefundRequest(ctx context.Context, owner string) error {
	_, err := q.db.ExecContext(ctx, deleteRefundRequest, owner)
	return err
}
