package sqlitedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/arkade-os/tokend/internal/core/domain"
	"github.com/arkade-os/tokend/internal/infrastructure/db/sqlite/queries"
)

type utxoRepository struct {
	db *sql.DB
}

func (r *utxoRepository) Get(ctx context.Context, id uint64) (*domain.UtxoNote, error) {
	row, err := querier(ctx, r.db).SelectUtxo(ctx, int64(id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get note %d: %w", id, err)
	}
	note := toUtxoNote(row)
	return &note, nil
}

func (r *utxoRepository) GetByPubKey(
	ctx context.Context, pubkey string,
) ([]domain.UtxoNote, error) {
	hash, err := domain.PubKeyHash(pubkey)
	if err != nil {
		return nil, err
	}

	rows, err := querier(ctx, r.db).SelectUtxosByPubkeyHash(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("failed to find notes by pubkey: %w", err)
	}

	notes := make([]domain.UtxoNote, 0, len(rows))
	for _, row := range rows {
		notes = append(notes, toUtxoNote(row))
	}
	return notes, nil
}

func (r *utxoRepository) Add(ctx context.Context, note domain.UtxoNote) error {
	hash, err := note.PubKeyHash()
	if err != nil {
		return err
	}
	if err := querier(ctx, r.db).InsertUtxo(ctx, queries.Utxo{
		ID:              int64(note.Id),
		Pubkey:          note.PubKey,
		PubkeyHash:      hash,
		Code:            note.Amount.Symbol.Code.String(),
		SymbolPrecision: int64(note.Amount.Symbol.Precision),
		Amount:          note.Amount.Amount,
		Payer:           note.Payer.String(),
	}); err != nil {
		return fmt.Errorf("failed to add note %d: %w", note.Id, err)
	}
	return nil
}

func (r *utxoRepository) Delete(ctx context.Context, id uint64) error {
	if err := querier(ctx, r.db).DeleteUtxo(ctx, int64(id)); err != nil {
		return fmt.Errorf("failed to delete note %d: %w", id, err)
	}
	return nil
}

func (r *utxoRepository) NextId(ctx context.Context) (uint64, error) {
	q := querier(ctx, r.db)

	nextId, err := q.SelectNextUtxoId(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		nextId, err = 1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get next note id: %w", err)
	}

	if err := q.UpsertNextUtxoId(ctx, nextId+1); err != nil {
		return 0, fmt.Errorf("failed to bump next note id: %w", err)
	}
	return uint64(nextId), nil
}

func toUtxoNote(row queries.Utxo) domain.UtxoNote {
	return domain.UtxoNote{
		Id:     uint64(row.ID),
		PubKey: row.Pubkey,
		Amount: toAsset(row.Amount, row.SymbolPrecision, row.Code),
		Payer:  domain.Name(row.Payer),
	}
}
