package badgerdb

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/arkade-os/tokend/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

const utxoGlobalsKey = "utxo_globals"

type utxoRepository struct {
	store *badgerhold.Store
}

type utxoDTO struct {
	domain.UtxoNote
	PubKeyHash string `badgerhold:"index"`
}

type utxoGlobalsDTO struct {
	NextId uint64
}

func (r *utxoRepository) Get(ctx context.Context, id uint64) (*domain.UtxoNote, error) {
	var dto utxoDTO
	found, err := get(ctx, r.store, noteKey(id), &dto)
	if err != nil {
		return nil, fmt.Errorf("failed to get note %d: %w", id, err)
	}
	if !found {
		return nil, nil
	}
	return &dto.UtxoNote, nil
}

func (r *utxoRepository) GetByPubKey(
	ctx context.Context, pubkey string,
) ([]domain.UtxoNote, error) {
	hash, err := domain.PubKeyHash(pubkey)
	if err != nil {
		return nil, err
	}

	query := badgerhold.Where("PubKeyHash").Eq(hash).Index("PubKeyHash")
	var dtos []utxoDTO
	if err := find(ctx, r.store, &dtos, query); err != nil {
		return nil, fmt.Errorf("failed to find notes by pubkey: %w", err)
	}

	notes := make([]domain.UtxoNote, 0, len(dtos))
	for _, dto := range dtos {
		notes = append(notes, dto.UtxoNote)
	}
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].Id < notes[j].Id
	})
	return notes, nil
}

func (r *utxoRepository) Add(ctx context.Context, note domain.UtxoNote) error {
	hash, err := note.PubKeyHash()
	if err != nil {
		return err
	}
	dto := utxoDTO{UtxoNote: note, PubKeyHash: hash}
	if err := insert(ctx, r.store, noteKey(note.Id), dto); err != nil {
		return fmt.Errorf("failed to add note %d: %w", note.Id, err)
	}
	return nil
}

func (r *utxoRepository) Delete(ctx context.Context, id uint64) error {
	if err := remove(ctx, r.store, noteKey(id), utxoDTO{}); err != nil {
		return fmt.Errorf("failed to delete note %d: %w", id, err)
	}
	return nil
}

func (r *utxoRepository) NextId(ctx context.Context) (uint64, error) {
	globals := utxoGlobalsDTO{NextId: 1}
	if _, err := get(ctx, r.store, utxoGlobalsKey, &globals); err != nil {
		return 0, fmt.Errorf("failed to get next note id: %w", err)
	}

	id := globals.NextId
	globals.NextId++
	if err := upsert(ctx, r.store, utxoGlobalsKey, globals); err != nil {
		return 0, fmt.Errorf("failed to bump next note id: %w", err)
	}
	return id, nil
}

func noteKey(id uint64) string {
	return strconv.FormatUint(id, 10)
}
