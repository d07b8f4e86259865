package domain

import "context"

type UtxoRepository interface {
	Get(ctx context.Context, id uint64) (*UtxoNote, error)
	GetByPubKey(ctx context.Context, pubkey string) ([]UtxoNote, error)
	Add(ctx context.Context, note UtxoNote) error
	Delete(ctx context.Context, id uint64) error
	// NextId allocates the next note id, ids are never reused.
	NextId(ctx context.Context) (uint64, error)
}
