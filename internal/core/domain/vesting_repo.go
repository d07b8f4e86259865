package domain

import "context"

type VestingRepository interface {
	Get(ctx context.Context, account Name) (*VestingRecord, error)
	Upsert(ctx context.Context, record VestingRecord) error
}
