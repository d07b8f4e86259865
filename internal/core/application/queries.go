package application

import (
	"context"

	"github.com/arkade-os/tokend/internal/core/domain"
	"github.com/arkade-os/tokend/pkg/errors"
)

func (s *service) GetBalance(
	ctx context.Context, owner domain.Name, code domain.SymbolCode,
) (*domain.Balance, errors.Error) {
	balance, err := s.repoManager.Balances().Get(ctx, owner, code)
	if err != nil {
		return nil, errors.INTERNAL_ERROR.Wrap(err)
	}
	if balance == nil {
		return nil, errors.RECORD_NOT_FOUND.New("no balance object found").
			WithMetadata(errors.RecordMetadata{
				Table: "accounts", Key: domain.OwnerKey(owner, code),
			})
	}
	return balance, nil
}

func (s *service) GetStats(
	ctx context.Context, code domain.SymbolCode,
) (*domain.CurrencyStats, errors.Error) {
	return s.getStats(ctx, code)
}

func (s *service) GetVesting(ctx context.Context, account domain.Name) (*VestingInfo, errors.Error) {
	policy, ok := s.vesting[account]
	if !ok {
		return nil, errors.RECORD_NOT_FOUND.New("no vesting policy for %s", account).
			WithMetadata(errors.RecordMetadata{Table: "vesting", Key: account.String()})
	}

	record, err := s.repoManager.Vesting().Get(ctx, account)
	if err != nil {
		return nil, errors.INTERNAL_ERROR.Wrap(err)
	}
	issued := int64(0)
	if record != nil {
		issued = record.Issued.Amount
	}
	return &VestingInfo{
		Policy:  policy,
		Issued:  issued,
		Ceiling: policy.Ceiling(s.clock.Now().Unix()),
	}, nil
}

func (s *service) GetNote(ctx context.Context, id uint64) (*domain.UtxoNote, errors.Error) {
	note, err := s.repoManager.Utxos().Get(ctx, id)
	if err != nil {
		return nil, errors.INTERNAL_ERROR.Wrap(err)
	}
	if note == nil {
		return nil, errors.UNKNOWN_NOTE.New("unknown utxo %d", id).
			WithMetadata(errors.NoteMetadata{NoteId: id})
	}
	return note, nil
}

func (s *service) GetNotesByPubKey(
	ctx context.Context, pubkey string,
) ([]domain.UtxoNote, errors.Error) {
	key, err := normalizePubKey(pubkey)
	if err != nil {
		return nil, err
	}
	notes, storeErr := s.repoManager.Utxos().GetByPubKey(ctx, key)
	if storeErr != nil {
		return nil, errors.INTERNAL_ERROR.Wrap(storeErr)
	}
	return notes, nil
}

func (s *service) GetStake(
	ctx context.Context, owner domain.Name,
) (*domain.StakePosition, errors.Error) {
	position, err := s.repoManager.Stakes().Get(ctx, owner, s.nativeSymbol.Code)
	if err != nil {
		return nil, errors.INTERNAL_ERROR.Wrap(err)
	}
	if position == nil {
		return nil, errors.RECORD_NOT_FOUND.New("no stake found").
			WithMetadata(errors.RecordMetadata{
				Table: "stakes", Key: domain.OwnerKey(owner, s.nativeSymbol.Code),
			})
	}
	return position, nil
}

func (s *service) GetDividendPool(ctx context.Context) (*domain.DividendPool, errors.Error) {
	pool, err := s.repoManager.Dividends().Get(ctx, s.nativeSymbol.Code)
	if err != nil {
		return nil, errors.INTERNAL_ERROR.Wrap(err)
	}
	if pool == nil {
		return nil, errors.RECORD_NOT_FOUND.New("dividend pool not initialized").
			WithMetadata(errors.RecordMetadata{
				Table: "dividends", Key: s.nativeSymbol.Code.String(),
			})
	}
	return pool, nil
}

func (s *service) GetRefund(ctx context.Context, owner domain.Name) (*RefundInfo, errors.Error) {
	request, err := s.repoManager.Refunds().Get(ctx, owner)
	if err != nil {
		return nil, errors.INTERNAL_ERROR.Wrap(err)
	}
	if request == nil {
		return nil, errors.REFUND_NOT_FOUND.New("refund request not found").
			WithMetadata(errors.AccountMetadata{Account: owner.String()})
	}
	return &RefundInfo{
		RefundRequest: *request,
		AvailableAt:   request.AvailableAt(s.refundDelay),
	}, nil
}
