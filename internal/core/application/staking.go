package application

import (
	"context"

	"github.com/arkade-os/tokend/internal/core/domain"
	"github.com/arkade-os/tokend/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	stakeMemo      = "stake"
	refundMemo     = "refund"
	dividendsMemo  = "dividends"
	distributeMemo = "distribute"
)

func (s *service) Stake(ctx context.Context, owner domain.Name, quantity domain.Asset) errors.Error {
	return s.run(ctx, "stake", func(ctx context.Context, op *operation) errors.Error {
		if err := s.requireAuth(ctx, owner); err != nil {
			return err
		}
		if err := validateQuantity(quantity, s.nativeSymbol); err != nil {
			return err
		}

		if err := s.realize(ctx, op, owner); err != nil {
			return err
		}

		pool, err := s.getPool(ctx)
		if err != nil {
			return err
		}
		position, storeErr := s.repoManager.Stakes().Get(ctx, owner, s.nativeSymbol.Code)
		if storeErr != nil {
			return errors.INTERNAL_ERROR.Wrap(storeErr)
		}
		if position == nil {
			position = &domain.StakePosition{
				Owner:                owner,
				Staked:               domain.NewAsset(0, s.nativeSymbol),
				LastDividendFraction: pool.Fraction,
			}
		}
		if !position.LastDividendFraction.Equal(pool.Fraction) {
			return errors.DIVIDENDS_NOT_REALIZED.New("dividends not realized").
				WithMetadata(errors.DividendsMetadata{
					Owner:            owner.String(),
					PositionFraction: position.LastDividendFraction.String(),
					PoolFraction:     pool.Fraction.String(),
				})
		}

		totalStaked, overflowErr := pool.TotalStaked.Add(quantity)
		if overflowErr != nil {
			return amountOverflow(overflowErr, quantity)
		}
		staked, overflowErr := position.Staked.Add(quantity)
		if overflowErr != nil {
			return amountOverflow(overflowErr, quantity)
		}
		pool.TotalStaked = totalStaked
		position.Staked = staked

		if storeErr := s.repoManager.Dividends().Upsert(ctx, *pool); storeErr != nil {
			return errors.INTERNAL_ERROR.Wrap(storeErr)
		}
		if storeErr := s.repoManager.Stakes().Upsert(ctx, *position); storeErr != nil {
			return errors.INTERNAL_ERROR.Wrap(storeErr)
		}

		if err := s.transfer(ctx, op, owner, s.contract, quantity, stakeMemo); err != nil {
			return err
		}

		op.notify(domain.EventTypeStaked, quantity, "", owner)
		return nil
	})
}

// Unstake withdraws up to quantity from the stake of owner into its refund
// request, restarting the refund delay.
func (s *service) Unstake(
	ctx context.Context, owner domain.Name, quantity domain.Asset,
) errors.Error {
	return s.run(ctx, "unstake", func(ctx context.Context, op *operation) errors.Error {
		if err := s.requireAuth(ctx, owner); err != nil {
			return err
		}
		if err := validateQuantity(quantity, s.nativeSymbol); err != nil {
			return err
		}

		if err := s.realize(ctx, op, owner); err != nil {
			return err
		}

		position, storeErr := s.repoManager.Stakes().Get(ctx, owner, s.nativeSymbol.Code)
		if storeErr != nil {
			return errors.INTERNAL_ERROR.Wrap(storeErr)
		}
		if position == nil {
			return errors.RECORD_NOT_FOUND.New("no stake found").
				WithMetadata(errors.RecordMetadata{
					Table: "stakes", Key: domain.OwnerKey(owner, s.nativeSymbol.Code),
				})
		}
		pool, err := s.getPool(ctx)
		if err != nil {
			return err
		}

		withdrawn := quantity
		if withdrawn.Amount >= position.Staked.Amount {
			withdrawn = position.Staked
			if storeErr := s.repoManager.Stakes().Delete(
				ctx, owner, s.nativeSymbol.Code,
			); storeErr != nil {
				return errors.INTERNAL_ERROR.Wrap(storeErr)
			}
		} else {
			position.Staked, _ = position.Staked.Sub(withdrawn)
			if storeErr := s.repoManager.Stakes().Upsert(ctx, *position); storeErr != nil {
				return errors.INTERNAL_ERROR.Wrap(storeErr)
			}
		}

		totalStaked, overflowErr := pool.TotalStaked.Sub(withdrawn)
		if overflowErr != nil || totalStaked.Amount < 0 {
			return errors.INTERNAL_ERROR.New("total staked underflow").
				WithMetadata(map[string]any{
					"total_staked": pool.TotalStaked.String(),
					"quantity":     withdrawn.String(),
				})
		}
		pool.TotalStaked = totalStaked
		if storeErr := s.repoManager.Dividends().Upsert(ctx, *pool); storeErr != nil {
			return errors.INTERNAL_ERROR.Wrap(storeErr)
		}

		request, storeErr := s.repoManager.Refunds().Get(ctx, owner)
		if storeErr != nil {
			return errors.INTERNAL_ERROR.Wrap(storeErr)
		}
		if request == nil {
			request = &domain.RefundRequest{
				Owner:  owner,
				Amount: domain.NewAsset(0, s.nativeSymbol),
			}
		}
		amount, overflowErr := request.Amount.Add(withdrawn)
		if overflowErr != nil {
			return amountOverflow(overflowErr, withdrawn)
		}
		request.Amount = amount
		request.RequestTime = op.now
		if storeErr := s.repoManager.Refunds().Upsert(ctx, *request); storeErr != nil {
			return errors.INTERNAL_ERROR.Wrap(storeErr)
		}

		op.notify(domain.EventTypeUnstaked, withdrawn, "", owner)
		return nil
	})
}

func (s *service) RealizeDividends(ctx context.Context, owner domain.Name) errors.Error {
	return s.run(ctx, "realizedividends", func(ctx context.Context, op *operation) errors.Error {
		if err := s.requireAuth(ctx, owner); err != nil {
			return err
		}
		return s.realize(ctx, op, owner)
	})
}

func (s *service) Refund(ctx context.Context, owner domain.Name) errors.Error {
	return s.run(ctx, "refund", func(ctx context.Context, op *operation) errors.Error {
		if err := s.requireAuth(ctx, owner); err != nil {
			return err
		}

		request, storeErr := s.repoManager.Refunds().Get(ctx, owner)
		if storeErr != nil {
			return errors.INTERNAL_ERROR.Wrap(storeErr)
		}
		if request == nil {
			return errors.REFUND_NOT_FOUND.New("refund request not found").
				WithMetadata(errors.AccountMetadata{Account: owner.String()})
		}
		availableAt := request.AvailableAt(s.refundDelay)
		if op.now < availableAt {
			return errors.REFUND_LOCKED.New("refund is not available yet").
				WithMetadata(errors.RefundLockedMetadata{
					Owner:       owner.String(),
					RequestTime: request.RequestTime,
					AvailableAt: availableAt,
					Now:         op.now,
				})
		}

		if err := s.transfer(ctx, op, s.contract, owner, request.Amount, refundMemo); err != nil {
			return err
		}
		if storeErr := s.repoManager.Refunds().Delete(ctx, owner); storeErr != nil {
			return errors.INTERNAL_ERROR.Wrap(storeErr)
		}

		op.notify(domain.EventTypeRefunded, request.Amount, "", owner)
		return nil
	})
}

// Distribute shares quantity among the current stakers. With nothing staked
// the amount only grows the unclaimed dividends.
func (s *service) Distribute(
	ctx context.Context, owner domain.Name, quantity domain.Asset,
) errors.Error {
	return s.run(ctx, "distribute", func(ctx context.Context, op *operation) errors.Error {
		if err := s.requireAuth(ctx, owner); err != nil {
			return err
		}
		if err := validateQuantity(quantity, s.nativeSymbol); err != nil {
			return err
		}

		if err := s.transfer(ctx, op, owner, s.contract, quantity, distributeMemo); err != nil {
			return err
		}

		pool, err := s.getPool(ctx)
		if err != nil {
			return err
		}

		unclaimed, overflowErr := pool.TotalUnclaimedDividends.Add(quantity)
		if overflowErr != nil {
			return amountOverflow(overflowErr, quantity)
		}
		pool.TotalUnclaimedDividends = unclaimed

		if pool.TotalStaked.IsPositive() {
			total, overflowErr := pool.TotalDividends.Add(quantity)
			if overflowErr != nil {
				return amountOverflow(overflowErr, quantity)
			}
			fraction, fractionErr := pool.Fraction.Add(quantity.Amount, pool.TotalStaked.Amount)
			if fractionErr != nil {
				return amountOverflow(fractionErr, quantity)
			}
			pool.TotalDividends = total
			pool.Fraction = fraction
		}

		if storeErr := s.repoManager.Dividends().Upsert(ctx, *pool); storeErr != nil {
			return errors.INTERNAL_ERROR.Wrap(storeErr)
		}

		op.notify(domain.EventTypeDistributed, quantity, "", owner)
		log.WithFields(log.Fields{
			"owner":    owner,
			"quantity": quantity.String(),
			"fraction": pool.Fraction.String(),
		}).Debug("distributed dividends")
		return nil
	})
}

// realize pays owner the dividends accrued since its last snapshot and moves
// the snapshot to the current accumulator. Fractions of the smallest unit are
// forfeited.
func (s *service) realize(ctx context.Context, op *operation, owner domain.Name) errors.Error {
	position, storeErr := s.repoManager.Stakes().Get(ctx, owner, s.nativeSymbol.Code)
	if storeErr != nil {
		return errors.INTERNAL_ERROR.Wrap(storeErr)
	}
	if position == nil || !position.Staked.IsPositive() {
		return nil
	}

	pool, err := s.getPool(ctx)
	if err != nil {
		return err
	}

	owed, owedErr := pool.Fraction.Owed(position.LastDividendFraction, position.Staked.Amount)
	if owedErr != nil {
		return errors.INTERNAL_ERROR.Wrap(owedErr)
	}

	position.LastDividendFraction = pool.Fraction
	if storeErr := s.repoManager.Stakes().Upsert(ctx, *position); storeErr != nil {
		return errors.INTERNAL_ERROR.Wrap(storeErr)
	}
	if owed < 1 {
		return nil
	}

	dividends := domain.NewAsset(owed, s.nativeSymbol)
	unclaimed, subErr := pool.TotalUnclaimedDividends.Sub(dividends)
	if subErr != nil || unclaimed.Amount < 0 {
		return errors.INTERNAL_ERROR.New("owed dividends exceed unclaimed dividends").
			WithMetadata(map[string]any{
				"owed":      dividends.String(),
				"unclaimed": pool.TotalUnclaimedDividends.String(),
			})
	}
	pool.TotalUnclaimedDividends = unclaimed
	if storeErr := s.repoManager.Dividends().Upsert(ctx, *pool); storeErr != nil {
		return errors.INTERNAL_ERROR.Wrap(storeErr)
	}

	if err := s.transfer(ctx, op, s.contract, owner, dividends, dividendsMemo); err != nil {
		return err
	}
	op.notify(domain.EventTypeDividendsRealized, dividends, "", owner)
	return nil
}

// getPool returns the dividend pool of the native symbol, a fresh one if
// nothing was staked or distributed yet.
func (s *service) getPool(ctx context.Context) (*domain.DividendPool, errors.Error) {
	pool, err := s.repoManager.Dividends().Get(ctx, s.nativeSymbol.Code)
	if err != nil {
		return nil, errors.INTERNAL_ERROR.Wrap(err)
	}
	if pool == nil {
		newPool := domain.NewDividendPool(s.nativeSymbol)
		return &newPool, nil
	}
	return pool, nil
}
