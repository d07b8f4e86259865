package application

import (
	"context"

	"github.com/arkade-os/tokend/internal/core/domain"
	"github.com/arkade-os/tokend/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func (s *service) Create(
	ctx context.Context, issuer domain.Name, maxSupply domain.Asset,
) errors.Error {
	return s.run(ctx, "create", func(ctx context.Context, op *operation) errors.Error {
		if err := s.requireAuth(ctx, s.contract); err != nil {
			return err
		}
		if err := validateMaxSupply(maxSupply); err != nil {
			return err
		}
		if !issuer.IsValid() {
			return errors.INVALID_ARGUMENT.New("invalid issuer %q", issuer).
				WithMetadata(map[string]any{"issuer": issuer.String()})
		}

		stats, storeErr := s.repoManager.Stats().Get(ctx, maxSupply.Symbol.Code)
		if storeErr != nil {
			return errors.INTERNAL_ERROR.Wrap(storeErr)
		}
		if stats != nil {
			return errors.ALREADY_EXISTS.New("token with symbol already exists").
				WithMetadata(errors.RecordMetadata{
					Table: "stats", Key: maxSupply.Symbol.Code.String(),
				})
		}

		newStats := domain.NewCurrencyStats(issuer, maxSupply)
		if storeErr := s.repoManager.Stats().Add(ctx, newStats); storeErr != nil {
			return errors.INTERNAL_ERROR.Wrap(storeErr)
		}
		op.notify(domain.EventTypeTokenCreated, maxSupply, "", issuer)
		return nil
	})
}

func (s *service) Update(
	ctx context.Context, issuer domain.Name, maxSupply domain.Asset,
) errors.Error {
	return s.run(ctx, "update", func(ctx context.Context, op *operation) errors.Error {
		if err := s.requireAuth(ctx, s.contract); err != nil {
			return err
		}
		if err := validateMaxSupply(maxSupply); err != nil {
			return err
		}
		if !issuer.IsValid() {
			return errors.INVALID_ARGUMENT.New("invalid issuer %q", issuer).
				WithMetadata(map[string]any{"issuer": issuer.String()})
		}

		stats, err := s.getStats(ctx, maxSupply.Symbol.Code)
		if err != nil {
			return err
		}
		if stats.Supply.Amount > maxSupply.Amount {
			return errors.SUPPLY_EXCEEDED.New("max supply must be larger than available supply").
				WithMetadata(supplyMetadata(*stats, maxSupply))
		}
		if stats.Symbol() != maxSupply.Symbol {
			return errors.SYMBOL_PRECISION_MISMATCH.New("symbol precision mismatch").
				WithMetadata(errors.SymbolMismatchMetadata{
					Expected: stats.Symbol().String(), Got: maxSupply.Symbol.String(),
				})
		}

		stats.MaxSupply = maxSupply
		stats.Issuer = issuer
		if storeErr := s.repoManager.Stats().Update(ctx, *stats); storeErr != nil {
			return errors.INTERNAL_ERROR.Wrap(storeErr)
		}
		op.notify(domain.EventTypeTokenUpdated, maxSupply, "", issuer)
		return nil
	})
}

func (s *service) Issue(
	ctx context.Context, to domain.Name, quantity domain.Asset, memo string,
) errors.Error {
	return s.run(ctx, "issue", func(ctx context.Context, op *operation) errors.Error {
		if err := validateMemo(memo); err != nil {
			return err
		}
		stats, err := s.getStats(ctx, quantity.Symbol.Code)
		if err != nil {
			return err
		}
		if err := s.requireAuth(ctx, stats.Issuer); err != nil {
			return err
		}
		if err := validateQuantity(quantity, stats.Symbol()); err != nil {
			return err
		}
		if quantity.Amount > stats.Available() {
			return errors.SUPPLY_EXCEEDED.New("quantity exceeds available supply").
				WithMetadata(supplyMetadata(*stats, quantity))
		}

		if err := s.enforceVesting(ctx, op, to, quantity); err != nil {
			return err
		}

		supply, overflowErr := stats.Supply.Add(quantity)
		if overflowErr != nil {
			return amountOverflow(overflowErr, quantity)
		}
		stats.Supply = supply
		if storeErr := s.repoManager.Stats().Update(ctx, *stats); storeErr != nil {
			return errors.INTERNAL_ERROR.Wrap(storeErr)
		}

		if err := s.credit(ctx, stats.Issuer, quantity, stats.Issuer, true); err != nil {
			return err
		}
		op.notify(domain.EventTypeIssued, quantity, memo, stats.Issuer)

		if to != stats.Issuer {
			if err := s.transfer(ctx, op, stats.Issuer, to, quantity, memo); err != nil {
				return err
			}
		}

		log.WithFields(log.Fields{
			"to":       to,
			"quantity": quantity.String(),
			"supply":   stats.Supply.String(),
		}).Debug("issued")
		return nil
	})
}

func (s *service) Retire(ctx context.Context, quantity domain.Asset, memo string) errors.Error {
	return s.run(ctx, "retire", func(ctx context.Context, op *operation) errors.Error {
		if err := validateMemo(memo); err != nil {
			return err
		}
		stats, err := s.getStats(ctx, quantity.Symbol.Code)
		if err != nil {
			return err
		}
		if err := s.requireAuth(ctx, stats.Issuer); err != nil {
			return err
		}
		if err := validateQuantity(quantity, stats.Symbol()); err != nil {
			return err
		}

		if err := s.debit(ctx, stats.Issuer, quantity); err != nil {
			return err
		}

		supply, overflowErr := stats.Supply.Sub(quantity)
		if overflowErr != nil || supply.Amount < 0 {
			return errors.INSUFFICIENT_FUNDS.New("quantity exceeds supply").
				WithMetadata(errors.BalanceMetadata{
					Owner:     stats.Issuer.String(),
					Available: stats.Supply.String(),
					Requested: quantity.String(),
				})
		}
		stats.Supply = supply
		if storeErr := s.repoManager.Stats().Update(ctx, *stats); storeErr != nil {
			return errors.INTERNAL_ERROR.Wrap(storeErr)
		}

		op.notify(domain.EventTypeRetired, quantity, memo, stats.Issuer)
		return nil
	})
}

// enforceVesting records the issuance to account, failing if it would exceed
// the ceiling of its vesting policy. With no policy configured issuance is
// unrestricted, otherwise only accounts with a policy can receive fresh
// issuance.
func (s *service) enforceVesting(
	ctx context.Context, op *operation, account domain.Name, quantity domain.Asset,
) errors.Error {
	if len(s.vesting) == 0 {
		return nil
	}

	policy, ok := s.vesting[account]
	if !ok {
		return errors.ISSUANCE_CLOSED.New("token issuing era finished").
			WithMetadata(errors.AccountMetadata{Account: account.String()})
	}

	record, storeErr := s.repoManager.Vesting().Get(ctx, account)
	if storeErr != nil {
		return errors.INTERNAL_ERROR.Wrap(storeErr)
	}
	issued := int64(0)
	if record != nil {
		issued = record.Issued.Amount
	}

	ceiling := policy.Ceiling(op.now)
	if issued+quantity.Amount > ceiling {
		return errors.BUDGET_EXCEEDED.New("vesting budget of %s exceeded", account).
			WithMetadata(errors.BudgetMetadata{
				Account:   account.String(),
				Issued:    issued,
				Requested: quantity.Amount,
				Ceiling:   ceiling,
			})
	}

	if storeErr := s.repoManager.Vesting().Upsert(ctx, domain.VestingRecord{
		Account: account,
		Issued:  domain.NewAsset(issued+quantity.Amount, quantity.Symbol),
	}); storeErr != nil {
		return errors.INTERNAL_ERROR.Wrap(storeErr)
	}
	return nil
}

func validateMaxSupply(maxSupply domain.Asset) errors.Error {
	if !maxSupply.Symbol.IsValid() {
		return errors.INVALID_SYMBOL.New("invalid symbol name").
			WithMetadata(errors.SymbolMetadata{Symbol: maxSupply.Symbol.String()})
	}
	if !maxSupply.IsValid() {
		return errors.INVALID_AMOUNT.New("invalid supply").
			WithMetadata(errors.AmountMetadata{Quantity: maxSupply.String()})
	}
	if !maxSupply.IsPositive() {
		return errors.INVALID_AMOUNT.New("max supply must be positive").
			WithMetadata(errors.AmountMetadata{Quantity: maxSupply.String()})
	}
	return nil
}

func supplyMetadata(stats domain.CurrencyStats, quantity domain.Asset) errors.SupplyMetadata {
	return errors.SupplyMetadata{
		Symbol:    stats.Symbol().String(),
		Supply:    stats.Supply.String(),
		MaxSupply: stats.MaxSupply.String(),
		Quantity:  quantity.String(),
	}
}
