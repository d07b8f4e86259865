package application

import (
	"context"

	"github.com/arkade-os/tokend/internal/core/domain"
	"github.com/arkade-os/tokend/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func (s *service) Transfer(
	ctx context.Context, from, to domain.Name, quantity domain.Asset, memo string,
) errors.Error {
	return s.run(ctx, "transfer", func(ctx context.Context, op *operation) errors.Error {
		if err := s.requireAuth(ctx, from); err != nil {
			return err
		}
		return s.transfer(ctx, op, from, to, quantity, memo)
	})
}

func (s *service) Open(
	ctx context.Context, owner domain.Name, symbol domain.Symbol, payer domain.Name,
) errors.Error {
	return s.run(ctx, "open", func(ctx context.Context, op *operation) errors.Error {
		if err := s.requireAuth(ctx, payer); err != nil {
			return err
		}
		if !s.isAccount(ctx, owner) {
			return errors.INVALID_ARGUMENT.New("owner account %q does not exist", owner).
				WithMetadata(map[string]any{"owner": owner.String()})
		}

		stats, err := s.getStats(ctx, symbol.Code)
		if err != nil {
			return err
		}
		if stats.Symbol() != symbol {
			return errors.SYMBOL_PRECISION_MISMATCH.New("symbol precision mismatch").
				WithMetadata(errors.SymbolMismatchMetadata{
					Expected: stats.Symbol().String(), Got: symbol.String(),
				})
		}

		balance, storeErr := s.repoManager.Balances().Get(ctx, owner, symbol.Code)
		if storeErr != nil {
			return errors.INTERNAL_ERROR.Wrap(storeErr)
		}
		if balance != nil {
			return nil
		}

		if storeErr := s.repoManager.Balances().Add(ctx, domain.Balance{
			Owner:   owner,
			Balance: domain.NewAsset(0, symbol),
			Claimed: true,
			Payer:   payer,
		}); storeErr != nil {
			return errors.INTERNAL_ERROR.Wrap(storeErr)
		}
		op.notify(domain.EventTypeBalanceOpened, domain.NewAsset(0, symbol), "", owner, payer)
		return nil
	})
}

func (s *service) Close(
	ctx context.Context, owner domain.Name, symbol domain.Symbol,
) errors.Error {
	return s.run(ctx, "close", func(ctx context.Context, op *operation) errors.Error {
		if err := s.requireAuth(ctx, owner); err != nil {
			return err
		}

		balance, storeErr := s.repoManager.Balances().Get(ctx, owner, symbol.Code)
		if storeErr != nil {
			return errors.INTERNAL_ERROR.Wrap(storeErr)
		}
		if balance == nil {
			return errors.RECORD_NOT_FOUND.New(
				"balance row already deleted or never existed",
			).WithMetadata(errors.RecordMetadata{
				Table: "accounts", Key: domain.OwnerKey(owner, symbol.Code),
			})
		}
		if !balance.IsEmpty() {
			return errors.NOT_EMPTY.New("cannot close because the balance is not zero").
				WithMetadata(errors.BalanceMetadata{
					Owner: owner.String(), Available: balance.Balance.String(),
				})
		}

		if storeErr := s.repoManager.Balances().Delete(ctx, owner, symbol.Code); storeErr != nil {
			return errors.INTERNAL_ERROR.Wrap(storeErr)
		}
		op.notify(domain.EventTypeBalanceClosed, balance.Balance, "", owner)
		return nil
	})
}

func (s *service) Claim(ctx context.Context, owner domain.Name, code domain.SymbolCode) errors.Error {
	return s.run(ctx, "claim", func(ctx context.Context, op *operation) errors.Error {
		if err := s.requireAuth(ctx, owner); err != nil {
			return err
		}
		return s.claim(ctx, op, owner, code, owner)
	})
}

// Recover moves an unclaimed balance back to the issuer.
func (s *service) Recover(
	ctx context.Context, owner domain.Name, code domain.SymbolCode,
) errors.Error {
	return s.run(ctx, "recover", func(ctx context.Context, op *operation) errors.Error {
		stats, err := s.getStats(ctx, code)
		if err != nil {
			return err
		}
		if err := s.requireAuth(ctx, stats.Issuer); err != nil {
			return err
		}

		balance, storeErr := s.repoManager.Balances().Get(ctx, owner, code)
		if storeErr != nil {
			return errors.INTERNAL_ERROR.Wrap(storeErr)
		}
		if balance == nil || balance.Claimed {
			return nil
		}

		if err := s.credit(ctx, stats.Issuer, balance.Balance, stats.Issuer, true); err != nil {
			return err
		}
		if storeErr := s.repoManager.Balances().Delete(ctx, owner, code); storeErr != nil {
			return errors.INTERNAL_ERROR.Wrap(storeErr)
		}
		op.notify(domain.EventTypeBalanceRecovered, balance.Balance, "", owner, stats.Issuer)
		return nil
	})
}

// transfer moves quantity from one account to another. The caller is
// responsible for checking the authority of from.
func (s *service) transfer(
	ctx context.Context, op *operation,
	from, to domain.Name, quantity domain.Asset, memo string,
) errors.Error {
	if from == to {
		return errors.INVALID_ARGUMENT.New("cannot transfer to self").
			WithMetadata(map[string]any{"account": from.String()})
	}
	if !s.isAccount(ctx, to) {
		return errors.INVALID_ARGUMENT.New("to account %q does not exist", to).
			WithMetadata(map[string]any{"to": to.String()})
	}

	stats, err := s.getStats(ctx, quantity.Symbol.Code)
	if err != nil {
		return err
	}
	if err := validateQuantity(quantity, stats.Symbol()); err != nil {
		return err
	}
	if err := validateMemo(memo); err != nil {
		return err
	}

	payer := from
	if s.authorizer.HasAuth(ctx, to) {
		payer = to
	}

	if err := s.claim(ctx, op, from, quantity.Symbol.Code, from); err != nil {
		return err
	}
	if err := s.debit(ctx, from, quantity); err != nil {
		return err
	}
	if err := s.credit(ctx, to, quantity, payer, payer != stats.Issuer); err != nil {
		return err
	}
	if from != stats.Issuer {
		if err := s.claim(ctx, op, to, quantity.Symbol.Code, from); err != nil {
			return err
		}
	}

	op.notify(domain.EventTypeTransferred, quantity, memo, from, to)
	log.WithFields(log.Fields{
		"from":     from,
		"to":       to,
		"quantity": quantity.String(),
	}).Debug("transferred")
	return nil
}

// debit subtracts quantity from the balance of owner, who becomes the payer
// of the record.
func (s *service) debit(ctx context.Context, owner domain.Name, quantity domain.Asset) errors.Error {
	balance, storeErr := s.repoManager.Balances().Get(ctx, owner, quantity.Symbol.Code)
	if storeErr != nil {
		return errors.INTERNAL_ERROR.Wrap(storeErr)
	}
	if balance == nil {
		return errors.RECORD_NOT_FOUND.New("no balance object found").
			WithMetadata(errors.RecordMetadata{
				Table: "accounts", Key: domain.OwnerKey(owner, quantity.Symbol.Code),
			})
	}
	if balance.Balance.Amount < quantity.Amount {
		return errors.INSUFFICIENT_FUNDS.New("overdrawn balance").
			WithMetadata(errors.BalanceMetadata{
				Owner:     owner.String(),
				Available: balance.Balance.String(),
				Requested: quantity.String(),
			})
	}

	newBalance, err := balance.Balance.Sub(quantity)
	if err != nil {
		return amountOverflow(err, quantity)
	}
	balance.Balance = newBalance
	balance.Claimed = true
	balance.Payer = owner

	if storeErr := s.repoManager.Balances().Update(ctx, *balance); storeErr != nil {
		return errors.INTERNAL_ERROR.Wrap(storeErr)
	}
	return nil
}

// credit adds quantity to the balance of owner, creating the record funded by
// payer if missing.
func (s *service) credit(
	ctx context.Context, owner domain.Name, quantity domain.Asset, payer domain.Name, claimed bool,
) errors.Error {
	balance, storeErr := s.repoManager.Balances().Get(ctx, owner, quantity.Symbol.Code)
	if storeErr != nil {
		return errors.INTERNAL_ERROR.Wrap(storeErr)
	}

	if balance == nil {
		if storeErr := s.repoManager.Balances().Add(ctx, domain.Balance{
			Owner:   owner,
			Balance: quantity,
			Claimed: claimed,
			Payer:   payer,
		}); storeErr != nil {
			return errors.INTERNAL_ERROR.Wrap(storeErr)
		}
		return nil
	}

	newBalance, err := balance.Balance.Add(quantity)
	if err != nil {
		return amountOverflow(err, quantity)
	}
	balance.Balance = newBalance
	if storeErr := s.repoManager.Balances().Update(ctx, *balance); storeErr != nil {
		return errors.INTERNAL_ERROR.Wrap(storeErr)
	}
	return nil
}

// claim makes payer the funder of an unclaimed balance of owner, marking it
// as claimed.
func (s *service) claim(
	ctx context.Context, op *operation,
	owner domain.Name, code domain.SymbolCode, payer domain.Name,
) errors.Error {
	if !code.IsValid() {
		return errors.INVALID_SYMBOL.New("invalid symbol name").
			WithMetadata(errors.SymbolMetadata{Symbol: code.String()})
	}

	balance, storeErr := s.repoManager.Balances().Get(ctx, owner, code)
	if storeErr != nil {
		return errors.INTERNAL_ERROR.Wrap(storeErr)
	}
	if balance == nil {
		return errors.RECORD_NOT_FOUND.New("no balance object found").
			WithMetadata(errors.RecordMetadata{
				Table: "accounts", Key: domain.OwnerKey(owner, code),
			})
	}
	if balance.Claimed {
		return nil
	}

	balance.Claimed = true
	balance.Payer = payer
	if storeErr := s.repoManager.Balances().Update(ctx, *balance); storeErr != nil {
		return errors.INTERNAL_ERROR.Wrap(storeErr)
	}
	op.notify(domain.EventTypeBalanceClaimed, balance.Balance, "", owner, payer)
	return nil
}
