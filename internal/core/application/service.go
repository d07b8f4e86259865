package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/arkade-os/tokend/internal/core/domain"
	"github.com/arkade-os/tokend/internal/core/ports"
	"github.com/arkade-os/tokend/pkg/errors"
	"github.com/lightningnetwork/lnd/clock"
	log "github.com/sirupsen/logrus"
)

const maxMemoSize = 256

type service struct {
	repoManager ports.RepoManager
	authorizer  ports.Authorizer
	verifier    ports.SignatureVerifier
	notifier    ports.Notifier
	clock       clock.Clock

	// config
	contract     domain.Name
	nativeSymbol domain.Symbol
	refundDelay  int64
	vesting      map[domain.Name]domain.VestingPolicy

	// operations are serialized, each one runs in its own store transaction.
	lock *sync.Mutex
}

// operation collects the state of a single public call.
type operation struct {
	now    int64
	events []domain.LedgerEvent
}

func (op *operation) notify(
	eventType domain.EventType, quantity domain.Asset, memo string, accounts ...domain.Name,
) *domain.LedgerEvent {
	op.events = append(op.events, domain.NewLedgerEvent(eventType, op.now, quantity, memo, accounts...))
	return &op.events[len(op.events)-1]
}

func NewService(
	config Config,
	repoManager ports.RepoManager,
	authorizer ports.Authorizer,
	verifier ports.SignatureVerifier,
	notifier ports.Notifier,
	clock clock.Clock,
) (Service, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %s", err)
	}
	if repoManager == nil {
		return nil, fmt.Errorf("missing repo manager")
	}
	if authorizer == nil {
		return nil, fmt.Errorf("missing authorizer")
	}
	if verifier == nil {
		return nil, fmt.Errorf("missing signature verifier")
	}
	if clock == nil {
		return nil, fmt.Errorf("missing clock")
	}

	vesting := make(map[domain.Name]domain.VestingPolicy, len(config.VestingPolicies))
	for _, policy := range config.VestingPolicies {
		vesting[policy.Account] = policy
	}

	return &service{
		repoManager:  repoManager,
		authorizer:   authorizer,
		verifier:     verifier,
		notifier:     notifier,
		clock:        clock,
		contract:     config.ContractAccount,
		nativeSymbol: config.NativeSymbol,
		refundDelay:  config.RefundDelay,
		vesting:      vesting,
		lock:         &sync.Mutex{},
	}, nil
}

func (s *service) Stop() {
	if s.notifier != nil {
		s.notifier.Close()
		log.Debug("closed notifier")
	}
	s.repoManager.Close()
	log.Debug("closed connection to db")
}

// run executes fn in a single store transaction. Nothing fn writes is
// persisted if it fails, and the events it collects are published only once
// the transaction is committed.
func (s *service) run(
	ctx context.Context, name string,
	fn func(ctx context.Context, op *operation) errors.Error,
) errors.Error {
	s.lock.Lock()
	defer s.lock.Unlock()

	var op *operation
	var opErr errors.Error
	err := s.repoManager.RunInTx(ctx, func(ctx context.Context) error {
		op = &operation{now: s.clock.Now().Unix()}
		opErr = fn(ctx, op)
		if opErr != nil {
			return opErr
		}
		return nil
	})
	if opErr != nil {
		opErr.Log().WithField("operation", name).Debug("operation aborted")
		return opErr
	}
	if err != nil {
		return errors.INTERNAL_ERROR.Wrap(err).
			WithMetadata(map[string]any{"operation": name})
	}

	log.WithField("operation", name).Debugf("committed with %d events", len(op.events))

	if s.notifier != nil && len(op.events) > 0 {
		if err := s.notifier.Publish(ctx, op.events...); err != nil {
			log.WithError(err).Warnf("failed to publish %s events", name)
		}
	}
	return nil
}

func (s *service) requireAuth(ctx context.Context, account domain.Name) errors.Error {
	if err := s.authorizer.RequireAuth(ctx, account); err != nil {
		return errors.UNAUTHORIZED.Wrap(err).
			WithMetadata(errors.AccountMetadata{Account: account.String()})
	}
	return nil
}

func (s *service) isAccount(ctx context.Context, account domain.Name) bool {
	return account == s.contract || s.authorizer.IsAccount(ctx, account)
}

func (s *service) getStats(
	ctx context.Context, code domain.SymbolCode,
) (*domain.CurrencyStats, errors.Error) {
	if !code.IsValid() {
		return nil, errors.INVALID_SYMBOL.New("invalid symbol name").
			WithMetadata(errors.SymbolMetadata{Symbol: code.String()})
	}
	stats, err := s.repoManager.Stats().Get(ctx, code)
	if err != nil {
		return nil, errors.INTERNAL_ERROR.Wrap(err)
	}
	if stats == nil {
		return nil, errors.RECORD_NOT_FOUND.New("token with symbol does not exist").
			WithMetadata(errors.RecordMetadata{Table: "stats", Key: code.String()})
	}
	return stats, nil
}

func validateMemo(memo string) errors.Error {
	if len(memo) > maxMemoSize {
		return errors.INVALID_ARGUMENT.New("memo has more than %d bytes", maxMemoSize).
			WithMetadata(map[string]any{"memo_size": len(memo)})
	}
	return nil
}

// validateQuantity checks that quantity is a valid positive amount of the
// given symbol.
func validateQuantity(quantity domain.Asset, symbol domain.Symbol) errors.Error {
	if !quantity.Symbol.IsValid() {
		return errors.INVALID_SYMBOL.New("invalid symbol name").
			WithMetadata(errors.SymbolMetadata{Symbol: quantity.Symbol.String()})
	}
	if !quantity.IsValid() {
		return errors.INVALID_AMOUNT.New("invalid quantity").
			WithMetadata(errors.AmountMetadata{Quantity: quantity.String()})
	}
	if !quantity.IsPositive() {
		return errors.INVALID_AMOUNT.New("quantity must be positive").
			WithMetadata(errors.AmountMetadata{Quantity: quantity.String()})
	}
	if quantity.Symbol != symbol {
		return errors.SYMBOL_PRECISION_MISMATCH.New("symbol precision mismatch").
			WithMetadata(errors.SymbolMismatchMetadata{
				Expected: symbol.String(), Got: quantity.Symbol.String(),
			})
	}
	return nil
}

func amountOverflow(err error, quantity domain.Asset) errors.Error {
	return errors.INVALID_AMOUNT.Wrap(err).
		WithMetadata(errors.AmountMetadata{Quantity: quantity.String()})
}
