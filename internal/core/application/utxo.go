package application

import (
	"context"
	"encoding/hex"

	"github.com/arkade-os/tokend/internal/core/domain"
	"github.com/arkade-os/tokend/pkg/errors"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	log "github.com/sirupsen/logrus"
)

const (
	loadUtxoMemo = "load utxo"
	utxoFeeMemo  = "utxo transfer fee"
)

// LoadUtxo moves quantity from the balance of from into a new bearer note
// bound to pubkey.
func (s *service) LoadUtxo(
	ctx context.Context, from domain.Name, pubkey string, quantity domain.Asset,
) (*domain.UtxoNote, errors.Error) {
	var note *domain.UtxoNote
	err := s.run(ctx, "loadutxo", func(ctx context.Context, op *operation) errors.Error {
		if err := s.requireAuth(ctx, from); err != nil {
			return err
		}
		if err := validateQuantity(quantity, s.nativeSymbol); err != nil {
			return err
		}
		key, err := normalizePubKey(pubkey)
		if err != nil {
			return err
		}

		if err := s.transfer(ctx, op, from, s.contract, quantity, loadUtxoMemo); err != nil {
			return err
		}

		newNote, err := s.addNote(ctx, key, quantity, from)
		if err != nil {
			return err
		}
		note = newNote

		event := op.notify(domain.EventTypeUtxoLoaded, quantity, "", from)
		event.CreatedNotes = []uint64{newNote.Id}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return note, nil
}

// TransferUtxo spends the given notes into the outputs. Every input must be
// signed over its id and the digest of the whole output set. What the inputs
// hold in excess of the outputs is paid to payer.
func (s *service) TransferUtxo(
	ctx context.Context, payer domain.Name,
	inputs []domain.UtxoInput, outputs []domain.UtxoOutput, memo string,
) ([]domain.UtxoNote, errors.Error) {
	var created []domain.UtxoNote
	err := s.run(ctx, "transferutxo", func(ctx context.Context, op *operation) errors.Error {
		if err := s.requireAuth(ctx, payer); err != nil {
			return err
		}
		if err := validateMemo(memo); err != nil {
			return err
		}

		outputsDigest, digestErr := domain.OutputsDigest(outputs)
		if digestErr != nil {
			return errors.INVALID_ARGUMENT.Wrap(digestErr).
				WithMetadata(map[string]any{"outputs": len(outputs)})
		}

		inputSum := domain.NewAsset(0, s.nativeSymbol)
		spent := make([]uint64, 0, len(inputs))
		for _, in := range inputs {
			// A note is deleted as soon as it is spent, any later reference to
			// it in the same call is unknown.
			note, storeErr := s.repoManager.Utxos().Get(ctx, in.Id)
			if storeErr != nil {
				return errors.INTERNAL_ERROR.Wrap(storeErr)
			}
			if note == nil {
				return errors.UNKNOWN_NOTE.New("unknown utxo %d", in.Id).
					WithMetadata(errors.NoteMetadata{NoteId: in.Id})
			}

			digest := domain.InputDigest(in.Id, outputsDigest)
			if !s.verifier.Verify(digest, in.Signature, note.PubKey) {
				return errors.BAD_SIGNATURE.New("signature does not match note key").
					WithMetadata(errors.NoteMetadata{NoteId: in.Id})
			}

			sum, err := inputSum.Add(note.Amount)
			if err != nil {
				return amountOverflow(err, note.Amount)
			}
			inputSum = sum

			if storeErr := s.repoManager.Utxos().Delete(ctx, in.Id); storeErr != nil {
				return errors.INTERNAL_ERROR.Wrap(storeErr)
			}
			spent = append(spent, in.Id)
		}

		outputSum := domain.NewAsset(0, s.nativeSymbol)
		for _, out := range outputs {
			if err := validateQuantity(out.Quantity, s.nativeSymbol); err != nil {
				return err
			}
			sum, err := outputSum.Add(out.Quantity)
			if err != nil {
				return amountOverflow(err, out.Quantity)
			}
			outputSum = sum
		}
		if inputSum.Amount < outputSum.Amount {
			return errors.INPUTS_INSUFFICIENT.New("inputs don't cover outputs").
				WithMetadata(errors.InputsMetadata{
					InputSum: inputSum.String(), OutputSum: outputSum.String(),
				})
		}

		accounts := []domain.Name{payer}
		notes := make([]domain.UtxoNote, 0, len(outputs))
		for _, out := range outputs {
			if out.IsAccount() {
				if err := s.transfer(
					ctx, op, s.contract, out.Account, out.Quantity, memo,
				); err != nil {
					return err
				}
				accounts = append(accounts, out.Account)
				continue
			}

			key, err := normalizePubKey(out.PubKey)
			if err != nil {
				return err
			}
			note, err := s.addNote(ctx, key, out.Quantity, payer)
			if err != nil {
				return err
			}
			notes = append(notes, *note)
		}

		fee, _ := inputSum.Sub(outputSum)
		if fee.IsPositive() && payer != s.contract {
			if err := s.transfer(ctx, op, s.contract, payer, fee, utxoFeeMemo); err != nil {
				return err
			}
		}

		createdIds := make([]uint64, 0, len(notes))
		for _, note := range notes {
			createdIds = append(createdIds, note.Id)
		}
		event := op.notify(domain.EventTypeUtxoTransferred, outputSum, memo, accounts...)
		event.SpentNotes = spent
		event.CreatedNotes = createdIds

		log.WithFields(log.Fields{
			"payer":   payer,
			"inputs":  len(spent),
			"outputs": len(outputs),
			"fee":     fee.String(),
		}).Debug("transferred utxos")

		created = notes
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *service) addNote(
	ctx context.Context, pubkey string, amount domain.Asset, payer domain.Name,
) (*domain.UtxoNote, errors.Error) {
	id, storeErr := s.repoManager.Utxos().NextId(ctx)
	if storeErr != nil {
		return nil, errors.INTERNAL_ERROR.Wrap(storeErr)
	}
	note := domain.UtxoNote{
		Id:     id,
		PubKey: pubkey,
		Amount: amount,
		Payer:  payer,
	}
	if storeErr := s.repoManager.Utxos().Add(ctx, note); storeErr != nil {
		return nil, errors.INTERNAL_ERROR.Wrap(storeErr)
	}
	return &note, nil
}

// normalizePubKey returns the lower case hex encoding of the x-only key so
// that every note of a key shares the same index entry.
func normalizePubKey(pubkey string) (string, errors.Error) {
	key, err := domain.ParsePubKey(pubkey)
	if err != nil {
		return "", errors.INVALID_ARGUMENT.New("invalid public key: %s", err).
			WithMetadata(map[string]any{"pubkey": pubkey})
	}
	return hex.EncodeToString(schnorr.SerializePubKey(key)), nil
}
