package signer

import (
	"encoding/hex"
	"fmt"

	"github.com/arkade-os/tokend/internal/core/domain"
	"github.com/arkade-os/tokend/internal/core/ports"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	log "github.com/sirupsen/logrus"
)

type verifier struct{}

// NewVerifier returns a verifier of BIP-340 schnorr signatures.
func NewVerifier() ports.SignatureVerifier {
	return verifier{}
}

func (verifier) Verify(digest chainhash.Hash, signature []byte, pubkey string) bool {
	key, err := domain.ParsePubKey(pubkey)
	if err != nil {
		log.WithError(err).Debugf("invalid public key %s", pubkey)
		return false
	}
	sig, err := schnorr.ParseSignature(signature)
	if err != nil {
		log.WithError(err).Debug("invalid signature")
		return false
	}
	return sig.Verify(digest[:], key)
}

// NewKey generates a new private key and returns it along with the hex
// encoded x-only public key.
func NewKey() (*btcec.PrivateKey, string, error) {
	key, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, "", err
	}
	return key, EncodePubKey(key.PubKey()), nil
}

func ParsePrivateKey(key string) (*btcec.PrivateKey, error) {
	buf, err := hex.DecodeString(key)
	if err != nil {
		return nil, err
	}
	if len(buf) != btcec.PrivKeyBytesLen {
		return nil, fmt.Errorf(
			"invalid private key length, expected %d bytes, got %d", btcec.PrivKeyBytesLen, len(buf),
		)
	}
	privkey, _ := btcec.PrivKeyFromBytes(buf)
	return privkey, nil
}

func EncodePubKey(key *btcec.PublicKey) string {
	return hex.EncodeToString(schnorr.SerializePubKey(key))
}

func Sign(key *btcec.PrivateKey, digest chainhash.Hash) ([]byte, error) {
	sig, err := schnorr.Sign(key, digest[:])
	if err != nil {
		return nil, err
	}
	return sig.Serialize(), nil
}

// SignInput signs the spending of the given note toward the given outputs.
func SignInput(
	key *btcec.PrivateKey, noteId uint64, outputs []domain.UtxoOutput,
) (domain.UtxoInput, error) {
	outputsDigest, err := domain.OutputsDigest(outputs)
	if err != nil {
		return domain.UtxoInput{}, err
	}
	sig, err := Sign(key, domain.InputDigest(noteId, outputsDigest))
	if err != nil {
		return domain.UtxoInput{}, err
	}
	return domain.UtxoInput{Id: noteId, Signature: sig}, nil
}
