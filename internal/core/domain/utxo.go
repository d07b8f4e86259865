package domain

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// UtxoNote is a bearer note: its amount can be spent by whoever produces a
// valid signature for the bound public key.
type UtxoNote struct {
	Id     uint64
	PubKey string
	Amount Asset
	Payer  Name
}

func (n UtxoNote) PubKeyHash() (string, error) {
	return PubKeyHash(n.PubKey)
}

// UtxoInput references a note to spend together with the signature of its
// input digest.
type UtxoInput struct {
	Id        uint64
	Signature []byte
}

// UtxoOutput routes value either to a named account or to a new note bound to
// a public key, never both.
type UtxoOutput struct {
	Account  Name
	PubKey   string
	Quantity Asset
}

func (o UtxoOutput) IsAccount() bool {
	return len(o.Account) > 0
}

func (o UtxoOutput) Validate() error {
	if o.IsAccount() == (len(o.PubKey) > 0) {
		return fmt.Errorf("output must target either an account or a public key")
	}
	if o.IsAccount() {
		if !o.Account.IsValid() {
			return fmt.Errorf("invalid output account %q", o.Account)
		}
		return nil
	}
	if _, err := ParsePubKey(o.PubKey); err != nil {
		return fmt.Errorf("invalid output public key: %s", err)
	}
	return nil
}

// ParsePubKey decodes a hex encoded x-only public key.
func ParsePubKey(pubkey string) (*btcec.PublicKey, error) {
	buf, err := hex.DecodeString(pubkey)
	if err != nil {
		return nil, err
	}
	return schnorr.ParsePubKey(buf)
}

// PubKeyHash is the hex encoded hash160 of the public key, used to index
// notes by key.
func PubKeyHash(pubkey string) (string, error) {
	buf, err := hex.DecodeString(pubkey)
	if err != nil {
		return "", fmt.Errorf("invalid public key: %s", err)
	}
	return hex.EncodeToString(btcutil.Hash160(buf)), nil
}

// SerializeOutputs returns the canonical encoding of the output set:
// varint count, then for every output the account (varstring), the key
// (varbytes), the amount (int64 LE), the precision (byte) and the code
// (varstring).
func SerializeOutputs(outputs []UtxoOutput) ([]byte, error) {
	var buf bytes.Buffer
	if err := wire.WriteVarInt(&buf, 0, uint64(len(outputs))); err != nil {
		return nil, err
	}

	amount := make([]byte, 8)
	for i, out := range outputs {
		if err := out.Validate(); err != nil {
			return nil, fmt.Errorf("output %d: %s", i, err)
		}

		var pubkey []byte
		if !out.IsAccount() {
			key, err := ParsePubKey(out.PubKey)
			if err != nil {
				return nil, fmt.Errorf("output %d: %s", i, err)
			}
			pubkey = schnorr.SerializePubKey(key)
		}

		if err := wire.WriteVarString(&buf, 0, string(out.Account)); err != nil {
			return nil, err
		}
		if err := wire.WriteVarBytes(&buf, 0, pubkey); err != nil {
			return nil, err
		}
		binary.LittleEndian.PutUint64(amount, uint64(out.Quantity.Amount))
		buf.Write(amount)
		buf.WriteByte(out.Quantity.Symbol.Precision)
		if err := wire.WriteVarString(&buf, 0, string(out.Quantity.Symbol.Code)); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// OutputsDigest is the hash256 of the canonical output set.
func OutputsDigest(outputs []UtxoOutput) (chainhash.Hash, error) {
	buf, err := SerializeOutputs(outputs)
	if err != nil {
		return chainhash.Hash{}, err
	}
	return chainhash.DoubleHashH(buf), nil
}

// InputDigest is the message signed to spend a note: hash256 of the note id
// (uint64 LE) followed by the outputs digest.
func InputDigest(id uint64, outputsDigest chainhash.Hash) chainhash.Hash {
	buf := make([]byte, 8+chainhash.HashSize)
	binary.LittleEndian.PutUint64(buf, id)
	copy(buf[8:], outputsDigest[:])
	return chainhash.DoubleHashH(buf)
}
