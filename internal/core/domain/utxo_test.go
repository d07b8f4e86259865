package domain_test

import (
	"encoding/hex"
	"testing"

	"github.com/arkade-os/tokend/internal/core/domain"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/stretchr/testify/require"
)

func newPubKey(t *testing.T) string {
	key, err := btcec.NewPrivateKey()
	require.NoError(t, err)
	return hex.EncodeToString(schnorr.SerializePubKey(key.PubKey()))
}

func TestOutputsDigest(t *testing.T) {
	sym := domain.NewSymbol(4, "PEOS")
	pubkey := newPubKey(t)
	outputs := []domain.UtxoOutput{
		{Account: "bob", Quantity: domain.NewAsset(10, sym)},
		{PubKey: pubkey, Quantity: domain.NewAsset(5, sym)},
	}

	t.Run("deterministic", func(t *testing.T) {
		d1, err := domain.OutputsDigest(outputs)
		require.NoError(t, err)
		d2, err := domain.OutputsDigest(outputs)
		require.NoError(t, err)
		require.Equal(t, d1, d2)
	})

	t.Run("binds the whole set", func(t *testing.T) {
		digest, err := domain.OutputsDigest(outputs)
		require.NoError(t, err)

		variants := [][]domain.UtxoOutput{
			{outputs[1], outputs[0]},
			{outputs[0]},
			{outputs[0], {PubKey: pubkey, Quantity: domain.NewAsset(6, sym)}},
			{{Account: "carol", Quantity: domain.NewAsset(10, sym)}, outputs[1]},
		}
		for _, v := range variants {
			other, err := domain.OutputsDigest(v)
			require.NoError(t, err)
			require.NotEqual(t, digest, other)
		}
	})

	t.Run("invalid outputs", func(t *testing.T) {
		invalid := [][]domain.UtxoOutput{
			{{Quantity: domain.NewAsset(10, sym)}},
			{{Account: "bob", PubKey: pubkey, Quantity: domain.NewAsset(10, sym)}},
			{{PubKey: "zz", Quantity: domain.NewAsset(10, sym)}},
			{{Account: "Bob", Quantity: domain.NewAsset(10, sym)}},
		}
		for _, v := range invalid {
			_, err := domain.OutputsDigest(v)
			require.Error(t, err)
		}
	})
}

func TestInputDigest(t *testing.T) {
	outputsDigest, err := domain.OutputsDigest(nil)
	require.NoError(t, err)

	d1 := domain.InputDigest(1, outputsDigest)
	require.Equal(t, d1, domain.InputDigest(1, outputsDigest))
	require.NotEqual(t, d1, domain.InputDigest(2, outputsDigest))
}

func TestPubKeyHash(t *testing.T) {
	pubkey := newPubKey(t)
	hash, err := domain.PubKeyHash(pubkey)
	require.NoError(t, err)
	require.Len(t, hash, 40)

	note := domain.UtxoNote{Id: 1, PubKey: pubkey}
	noteHash, err := note.PubKeyHash()
	require.NoError(t, err)
	require.Equal(t, hash, noteHash)

	_, err = domain.PubKeyHash("not hex")
	require.Error(t, err)
}
