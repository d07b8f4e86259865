package signer_test

import (
	"encoding/hex"
	"testing"

	"github.com/arkade-os/tokend/internal/core/domain"
	"github.com/arkade-os/tokend/internal/infrastructure/signer"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/require"
)

func TestVerifier(t *testing.T) {
	key, pubkey, err := signer.NewKey()
	require.NoError(t, err)
	_, otherPubkey, err := signer.NewKey()
	require.NoError(t, err)

	outputs := []domain.UtxoOutput{
		{Account: "bob", Quantity: domain.NewAsset(10, domain.NewSymbol(4, "PEOS"))},
	}
	input, err := signer.SignInput(key, 1, outputs)
	require.NoError(t, err)
	require.Equal(t, uint64(1), input.Id)

	outputsDigest, err := domain.OutputsDigest(outputs)
	require.NoError(t, err)
	digest := domain.InputDigest(1, outputsDigest)

	verifier := signer.NewVerifier()

	testCases := []struct {
		name      string
		digest    chainhash.Hash
		signature []byte
		pubkey    string
		expected  bool
	}{
		{"valid", digest, input.Signature, pubkey, true},
		{"other key", digest, input.Signature, otherPubkey, false},
		{"other note", domain.InputDigest(2, outputsDigest), input.Signature, pubkey, false},
		{"malformed signature", digest, input.Signature[:10], pubkey, false},
		{"malformed key", digest, input.Signature, "00", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, verifier.Verify(tc.digest, tc.signature, tc.pubkey))
		})
	}
}

func TestParsePrivateKey(t *testing.T) {
	key, pubkey, err := signer.NewKey()
	require.NoError(t, err)

	parsed, err := signer.ParsePrivateKey(hex.EncodeToString(key.Serialize()))
	require.NoError(t, err)
	require.Equal(t, pubkey, signer.EncodePubKey(parsed.PubKey()))

	invalidKeys := []string{
		"zz",
		"",
		"01",
		hex.EncodeToString(key.Serialize()[:31]),
		hex.EncodeToString(append(key.Serialize(), 0x01)),
	}
	for _, invalidKey := range invalidKeys {
		_, err := signer.ParsePrivateKey(invalidKey)
		require.Error(t, err, invalidKey)
	}
}
