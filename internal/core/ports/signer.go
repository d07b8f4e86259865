package ports

import "github.com/btcsuite/btcd/chaincfg/chainhash"

type SignatureVerifier interface {
	Verify(digest chainhash.Hash, signature []byte, pubkey string) bool
}
