package accounts

import (
	"crypto/ed25519"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/mezonai/coins/common"
)

// Verifier ties a public key to an account address and checks signatures over a sigHash.
type Verifier interface {
	// Address derives the account address owned by pubKey
	Address(pubKey []byte) (string, error)
	// Verify reports whether sig is a valid signature of sigHash by pubKey
	Verify(pubKey, sigHash, sig []byte) bool
}

// Ed25519Verifier uses the base58 encoded public key itself as the address.
type Ed25519Verifier struct{}

func (Ed25519Verifier) Address(pubKey []byte) (string, error) {
	if len(pubKey) != ed25519.PublicKeySize {
		return "", fmt.Errorf("bad ed25519 public key length: %d", len(pubKey))
	}
	return common.EncodeBytesToBase58(pubKey), nil
}

func (Ed25519Verifier) Verify(pubKey, sigHash, sig []byte) bool {
	if len(pubKey) != ed25519.PublicKeySize || len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(pubKey, sigHash, sig)
}

// Secp256k1Verifier expects DER encoded ECDSA signatures over the 32-byte sigHash. The address
// is the base58 encoded compressed public key, so compressed and uncompressed encodings of the
// same key own the same account.
type Secp256k1Verifier struct{}

func (Secp256k1Verifier) Address(pubKey []byte) (string, error) {
	pk, err := secp256k1.ParsePubKey(pubKey)
	if err != nil {
		return "", fmt.Errorf("bad secp256k1 public key: %w", err)
	}
	return common.EncodeBytesToBase58(pk.SerializeCompressed()), nil
}

func (Secp256k1Verifier) Verify(pubKey, sigHash, sig []byte) bool {
	pk, err := secp256k1.ParsePubKey(pubKey)
	if err != nil {
		return false
	}
	parsed, err := ecdsa.ParseDERSignature(sig)
	if err != nil {
		return false
	}
	return parsed.Verify(sigHash, pk)
}
