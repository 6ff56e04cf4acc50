package domain

import (
	"crypto/subtle"

	"filippo.io/edwards25519"

	"github.com/linlinbupt123-crypto/crypto_core/chain"
	wrapErrors "github.com/linlinbupt123-crypto/crypto_core/errors"
	"github.com/linlinbupt123-crypto/crypto_core/utils"
)

// Sign produces a deterministic signature over message:
//
//	r = H(expanded[32:] || message) mod L
//	R = r·B
//	k = H(R || A || message) mod L
//	S = r + k·a mod L
//
// where H is the signing hash of the key pair's network.
func (kp *KeyPair) Sign(message []byte) Signature {
	if kp.private.Zeroized() {
		panic("domain: sign with zeroized key pair")
	}
	strategy := kp.network.Strategy()

	a, expanded := signingScalar(kp.private, strategy)
	defer zeroScalar(a)
	defer utils.ClearBytes(expanded[:])

	nonce := strategy.SigningHash(expanded[32:], message)
	defer utils.ClearBytes(nonce[:])
	r := mustUniformScalar(nonce)
	defer zeroScalar(r)

	R := new(edwards25519.Point).ScalarBaseMult(r).Bytes()
	k := challenge(strategy, R, kp.public[:], message)
	S := new(edwards25519.Scalar).MultiplyAdd(k, a, r)

	var sig Signature
	copy(sig[:32], R)
	copy(sig[32:], S.Bytes())
	return sig
}

func Sign(kp *KeyPair, message []byte) Signature {
	return kp.Sign(message)
}

// Verify checks sig against the key pair's own public key and network.
func (kp *KeyPair) Verify(message []byte, sig Signature) error {
	return Verify(kp.public, message, sig, kp.network.Strategy())
}

// Verify returns nil on success, InvalidSignatureEncoding for a malformed
// signature, InvalidPublicKey for an invalid key and SignatureMismatch when
// a well-formed signature does not match.
func Verify(pub PublicKey, message []byte, sig Signature, strategy chain.HashStrategy) error {
	if strategy == nil {
		return wrapErrors.Newf(wrapErrors.InvalidNetwork, "verify", "nil hash strategy")
	}
	_, S, err := sig.components()
	if err != nil {
		return err
	}
	A, err := pub.point()
	if err != nil {
		return err
	}

	k := challenge(strategy, sig[:32], pub[:], message)
	minusA := new(edwards25519.Point).Negate(A)
	check := new(edwards25519.Point).VarTimeDoubleScalarBaseMult(k, minusA, S)

	if subtle.ConstantTimeCompare(check.Bytes(), sig[:32]) != 1 {
		return wrapErrors.ErrSignatureMismatch
	}
	return nil
}

func challenge(strategy chain.HashStrategy, R, A, message []byte) *edwards25519.Scalar {
	return mustUniformScalar(strategy.SigningHash(R, A, message))
}

func mustUniformScalar(digest [64]byte) *edwards25519.Scalar {
	s, err := new(edwards25519.Scalar).SetUniformBytes(digest[:])
	if err != nil {
		// unreachable: the input is always 64 bytes
		panic(err)
	}
	return s
}
