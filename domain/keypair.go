package domain

import (
	"crypto/rand"
	"encoding/hex"
	"io"
	"strings"

	"filippo.io/edwards25519"

	"github.com/linlinbupt123-crypto/crypto_core/chain"
	wrapErrors "github.com/linlinbupt123-crypto/crypto_core/errors"
	"github.com/linlinbupt123-crypto/crypto_core/utils"
)

// KeyPair owns a private key and the public key derived from it under the
// hash strategy of its network. The same private bytes yield different
// public keys on NIS1 and Symbol networks.
//
// Sign and Verify are safe for concurrent use. Zeroize must not race with
// them; callers release a key pair with `defer kp.Zeroize()` once done.
type KeyPair struct {
	private *PrivateKey
	public  PublicKey
	network chain.Network
}

// GenerateKeyPair draws a fresh private key from crypto/rand.
func GenerateKeyPair(network chain.Network) (*KeyPair, error) {
	return GenerateKeyPairFrom(rand.Reader, network)
}

// GenerateKeyPairFrom draws the private key from r. A failing reader is
// reported as InsufficientEntropy and is not retried.
func GenerateKeyPairFrom(r io.Reader, network chain.Network) (*KeyPair, error) {
	if !network.Valid() {
		return nil, wrapErrors.Newf(wrapErrors.InvalidNetwork, "generate key pair", "unknown network %d", uint8(network))
	}
	var buf [KeySize]byte
	defer utils.ClearBytes(buf[:])
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, wrapErrors.WrapWithCode(wrapErrors.InsufficientEntropy, "generate key pair", err)
	}
	return KeyPairFromPrivateBytes(buf[:], network)
}

func KeyPairFromPrivateBytes(b []byte, network chain.Network) (*KeyPair, error) {
	if len(b) != KeySize {
		return nil, wrapErrors.Newf(wrapErrors.InvalidKeyLength, "key pair from private bytes", "expected %d bytes, got %d", KeySize, len(b))
	}
	if !network.Valid() {
		return nil, wrapErrors.Newf(wrapErrors.InvalidNetwork, "key pair from private bytes", "unknown network %d", uint8(network))
	}
	private := newPrivateKey(b)
	return &KeyPair{
		private: private,
		public:  derivePublicKey(private, network.Strategy()),
		network: network,
	}, nil
}

// KeyPairFromHex accepts the 64 character hex form of a private key.
func KeyPairFromHex(s string, network chain.Network) (*KeyPair, error) {
	b, err := hex.DecodeString(strings.TrimSpace(s))
	defer utils.ClearBytes(b)
	if err != nil {
		return nil, wrapErrors.WrapWithCode(wrapErrors.InvalidHex, "key pair from hex", err)
	}
	return KeyPairFromPrivateBytes(b, network)
}

func (kp *KeyPair) PublicKey() PublicKey { return kp.public }

func (kp *KeyPair) Network() chain.Network { return kp.network }

// PrivateKey exposes the owned key for explicit export. The key pair keeps
// ownership; Zeroize on either clears both.
func (kp *KeyPair) PrivateKey() *PrivateKey { return kp.private }

func (kp *KeyPair) Zeroize() {
	kp.private.Zeroize()
}

func (kp *KeyPair) String() string {
	return "KeyPair(" + kp.network.String() + ", " + kp.public.String() + ")"
}

func (kp *KeyPair) GoString() string { return kp.String() }

// signingScalar expands the private key and clamps the first half. The
// caller must zeroize both return values.
func signingScalar(private *PrivateKey, strategy chain.HashStrategy) (*edwards25519.Scalar, [64]byte) {
	expanded := strategy.ExpandKey(private.key)
	a, err := new(edwards25519.Scalar).SetBytesWithClamping(expanded[:32])
	if err != nil {
		// unreachable: the input is always 32 bytes
		panic(err)
	}
	return a, expanded
}

func derivePublicKey(private *PrivateKey, strategy chain.HashStrategy) PublicKey {
	a, expanded := signingScalar(private, strategy)
	defer zeroScalar(a)
	defer utils.ClearBytes(expanded[:])

	var pub PublicKey
	copy(pub[:], new(edwards25519.Point).ScalarBaseMult(a).Bytes())
	return pub
}

func zeroScalar(s *edwards25519.Scalar) {
	s.Set(edwards25519.NewScalar())
}
