package domain

import (
	"encoding/hex"
	"fmt"
	"runtime"
	"strings"

	"filippo.io/edwards25519"

	wrapErrors "github.com/linlinbupt123-crypto/crypto_core/errors"
)

const (
	KeySize       = 32
	SignatureSize = 64
)

// PrivateKey holds 32 raw secret bytes. It never formats or marshals its
// contents; use Hex when an export is explicitly requested.
type PrivateKey struct {
	key      [KeySize]byte
	zeroized bool
}

func newPrivateKey(b []byte) *PrivateKey {
	pk := &PrivateKey{}
	copy(pk.key[:], b)
	runtime.SetFinalizer(pk, (*PrivateKey).Zeroize)
	return pk
}

// Zeroize overwrites the key bytes. The key is unusable afterwards.
func (pk *PrivateKey) Zeroize() {
	if pk == nil {
		return
	}
	clear(pk.key[:])
	pk.zeroized = true
}

func (pk *PrivateKey) Zeroized() bool { return pk == nil || pk.zeroized }

// Hex exports the key as 64 upper-case hex characters.
func (pk *PrivateKey) Hex() string {
	return strings.ToUpper(hex.EncodeToString(pk.key[:]))
}

func (pk *PrivateKey) String() string   { return "PrivateKey(REDACTED)" }
func (pk *PrivateKey) GoString() string { return pk.String() }

// Format keeps %x, %v and friends from printing key material.
func (pk *PrivateKey) Format(f fmt.State, _ rune) {
	_, _ = f.Write([]byte(pk.String()))
}

func (pk *PrivateKey) MarshalJSON() ([]byte, error) {
	return nil, fmt.Errorf("domain: private keys are not serializable")
}

func (pk *PrivateKey) MarshalText() ([]byte, error) {
	return nil, fmt.Errorf("domain: private keys are not serializable")
}

// PublicKey is a compressed Edwards point. Values built through
// PublicKeyFromBytes or derived from a private key are always valid.
type PublicKey [KeySize]byte

func PublicKeyFromBytes(b []byte) (PublicKey, error) {
	var pub PublicKey
	if len(b) != KeySize {
		return pub, wrapErrors.Newf(wrapErrors.InvalidKeyLength, "parse public key", "expected %d bytes, got %d", KeySize, len(b))
	}
	copy(pub[:], b)
	if _, err := pub.point(); err != nil {
		return PublicKey{}, err
	}
	return pub, nil
}

func PublicKeyFromHex(s string) (PublicKey, error) {
	b, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return PublicKey{}, wrapErrors.WrapWithCode(wrapErrors.InvalidHex, "parse public key", err)
	}
	return PublicKeyFromBytes(b)
}

// point decodes the key, rejecting non-canonical encodings and points of
// small order.
func (pub PublicKey) point() (*edwards25519.Point, error) {
	p, err := new(edwards25519.Point).SetBytes(pub[:])
	if err != nil {
		return nil, wrapErrors.WrapWithCode(wrapErrors.InvalidPublicKey, "decode point", err)
	}
	if string(p.Bytes()) != string(pub[:]) {
		return nil, wrapErrors.Newf(wrapErrors.InvalidPublicKey, "decode point", "non-canonical encoding")
	}
	if new(edwards25519.Point).MultByCofactor(p).Equal(edwards25519.NewIdentityPoint()) == 1 {
		return nil, wrapErrors.Newf(wrapErrors.InvalidPublicKey, "decode point", "small order point")
	}
	return p, nil
}

func (pub PublicKey) Bytes() []byte {
	out := make([]byte, KeySize)
	copy(out, pub[:])
	return out
}

func (pub PublicKey) String() string {
	return strings.ToUpper(hex.EncodeToString(pub[:]))
}

func (pub PublicKey) MarshalText() ([]byte, error) {
	return []byte(pub.String()), nil
}

func (pub *PublicKey) UnmarshalText(text []byte) error {
	parsed, err := PublicKeyFromHex(string(text))
	if err != nil {
		return err
	}
	*pub = parsed
	return nil
}

// Signature is R || S, 32 bytes each.
type Signature [SignatureSize]byte

// ParseSignature requires S to be a canonical scalar and R a canonical
// point encoding.
func ParseSignature(b []byte) (Signature, error) {
	var sig Signature
	if len(b) != SignatureSize {
		return sig, wrapErrors.Newf(wrapErrors.InvalidSignatureEncoding, "parse signature", "expected %d bytes, got %d", SignatureSize, len(b))
	}
	copy(sig[:], b)
	if _, _, err := sig.components(); err != nil {
		return Signature{}, err
	}
	return sig, nil
}

func ParseSignatureHex(s string) (Signature, error) {
	b, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return Signature{}, wrapErrors.WrapWithCode(wrapErrors.InvalidHex, "parse signature", err)
	}
	return ParseSignature(b)
}

func (sig Signature) components() (*edwards25519.Point, *edwards25519.Scalar, error) {
	R, err := new(edwards25519.Point).SetBytes(sig[:32])
	if err != nil {
		return nil, nil, wrapErrors.WrapWithCode(wrapErrors.InvalidSignatureEncoding, "decode R", err)
	}
	if string(R.Bytes()) != string(sig[:32]) {
		return nil, nil, wrapErrors.Newf(wrapErrors.InvalidSignatureEncoding, "decode R", "non-canonical encoding")
	}
	S, err := new(edwards25519.Scalar).SetCanonicalBytes(sig[32:])
	if err != nil {
		return nil, nil, wrapErrors.WrapWithCode(wrapErrors.InvalidSignatureEncoding, "decode S", err)
	}
	return R, S, nil
}

func (sig Signature) R() []byte { return append([]byte(nil), sig[:32]...) }
func (sig Signature) S() []byte { return append([]byte(nil), sig[32:]...) }

func (sig Signature) Bytes() []byte { return append([]byte(nil), sig[:]...) }

func (sig Signature) String() string {
	return strings.ToUpper(hex.EncodeToString(sig[:]))
}

func (sig Signature) MarshalText() ([]byte, error) {
	return []byte(sig.String()), nil
}

func (sig *Signature) UnmarshalText(text []byte) error {
	parsed, err := ParseSignatureHex(string(text))
	if err != nil {
		return err
	}
	*sig = parsed
	return nil
}
