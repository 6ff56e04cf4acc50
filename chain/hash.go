package chain

import (
	"crypto/sha512"

	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/sha3"
)

// HashStrategy is the network specific hash discipline. Hash and HashParts
// produce the 256-bit digest used for addresses; ExpandKey and SigningHash
// produce the 512-bit digests used by the EdDSA variant.
type HashStrategy interface {
	Name() string
	Hash(data []byte) []byte
	// HashParts hashes the concatenation of parts without joining them.
	HashParts(parts ...[]byte) []byte
	// ExpandKey returns the 64-byte expansion of a private key: the first
	// half is clamped into the signing scalar, the second half seeds nonces.
	ExpandKey(privateKey [32]byte) [64]byte
	SigningHash(parts ...[]byte) [64]byte
}

var (
	// Keccak is the legacy NIS1 strategy: Keccak-256 / Keccak-512 with the
	// original (pre-FIPS) padding.
	Keccak HashStrategy = keccakStrategy{}
	// SHA3 is the Symbol strategy: FIPS-202 SHA3-256 for addresses and
	// SHA-512 for signing.
	SHA3 HashStrategy = sha3Strategy{}
)

type keccakStrategy struct{}

func (keccakStrategy) Name() string { return "keccak-256" }

func (keccakStrategy) Hash(data []byte) []byte {
	return crypto.Keccak256(data)
}

func (keccakStrategy) HashParts(parts ...[]byte) []byte {
	return crypto.Keccak256(parts...)
}

// ExpandKey hashes the private key in reversed byte order, as NIS1 stores
// keys big-endian.
func (s keccakStrategy) ExpandKey(privateKey [32]byte) [64]byte {
	var reversed [32]byte
	for i := range privateKey {
		reversed[i] = privateKey[31-i]
	}
	out := s.SigningHash(reversed[:])
	clear(reversed[:])
	return out
}

func (keccakStrategy) SigningHash(parts ...[]byte) [64]byte {
	h := sha3.NewLegacyKeccak512()
	for _, p := range parts {
		h.Write(p)
	}
	var out [64]byte
	h.Sum(out[:0])
	return out
}

type sha3Strategy struct{}

func (sha3Strategy) Name() string { return "sha3-256" }

func (sha3Strategy) Hash(data []byte) []byte {
	sum := sha3.Sum256(data)
	return sum[:]
}

func (sha3Strategy) HashParts(parts ...[]byte) []byte {
	h := sha3.New256()
	for _, p := range parts {
		h.Write(p)
	}
	return h.Sum(nil)
}

func (sha3Strategy) ExpandKey(privateKey [32]byte) [64]byte {
	return sha512.Sum512(privateKey[:])
}

func (sha3Strategy) SigningHash(parts ...[]byte) [64]byte {
	h := sha512.New()
	for _, p := range parts {
		h.Write(p)
	}
	var out [64]byte
	h.Sum(out[:0])
	return out
}
