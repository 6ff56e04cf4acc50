package domain

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"

	"github.com/linlinbupt123-crypto/crypto_core/chain"
	wrapErrors "github.com/linlinbupt123-crypto/crypto_core/errors"
	"github.com/linlinbupt123-crypto/crypto_core/utils"
)

// NOTE:
// - Derivation follows SLIP-0010 for ed25519: only hardened children exist,
//   so every path segment must carry a ' or h marker.
// - The derived 32 bytes are used as raw private key bytes; the network's
//   hash strategy expands them like any other private key.
// - hdkeychain supplies only HardenedKeyStart and the BIP32 seed bounds
//   (MinSeedBytes..MaxSeedBytes); its secp256k1 child derivation cannot
//   produce ed25519 keys and is not used.

const slip10Curve = "ed25519 seed"

// DerivationPath is a list of hardened child indexes.
type DerivationPath []uint32

// ParseDerivationPath accepts "m/44'/4343'/0'/0'/0'", "44h/4343h/0h" or "m"
// for the master key.
func ParseDerivationPath(path string) (DerivationPath, error) {
	const op = "parse derivation path"
	p := strings.TrimSpace(path)
	if p == "m" || p == "M" {
		return DerivationPath{}, nil
	}
	if strings.HasPrefix(p, "m/") || strings.HasPrefix(p, "M/") {
		p = p[2:]
	}
	if p == "" {
		return nil, wrapErrors.Newf(wrapErrors.InvalidDerivationPath, op, "empty derivation path")
	}
	parts := strings.Split(p, "/")
	indices := make(DerivationPath, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			return nil, wrapErrors.Newf(wrapErrors.InvalidDerivationPath, op, "empty segment in %q", path)
		}
		hardened := strings.HasSuffix(part, "'") || strings.HasSuffix(part, "h") || strings.HasSuffix(part, "H")
		if !hardened {
			return nil, wrapErrors.Newf(wrapErrors.InvalidDerivationPath, op, "segment %q is not hardened", part)
		}
		part = part[:len(part)-1]
		v, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return nil, wrapErrors.WrapWithCode(wrapErrors.InvalidDerivationPath, op, err)
		}
		if v >= hdkeychain.HardenedKeyStart {
			return nil, wrapErrors.Newf(wrapErrors.InvalidDerivationPath, op, "index %d out of range", v)
		}
		indices = append(indices, uint32(v)+hdkeychain.HardenedKeyStart)
	}
	return indices, nil
}

// Validate reports whether every index is hardened.
func (p DerivationPath) Validate() error {
	for i, idx := range p {
		if idx < hdkeychain.HardenedKeyStart {
			return wrapErrors.Newf(wrapErrors.InvalidDerivationPath, "validate derivation path", "segment %d (%d) is not hardened", i, idx)
		}
	}
	return nil
}

func (p DerivationPath) String() string {
	var b strings.Builder
	b.WriteString("m")
	for _, idx := range p {
		b.WriteByte('/')
		if idx >= hdkeychain.HardenedKeyStart {
			b.WriteString(strconv.FormatUint(uint64(idx-hdkeychain.HardenedKeyStart), 10))
			b.WriteByte('\'')
		} else {
			b.WriteString(strconv.FormatUint(uint64(idx), 10))
		}
	}
	return b.String()
}

// SeedToKeyPair derives the key at path from seed and binds it to network.
// The same seed and path always give the same key pair.
func SeedToKeyPair(seed []byte, path DerivationPath, network chain.Network) (*KeyPair, error) {
	const op = "seed to key pair"
	if len(seed) < hdkeychain.MinSeedBytes || len(seed) > hdkeychain.MaxSeedBytes {
		return nil, wrapErrors.Newf(wrapErrors.InvalidSeedLength, op, "seed must be %d..%d bytes, got %d",
			hdkeychain.MinSeedBytes, hdkeychain.MaxSeedBytes, len(seed))
	}
	if err := path.Validate(); err != nil {
		return nil, err
	}

	key, chainCode := slip10Master(seed)
	defer func() {
		utils.ClearBytes(key)
		utils.ClearBytes(chainCode)
	}()
	for _, idx := range path {
		nextKey, nextChainCode := slip10Child(key, chainCode, idx)
		utils.ClearBytes(key)
		utils.ClearBytes(chainCode)
		key, chainCode = nextKey, nextChainCode
	}

	return KeyPairFromPrivateBytes(key, network)
}

func slip10Master(seed []byte) ([]byte, []byte) {
	mac := hmac.New(sha512.New, []byte(slip10Curve))
	mac.Write(seed)
	sum := mac.Sum(nil)
	return sum[:32], sum[32:]
}

func slip10Child(key, chainCode []byte, index uint32) ([]byte, []byte) {
	data := make([]byte, 1+len(key)+4)
	defer utils.ClearBytes(data)
	copy(data[1:], key)
	binary.BigEndian.PutUint32(data[1+len(key):], index)

	mac := hmac.New(sha512.New, chainCode)
	mac.Write(data)
	sum := mac.Sum(nil)
	return sum[:32], sum[32:]
}
