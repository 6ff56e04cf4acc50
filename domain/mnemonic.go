package domain

import (
	"strings"

	bip39 "github.com/tyler-smith/go-bip39"

	"github.com/linlinbupt123-crypto/crypto_core/chain"
	wrapErrors "github.com/linlinbupt123-crypto/crypto_core/errors"
	"github.com/linlinbupt123-crypto/crypto_core/utils"
)

// DefaultEntropyBits gives a 24 word mnemonic.
const DefaultEntropyBits = 256

// ValidEntropyBits reports whether bits is a BIP39 entropy size: a multiple
// of 32 between 128 and 256.
func ValidEntropyBits(bits int) bool {
	return bits >= 128 && bits <= 256 && bits%32 == 0
}

// NewMnemonic returns an English BIP39 phrase backed by bits of entropy.
// bits must satisfy ValidEntropyBits.
func NewMnemonic(bits int) (string, error) {
	const op = "new mnemonic"
	if !ValidEntropyBits(bits) {
		return "", wrapErrors.Newf(wrapErrors.InvalidMnemonic, op, "unsupported entropy size %d", bits)
	}
	entropy, err := bip39.NewEntropy(bits)
	if err != nil {
		return "", wrapErrors.WrapWithCode(wrapErrors.InsufficientEntropy, op, err)
	}
	defer utils.ClearBytes(entropy)

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", wrapErrors.WrapWithCode(wrapErrors.InvalidMnemonic, op, err)
	}
	return mnemonic, nil
}

// SeedFromMnemonic runs the BIP39 PBKDF2 step. The caller must clear the
// returned seed.
func SeedFromMnemonic(mnemonic, passphrase string) ([]byte, error) {
	seed, err := bip39.NewSeedWithErrorChecking(normalizeMnemonic(mnemonic), passphrase)
	if err != nil {
		return nil, wrapErrors.WrapWithCode(wrapErrors.InvalidMnemonic, "seed from mnemonic", err)
	}
	return seed, nil
}

// KeyPairFromMnemonic uses the first 32 bytes of the BIP39 seed as the
// private key, without HD derivation. Wallets that predate SLIP-10 paths
// recover keys this way.
func KeyPairFromMnemonic(mnemonic, passphrase string, network chain.Network) (*KeyPair, error) {
	seed, err := SeedFromMnemonic(mnemonic, passphrase)
	if err != nil {
		return nil, err
	}
	defer utils.ClearBytes(seed)
	return KeyPairFromPrivateBytes(seed[:KeySize], network)
}

func normalizeMnemonic(mnemonic string) string {
	return strings.Join(strings.Fields(strings.ToLower(mnemonic)), " ")
}
