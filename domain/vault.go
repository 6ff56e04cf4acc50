package domain

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/pbkdf2"

	"github.com/linlinbupt123-crypto/crypto_core/chain"
	"github.com/linlinbupt123-crypto/crypto_core/entity"
	wrapErrors "github.com/linlinbupt123-crypto/crypto_core/errors"
	"github.com/linlinbupt123-crypto/crypto_core/utils"
)

// NOTE:
// - KDF metadata is encoded into SaltHex as: "pbkdf2$<iterations>$<hexsalt>"
//   so an envelope can be opened without out-of-band parameters.
// - AES-256-GCM with a key from PBKDF2-SHA256; the stored public key is
//   compared after decryption so a wrong network is caught too.

const (
	kdfLabel      = "pbkdf2"
	kdfIterations = 310_000
	kdfSaltSize   = 16

	// envelopes are opened with caller supplied metadata
	kdfMaxIterations = kdfIterations
	kdfMaxSaltSize   = 64
)

// deriveKey derives a 32-byte AES key from passphrase+salt using PBKDF2-SHA256.
// The caller must clear it after use.
func deriveKey(passphrase string, salt []byte, iterations int) []byte {
	return pbkdf2.Key([]byte(passphrase), salt, iterations, 32, sha256.New)
}

// encrypt uses AES-256-GCM and returns nonce|ciphertext
func encrypt(r io.Reader, data []byte, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(r, nonce); err != nil {
		return nil, wrapErrors.WrapWithCode(wrapErrors.InsufficientEntropy, "encrypt", err)
	}
	return gcm.Seal(nonce, nonce, data, nil), nil
}

// decrypt expects input nonce|ciphertext
func decrypt(ciphertext []byte, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	nonceSize := gcm.NonceSize()
	if len(ciphertext) < nonceSize+gcm.Overhead() {
		return nil, wrapErrors.Newf(wrapErrors.InvalidCiphertext, "decrypt", "ciphertext too short")
	}
	plain, err := gcm.Open(nil, ciphertext[:nonceSize], ciphertext[nonceSize:], nil)
	if err != nil {
		// the cause is not returned; it only says authentication failed
		return nil, wrapErrors.Newf(wrapErrors.DecryptionFailed, "decrypt", "incorrect passphrase or corrupted data")
	}
	return plain, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, wrapErrors.WrapWithCode(wrapErrors.InvalidKeyLength, "new cipher", err)
	}
	return cipher.NewGCM(block)
}

// encodeSaltMeta packs algorithm, iterations and salt into a single string.
// Format: "<kdfLabel>$<iterations>$<hex-salt>"
func encodeSaltMeta(salt []byte, iterations int) string {
	return fmt.Sprintf("%s$%d$%s", kdfLabel, iterations, hex.EncodeToString(salt))
}

// decodeSaltMeta parses the SaltHex format and returns (salt, iterations, error)
func decodeSaltMeta(meta string) ([]byte, int, error) {
	const op = "decode salt metadata"
	parts := strings.Split(meta, "$")
	if len(parts) != 3 {
		return nil, 0, wrapErrors.Newf(wrapErrors.InvalidCiphertext, op, "invalid salt metadata format")
	}
	if parts[0] != kdfLabel {
		return nil, 0, wrapErrors.Newf(wrapErrors.InvalidCiphertext, op, "unsupported kdf %q", parts[0])
	}
	iter, err := strconv.Atoi(parts[1])
	if err != nil || iter <= 0 {
		return nil, 0, wrapErrors.Newf(wrapErrors.InvalidCiphertext, op, "invalid kdf iterations")
	}
	if iter > kdfMaxIterations {
		return nil, 0, wrapErrors.Newf(wrapErrors.InvalidCiphertext, op, "kdf iterations %d exceed %d", iter, kdfMaxIterations)
	}
	if len(parts[2]) > 2*kdfMaxSaltSize {
		return nil, 0, wrapErrors.Newf(wrapErrors.InvalidCiphertext, op, "salt longer than %d bytes", kdfMaxSaltSize)
	}
	salt, err := hex.DecodeString(parts[2])
	if err != nil {
		return nil, 0, wrapErrors.WrapWithCode(wrapErrors.InvalidHex, op, err)
	}
	if len(salt) < kdfSaltSize {
		return nil, 0, wrapErrors.Newf(wrapErrors.InvalidCiphertext, op, "salt shorter than %d bytes", kdfSaltSize)
	}
	return salt, iter, nil
}

// SealKeyPair encrypts the private key of kp under passphrase.
func SealKeyPair(kp *KeyPair, passphrase string) (*entity.KeyEnvelope, error) {
	return sealKeyPair(rand.Reader, kp, passphrase, kdfIterations)
}

func sealKeyPair(r io.Reader, kp *KeyPair, passphrase string, iterations int) (*entity.KeyEnvelope, error) {
	if kp.private.Zeroized() {
		return nil, wrapErrors.Newf(wrapErrors.KeyZeroized, "seal key pair", "key pair is zeroized")
	}
	salt := make([]byte, kdfSaltSize)
	if _, err := io.ReadFull(r, salt); err != nil {
		return nil, wrapErrors.WrapWithCode(wrapErrors.InsufficientEntropy, "seal key pair", err)
	}

	key := deriveKey(passphrase, salt, iterations)
	defer utils.ClearBytes(key)

	encKey, err := encrypt(r, kp.private.key[:], key)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt private key: %w", err)
	}

	return &entity.KeyEnvelope{
		Network:      kp.network.String(),
		PublicKey:    kp.public.String(),
		EncryptedKey: encKey,
		SaltHex:      encodeSaltMeta(salt, iterations),
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// OpenKeyEnvelope decrypts env and rebuilds the key pair. A wrong passphrase
// fails with DecryptionFailed.
func OpenKeyEnvelope(env *entity.KeyEnvelope, passphrase string) (*KeyPair, error) {
	const op = "open key envelope"
	if env == nil {
		return nil, wrapErrors.Newf(wrapErrors.InvalidCiphertext, op, "envelope is nil")
	}
	network, err := chain.ParseNetwork(env.Network)
	if err != nil {
		return nil, err
	}
	want, err := PublicKeyFromHex(env.PublicKey)
	if err != nil {
		return nil, err
	}
	salt, iterations, err := decodeSaltMeta(env.SaltHex)
	if err != nil {
		return nil, err
	}

	key := deriveKey(passphrase, salt, iterations)
	defer utils.ClearBytes(key)

	private, err := decrypt(env.EncryptedKey, key)
	if err != nil {
		return nil, err
	}
	defer utils.ClearBytes(private)

	kp, err := KeyPairFromPrivateBytes(private, network)
	if err != nil {
		return nil, err
	}
	if kp.public != want {
		kp.Zeroize()
		return nil, wrapErrors.Newf(wrapErrors.DecryptionFailed, op, "public key mismatch")
	}
	return kp, nil
}
