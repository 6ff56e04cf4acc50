package domain

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"io"

	"filippo.io/edwards25519"
	"golang.org/x/crypto/hkdf"

	"github.com/linlinbupt123-crypto/crypto_core/chain"
	wrapErrors "github.com/linlinbupt123-crypto/crypto_core/errors"
	"github.com/linlinbupt123-crypto/crypto_core/utils"
)

// Wire layouts:
//
//	Symbol: tag(16) | iv(12) | AES-256-GCM ciphertext
//	NIS1:   salt(32) | iv(16) | AES-256-CBC ciphertext, PKCS#7 padded
const (
	gcmTagSize  = 16
	gcmIVSize   = 12
	cbcIVSize   = aes.BlockSize
	nis1SaltLen = 32
)

var hkdfInfo = []byte("catapult")

// EncryptMessage encrypts msg for recipient with a key agreed between the
// sender's private key and the recipient's public key. The scheme follows
// the sender's network family.
func EncryptMessage(sender *KeyPair, recipient PublicKey, msg []byte) ([]byte, error) {
	return encryptMessage(rand.Reader, sender, recipient, msg)
}

// DecryptMessage reverses EncryptMessage on the recipient side.
func DecryptMessage(recipient *KeyPair, sender PublicKey, enc []byte) ([]byte, error) {
	switch recipient.network.Family() {
	case chain.FamilySymbol:
		return decryptSymbol(recipient, sender, enc)
	default:
		return decryptNIS1(recipient, sender, enc)
	}
}

func encryptMessage(r io.Reader, sender *KeyPair, recipient PublicKey, msg []byte) ([]byte, error) {
	switch sender.network.Family() {
	case chain.FamilySymbol:
		return encryptSymbol(r, sender, recipient, msg)
	default:
		return encryptNIS1(r, sender, recipient, msg)
	}
}

// sharedSecret is the compressed point a·P, with a the clamped signing
// scalar of own and P the peer's public key.
func sharedSecret(own *KeyPair, peer PublicKey) ([]byte, error) {
	if own.private.Zeroized() {
		return nil, wrapErrors.Newf(wrapErrors.KeyZeroized, "shared secret", "key pair is zeroized")
	}
	P, err := peer.point()
	if err != nil {
		return nil, err
	}
	a, expanded := signingScalar(own.private, own.network.Strategy())
	defer zeroScalar(a)
	defer utils.ClearBytes(expanded[:])

	return new(edwards25519.Point).ScalarMult(a, P).Bytes(), nil
}

func symbolKey(own *KeyPair, peer PublicKey) ([]byte, error) {
	secret, err := sharedSecret(own, peer)
	if err != nil {
		return nil, err
	}
	defer utils.ClearBytes(secret)

	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, hkdfInfo), key); err != nil {
		return nil, err
	}
	return key, nil
}

func encryptSymbol(r io.Reader, sender *KeyPair, recipient PublicKey, msg []byte) ([]byte, error) {
	key, err := symbolKey(sender, recipient)
	if err != nil {
		return nil, err
	}
	defer utils.ClearBytes(key)

	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	iv := make([]byte, gcmIVSize)
	if _, err := io.ReadFull(r, iv); err != nil {
		return nil, wrapErrors.WrapWithCode(wrapErrors.InsufficientEntropy, "encrypt message", err)
	}
	sealed := gcm.Seal(nil, iv, msg, nil)
	ct, tag := sealed[:len(sealed)-gcmTagSize], sealed[len(sealed)-gcmTagSize:]

	out := make([]byte, 0, gcmTagSize+gcmIVSize+len(ct))
	out = append(out, tag...)
	out = append(out, iv...)
	return append(out, ct...), nil
}

func decryptSymbol(recipient *KeyPair, sender PublicKey, enc []byte) ([]byte, error) {
	const op = "decrypt message"
	if len(enc) < gcmTagSize+gcmIVSize {
		return nil, wrapErrors.Newf(wrapErrors.InvalidCiphertext, op, "message too short: %d bytes", len(enc))
	}
	key, err := symbolKey(recipient, sender)
	if err != nil {
		return nil, err
	}
	defer utils.ClearBytes(key)

	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	tag, iv, ct := enc[:gcmTagSize], enc[gcmTagSize:gcmTagSize+gcmIVSize], enc[gcmTagSize+gcmIVSize:]
	sealed := make([]byte, 0, len(ct)+gcmTagSize)
	sealed = append(sealed, ct...)
	sealed = append(sealed, tag...)

	plain, err := gcm.Open(nil, iv, sealed, nil)
	if err != nil {
		return nil, wrapErrors.WrapWithCode(wrapErrors.DecryptionFailed, op, err)
	}
	return plain, nil
}

func nis1Key(own *KeyPair, peer PublicKey, salt []byte) ([]byte, error) {
	secret, err := sharedSecret(own, peer)
	if err != nil {
		return nil, err
	}
	defer utils.ClearBytes(secret)
	for i := range secret {
		secret[i] ^= salt[i]
	}
	return chain.Keccak.Hash(secret), nil
}

func encryptNIS1(r io.Reader, sender *KeyPair, recipient PublicKey, msg []byte) ([]byte, error) {
	head := make([]byte, nis1SaltLen+cbcIVSize)
	if _, err := io.ReadFull(r, head); err != nil {
		return nil, wrapErrors.WrapWithCode(wrapErrors.InsufficientEntropy, "encrypt message", err)
	}
	salt, iv := head[:nis1SaltLen], head[nis1SaltLen:]

	key, err := nis1Key(sender, recipient, salt)
	if err != nil {
		return nil, err
	}
	defer utils.ClearBytes(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	padded := pkcs7Pad(msg, aes.BlockSize)
	defer utils.ClearBytes(padded)

	out := make([]byte, len(head)+len(padded))
	copy(out, head)
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out[len(head):], padded)
	return out, nil
}

func decryptNIS1(recipient *KeyPair, sender PublicKey, enc []byte) ([]byte, error) {
	const op = "decrypt message"
	body := len(enc) - nis1SaltLen - cbcIVSize
	if body < aes.BlockSize || body%aes.BlockSize != 0 {
		return nil, wrapErrors.Newf(wrapErrors.InvalidCiphertext, op, "malformed message of %d bytes", len(enc))
	}
	salt, iv, ct := enc[:nis1SaltLen], enc[nis1SaltLen:nis1SaltLen+cbcIVSize], enc[nis1SaltLen+cbcIVSize:]

	key, err := nis1Key(recipient, sender, salt)
	if err != nil {
		return nil, err
	}
	defer utils.ClearBytes(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	plain := make([]byte, len(ct))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, ct)

	out, ok := pkcs7Unpad(plain, aes.BlockSize)
	if !ok {
		utils.ClearBytes(plain)
		return nil, wrapErrors.Newf(wrapErrors.DecryptionFailed, op, "invalid padding")
	}
	return out, nil
}

func pkcs7Pad(b []byte, blockSize int) []byte {
	n := blockSize - len(b)%blockSize
	return append(bytes.Clone(b), bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(b []byte, blockSize int) ([]byte, bool) {
	if len(b) == 0 || len(b)%blockSize != 0 {
		return nil, false
	}
	n := int(b[len(b)-1])
	if n == 0 || n > blockSize {
		return nil, false
	}
	for _, c := range b[len(b)-n:] {
		if int(c) != n {
			return nil, false
		}
	}
	return b[:len(b)-n], true
}
