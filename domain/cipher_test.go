package domain

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linlinbupt123-crypto/crypto_core/chain"
	wrapErrors "github.com/linlinbupt123-crypto/crypto_core/errors"
)

const otherPrivateKey = "5b0e3fa5d3b49a79022d7c1e121ba1cbbf4db5821f47ab8c708ef88defc29bfe"

func cipherPair(t *testing.T, network chain.Network) (*KeyPair, *KeyPair) {
	t.Helper()
	sender, err := KeyPairFromHex(testPrivateKey, network)
	require.NoError(t, err)
	recipient, err := KeyPairFromHex(otherPrivateKey, network)
	require.NoError(t, err)
	return sender, recipient
}

func TestSharedKeys(t *testing.T) {
	t.Run("symbol hkdf", func(t *testing.T) {
		sender, recipient := cipherPair(t, chain.SymbolMainNet)

		secret, err := sharedSecret(sender, recipient.PublicKey())
		require.NoError(t, err)
		assert.Equal(t, "98c836f033d364110f357363951f5930316c9ef1c4c016e77aee42fc6adc6845", hex.EncodeToString(secret))

		key, err := symbolKey(sender, recipient.PublicKey())
		require.NoError(t, err)
		assert.Equal(t, "ef5d8c6def05a17d5893781b0a33c19d75dc8190f5b2f6a49548f8ff9f0c8d34", hex.EncodeToString(key))

		mirrored, err := symbolKey(recipient, sender.PublicKey())
		require.NoError(t, err)
		assert.Equal(t, key, mirrored)
	})

	t.Run("nis1 salted keccak", func(t *testing.T) {
		sender, recipient := cipherPair(t, chain.NIS1MainNet)

		secret, err := sharedSecret(recipient, sender.PublicKey())
		require.NoError(t, err)
		assert.Equal(t, "c9618ec2489ed037a61a2682392e9002b1dac1ebefc4ffa4e0a77c277b47d49b", hex.EncodeToString(secret))

		key, err := nis1Key(sender, recipient.PublicKey(), make([]byte, nis1SaltLen))
		require.NoError(t, err)
		assert.Equal(t, "1eb6bd2e3756dd8c7b224b84f490aa67ff6170fc5b4de12a544adb6abf621732", hex.EncodeToString(key))
	})
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	messages := [][]byte{
		{},
		[]byte("hello"),
		[]byte("exactly sixteen!"),
		bytes.Repeat([]byte("catapult"), 40),
	}

	for _, network := range []chain.Network{chain.SymbolMainNet, chain.NIS1MainNet} {
		t.Run(network.String(), func(t *testing.T) {
			sender, recipient := cipherPair(t, network)
			for _, msg := range messages {
				enc, err := EncryptMessage(sender, recipient.PublicKey(), msg)
				require.NoError(t, err)

				plain, err := DecryptMessage(recipient, sender.PublicKey(), enc)
				require.NoError(t, err)
				assert.Equal(t, msg, append([]byte{}, plain...))

				other, err := EncryptMessage(sender, recipient.PublicKey(), msg)
				require.NoError(t, err)
				assert.NotEqual(t, enc, other)
			}
		})
	}
}

func TestEncryptLayout(t *testing.T) {
	msg := []byte("layout")

	sender, recipient := cipherPair(t, chain.SymbolTestNet)
	enc, err := encryptMessage(bytes.NewReader(bytes.Repeat([]byte{7}, 64)), sender, recipient.PublicKey(), msg)
	require.NoError(t, err)
	require.Len(t, enc, gcmTagSize+gcmIVSize+len(msg))
	assert.Equal(t, bytes.Repeat([]byte{7}, gcmIVSize), enc[gcmTagSize:gcmTagSize+gcmIVSize])

	sender, recipient = cipherPair(t, chain.NIS1TestNet)
	enc, err = encryptMessage(bytes.NewReader(bytes.Repeat([]byte{9}, 64)), sender, recipient.PublicKey(), msg)
	require.NoError(t, err)
	require.Len(t, enc, nis1SaltLen+cbcIVSize+16)
	assert.Equal(t, bytes.Repeat([]byte{9}, nis1SaltLen+cbcIVSize), enc[:nis1SaltLen+cbcIVSize])

	_, err = encryptMessage(iotest.ErrReader(errors.New("no entropy")), sender, recipient.PublicKey(), msg)
	assert.ErrorIs(t, err, wrapErrors.ErrInsufficientEntropy)
}

func TestDecryptFailures(t *testing.T) {
	for _, network := range []chain.Network{chain.SymbolMainNet, chain.NIS1MainNet} {
		t.Run(network.String(), func(t *testing.T) {
			sender, recipient := cipherPair(t, network)
			enc, err := EncryptMessage(sender, recipient.PublicKey(), []byte("secret payload"))
			require.NoError(t, err)

			_, err = DecryptMessage(recipient, sender.PublicKey(), enc[:10])
			assert.ErrorIs(t, err, wrapErrors.ErrInvalidCiphertext)

			stranger, err := GenerateKeyPair(network)
			require.NoError(t, err)
			// CBC may unpad garbage without error; it must never yield the plaintext.
			plain, err := DecryptMessage(stranger, sender.PublicKey(), enc)
			if err == nil {
				assert.NotEqual(t, []byte("secret payload"), plain)
			}

			_, err = DecryptMessage(recipient, PublicKey{}, enc)
			assert.ErrorIs(t, err, wrapErrors.ErrInvalidPublicKey)
		})
	}

	t.Run("symbol tag tamper", func(t *testing.T) {
		sender, recipient := cipherPair(t, chain.SymbolMainNet)
		enc, err := EncryptMessage(sender, recipient.PublicKey(), []byte("secret payload"))
		require.NoError(t, err)

		for _, i := range []int{0, gcmTagSize, len(enc) - 1} {
			tampered := append([]byte(nil), enc...)
			tampered[i] ^= 0x01
			_, err := DecryptMessage(recipient, sender.PublicKey(), tampered)
			assert.ErrorIs(t, err, wrapErrors.ErrDecryptionFailed, "byte %d", i)
		}
	})

	t.Run("nis1 body not block aligned", func(t *testing.T) {
		sender, recipient := cipherPair(t, chain.NIS1MainNet)
		enc, err := EncryptMessage(sender, recipient.PublicKey(), []byte("secret payload"))
		require.NoError(t, err)

		_, err = DecryptMessage(recipient, sender.PublicKey(), enc[:len(enc)-1])
		assert.ErrorIs(t, err, wrapErrors.ErrInvalidCiphertext)
	})
}

func TestZeroizedKeyPairCannotEncrypt(t *testing.T) {
	for _, network := range []chain.Network{chain.SymbolMainNet, chain.NIS1MainNet} {
		t.Run(network.String(), func(t *testing.T) {
			sender, recipient := cipherPair(t, network)
			sender.Zeroize()

			_, err := EncryptMessage(sender, recipient.PublicKey(), []byte("hi"))
			assert.ErrorIs(t, err, wrapErrors.ErrKeyZeroized)
			assert.NotErrorIs(t, err, wrapErrors.ErrInvalidKeyLength)
		})
	}
}

func TestPKCS7(t *testing.T) {
	padded := pkcs7Pad([]byte("abc"), 16)
	require.Len(t, padded, 16)
	assert.Equal(t, byte(13), padded[15])

	out, ok := pkcs7Unpad(padded, 16)
	require.True(t, ok)
	assert.Equal(t, []byte("abc"), out)

	full := pkcs7Pad(bytes.Repeat([]byte{1}, 16), 16)
	assert.Len(t, full, 32)

	bad := append([]byte(nil), padded...)
	bad[14] = 2
	_, ok = pkcs7Unpad(bad, 16)
	assert.False(t, ok)

	zero := make([]byte, 16)
	_, ok = pkcs7Unpad(zero, 16)
	assert.False(t, ok)
}
