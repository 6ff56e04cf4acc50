package domain

import (
	"crypto/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linlinbupt123-crypto/crypto_core/chain"
	wrapErrors "github.com/linlinbupt123-crypto/crypto_core/errors"
)

const testIterations = 1_000

func TestSealAndOpenKeyPair(t *testing.T) {
	for _, network := range []chain.Network{chain.SymbolMainNet, chain.NIS1TestNet} {
		t.Run(network.String(), func(t *testing.T) {
			kp, err := KeyPairFromHex(testPrivateKey, network)
			require.NoError(t, err)

			env, err := sealKeyPair(rand.Reader, kp, "correct horse", testIterations)
			require.NoError(t, err)
			assert.Equal(t, network.String(), env.Network)
			assert.Equal(t, kp.PublicKey().String(), env.PublicKey)
			assert.True(t, strings.HasPrefix(env.SaltHex, "pbkdf2$1000$"))
			assert.NotContains(t, strings.ToLower(string(env.EncryptedKey)), "575dbb30")

			opened, err := OpenKeyEnvelope(env, "correct horse")
			require.NoError(t, err)
			defer opened.Zeroize()
			assert.Equal(t, kp.PublicKey(), opened.PublicKey())
			assert.Equal(t, kp.PrivateKey().Hex(), opened.PrivateKey().Hex())

			_, err = OpenKeyEnvelope(env, "wrong horse")
			assert.ErrorIs(t, err, wrapErrors.ErrDecryptionFailed)
		})
	}
}

func TestOpenKeyEnvelopeRejectsTampering(t *testing.T) {
	kp, err := KeyPairFromHex(testPrivateKey, chain.SymbolMainNet)
	require.NoError(t, err)
	env, err := sealKeyPair(rand.Reader, kp, "pw", testIterations)
	require.NoError(t, err)

	t.Run("other network", func(t *testing.T) {
		moved := *env
		moved.Network = chain.NIS1MainNet.String()
		_, err := OpenKeyEnvelope(&moved, "pw")
		assert.ErrorIs(t, err, wrapErrors.ErrDecryptionFailed)
	})

	t.Run("ciphertext", func(t *testing.T) {
		broken := *env
		broken.EncryptedKey = append([]byte(nil), env.EncryptedKey...)
		broken.EncryptedKey[len(broken.EncryptedKey)-1] ^= 0xff
		_, err := OpenKeyEnvelope(&broken, "pw")
		assert.ErrorIs(t, err, wrapErrors.ErrDecryptionFailed)

		broken.EncryptedKey = broken.EncryptedKey[:8]
		_, err = OpenKeyEnvelope(&broken, "pw")
		assert.ErrorIs(t, err, wrapErrors.ErrInvalidCiphertext)
	})

	t.Run("salt metadata", func(t *testing.T) {
		for _, meta := range []string{
			"",
			"scrypt$1$00",
			"pbkdf2$x$00",
			"pbkdf2$0$00",
			"pbkdf2$10",
			"pbkdf2$10$00",
			"pbkdf2$310001$00000000000000000000000000000000",
			"pbkdf2$2147483647$00000000000000000000000000000000",
			"pbkdf2$10$" + strings.Repeat("00", 65),
		} {
			broken := *env
			broken.SaltHex = meta
			_, err := OpenKeyEnvelope(&broken, "pw")
			assert.ErrorIs(t, err, wrapErrors.ErrInvalidCiphertext, meta)
		}

		broken := *env
		broken.SaltHex = "pbkdf2$10$zz"
		_, err := OpenKeyEnvelope(&broken, "pw")
		assert.ErrorIs(t, err, wrapErrors.ErrInvalidHex)
	})

	t.Run("nil envelope", func(t *testing.T) {
		_, err := OpenKeyEnvelope(nil, "pw")
		assert.ErrorIs(t, err, wrapErrors.ErrInvalidCiphertext)
	})
}

func TestSealZeroizedKeyPair(t *testing.T) {
	kp, err := GenerateKeyPair(chain.SymbolMainNet)
	require.NoError(t, err)
	kp.Zeroize()

	_, err = SealKeyPair(kp, "pw")
	assert.ErrorIs(t, err, wrapErrors.ErrKeyZeroized)
}
