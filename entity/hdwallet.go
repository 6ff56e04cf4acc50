package entity

import (
	"time"
)

// KeyEnvelope is a private key sealed under a passphrase. SaltHex carries
// the KDF metadata as "pbkdf2$<iterations>$<hex-salt>"; EncryptedKey is
// nonce|ciphertext from AES-256-GCM.
type KeyEnvelope struct {
	Network      string    `json:"network"`
	PublicKey    string    `json:"public_key"`
	Address      string    `json:"address"`
	EncryptedKey []byte    `json:"encrypted_key"`
	SaltHex      string    `json:"salt_hex"`
	CreatedAt    time.Time `json:"created_at"`
}
