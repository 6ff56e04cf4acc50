package service

import (
	"go.uber.org/zap"

	"github.com/linlinbupt123-crypto/crypto_core/chain"
	"github.com/linlinbupt123-crypto/crypto_core/domain"
)

// EncryptMessage encrypts msg from the holder of privateHex to recipient.
func (s *CryptoService) EncryptMessage(privateHex string, network chain.Network, recipient domain.PublicKey, msg []byte) ([]byte, error) {
	kp, err := domain.KeyPairFromHex(privateHex, network)
	if err != nil {
		return nil, err
	}
	defer kp.Zeroize()

	enc, err := domain.EncryptMessage(kp, recipient, msg)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("message encrypted", zap.Stringer("network", network), zap.Int("size", len(enc)))
	return enc, nil
}

// DecryptMessage decrypts enc sent by sender to the holder of privateHex.
func (s *CryptoService) DecryptMessage(privateHex string, network chain.Network, sender domain.PublicKey, enc []byte) ([]byte, error) {
	kp, err := domain.KeyPairFromHex(privateHex, network)
	if err != nil {
		return nil, err
	}
	defer kp.Zeroize()

	plain, err := domain.DecryptMessage(kp, sender, enc)
	if err != nil {
		s.logger.Debug("message decryption failed", zap.Stringer("network", network), zap.Error(err))
		return nil, err
	}
	return plain, nil
}
