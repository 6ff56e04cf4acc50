package service

import (
	"go.uber.org/zap"

	"github.com/linlinbupt123-crypto/crypto_core/address"
	"github.com/linlinbupt123-crypto/crypto_core/chain"
	"github.com/linlinbupt123-crypto/crypto_core/config"
	"github.com/linlinbupt123-crypto/crypto_core/domain"
	wrapErrors "github.com/linlinbupt123-crypto/crypto_core/errors"
)

// CryptoService exposes key, signature and address operations for both
// network families. It holds no key material between calls.
type CryptoService struct {
	logger       *zap.Logger
	mnemonicBits int
	batchLimit   int
	batchWorkers int
}

func NewCryptoService(logger *zap.Logger, cfg config.CryptoConfig) *CryptoService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &CryptoService{
		logger:       logger.Named("crypto"),
		mnemonicBits: cfg.MnemonicBits,
		batchLimit:   cfg.BatchLimit,
		batchWorkers: cfg.BatchWorkers,
	}
	if s.mnemonicBits == 0 {
		s.mnemonicBits = domain.DefaultEntropyBits
	}
	if s.batchLimit <= 0 {
		s.batchLimit = 1000
	}
	if s.batchWorkers <= 0 {
		s.batchWorkers = 1
	}
	return s
}

func (s *CryptoService) GenerateKeyPair(network chain.Network) (*domain.KeyPair, error) {
	kp, err := domain.GenerateKeyPair(network)
	if err != nil {
		s.logger.Error("key generation failed", zap.Stringer("network", network), zap.Error(err))
		return nil, err
	}
	s.logger.Debug("key pair generated", zap.Stringer("network", network), zap.Stringer("public_key", kp.PublicKey()))
	return kp, nil
}

func (s *CryptoService) KeyPairFromPrivateBytes(b []byte, network chain.Network) (*domain.KeyPair, error) {
	return domain.KeyPairFromPrivateBytes(b, network)
}

func (s *CryptoService) Sign(kp *domain.KeyPair, message []byte) domain.Signature {
	sig := kp.Sign(message)
	s.logger.Debug("message signed",
		zap.Stringer("network", kp.Network()),
		zap.Stringer("public_key", kp.PublicKey()),
		zap.Int("message_len", len(message)),
	)
	return sig
}

// SignWithPrivateKey signs with a key given in hex and releases it before
// returning.
func (s *CryptoService) SignWithPrivateKey(privateHex string, network chain.Network, message []byte) (domain.PublicKey, domain.Signature, error) {
	kp, err := domain.KeyPairFromHex(privateHex, network)
	if err != nil {
		return domain.PublicKey{}, domain.Signature{}, err
	}
	defer kp.Zeroize()
	return kp.PublicKey(), s.Sign(kp, message), nil
}

// Verify checks sig with the hash strategy of network.
func (s *CryptoService) Verify(pub domain.PublicKey, message []byte, sig domain.Signature, network chain.Network) error {
	if !network.Valid() {
		return wrapErrors.Newf(wrapErrors.InvalidNetwork, "verify", "unknown network %d", uint8(network))
	}
	err := domain.Verify(pub, message, sig, network.Strategy())
	if err != nil {
		s.logger.Debug("signature rejected",
			zap.Stringer("network", network),
			zap.Stringer("public_key", pub),
			zap.String("code", string(wrapErrors.CodeOf(err))),
		)
	}
	return err
}

func (s *CryptoService) AddressOf(pub domain.PublicKey, network chain.Network) (address.Address, error) {
	return address.EncodeChecked(pub, network)
}

func (s *CryptoService) ValidateAddress(text string, network chain.Network) error {
	err := address.DecodeAndValidate(text, network)
	if err != nil {
		s.logger.Debug("address rejected",
			zap.Stringer("network", network),
			zap.String("address", text),
			zap.String("code", string(wrapErrors.CodeOf(err))),
		)
	}
	return err
}

// SeedToKeyPair parses path and derives the key pair at it.
func (s *CryptoService) SeedToKeyPair(seed []byte, path string, network chain.Network) (*domain.KeyPair, error) {
	p, err := domain.ParseDerivationPath(path)
	if err != nil {
		return nil, err
	}
	return domain.SeedToKeyPair(seed, p, network)
}
