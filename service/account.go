package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/linlinbupt123-crypto/crypto_core/address"
	"github.com/linlinbupt123-crypto/crypto_core/chain"
	"github.com/linlinbupt123-crypto/crypto_core/domain"
	"github.com/linlinbupt123-crypto/crypto_core/entity"
	"github.com/linlinbupt123-crypto/crypto_core/utils"
)

// NewAccount 生成助记词并派生第 account 个账户
func (s *CryptoService) NewAccount(ctx context.Context, network chain.Network, account uint32, passphrase string) (*entity.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	mnemonic, err := domain.NewMnemonic(s.mnemonicBits)
	if err != nil {
		s.logger.Error("mnemonic generation failed", zap.Error(err))
		return nil, err
	}

	acc, err := s.AccountFromMnemonic(mnemonic, passphrase, network, account)
	if err != nil {
		return nil, err
	}
	acc.Mnemonic = mnemonic
	s.logger.Info("account created", zap.Stringer("network", network), zap.String("address", acc.Address), zap.Uint32("account", account))
	return acc, nil
}

// AccountFromMnemonic 从助记词恢复账户 (SLIP-10 path m/44'/coin'/account'/0'/0')
func (s *CryptoService) AccountFromMnemonic(mnemonic, passphrase string, network chain.Network, account uint32) (*entity.Account, error) {
	seed, err := domain.SeedFromMnemonic(mnemonic, passphrase)
	if err != nil {
		return nil, err
	}
	defer utils.ClearBytes(seed)

	path := utils.AccountPath(network, account)
	kp, err := s.SeedToKeyPair(seed, path, network)
	if err != nil {
		return nil, err
	}
	defer kp.Zeroize()

	acc := s.accountOf(kp)
	acc.Path = path
	acc.Index = account
	return acc, nil
}

// AccountFromPrivateKey returns the public view of a hex private key.
func (s *CryptoService) AccountFromPrivateKey(privateHex string, network chain.Network) (*entity.Account, error) {
	kp, err := domain.KeyPairFromHex(privateHex, network)
	if err != nil {
		return nil, err
	}
	defer kp.Zeroize()
	return s.accountOf(kp), nil
}

func (s *CryptoService) accountOf(kp *domain.KeyPair) *entity.Account {
	return &entity.Account{
		Network:   kp.Network().String(),
		PublicKey: kp.PublicKey().String(),
		Address:   address.Encode(kp.PublicKey(), kp.Network()).String(),
	}
}

// SealPrivateKey wraps a hex private key in a passphrase protected envelope.
func (s *CryptoService) SealPrivateKey(privateHex string, network chain.Network, passphrase string) (*entity.KeyEnvelope, error) {
	kp, err := domain.KeyPairFromHex(privateHex, network)
	if err != nil {
		return nil, err
	}
	defer kp.Zeroize()

	env, err := domain.SealKeyPair(kp, passphrase)
	if err != nil {
		s.logger.Error("seal failed", zap.Stringer("network", network), zap.Error(err))
		return nil, err
	}
	env.Address = address.Encode(kp.PublicKey(), network).String()
	s.logger.Info("key sealed", zap.Stringer("network", network), zap.String("address", env.Address))
	return env, nil
}

// OpenEnvelope checks passphrase against env and returns the account it
// protects. The private key never leaves this call.
func (s *CryptoService) OpenEnvelope(env *entity.KeyEnvelope, passphrase string) (*entity.Account, error) {
	kp, err := domain.OpenKeyEnvelope(env, passphrase)
	if err != nil {
		s.logger.Warn("envelope rejected", zap.Error(err))
		return nil, err
	}
	defer kp.Zeroize()
	return s.accountOf(kp), nil
}
