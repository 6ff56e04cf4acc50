package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/linlinbupt123-crypto/crypto_core/chain"
	"github.com/linlinbupt123-crypto/crypto_core/domain"
	"github.com/linlinbupt123-crypto/crypto_core/log"
)

type Config struct {
	Port    string       `mapstructure:"port"`
	Network string       `mapstructure:"network"`
	Log     log.Config   `mapstructure:"log"`
	Crypto  CryptoConfig `mapstructure:"crypto"`
}

type CryptoConfig struct {
	MnemonicBits int `mapstructure:"mnemonic_bits"`
	// Batch verification bounds.
	BatchLimit   int `mapstructure:"batch_limit"`
	BatchWorkers int `mapstructure:"batch_workers"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("network", chain.SymbolMainNet.String())
	v.SetDefault("log.format", "console")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.output", "stderr")
	v.SetDefault("crypto.mnemonic_bits", 256)
	v.SetDefault("crypto.batch_limit", 1000)
	v.SetDefault("crypto.batch_workers", 8)
}

// Load reads the YAML file at path. An empty path uses defaults and the
// environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// ENV 覆盖 YAML
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if _, err := chain.ParseNetwork(c.Network); err != nil {
		return err
	}
	if !domain.ValidEntropyBits(c.Crypto.MnemonicBits) {
		return fmt.Errorf("mnemonic_bits must be a multiple of 32 between 128 and 256, got %d", c.Crypto.MnemonicBits)
	}
	if c.Crypto.BatchLimit <= 0 || c.Crypto.BatchWorkers <= 0 {
		return fmt.Errorf("batch_limit and batch_workers must be positive")
	}
	return nil
}

// DefaultNetwork is the network used when a request does not name one.
func (c *Config) DefaultNetwork() chain.Network {
	n, err := chain.ParseNetwork(c.Network)
	if err != nil {
		return chain.SymbolMainNet
	}
	return n
}
