package main

import (
	stdlog "log"

	"go.uber.org/zap"

	"github.com/linlinbupt123-crypto/crypto_core/api"
	"github.com/linlinbupt123-crypto/crypto_core/config"
	"github.com/linlinbupt123-crypto/crypto_core/log"
	"github.com/linlinbupt123-crypto/crypto_core/service"
)

func main() {
	// 1. 配置
	cfg, err := config.Load("config/config.yaml")
	if err != nil {
		stdlog.Fatal(err)
	}

	// 2. 日志
	logger, err := log.New(cfg.Log)
	if err != nil {
		stdlog.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	// 3. 初始化依赖
	cryptoService := service.NewCryptoService(logger, cfg.Crypto)
	cryptoHandler := api.NewCryptoHandler(cryptoService, cfg.DefaultNetwork())

	// 4. Gin
	r := api.NewRouter(cryptoHandler, logger)

	logger.Info("server starting", zap.String("port", cfg.Port), zap.Stringer("network", cfg.DefaultNetwork()))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server start failed", zap.Error(err))
	}
}
