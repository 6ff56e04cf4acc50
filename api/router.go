package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter registers every route on a fresh gin engine.
func NewRouter(h *CryptoHandler, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(requestLogger(logger), gin.Recovery())

	r.GET("/networks", h.Networks)

	// 1) 账户: 新建助记词 / 助记词恢复
	r.POST("/accounts", h.CreateAccount)
	r.POST("/accounts/derive", h.DeriveAccount)

	// 2) 地址
	r.GET("/address/:network/:publicKey", h.AddressOf)
	r.POST("/address/validate", h.ValidateAddress)

	// 3) 签名与验签
	r.POST("/signatures/sign", h.Sign)
	r.POST("/signatures/verify", h.Verify)
	r.POST("/signatures/verify/batch", h.VerifyBatch)

	// 4) 密钥封装与消息加密
	r.POST("/keys/seal", h.SealKey)
	r.POST("/keys/open", h.OpenKey)
	r.POST("/messages/encrypt", h.EncryptMessage)
	r.POST("/messages/decrypt", h.DecryptMessage)

	return r
}

// requestLogger logs method, route and status. Bodies may carry private
// keys and are never logged.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("route", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
