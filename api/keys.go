package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/linlinbupt123-crypto/crypto_core/domain"
	"github.com/linlinbupt123-crypto/crypto_core/request"
	"github.com/linlinbupt123-crypto/crypto_core/utils"
)

// SealKey, wrap a private key under a passphrase
func (h *CryptoHandler) SealKey(c *gin.Context) {
	var req request.SealKeyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	network, err := h.network(req.Network)
	if err != nil {
		abortWithError(c, err)
		return
	}

	env, err := h.cryptoService.SealPrivateKey(req.PrivateKey, network, req.Passphrase)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, env)
}

// OpenKey, check a passphrase against an envelope
func (h *CryptoHandler) OpenKey(c *gin.Context) {
	var req request.OpenKeyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	acc, err := h.cryptoService.OpenEnvelope(req.Envelope, req.Passphrase)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, acc)
}

func (h *CryptoHandler) EncryptMessage(c *gin.Context) {
	var req request.EncryptReq
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	network, err := h.network(req.Network)
	if err != nil {
		abortWithError(c, err)
		return
	}
	recipient, err := domain.PublicKeyFromHex(req.RecipientPublicKey)
	if err != nil {
		abortWithError(c, err)
		return
	}
	msg, err := utils.PayloadBytes(req.Message, req.Hex)
	if err != nil {
		abortWithError(c, err)
		return
	}

	enc, err := h.cryptoService.EncryptMessage(req.PrivateKey, network, recipient, msg)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ciphertext": utils.BytesToHex(enc)})
}

func (h *CryptoHandler) DecryptMessage(c *gin.Context) {
	var req request.DecryptReq
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	network, err := h.network(req.Network)
	if err != nil {
		abortWithError(c, err)
		return
	}
	sender, err := domain.PublicKeyFromHex(req.SenderPublicKey)
	if err != nil {
		abortWithError(c, err)
		return
	}
	enc, err := utils.HexToBytes(req.Ciphertext)
	if err != nil {
		abortWithError(c, err)
		return
	}

	plain, err := h.cryptoService.DecryptMessage(req.PrivateKey, network, sender, enc)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     string(plain),
		"message_hex": utils.BytesToHex(plain),
	})
}
