package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/linlinbupt123-crypto/crypto_core/chain"
	"github.com/linlinbupt123-crypto/crypto_core/domain"
	wrapErrors "github.com/linlinbupt123-crypto/crypto_core/errors"
	"github.com/linlinbupt123-crypto/crypto_core/request"
	"github.com/linlinbupt123-crypto/crypto_core/service"
	"github.com/linlinbupt123-crypto/crypto_core/utils"
)

type CryptoHandler struct {
	cryptoService  *service.CryptoService
	defaultNetwork chain.Network
}

func NewCryptoHandler(cs *service.CryptoService, defaultNetwork chain.Network) *CryptoHandler {
	return &CryptoHandler{cryptoService: cs, defaultNetwork: defaultNetwork}
}

func (h *CryptoHandler) network(name string) (chain.Network, error) {
	if strings.TrimSpace(name) == "" {
		return h.defaultNetwork, nil
	}
	return chain.ParseNetwork(name)
}

// statusOf maps error codes to HTTP status codes.
func statusOf(err error) int {
	switch wrapErrors.CodeOf(err) {
	case "":
		return http.StatusInternalServerError
	case wrapErrors.InsufficientEntropy, wrapErrors.KeyZeroized:
		return http.StatusInternalServerError
	case wrapErrors.DecryptionFailed, wrapErrors.SignatureMismatch:
		return http.StatusUnprocessableEntity
	case wrapErrors.BatchTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusBadRequest
	}
}

func abortWithError(c *gin.Context, err error) {
	c.JSON(statusOf(err), gin.H{
		"error": err.Error(),
		"code":  wrapErrors.CodeOf(err),
	})
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// Networks lists every supported network.
func (h *CryptoHandler) Networks(c *gin.Context) {
	type networkView struct {
		Name     string `json:"name"`
		Family   string `json:"family"`
		Prefix   string `json:"prefix"`
		CoinType uint32 `json:"coin_type"`
		Hash     string `json:"hash"`
	}
	out := make([]networkView, 0, len(chain.Networks()))
	for _, n := range chain.Networks() {
		out = append(out, networkView{
			Name:     n.String(),
			Family:   n.Family().String(),
			Prefix:   utils.BytesToHex([]byte{n.Prefix()}),
			CoinType: n.CoinType(),
			Hash:     n.Strategy().Name(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"default": h.defaultNetwork.String(), "networks": out})
}

// CreateAccount, new mnemonic and its first account
func (h *CryptoHandler) CreateAccount(c *gin.Context) {
	var req request.NewAccountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	network, err := h.network(req.Network)
	if err != nil {
		abortWithError(c, err)
		return
	}

	acc, err := h.cryptoService.NewAccount(c.Request.Context(), network, req.Account, req.Passphrase)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, acc)
}

// DeriveAccount, recover an account from a mnemonic
func (h *CryptoHandler) DeriveAccount(c *gin.Context) {
	var req request.DeriveAccountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	network, err := h.network(req.Network)
	if err != nil {
		abortWithError(c, err)
		return
	}

	acc, err := h.cryptoService.AccountFromMnemonic(req.Mnemonic, req.Passphrase, network, req.Account)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, acc)
}

// AddressOf, GET /address/:network/:publicKey
func (h *CryptoHandler) AddressOf(c *gin.Context) {
	network, err := chain.ParseNetwork(c.Param("network"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	pub, err := domain.PublicKeyFromHex(c.Param("publicKey"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	addr, err := h.cryptoService.AddressOf(pub, network)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"network":    network.String(),
		"public_key": pub.String(),
		"address":    addr.String(),
		"pretty":     addr.Pretty(),
	})
}

// ValidateAddress answers 200 for both outcomes; an invalid address is an
// expected result, not a failed request.
func (h *CryptoHandler) ValidateAddress(c *gin.Context) {
	var req request.ValidateAddressReq
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	network, err := h.network(req.Network)
	if err != nil {
		abortWithError(c, err)
		return
	}

	if err := h.cryptoService.ValidateAddress(req.Address, network); err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false, "code": wrapErrors.CodeOf(err), "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true})
}

func (h *CryptoHandler) Sign(c *gin.Context) {
	var req request.SignReq
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	network, err := h.network(req.Network)
	if err != nil {
		abortWithError(c, err)
		return
	}
	msg, err := utils.PayloadBytes(req.Message, req.Hex)
	if err != nil {
		abortWithError(c, err)
		return
	}

	pub, sig, err := h.cryptoService.SignWithPrivateKey(req.PrivateKey, network, msg)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"network":    network.String(),
		"public_key": pub.String(),
		"signature":  sig.String(),
	})
}

func (h *CryptoHandler) Verify(c *gin.Context) {
	var req request.VerifyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	item, err := h.verifyItem(req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	results, err := h.cryptoService.VerifyBatch(c.Request.Context(), []service.VerifyItem{item})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, results[0])
}

func (h *CryptoHandler) VerifyBatch(c *gin.Context) {
	var req request.VerifyBatchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	items := make([]service.VerifyItem, 0, len(req.Items))
	for _, r := range req.Items {
		item, err := h.verifyItem(r)
		if err != nil {
			abortWithError(c, err)
			return
		}
		items = append(items, item)
	}

	results, err := h.cryptoService.VerifyBatch(c.Request.Context(), items)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (h *CryptoHandler) verifyItem(req request.VerifyReq) (service.VerifyItem, error) {
	network := req.Network
	if strings.TrimSpace(network) == "" {
		network = h.defaultNetwork.String()
	}
	msg, err := utils.PayloadBytes(req.Message, req.Hex)
	if err != nil {
		return service.VerifyItem{}, err
	}
	return service.VerifyItem{
		Network:   network,
		PublicKey: req.PublicKey,
		Signature: req.Signature,
		Message:   msg,
	}, nil
}
