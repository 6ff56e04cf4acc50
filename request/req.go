package request

import "github.com/linlinbupt123-crypto/crypto_core/entity"

// Network fields are optional; handlers fall back to the configured default.
// Message fields are UTF-8 text unless Hex is set.

// --- 账户 ---
type NewAccountReq struct {
	Network    string `json:"network"`
	Account    uint32 `json:"account"`
	Passphrase string `json:"passphrase"`
}

type DeriveAccountReq struct {
	Network    string `json:"network"`
	Mnemonic   string `json:"mnemonic" binding:"required"`
	Passphrase string `json:"passphrase"`
	Account    uint32 `json:"account"`
}

// --- 地址 ---
type ValidateAddressReq struct {
	Network string `json:"network"`
	Address string `json:"address" binding:"required"`
}

// --- 签名 ---
type SignReq struct {
	Network    string `json:"network"`
	PrivateKey string `json:"private_key" binding:"required"`
	Message    string `json:"message"`
	Hex        bool   `json:"hex"`
}

type VerifyReq struct {
	Network   string `json:"network"`
	PublicKey string `json:"public_key" binding:"required"`
	Signature string `json:"signature" binding:"required"`
	Message   string `json:"message"`
	Hex       bool   `json:"hex"`
}

type VerifyBatchReq struct {
	Items []VerifyReq `json:"items" binding:"required,dive"`
}

// --- 密钥封装 ---
type SealKeyReq struct {
	Network    string `json:"network"`
	PrivateKey string `json:"private_key" binding:"required"`
	Passphrase string `json:"passphrase" binding:"required"`
}

type OpenKeyReq struct {
	Envelope   *entity.KeyEnvelope `json:"envelope" binding:"required"`
	Passphrase string              `json:"passphrase" binding:"required"`
}

// --- 消息加密 ---
type EncryptReq struct {
	Network            string `json:"network"`
	PrivateKey         string `json:"private_key" binding:"required"`
	RecipientPublicKey string `json:"recipient_public_key" binding:"required"`
	Message            string `json:"message"`
	Hex                bool   `json:"hex"`
}

type DecryptReq struct {
	Network         string `json:"network"`
	PrivateKey      string `json:"private_key" binding:"required"`
	SenderPublicKey string `json:"sender_public_key" binding:"required"`
	Ciphertext      string `json:"ciphertext" binding:"required"`
}
