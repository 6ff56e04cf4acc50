package entity

// Account is the public view of a key pair.
type Account struct {
	Network   string `json:"network"`
	PublicKey string `json:"public_key"`
	Address   string `json:"address"`            // 主地址
	Path      string `json:"path,omitempty"`     // 派生路径
	Index     uint32 `json:"index"`              // 账户索引
	Mnemonic  string `json:"mnemonic,omitempty"` // only set when freshly generated
}

// VerifyResult reports one signature check. Code is empty on success.
type VerifyResult struct {
	Index int    `json:"index"`
	Valid bool   `json:"valid"`
	Code  string `json:"code,omitempty"`
	Error string `json:"error,omitempty"`
}
