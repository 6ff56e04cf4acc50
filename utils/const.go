package utils

import (
	"fmt"

	"github.com/linlinbupt123-crypto/crypto_core/chain"
)

/*
SLIP-10 路径解析 (ed25519 只支持硬化派生，所以每一层都带撇号):

	m / purpose' / coin_type' / account' / change' / address_index'

层级	路径中的值	名称			描述
1		m			Master Key		主私钥，由 HMAC-SHA512("ed25519 seed", seed) 得到。
2		44'			Purpose			BIP-44 编号。
3		4343'		Coin Type		币种类型:
					• 43'   = NIS1 主网 / mijin
					• 4343' = Symbol 主网 / 私有网
					• 1'    = 所有测试网
4		0'			Account			账户编号，从 0' 开始。
5		0'			Change			ed25519 没有普通派生，固定为 0'。
6		0'			Address Index	固定为 0'，一个账户对应一个地址。
*/
const (
	PURPOSE = 44
)

// AccountPath returns the derivation path of account on network, e.g.
// m/44'/4343'/0'/0'/0' for the first Symbol main net account.
func AccountPath(network chain.Network, account uint32) string {
	return fmt.Sprintf("m/%d'/%d'/%d'/0'/0'", PURPOSE, network.CoinType(), account)
}
