package utils

import (
	"encoding/hex"
	"strings"

	wrapErrors "github.com/linlinbupt123-crypto/crypto_core/errors"
)

// HexToBytes decodes hex with an optional 0x prefix, in either case.
func HexToBytes(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, wrapErrors.WrapWithCode(wrapErrors.InvalidHex, "decode hex", err)
	}
	return b, nil
}

// BytesToHex is the upper-case form used for keys and signatures.
func BytesToHex(b []byte) string {
	return strings.ToUpper(hex.EncodeToString(b))
}

// PayloadBytes returns the message bytes of data: hex decoded when isHex,
// the UTF-8 bytes otherwise.
func PayloadBytes(data string, isHex bool) ([]byte, error) {
	if isHex {
		return HexToBytes(data)
	}
	return []byte(data), nil
}
