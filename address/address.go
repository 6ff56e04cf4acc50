// Package address encodes public keys into network addresses and validates
// address text.
//
// An address decodes to prefix(1) | RIPEMD-160(H(publicKey))(20) | checksum,
// where H is the 256-bit hash of the network's family and the checksum is the
// leading 4 (NIS1) or 3 (Symbol) bytes of H(prefix | identifier). The text
// form is unpadded upper-case base32.
package address

import (
	"bytes"
	"encoding/base32"
	"strings"

	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // protocol mandated

	"github.com/linlinbupt123-crypto/crypto_core/chain"
	"github.com/linlinbupt123-crypto/crypto_core/domain"
	wrapErrors "github.com/linlinbupt123-crypto/crypto_core/errors"
)

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// Address is the canonical text form: upper-case, no separators.
type Address string

func (a Address) String() string { return string(a) }

// Pretty groups the address in blocks of six characters separated by dashes.
func (a Address) Pretty() string {
	s := string(a)
	var b strings.Builder
	for i := 0; i < len(s); i += 6 {
		if i > 0 {
			b.WriteByte('-')
		}
		b.WriteString(s[i:min(i+6, len(s))])
	}
	return b.String()
}

// EncodeChecked is Encode for a network value that has not been validated.
func EncodeChecked(pub domain.PublicKey, network chain.Network) (Address, error) {
	if !network.Valid() {
		return "", wrapErrors.Newf(wrapErrors.InvalidNetwork, "encode address", "unknown network %d", uint8(network))
	}
	return Encode(pub, network), nil
}

// Encode derives the address of pub on network. It panics if network is not
// a declared Network; use EncodeChecked for unvalidated values.
func Encode(pub domain.PublicKey, network chain.Network) Address {
	family := network.Family()
	strategy := family.Strategy()

	raw := make([]byte, 0, family.DecodedAddressSize())
	raw = append(raw, network.Prefix())
	raw = append(raw, identifier(strategy, pub[:])...)
	raw = append(raw, strategy.Hash(raw)[:family.ChecksumSize()]...)

	return Address(encoding.EncodeToString(raw))
}

func identifier(strategy chain.HashStrategy, pub []byte) []byte {
	h := ripemd160.New()
	h.Write(strategy.Hash(pub))
	return h.Sum(nil)
}

// Normalize trims whitespace, drops dash separators and upper-cases text.
func Normalize(text string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(text), "-", ""))
}

// Decode returns the raw bytes of an address of either family. The length
// is checked before anything is decoded or hashed.
func Decode(text string) ([]byte, error) {
	const op = "decode address"
	s := Normalize(text)
	if len(s) != chain.FamilyNIS1.EncodedAddressSize() && len(s) != chain.FamilySymbol.EncodedAddressSize() {
		return nil, wrapErrors.Newf(wrapErrors.InvalidAddressLength, op, "unexpected length %d", len(s))
	}
	raw, err := encoding.DecodeString(s)
	if err != nil {
		return nil, wrapErrors.WrapWithCode(wrapErrors.InvalidAddressEncoding, op, err)
	}
	// base32 ignores the unused low bits of the last character
	if encoding.EncodeToString(raw) != s {
		return nil, wrapErrors.Newf(wrapErrors.InvalidAddressEncoding, op, "non-canonical trailing bits")
	}
	return raw, nil
}

// DecodeAndValidate checks that text is a well formed address of network:
// length, then checksum, then network byte.
func DecodeAndValidate(text string, network chain.Network) error {
	const op = "validate address"
	if !network.Valid() {
		return wrapErrors.Newf(wrapErrors.InvalidNetwork, op, "unknown network %d", uint8(network))
	}
	family := network.Family()
	s := Normalize(text)
	if len(s) != family.EncodedAddressSize() {
		return wrapErrors.Newf(wrapErrors.InvalidAddressLength, op, "expected %d characters for %s, got %d",
			family.EncodedAddressSize(), family, len(s))
	}
	raw, err := Decode(s)
	if err != nil {
		return err
	}
	if len(raw) != family.DecodedAddressSize() {
		return wrapErrors.Newf(wrapErrors.InvalidAddressLength, op, "decoded %d bytes", len(raw))
	}

	split := len(raw) - family.ChecksumSize()
	body, checksum := raw[:split], raw[split:]
	if !bytes.Equal(family.Strategy().Hash(body)[:family.ChecksumSize()], checksum) {
		return wrapErrors.ErrChecksumMismatch
	}
	if body[0] != network.Prefix() {
		return wrapErrors.Newf(wrapErrors.InvalidNetworkByte, op, "prefix 0x%02X does not belong to %s", body[0], network)
	}
	return nil
}

// Parse validates text against network and returns its canonical form.
func Parse(text string, network chain.Network) (Address, error) {
	if err := DecodeAndValidate(text, network); err != nil {
		return "", err
	}
	return Address(Normalize(text)), nil
}
