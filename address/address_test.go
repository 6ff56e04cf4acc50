package address

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linlinbupt123-crypto/crypto_core/chain"
	"github.com/linlinbupt123-crypto/crypto_core/domain"
	wrapErrors "github.com/linlinbupt123-crypto/crypto_core/errors"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"

func mustPublicKey(t *testing.T, s string) domain.PublicKey {
	t.Helper()
	pub, err := domain.PublicKeyFromHex(s)
	require.NoError(t, err)
	return pub
}

var vectors = []struct {
	network chain.Network
	public  string
	address string
}{
	{chain.NIS1MainNet, "c5f54ba980fcbb657dbaaa42700539b207873e134d2375efeab5f1ab52f87844", "NDD2CT6LQLIYQ56KIXI3ENTM6EK3D44P5JFXJ4R4"},
	{chain.NIS1TestNet, "c5f54ba980fcbb657dbaaa42700539b207873e134d2375efeab5f1ab52f87844", "TDD2CT6LQLIYQ56KIXI3ENTM6EK3D44P5KZPFMK2"},
	{chain.NIS1MainNet, "A4FA5A82681FBCFCB3E3B742E96E465A3EBDDF9738BAD9873E7726FAA79A92A3", "NBJ3T27PSFTXEE6NZYBWMRMQ2ZAL3JKBFNZ5SRY3"},
	{chain.SymbolMainNet, "2E834140FD66CF87B254A693A2C7862C819217B676D3943267156625E816EC6F", "NATNE7Q5BITMUTRRN6IB4I7FLSDRDWZA34SQ33Y"},
	{chain.SymbolTestNet, "2E834140FD66CF87B254A693A2C7862C819217B676D3943267156625E816EC6F", "TATNE7Q5BITMUTRRN6IB4I7FLSDRDWZA37JGO5Q"},
	{chain.SymbolMainNet, "41A3C970207B23C36FD04120BB49CB9107DD1CD250750A976DFA1DD7B5434D2C", "NAHMEBT5HH2U5BOXW5G7YCJ5F5UBFZN35SLEX4Y"},
}

func TestEncodeVectors(t *testing.T) {
	for _, tt := range vectors {
		t.Run(tt.address, func(t *testing.T) {
			got := Encode(mustPublicKey(t, tt.public), tt.network)
			assert.Equal(t, tt.address, got.String())
			assert.NoError(t, DecodeAndValidate(tt.address, tt.network))
		})
	}
}

func TestEncodeCheckedUnknownNetwork(t *testing.T) {
	pub := mustPublicKey(t, "2E834140FD66CF87B254A693A2C7862C819217B676D3943267156625E816EC6F")

	got, err := EncodeChecked(pub, chain.SymbolTestNet)
	require.NoError(t, err)
	assert.Equal(t, Address("TATNE7Q5BITMUTRRN6IB4I7FLSDRDWZA37JGO5Q"), got)

	for _, n := range []chain.Network{0, chain.Network(99)} {
		_, err := EncodeChecked(pub, n)
		assert.ErrorIs(t, err, wrapErrors.ErrInvalidNetwork)
		assert.Panics(t, func() { Encode(pub, n) })
	}
}

func TestEncodeShape(t *testing.T) {
	pub := mustPublicKey(t, "2E834140FD66CF87B254A693A2C7862C819217B676D3943267156625E816EC6F")
	leading := map[chain.Network]byte{
		chain.NIS1MainNet:       'N',
		chain.NIS1TestNet:       'T',
		chain.NIS1Mijin:         'M',
		chain.SymbolMainNet:     'N',
		chain.SymbolTestNet:     'T',
		chain.SymbolPrivate:     'P',
		chain.SymbolPrivateTest: 'V',
	}

	for _, network := range chain.Networks() {
		t.Run(network.String(), func(t *testing.T) {
			addr := Encode(pub, network)
			assert.Len(t, addr.String(), network.Family().EncodedAddressSize())
			assert.Equal(t, leading[network], addr.String()[0])
			assert.Equal(t, strings.ToUpper(addr.String()), addr.String())
			assert.NotContains(t, addr.String(), "=")

			raw, err := Decode(addr.String())
			require.NoError(t, err)
			assert.Len(t, raw, network.Family().DecodedAddressSize())
			assert.Equal(t, network.Prefix(), raw[0])

			assert.NoError(t, DecodeAndValidate(addr.String(), network))
		})
	}
}

func TestRoundTripRandomKeys(t *testing.T) {
	for _, network := range chain.Networks() {
		for i := 0; i < 10; i++ {
			kp, err := domain.GenerateKeyPair(network)
			require.NoError(t, err)
			addr := Encode(kp.PublicKey(), network)
			assert.NoError(t, DecodeAndValidate(addr.String(), network))
			kp.Zeroize()
		}
	}
}

func TestSingleCharacterMutationFails(t *testing.T) {
	for _, tt := range vectors {
		t.Run(tt.address, func(t *testing.T) {
			for pos := 0; pos < len(tt.address); pos++ {
				for _, c := range alphabet {
					if byte(c) == tt.address[pos] {
						continue
					}
					mutated := tt.address[:pos] + string(c) + tt.address[pos+1:]
					err := DecodeAndValidate(mutated, tt.network)
					require.Error(t, err, "position %d -> %c", pos, c)
				}
			}
		})
	}
}

func TestDecodeAndValidateErrors(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		network chain.Network
		want    error
	}{
		{"empty", "", chain.SymbolMainNet, wrapErrors.ErrInvalidAddressLength},
		{"too short", "NATNE7Q5BITMUTRRN6IB4I7FLSDRDWZA34SQ33", chain.SymbolMainNet, wrapErrors.ErrInvalidAddressLength},
		{"too long", "NATNE7Q5BITMUTRRN6IB4I7FLSDRDWZA34SQ33YA", chain.SymbolMainNet, wrapErrors.ErrInvalidAddressLength},
		{"symbol address on nis1", "NATNE7Q5BITMUTRRN6IB4I7FLSDRDWZA34SQ33Y", chain.NIS1MainNet, wrapErrors.ErrInvalidAddressLength},
		{"nis1 address on symbol", "NDD2CT6LQLIYQ56KIXI3ENTM6EK3D44P5JFXJ4R4", chain.SymbolMainNet, wrapErrors.ErrInvalidAddressLength},
		{"bad alphabet", "NATNE7Q5BITMUTRRN6IB4I7FLSDRDWZA34SQ330", chain.SymbolMainNet, wrapErrors.ErrInvalidAddressEncoding},
		{"checksum", "NATNE7Q5BITMUTRRN6IB4I7FLSDRDWZA34SQ33Z", chain.SymbolMainNet, wrapErrors.ErrInvalidAddressEncoding},
		{"checksum body", "NATNE7Q5BITMUTRRN6IB4I7FLSDRDWZA34SQ23Y", chain.SymbolMainNet, wrapErrors.ErrChecksumMismatch},
		{"symbol network byte", "NATNE7Q5BITMUTRRN6IB4I7FLSDRDWZA34SQ33Y", chain.SymbolTestNet, wrapErrors.ErrInvalidNetworkByte},
		{"nis1 network byte", "NDD2CT6LQLIYQ56KIXI3ENTM6EK3D44P5JFXJ4R4", chain.NIS1Mijin, wrapErrors.ErrInvalidNetworkByte},
		{"nis1 checksum", "NDD2CT6LQLIYQ56KIXI3ENTM6EK3D44P5JFXJ4R5", chain.NIS1MainNet, wrapErrors.ErrChecksumMismatch},
		{"unknown network", "NATNE7Q5BITMUTRRN6IB4I7FLSDRDWZA34SQ33Y", chain.Network(0), wrapErrors.ErrInvalidNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, DecodeAndValidate(tt.text, tt.network), tt.want)
		})
	}
}

func TestNormalization(t *testing.T) {
	addr := Address("NDD2CT6LQLIYQ56KIXI3ENTM6EK3D44P5JFXJ4R4")
	pretty := addr.Pretty()
	assert.Equal(t, "NDD2CT-6LQLIY-Q56KIX-I3ENTM-6EK3D4-4P5JFX-J4R4", pretty)

	for _, form := range []string{pretty, strings.ToLower(addr.String()), "  " + addr.String() + "\n"} {
		assert.NoError(t, DecodeAndValidate(form, chain.NIS1MainNet), form)

		parsed, err := Parse(form, chain.NIS1MainNet)
		require.NoError(t, err)
		assert.Equal(t, addr, parsed)
	}

	_, err := Parse("garbage", chain.NIS1MainNet)
	assert.ErrorIs(t, err, wrapErrors.ErrInvalidAddressLength)
}
