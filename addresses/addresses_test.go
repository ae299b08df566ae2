// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package addresses

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/toole-brendan/mmwallet/chaincfg"
	"github.com/toole-brendan/mmwallet/coinhash"
	"pgregory.net/rapid"
)

func mustParams(t *testing.T, symbol string) *chaincfg.Params {
	t.Helper()
	p, err := chaincfg.Get(symbol, false)
	require.NoError(t, err)
	return p
}

func TestZeroPubhashIsWellKnownAddress(t *testing.T) {
	p := mustParams(t, "btc")
	addr, err := PubhashToAddress(make([]byte, 20), false, p)
	require.NoError(t, err)
	require.Equal(t, "1111111111111111111114oLvT2", addr)
}

func TestBitcoinAddressRoundTrip(t *testing.T) {
	p := mustParams(t, "btc")
	hash := bytes.Repeat([]byte{0x11}, 20)
	addr, err := PubhashToAddress(hash, false, p)
	require.NoError(t, err)
	parsed, err := ParseAddress(addr, p)
	require.NoError(t, err)
	require.Equal(t, chaincfg.FormatP2PKH, parsed.Format)
	require.Equal(t, hash, parsed.Body)
}

func TestBech32RoundTrip(t *testing.T) {
	p := mustParams(t, "btc")
	hash := bytes.Repeat([]byte{0x22}, 20)
	addr, err := PubhashToBech32Address(hash, p)
	require.NoError(t, err)
	parsed, err := ParseAddress(addr, p)
	require.NoError(t, err)
	require.Equal(t, chaincfg.FormatBech32, parsed.Format)
	require.Equal(t, hash, parsed.Body)
}

func TestEthereumAddressIsLowercaseHexNoChecksum(t *testing.T) {
	p := mustParams(t, "eth")
	hash := bytes.Repeat([]byte{0xab}, 20)
	addr, err := PubhashToAddress(hash, false, p)
	require.NoError(t, err)
	require.Equal(t, "abababababababababababababababababababab", addr)
	parsed, err := ParseAddress(addr, p)
	require.NoError(t, err)
	require.Equal(t, chaincfg.FormatEthereum, parsed.Format)
}

func TestEthereumRejectsEIP55Checksummed(t *testing.T) {
	p := mustParams(t, "eth")
	_, err := ParseAddress("AbAbAbAbAbAbAbAbAbAbAbAbAbAbAbAbAbAbAbAb", p)
	require.Error(t, err)
}

func TestLitecoinParsesLegacyAndNewP2SH(t *testing.T) {
	p := mustParams(t, "ltc")
	hash := bytes.Repeat([]byte{0x33}, 20)
	newAddr, err := PubhashToAddress(hash, true, p)
	require.NoError(t, err)
	parsed, err := ParseAddress(newAddr, p)
	require.NoError(t, err)
	require.Equal(t, chaincfg.FormatP2SH, parsed.Format)

	legacyPayload := append([]byte{0x05}, hash...)
	legacyAddr := coinhash.Base58CheckEncode(legacyPayload)
	parsed, err = ParseAddress(legacyAddr, p)
	require.NoError(t, err)
	require.Equal(t, chaincfg.FormatP2SH, parsed.Format)
}

func TestSegwitP2SHAddress(t *testing.T) {
	p := mustParams(t, "btc")
	pubkey := bytes.Repeat([]byte{0x02}, 33)
	addr, err := PubkeyToSegwitP2SHAddress(pubkey, p)
	require.NoError(t, err)
	parsed, err := ParseAddress(addr, p)
	require.NoError(t, err)
	require.Equal(t, chaincfg.FormatP2SH, parsed.Format)
}

func TestScriptForAddressP2PKH(t *testing.T) {
	p := mustParams(t, "btc")
	hash := bytes.Repeat([]byte{0x11}, 20)
	addr, err := PubhashToAddress(hash, false, p)
	require.NoError(t, err)

	script, err := ScriptForAddress(addr, p)
	require.NoError(t, err)
	require.Equal(t, hash, script[3:23])
}

func TestScriptForAddressRejectsEthereum(t *testing.T) {
	p := mustParams(t, "eth")
	_, err := ScriptForAddress("abababababababababababababababababababab", p)
	require.Error(t, err)
}

func TestPubhashToAddressRoundTripProperty(t *testing.T) {
	p := mustParams(t, "btc")
	rapid.Check(t, func(rt *rapid.T) {
		hash := rapid.SliceOfN(rapid.Byte(), 20, 20).Draw(rt, "hash")
		addr, err := PubhashToAddress(hash, false, p)
		require.NoError(rt, err)
		parsed, err := ParseAddress(addr, p)
		require.NoError(rt, err)
		require.Equal(rt, hash, parsed.Body)
	})
}
