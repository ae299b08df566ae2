// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/toole-brendan/mmwallet/walleterr"
)

func TestCoreCoinsRegistered(t *testing.T) {
	for _, symbol := range []string{"btc", "bch", "b2x", "ltc", "eth", "etc", "zec", "xmr"} {
		require.True(t, IsRegistered(symbol), "expected %s to be registered", symbol)
	}
}

func TestBitcoin2xSharesBitcoinEncoding(t *testing.T) {
	b2x, err := Get("b2x", false)
	require.NoError(t, err)
	btc, err := Get("btc", false)
	require.NoError(t, err)
	require.Equal(t, FamilyBitcoin2x, b2x.Family)
	require.Equal(t, btc.AddressVersionMap, b2x.AddressVersionMap)
	require.Equal(t, btc.SecretVersionMap, b2x.SecretVersionMap)
	require.NotEqual(t, btc.MaxFee.String(), b2x.MaxFee.String())
}

func TestGetUnknownCoin(t *testing.T) {
	_, err := Get("nope", false)
	require.True(t, errors.Is(err, ErrUnknownCoin))
}

func TestRegisterDuplicateFails(t *testing.T) {
	btc, err := Get("btc", false)
	require.NoError(t, err)
	err = Register(btc)
	require.True(t, errors.Is(err, ErrDuplicateNet))
}

func TestEthereumClassicChainID(t *testing.T) {
	p, err := Get("etc", false)
	require.NoError(t, err)
	require.EqualValues(t, 61, p.ChainID)
	require.True(t, p.DummyWIF)
}

func TestEthereumClassicAlias(t *testing.T) {
	p, err := Get("ethereumClassic", false)
	require.NoError(t, err)
	require.Equal(t, "etc", p.Name)
}

func TestZcashShieldedBodyLength(t *testing.T) {
	p, err := Get("zec", false)
	require.NoError(t, err)
	require.Equal(t, 64, p.BodyLengthFor(FormatZcashZ))
	require.Equal(t, 20, p.BodyLengthFor(FormatP2PKH))
}

func TestLitecoinP2SHOrderedVersions(t *testing.T) {
	p, err := Get("ltc", false)
	require.NoError(t, err)
	require.Equal(t, FormatP2SH, p.AddressVersionMap[1].Format)
	require.Equal(t, byte(0x32), p.AddressVersionMap[1].Prefix[0])
	require.Equal(t, byte(0x05), p.AddressVersionMap[2].Prefix[0])
}

func TestBitcoinCashDropsSegwit(t *testing.T) {
	p, err := Get("bch", false)
	require.NoError(t, err)
	require.False(t, p.SupportsAddressType(AddressBech32))
	require.Equal(t, "ALL|FORKID", p.SighashType())
}

func TestMoneroHasNoWIF(t *testing.T) {
	p, err := Get("xmr", false)
	require.NoError(t, err)
	require.True(t, p.DummyWIF)
	require.Empty(t, p.SecretVersionMap)
	require.NotNil(t, p.Ed25519SubgroupOrder)
}

func TestRegisterAltcoinDisabled(t *testing.T) {
	err := RegisterAltcoin(AltcoinEntry{Symbol: "zzz", TrustLevel: -1})
	require.True(t, errors.Is(err, walleterr.ErrDisabledCoin))
}

func TestRegisterAltcoinCoreCoinShadowed(t *testing.T) {
	err := RegisterAltcoin(AltcoinEntry{Symbol: "btc", TrustLevel: 1, WIFByte: 0x80, P2PKHByte: 0x00})
	require.True(t, errors.Is(err, ErrDuplicateNet))
}

func TestRegisterDefaultAltcoins(t *testing.T) {
	errs := RegisterDefaultAltcoins()
	require.Empty(t, errs)
	require.True(t, IsRegistered("doge"))
	p, err := Get("doge", false)
	require.NoError(t, err)
	require.Equal(t, FamilyBitcoin, p.Family)
}
