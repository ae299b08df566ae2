// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import "github.com/toole-brendan/mmwallet/amount"

func init() {
	MustRegister(zcashMainnet())
	MustRegister(zcashTestnet())
}

// zcashMainnet has no SegWit/bech32 support and adds a 64-byte shielded
// address/viewkey format alongside ordinary transparent p2pkh/p2sh.
func zcashMainnet() *Params {
	return &Params{
		Name:           "zec",
		BaseCoinSymbol: "ZEC",
		Family:         FamilyZcash,
		AddressVersionMap: []AddressVersion{
			{Prefix: prefix(0x1c, 0xb8), Format: FormatP2PKH},
			{Prefix: prefix(0x1c, 0xbd), Format: FormatP2SH},
			{Prefix: prefix(0x16, 0x9a), Format: FormatZcashZ},
			{Prefix: prefix(0xa8, 0xab, 0xd3), Format: FormatZcashViewkey},
		},
		SecretVersionMap: map[KeyVariant]byte{
			VariantStd:    0x80,
			VariantZcashZ: 0xab,
		},
		ZcashZSecretSuffix: 0x36, // mmgen's zcash_z wif prefix is the 2-byte "ab36", not a bare version byte.
		AddressBodyLength:  20,
		ShieldedBodyLength: 64,
		SupportedAddressTypes: map[AddressType]bool{
			AddressLegacy: true, AddressCompressed: true, AddressZcashZ: true,
		},
		DefaultAddressType:  AddressCompressed,
		Secp256k1CurveOrder: secp256k1Order,
		SecretLength:        32,
		MaxFee:              mustAmount("0.003", amount.BTCDecimals),
		Decimals:            amount.BTCDecimals,
		SecondsPerBlock:     150,
		Capabilities:        map[Capability]bool{},
		SigningMode:         SigningDaemon,
		DaemonFamily:        DaemonBitcoind,
		RPCPort:             8232,
		DataSubdir:          "",
	}
}

func zcashTestnet() *Params {
	p := zcashMainnet()
	p.IsTestnet = true
	p.AddressVersionMap = []AddressVersion{
		{Prefix: prefix(0x1d, 0x25), Format: FormatP2PKH},
		{Prefix: prefix(0x1c, 0xba), Format: FormatP2SH},
		{Prefix: prefix(0x16, 0xb6), Format: FormatZcashZ},
		{Prefix: prefix(0xa8, 0xac, 0x0c), Format: FormatZcashViewkey},
	}
	p.SecretVersionMap = map[KeyVariant]byte{VariantStd: 0xef, VariantZcashZ: 0xac}
	p.ZcashZSecretSuffix = 0x08 // testnet zcash_z wif prefix is "ac08"
	p.RPCPort = 18232
	p.DataSubdir = "testnet3"
	return p
}
