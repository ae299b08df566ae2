// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import "github.com/toole-brendan/mmwallet/amount"

func init() {
	MustRegister(litecoinMainnet())
	MustRegister(litecoinTestnet())
}

// litecoinMainnet reuses Bitcoin-family dispatch (§9: differences become
// fields, not a new family) but with its own version bytes and HRP.
//
// The new p2sh version 0x32 is listed first, then the legacy 0x05 (the
// historical Bitcoin-compatible prefix Litecoin shipped with before the
// 2017 p2sh migration) — §3's ordered-map invariant requires the new
// prefix to be the one `encode` produces, while `decode` must still accept
// either. Order in AddressVersionMap encodes exactly that.
func litecoinMainnet() *Params {
	return &Params{
		Name:           "ltc",
		BaseCoinSymbol: "LTC",
		Family:         FamilyLitecoin,
		AddressVersionMap: []AddressVersion{
			{Prefix: prefix(0x30), Format: FormatP2PKH},
			{Prefix: prefix(0x32), Format: FormatP2SH},
			{Prefix: prefix(0x05), Format: FormatP2SH},
		},
		SecretVersionMap:  map[KeyVariant]byte{VariantStd: 0xb0},
		AddressBodyLength: 20,
		SupportedAddressTypes: map[AddressType]bool{
			AddressLegacy: true, AddressCompressed: true, AddressSegwitP2SH: true, AddressBech32: true,
		},
		DefaultAddressType:  AddressCompressed,
		Bech32HRP:           "ltc",
		Secp256k1CurveOrder: secp256k1Order,
		SecretLength:        32,
		MaxFee:              mustAmount("0.3", amount.BTCDecimals),
		Decimals:            amount.BTCDecimals,
		SecondsPerBlock:     150,
		Capabilities:        map[Capability]bool{CapRBF: true, CapSegwit: true},
		SigningMode:         SigningDaemon,
		DaemonFamily:        DaemonBitcoind,
		RPCPort:             9332,
		DataSubdir:          "",
	}
}

// litecoinTestnet's second p2sh version byte (0xc4) is bitwise identical to
// Bitcoin testnet's p2sh prefix — mmgen/protocol.py carries it unchanged,
// and whether that's deliberate cross-chain compatibility or an oversight
// in the upstream source is the open question spec §9 says to preserve
// rather than silently "fix".
func litecoinTestnet() *Params {
	p := litecoinMainnet()
	p.IsTestnet = true
	p.AddressVersionMap = []AddressVersion{
		{Prefix: prefix(0x6f), Format: FormatP2PKH},
		{Prefix: prefix(0x3a), Format: FormatP2SH},
		{Prefix: prefix(0xc4), Format: FormatP2SH},
	}
	p.SecretVersionMap = map[KeyVariant]byte{VariantStd: 0xef}
	p.Bech32HRP = "tltc"
	p.RPCPort = 19332
	p.DataSubdir = "testnet4"
	return p
}
