// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"math/big"
)

// ed25519SubgroupOrder is ℓ = 2^252 + 27742317777372353535851937790883648493,
// the prime order of the Ed25519 base-point subgroup. Monero reduces every
// private key modulo this value before use (§4.4's key-canonicalization
// dispatch).
var ed25519SubgroupOrder, _ = new(big.Int).SetString(
	"1000000000000000000000000000000014def9dea2f79cd65812631a5cf5d3ed", 16)

func init() {
	MustRegister(moneroMainnet())
	MustRegister(moneroTestnet())
}

// moneroMainnet has no WIF secret export (DummyWIF) and a block-wise
// base58 address encoding rather than Base58Check — both dispatched on
// Family rather than represented as yet another AddressFormat-keyed
// version map entry, since the encoding algorithm itself differs, not
// just the prefix.
func moneroMainnet() *Params {
	return &Params{
		Name:           "xmr",
		BaseCoinSymbol: "XMR",
		Family:         FamilyMonero,
		AddressVersionMap: []AddressVersion{
			{Prefix: prefix(0x12), Format: FormatMonero},
			{Prefix: prefix(0x2a), Format: FormatMoneroSub},
		},
		SecretVersionMap:   map[KeyVariant]byte{},
		AddressBodyLength:  64,
		ShieldedBodyLength: 64,
		SupportedAddressTypes: map[AddressType]bool{
			AddressMonero: true,
		},
		DefaultAddressType:   AddressMonero,
		Ed25519SubgroupOrder: ed25519SubgroupOrder,
		SecretLength:         32,
		MaxFee:               mustAmount("0.10", 12),
		Decimals:             12,
		SecondsPerBlock:      120,
		Capabilities:         map[Capability]bool{},
		SigningMode:          SigningDaemon,
		DaemonFamily:         DaemonNone,
		RPCPort:              18081,
		DummyWIF:             true,
	}
}

func moneroTestnet() *Params {
	p := moneroMainnet()
	p.IsTestnet = true
	p.AddressVersionMap = []AddressVersion{
		{Prefix: prefix(0x35), Format: FormatMonero},
		{Prefix: prefix(0x3f), Format: FormatMoneroSub},
	}
	p.RPCPort = 28081
	return p
}
