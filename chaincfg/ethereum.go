// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import "github.com/toole-brendan/mmwallet/amount"

func init() {
	MustRegister(ethereumMainnet())
	MustRegister(ethereumTestnet())
	MustRegister(ethereumClassicMainnet())
	MustRegister(ethereumClassicTestnet())
}

// ethereumMainnet has no base58/bech32 address encoding at all: an address
// is the lowercase hex Keccak-256 pubkey hash, unchecksummed, and a secret
// has no WIF form (DummyWIF) — both dispatched in the keys/addresses
// packages on Family, not on a type assertion.
func ethereumMainnet() *Params {
	return &Params{
		Name:                "eth",
		BaseCoinSymbol:      "ETH",
		Family:              FamilyEthereum,
		AddressVersionMap:   nil, // Ethereum parses by shape, not a version-byte map; see addresses.ParseAddress.
		SecretVersionMap:    map[KeyVariant]byte{},
		AddressBodyLength:   20,
		SupportedAddressTypes: map[AddressType]bool{AddressEthereum: true},
		DefaultAddressType:  AddressEthereum,
		Secp256k1CurveOrder: secp256k1Order,
		SecretLength:        32,
		MaxFee:              mustAmount("0.005", amount.EthDecimals),
		Decimals:            amount.EthDecimals,
		SecondsPerBlock:     15,
		Capabilities:        map[Capability]bool{CapToken: true},
		SigningMode:         SigningStandalone,
		DaemonFamily:        DaemonParity,
		RPCPort:             8545,
		ChainID:             1,
		ChainName:           "foundation",
		DummyWIF:            true,
	}
}

func ethereumTestnet() *Params {
	p := ethereumMainnet()
	p.IsTestnet = true
	p.RPCPort = 8547
	p.ChainID = 42
	p.ChainName = "kovan"
	return p
}

// ethereumClassicMainnet differs from Ethereum only in chain id and RPC
// port — protocol.py's EthereumClassicProtocol overrides exactly those two
// class attributes, so this constructor starts from ethereumMainnet and
// patches them, same as the Bitcoin-family testnet constructors do.
func ethereumClassicMainnet() *Params {
	p := ethereumMainnet()
	p.Name = "etc"
	p.BaseCoinSymbol = "ETC"
	p.Family = FamilyEthereumClassic
	p.RPCPort = 8555
	p.ChainID = 61
	p.ChainName = "ethereum_classic"
	return p
}

func ethereumClassicTestnet() *Params {
	p := ethereumClassicMainnet()
	p.IsTestnet = true
	p.RPCPort = 8557
	p.ChainID = 62
	p.ChainName = "classic-testnet"
	return p
}
