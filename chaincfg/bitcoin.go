// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"math/big"

	"github.com/toole-brendan/mmwallet/amount"
)

// secp256k1Order is the order of the secp256k1 generator point, shared by
// every Bitcoin-family coin (and reused verbatim by Ethereum, which also
// signs with secp256k1). Hardcoded rather than pulled from a curve
// package's internals, since it is public, fixed, ecosystem-standard data:
// FFFFFFFF FFFFFFFF FFFFFFFF FFFFFFFE BAAEDCE6 AF48A03B BFD25E8C D0364141.
var secp256k1Order, _ = new(big.Int).SetString(
	"fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141", 16)

func mustAmount(s string, decimals uint8) amount.Amount {
	a, err := amount.ParseAmount(s, decimals)
	if err != nil {
		panic(err)
	}
	return a
}

func prefix(b ...byte) []byte { return b }

func init() {
	MustRegister(bitcoinMainnet())
	MustRegister(bitcoinTestnet())
	MustRegister(bitcoinCashMainnet())
	MustRegister(bitcoinCashTestnet())
	MustRegister(bitcoin2xMainnet())
	MustRegister(bitcoin2xTestnet())
}

func bitcoinMainnet() *Params {
	return &Params{
		Name:           "btc",
		BaseCoinSymbol: "BTC",
		IsTestnet:      false,
		Family:         FamilyBitcoin,
		AddressVersionMap: []AddressVersion{
			{Prefix: prefix(0x00), Format: FormatP2PKH},
			{Prefix: prefix(0x05), Format: FormatP2SH},
		},
		SecretVersionMap:  map[KeyVariant]byte{VariantStd: 0x80},
		AddressBodyLength: 20,
		SupportedAddressTypes: map[AddressType]bool{
			AddressLegacy: true, AddressCompressed: true, AddressSegwitP2SH: true, AddressBech32: true,
		},
		DefaultAddressType:  AddressCompressed,
		Bech32HRP:           "bc",
		Secp256k1CurveOrder: secp256k1Order,
		SecretLength:        32,
		MaxFee:              mustAmount("0.003", amount.BTCDecimals),
		Decimals:            amount.BTCDecimals,
		SecondsPerBlock:     600,
		Capabilities:        map[Capability]bool{CapRBF: true, CapSegwit: true},
		SigningMode:         SigningDaemon,
		DaemonFamily:        DaemonBitcoind,
		RPCPort:             8332,
		ForkHistory: []ForkEvent{
			{Height: 478559, BlockHash: "00000000000000000019f112ec0a9982926f1258cdcc558dd7c3b7e5dc7fa148", AltCoinTag: "bch", Replayable: false},
			{Height: 0, AltCoinTag: "b2x", Replayable: true},
		},
		DataSubdir: "",
	}
}

func bitcoinTestnet() *Params {
	p := bitcoinMainnet()
	p.IsTestnet = true
	p.AddressVersionMap = []AddressVersion{
		{Prefix: prefix(0x6f), Format: FormatP2PKH},
		{Prefix: prefix(0xc4), Format: FormatP2SH},
	}
	p.SecretVersionMap = map[KeyVariant]byte{VariantStd: 0xef}
	p.Bech32HRP = "tb"
	p.RPCPort = 18332
	p.DataSubdir = "testnet3"
	p.ForkHistory = nil
	return p
}

// bitcoinCashMainnet forks Bitcoin's address scheme but drops SegWit
// capability and uses the FORKID sighash — mmgen/protocol.py's
// BitcoinCashProtocol.pubhex2redeem_script/pubhex2segwitaddr both raise
// NotImplementedError, so SupportedAddressTypes omits segwit-p2sh/bech32.
func bitcoinCashMainnet() *Params {
	p := bitcoinMainnet()
	p.Name = "bch"
	p.BaseCoinSymbol = "BCH"
	p.Family = FamilyBitcoinCash
	p.SupportedAddressTypes = map[AddressType]bool{AddressLegacy: true, AddressCompressed: true}
	p.Capabilities = map[Capability]bool{}
	p.MaxFee = mustAmount("0.1", amount.BTCDecimals)
	p.RPCPort = 8442
	p.ForkHistory = []ForkEvent{
		{Height: 478559, BlockHash: "000000000000000000651ef99cb9fcbe0dadde1d424bd9f15ff20136191a5eec", AltCoinTag: "btc", Replayable: false},
	}
	return p
}

func bitcoinCashTestnet() *Params {
	p := bitcoinCashMainnet()
	p.IsTestnet = true
	p.AddressVersionMap = []AddressVersion{
		{Prefix: prefix(0x6f), Format: FormatP2PKH},
		{Prefix: prefix(0xc4), Format: FormatP2SH},
	}
	p.SecretVersionMap = map[KeyVariant]byte{VariantStd: 0xef}
	p.RPCPort = 18442
	p.DataSubdir = "testnet3"
	p.ForkHistory = nil
	return p
}

// bitcoin2xMainnet models B2XProtocol: mmgen/protocol.py's B2XProtocol
// inherits BitcoinProtocol's address/WIF/bech32 bytes unchanged, overriding
// only the daemon RPC port and fee cap — the SegWit2x fork that never
// replayed against mainnet (forks=[(None,'','btc',True)], activation
// height never reached).
func bitcoin2xMainnet() *Params {
	p := bitcoinMainnet()
	p.Name = "b2x"
	p.BaseCoinSymbol = "B2X"
	p.Family = FamilyBitcoin2x
	p.MaxFee = mustAmount("0.1", amount.BTCDecimals)
	p.RPCPort = 8338
	p.ForkHistory = []ForkEvent{{Height: 0, AltCoinTag: "btc", Replayable: true}}
	return p
}

func bitcoin2xTestnet() *Params {
	p := bitcoin2xMainnet()
	p.IsTestnet = true
	p.AddressVersionMap = []AddressVersion{
		{Prefix: prefix(0x6f), Format: FormatP2PKH},
		{Prefix: prefix(0xc4), Format: FormatP2SH},
	}
	p.SecretVersionMap = map[KeyVariant]byte{VariantStd: 0xef}
	p.RPCPort = 18338
	p.DataSubdir = "testnet5"
	p.ForkHistory = nil
	return p
}

// SighashType returns the sighash flag byte-name this coin commits to
// during standalone/daemon signing (§4.8): plain ALL for Bitcoin, ALL with
// the BCH anti-replay FORKID bit for Bitcoin Cash.
func (p *Params) SighashType() string {
	if p.Family == FamilyBitcoinCash {
		return "ALL|FORKID"
	}
	return "ALL"
}
