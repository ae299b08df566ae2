// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"fmt"

	"github.com/toole-brendan/mmwallet/amount"
	"github.com/toole-brendan/mmwallet/walleterr"
)

// AltcoinEntry is one row of the generation-only altcoin catalog (§4.9):
// enough data to synthesize a Bitcoin-family Params record without a new
// hand-written constructor per coin. mmgen's upstream source built these
// records by exec()-ing a generated class body at import time
// (make_init_genonly_altcoins_str); the REDESIGN FLAGS note calls that out
// explicitly, so RegisterAltcoin below is a pure constructor instead —
// the catalog is just data, and no code is ever synthesized or evaluated.
type AltcoinEntry struct {
	Symbol     string // lowercase, e.g. "dash"
	Name       string
	P2PKHByte  byte
	P2SHByte   byte
	HasP2SH    bool
	WIFByte    byte
	HasSegwit  bool
	Bech32HRP  string
	TrustLevel int // -1 disables the entry entirely
}

// RegisterAltcoin synthesizes and registers mainnet Params for one catalog
// entry. A core coin (btc, bch, ltc, eth, etc, zec, xmr) always shadows a
// catalog entry of the same symbol — mmgen's init_genonly_altcoins returns
// immediately for any symbol already in core_coins before ever consulting
// the generated catalog, so RegisterAltcoin refuses to overwrite one.
func RegisterAltcoin(e AltcoinEntry) error {
	if e.TrustLevel == -1 {
		return fmt.Errorf("altcoin %s: %w", e.Symbol, walleterr.ErrDisabledCoin)
	}
	if IsRegistered(e.Symbol) {
		return fmt.Errorf("altcoin %s: %w", e.Symbol, ErrDuplicateNet)
	}

	versions := []AddressVersion{{Prefix: prefix(e.P2PKHByte), Format: FormatP2PKH}}
	types := map[AddressType]bool{AddressLegacy: true, AddressCompressed: true}
	caps := map[Capability]bool{}
	if e.HasP2SH {
		versions = append(versions, AddressVersion{Prefix: prefix(e.P2SHByte), Format: FormatP2SH})
	}
	if e.HasSegwit && e.Bech32HRP != "" {
		types[AddressSegwitP2SH] = true
		types[AddressBech32] = true
		caps[CapSegwit] = true
	}

	return Register(&Params{
		Name:                  e.Symbol,
		BaseCoinSymbol:        e.Symbol,
		Family:                FamilyBitcoin,
		AddressVersionMap:     versions,
		SecretVersionMap:      map[KeyVariant]byte{VariantStd: e.WIFByte},
		AddressBodyLength:     20,
		SupportedAddressTypes: types,
		DefaultAddressType:    AddressCompressed,
		Bech32HRP:             e.Bech32HRP,
		Secp256k1CurveOrder:   secp256k1Order,
		SecretLength:          32,
		MaxFee:                mustAmount("0.01", amount.BTCDecimals),
		Decimals:              amount.BTCDecimals,
		SecondsPerBlock:       150,
		Capabilities:          caps,
		SigningMode:           SigningDaemon,
		DaemonFamily:          DaemonBitcoind,
	})
}

// defaultAltcoinCatalog lists the generation-only altcoins mmgen's
// altcoins/data.py records for the Bitcoin-family pubkeyhash dispatch.
// trust levels follow mmgen's own scale (2 rated, lower = less vetted);
// none here are disabled, but the field is threaded through so a deployment
// can flip one off without deleting the catalog row.
var defaultAltcoinCatalog = []AltcoinEntry{
	{Symbol: "dash", Name: "Dash", P2PKHByte: 0x4c, P2SHByte: 0x10, HasP2SH: true, WIFByte: 0xcc, TrustLevel: 2},
	{Symbol: "doge", Name: "Dogecoin", P2PKHByte: 0x1e, P2SHByte: 0x16, HasP2SH: true, WIFByte: 0x9e, TrustLevel: 2},
	{Symbol: "emc2", Name: "Einsteinium", P2PKHByte: 0x21, P2SHByte: 0x05, HasP2SH: true, WIFByte: 0xa1, TrustLevel: 1},
	{Symbol: "nmc", Name: "Namecoin", P2PKHByte: 0x34, HasP2SH: false, WIFByte: 0xb4, TrustLevel: 1},
	{Symbol: "vtc", Name: "Vertcoin", P2PKHByte: 0x47, P2SHByte: 0x05, HasP2SH: true, WIFByte: 0xc7, HasSegwit: true, Bech32HRP: "vtc", TrustLevel: 1},
}

// RegisterDefaultAltcoins registers the built-in generation-only catalog.
// It is not called from an init() — unlike the core coins, the
// catalog is opt-in, so cmd/ front ends call this explicitly when a
// deployment wants the extended coin list available.
func RegisterDefaultAltcoins() []error {
	var errs []error
	for _, e := range defaultAltcoinCatalog {
		if err := RegisterAltcoin(e); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
