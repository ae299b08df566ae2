// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chaincfg is the protocol descriptor registry (§4.3): an
// immutable table keyed by (symbol, testnet) yielding a Params record that
// parameterizes the key and address pipelines for one coin family. It
// follows the same shape as the upstream btcsuite chaincfg package this
// module forked from — a Register function that returns ErrDuplicateNet
// for a second registration of the same network — generalized from "one
// Bitcoin-family network" to "any (coin, network) pair across eight coin
// families".
//
// Per the REDESIGN FLAGS note on "class hierarchy -> tagged records": the
// original mmgen source modeled each coin as a subclass overriding a
// handful of classmethods (BitcoinProtocol -> LitecoinProtocol,
// EthereumProtocol -> EthereumClassicProtocol, ...). This package instead
// gives every coin the same Params struct and dispatches family-specific
// behavior in the keys/addresses packages on the Family field — a switch,
// not a class hierarchy.
package chaincfg

import (
	"errors"
	"math/big"
	"strings"

	"github.com/toole-brendan/mmwallet/amount"
)

// CoinFamily selects which key/address dispatch a Params record uses.
type CoinFamily string

// The eight coin families named in the design notes.
const (
	FamilyBitcoin         CoinFamily = "bitcoin"
	FamilyBitcoinCash     CoinFamily = "bitcoin_cash"
	FamilyBitcoin2x       CoinFamily = "bitcoin_2x"
	FamilyLitecoin        CoinFamily = "litecoin"
	FamilyEthereum        CoinFamily = "ethereum"
	FamilyEthereumClassic CoinFamily = "ethereum_classic"
	FamilyZcash           CoinFamily = "zcash"
	FamilyMonero          CoinFamily = "monero"
)

// AddressFormat is the format tag attached to one entry of an
// AddressVersionMap, and returned by a successful address parse.
type AddressFormat string

// The address-format tags named in §3.
const (
	FormatP2PKH          AddressFormat = "p2pkh"
	FormatP2SH           AddressFormat = "p2sh"
	FormatZcashZ         AddressFormat = "zcash_z"
	FormatZcashViewkey   AddressFormat = "zcash_viewkey"
	FormatMonero         AddressFormat = "monero"
	FormatMoneroSub      AddressFormat = "monero_sub"
	FormatEthereum       AddressFormat = "ethereum"
	FormatBech32         AddressFormat = "bech32"
	FormatSegwitP2SH     AddressFormat = "segwit-p2sh"
)

// KeyVariant selects a secret's version-byte prefix within SecretVersionMap.
type KeyVariant string

// The two key variants named in §4.4.
const (
	VariantStd     KeyVariant = "std"
	VariantZcashZ  KeyVariant = "zcash_z"
)

// AddressType names one of the address encodings a coin supports; see
// SupportedAddressTypes.
type AddressType string

// The address types named in §3.
const (
	AddressLegacy      AddressType = "legacy"
	AddressCompressed  AddressType = "compressed"
	AddressSegwitP2SH  AddressType = "segwit-p2sh"
	AddressBech32      AddressType = "bech32"
	AddressEthereum    AddressType = "ethereum"
	AddressZcashZ      AddressType = "zcash_z"
	AddressMonero      AddressType = "monero"
)

// Capability names a coin-level feature flag.
type Capability string

// The capability flags named in §3.
const (
	CapRBF     Capability = "rbf"
	CapSegwit  Capability = "segwit"
	CapToken   Capability = "token"
)

// SigningMode selects how the signing orchestrator (C8) produces a
// signature for this coin.
type SigningMode string

// The two signing modes named in §4.8.
const (
	SigningDaemon     SigningMode = "daemon"
	SigningStandalone SigningMode = "standalone"
)

// DaemonFamily names the RPC dialect a daemon-mode coin speaks.
type DaemonFamily string

// The daemon families named in §3.
const (
	DaemonBitcoind DaemonFamily = "bitcoind"
	DaemonParity   DaemonFamily = "parity"
	DaemonNone     DaemonFamily = ""
)

// AddressVersion is one entry of an ordered address_version_map: a 1-3
// byte prefix mapped to the address format it identifies. Order is
// significant — see Params.AddressVersionMap.
type AddressVersion struct {
	Prefix []byte
	Format AddressFormat
}

// ForkEvent is one entry of a coin's fork_history (§3).
type ForkEvent struct {
	Height     int64
	BlockHash  string
	AltCoinTag string
	Replayable bool
}

// Params is one immutable (coin, network) protocol descriptor (§3). Every
// field is populated once, at registration time, by one of the family
// constructors in bitcoin.go/litecoin.go/zcash.go/ethereum.go/monero.go,
// and never mutated afterward.
type Params struct {
	// Name is the coin's canonical lowercase symbol, e.g. "btc".
	Name string
	// BaseCoinSymbol is the uppercase ticker, e.g. "BTC".
	BaseCoinSymbol string
	IsTestnet      bool
	Family         CoinFamily

	// AddressVersionMap is searched in insertion order when decoding
	// (§3's invariant); the first entry with a given Format is canonical
	// for encoding that format.
	AddressVersionMap []AddressVersion
	// SecretVersionMap maps a key variant to its 1-byte WIF prefix.
	SecretVersionMap map[KeyVariant]byte

	// AddressBodyLength is the body length (post version-prefix, pre
	// checksum) for most address formats on this coin: 20 for
	// Bitcoin-family/Zcash-transparent/Ethereum hashes, 64 for Monero.
	AddressBodyLength int
	// ShieldedBodyLength overrides AddressBodyLength for the zcash_z /
	// zcash_viewkey / monero / monero_sub formats, where it differs from
	// the coin's ordinary pubkey-hash length.
	ShieldedBodyLength int

	SupportedAddressTypes map[AddressType]bool
	DefaultAddressType    AddressType

	// Bech32HRP is set per network by the family constructors
	// (Litecoin: "ltc"/"tltc"; Bitcoin: "bc"/"tb"). Only mainnet and
	// testnet records are registered; there are no regtest HRPs.
	Bech32HRP string

	Secp256k1CurveOrder *big.Int // nil for non-secp256k1 families (Ethereum reuses Bitcoin's, Monero uses its own ed25519 order internally)
	// Ed25519SubgroupOrder is Monero's ℓ, the prime order of the Ed25519
	// base-point subgroup private keys are canonicalized against. Nil for
	// every other family.
	Ed25519SubgroupOrder *big.Int
	SecretLength        int

	MaxFee          amount.Amount
	Decimals        uint8
	SecondsPerBlock int

	Capabilities map[Capability]bool

	SigningMode  SigningMode
	DaemonFamily DaemonFamily
	RPCPort      int

	ForkHistory []ForkEvent

	// DataSubdir is the per-network subdirectory under the daemon's data
	// directory (e.g. "testnet3" for Bitcoin testnet), carried over from
	// mmgen/protocol.py's daemon_data_subdir for §6's CLI front ends.
	DataSubdir string

	// ChainID is the EIP-155 replay-protection chain id used by the
	// standalone Ethereum-family signer (§4.8 S5). Zero for non-Ethereum
	// families, where it is unused.
	ChainID int64

	// ChainName is the daemon/network label mmgen's protocol.py carries
	// per Ethereum network ("foundation", "kovan", "ethereum_classic",
	// "classic-testnet") — carried as data only; nothing in this module
	// reads it.
	ChainName string

	// DummyWIF marks a family whose pubkey_to_address path has no secret
	// export in WIF form at all (Ethereum, Monero): EncodeSecret returns
	// the raw secret hex instead of a Base58Check string.
	DummyWIF bool

	// ZcashZSecretSuffix is the second byte of zcash_z's two-byte WIF
	// prefix (mmgen stores "ab36"/"ac08" rather than a single version
	// byte). Zero for every variant/family that uses a plain one-byte
	// SecretVersionMap prefix.
	ZcashZSecretSuffix byte
}

// Cap reports whether the coin declares capability c.
func (p *Params) Cap(c Capability) bool {
	return p.Capabilities[c]
}

// SupportsAddressType reports whether the coin can encode/parse t.
func (p *Params) SupportsAddressType(t AddressType) bool {
	return p.SupportedAddressTypes[t]
}

// BodyLengthFor returns the body length expected for a given format tag,
// per §4.5 step 4: "the first whose ... remaining body length equals
// address_body_length_for(format_tag) wins".
func (p *Params) BodyLengthFor(format AddressFormat) int {
	switch format {
	case FormatZcashZ, FormatZcashViewkey, FormatMonero, FormatMoneroSub:
		if p.ShieldedBodyLength != 0 {
			return p.ShieldedBodyLength
		}
	}
	return p.AddressBodyLength
}

// registryKey is the (symbol, testnet) composite key §4.3 registers under.
type registryKey struct {
	symbol  string
	testnet bool
}

var (
	// ErrDuplicateNet mirrors the upstream btcsuite chaincfg sentinel;
	// spec §7 names it already_registered.
	ErrDuplicateNet = errors.New("already_registered")
	// ErrUnknownCoin is returned by Get when no protocol is registered
	// for the requested (symbol, testnet) pair.
	ErrUnknownCoin = errors.New("unknown_coin")
)

var registry = make(map[registryKey]*Params)

// aliases maps an alternate coin name to its canonical registry symbol,
// recovered from mmgen/protocol.py's informal "ethereumClassic" / "etc"
// naming and kept general so e.g. "bchn" can alias to "bch".
var aliases = map[string]string{
	"ethereumclassic": "etc",
}

// Register adds params to the registry under (params.Name, params.IsTestnet).
// It returns ErrDuplicateNet if that pair is already registered — the
// registry is immutable after the first successful Register call for a
// given key, matching §5's "any attempt to re-register the same symbol
// fails with already_registered".
func Register(params *Params) error {
	key := registryKey{symbol: params.Name, testnet: params.IsTestnet}
	if _, ok := registry[key]; ok {
		return ErrDuplicateNet
	}
	registry[key] = params
	return nil
}

// MustRegister calls Register and panics on error. Used only from package
// init for the core coins; callers (e.g. the altcoin catalog expansion)
// must use Register and handle the error.
func MustRegister(params *Params) {
	if err := Register(params); err != nil {
		panic("chaincfg: failed to register " + params.Name + ": " + err.Error())
	}
}

// Get looks up the protocol record for symbol on the given network,
// resolving aliases first. It fails with ErrUnknownCoin if no such record
// is registered.
func Get(symbol string, testnet bool) (*Params, error) {
	symbol = strings.ToLower(symbol)
	if canon, ok := aliases[symbol]; ok {
		symbol = canon
	}
	p, ok := registry[registryKey{symbol: symbol, testnet: testnet}]
	if !ok {
		return nil, ErrUnknownCoin
	}
	return p, nil
}

// ListCoins returns every distinct registered symbol, core coins and
// registered altcoins alike.
func ListCoins() []string {
	seen := make(map[string]bool)
	var out []string
	for k := range registry {
		if !seen[k.symbol] {
			seen[k.symbol] = true
			out = append(out, k.symbol)
		}
	}
	return out
}

// IsRegistered reports whether symbol is registered on either network.
func IsRegistered(symbol string) bool {
	symbol = strings.ToLower(symbol)
	if canon, ok := aliases[symbol]; ok {
		symbol = canon
	}
	_, mainnetOK := registry[registryKey{symbol: symbol, testnet: false}]
	_, testnetOK := registry[registryKey{symbol: symbol, testnet: true}]
	return mainnetOK || testnetOK
}
