// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package addresses implements the address pipeline (§4.5): public-key
// hash to address across three encoding families (Base58Check,
// Bech32/SegWit, hex/Keccak), and the reverse parse back to a tagged
// format. Grounded on the teacher's addresses/shell_addresses.go, which
// used the same btcsuite base58/bech32/txscript primitives for a single
// coin family — generalized here to dispatch on chaincfg.Params instead
// of assuming Bitcoin.
package addresses

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/txscript"
	"github.com/toole-brendan/mmwallet/chaincfg"
	"github.com/toole-brendan/mmwallet/coinhash"
	"github.com/toole-brendan/mmwallet/walleterr"
)

// Parsed is the result of a successful ParseAddress: the raw body
// (pubkey hash, shielded payload, or Ethereum hash) and the format tag
// that body was recognized under.
type Parsed struct {
	Format chaincfg.AddressFormat
	Body   []byte
}

// PubhashToAddress implements §4.5's first operation. Ethereum returns
// the lowercased hex hash directly, with no version prefix and no
// checksum; every other family base58-check-encodes the matching version
// prefix from p's AddressVersionMap.
func PubhashToAddress(pubkeyHash []byte, isP2SH bool, p *chaincfg.Params) (string, error) {
	if p.Family == chaincfg.FamilyEthereum || p.Family == chaincfg.FamilyEthereumClassic {
		if isP2SH {
			return "", fmt.Errorf("addresses: %s has no p2sh format", p.Name)
		}
		if len(pubkeyHash) != p.AddressBodyLength {
			return "", walleterr.ErrBadAddressLength
		}
		return hex.EncodeToString(pubkeyHash), nil
	}

	wantFormat := chaincfg.FormatP2PKH
	if isP2SH {
		wantFormat = chaincfg.FormatP2SH
	}
	if len(pubkeyHash) != p.BodyLengthFor(wantFormat) {
		return "", walleterr.ErrBadAddressLength
	}
	version, err := firstVersionFor(p, wantFormat)
	if err != nil {
		return "", err
	}
	payload := make([]byte, 0, len(version)+len(pubkeyHash))
	payload = append(payload, version...)
	payload = append(payload, pubkeyHash...)
	return coinhash.Base58CheckEncode(payload), nil
}

// PubkeyToRedeemScript builds the `00 14 <hash160(pubkey)>` witness
// program used by SegWit-via-P2SH (§4.5's second operation).
func PubkeyToRedeemScript(pubkey []byte) ([]byte, error) {
	hash := coinhash.Hash160(pubkey)
	builder := txscript.NewScriptBuilder()
	builder.AddOp(txscript.OP_0)
	builder.AddData(hash)
	return builder.Script()
}

// PubkeyToSegwitP2SHAddress wraps the redeem script's hash160 as a p2sh
// address (§4.5's third operation).
func PubkeyToSegwitP2SHAddress(pubkey []byte, p *chaincfg.Params) (string, error) {
	script, err := PubkeyToRedeemScript(pubkey)
	if err != nil {
		return "", err
	}
	return PubhashToAddress(coinhash.Hash160(script), true, p)
}

// PubhashToBech32Address encodes pubhash as a BIP-173 witness-version-0
// address under p's HRP (§4.5's fourth operation).
func PubhashToBech32Address(pubhash []byte, p *chaincfg.Params) (string, error) {
	if p.Bech32HRP == "" {
		return "", fmt.Errorf("addresses: %s has no bech32 hrp configured", p.Name)
	}
	return coinhash.Bech32Encode(p.Bech32HRP, 0, pubhash)
}

// ScriptForAddress builds the scriptPubKey an unsigned Bitcoin-family
// transaction output locks to, for the three transparent formats those
// coins use: p2pkh, p2sh (including SegWit-via-P2SH), and bech32 v0.
// Ethereum-family and Monero coins have no scriptPubKey concept and are
// rejected.
func ScriptForAddress(s string, p *chaincfg.Params) ([]byte, error) {
	switch p.Family {
	case chaincfg.FamilyEthereum, chaincfg.FamilyEthereumClassic, chaincfg.FamilyMonero:
		return nil, fmt.Errorf("addresses: %s has no scriptPubKey format", p.Name)
	}
	parsed, err := ParseAddress(s, p)
	if err != nil {
		return nil, err
	}
	builder := txscript.NewScriptBuilder()
	switch parsed.Format {
	case chaincfg.FormatP2PKH:
		builder.AddOp(txscript.OP_DUP).AddOp(txscript.OP_HASH160).AddData(parsed.Body).
			AddOp(txscript.OP_EQUALVERIFY).AddOp(txscript.OP_CHECKSIG)
	case chaincfg.FormatP2SH:
		builder.AddOp(txscript.OP_HASH160).AddData(parsed.Body).AddOp(txscript.OP_EQUAL)
	case chaincfg.FormatBech32:
		builder.AddOp(txscript.OP_0).AddData(parsed.Body)
	default:
		return nil, fmt.Errorf("addresses: %q parses to unsupported scriptPubKey format %q", s, parsed.Format)
	}
	return builder.Script()
}

// ParseAddress dispatches a free-form address string back to its tagged
// body, following the four-step precedence order in §4.5:
// bech32 (if supported and hrp-prefixed) -> Ethereum hex -> Monero
// block-base58 -> Base58Check against the ordered version map.
func ParseAddress(s string, p *chaincfg.Params) (*Parsed, error) {
	if p.SupportsAddressType(chaincfg.AddressBech32) && p.Bech32HRP != "" &&
		strings.HasPrefix(strings.ToLower(s), strings.ToLower(p.Bech32HRP)+"1") {
		version, program, err := coinhash.Bech32Decode(p.Bech32HRP, s)
		if err != nil {
			return nil, err
		}
		if version != 0 {
			return nil, walleterr.ErrBadWitnessVersion
		}
		return &Parsed{Format: chaincfg.FormatBech32, Body: program}, nil
	}

	if p.Family == chaincfg.FamilyEthereum || p.Family == chaincfg.FamilyEthereumClassic {
		return parseEthereumAddress(s, p)
	}

	if p.Family == chaincfg.FamilyMonero {
		return parseMoneroAddress(s, p)
	}

	return parseBase58CheckAddress(s, p)
}

func parseEthereumAddress(s string, p *chaincfg.Params) (*Parsed, error) {
	want := 2 * p.AddressBodyLength
	if len(s) != want {
		return nil, walleterr.ErrBadAddressLength
	}
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
			return nil, walleterr.ErrUnknownAddressFormat
		}
	}
	body, err := hex.DecodeString(s)
	if err != nil {
		return nil, walleterr.ErrUnknownAddressFormat
	}
	return &Parsed{Format: chaincfg.FormatEthereum, Body: body}, nil
}

func parseMoneroAddress(s string, p *chaincfg.Params) (*Parsed, error) {
	body, err := coinhash.MoneroBase58Decode(s)
	if err != nil {
		return nil, err
	}
	for _, v := range p.AddressVersionMap {
		if bodyAfterPrefixMatches(body, v.Prefix) {
			remainder := body[len(v.Prefix):]
			if len(remainder) == p.BodyLengthFor(v.Format) {
				return &Parsed{Format: v.Format, Body: remainder}, nil
			}
		}
	}
	return nil, walleterr.ErrUnknownAddressFormat
}

func parseBase58CheckAddress(s string, p *chaincfg.Params) (*Parsed, error) {
	payload, err := coinhash.Base58CheckDecode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", walleterr.ErrBadChecksum, err)
	}
	for _, v := range p.AddressVersionMap {
		if bodyAfterPrefixMatches(payload, v.Prefix) {
			remainder := payload[len(v.Prefix):]
			if len(remainder) == p.BodyLengthFor(v.Format) {
				return &Parsed{Format: v.Format, Body: remainder}, nil
			}
		}
	}
	return nil, walleterr.ErrUnknownAddressFormat
}

func bodyAfterPrefixMatches(payload, prefix []byte) bool {
	if len(payload) < len(prefix) {
		return false
	}
	for i, b := range prefix {
		if payload[i] != b {
			return false
		}
	}
	return true
}

// firstVersionFor returns the first AddressVersionMap prefix registered
// for format — "canonical for encoding", per §4.5's ordered-map contract
// (e.g. Litecoin's new 0x32 p2sh byte, not the legacy 0x05 alias).
func firstVersionFor(p *chaincfg.Params, format chaincfg.AddressFormat) ([]byte, error) {
	for _, v := range p.AddressVersionMap {
		if v.Format == format {
			return v.Prefix, nil
		}
	}
	return nil, fmt.Errorf("addresses: %s has no version byte for format %q", p.Name, format)
}
