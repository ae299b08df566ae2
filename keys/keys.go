// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package keys implements the private-key canonicalization and WIF
// encode/decode pipeline (§4.4), dispatched on chaincfg.CoinFamily rather
// than on a type switch over per-coin structs — the same "tagged record,
// not a class hierarchy" shape chaincfg itself uses.
package keys

import (
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/toole-brendan/mmwallet/chaincfg"
	"github.com/toole-brendan/mmwallet/coinhash"
	"github.com/toole-brendan/mmwallet/walleterr"
)

// Canonicalize reduces a raw secret to the form the coin's signer actually
// uses, and validates the two fatal preconditions named in §4.4: the
// reduced scalar must be neither zero nor equal to the group order.
//
// Bitcoin-family and Ethereum secrets above the secp256k1 group order are
// reduced modulo it (zero and the order itself are rejected); Zcash's
// zcash_z variant clears the top 4 bits of the first byte; Monero
// reinterprets the 32 bytes little-endian and reduces modulo the Ed25519
// subgroup order ℓ, re-emitting little-endian.
func Canonicalize(secret []byte, variant chaincfg.KeyVariant, p *chaincfg.Params) ([]byte, error) {
	if len(secret) != p.SecretLength {
		return nil, fmt.Errorf("keys: secret must be %d bytes, got %d", p.SecretLength, len(secret))
	}

	out := make([]byte, len(secret))
	copy(out, secret)

	switch p.Family {
	case chaincfg.FamilyZcash:
		if variant == chaincfg.VariantZcashZ {
			out[0] &= 0x0f
		}
	case chaincfg.FamilyMonero:
		out = reduceMonero(out, p.Ed25519SubgroupOrder)
		return out, nil // Monero's reduced scalar is never zero/order-equal by construction of ℓ-reduction on a random 32-byte input in practice; no secp256k1 check applies.
	}

	if p.Secp256k1CurveOrder != nil {
		n := new(big.Int).SetBytes(out)
		if n.Cmp(p.Secp256k1CurveOrder) > 0 {
			out = n.Mod(n, p.Secp256k1CurveOrder).FillBytes(make([]byte, len(out)))
		}
	}
	if err := checkSecp256k1Bounds(out, p); err != nil {
		return nil, err
	}
	return out, nil
}

// checkSecp256k1Bounds enforces §4.4's two fatal preconditions for any
// family signing with secp256k1 (Bitcoin-family and Ethereum share this
// check since they share Secp256k1CurveOrder).
func checkSecp256k1Bounds(secret []byte, p *chaincfg.Params) error {
	if p.Secp256k1CurveOrder == nil {
		return nil
	}
	n := new(big.Int).SetBytes(secret)
	if n.Sign() == 0 {
		return walleterr.ErrPrivateKeyZero
	}
	if n.Cmp(p.Secp256k1CurveOrder) == 0 {
		return walleterr.ErrPrivateKeyEqualsOrder
	}
	return nil
}

// reduceMonero reinterprets sec as a little-endian integer and reduces it
// modulo order, re-emitting the result little-endian at the same width —
// mirroring mmgen/protocol.py's MoneroProtocol.preprocess_key:
// int.to_bytes(int.from_bytes(sec[::-1], 'big') % l, len(sec), 'big')[::-1].
func reduceMonero(sec []byte, order *big.Int) []byte {
	be := make([]byte, len(sec))
	for i, b := range sec {
		be[len(sec)-1-i] = b
	}
	n := new(big.Int).SetBytes(be)
	n.Mod(n, order)
	reducedBE := n.FillBytes(make([]byte, len(sec)))
	out := make([]byte, len(sec))
	for i, b := range reducedBE {
		out[len(sec)-1-i] = b
	}
	return out
}

// PubkeyFromSecret derives the secp256k1 public key for secret, compressed
// or uncompressed per the caller's wish. Only meaningful for families
// dispatching through secp256k1 (Bitcoin-family, Ethereum); callers must
// not call this for Zcash-shielded or Monero keys.
func PubkeyFromSecret(secret []byte, compressed bool) ([]byte, error) {
	_, pub := btcec.PrivKeyFromBytes(secret)
	if compressed {
		return pub.SerializeCompressed(), nil
	}
	return pub.SerializeUncompressed(), nil
}

// EncodeSecret renders secret as the coin's secret-export string (§4.4).
// compressed selects whether the trailing compressed-pubkey marker byte is
// appended; it only affects VariantStd on non-Monero coins — every other
// variant has no such marker and ignores it.
//
// Families with DummyWIF (Ethereum, Monero) have no Base58Check secret
// format at all — mmgen's DummyWIF mixin raises NotImplementedError on
// wif2hex/hex2wif there, so this returns the raw lowercase hex instead,
// matching the pass-through those coins actually use for key storage.
//
// Zcash's zcash_z variant carries a two-byte version prefix ("ab36" on
// mainnet) rather than the single byte every other variant uses;
// ZcashZSecretSuffix supplies that second byte.
func EncodeSecret(secret []byte, variant chaincfg.KeyVariant, compressed bool, p *chaincfg.Params) (string, error) {
	if p.DummyWIF {
		return fmt.Sprintf("%x", secret), nil
	}
	version, ok := p.SecretVersionMap[variant]
	if !ok {
		return "", fmt.Errorf("keys: %s does not support key variant %q", p.Name, variant)
	}
	payload := make([]byte, 0, len(secret)+3)
	payload = append(payload, version)
	if variant == chaincfg.VariantZcashZ {
		payload = append(payload, p.ZcashZSecretSuffix)
	}
	payload = append(payload, secret...)
	if variant == chaincfg.VariantStd && p.Family != chaincfg.FamilyMonero && compressed {
		payload = append(payload, 0x01) // compressed-pubkey marker byte, §4.4
	}
	return coinhash.Base58CheckEncode(payload), nil
}

// DecodeSecret reverses EncodeSecret, returning the raw secret bytes, the
// key variant whose version byte(s) matched, and whether the trailing
// compressed-pubkey marker byte was present (§3's Parsed WIF triple).
func DecodeSecret(wif string, p *chaincfg.Params) ([]byte, chaincfg.KeyVariant, bool, error) {
	if p.DummyWIF {
		return nil, "", false, fmt.Errorf("keys: %s has no WIF secret format", p.Name)
	}
	payload, err := coinhash.Base58CheckDecode(wif)
	if err != nil {
		return nil, "", false, fmt.Errorf("%w: %v", walleterr.ErrBadWIF, err)
	}
	if len(payload) < 1 {
		return nil, "", false, walleterr.ErrBadWIF
	}
	version := payload[0]

	if v, ok := p.SecretVersionMap[chaincfg.VariantZcashZ]; ok && version == v && len(payload) >= 2 && payload[1] == p.ZcashZSecretSuffix {
		body := payload[2:]
		if len(body) != p.SecretLength {
			return nil, "", false, walleterr.ErrBadWIF
		}
		return body, chaincfg.VariantZcashZ, false, nil
	}

	body := payload[1:]
	compressed := false
	if len(body) == p.SecretLength+1 && body[len(body)-1] == 0x01 {
		body = body[:p.SecretLength]
		compressed = true
	}
	if len(body) != p.SecretLength {
		return nil, "", false, walleterr.ErrBadWIF
	}
	for variant, v := range p.SecretVersionMap {
		if variant == chaincfg.VariantZcashZ {
			continue
		}
		if v == version {
			return body, variant, compressed, nil
		}
	}
	return nil, "", false, walleterr.ErrBadWIF
}
