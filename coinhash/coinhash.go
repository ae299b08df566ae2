// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package coinhash provides the hash and codec primitives shared by every
// coin family: HASH160/HASH256, Keccak-256, Base58Check (with leading-zero
// preservation) and Bech32/SegWit encoding.
package coinhash

import (
	"crypto/sha256"
	"errors"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // ripemd160 is required by the HASH160 definition, not a choice.
	"golang.org/x/crypto/sha3"
)

// ErrChecksumMismatch is returned by Base58CheckDecode when the trailing
// 4-byte checksum does not match the recomputed HASH256 of the payload.
var ErrChecksumMismatch = errors.New("coinhash: checksum mismatch")

// ErrBadBech32HRP is returned by Bech32Decode when the decoded string's
// human-readable part does not match the one expected by the caller.
var ErrBadBech32HRP = errors.New("coinhash: unexpected bech32 hrp")

// Sha256 returns a single SHA-256 digest of x.
func Sha256(x []byte) []byte {
	sum := sha256.Sum256(x)
	return sum[:]
}

// Ripemd160 returns the RIPEMD-160 digest of x.
func Ripemd160(x []byte) []byte {
	h := ripemd160.New()
	h.Write(x) //nolint:errcheck // hash.Hash.Write never errors.
	return h.Sum(nil)
}

// Hash160 is ripemd160(sha256(x)), the digest used for every P2PKH/P2SH
// public-key hash across the Bitcoin-family coins.
func Hash160(x []byte) []byte {
	return Ripemd160(Sha256(x))
}

// Hash256 is sha256(sha256(x)), used for Base58Check checksums and for a
// transaction artifact's tx_id (the first 6 bytes, uppercased, per §3).
func Hash256(x []byte) []byte {
	return chainhash.DoubleHashB(x)
}

// Keccak256 is the legacy (pre-NIST) Keccak-256 permutation used by
// Ethereum-family address derivation and by Monero's base58 checksum.
func Keccak256(x []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(x) //nolint:errcheck // hash.Hash.Write never errors.
	return h.Sum(nil)
}

// Base58CheckEncode computes c = Hash256(payload)[:4] and base58-encodes
// payload∥c. Leading zero bytes of payload are preserved as leading '1'
// characters — base58.Encode already implements this (the standard base58
// definition), so the zero-address test vector
// (0x00*20 -> "1111111111111111111114oLvT2") round-trips for free.
func Base58CheckEncode(payload []byte) string {
	checksum := Hash256(payload)[:4]
	full := make([]byte, 0, len(payload)+4)
	full = append(full, payload...)
	full = append(full, checksum...)
	return base58.Encode(full)
}

// Base58CheckDecode reverses Base58CheckEncode, returning the payload with
// the checksum stripped. It fails with ErrChecksumMismatch if the trailing
// 4 bytes do not match Hash256 of the remaining payload.
func Base58CheckDecode(s string) ([]byte, error) {
	decoded := base58.Decode(s)
	if len(decoded) < 4 {
		return nil, ErrChecksumMismatch
	}
	payload := decoded[:len(decoded)-4]
	checksum := decoded[len(decoded)-4:]
	expected := Hash256(payload)[:4]
	for i := range checksum {
		if checksum[i] != expected[i] {
			return nil, ErrChecksumMismatch
		}
	}
	return payload, nil
}

// Bech32Encode encodes a witness version and program as a BIP-173 string
// under hrp, regrouping the program from 8-bit to 5-bit words.
func Bech32Encode(hrp string, witnessVersion byte, program []byte) (string, error) {
	regrouped, err := bech32.ConvertBits(program, 8, 5, true)
	if err != nil {
		return "", err
	}
	data := make([]byte, 0, len(regrouped)+1)
	data = append(data, witnessVersion)
	data = append(data, regrouped...)
	return bech32.Encode(hrp, data)
}

// Bech32Decode reverses Bech32Encode, checking that the decoded hrp matches
// the one supplied (case-insensitively, per BIP-173) and regrouping the
// program back to 8-bit bytes.
func Bech32Decode(hrp, s string) (witnessVersion byte, program []byte, err error) {
	gotHRP, data, err := bech32.Decode(s)
	if err != nil {
		return 0, nil, err
	}
	if !equalFoldASCII(gotHRP, hrp) {
		return 0, nil, ErrBadBech32HRP
	}
	if len(data) < 1 {
		return 0, nil, errors.New("coinhash: empty bech32 data")
	}
	program, err = bech32.ConvertBits(data[1:], 5, 8, false)
	if err != nil {
		return 0, nil, err
	}
	return data[0], program, nil
}

func equalFoldASCII(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
