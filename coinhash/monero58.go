// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coinhash

import (
	"errors"
	"math/big"
)

// Monero addresses use a block-wise base58 variant rather than the
// Bitcoin-style big-integer encoding: the body is split into 8-byte groups,
// each encoded independently to a fixed-width 11-character block (a final
// partial group of n bytes encodes to the width given by moneroBlockWidths[n]),
// and integrity is a trailing 4-byte checksum taken from the start of the
// body's Keccak-256 digest rather than from its HASH256. There is no ecosystem library in this
// module's dependency set implementing this variant, so it is written out
// from the documented algorithm (see spec §4.1).
const (
	moneroFullBlockSize    = 8
	moneroFullEncodedWidth = 11
)

// moneroBlockWidths[n] is the encoded character width of an n-byte group,
// for n in [1, moneroFullBlockSize].
var moneroBlockWidths = [...]int{0, 2, 3, 5, 6, 7, 9, 10, 11}

const moneroAlphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

var moneroAlphabetIndex = func() map[byte]int {
	m := make(map[byte]int, len(moneroAlphabet))
	for i := 0; i < len(moneroAlphabet); i++ {
		m[moneroAlphabet[i]] = i
	}
	return m
}()

// ErrMoneroChecksum is returned by MoneroBase58Decode when the trailing
// 4-byte checksum does not match the first 4 bytes of the body's
// recomputed Keccak-256 digest.
var ErrMoneroChecksum = errors.New("coinhash: monero checksum mismatch")

// ErrMoneroEncoding is returned for malformed monero base58 input: a
// trailing partial block whose width does not match any valid group size,
// or a character outside the monero alphabet.
var ErrMoneroEncoding = errors.New("coinhash: invalid monero base58 encoding")

func moneroEncodeBlock(src []byte, width int) []byte {
	n := new(big.Int).SetBytes(src)
	out := make([]byte, width)
	base := big.NewInt(58)
	rem := new(big.Int)
	for i := width - 1; i >= 0; i-- {
		n.DivMod(n, base, rem)
		out[i] = moneroAlphabet[rem.Int64()]
	}
	return out
}

func moneroDecodeBlock(src []byte, size int) ([]byte, error) {
	n := new(big.Int)
	base := big.NewInt(58)
	for _, c := range src {
		idx, ok := moneroAlphabetIndex[c]
		if !ok {
			return nil, ErrMoneroEncoding
		}
		n.Mul(n, base)
		n.Add(n, big.NewInt(int64(idx)))
	}
	raw := n.Bytes()
	if len(raw) > size {
		return nil, ErrMoneroEncoding
	}
	out := make([]byte, size)
	copy(out[size-len(raw):], raw)
	return out, nil
}

// moneroEncodeBody base58-encodes body block-wise, without the checksum
// prefix.
func moneroEncodeBody(body []byte) string {
	out := make([]byte, 0, (len(body)/moneroFullBlockSize+1)*moneroFullEncodedWidth)
	for len(body) >= moneroFullBlockSize {
		out = append(out, moneroEncodeBlock(body[:moneroFullBlockSize], moneroFullEncodedWidth)...)
		body = body[moneroFullBlockSize:]
	}
	if len(body) > 0 {
		out = append(out, moneroEncodeBlock(body, moneroBlockWidths[len(body)])...)
	}
	return string(out)
}

func moneroDecodeBody(s string) ([]byte, error) {
	widthToSize := map[int]int{0: 0}
	for size, width := range moneroBlockWidths {
		widthToSize[width] = size
	}
	var out []byte
	b := []byte(s)
	for len(b) >= moneroFullEncodedWidth {
		block, err := moneroDecodeBlock(b[:moneroFullEncodedWidth], moneroFullBlockSize)
		if err != nil {
			return nil, err
		}
		out = append(out, block...)
		b = b[moneroFullEncodedWidth:]
	}
	if len(b) > 0 {
		size, ok := widthToSize[len(b)]
		if !ok || size == 0 {
			return nil, ErrMoneroEncoding
		}
		block, err := moneroDecodeBlock(b, size)
		if err != nil {
			return nil, err
		}
		out = append(out, block...)
	}
	return out, nil
}

// MoneroBase58Encode encodes body (a raw address payload: network byte(s)
// plus the 64-byte public-spend/public-view key pair) followed by the first
// 4 bytes of its Keccak-256 digest, block-wise per the Monero base58 variant.
func MoneroBase58Encode(body []byte) string {
	checksum := Keccak256(body)[:4]
	full := make([]byte, 0, len(body)+4)
	full = append(full, body...)
	full = append(full, checksum...)
	return moneroEncodeBody(full)
}

// MoneroBase58Decode reverses MoneroBase58Encode, verifying the trailing
// Keccak-256 checksum and returning the body with the checksum stripped.
func MoneroBase58Decode(s string) ([]byte, error) {
	full, err := moneroDecodeBody(s)
	if err != nil {
		return nil, err
	}
	if len(full) < 4 {
		return nil, ErrMoneroChecksum
	}
	body := full[:len(full)-4]
	checksum := full[len(full)-4:]
	expected := Keccak256(body)[:4]
	for i := range checksum {
		if checksum[i] != expected[i] {
			return nil, ErrMoneroChecksum
		}
	}
	return body, nil
}
