// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coinhash

import (
	"bytes"
	"testing"

	"pgregory.net/rapid"
)

func TestBase58CheckZeroAddress(t *testing.T) {
	payload := make([]byte, 20)
	got := Base58CheckEncode(payload)
	want := "1111111111111111111114oLvT2"
	if got != want {
		t.Fatalf("Base58CheckEncode(zero) = %q, want %q", got, want)
	}
}

func TestBase58CheckRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		payload := rapid.SliceOfN(rapid.Byte(), 1, 64).Draw(t, "payload")
		enc := Base58CheckEncode(payload)
		dec, err := Base58CheckDecode(enc)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !bytes.Equal(dec, payload) {
			t.Fatalf("round trip mismatch: got %x want %x", dec, payload)
		}
	})
}

func TestBase58CheckBadChecksum(t *testing.T) {
	enc := Base58CheckEncode([]byte{1, 2, 3})
	tampered := enc[:len(enc)-1] + "z"
	if _, err := Base58CheckDecode(tampered); err != ErrChecksumMismatch {
		t.Fatalf("expected ErrChecksumMismatch, got %v", err)
	}
}

func TestBech32RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		program := rapid.SliceOfN(rapid.Byte(), 20, 20).Draw(t, "program")
		enc, err := Bech32Encode("bc", 0, program)
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		ver, got, err := Bech32Decode("bc", enc)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if ver != 0 {
			t.Fatalf("witness version = %d, want 0", ver)
		}
		if !bytes.Equal(got, program) {
			t.Fatalf("round trip mismatch: got %x want %x", got, program)
		}
	})
}

func TestBech32WrongHRP(t *testing.T) {
	enc, err := Bech32Encode("bc", 0, make([]byte, 20))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, _, err := Bech32Decode("tb", enc); err != ErrBadBech32HRP {
		t.Fatalf("expected ErrBadBech32HRP, got %v", err)
	}
}

func TestMoneroBase58RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		body := rapid.SliceOfN(rapid.Byte(), 65, 65).Draw(t, "body")
		enc := MoneroBase58Encode(body)
		dec, err := MoneroBase58Decode(enc)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !bytes.Equal(dec, body) {
			t.Fatalf("round trip mismatch: got %x want %x", dec, body)
		}
	})
}

func TestMoneroBase58BadChecksum(t *testing.T) {
	enc := MoneroBase58Encode(bytes.Repeat([]byte{0xAB}, 69))
	b := []byte(enc)
	if b[0] == 'a' {
		b[0] = 'b'
	} else {
		b[0] = 'a'
	}
	if _, err := MoneroBase58Decode(string(b)); err == nil {
		t.Fatalf("expected an error decoding a tampered monero address")
	}
}

func TestHash160AndHash256(t *testing.T) {
	x := []byte("shell reserve")
	if len(Hash160(x)) != 20 {
		t.Fatalf("Hash160 length = %d, want 20", len(Hash160(x)))
	}
	if len(Hash256(x)) != 32 {
		t.Fatalf("Hash256 length = %d, want 32", len(Hash256(x)))
	}
}

func TestKeccak256Length(t *testing.T) {
	if len(Keccak256([]byte("x"))) != 32 {
		t.Fatalf("Keccak256 should produce a 32-byte digest")
	}
}
