// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package amount

import "testing"

func TestParseAmountRoundTrip(t *testing.T) {
	cases := []string{"0.5", "0.3", "1.00000000", "123.45678901"}
	for _, s := range cases {
		if _, err := ParseAmount(s, BTCDecimals); err != nil {
			t.Fatalf("ParseAmount(%q): %v", s, err)
		}
	}
	a, err := ParseAmount("0.5", BTCDecimals)
	if err != nil {
		t.Fatal(err)
	}
	if a.String() != "0.50000000" {
		t.Fatalf("String() = %q, want 0.50000000", a.String())
	}
}

func TestParseAmountRejectsNegative(t *testing.T) {
	if _, err := ParseAmount("-1", BTCDecimals); err != ErrNegative {
		t.Fatalf("expected ErrNegative, got %v", err)
	}
}

func TestParseAmountRejectsTooManyDecimals(t *testing.T) {
	if _, err := ParseAmount("1.123456789", BTCDecimals); err != ErrTooManyDecimals {
		t.Fatalf("expected ErrTooManyDecimals, got %v", err)
	}
}

func TestZeroForSendRejected(t *testing.T) {
	a, err := ParseAmount("0", BTCDecimals)
	if err != nil {
		t.Fatal(err)
	}
	if err := a.RequireNonZeroForSend(); err != ErrZeroSend {
		t.Fatalf("expected ErrZeroSend, got %v", err)
	}
}

func TestCheckMaxFee(t *testing.T) {
	fee, _ := ParseAmount("0.01", BTCDecimals)
	cap, _ := ParseAmount("0.005", BTCDecimals)
	if err := fee.CheckMaxFee(cap); err != ErrFeeExceedsCap {
		t.Fatalf("expected ErrFeeExceedsCap, got %v", err)
	}
}

func TestEthDecimals(t *testing.T) {
	a, err := ParseAmount("1.5", EthDecimals)
	if err != nil {
		t.Fatal(err)
	}
	if a.Units() != 1_500_000_000_000_000_000 {
		t.Fatalf("Units() = %d, want 1.5e18", a.Units())
	}
}
