// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package amount implements the fixed-precision coin-amount value type
// (§4.2): a per-coin decimal with no float drift, backed by an int64 count
// of the coin's smallest unit — the same representation btcutil.Amount
// uses for satoshis, generalized to a caller-supplied decimal precision so
// it also serves 18-decimal Ethereum-family coins.
package amount

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Errors returned while constructing or validating an Amount.
var (
	ErrNaN              = errors.New("amount: not a number")
	ErrNegative         = errors.New("amount: negative amount")
	ErrZeroSend         = errors.New("amount: zero amount is not valid to send")
	ErrTooManyDecimals  = errors.New("amount: more fractional digits than the coin permits")
	ErrFeeExceedsCap    = errors.New("amount: fee exceeds the coin's maximum fee cap")
	ErrPrecisionTooWide = errors.New("amount: decimals must be between 0 and 18")
)

// Amount is a quantity of a coin's smallest unit (satoshi, wei, ...),
// together with the decimal precision that governs how it is formatted and
// how many fractional digits a textual amount may carry.
type Amount struct {
	units    int64
	decimals uint8
}

// BTCDecimals and EthDecimals are the two precisions named by §4.2.
const (
	BTCDecimals = 8
	EthDecimals = 18
)

// NewAmount constructs an Amount directly from a smallest-unit count.
func NewAmount(units int64, decimals uint8) (Amount, error) {
	if decimals > 18 {
		return Amount{}, ErrPrecisionTooWide
	}
	if units < 0 {
		return Amount{}, ErrNegative
	}
	return Amount{units: units, decimals: decimals}, nil
}

// ParseAmount parses a decimal string such as "0.3" or "1.00000000" into an
// Amount of the given precision. It rejects NaN-shaped input, negative
// values, and any string with more fractional digits than decimals permits
// — the three disallowed shapes named in §4.2.
func ParseAmount(s string, decimals uint8) (Amount, error) {
	if decimals > 18 {
		return Amount{}, ErrPrecisionTooWide
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}, ErrNaN
	}
	if strings.HasPrefix(s, "-") {
		return Amount{}, ErrNegative
	}
	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	if _, err := strconv.ParseUint(whole, 10, 63); err != nil && whole != "0" {
		return Amount{}, fmt.Errorf("%w: %q", ErrNaN, s)
	}
	if hasFrac {
		if len(frac) > int(decimals) {
			return Amount{}, ErrTooManyDecimals
		}
		if _, err := strconv.ParseUint(frac, 10, 63); err != nil && frac != "" {
			return Amount{}, fmt.Errorf("%w: %q", ErrNaN, s)
		}
		frac = frac + strings.Repeat("0", int(decimals)-len(frac))
	} else {
		frac = strings.Repeat("0", int(decimals))
	}
	wholeUnits, err := strconv.ParseInt(whole, 10, 63)
	if err != nil {
		return Amount{}, fmt.Errorf("%w: %q", ErrNaN, s)
	}
	scale := pow10(decimals)
	fracUnits := int64(0)
	if frac != "" {
		fracUnits, err = strconv.ParseInt(frac, 10, 63)
		if err != nil {
			return Amount{}, fmt.Errorf("%w: %q", ErrNaN, s)
		}
	}
	total := wholeUnits*scale + fracUnits
	if total < 0 || wholeUnits > (math.MaxInt64-fracUnits)/max64(scale, 1) {
		return Amount{}, fmt.Errorf("amount: %q overflows int64 smallest-unit range", s)
	}
	return Amount{units: total, decimals: decimals}, nil
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func pow10(n uint8) int64 {
	v := int64(1)
	for i := uint8(0); i < n; i++ {
		v *= 10
	}
	return v
}

// Units returns the smallest-unit count (satoshis, wei, ...).
func (a Amount) Units() int64 { return a.units }

// Decimals returns the coin's decimal precision.
func (a Amount) Decimals() uint8 { return a.decimals }

// IsZero reports whether the amount is exactly zero.
func (a Amount) IsZero() bool { return a.units == 0 }

// RequireNonZeroForSend enforces the "zero-for-send" prohibition: a spend
// amount (as opposed to e.g. a fee, which may legitimately be zero on some
// coins) must be strictly positive.
func (a Amount) RequireNonZeroForSend() error {
	if a.units <= 0 {
		return ErrZeroSend
	}
	return nil
}

// Add returns a+b. Both operands must share a decimal precision.
func (a Amount) Add(b Amount) Amount {
	return Amount{units: a.units + b.units, decimals: a.decimals}
}

// Sub returns a-b, which may be negative (e.g. an insufficient-funds
// intermediate check) — callers validate sign where that matters.
func (a Amount) Sub(b Amount) Amount {
	return Amount{units: a.units - b.units, decimals: a.decimals}
}

// Cmp compares a and b, returning -1, 0 or 1.
func (a Amount) Cmp(b Amount) int {
	switch {
	case a.units < b.units:
		return -1
	case a.units > b.units:
		return 1
	default:
		return 0
	}
}

// CheckMaxFee enforces the per-coin max-fee guard (§4.2, §4.7): a
// transaction whose fee exceeds maxFee is rejected with ErrFeeExceedsCap
// before it is ever persisted or signed.
func (a Amount) CheckMaxFee(maxFee Amount) error {
	if a.Cmp(maxFee) > 0 {
		return ErrFeeExceedsCap
	}
	return nil
}

// String renders the amount as a fixed-point decimal with exactly
// Decimals() fractional digits, with no trailing-zero trimming — the
// deterministic form persisted into transaction artifacts (§3).
func (a Amount) String() string {
	scale := pow10(a.decimals)
	whole := a.units / scale
	frac := a.units % scale
	if a.decimals == 0 {
		return strconv.FormatInt(whole, 10)
	}
	return fmt.Sprintf("%d.%0*d", whole, a.decimals, frac)
}
