// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package walleterr defines the sentinel error kinds named in spec §7,
// following the teacher's package-level Err* sentinel convention
// (chaincfg.ErrDuplicateNet, addresses.ErrInvalidAddress). Call sites wrap
// these with fmt.Errorf("...: %w", walleterr.X) to attach human-readable
// context without losing errors.Is comparability.
package walleterr

import "errors"

// Registry errors (§4.3).
var (
	ErrUnknownCoin       = errors.New("unknown_coin")
	ErrDisabledCoin      = errors.New("disabled_coin")
	ErrAlreadyRegistered = errors.New("already_registered")
)

// Key and address errors (§4.4, §4.5).
var (
	ErrBadWIF               = errors.New("bad_wif")
	ErrBadChecksum          = errors.New("bad_checksum")
	ErrBadWitnessVersion    = errors.New("bad_witness_version")
	ErrUnknownAddressFormat = errors.New("unknown_address_format")
	ErrBadAddressLength     = errors.New("bad_address_length")
)

// Cryptographic precondition failures (§4.4) — always fatal, never retried.
var (
	ErrPrivateKeyZero        = errors.New("private_key_zero")
	ErrPrivateKeyEqualsOrder = errors.New("private_key_equal_order")
)

// Transaction-builder errors (§4.7).
var (
	ErrInsufficientFunds     = errors.New("insufficient_funds")
	ErrThrowawayChangeRefused = errors.New("throwaway_change_refused")
	ErrDuplicateInput        = errors.New("duplicate_input")
	ErrFeeExceedsCap         = errors.New("fee_exceeds_cap")
)

// Signing orchestrator errors (§4.8).
var (
	ErrDaemonUnreachable        = errors.New("daemon_unreachable")
	ErrRPCInvalidKey            = errors.New("rpc_invalid_key")
	ErrWalletPassphraseIncorrect = errors.New("wallet_passphrase_incorrect")
	ErrMappingMismatch          = errors.New("mapping_mismatch")
)

// ExitCode maps an error produced anywhere in the core back to a process
// exit code: nil is 0 (success), ErrDaemonUnreachable is 2 (RPC
// unavailability), and every other error is 3 (validation or
// cryptographic error). It never returns 1 (user abort), and it does not
// map I/O errors to 2; the cmd/ front ends return those codes directly.
// cmd/ front ends call this just before os.Exit.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrDaemonUnreachable):
		return 2
	default:
		return 3
	}
}
