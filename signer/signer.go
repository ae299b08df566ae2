// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package signer implements the signing orchestrator (§4.8): partitioning
// a draft's inputs into internal/external, deriving internal keys
// deterministically, and dispatching to either a daemon RPC or an
// in-process standalone signer according to the active protocol's
// SigningMode.
package signer

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/btcsuite/btclog"
	"github.com/toole-brendan/mmwallet/addresses"
	"github.com/toole-brendan/mmwallet/chaincfg"
	"github.com/toole-brendan/mmwallet/coinhash"
	"github.com/toole-brendan/mmwallet/keys"
	"github.com/toole-brendan/mmwallet/txbuilder"
	"github.com/toole-brendan/mmwallet/walleterr"
)

// log is the package-level logger, disabled until a caller installs one
// via UseLogger — the same injection idiom the teacher's mining/randomx
// package uses for its miner.
var log = btclog.Disabled

// UseLogger sets the package-wide logger used by SignWithDaemon.
func UseLogger(logger btclog.Logger) {
	log = logger
}

// DaemonClient is the RPC surface the daemon signing mode needs. The
// rpcclient package provides the concrete implementation; kept as an
// interface here so signer has no import-time dependency on the JSON-RPC
// transport.
type DaemonClient interface {
	SignRawTransaction(rawHex string, prevOuts []PrevOut, privKeysWIF []string) (signedHex string, complete bool, err error)
	WalletPassphrase(passphrase string, timeoutSeconds int) error
	WalletLock() error
}

// PrevOut is the subset of an input's previous-output data a daemon needs
// to re-derive the scriptPubKey/redeemScript context for signing.
type PrevOut struct {
	TxID         string
	Vout         uint32
	ScriptPubKey string
	RedeemScript string
	Amount       int64
}

// PartitionInputs splits a draft's inputs by §4.8 step 1: internal
// (resolvable from a seed available in this process) versus external
// (requires an explicit key file).
func PartitionInputs(inputs []txbuilder.UnspentOutput) (internal, external []txbuilder.UnspentOutput) {
	for _, in := range inputs {
		if in.IsInternal() {
			internal = append(internal, in)
		} else {
			external = append(external, in)
		}
	}
	return internal, external
}

// DeriveInternalSecret deterministically derives the 32-byte secret for
// one (seed_id, index) label, per §4.8 step 2. The derivation itself
// (HMAC-SHA256 keyed by the seed over seed_id followed by the 4-byte
// big-endian index, canonicalized
// against the coin's curve) is the module's own minimal deterministic
// scheme; the canonicalization step that follows is what C4 actually
// specifies.
func DeriveInternalSecret(seed []byte, seedID string, index uint32, variant chaincfg.KeyVariant, p *chaincfg.Params) ([]byte, error) {
	mac := hmac.New(sha256.New, seed)
	var idxBytes [4]byte
	binary.BigEndian.PutUint32(idxBytes[:], index)
	mac.Write([]byte(seedID))
	mac.Write(idxBytes[:])
	raw := mac.Sum(nil)
	return keys.Canonicalize(raw, variant, p)
}

// ErrExtraExternalKey is returned by VerifyExternalKeys when a supplied
// key does not correspond to any external input's address.
var ErrExtraExternalKey = errors.New("signer: external key does not match any external input address")

// ErrMissingExternalKey is returned when an external input has no
// matching supplied key.
var ErrMissingExternalKey = errors.New("signer: external input has no matching supplied key")

// ExternalKey is one user-supplied key file entry awaiting verification.
type ExternalKey struct {
	Secret     []byte
	Variant    chaincfg.KeyVariant
	Compressed bool
}

// VerifyExternalKeys implements §4.8 step 4: for each supplied key,
// derive its address and require it to appear in the external-input set.
// Extra keys are reported (not fatal); any external input left
// unmatched aborts with ErrMissingExternalKey.
func VerifyExternalKeys(externalInputs []txbuilder.UnspentOutput, suppliedKeys []ExternalKey, p *chaincfg.Params) (extraKeys []ExternalKey, err error) {
	wanted := make(map[string]bool, len(externalInputs))
	for _, in := range externalInputs {
		wanted[in.Address] = true
	}

	matched := make(map[string]bool)
	for _, k := range suppliedKeys {
		pub, derr := keys.PubkeyFromSecret(k.Secret, k.Compressed)
		if derr != nil {
			return nil, derr
		}
		addr, derr := addresses.PubhashToAddress(coinhash.Hash160(pub), false, p)
		if derr != nil {
			return nil, derr
		}
		if wanted[addr] {
			matched[addr] = true
		} else {
			extraKeys = append(extraKeys, k)
		}
	}

	for addr := range wanted {
		if !matched[addr] {
			return extraKeys, fmt.Errorf("%w: %s", ErrMissingExternalKey, addr)
		}
	}
	return extraKeys, nil
}

// PassphrasePrompter supplies the wallet passphrase for SignWithDaemon's
// numbered unlock attempt (1-based); cmd/ front ends provide the terminal
// prompt.
type PassphrasePrompter func(attempt int) (string, error)

// SignWithDaemon implements §4.8 step 3's daemon branch: call
// signrawtransaction; on a key-missing response, prompt for the wallet
// passphrase (bounded retries), unlock, retry, and always re-lock on
// every exit path — success or failure.
func SignWithDaemon(client DaemonClient, rawHex string, prevOuts []PrevOut, internalWIFs []string, prompt PassphrasePrompter, maxAttempts int) (signedHex string, err error) {
	signedHex, complete, rerr := client.SignRawTransaction(rawHex, prevOuts, internalWIFs)
	if rerr == nil && complete {
		return signedHex, nil
	}
	if rerr != nil && !errors.Is(rerr, walleterr.ErrWalletPassphraseIncorrect) {
		return "", rerr
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		passphrase, perr := prompt(attempt)
		if perr != nil {
			return "", perr
		}
		if uerr := client.WalletPassphrase(passphrase, 60); uerr != nil {
			log.Warnf("signer: wallet unlock attempt %d failed: %v", attempt, uerr)
			continue
		}
		signedHex, complete, rerr = client.SignRawTransaction(rawHex, prevOuts, internalWIFs)
		lockErr := client.WalletLock()
		if lockErr != nil {
			log.Errorf("signer: failed to re-lock wallet after signing attempt: %v", lockErr)
		}
		if rerr == nil && complete {
			return signedHex, nil
		}
	}
	return "", fmt.Errorf("signer: exhausted %d passphrase attempts: %w", maxAttempts, walleterr.ErrWalletPassphraseIncorrect)
}
