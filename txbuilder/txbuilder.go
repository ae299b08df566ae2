// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package txbuilder implements the transaction-construction state machine
// (§4.7): unspent-output selection, change policy, duplicate-input
// detection, fee-cap enforcement, and the 4-line artifact serialization
// that carries a transaction from [collecting-inputs] through [draft] and
// [serialized-raw] toward signing.
package txbuilder

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/toole-brendan/mmwallet/addresses"
	"github.com/toole-brendan/mmwallet/amount"
	"github.com/toole-brendan/mmwallet/chaincfg"
	"github.com/toole-brendan/mmwallet/coinhash"
	"github.com/toole-brendan/mmwallet/walleterr"
)

// UnspentOutput is one entry a user may select by 1-based index, per §3.
type UnspentOutput struct {
	TxID          string
	Vout          uint32
	Address       string
	Amount        amount.Amount
	Confirmations int64
	// WalletLabel is opaque text of the form "<seed_id>:<index> <free-text>?"
	// — non-empty exactly when the output is internal to this wallet.
	WalletLabel string
}

// IsInternal reports whether u carries a <seed_id>:<index> wallet label,
// i.e. whether its spending key can be derived in-process (§4.8 step 1).
func (u UnspentOutput) IsInternal() bool {
	return strings.Contains(strings.SplitN(u.WalletLabel, " ", 2)[0], ":")
}

// SeedIDIndex parses the "<seed_id>:<index>" prefix of an internal
// output's WalletLabel.
func (u UnspentOutput) SeedIDIndex() (seedID string, index uint32, ok bool) {
	head := strings.SplitN(u.WalletLabel, " ", 2)[0]
	parts := strings.SplitN(head, ":", 2)
	if len(parts) != 2 {
		return "", 0, false
	}
	n, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return "", 0, false
	}
	return parts[0], uint32(n), true
}

// SortUnspent orders a set of unspent outputs by one of the sort keys
// mmgen's twuo view supports: "amount", "age" (descending confirmations,
// i.e. oldest first), or "txid".
func SortUnspent(outs []UnspentOutput, by string) {
	switch by {
	case "amount":
		sort.SliceStable(outs, func(i, j int) bool { return outs[i].Amount.Units() < outs[j].Amount.Units() })
	case "age":
		sort.SliceStable(outs, func(i, j int) bool { return outs[i].Confirmations > outs[j].Confirmations })
	case "txid":
		sort.SliceStable(outs, func(i, j int) bool { return outs[i].TxID < outs[j].TxID })
	}
}

// FeeSpec is a fee expressed either as an absolute amount or as a fraction
// of the amount sent — mmgen's tx.py accepts both ("0.0001" vs "0.1%").
type FeeSpec struct {
	Absolute amount.Amount
	Relative float64 // fraction of send amount; zero means Absolute is authoritative
}

// Resolve returns the concrete fee for a given send amount.
func (f FeeSpec) Resolve(sendAmount amount.Amount) amount.Amount {
	if f.Relative > 0 {
		units := int64(float64(sendAmount.Units()) * f.Relative)
		a, _ := amount.NewAmount(units, sendAmount.Decimals())
		return a
	}
	return f.Absolute
}

// Draft is a transaction mid-construction: selected inputs, the send
// output, and an optional explicit change address.
type Draft struct {
	Inputs        []UnspentOutput
	SendAddress   string
	SendAmount    amount.Amount
	ChangeAddress string // empty means "no change address specified"
	Fee           FeeSpec
}

// SelectInputs validates a caller's 1-based index selection against the
// available set, rejecting duplicate (txid, vout) pairs, and returns the
// selected outputs together with their sum.
func SelectInputs(available []UnspentOutput, indices []int) ([]UnspentOutput, amount.Amount, error) {
	seen := make(map[string]bool)
	var selected []UnspentOutput
	var sumUnits int64
	var decimals uint8
	for _, idx := range indices {
		if idx < 1 || idx > len(available) {
			return nil, amount.Amount{}, fmt.Errorf("txbuilder: index %d out of range", idx)
		}
		u := available[idx-1]
		key := u.TxID + ":" + strconv.FormatUint(uint64(u.Vout), 10)
		if seen[key] {
			return nil, amount.Amount{}, walleterr.ErrDuplicateInput
		}
		seen[key] = true
		selected = append(selected, u)
		sumUnits += u.Amount.Units()
		decimals = u.Amount.Decimals()
	}
	sum, err := amount.NewAmount(sumUnits, decimals)
	if err != nil {
		return nil, amount.Amount{}, err
	}
	return selected, sum, nil
}

// requiredChangeThresholdUnits is the minimum slack §4.7's selection contract
// requires above the requested send amount before a transaction is even
// considered fundable, expressed in the coin's smallest unit.
const requiredChangeThresholdUnits = 0

// CheckFunding enforces §4.7's selection contract: sum_in must be at
// least send + a required change threshold, else insufficient_funds.
func CheckFunding(sumIn, send amount.Amount) error {
	if sumIn.Units() < send.Units()+requiredChangeThresholdUnits {
		return walleterr.ErrInsufficientFunds
	}
	return nil
}

// ChangePolicy decides whether a change output is required, per §4.7: if
// sum_in exceeds send+fee and no change address was given, that's a fatal
// throwaway_change_refused; otherwise exactly one change output is
// produced (or none, if the inputs exactly cover send+fee).
func ChangePolicy(sumIn, send, fee amount.Amount, changeAddress string) (changeAmount amount.Amount, needsChange bool, err error) {
	remainder := sumIn.Units() - send.Units() - fee.Units()
	if remainder < 0 {
		return amount.Amount{}, false, walleterr.ErrInsufficientFunds
	}
	if remainder == 0 {
		return amount.Amount{}, false, nil
	}
	if changeAddress == "" {
		return amount.Amount{}, false, walleterr.ErrThrowawayChangeRefused
	}
	change, err := amount.NewAmount(remainder, send.Decimals())
	if err != nil {
		return amount.Amount{}, false, err
	}
	return change, true, nil
}

// CheckFee enforces §4.7's "fee = sum_in - sum_out; fee_exceeds_cap" rule.
func CheckFee(sumIn, sumOut amount.Amount, p *chaincfg.Params) (amount.Amount, error) {
	feeUnits := sumIn.Units() - sumOut.Units()
	if feeUnits < 0 {
		return amount.Amount{}, fmt.Errorf("txbuilder: sum_out exceeds sum_in")
	}
	fee, err := amount.NewAmount(feeUnits, sumIn.Decimals())
	if err != nil {
		return amount.Amount{}, err
	}
	if err := fee.CheckMaxFee(p.MaxFee); err != nil {
		return amount.Amount{}, walleterr.ErrFeeExceedsCap
	}
	return fee, nil
}

// ValidateAddresses confirms every address a draft references (send,
// change, and each input's recorded address) parses under p, surfacing a
// precise error before the draft ever reaches serialization.
func ValidateAddresses(d *Draft, p *chaincfg.Params) error {
	if _, err := addresses.ParseAddress(d.SendAddress, p); err != nil {
		return fmt.Errorf("send address: %w", err)
	}
	if d.ChangeAddress != "" {
		if _, err := addresses.ParseAddress(d.ChangeAddress, p); err != nil {
			return fmt.Errorf("change address: %w", err)
		}
	}
	for _, in := range d.Inputs {
		if _, err := addresses.ParseAddress(in.Address, p); err != nil {
			return fmt.Errorf("input %s:%d address: %w", in.TxID, in.Vout, err)
		}
	}
	return nil
}

// HasExternalInput reports whether any input lacks an internal wallet
// label — the condition that triggers §4.7's mixed-provenance warning
// path requiring the signer to accept external key files.
func HasExternalInput(d *Draft) bool {
	for _, in := range d.Inputs {
		if !in.IsInternal() {
			return true
		}
	}
	return false
}

// BuildUnsignedTx assembles an unsigned wire.MsgTx for a Bitcoin-family
// draft and returns its raw serialized bytes, ready to hand to the daemon
// (signrawtransaction) or the standalone signer. Zcash, Ethereum, and
// Monero have no wire.MsgTx-shaped transaction format — those families
// are rejected here rather than silently producing a Bitcoin-shaped
// transaction that the coin's own daemon would reject.
func BuildUnsignedTx(d *Draft, p *chaincfg.Params, changeAmount amount.Amount, needsChange bool) ([]byte, error) {
	switch p.Family {
	case chaincfg.FamilyBitcoin, chaincfg.FamilyBitcoinCash, chaincfg.FamilyBitcoin2x, chaincfg.FamilyLitecoin:
	default:
		return nil, fmt.Errorf("txbuilder: %s has no Bitcoin-family wire transaction format", p.Name)
	}

	msgTx := wire.NewMsgTx(wire.TxVersion)
	for _, in := range d.Inputs {
		hash, err := chainhash.NewHashFromStr(in.TxID)
		if err != nil {
			return nil, fmt.Errorf("txbuilder: input %s: %w", in.TxID, err)
		}
		msgTx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(hash, in.Vout), nil, nil))
	}

	sendScript, err := addresses.ScriptForAddress(d.SendAddress, p)
	if err != nil {
		return nil, err
	}
	msgTx.AddTxOut(wire.NewTxOut(d.SendAmount.Units(), sendScript))

	if needsChange {
		changeScript, err := addresses.ScriptForAddress(d.ChangeAddress, p)
		if err != nil {
			return nil, err
		}
		msgTx.AddTxOut(wire.NewTxOut(changeAmount.Units(), changeScript))
	}

	var buf bytes.Buffer
	if err := msgTx.Serialize(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Artifact is a serialized transaction record at rest (§3's 4-line
// format): metadata, raw hex, serialized inputs, and the output-address
// to wallet-id map.
type Artifact struct {
	TxID              string // uppercase hex, first 6 bytes of HASH256(rawBytes)
	SendAmount        amount.Amount
	Timestamp         int64
	RawHex            string
	InputsSerialized  string
	OutputMapSerialized string
	// Comment is optional free text a user attaches to the transaction
	// (mmgen tx.py's comment field). Serialize does not write it, so it is
	// not carried into the persisted artifact files.
	Comment string
}

// NewArtifact computes the tx_id from rawBytes and assembles an Artifact
// ready for serialization.
func NewArtifact(rawBytes []byte, sendAmount amount.Amount, timestamp int64, inputs []UnspentOutput, outputMap map[string]string) *Artifact {
	digest := coinhash.Hash256(rawBytes)
	txID := strings.ToUpper(hex.EncodeToString(digest[:6]))

	var inputLines []string
	for _, in := range inputs {
		inputLines = append(inputLines, fmt.Sprintf("%s:%d:%s:%s", in.TxID, in.Vout, in.Address, in.WalletLabel))
	}

	var outLines []string
	keys := make([]string, 0, len(outputMap))
	for k := range outputMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		outLines = append(outLines, fmt.Sprintf("%s=%s", k, outputMap[k]))
	}

	return &Artifact{
		TxID:                txID,
		SendAmount:          sendAmount,
		Timestamp:           timestamp,
		RawHex:              hex.EncodeToString(rawBytes),
		InputsSerialized:    strings.Join(inputLines, ","),
		OutputMapSerialized: strings.Join(outLines, ","),
	}
}

// ParseInputsSerialized reverses the input-line half of NewArtifact,
// reconstructing the UnspentOutput records an artifact's third line
// encodes so a signer can re-derive internal keys and re-verify external
// ones without re-querying the daemon.
func ParseInputsSerialized(s string) ([]UnspentOutput, error) {
	if s == "" {
		return nil, nil
	}
	var out []UnspentOutput
	for _, field := range strings.Split(s, ",") {
		parts := strings.SplitN(field, ":", 4)
		if len(parts) != 4 {
			return nil, fmt.Errorf("txbuilder: malformed input record %q", field)
		}
		vout, err := strconv.ParseUint(parts[1], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("txbuilder: malformed vout in %q: %w", field, err)
		}
		out = append(out, UnspentOutput{
			TxID: parts[0], Vout: uint32(vout), Address: parts[2], WalletLabel: parts[3],
		})
	}
	return out, nil
}

// Serialize renders the 4-line artifact text record.
func (a *Artifact) Serialize() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %d\n", a.TxID, a.SendAmount.String(), a.Timestamp)
	fmt.Fprintf(&b, "%s\n", a.RawHex)
	fmt.Fprintf(&b, "%s\n", a.InputsSerialized)
	fmt.Fprintf(&b, "%s\n", a.OutputMapSerialized)
	return b.String()
}

// FileName returns the artifact's persistence filename for the given
// extension ("raw", "sig", "out"), preserving tx_id and send_amount
// literally per §4.7's traceability requirement.
func (a *Artifact) FileName(ext string) string {
	return fmt.Sprintf("tx_%s[%s].%s", a.TxID, a.SendAmount.String(), ext)
}
