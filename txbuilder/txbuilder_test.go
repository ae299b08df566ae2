// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txbuilder

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/require"
	"github.com/toole-brendan/mmwallet/amount"
	"github.com/toole-brendan/mmwallet/chaincfg"
	"github.com/toole-brendan/mmwallet/walleterr"
)

func mustParams(t *testing.T, symbol string) *chaincfg.Params {
	t.Helper()
	p, err := chaincfg.Get(symbol, false)
	require.NoError(t, err)
	return p
}

func mustAmount(t *testing.T, s string) amount.Amount {
	t.Helper()
	a, err := amount.ParseAmount(s, amount.BTCDecimals)
	require.NoError(t, err)
	return a
}

func sampleOutputs(t *testing.T) []UnspentOutput {
	return []UnspentOutput{
		{TxID: "aaaa", Vout: 0, Address: "1111111111111111111114oLvT2", Amount: mustAmount(t, "1.0"), Confirmations: 10, WalletLabel: "DEADBEEF:1"},
		{TxID: "bbbb", Vout: 1, Address: "1111111111111111111114oLvT2", Amount: mustAmount(t, "0.5"), Confirmations: 1, WalletLabel: ""},
	}
}

func TestSelectInputsSumsAmounts(t *testing.T) {
	outs := sampleOutputs(t)
	selected, sum, err := SelectInputs(outs, []int{1, 2})
	require.NoError(t, err)
	require.Len(t, selected, 2)
	require.Equal(t, mustAmount(t, "1.5").Units(), sum.Units())
}

func TestSelectInputsRejectsOutOfRange(t *testing.T) {
	outs := sampleOutputs(t)
	_, _, err := SelectInputs(outs, []int{99})
	require.Error(t, err)
}

func TestSelectInputsRejectsDuplicate(t *testing.T) {
	outs := sampleOutputs(t)
	_, _, err := SelectInputs(outs, []int{1, 1})
	require.True(t, errors.Is(err, walleterr.ErrDuplicateInput))
}

func TestCheckFundingInsufficientFunds(t *testing.T) {
	sum := mustAmount(t, "0.1")
	send := mustAmount(t, "0.5")
	err := CheckFunding(sum, send)
	require.True(t, errors.Is(err, walleterr.ErrInsufficientFunds))
}

func TestChangePolicyRefusesThrowaway(t *testing.T) {
	sumIn := mustAmount(t, "1.0")
	send := mustAmount(t, "0.5")
	fee := mustAmount(t, "0.0001")
	_, needsChange, err := ChangePolicy(sumIn, send, fee, "")
	require.True(t, errors.Is(err, walleterr.ErrThrowawayChangeRefused))
	require.False(t, needsChange)
}

func TestChangePolicyProducesChange(t *testing.T) {
	sumIn := mustAmount(t, "1.0")
	send := mustAmount(t, "0.5")
	fee := mustAmount(t, "0.0001")
	change, needsChange, err := ChangePolicy(sumIn, send, fee, "1111111111111111111114oLvT2")
	require.NoError(t, err)
	require.True(t, needsChange)
	require.Equal(t, mustAmount(t, "0.4999").Units(), change.Units())
}

func TestChangePolicyExactMatchNeedsNone(t *testing.T) {
	sumIn := mustAmount(t, "0.5001")
	send := mustAmount(t, "0.5")
	fee := mustAmount(t, "0.0001")
	_, needsChange, err := ChangePolicy(sumIn, send, fee, "")
	require.NoError(t, err)
	require.False(t, needsChange)
}

func TestCheckFeeExceedsCap(t *testing.T) {
	p := mustParams(t, "btc")
	sumIn := mustAmount(t, "10.0")
	sumOut := mustAmount(t, "9.0")
	_, err := CheckFee(sumIn, sumOut, p)
	require.True(t, errors.Is(err, walleterr.ErrFeeExceedsCap))
}

func TestCheckFeeWithinCap(t *testing.T) {
	p := mustParams(t, "btc")
	sumIn := mustAmount(t, "1.0001")
	sumOut := mustAmount(t, "1.0")
	fee, err := CheckFee(sumIn, sumOut, p)
	require.NoError(t, err)
	require.Equal(t, mustAmount(t, "0.0001").Units(), fee.Units())
}

func TestArtifactFileNamePreservesTxIDAndAmount(t *testing.T) {
	rawBytes := []byte{0x01, 0x02, 0x03}
	artifact := NewArtifact(rawBytes, mustAmount(t, "0.5"), 1700000000, nil, nil)
	name := artifact.FileName("raw")
	require.Contains(t, name, artifact.TxID)
	require.Contains(t, name, "0.50000000")
	require.True(t, len(artifact.TxID) == 12) // 6 bytes, uppercase hex
}

func TestIsInternalDetectsSeedLabel(t *testing.T) {
	u := UnspentOutput{WalletLabel: "DEADBEEF:3 my label"}
	require.True(t, u.IsInternal())
	seedID, index, ok := u.SeedIDIndex()
	require.True(t, ok)
	require.Equal(t, "DEADBEEF", seedID)
	require.EqualValues(t, 3, index)
}

func TestIsInternalFalseForExternal(t *testing.T) {
	u := UnspentOutput{WalletLabel: ""}
	require.False(t, u.IsInternal())
}

func TestParseInputsSerializedRoundTripsNewArtifact(t *testing.T) {
	inputs := []UnspentOutput{
		{TxID: "aaaa", Vout: 0, Address: "1111111111111111111114oLvT2", WalletLabel: "DEADBEEF:1"},
		{TxID: "bbbb", Vout: 2, Address: "1111111111111111111114oLvT2", WalletLabel: ""},
	}
	artifact := NewArtifact([]byte{0x01}, mustAmount(t, "0.5"), 1700000000, inputs, nil)

	parsed, err := ParseInputsSerialized(artifact.InputsSerialized)
	require.NoError(t, err)
	require.Len(t, parsed, 2)
	require.Equal(t, "aaaa", parsed[0].TxID)
	require.EqualValues(t, 0, parsed[0].Vout)
	require.Equal(t, "DEADBEEF:1", parsed[0].WalletLabel)
	require.Equal(t, "bbbb", parsed[1].TxID)
	require.EqualValues(t, 2, parsed[1].Vout)
}

func TestParseInputsSerializedEmpty(t *testing.T) {
	parsed, err := ParseInputsSerialized("")
	require.NoError(t, err)
	require.Nil(t, parsed)
}

func TestParseInputsSerializedRejectsMalformed(t *testing.T) {
	_, err := ParseInputsSerialized("not-enough-fields")
	require.Error(t, err)
}

func TestBuildUnsignedTxBitcoinFamily(t *testing.T) {
	p := mustParams(t, "btc")
	txid := "aa" + strings.Repeat("11", 31)
	draft := &Draft{
		Inputs:        []UnspentOutput{{TxID: txid, Vout: 1, Address: "1111111111111111111114oLvT2"}},
		SendAddress:   "1111111111111111111114oLvT2",
		SendAmount:    mustAmount(t, "0.5"),
		ChangeAddress: "1111111111111111111114oLvT2",
	}

	raw, err := BuildUnsignedTx(draft, p, mustAmount(t, "0.1"), true)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	var tx wire.MsgTx
	require.NoError(t, tx.Deserialize(bytes.NewReader(raw)))
	require.Len(t, tx.TxIn, 1)
	require.EqualValues(t, 1, tx.TxIn[0].PreviousOutPoint.Index)
	require.Len(t, tx.TxOut, 2)
	require.Equal(t, mustAmount(t, "0.5").Units(), tx.TxOut[0].Value)
	require.Equal(t, mustAmount(t, "0.1").Units(), tx.TxOut[1].Value)
}

func TestBuildUnsignedTxNoChange(t *testing.T) {
	p := mustParams(t, "btc")
	draft := &Draft{
		Inputs:      []UnspentOutput{{TxID: "ab", Vout: 0, Address: "1111111111111111111114oLvT2"}},
		SendAddress: "1111111111111111111114oLvT2",
		SendAmount:  mustAmount(t, "1.0"),
	}
	raw, err := BuildUnsignedTx(draft, p, amount.Amount{}, false)
	require.NoError(t, err)
	var tx wire.MsgTx
	require.NoError(t, tx.Deserialize(bytes.NewReader(raw)))
	require.Len(t, tx.TxOut, 1)
}

func TestBuildUnsignedTxRejectsNonBitcoinFamily(t *testing.T) {
	p := mustParams(t, "eth")
	draft := &Draft{
		Inputs:      []UnspentOutput{{TxID: "ab", Vout: 0}},
		SendAddress: "abababababababababababababababababababab",
		SendAmount:  mustAmount(t, "1.0"),
	}
	_, err := BuildUnsignedTx(draft, p, amount.Amount{}, false)
	require.Error(t, err)
}
