// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package signer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/toole-brendan/mmwallet/chaincfg"
	"github.com/toole-brendan/mmwallet/txbuilder"
)

func mustParams(t *testing.T, symbol string) *chaincfg.Params {
	t.Helper()
	p, err := chaincfg.Get(symbol, false)
	require.NoError(t, err)
	return p
}

func TestPartitionInputsSplitsInternalExternal(t *testing.T) {
	inputs := []txbuilder.UnspentOutput{
		{WalletLabel: "DEADBEEF:1"},
		{WalletLabel: ""},
	}
	internal, external := PartitionInputs(inputs)
	require.Len(t, internal, 1)
	require.Len(t, external, 1)
}

func TestDeriveInternalSecretIsDeterministic(t *testing.T) {
	p := mustParams(t, "btc")
	seed := []byte("test seed material, 32+ bytes long for hmac key")
	a, err := DeriveInternalSecret(seed, "DEADBEEF", 1, chaincfg.VariantStd, p)
	require.NoError(t, err)
	b, err := DeriveInternalSecret(seed, "DEADBEEF", 1, chaincfg.VariantStd, p)
	require.NoError(t, err)
	require.Equal(t, a, b)

	c, err := DeriveInternalSecret(seed, "DEADBEEF", 2, chaincfg.VariantStd, p)
	require.NoError(t, err)
	require.NotEqual(t, a, c)
}

func TestVerifyExternalKeysMissingAborts(t *testing.T) {
	p := mustParams(t, "btc")
	externalInputs := []txbuilder.UnspentOutput{{Address: "1111111111111111111114oLvT2"}}
	_, err := VerifyExternalKeys(externalInputs, nil, p)
	require.True(t, errors.Is(err, ErrMissingExternalKey))
}

func TestSignEthereumRequiresChainID(t *testing.T) {
	p := mustParams(t, "xmr") // no chain id configured
	secret := make([]byte, 32)
	secret[31] = 0x01
	_, err := SignEthereum(secret, [32]byte{}, p)
	require.Error(t, err)
}

func TestSignEthereumEncodesChainIDIntoV(t *testing.T) {
	p := mustParams(t, "etc")
	secret := make([]byte, 32)
	secret[31] = 0x01
	sig, err := SignEthereum(secret, [32]byte{1, 2, 3}, p)
	require.NoError(t, err)
	// v = recoveryID + chainID*2 + 35; chainID=61 so v is at least 35+122=157.
	require.GreaterOrEqual(t, int(sig.V), 157)
}

func TestSignBitcoinCashUsesForkID(t *testing.T) {
	p := mustParams(t, "bch")
	secret := make([]byte, 32)
	secret[31] = 0x01
	sig, err := SignBitcoinFamily(secret, [32]byte{1, 2, 3}, p)
	require.NoError(t, err)
	require.Equal(t, byte(SighashAllForkID), sig[len(sig)-1])
}

func TestSignBitcoinUsesPlainAll(t *testing.T) {
	p := mustParams(t, "btc")
	secret := make([]byte, 32)
	secret[31] = 0x01
	sig, err := SignBitcoinFamily(secret, [32]byte{1, 2, 3}, p)
	require.NoError(t, err)
	require.Equal(t, byte(SighashAll), sig[len(sig)-1])
}
