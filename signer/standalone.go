// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package signer

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/toole-brendan/mmwallet/chaincfg"
)

// SighashAll and SighashAllForkID are the two secp256k1 sighash policies
// §4.8 step 3's standalone branch names for Bitcoin-family coins.
const (
	SighashAll       = 0x01
	SighashForkID    = 0x40 // BCH anti-replay bit, OR'd with SighashAll
	SighashAllForkID = SighashAll | SighashForkID
)

// SignBitcoinFamily signs sighash (the transaction's computed signature
// hash, already incorporating the coin's SighashType per
// chaincfg.Params.SighashType) with secret, appending the sighash-type
// byte to the DER signature as Bitcoin-family transactions require.
func SignBitcoinFamily(secret []byte, sighash [32]byte, p *chaincfg.Params) ([]byte, error) {
	priv, _ := btcec.PrivKeyFromBytes(secret)
	sig := ecdsa.Sign(priv, sighash[:])

	var hashType byte = SighashAll
	if p.Family == chaincfg.FamilyBitcoinCash {
		hashType = SighashAllForkID
	}
	der := sig.Serialize()
	return append(der, hashType), nil
}

// EIP155Signature is a standalone Ethereum-family signature: (v, r, s)
// with v encoding the chain id per EIP-155, preventing a signature
// produced for one chain from replaying on another (§4.8 step 3's
// Ethereum branch).
type EIP155Signature struct {
	V byte
	R [32]byte
	S [32]byte
}

// SignEthereum signs txHash (the RLP hash of the unsigned transaction)
// with secret and encodes v per EIP-155: v = recoveryID + chainID*2 + 35.
func SignEthereum(secret []byte, txHash [32]byte, p *chaincfg.Params) (*EIP155Signature, error) {
	if p.ChainID == 0 {
		return nil, fmt.Errorf("signer: %s has no chain id configured for EIP-155 signing", p.Name)
	}
	priv, _ := btcec.PrivKeyFromBytes(secret)
	sig, err := ecdsaSignRecoverable(priv, txHash[:])
	if err != nil {
		return nil, err
	}
	v := byte(int64(sig.recoveryID) + p.ChainID*2 + 35)
	return &EIP155Signature{V: v, R: sig.r, S: sig.s}, nil
}

type recoverableSig struct {
	recoveryID int
	r, s       [32]byte
}

// ecdsaSignRecoverable signs hash and additionally recovers the
// recovery id needed to rebuild an Ethereum-style v value — btcec's
// ecdsa.SignCompact already returns a recovery-id-prefixed 65-byte
// signature in exactly this shape, so this just unpacks it rather than
// reimplementing recovery-id derivation.
func ecdsaSignRecoverable(priv *btcec.PrivateKey, hash []byte) (*recoverableSig, error) {
	var h32 [32]byte
	copy(h32[:], hash)
	compact := ecdsa.SignCompact(priv, h32[:], false)
	// SignCompact's first byte is 27+recoveryID(+4 if compressed); false
	// above requests the uncompressed form, so recoveryID = compact[0]-27.
	recID := int(compact[0]) - 27
	var r, s [32]byte
	copy(r[:], compact[1:33])
	copy(s[:], compact[33:65])
	return &recoverableSig{recoveryID: recID, r: r, s: s}, nil
}
