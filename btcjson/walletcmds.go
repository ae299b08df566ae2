// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package btcjson defines the JSON-RPC command and result types the
// wallet's daemon-mode signing and UTXO queries speak — the bitcoind
// dialect named in §4.8/§4.3's daemon_family field. Structured the way
// the teacher's btcjson package structures a command: one exported
// struct per command, one per result, json tags matching the wire
// field names exactly.
package btcjson

// DecodeRawTransactionCmd defines the decoderawtransaction JSON-RPC command.
type DecodeRawTransactionCmd struct {
	HexTx string `json:"hextx"`
}

// CreateRawTransactionCmd defines the createrawtransaction JSON-RPC command.
type CreateRawTransactionCmd struct {
	Inputs  []TransactionInput          `json:"inputs"`
	Amounts map[string]float64          `json:"amounts"`
	LockTime *int64                     `json:"locktime,omitempty"`
}

// TransactionInput is one (txid, vout) reference used by
// CreateRawTransactionCmd and SignRawTransactionCmd.
type TransactionInput struct {
	Txid string `json:"txid"`
	Vout uint32 `json:"vout"`
}

// SignRawTransactionCmd defines the signrawtransaction JSON-RPC command.
type SignRawTransactionCmd struct {
	RawTx    string                  `json:"rawtx"`
	Inputs   []RawTxInput            `json:"inputs,omitempty"`
	PrivKeys []string                `json:"privkeys,omitempty"`
	Flags    *string                 `json:"sighashtype,omitempty" jsonrpcdefault:"\"ALL\""`
}

// RawTxInput models the previous-output data signrawtransaction needs to
// reconstruct a scriptPubKey/redeemScript context for one input.
type RawTxInput struct {
	Txid         string `json:"txid"`
	Vout         uint32 `json:"vout"`
	ScriptPubKey string `json:"scriptPubKey"`
	RedeemScript string `json:"redeemScript,omitempty"`
	Amount       float64 `json:"amount,omitempty"`
}

// SignRawTransactionResult is the result of SignRawTransactionCmd.
type SignRawTransactionResult struct {
	Hex      string                  `json:"hex"`
	Complete bool                    `json:"complete"`
	Errors   []SignRawTransactionError `json:"errors,omitempty"`
}

// SignRawTransactionError is one entry of SignRawTransactionResult.Errors.
type SignRawTransactionError struct {
	Txid      string `json:"txid"`
	Vout      uint32 `json:"vout"`
	ScriptSig string `json:"scriptSig"`
	Sequence  uint32 `json:"sequence"`
	Error     string `json:"error"`
}

// SendRawTransactionCmd defines the sendrawtransaction JSON-RPC command.
type SendRawTransactionCmd struct {
	HexTx     string `json:"hextx"`
	AllowHighFees bool `json:"allowhighfees,omitempty" jsonrpcdefault:"false"`
}

// ListUnspentCmd defines the listunspent JSON-RPC command.
type ListUnspentCmd struct {
	MinConf   *int     `json:"minconf,omitempty" jsonrpcdefault:"1"`
	MaxConf   *int     `json:"maxconf,omitempty" jsonrpcdefault:"9999999"`
	Addresses []string `json:"addresses,omitempty"`
}

// ListUnspentResult is one entry returned by ListUnspentCmd.
type ListUnspentResult struct {
	Txid          string  `json:"txid"`
	Vout          uint32  `json:"vout"`
	Address       string  `json:"address"`
	Account       string  `json:"account,omitempty"`
	ScriptPubKey  string  `json:"scriptPubKey"`
	RedeemScript  string  `json:"redeemScript,omitempty"`
	Amount        float64 `json:"amount"`
	Confirmations int64   `json:"confirmations"`
	Spendable     bool    `json:"spendable"`
}

// ListAccountsCmd defines the listaccounts JSON-RPC command.
type ListAccountsCmd struct {
	MinConf *int `json:"minconf,omitempty" jsonrpcdefault:"1"`
}

// GetAddressesByAccountCmd defines the getaddressesbyaccount JSON-RPC command.
type GetAddressesByAccountCmd struct {
	Account string `json:"account"`
}

// WalletPassphraseCmd defines the walletpassphrase JSON-RPC command.
type WalletPassphraseCmd struct {
	Passphrase string `json:"passphrase"`
	Timeout    int64  `json:"timeout"`
}

// WalletLockCmd defines the walletlock JSON-RPC command.
type WalletLockCmd struct{}
