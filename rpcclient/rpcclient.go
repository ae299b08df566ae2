// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpcclient is the JSON-RPC transport for daemon-mode coins
// (§4.8's daemon branch): a thin HTTP POST client speaking the bitcoind
// dialect named in btcjson, plus the parity/JSON-RPC-over-HTTP dialect
// Ethereum-family daemons use at the ports chaincfg.Params.RPCPort names.
package rpcclient

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/btcsuite/btclog"
	"github.com/toole-brendan/mmwallet/btcjson"
	"github.com/toole-brendan/mmwallet/signer"
	"github.com/toole-brendan/mmwallet/walleterr"
)

var log = btclog.Disabled

// UseLogger sets the package-wide logger.
func UseLogger(logger btclog.Logger) {
	log = logger
}

// Config holds the connection parameters for one daemon endpoint.
type Config struct {
	Host     string // "127.0.0.1:8332"
	User     string
	Pass     string
	Timeout  time.Duration
}

// Client is a synchronous JSON-RPC 1.0 client, matching the single-
// threaded core's "no suspension points internally" model: callers block
// on Call, no background goroutine pool.
type Client struct {
	cfg Config
	hc  *http.Client
}

var _ signer.DaemonClient = (*Client)(nil)

// New constructs a Client for cfg.
func New(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{cfg: cfg, hc: &http.Client{Timeout: cfg.Timeout}}
}

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      int           `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
	ID     int             `json:"id"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string { return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message) }

// Call invokes method with params and unmarshals the result into out.
func (c *Client) Call(method string, params []interface{}, out interface{}) error {
	reqBody, err := json.Marshal(rpcRequest{JSONRPC: "1.0", ID: 1, Method: method, Params: params})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, "http://"+c.cfg.Host, bytes.NewReader(reqBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.User != "" {
		auth := base64.StdEncoding.EncodeToString([]byte(c.cfg.User + ":" + c.cfg.Pass))
		req.Header.Set("Authorization", "Basic "+auth)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		log.Errorf("rpcclient: %s unreachable: %v", method, err)
		return fmt.Errorf("%w: %v", walleterr.ErrDaemonUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var rr rpcResponse
	if err := json.Unmarshal(body, &rr); err != nil {
		return fmt.Errorf("rpcclient: malformed response to %s: %w", method, err)
	}
	if rr.Error != nil {
		return rr.Error
	}
	if out != nil {
		return json.Unmarshal(rr.Result, out)
	}
	return nil
}

// ListUnspent calls listunspent.
func (c *Client) ListUnspent(minConf, maxConf int) ([]btcjson.ListUnspentResult, error) {
	var out []btcjson.ListUnspentResult
	err := c.Call("listunspent", []interface{}{minConf, maxConf}, &out)
	return out, err
}

// DecodeRawTransaction calls decoderawtransaction.
func (c *Client) DecodeRawTransaction(hexTx string) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.Call("decoderawtransaction", []interface{}{hexTx}, &out)
	return out, err
}

// CreateRawTransaction calls createrawtransaction.
func (c *Client) CreateRawTransaction(inputs []btcjson.TransactionInput, amounts map[string]float64) (string, error) {
	var out string
	err := c.Call("createrawtransaction", []interface{}{inputs, amounts}, &out)
	return out, err
}

// SendRawTransaction calls sendrawtransaction.
func (c *Client) SendRawTransaction(hexTx string) (string, error) {
	var out string
	err := c.Call("sendrawtransaction", []interface{}{hexTx}, &out)
	return out, err
}

// SignRawTransaction calls signrawtransaction, satisfying
// signer.DaemonClient's signing method.
func (c *Client) SignRawTransaction(rawHex string, prevOuts []signer.PrevOut, privKeysWIF []string) (string, bool, error) {
	inputs := make([]btcjson.RawTxInput, len(prevOuts))
	for i, po := range prevOuts {
		inputs[i] = btcjson.RawTxInput{
			Txid:         po.TxID,
			Vout:         po.Vout,
			ScriptPubKey: po.ScriptPubKey,
			RedeemScript: po.RedeemScript,
		}
	}
	var out btcjson.SignRawTransactionResult
	err := c.Call("signrawtransaction", []interface{}{rawHex, inputs, privKeysWIF}, &out)
	if err != nil {
		return "", false, err
	}
	return out.Hex, out.Complete, nil
}

// WalletPassphrase calls walletpassphrase, satisfying
// signer.DaemonClient's unlock method.
func (c *Client) WalletPassphrase(passphrase string, timeoutSeconds int) error {
	var rerr *rpcError
	err := c.Call("walletpassphrase", []interface{}{passphrase, timeoutSeconds}, nil)
	if err != nil {
		if asRPCError(err, &rerr) && rerr.Code == -14 {
			return walleterr.ErrWalletPassphraseIncorrect
		}
		return err
	}
	return nil
}

// WalletLock calls walletlock, satisfying signer.DaemonClient's lock
// method — called on every exit path from a passphrase-unlocked signing
// attempt, per §4.8.
func (c *Client) WalletLock() error {
	return c.Call("walletlock", nil, nil)
}

func asRPCError(err error, target **rpcError) bool {
	re, ok := err.(*rpcError)
	if ok {
		*target = re
	}
	return ok
}
