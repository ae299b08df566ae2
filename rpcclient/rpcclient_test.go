// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpcclient

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/toole-brendan/mmwallet/walleterr"
)

func TestListUnspentParsesResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := rpcResponse{
			Result: json.RawMessage(`[{"txid":"aa","vout":0,"address":"1abc","amount":1.5,"confirmations":6,"spendable":true}]`),
			ID:     1,
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c := New(Config{Host: srv.Listener.Addr().String()})
	out, err := c.ListUnspent(1, 9999999)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "aa", out[0].Txid)
	require.Equal(t, 1.5, out[0].Amount)
}

func TestCallSurfacesRPCError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := rpcResponse{Error: &rpcError{Code: -5, Message: "invalid address"}, ID: 1}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c := New(Config{Host: srv.Listener.Addr().String()})
	var out string
	err := c.Call("decoderawtransaction", []interface{}{"deadbeef"}, &out)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid address")
}

func TestWalletPassphraseIncorrectMapsToSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := rpcResponse{Error: &rpcError{Code: -14, Message: "incorrect passphrase"}, ID: 1}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c := New(Config{Host: srv.Listener.Addr().String()})
	err := c.WalletPassphrase("wrong", 60)
	require.ErrorIs(t, err, walleterr.ErrWalletPassphraseIncorrect)
}
