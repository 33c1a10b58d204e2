// Copyright (C) 2024, Suikit Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/suikit/go-sui/auth"
	"github.com/suikit/go-sui/chain"
	"github.com/suikit/go-sui/intent"
)

func testSignedTransaction(t *testing.T) *chain.SignedTransaction {
	t.Helper()
	require := require.New(t)

	factory, err := auth.GenerateFactory(auth.ED25519ID)
	require.NoError(err)

	a := chain.NewAssembler(factory.Address())
	in, err := a.Pure([]byte{0x01})
	require.NoError(err)
	_, err = a.TransferObjects([]chain.Argument{chain.GasCoin()}, in)
	require.NoError(err)

	var d chain.Digest
	require.NoError(a.SetGas([]chain.ObjectReference{{
		ID:      factory.Address(),
		Version: 1,
		Digest:  d,
	}}, 1000, 5_000_000))

	_, err = a.Encode()
	require.NoError(err)
	_, err = a.Envelope(intent.Transaction())
	require.NoError(err)
	require.NoError(a.Sign(factory))
	signed, err := a.Finalize()
	require.NoError(err)
	return signed
}

func TestExecuteTransactionBlock(t *testing.T) {
	require := require.New(t)
	signed := testSignedTransaction(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		require.NoError(json.NewDecoder(r.Body).Decode(&req))
		require.Equal("sui_executeTransactionBlock", req.Method)
		require.Len(req.Params, 4)

		// Transaction bytes and envelopes travel base64 encoded.
		txParam, ok := req.Params[0].(string)
		require.True(ok)
		txBytes, err := base64.StdEncoding.DecodeString(txParam)
		require.NoError(err)
		require.Equal(signed.TransactionBytes, txBytes)

		sigParams, ok := req.Params[1].([]interface{})
		require.True(ok)
		require.Len(sigParams, 1)
		sigBytes, err := base64.StdEncoding.DecodeString(sigParams[0].(string))
		require.NoError(err)
		require.Equal(signed.SignatureBytes()[0], sigBytes)

		require.Equal("WaitForLocalExecution", req.Params[3])

		resp := map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result": map[string]interface{}{
				"digest":                  signed.ID.String(),
				"confirmedLocalExecution": true,
			},
		}
		require.NoError(json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	cli := NewJSONRPCClient(srv.URL)
	reply, err := cli.ExecuteTransactionBlock(context.Background(), signed)
	require.NoError(err)
	require.Equal(signed.ID.String(), reply.Digest)
	require.True(reply.Confirmed)
	require.Empty(reply.Errors)
}

func TestGetReferenceGasPrice(t *testing.T) {
	require := require.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		require.NoError(json.NewDecoder(r.Body).Decode(&req))
		require.Equal("suix_getReferenceGasPrice", req.Method)
		resp := map[string]interface{}{"jsonrpc": "2.0", "id": req.ID, "result": "745"}
		require.NoError(json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	cli := NewJSONRPCClient(srv.URL)
	price, err := cli.GetReferenceGasPrice(context.Background())
	require.NoError(err)
	require.Equal(uint64(745), price)
}

func TestDryRunTransactionBlock(t *testing.T) {
	require := require.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		require.NoError(json.NewDecoder(r.Body).Decode(&req))
		require.Equal("sui_dryRunTransactionBlock", req.Method)
		resp := map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result":  map[string]interface{}{"effects": map[string]interface{}{"status": "success"}},
		}
		require.NoError(json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	cli := NewJSONRPCClient(srv.URL)
	raw, err := cli.DryRunTransactionBlock(context.Background(), []byte{0x00, 0x01})
	require.NoError(err)
	require.Contains(string(raw), "success")
}
