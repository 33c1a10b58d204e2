// Copyright (C) 2024, Suikit Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"

	"go.uber.org/zap"
)

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      uint64        `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      uint64          `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error"`
}

// EndpointRequester issues JSON-RPC 2.0 calls against a single node endpoint.
// It is safe for concurrent use; request IDs are monotonic.
type EndpointRequester struct {
	uri    string
	client *http.Client
	log    *zap.Logger

	nextID atomic.Uint64
}

func NewEndpointRequester(uri string, client *http.Client, log *zap.Logger) *EndpointRequester {
	if client == nil {
		client = http.DefaultClient
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &EndpointRequester{uri: uri, client: client, log: log}
}

// SendRequest performs one call and decodes the result into [reply].
func (r *EndpointRequester) SendRequest(
	ctx context.Context,
	method string,
	params []interface{},
	reply interface{},
) error {
	if params == nil {
		params = []interface{}{}
	}
	body, err := json.Marshal(&rpcRequest{
		JSONRPC: "2.0",
		ID:      r.nextID.Add(1),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.uri, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		r.log.Debug("rpc request failed", zap.String("method", method), zap.Error(err))
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected http status %d for %s", resp.StatusCode, method)
	}

	var out rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return err
	}
	if out.Error != nil {
		r.log.Debug("rpc method error",
			zap.String("method", method),
			zap.Int("code", out.Error.Code),
			zap.String("message", out.Error.Message),
		)
		return out.Error
	}
	if reply == nil {
		return nil
	}
	return json.Unmarshal(out.Result, reply)
}
