// Copyright (C) 2024, Suikit Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/suikit/go-sui/chain"
)

// JSONRPCClient submits signed transaction artifacts to a fullnode. It
// consumes the core's wire contract (canonical transaction bytes plus
// scheme-tagged signature envelopes) and never calls back into the core.
type JSONRPCClient struct {
	requester *EndpointRequester
	log       *zap.Logger
}

func NewJSONRPCClient(uri string, opts ...ClientOption) *JSONRPCClient {
	cfg := clientConfig{log: zap.NewNop(), httpClient: http.DefaultClient}
	for _, opt := range opts {
		opt(&cfg)
	}
	uri = strings.TrimSuffix(uri, "/")
	return &JSONRPCClient{
		requester: NewEndpointRequester(uri, cfg.httpClient, cfg.log),
		log:       cfg.log,
	}
}

type clientConfig struct {
	log        *zap.Logger
	httpClient *http.Client
}

type ClientOption func(*clientConfig)

func WithLogger(log *zap.Logger) ClientOption {
	return func(c *clientConfig) { c.log = log }
}

func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *clientConfig) { c.httpClient = client }
}

// ExecuteTransactionBlockReply is the subset of the node's execution response
// the client surfaces; the full effects stay available as raw JSON.
type ExecuteTransactionBlockReply struct {
	Digest     string          `json:"digest"`
	RawEffects json.RawMessage `json:"effects,omitempty"`
	Confirmed  bool            `json:"confirmedLocalExecution,omitempty"`
	Errors     []string        `json:"errors,omitempty"`
}

// ExecuteTransactionBlock submits [signed]. Transaction bytes and every
// envelope travel base64-encoded, in signer order.
func (cli *JSONRPCClient) ExecuteTransactionBlock(
	ctx context.Context,
	signed *chain.SignedTransaction,
) (*ExecuteTransactionBlockReply, error) {
	sigs := make([]string, 0, len(signed.Signatures))
	for _, raw := range signed.SignatureBytes() {
		sigs = append(sigs, base64.StdEncoding.EncodeToString(raw))
	}

	resp := new(ExecuteTransactionBlockReply)
	err := cli.requester.SendRequest(ctx,
		"sui_executeTransactionBlock",
		[]interface{}{
			base64.StdEncoding.EncodeToString(signed.TransactionBytes),
			sigs,
			nil, // options: default effects
			"WaitForLocalExecution",
		},
		resp,
	)
	if err != nil {
		return nil, err
	}
	cli.log.Info("transaction submitted",
		zap.String("digest", resp.Digest),
		zap.Int("signatures", len(sigs)),
	)
	return resp, nil
}

// DryRunTransactionBlock executes [txBytes] against current state without
// submitting it. Useful for fee estimation before signing.
func (cli *JSONRPCClient) DryRunTransactionBlock(
	ctx context.Context,
	txBytes []byte,
) (json.RawMessage, error) {
	var resp json.RawMessage
	err := cli.requester.SendRequest(ctx,
		"sui_dryRunTransactionBlock",
		[]interface{}{base64.StdEncoding.EncodeToString(txBytes)},
		&resp,
	)
	return resp, err
}

// GetReferenceGasPrice returns the network's current reference gas price.
func (cli *JSONRPCClient) GetReferenceGasPrice(ctx context.Context) (uint64, error) {
	// The node returns the price as a JSON string.
	var resp string
	if err := cli.requester.SendRequest(ctx, "suix_getReferenceGasPrice", nil, &resp); err != nil {
		return 0, err
	}
	return strconv.ParseUint(resp, 10, 64)
}
