// Copyright (C) 2024, Suikit Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package intent implements the domain-separation envelope that wraps every
// signable message. Signing the digest of (scope || version || app id ||
// payload) instead of the raw payload prevents a signature produced for one
// message type or protocol version from being replayed as another.
package intent

import (
	"golang.org/x/crypto/blake2b"

	"github.com/suikit/go-sui/consts"
)

// Intent scopes. The values are protocol configuration and must be stable
// for a given chain version.
const (
	ScopeTransactionData    uint8 = 0
	ScopeTransactionEffects uint8 = 1
	ScopeCheckpointSummary  uint8 = 2
	ScopePersonalMessage    uint8 = 3
)

// Intent versions.
const (
	VersionV0 uint8 = 0
)

// Application identifiers.
const (
	AppSui uint8 = 0
)

// PrefixLen is the byte length of the intent prefix.
const PrefixLen = 3

// Intent is the three tag bytes prefixed to a signable payload.
type Intent struct {
	Scope   uint8
	Version uint8
	AppID   uint8
}

// Transaction returns the intent for signing transaction data.
func Transaction() Intent {
	return Intent{Scope: ScopeTransactionData, Version: VersionV0, AppID: AppSui}
}

// PersonalMessage returns the intent for signing off-chain messages.
func PersonalMessage() Intent {
	return Intent{Scope: ScopePersonalMessage, Version: VersionV0, AppID: AppSui}
}

// MessageBytes returns the full intent message: the three tag bytes followed
// by [payload].
func (i Intent) MessageBytes(payload []byte) []byte {
	msg := make([]byte, 0, PrefixLen+len(payload))
	msg = append(msg, i.Scope, i.Version, i.AppID)
	return append(msg, payload...)
}

// Digest returns the 32 byte BLAKE2b-256 digest of the intent message. This
// digest is what gets signed, and doubles as the transaction digest nodes
// report.
func (i Intent) Digest(payload []byte) []byte {
	h := blake2b.Sum256(i.MessageBytes(payload))
	out := make([]byte, consts.DigestLen)
	copy(out, h[:])
	return out
}
