// Copyright (C) 2024, Suikit Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package intent

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMessageBytesLayout(t *testing.T) {
	require := require.New(t)
	payload := []byte{0xde, 0xad}
	msg := Transaction().MessageBytes(payload)
	require.Equal([]byte{0x00, 0x00, 0x00, 0xde, 0xad}, msg, "intent prefix layout changed")

	msg = PersonalMessage().MessageBytes(payload)
	require.Equal([]byte{0x03, 0x00, 0x00, 0xde, 0xad}, msg)
}

func TestMessageBytesDoesNotAliasPayload(t *testing.T) {
	require := require.New(t)
	payload := []byte{0x01}
	msg := Transaction().MessageBytes(payload)
	msg[3] = 0xff
	require.Equal(byte(0x01), payload[0], "payload mutated through the message")
}

// TestDigestPinned pins the digest of the empty payload under the
// transaction intent. Any change here breaks signature compatibility.
func TestDigestPinned(t *testing.T) {
	require := require.New(t)
	d := Transaction().Digest(nil)
	require.Equal(
		"ab29e6dc16755d0071eba349ebda225d15e4f910cb474549c47e95cb85ecc4d6",
		hex.EncodeToString(d),
	)
}

func TestDigestDeterministic(t *testing.T) {
	require := require.New(t)
	payload := []byte("same payload")
	require.Equal(Transaction().Digest(payload), Transaction().Digest(payload))
}

// TestDigestDomainSeparation confirms the scope byte keeps signatures from
// one message domain out of another: the same payload digests differently
// under every scope.
func TestDigestDomainSeparation(t *testing.T) {
	require := require.New(t)
	payload := []byte("shared payload")
	seen := map[string]bool{}
	for _, scope := range []uint8{
		ScopeTransactionData,
		ScopeTransactionEffects,
		ScopeCheckpointSummary,
		ScopePersonalMessage,
	} {
		it := Intent{Scope: scope, Version: VersionV0, AppID: AppSui}
		d := hex.EncodeToString(it.Digest(payload))
		require.False(seen[d], "scope %d collides with an earlier scope", scope)
		seen[d] = true
	}
}

func TestDigestVersionSeparation(t *testing.T) {
	require := require.New(t)
	payload := []byte("shared payload")
	v0 := Intent{Scope: ScopeTransactionData, Version: 0, AppID: AppSui}
	v1 := Intent{Scope: ScopeTransactionData, Version: 1, AppID: AppSui}
	require.NotEqual(v0.Digest(payload), v1.Digest(payload))
}
