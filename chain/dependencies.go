// Copyright (C) 2024, Suikit Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import "github.com/suikit/go-sui/codec"

// Auth is one signer's scheme-tagged signature envelope over a signing
// digest. Implementations live in the auth package, one per scheme.
type Auth interface {
	// GetTypeID returns the scheme flag byte.
	GetTypeID() uint8

	// Verify checks the envelope's signature over [digest]. A rejection is a
	// returned error, never a panic.
	Verify(digest []byte) error

	// Address returns the account the envelope's public key controls.
	Address() codec.Address

	// Bytes returns the fixed-layout envelope: flag || signature || pubkey.
	Bytes() []byte
}

// AuthFactory is a signer capability: something that can produce an Auth for
// a signing digest. It may hold a local private key or proxy to a remote
// signer; the assembler does not care which.
type AuthFactory interface {
	Sign(digest []byte) (Auth, error)
	Address() codec.Address
}
