// Copyright (C) 2024, Suikit Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"golang.org/x/crypto/blake2b"

	"github.com/suikit/go-sui/codec"
)

// DeriveAddress returns BLAKE2b-256(flag || pubkey) as an Address. The
// derivation is identical for every scheme, so addresses are scheme-agnostic
// at rest; the flag byte keeps identical key bytes under different schemes
// from colliding.
func DeriveAddress(flag uint8, publicKey []byte) codec.Address {
	h, _ := blake2b.New256(nil)
	h.Write([]byte{flag})
	h.Write(publicKey)
	var a codec.Address
	copy(a[:], h.Sum(nil))
	return a
}
