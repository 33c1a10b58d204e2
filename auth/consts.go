// Copyright (C) 2024, Suikit Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

// Scheme flags. These byte values prefix signature envelopes, keystrings,
// and address-derivation preimages; we assign them explicitly to avoid
// accidental remapping.
const (
	ED25519ID   uint8 = 0x00
	SECP256K1ID uint8 = 0x01
	SECP256R1ID uint8 = 0x02

	ED25519Key   = "ed25519"
	Secp256k1Key = "secp256k1"
	Secp256r1Key = "secp256r1"
)
