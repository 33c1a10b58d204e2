// Copyright (C) 2024, Suikit Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package secp256k1

import (
	"crypto/sha256"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/suikit/go-sui/crypto"
)

const (
	PublicKeyLen  = 33 // compressed SEC1 form
	PrivateKeyLen = 32
	SignatureLen  = 64 // r || s

	rsLen = 32
)

type (
	PublicKey  [PublicKeyLen]byte
	PrivateKey [PrivateKeyLen]byte
	Signature  [SignatureLen]byte
)

var (
	EmptyPublicKey  = [PublicKeyLen]byte{}
	EmptyPrivateKey = [PrivateKeyLen]byte{}
	EmptySignature  = [SignatureLen]byte{}
)

// GeneratePrivateKey returns a secp256k1 PrivateKey.
func GeneratePrivateKey() (PrivateKey, error) {
	k, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return EmptyPrivateKey, err
	}
	return PrivateKey(k.Serialize()), nil
}

// PrivateKeyFromBytes validates and copies a 32 byte scalar. A zero scalar or
// one at or above the curve order is rejected.
func PrivateKeyFromBytes(b []byte) (PrivateKey, error) {
	if len(b) != PrivateKeyLen {
		return EmptyPrivateKey, crypto.ErrInvalidKeyMaterial
	}
	var s secp256k1.ModNScalar
	if overflow := s.SetByteSlice(b); overflow || s.IsZero() {
		return EmptyPrivateKey, crypto.ErrInvalidKeyMaterial
	}
	return PrivateKey(b), nil
}

// PublicKey returns the compressed public key associated with the secp256k1
// PrivateKey p.
func (p PrivateKey) PublicKey() PublicKey {
	k := secp256k1.PrivKeyFromBytes(p[:])
	return PublicKey(k.PubKey().SerializeCompressed())
}

// Sign returns a valid signature for msg using pk.
//
// The message is hashed with SHA-256 before signing and the nonce is derived
// with RFC6979, so signatures are reproducible for a given (key, msg) pair.
// [s] is kept in the lower half of the curve order.
func Sign(msg []byte, pk PrivateKey) (Signature, error) {
	priv := secp256k1.PrivKeyFromBytes(pk[:])
	if priv.Key.IsZero() {
		return EmptySignature, crypto.ErrInvalidKeyMaterial
	}

	digest := sha256.Sum256(msg)
	sig := ecdsa.Sign(priv, digest[:])

	r := sig.R()
	s := sig.S()
	var out Signature
	r.PutBytesUnchecked(out[:rsLen])
	s.PutBytesUnchecked(out[rsLen:])
	return out, nil
}

// Verify returns whether sig is a valid signature of msg by p.
//
// The value of [s] in [sig] must be in the lower half of the curve order for
// the signature to be considered valid.
func Verify(msg []byte, p PublicKey, sig Signature) bool {
	pub, err := secp256k1.ParsePubKey(p[:])
	if err != nil {
		return false
	}

	var r, s secp256k1.ModNScalar
	if overflow := r.SetByteSlice(sig[:rsLen]); overflow {
		return false
	}
	if overflow := s.SetByteSlice(sig[rsLen:]); overflow {
		return false
	}
	if s.IsOverHalfOrder() {
		return false
	}

	digest := sha256.Sum256(msg)
	return ecdsa.NewSignature(&r, &s).Verify(digest[:], pub)
}
