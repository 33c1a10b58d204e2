// Copyright (C) 2024, Suikit Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"errors"
	"fmt"

	"github.com/suikit/go-sui/chain"
	"github.com/suikit/go-sui/crypto"
	"github.com/suikit/go-sui/crypto/ed25519"
	"github.com/suikit/go-sui/crypto/secp256k1"
	"github.com/suikit/go-sui/crypto/secp256r1"
)

var ErrUnsupportedScheme = errors.New("unsupported signature scheme")

// UnmarshalAuth decodes a signature envelope by its leading scheme flag,
// validating the scheme-specific length.
func UnmarshalAuth(b []byte) (chain.Auth, error) {
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: empty envelope", crypto.ErrInvalidSignatureLen)
	}
	switch b[0] {
	case ED25519ID:
		return UnmarshalED25519(b)
	case SECP256K1ID:
		return UnmarshalSECP256K1(b)
	case SECP256R1ID:
		return UnmarshalSECP256R1(b)
	default:
		return nil, fmt.Errorf("%w: flag %d", ErrUnsupportedScheme, b[0])
	}
}

// GetFactory returns the [chain.AuthFactory] for raw private key material
// under [scheme]. Wrong-length material fails with
// [crypto.ErrInvalidKeyMaterial] before any signing is attempted.
func GetFactory(scheme uint8, keyBytes []byte) (chain.AuthFactory, error) {
	switch scheme {
	case ED25519ID:
		// Accept either the 32 byte seed (keystring form) or the full
		// expanded 64 byte key.
		switch len(keyBytes) {
		case ed25519.SeedLen:
			priv, err := ed25519.PrivateKeyFromSeed(keyBytes)
			if err != nil {
				return nil, err
			}
			return NewED25519Factory(priv), nil
		case ed25519.PrivateKeyLen:
			return NewED25519Factory(ed25519.PrivateKey(keyBytes)), nil
		default:
			return nil, crypto.ErrInvalidKeyMaterial
		}
	case SECP256K1ID:
		priv, err := secp256k1.PrivateKeyFromBytes(keyBytes)
		if err != nil {
			return nil, err
		}
		return NewSECP256K1Factory(priv), nil
	case SECP256R1ID:
		priv, err := secp256r1.PrivateKeyFromBytes(keyBytes)
		if err != nil {
			return nil, err
		}
		return NewSECP256R1Factory(priv), nil
	default:
		return nil, fmt.Errorf("%w: flag %d", ErrUnsupportedScheme, scheme)
	}
}

// GenerateFactory creates a fresh keypair under [scheme] and returns its
// signer capability.
func GenerateFactory(scheme uint8) (chain.AuthFactory, error) {
	switch scheme {
	case ED25519ID:
		priv, err := ed25519.GeneratePrivateKey()
		if err != nil {
			return nil, err
		}
		return NewED25519Factory(priv), nil
	case SECP256K1ID:
		priv, err := secp256k1.GeneratePrivateKey()
		if err != nil {
			return nil, err
		}
		return NewSECP256K1Factory(priv), nil
	case SECP256R1ID:
		priv, err := secp256r1.GeneratePrivateKey()
		if err != nil {
			return nil, err
		}
		return NewSECP256R1Factory(priv), nil
	default:
		return nil, fmt.Errorf("%w: flag %d", ErrUnsupportedScheme, scheme)
	}
}
