// Copyright (C) 2024, Suikit Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package crypto

import "errors"

var (
	ErrInvalidKeyMaterial  = errors.New("invalid key material")
	ErrVerificationFailed  = errors.New("signature verification failed")
	ErrInvalidPublicKey    = errors.New("invalid public key")
	ErrInvalidSignatureLen = errors.New("invalid signature length")
)
