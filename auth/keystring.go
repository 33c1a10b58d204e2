// Copyright (C) 2024, Suikit Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"encoding/base64"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"

	"github.com/suikit/go-sui/chain"
	"github.com/suikit/go-sui/crypto"
)

// PrivateKeyHRP is the bech32 human-readable part for exported private keys.
const PrivateKeyHRP = "suiprivkey"

// EncodeKeystring serializes [scheme] and 32 bytes of private key material in
// the keystore's base64 keystring form.
func EncodeKeystring(scheme uint8, keyBytes []byte) string {
	all := make([]byte, 0, 1+len(keyBytes))
	all = append(all, scheme)
	all = append(all, keyBytes...)
	return base64.StdEncoding.EncodeToString(all)
}

// DecodeKeystring parses a base64 keystring and returns the signer capability
// it encodes.
func DecodeKeystring(keystring string) (chain.AuthFactory, error) {
	b, err := base64.StdEncoding.DecodeString(keystring)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", crypto.ErrInvalidKeyMaterial, err)
	}
	if len(b) < 2 {
		return nil, crypto.ErrInvalidKeyMaterial
	}
	return GetFactory(b[0], b[1:])
}

// EncodeBech32PrivateKey serializes [scheme] and private key material in the
// bech32 export format (hrp "suiprivkey").
func EncodeBech32PrivateKey(scheme uint8, keyBytes []byte) (string, error) {
	all := make([]byte, 0, 1+len(keyBytes))
	all = append(all, scheme)
	all = append(all, keyBytes...)
	converted, err := bech32.ConvertBits(all, 8, 5, true)
	if err != nil {
		return "", err
	}
	return bech32.Encode(PrivateKeyHRP, converted)
}

// DecodeBech32PrivateKey parses a bech32 "suiprivkey" string and returns the
// signer capability it encodes.
func DecodeBech32PrivateKey(s string) (chain.AuthFactory, error) {
	hrp, data, err := bech32.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", crypto.ErrInvalidKeyMaterial, err)
	}
	if hrp != PrivateKeyHRP {
		return nil, fmt.Errorf("%w: hrp %q", crypto.ErrInvalidKeyMaterial, hrp)
	}
	b, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", crypto.ErrInvalidKeyMaterial, err)
	}
	if len(b) < 2 {
		return nil, crypto.ErrInvalidKeyMaterial
	}
	return GetFactory(b[0], b[1:])
}
