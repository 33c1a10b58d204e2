// Copyright (C) 2024, Suikit Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"fmt"

	"github.com/suikit/go-sui/chain"
	"github.com/suikit/go-sui/codec"
	"github.com/suikit/go-sui/crypto"
	"github.com/suikit/go-sui/crypto/secp256k1"
)

var _ chain.Auth = (*SECP256K1)(nil)

const SECP256K1Size = 1 + secp256k1.SignatureLen + secp256k1.PublicKeyLen

// SECP256K1 is a secp256k1 signature envelope: flag || signature || pubkey.
type SECP256K1 struct {
	Signature secp256k1.Signature `json:"signature"`
	Signer    secp256k1.PublicKey `json:"publicKey"`

	addr codec.Address
}

func (d *SECP256K1) address() codec.Address {
	if d.addr == codec.EmptyAddress {
		d.addr = NewSECP256K1Address(d.Signer)
	}
	return d.addr
}

func (*SECP256K1) GetTypeID() uint8 {
	return SECP256K1ID
}

func (d *SECP256K1) Verify(digest []byte) error {
	if !secp256k1.Verify(digest, d.Signer, d.Signature) {
		return crypto.ErrVerificationFailed
	}
	return nil
}

func (d *SECP256K1) Address() codec.Address {
	return d.address()
}

func (d *SECP256K1) Bytes() []byte {
	b := make([]byte, SECP256K1Size)
	b[0] = SECP256K1ID
	copy(b[1:], d.Signature[:])
	copy(b[1+secp256k1.SignatureLen:], d.Signer[:])
	return b
}

func UnmarshalSECP256K1(bytes []byte) (chain.Auth, error) {
	if len(bytes) != SECP256K1Size {
		return nil, fmt.Errorf("%w: secp256k1 envelope size %d != %d", crypto.ErrInvalidSignatureLen, len(bytes), SECP256K1Size)
	}
	if bytes[0] != SECP256K1ID {
		return nil, fmt.Errorf("%w: unexpected secp256k1 flag %d", ErrUnsupportedScheme, bytes[0])
	}
	var d SECP256K1
	copy(d.Signature[:], bytes[1:])
	copy(d.Signer[:], bytes[1+secp256k1.SignatureLen:])
	return &d, nil
}

var _ chain.AuthFactory = (*SECP256K1Factory)(nil)

type SECP256K1Factory struct {
	priv secp256k1.PrivateKey
}

func NewSECP256K1Factory(priv secp256k1.PrivateKey) *SECP256K1Factory {
	return &SECP256K1Factory{priv}
}

func (d *SECP256K1Factory) Sign(digest []byte) (chain.Auth, error) {
	sig, err := secp256k1.Sign(digest, d.priv)
	if err != nil {
		return nil, err
	}
	return &SECP256K1{Signature: sig, Signer: d.priv.PublicKey()}, nil
}

func (d *SECP256K1Factory) Address() codec.Address {
	return NewSECP256K1Address(d.priv.PublicKey())
}

func NewSECP256K1Address(pk secp256k1.PublicKey) codec.Address {
	return DeriveAddress(SECP256K1ID, pk[:])
}
