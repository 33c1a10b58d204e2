// Copyright (C) 2024, Suikit Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"fmt"

	"github.com/suikit/go-sui/chain"
	"github.com/suikit/go-sui/codec"
	"github.com/suikit/go-sui/crypto"
	"github.com/suikit/go-sui/crypto/secp256r1"
)

var _ chain.Auth = (*SECP256R1)(nil)

const SECP256R1Size = 1 + secp256r1.SignatureLen + secp256r1.PublicKeyLen

// SECP256R1 is a secp256r1 signature envelope: flag || signature || pubkey.
type SECP256R1 struct {
	Signature secp256r1.Signature `json:"signature"`
	Signer    secp256r1.PublicKey `json:"publicKey"`

	addr codec.Address
}

func (d *SECP256R1) address() codec.Address {
	if d.addr == codec.EmptyAddress {
		d.addr = NewSECP256R1Address(d.Signer)
	}
	return d.addr
}

func (*SECP256R1) GetTypeID() uint8 {
	return SECP256R1ID
}

func (d *SECP256R1) Verify(digest []byte) error {
	if !secp256r1.Verify(digest, d.Signer, d.Signature) {
		return crypto.ErrVerificationFailed
	}
	return nil
}

func (d *SECP256R1) Address() codec.Address {
	return d.address()
}

func (d *SECP256R1) Bytes() []byte {
	b := make([]byte, SECP256R1Size)
	b[0] = SECP256R1ID
	copy(b[1:], d.Signature[:])
	copy(b[1+secp256r1.SignatureLen:], d.Signer[:])
	return b
}

func UnmarshalSECP256R1(bytes []byte) (chain.Auth, error) {
	if len(bytes) != SECP256R1Size {
		return nil, fmt.Errorf("%w: secp256r1 envelope size %d != %d", crypto.ErrInvalidSignatureLen, len(bytes), SECP256R1Size)
	}
	if bytes[0] != SECP256R1ID {
		return nil, fmt.Errorf("%w: unexpected secp256r1 flag %d", ErrUnsupportedScheme, bytes[0])
	}
	var d SECP256R1
	copy(d.Signature[:], bytes[1:])
	copy(d.Signer[:], bytes[1+secp256r1.SignatureLen:])
	return &d, nil
}

var _ chain.AuthFactory = (*SECP256R1Factory)(nil)

type SECP256R1Factory struct {
	priv secp256r1.PrivateKey
}

func NewSECP256R1Factory(priv secp256r1.PrivateKey) *SECP256R1Factory {
	return &SECP256R1Factory{priv}
}

func (d *SECP256R1Factory) Sign(digest []byte) (chain.Auth, error) {
	sig, err := secp256r1.Sign(digest, d.priv)
	if err != nil {
		return nil, err
	}
	return &SECP256R1{Signature: sig, Signer: d.priv.PublicKey()}, nil
}

func (d *SECP256R1Factory) Address() codec.Address {
	return NewSECP256R1Address(d.priv.PublicKey())
}

func NewSECP256R1Address(pk secp256r1.PublicKey) codec.Address {
	return DeriveAddress(SECP256R1ID, pk[:])
}
