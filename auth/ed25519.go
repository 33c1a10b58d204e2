// Copyright (C) 2024, Suikit Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"fmt"

	"github.com/suikit/go-sui/chain"
	"github.com/suikit/go-sui/codec"
	"github.com/suikit/go-sui/crypto"
	"github.com/suikit/go-sui/crypto/ed25519"
)

var _ chain.Auth = (*ED25519)(nil)

const ED25519Size = 1 + ed25519.SignatureLen + ed25519.PublicKeyLen

// ED25519 is an ed25519 signature envelope: flag || signature || pubkey.
type ED25519 struct {
	Signature ed25519.Signature `json:"signature"`
	Signer    ed25519.PublicKey `json:"publicKey"`

	addr codec.Address
}

func (d *ED25519) address() codec.Address {
	if d.addr == codec.EmptyAddress {
		d.addr = NewED25519Address(d.Signer)
	}
	return d.addr
}

func (*ED25519) GetTypeID() uint8 {
	return ED25519ID
}

func (d *ED25519) Verify(digest []byte) error {
	if !ed25519.Verify(digest, d.Signer, d.Signature) {
		return crypto.ErrVerificationFailed
	}
	return nil
}

func (d *ED25519) Address() codec.Address {
	return d.address()
}

func (d *ED25519) Bytes() []byte {
	b := make([]byte, ED25519Size)
	b[0] = ED25519ID
	copy(b[1:], d.Signature[:])
	copy(b[1+ed25519.SignatureLen:], d.Signer[:])
	return b
}

func UnmarshalED25519(bytes []byte) (chain.Auth, error) {
	if len(bytes) != ED25519Size {
		return nil, fmt.Errorf("%w: ed25519 envelope size %d != %d", crypto.ErrInvalidSignatureLen, len(bytes), ED25519Size)
	}
	if bytes[0] != ED25519ID {
		return nil, fmt.Errorf("%w: unexpected ed25519 flag %d", ErrUnsupportedScheme, bytes[0])
	}
	var d ED25519
	copy(d.Signature[:], bytes[1:])
	copy(d.Signer[:], bytes[1+ed25519.SignatureLen:])
	return &d, nil
}

var _ chain.AuthFactory = (*ED25519Factory)(nil)

type ED25519Factory struct {
	priv ed25519.PrivateKey
}

func NewED25519Factory(priv ed25519.PrivateKey) *ED25519Factory {
	return &ED25519Factory{priv}
}

func (d *ED25519Factory) Sign(digest []byte) (chain.Auth, error) {
	sig := ed25519.Sign(digest, d.priv)
	return &ED25519{Signature: sig, Signer: d.priv.PublicKey()}, nil
}

func (d *ED25519Factory) Address() codec.Address {
	return NewED25519Address(d.priv.PublicKey())
}

func NewED25519Address(pk ed25519.PublicKey) codec.Address {
	return DeriveAddress(ED25519ID, pk[:])
}
