// Copyright (C) 2024, Suikit Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"encoding/hex"
	"fmt"
)

const AddressLen = 32

// Address is the 32 byte account identifier used by the ledger. Object IDs
// and package IDs share the same shape.
type Address [AddressLen]byte

var EmptyAddress = Address{}

// AddressFromBytes returns an Address copied from [b]. The length must be
// exactly [AddressLen]; addresses are never padded or truncated.
func AddressFromBytes(b []byte) (Address, error) {
	if len(b) != AddressLen {
		return EmptyAddress, fmt.Errorf("%w: address must be %d bytes, got %d", ErrInvalidSize, AddressLen, len(b))
	}
	var a Address
	copy(a[:], b)
	return a, nil
}

// AddressFromHex parses a hex address with an optional "0x" prefix. Short
// inputs are left-padded to [AddressLen], matching the ledger's display
// convention for well-known addresses like 0x2.
func AddressFromHex(s string) (Address, error) {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return EmptyAddress, err
	}
	if len(b) > AddressLen {
		return EmptyAddress, fmt.Errorf("%w: address must be %d bytes, got %d", ErrInvalidSize, AddressLen, len(b))
	}
	var a Address
	copy(a[AddressLen-len(b):], b)
	return a, nil
}

// MustAddressFromHex is AddressFromHex for package-level fixtures and tests.
func MustAddressFromHex(s string) Address {
	a, err := AddressFromHex(s)
	if err != nil {
		panic(err)
	}
	return a
}

// String implements fmt.Stringer.
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// MarshalText returns the 0x-prefixed hex representation of a.
func (a Address) MarshalText() ([]byte, error) {
	result := make([]byte, len(a)*2+2)
	copy(result, `0x`)
	hex.Encode(result[2:], a[:])
	return result, nil
}

// UnmarshalText parses a hex-encoded address.
func (a *Address) UnmarshalText(input []byte) error {
	parsed, err := AddressFromHex(string(input))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// PackAddress writes [a] as raw fixed-width bytes.
func (p *Packer) PackAddress(a Address) {
	p.PackFixedBytes(a[:])
}

// UnpackAddress reads an Address into [dest].
func (p *Packer) UnpackAddress(dest *Address) {
	p.UnpackFixedBytes(AddressLen, dest[:])
}
