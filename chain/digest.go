// Copyright (C) 2024, Suikit Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/suikit/go-sui/codec"
	"github.com/suikit/go-sui/consts"
)

// Digest is a 32 byte protocol digest. Transaction digests and object digests
// share this shape; the canonical text form is base58.
type Digest [consts.DigestLen]byte

var EmptyDigest = Digest{}

// DigestFromBytes returns a Digest copied from [b].
func DigestFromBytes(b []byte) (Digest, error) {
	if len(b) != consts.DigestLen {
		return EmptyDigest, fmt.Errorf("%w: digest must be %d bytes, got %d", codec.ErrInvalidSize, consts.DigestLen, len(b))
	}
	var d Digest
	copy(d[:], b)
	return d, nil
}

// DigestFromBase58 parses the base58 text form used by node RPC responses.
func DigestFromBase58(s string) (Digest, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return EmptyDigest, err
	}
	return DigestFromBytes(b)
}

// String implements fmt.Stringer.
func (d Digest) String() string {
	return base58.Encode(d[:])
}

// MarshalText returns the base58 representation of d.
func (d Digest) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText parses a base58-encoded digest.
func (d *Digest) UnmarshalText(input []byte) error {
	parsed, err := DigestFromBase58(string(input))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Marshal writes the digest as a length-prefixed byte sequence. Unlike
// addresses, digests carry their length on the wire: uleb(32) followed by the
// 32 bytes.
func (d Digest) Marshal(p *codec.Packer) {
	p.PackLen(consts.DigestLen)
	p.PackFixedBytes(d[:])
}

func UnmarshalDigest(p *codec.Packer) Digest {
	var d Digest
	p.UnpackLenExact(consts.DigestLen)
	p.UnpackFixedBytes(consts.DigestLen, d[:])
	return d
}
