// Copyright (C) 2024, Suikit Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/suikit/go-sui/consts"
)

// Packer reads and writes the canonical binary format the ledger's virtual
// machine expects: little-endian fixed-width integers, minimal ULEB128 length
// prefixes, single-byte enum discriminants, no padding.
//
// The first error encountered is sticky. Once set, every subsequent Pack is a
// no-op and every Unpack returns the zero value, so callers only need to check
// [Packer.Err] once after a batch of operations. This makes marshalling code
// linear instead of error-checking every field (and guarantees no partially
// usable value escapes a failed decode).
type Packer struct {
	b       []byte
	offset  int
	maxSize int
	err     error
}

// NewWriter returns a Packer with an initial capacity of [initial] that will
// refuse to grow past [maxSize].
func NewWriter(initial int, maxSize int) *Packer {
	return &Packer{
		b:       make([]byte, 0, initial),
		maxSize: maxSize,
	}
}

// NewReader returns a Packer that decodes [src]. At most [maxSize] bytes of
// [src] are considered; a longer input fails immediately rather than being
// silently truncated.
func NewReader(src []byte, maxSize int) *Packer {
	p := &Packer{b: src, maxSize: maxSize}
	if len(src) > maxSize {
		p.addErr(fmt.Errorf("%w: %d > %d", ErrWriteLimit, len(src), maxSize))
	}
	return p
}

func (p *Packer) addErr(err error) {
	if p.err != nil {
		return
	}
	p.err = err
}

func (p *Packer) grow(n int) bool {
	if p.err != nil {
		return false
	}
	if len(p.b)+n > p.maxSize {
		p.addErr(fmt.Errorf("%w: %d + %d > %d", ErrWriteLimit, len(p.b), n, p.maxSize))
		return false
	}
	return true
}

// take returns the next [n] bytes of the input and advances the offset. It
// fails with ErrTruncatedInput (annotated with the offset and the shortfall)
// if fewer than [n] bytes remain.
func (p *Packer) take(n int) []byte {
	if p.err != nil {
		return nil
	}
	if p.offset+n > len(p.b) {
		p.addErr(fmt.Errorf(
			"%w: offset=%d need=%d have=%d",
			ErrTruncatedInput, p.offset, n, len(p.b)-p.offset,
		))
		return nil
	}
	out := p.b[p.offset : p.offset+n]
	p.offset += n
	return out
}

func (p *Packer) PackByte(b byte) {
	if !p.grow(consts.ByteLen) {
		return
	}
	p.b = append(p.b, b)
}

func (p *Packer) UnpackByte() byte {
	b := p.take(consts.ByteLen)
	if b == nil {
		return 0
	}
	return b[0]
}

// PackBool writes a canonical bool (0x00 or 0x01).
func (p *Packer) PackBool(b bool) {
	if b {
		p.PackByte(1)
	} else {
		p.PackByte(0)
	}
}

// UnpackBool rejects any byte other than 0x00 or 0x01. Accepting other values
// would allow two distinct encodings of the same transaction.
func (p *Packer) UnpackBool() bool {
	b := p.UnpackByte()
	if p.err != nil {
		return false
	}
	if b > 1 {
		p.addErr(fmt.Errorf("%w: 0x%02x at offset %d", ErrInvalidBool, b, p.offset-1))
		return false
	}
	return b == 1
}

func (p *Packer) PackUint16(v uint16) {
	if !p.grow(consts.Uint16Len) {
		return
	}
	p.b = binary.LittleEndian.AppendUint16(p.b, v)
}

func (p *Packer) UnpackUint16() uint16 {
	b := p.take(consts.Uint16Len)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

func (p *Packer) PackUint32(v uint32) {
	if !p.grow(consts.Uint32Len) {
		return
	}
	p.b = binary.LittleEndian.AppendUint32(p.b, v)
}

func (p *Packer) UnpackUint32() uint32 {
	b := p.take(consts.Uint32Len)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (p *Packer) PackUint64(v uint64) {
	if !p.grow(consts.Uint64Len) {
		return
	}
	p.b = binary.LittleEndian.AppendUint64(p.b, v)
}

func (p *Packer) UnpackUint64() uint64 {
	b := p.take(consts.Uint64Len)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

// Uint128 is an unsigned 128-bit integer, stored as two 64-bit limbs.
type Uint128 struct {
	Lo uint64
	Hi uint64
}

// PackUint128 writes [v] as 16 little-endian bytes (low limb first).
func (p *Packer) PackUint128(v Uint128) {
	p.PackUint64(v.Lo)
	p.PackUint64(v.Hi)
}

func (p *Packer) UnpackUint128() Uint128 {
	var v Uint128
	v.Lo = p.UnpackUint64()
	v.Hi = p.UnpackUint64()
	return v
}

// PackUleb128 writes [v] as a minimal unsigned LEB128 varint: 7 bits per
// byte, high bit set on every byte except the last.
func (p *Packer) PackUleb128(v uint64) {
	for v >= 0x80 {
		p.PackByte(byte(v) | 0x80)
		v >>= 7
	}
	p.PackByte(byte(v))
}

// UnpackUleb128 decodes a ULEB128 varint. Non-minimal encodings (a final byte
// of zero after a continuation, or bits beyond 64) fail with
// ErrMalformedVarint: a non-canonical length prefix would let the same value
// have two byte representations, which is a signature-forgery vector.
func (p *Packer) UnpackUleb128() uint64 {
	var (
		value uint64
		shift uint
	)
	start := p.offset
	for {
		b := p.UnpackByte()
		if p.err != nil {
			return 0
		}
		if shift == 63 && b > 1 {
			p.addErr(fmt.Errorf("%w: overflow at offset %d", ErrMalformedVarint, start))
			return 0
		}
		if b == 0 && shift != 0 {
			p.addErr(fmt.Errorf("%w: non-minimal encoding at offset %d", ErrMalformedVarint, start))
			return 0
		}
		value |= uint64(b&0x7f) << shift
		if b < 0x80 {
			return value
		}
		shift += 7
		if shift > 63 {
			p.addErr(fmt.Errorf("%w: too long at offset %d", ErrMalformedVarint, start))
			return 0
		}
	}
}

// PackLen writes a sequence length prefix.
func (p *Packer) PackLen(l int) {
	if l < 0 {
		p.addErr(fmt.Errorf("%w: negative length %d", ErrInvalidSize, l))
		return
	}
	p.PackUleb128(uint64(l))
}

// UnpackLen reads a sequence length prefix and bounds it by [limit] so a
// hostile length prefix cannot trigger a huge allocation.
func (p *Packer) UnpackLen(limit int) int {
	v := p.UnpackUleb128()
	if p.err != nil {
		return 0
	}
	if v > uint64(limit) {
		p.addErr(fmt.Errorf("%w: %d > %d at offset %d", ErrTooManyItems, v, limit, p.offset))
		return 0
	}
	return int(v)
}

// UnpackLenExact reads a sequence length prefix and requires it to equal [n].
// Used for fields whose element count is fixed by the wire contract but still
// carried on the wire.
func (p *Packer) UnpackLenExact(n int) {
	l := p.UnpackLen(n)
	if p.err != nil {
		return
	}
	if l != n {
		p.addErr(fmt.Errorf("%w: length %d != %d at offset %d", ErrInvalidSize, l, n, p.offset))
	}
}

// PackBytes writes a ULEB128 length prefix followed by [b].
func (p *Packer) PackBytes(b []byte) {
	p.PackLen(len(b))
	p.PackFixedBytes(b)
}

// UnpackBytes reads a length-prefixed byte sequence of at most [limit] bytes.
// The returned slice is a copy; it does not alias the Packer's buffer.
func (p *Packer) UnpackBytes(limit int) []byte {
	l := p.UnpackLen(limit)
	if p.err != nil {
		return nil
	}
	b := p.take(l)
	if b == nil {
		return nil
	}
	out := make([]byte, l)
	copy(out, b)
	return out
}

// PackString writes a ULEB128 length prefix followed by the UTF-8 bytes of [s].
func (p *Packer) PackString(s string) {
	p.PackLen(len(s))
	if !p.grow(len(s)) {
		return
	}
	p.b = append(p.b, s...)
}

func (p *Packer) UnpackString(limit int) string {
	return string(p.UnpackBytes(limit))
}

// PackFixedBytes writes [b] with no length prefix. Used for fixed-width
// fields (addresses, digests) whose size is part of the wire contract.
func (p *Packer) PackFixedBytes(b []byte) {
	if !p.grow(len(b)) {
		return
	}
	p.b = append(p.b, b...)
}

// UnpackFixedBytes reads exactly [n] bytes into [dest].
func (p *Packer) UnpackFixedBytes(n int, dest []byte) {
	b := p.take(n)
	if b == nil {
		return
	}
	copy(dest, b)
}

// PackOption writes the option tag for [present]. The caller packs the value
// itself when present.
func (p *Packer) PackOption(present bool) {
	p.PackBool(present)
}

// UnpackOption reads an option tag. The caller unpacks the value when the
// returned bool is true.
func (p *Packer) UnpackOption() bool {
	return p.UnpackBool()
}

// Empty reports whether all input has been consumed.
func (p *Packer) Empty() bool {
	return p.offset == len(p.b)
}

// Done asserts full consumption of the input. Unconsumed bytes fail with
// ErrTrailingBytes: a decoder that accepts garbage after a valid prefix will
// disagree with one that rejects it.
func (p *Packer) Done() {
	if p.err != nil || p.Empty() {
		return
	}
	p.addErr(fmt.Errorf(
		"%w: %d bytes remain at offset %d",
		ErrTrailingBytes, len(p.b)-p.offset, p.offset,
	))
}

// Offset returns the current read position.
func (p *Packer) Offset() int {
	return p.offset
}

// Bytes returns the written buffer. Only meaningful on a writer with no error.
func (p *Packer) Bytes() []byte {
	return p.b
}

func (p *Packer) Err() error {
	return p.err
}
