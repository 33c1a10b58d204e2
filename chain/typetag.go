// Copyright (C) 2024, Suikit Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"fmt"
	"strings"

	"github.com/suikit/go-sui/codec"
)

// TypeTag discriminants. The numbering is historical: U16/U32/U256 were added
// after Struct, so they trail the older variants on the wire.
const (
	typeTagBool    uint8 = 0
	typeTagU8      uint8 = 1
	typeTagU64     uint8 = 2
	typeTagU128    uint8 = 3
	typeTagAddress uint8 = 4
	typeTagSigner  uint8 = 5
	typeTagVector  uint8 = 6
	typeTagStruct  uint8 = 7
	typeTagU16     uint8 = 8
	typeTagU32     uint8 = 9
	typeTagU256    uint8 = 10
)

const (
	maxIdentifierLen = 128
	maxTypeParams    = 16
	maxTypeTagDepth  = 16
)

// TypeTag names a Move type for generic substitution in a MoveCall.
type TypeTag struct {
	tag uint8

	// Vector element type (tag 6).
	Elem *TypeTag
	// Struct type (tag 7).
	Struct *StructTag
}

func BoolTypeTag() TypeTag    { return TypeTag{tag: typeTagBool} }
func U8TypeTag() TypeTag      { return TypeTag{tag: typeTagU8} }
func U16TypeTag() TypeTag     { return TypeTag{tag: typeTagU16} }
func U32TypeTag() TypeTag     { return TypeTag{tag: typeTagU32} }
func U64TypeTag() TypeTag     { return TypeTag{tag: typeTagU64} }
func U128TypeTag() TypeTag    { return TypeTag{tag: typeTagU128} }
func U256TypeTag() TypeTag    { return TypeTag{tag: typeTagU256} }
func AddressTypeTag() TypeTag { return TypeTag{tag: typeTagAddress} }
func SignerTypeTag() TypeTag  { return TypeTag{tag: typeTagSigner} }

func VectorTypeTag(elem TypeTag) TypeTag {
	return TypeTag{tag: typeTagVector, Elem: &elem}
}

func StructTypeTag(s StructTag) TypeTag {
	return TypeTag{tag: typeTagStruct, Struct: &s}
}

func (t TypeTag) Marshal(p *codec.Packer) {
	p.PackByte(t.tag)
	switch t.tag {
	case typeTagVector:
		t.Elem.Marshal(p)
	case typeTagStruct:
		t.Struct.Marshal(p)
	}
}

func UnmarshalTypeTag(p *codec.Packer) (TypeTag, error) {
	return unmarshalTypeTag(p, 0)
}

func unmarshalTypeTag(p *codec.Packer, depth int) (TypeTag, error) {
	var t TypeTag
	if depth > maxTypeTagDepth {
		return t, fmt.Errorf("%w: type tag nesting exceeds %d", ErrInvalidVariant, maxTypeTagDepth)
	}
	t.tag = p.UnpackByte()
	if p.Err() != nil {
		return t, p.Err()
	}
	switch t.tag {
	case typeTagBool, typeTagU8, typeTagU16, typeTagU32, typeTagU64,
		typeTagU128, typeTagU256, typeTagAddress, typeTagSigner:
	case typeTagVector:
		elem, err := unmarshalTypeTag(p, depth+1)
		if err != nil {
			return t, err
		}
		t.Elem = &elem
	case typeTagStruct:
		s, err := unmarshalStructTag(p, depth+1)
		if err != nil {
			return t, err
		}
		t.Struct = &s
	default:
		return t, fmt.Errorf("%w: type tag %d", ErrInvalidVariant, t.tag)
	}
	return t, p.Err()
}

// String renders the canonical Move type syntax, e.g. "vector<u8>" or
// "0x2::coin::Coin<0x2::sui::SUI>".
func (t TypeTag) String() string {
	switch t.tag {
	case typeTagBool:
		return "bool"
	case typeTagU8:
		return "u8"
	case typeTagU16:
		return "u16"
	case typeTagU32:
		return "u32"
	case typeTagU64:
		return "u64"
	case typeTagU128:
		return "u128"
	case typeTagU256:
		return "u256"
	case typeTagAddress:
		return "address"
	case typeTagSigner:
		return "signer"
	case typeTagVector:
		return "vector<" + t.Elem.String() + ">"
	case typeTagStruct:
		return t.Struct.String()
	}
	return fmt.Sprintf("unknown(%d)", t.tag)
}

// StructTag names a concrete Move struct type, e.g. 0x2::sui::SUI.
type StructTag struct {
	Address    codec.Address
	Module     string
	Name       string
	TypeParams []TypeTag
}

func (s *StructTag) Marshal(p *codec.Packer) {
	p.PackAddress(s.Address)
	p.PackString(s.Module)
	p.PackString(s.Name)
	p.PackLen(len(s.TypeParams))
	for _, tp := range s.TypeParams {
		tp.Marshal(p)
	}
}

func UnmarshalStructTag(p *codec.Packer) (StructTag, error) {
	return unmarshalStructTag(p, 0)
}

func unmarshalStructTag(p *codec.Packer, depth int) (StructTag, error) {
	var s StructTag
	p.UnpackAddress(&s.Address)
	s.Module = p.UnpackString(maxIdentifierLen)
	s.Name = p.UnpackString(maxIdentifierLen)
	l := p.UnpackLen(maxTypeParams)
	for i := 0; i < l; i++ {
		tp, err := unmarshalTypeTag(p, depth+1)
		if err != nil {
			return s, err
		}
		s.TypeParams = append(s.TypeParams, tp)
	}
	return s, p.Err()
}

// StructTagFromString parses "0xADDR::module::Name". Generic parameters are
// not parsed; callers needing them construct the StructTag directly.
func StructTagFromString(s string) (StructTag, error) {
	parts := strings.Split(s, "::")
	if len(parts) != 3 {
		return StructTag{}, fmt.Errorf("%w: ill-formed type %q", ErrInvalidVariant, s)
	}
	addr, err := codec.AddressFromHex(parts[0])
	if err != nil {
		return StructTag{}, err
	}
	return StructTag{Address: addr, Module: parts[1], Name: parts[2]}, nil
}

// String implements fmt.Stringer.
func (s StructTag) String() string {
	out := s.Address.String() + "::" + s.Module + "::" + s.Name
	if len(s.TypeParams) > 0 {
		params := make([]string, len(s.TypeParams))
		for i, tp := range s.TypeParams {
			params[i] = tp.String()
		}
		out += "<" + strings.Join(params, ", ") + ">"
	}
	return out
}
