// Copyright (C) 2024, Suikit Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"fmt"

	"github.com/suikit/go-sui/codec"
	"github.com/suikit/go-sui/consts"
)

// CallArg discriminants.
const (
	pureInputTag   uint8 = 0
	objectInputTag uint8 = 1
)

// CallArg is a transaction input: either pre-encoded canonical bytes (Pure)
// or an object reference. Pure payloads are supplied already encoded by the
// caller; this layer never infers Move types from Go values.
type CallArg struct {
	tag uint8

	Pure   []byte
	Object ObjectArg
}

func PureInput(data []byte) CallArg {
	return CallArg{tag: pureInputTag, Pure: data}
}

func ObjectInput(arg ObjectArg) CallArg {
	return CallArg{tag: objectInputTag, Object: arg}
}

func (c *CallArg) IsPure() bool {
	return c.tag == pureInputTag
}

func (c *CallArg) Marshal(p *codec.Packer) {
	p.PackByte(c.tag)
	switch c.tag {
	case pureInputTag:
		p.PackBytes(c.Pure)
	case objectInputTag:
		c.Object.Marshal(p)
	}
}

func UnmarshalCallArg(p *codec.Packer) (CallArg, error) {
	var c CallArg
	c.tag = p.UnpackByte()
	if p.Err() != nil {
		return c, p.Err()
	}
	switch c.tag {
	case pureInputTag:
		c.Pure = p.UnpackBytes(consts.NetworkSizeLimit)
	case objectInputTag:
		obj, err := UnmarshalObjectArg(p)
		if err != nil {
			return c, err
		}
		c.Object = obj
	default:
		return c, fmt.Errorf("%w: call arg tag %d", ErrInvalidVariant, c.tag)
	}
	return c, p.Err()
}
