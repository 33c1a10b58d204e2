// Copyright (C) 2024, Suikit Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"fmt"

	"github.com/suikit/go-sui/codec"
)

// Argument discriminants.
const (
	gasCoinArgTag      uint8 = 0
	inputArgTag        uint8 = 1
	resultArgTag       uint8 = 2
	nestedResultArgTag uint8 = 3
)

// Argument is how a command refers to a value: the gas coin, a declared
// input, the result of an earlier command, or one element of an earlier
// command's result tuple. Indices only ever point backwards; the assembler
// rejects forward references at append time.
type Argument struct {
	tag uint8

	Index uint16
	// Sub selects an element of a result tuple (NestedResult only).
	Sub uint16
}

// GasCoin refers to the transaction's gas coin. It carries no payload.
func GasCoin() Argument {
	return Argument{tag: gasCoinArgTag}
}

// InputArg refers to the input at [index].
func InputArg(index uint16) Argument {
	return Argument{tag: inputArgTag, Index: index}
}

// ResultArg refers to the full result of the command at [index].
func ResultArg(index uint16) Argument {
	return Argument{tag: resultArgTag, Index: index}
}

// NestedResultArg refers to element [sub] of the result of command [index].
func NestedResultArg(index uint16, sub uint16) Argument {
	return Argument{tag: nestedResultArgTag, Index: index, Sub: sub}
}

func (a Argument) IsInput() bool {
	return a.tag == inputArgTag
}

func (a Argument) IsResult() bool {
	return a.tag == resultArgTag || a.tag == nestedResultArgTag
}

func (a Argument) Marshal(p *codec.Packer) {
	p.PackByte(a.tag)
	switch a.tag {
	case inputArgTag, resultArgTag:
		p.PackUint16(a.Index)
	case nestedResultArgTag:
		p.PackUint16(a.Index)
		p.PackUint16(a.Sub)
	}
}

func UnmarshalArgument(p *codec.Packer) (Argument, error) {
	var a Argument
	a.tag = p.UnpackByte()
	if p.Err() != nil {
		return a, p.Err()
	}
	switch a.tag {
	case gasCoinArgTag:
	case inputArgTag, resultArgTag:
		a.Index = p.UnpackUint16()
	case nestedResultArgTag:
		a.Index = p.UnpackUint16()
		a.Sub = p.UnpackUint16()
	default:
		return a, fmt.Errorf("%w: argument tag %d", ErrInvalidVariant, a.tag)
	}
	return a, p.Err()
}

// validate checks that a refers only to inputs and commands declared before
// the point of use.
func (a Argument) validate(numInputs int, numCommands int) error {
	switch a.tag {
	case inputArgTag:
		if int(a.Index) >= numInputs {
			return fmt.Errorf("%w: input index %d >= %d inputs", ErrInvalidTransactionStructure, a.Index, numInputs)
		}
	case resultArgTag, nestedResultArgTag:
		if int(a.Index) >= numCommands {
			return fmt.Errorf("%w: result index %d >= %d commands", ErrInvalidTransactionStructure, a.Index, numCommands)
		}
	}
	return nil
}
