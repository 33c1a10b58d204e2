// Copyright (C) 2024, Suikit Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"fmt"

	"github.com/suikit/go-sui/codec"
)

// ObjectReference pins a versioned on-chain object. Execution fails upstream
// if the version or digest no longer matches the chain's view; this layer
// only preserves the fields exactly.
type ObjectReference struct {
	ID      codec.Address `json:"objectId"`
	Version uint64        `json:"version"`
	Digest  Digest        `json:"digest"`
}

func (o *ObjectReference) Marshal(p *codec.Packer) {
	p.PackAddress(o.ID)
	p.PackUint64(o.Version)
	o.Digest.Marshal(p)
}

func UnmarshalObjectReference(p *codec.Packer) ObjectReference {
	var o ObjectReference
	p.UnpackAddress(&o.ID)
	o.Version = p.UnpackUint64()
	o.Digest = UnmarshalDigest(p)
	return o
}

// ObjectArg discriminants. The tag values are part of the wire format.
const (
	immOrOwnedObjectTag uint8 = 0
	sharedObjectTag     uint8 = 1
	receivingObjectTag  uint8 = 2
)

// ObjectArg is the tagged variant describing how an object input is supplied:
// by exclusive reference (owned and immutable objects), as a shared object
// pinned to its initial shared version, or as a receiving object.
type ObjectArg struct {
	tag uint8

	// ImmOrOwnedObject (tag 0) and Receiving (tag 2)
	Ref ObjectReference

	// SharedObject (tag 1)
	ID                   codec.Address
	InitialSharedVersion uint64
	Mutable              bool
}

func ImmOrOwnedObject(ref ObjectReference) ObjectArg {
	return ObjectArg{tag: immOrOwnedObjectTag, Ref: ref}
}

func SharedObject(id codec.Address, initialSharedVersion uint64, mutable bool) ObjectArg {
	return ObjectArg{
		tag:                  sharedObjectTag,
		ID:                   id,
		InitialSharedVersion: initialSharedVersion,
		Mutable:              mutable,
	}
}

func ReceivingObject(ref ObjectReference) ObjectArg {
	return ObjectArg{tag: receivingObjectTag, Ref: ref}
}

func (o *ObjectArg) IsShared() bool {
	return o.tag == sharedObjectTag
}

func (o *ObjectArg) Marshal(p *codec.Packer) {
	p.PackByte(o.tag)
	switch o.tag {
	case immOrOwnedObjectTag, receivingObjectTag:
		o.Ref.Marshal(p)
	case sharedObjectTag:
		p.PackAddress(o.ID)
		p.PackUint64(o.InitialSharedVersion)
		p.PackBool(o.Mutable)
	}
}

func UnmarshalObjectArg(p *codec.Packer) (ObjectArg, error) {
	var o ObjectArg
	o.tag = p.UnpackByte()
	if p.Err() != nil {
		return o, p.Err()
	}
	switch o.tag {
	case immOrOwnedObjectTag, receivingObjectTag:
		o.Ref = UnmarshalObjectReference(p)
	case sharedObjectTag:
		p.UnpackAddress(&o.ID)
		o.InitialSharedVersion = p.UnpackUint64()
		o.Mutable = p.UnpackBool()
	default:
		return o, fmt.Errorf("%w: object arg tag %d", ErrInvalidVariant, o.tag)
	}
	return o, p.Err()
}
