// Copyright (C) 2024, Suikit Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"fmt"

	"github.com/suikit/go-sui/codec"
	"github.com/suikit/go-sui/consts"
)

const (
	maxInputs     = int(consts.MaxUint16)
	maxCommands   = int(consts.MaxUint16)
	maxGasPayment = 256

	// TransactionKind discriminants. Only programmable transactions are
	// constructed client side; the system kinds are reserved.
	programmableTransactionTag uint8 = 0

	// TransactionData version discriminants.
	transactionDataV1Tag uint8 = 0

	// TransactionExpiration discriminants.
	expirationNoneTag  uint8 = 0
	expirationEpochTag uint8 = 1
)

// ProgrammableTransaction is an ordered input table plus an ordered command
// list. Commands refer to inputs and to earlier commands' results by index.
type ProgrammableTransaction struct {
	Inputs   []CallArg
	Commands []Command
}

// Validate enforces the structural invariants: every Argument in every
// command refers only to inputs, or commands declared before it. Encoding is
// refused (no bytes emitted) if any check fails.
func (pt *ProgrammableTransaction) Validate() error {
	if len(pt.Inputs) > maxInputs {
		return fmt.Errorf("%w: %d inputs > %d", ErrInvalidTransactionStructure, len(pt.Inputs), maxInputs)
	}
	if len(pt.Commands) > maxCommands {
		return fmt.Errorf("%w: %d commands > %d", ErrInvalidTransactionStructure, len(pt.Commands), maxCommands)
	}
	for i := range pt.Commands {
		// A command may only look backwards: the command at index i sees
		// every input but only the i commands before it.
		if err := pt.Commands[i].validate(len(pt.Inputs), i); err != nil {
			return err
		}
	}
	return nil
}

func (pt *ProgrammableTransaction) Marshal(p *codec.Packer) {
	p.PackLen(len(pt.Inputs))
	for i := range pt.Inputs {
		pt.Inputs[i].Marshal(p)
	}
	p.PackLen(len(pt.Commands))
	for i := range pt.Commands {
		pt.Commands[i].Marshal(p)
	}
}

func UnmarshalProgrammableTransaction(p *codec.Packer) (ProgrammableTransaction, error) {
	var pt ProgrammableTransaction
	l := p.UnpackLen(maxInputs)
	for i := 0; i < l; i++ {
		in, err := UnmarshalCallArg(p)
		if err != nil {
			return pt, err
		}
		pt.Inputs = append(pt.Inputs, in)
	}
	l = p.UnpackLen(maxCommands)
	for i := 0; i < l; i++ {
		c, err := UnmarshalCommand(p)
		if err != nil {
			return pt, err
		}
		pt.Commands = append(pt.Commands, c)
	}
	return pt, p.Err()
}

// GasData names the coins that pay for execution.
type GasData struct {
	Payment []ObjectReference
	Owner   codec.Address
	Price   uint64
	Budget  uint64
}

func (g *GasData) validate() error {
	if len(g.Payment) == 0 {
		return fmt.Errorf("%w: empty gas payment", ErrInvalidTransactionStructure)
	}
	if len(g.Payment) > maxGasPayment {
		return fmt.Errorf("%w: %d gas coins > %d", ErrInvalidTransactionStructure, len(g.Payment), maxGasPayment)
	}
	if g.Budget == 0 {
		return fmt.Errorf("%w: zero gas budget", ErrInvalidTransactionStructure)
	}
	return nil
}

func (g *GasData) Marshal(p *codec.Packer) {
	p.PackLen(len(g.Payment))
	for i := range g.Payment {
		g.Payment[i].Marshal(p)
	}
	p.PackAddress(g.Owner)
	p.PackUint64(g.Price)
	p.PackUint64(g.Budget)
}

func UnmarshalGasData(p *codec.Packer) GasData {
	var g GasData
	l := p.UnpackLen(maxGasPayment)
	for i := 0; i < l; i++ {
		g.Payment = append(g.Payment, UnmarshalObjectReference(p))
	}
	p.UnpackAddress(&g.Owner)
	g.Price = p.UnpackUint64()
	g.Budget = p.UnpackUint64()
	return g
}

// TransactionExpiration bounds the epoch in which a transaction may execute.
type TransactionExpiration struct {
	tag   uint8
	Epoch uint64
}

func NoExpiration() TransactionExpiration {
	return TransactionExpiration{tag: expirationNoneTag}
}

func ExpiresAtEpoch(epoch uint64) TransactionExpiration {
	return TransactionExpiration{tag: expirationEpochTag, Epoch: epoch}
}

func (e TransactionExpiration) Marshal(p *codec.Packer) {
	p.PackByte(e.tag)
	if e.tag == expirationEpochTag {
		p.PackUint64(e.Epoch)
	}
}

func UnmarshalTransactionExpiration(p *codec.Packer) (TransactionExpiration, error) {
	var e TransactionExpiration
	e.tag = p.UnpackByte()
	if p.Err() != nil {
		return e, p.Err()
	}
	switch e.tag {
	case expirationNoneTag:
	case expirationEpochTag:
		e.Epoch = p.UnpackUint64()
	default:
		return e, fmt.Errorf("%w: expiration tag %d", ErrInvalidVariant, e.tag)
	}
	return e, p.Err()
}

// TransactionData is the signable transaction payload (version 1). The
// canonical encoding of this value, wrapped in an intent envelope, is what a
// signature covers.
type TransactionData struct {
	Kind       ProgrammableTransaction
	Sender     codec.Address
	Gas        GasData
	Expiration TransactionExpiration
}

// Validate enforces every local structural invariant. It never touches the
// network: object existence and version checks belong to the chain.
func (t *TransactionData) Validate() error {
	if err := t.Kind.Validate(); err != nil {
		return err
	}
	return t.Gas.validate()
}

func (t *TransactionData) Marshal(p *codec.Packer) {
	p.PackByte(transactionDataV1Tag)
	p.PackByte(programmableTransactionTag)
	t.Kind.Marshal(p)
	p.PackAddress(t.Sender)
	t.Gas.Marshal(p)
	t.Expiration.Marshal(p)
}

// Bytes validates the transaction and returns its canonical encoding.
// Validation runs first so a structural violation never yields a partially
// encoded buffer.
func (t *TransactionData) Bytes() ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	p := codec.NewWriter(consts.DigestLen*4, consts.NetworkSizeLimit)
	t.Marshal(p)
	if err := p.Err(); err != nil {
		return nil, err
	}
	return p.Bytes(), nil
}

// UnmarshalTransactionData decodes canonical bytes, asserting full
// consumption. It is the strict inverse of [TransactionData.Bytes] and is
// used for round-trip verification and for decoding node responses that echo
// transaction bytes.
func UnmarshalTransactionData(b []byte) (*TransactionData, error) {
	p := codec.NewReader(b, consts.NetworkSizeLimit)
	var t TransactionData
	if v := p.UnpackByte(); p.Err() == nil && v != transactionDataV1Tag {
		return nil, fmt.Errorf("%w: transaction data version %d", ErrInvalidVariant, v)
	}
	if k := p.UnpackByte(); p.Err() == nil && k != programmableTransactionTag {
		return nil, fmt.Errorf("%w: transaction kind %d", ErrInvalidVariant, k)
	}
	kind, err := UnmarshalProgrammableTransaction(p)
	if err != nil {
		return nil, err
	}
	t.Kind = kind
	p.UnpackAddress(&t.Sender)
	t.Gas = UnmarshalGasData(p)
	exp, err := UnmarshalTransactionExpiration(p)
	if err != nil {
		return nil, err
	}
	t.Expiration = exp
	p.Done()
	if err := p.Err(); err != nil {
		return nil, err
	}
	return &t, nil
}
