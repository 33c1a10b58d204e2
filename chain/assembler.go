// Copyright (C) 2024, Suikit Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"fmt"

	"github.com/suikit/go-sui/codec"
	"github.com/suikit/go-sui/intent"
)

type assemblerState uint8

const (
	stateBuilding assemblerState = iota
	stateEncoded
	stateEnveloped
	stateSigned
	stateFinalized
)

func (s assemblerState) String() string {
	switch s {
	case stateBuilding:
		return "building"
	case stateEncoded:
		return "encoded"
	case stateEnveloped:
		return "enveloped"
	case stateSigned:
		return "signed"
	case stateFinalized:
		return "finalized"
	}
	return "unknown"
}

// Assembler drives one transaction from construction to a submission-ready
// artifact: Building -> Encoded -> Enveloped -> Signed -> Finalized. Every
// transition is one-way and every out-of-order call fails with a typed error.
//
// An Assembler is single-owner: it is not safe for concurrent mutation.
// Callers building transactions in parallel create independent instances.
type Assembler struct {
	state assemblerState

	tx TransactionData

	encoded []byte
	digest  []byte
	sigs    []Auth
}

// NewAssembler returns an Assembler in the Building state. The gas owner
// defaults to [sender]; sponsored transactions override it with
// [Assembler.SetGasOwner].
func NewAssembler(sender codec.Address) *Assembler {
	return &Assembler{
		tx: TransactionData{
			Sender:     sender,
			Gas:        GasData{Owner: sender},
			Expiration: NoExpiration(),
		},
	}
}

func (a *Assembler) mutable() error {
	if a.state != stateBuilding {
		return fmt.Errorf("%w: state=%s", ErrTransactionAlreadyEncoded, a.state)
	}
	return nil
}

// Pure appends a pre-encoded input and returns the Argument referring to it.
func (a *Assembler) Pure(data []byte) (Argument, error) {
	if err := a.mutable(); err != nil {
		return Argument{}, err
	}
	a.tx.Kind.Inputs = append(a.tx.Kind.Inputs, PureInput(data))
	return InputArg(uint16(len(a.tx.Kind.Inputs) - 1)), nil
}

// Object appends an object input and returns the Argument referring to it.
func (a *Assembler) Object(arg ObjectArg) (Argument, error) {
	if err := a.mutable(); err != nil {
		return Argument{}, err
	}
	a.tx.Kind.Inputs = append(a.tx.Kind.Inputs, ObjectInput(arg))
	return InputArg(uint16(len(a.tx.Kind.Inputs) - 1)), nil
}

// appendCommand validates [cmd]'s argument indices against what has been
// declared so far, then appends it. Violations surface here, at build time,
// never at encode time.
func (a *Assembler) appendCommand(cmd Command) (Argument, error) {
	if err := a.mutable(); err != nil {
		return Argument{}, err
	}
	if len(a.tx.Kind.Commands) >= maxCommands {
		return Argument{}, fmt.Errorf("%w: %d commands", ErrInvalidTransactionStructure, maxCommands)
	}
	if err := cmd.validate(len(a.tx.Kind.Inputs), len(a.tx.Kind.Commands)); err != nil {
		return Argument{}, err
	}
	a.tx.Kind.Commands = append(a.tx.Kind.Commands, cmd)
	return ResultArg(uint16(len(a.tx.Kind.Commands) - 1)), nil
}

// MoveCall appends a Move function call and returns the Argument referring to
// its result.
func (a *Assembler) MoveCall(c MoveCall) (Argument, error) {
	return a.appendCommand(MoveCallCommand(c))
}

func (a *Assembler) TransferObjects(objects []Argument, recipient Argument) (Argument, error) {
	return a.appendCommand(TransferObjectsCommand(TransferObjects{Objects: objects, Address: recipient}))
}

func (a *Assembler) SplitCoins(coin Argument, amounts []Argument) (Argument, error) {
	return a.appendCommand(SplitCoinsCommand(SplitCoins{Coin: coin, Amounts: amounts}))
}

func (a *Assembler) MergeCoins(destination Argument, sources []Argument) (Argument, error) {
	return a.appendCommand(MergeCoinsCommand(MergeCoins{Destination: destination, Sources: sources}))
}

func (a *Assembler) Publish(modules [][]byte, dependencies []codec.Address) (Argument, error) {
	return a.appendCommand(PublishCommand(Publish{Modules: modules, Dependencies: dependencies}))
}

func (a *Assembler) MakeMoveVec(elemType *TypeTag, elements []Argument) (Argument, error) {
	return a.appendCommand(MakeMoveVecCommand(MakeMoveVec{Type: elemType, Elements: elements}))
}

func (a *Assembler) Upgrade(u Upgrade) (Argument, error) {
	return a.appendCommand(UpgradeCommand(u))
}

// SetSender replaces the sender. When the gas owner still tracks the old
// sender it moves too, preserving the non-sponsored default.
func (a *Assembler) SetSender(sender codec.Address) error {
	if err := a.mutable(); err != nil {
		return err
	}
	if a.tx.Gas.Owner == a.tx.Sender {
		a.tx.Gas.Owner = sender
	}
	a.tx.Sender = sender
	return nil
}

// SetGas sets the gas payment coins, price, and budget.
func (a *Assembler) SetGas(payment []ObjectReference, price uint64, budget uint64) error {
	if err := a.mutable(); err != nil {
		return err
	}
	a.tx.Gas.Payment = payment
	a.tx.Gas.Price = price
	a.tx.Gas.Budget = budget
	return nil
}

// SetGasOwner overrides the gas owner for sponsored transactions. The
// sponsor signs the same digest as the sender.
func (a *Assembler) SetGasOwner(owner codec.Address) error {
	if err := a.mutable(); err != nil {
		return err
	}
	a.tx.Gas.Owner = owner
	return nil
}

func (a *Assembler) SetExpiration(e TransactionExpiration) error {
	if err := a.mutable(); err != nil {
		return err
	}
	a.tx.Expiration = e
	return nil
}

// Encode validates the transaction and produces its canonical bytes. This is
// a one-way transition: no structural mutation is permitted afterwards.
func (a *Assembler) Encode() ([]byte, error) {
	if a.state != stateBuilding {
		return nil, fmt.Errorf("%w: state=%s", ErrTransactionAlreadyEncoded, a.state)
	}
	if a.tx.Sender == codec.EmptyAddress {
		return nil, ErrNoSender
	}
	b, err := a.tx.Bytes()
	if err != nil {
		return nil, err
	}
	a.encoded = b
	a.state = stateEncoded
	return b, nil
}

// Envelope wraps the encoded bytes in [it]'s domain-separation prefix and
// returns the 32 byte signing digest. The digest, not the raw transaction
// bytes, is what signers sign.
func (a *Assembler) Envelope(it intent.Intent) ([]byte, error) {
	if a.state != stateEncoded {
		return nil, fmt.Errorf("%w: state=%s", ErrTransactionNotEncoded, a.state)
	}
	a.digest = it.Digest(a.encoded)
	a.state = stateEnveloped
	return a.digest, nil
}

// Sign collects one signature envelope from [factory]. It may be called once
// per signer for multi-sig and sponsored transactions; envelope order is the
// call order and is preserved through Finalize.
func (a *Assembler) Sign(factory AuthFactory) error {
	if a.state != stateEnveloped && a.state != stateSigned {
		return fmt.Errorf("%w: state=%s", ErrTransactionNotEnveloped, a.state)
	}
	auth, err := factory.Sign(a.digest)
	if err != nil {
		return err
	}
	// Refuse a factory that produced an envelope this digest rejects: better
	// to fail here than to submit an unexecutable transaction.
	if err := auth.Verify(a.digest); err != nil {
		return err
	}
	a.sigs = append(a.sigs, auth)
	a.state = stateSigned
	return nil
}

// Finalize seals the assembler and returns the immutable artifact handed to
// the transport layer.
func (a *Assembler) Finalize() (*SignedTransaction, error) {
	if a.state == stateFinalized {
		return nil, ErrTransactionFinalized
	}
	if a.state != stateSigned || len(a.sigs) == 0 {
		return nil, fmt.Errorf("%w: state=%s", ErrNoSignatures, a.state)
	}
	a.state = stateFinalized
	digest, err := DigestFromBytes(a.digest)
	if err != nil {
		return nil, err
	}
	return &SignedTransaction{
		TransactionBytes: a.encoded,
		Signatures:       a.sigs,
		ID:               digest,
	}, nil
}

// SignedTransaction is the submission-ready artifact: canonical transaction
// bytes plus one scheme-tagged signature envelope per signer, in signing
// order.
type SignedTransaction struct {
	TransactionBytes []byte
	Signatures       []Auth

	// ID is the transaction digest (the signing digest of the intent
	// envelope), which nodes echo back on submission.
	ID Digest
}

// SignatureBytes returns the serialized envelopes, in order. This pair with
// TransactionBytes is the exact wire contract the transport layer submits.
func (s *SignedTransaction) SignatureBytes() [][]byte {
	out := make([][]byte, len(s.Signatures))
	for i, sig := range s.Signatures {
		out[i] = sig.Bytes()
	}
	return out
}
