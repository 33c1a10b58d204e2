// Copyright (C) 2024, Suikit Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"fmt"

	"github.com/suikit/go-sui/codec"
	"github.com/suikit/go-sui/consts"
)

// Command discriminants. The order is the wire contract; reordering would
// invalidate every signature over a programmable transaction.
const (
	moveCallTag        uint8 = 0
	transferObjectsTag uint8 = 1
	splitCoinsTag      uint8 = 2
	mergeCoinsTag      uint8 = 3
	publishTag         uint8 = 4
	makeMoveVecTag     uint8 = 5
	upgradeTag         uint8 = 6
)

const (
	maxCommandArgs = 512
	maxModules     = 64
	maxPackageDeps = 512
)

// MoveCall invokes an entry or public Move function.
type MoveCall struct {
	Package       codec.Address
	Module        string
	Function      string
	TypeArguments []TypeTag
	Arguments     []Argument
}

// TransferObjects sends n objects to a recipient address argument.
type TransferObjects struct {
	Objects []Argument
	Address Argument
}

// SplitCoins splits amounts off a coin into new coins.
type SplitCoins struct {
	Coin    Argument
	Amounts []Argument
}

// MergeCoins merges source coins into the destination coin.
type MergeCoins struct {
	Destination Argument
	Sources     []Argument
}

// Publish uploads compiled Move modules as a new package.
type Publish struct {
	Modules      [][]byte
	Dependencies []codec.Address
}

// MakeMoveVec builds a vector from n values of the same type. The element
// type is required only when it cannot be inferred (e.g. an empty vector).
type MakeMoveVec struct {
	Type     *TypeTag
	Elements []Argument
}

// Upgrade replaces the modules of an existing package, authorized by an
// upgrade ticket.
type Upgrade struct {
	Modules      [][]byte
	Dependencies []codec.Address
	Package      codec.Address
	Ticket       Argument
}

// Command is one step of a programmable transaction.
type Command struct {
	tag uint8

	MoveCall        *MoveCall
	TransferObjects *TransferObjects
	SplitCoins      *SplitCoins
	MergeCoins      *MergeCoins
	Publish         *Publish
	MakeMoveVec     *MakeMoveVec
	Upgrade         *Upgrade
}

func MoveCallCommand(c MoveCall) Command        { return Command{tag: moveCallTag, MoveCall: &c} }
func TransferObjectsCommand(c TransferObjects) Command {
	return Command{tag: transferObjectsTag, TransferObjects: &c}
}
func SplitCoinsCommand(c SplitCoins) Command { return Command{tag: splitCoinsTag, SplitCoins: &c} }
func MergeCoinsCommand(c MergeCoins) Command { return Command{tag: mergeCoinsTag, MergeCoins: &c} }
func PublishCommand(c Publish) Command       { return Command{tag: publishTag, Publish: &c} }
func MakeMoveVecCommand(c MakeMoveVec) Command {
	return Command{tag: makeMoveVecTag, MakeMoveVec: &c}
}
func UpgradeCommand(c Upgrade) Command { return Command{tag: upgradeTag, Upgrade: &c} }

// arguments returns every Argument the command references, for index
// validation.
func (c *Command) arguments() []Argument {
	switch c.tag {
	case moveCallTag:
		return c.MoveCall.Arguments
	case transferObjectsTag:
		return append(append([]Argument{}, c.TransferObjects.Objects...), c.TransferObjects.Address)
	case splitCoinsTag:
		return append([]Argument{c.SplitCoins.Coin}, c.SplitCoins.Amounts...)
	case mergeCoinsTag:
		return append([]Argument{c.MergeCoins.Destination}, c.MergeCoins.Sources...)
	case makeMoveVecTag:
		return c.MakeMoveVec.Elements
	case upgradeTag:
		return []Argument{c.Upgrade.Ticket}
	}
	return nil
}

// validate checks every argument index against the inputs and commands
// already declared.
func (c *Command) validate(numInputs int, numCommands int) error {
	for _, a := range c.arguments() {
		if err := a.validate(numInputs, numCommands); err != nil {
			return err
		}
	}
	return nil
}

func (c *Command) Marshal(p *codec.Packer) {
	p.PackByte(c.tag)
	switch c.tag {
	case moveCallTag:
		m := c.MoveCall
		p.PackAddress(m.Package)
		p.PackString(m.Module)
		p.PackString(m.Function)
		p.PackLen(len(m.TypeArguments))
		for _, t := range m.TypeArguments {
			t.Marshal(p)
		}
		p.PackLen(len(m.Arguments))
		for _, a := range m.Arguments {
			a.Marshal(p)
		}
	case transferObjectsTag:
		t := c.TransferObjects
		p.PackLen(len(t.Objects))
		for _, a := range t.Objects {
			a.Marshal(p)
		}
		t.Address.Marshal(p)
	case splitCoinsTag:
		s := c.SplitCoins
		s.Coin.Marshal(p)
		p.PackLen(len(s.Amounts))
		for _, a := range s.Amounts {
			a.Marshal(p)
		}
	case mergeCoinsTag:
		m := c.MergeCoins
		m.Destination.Marshal(p)
		p.PackLen(len(m.Sources))
		for _, a := range m.Sources {
			a.Marshal(p)
		}
	case publishTag:
		pub := c.Publish
		p.PackLen(len(pub.Modules))
		for _, m := range pub.Modules {
			p.PackBytes(m)
		}
		p.PackLen(len(pub.Dependencies))
		for _, d := range pub.Dependencies {
			p.PackAddress(d)
		}
	case makeMoveVecTag:
		v := c.MakeMoveVec
		p.PackOption(v.Type != nil)
		if v.Type != nil {
			v.Type.Marshal(p)
		}
		p.PackLen(len(v.Elements))
		for _, a := range v.Elements {
			a.Marshal(p)
		}
	case upgradeTag:
		u := c.Upgrade
		p.PackLen(len(u.Modules))
		for _, m := range u.Modules {
			p.PackBytes(m)
		}
		p.PackLen(len(u.Dependencies))
		for _, d := range u.Dependencies {
			p.PackAddress(d)
		}
		p.PackAddress(u.Package)
		u.Ticket.Marshal(p)
	}
}

func UnmarshalCommand(p *codec.Packer) (Command, error) {
	var c Command
	c.tag = p.UnpackByte()
	if p.Err() != nil {
		return c, p.Err()
	}
	switch c.tag {
	case moveCallTag:
		m := &MoveCall{}
		p.UnpackAddress(&m.Package)
		m.Module = p.UnpackString(maxIdentifierLen)
		m.Function = p.UnpackString(maxIdentifierLen)
		l := p.UnpackLen(maxTypeParams)
		for i := 0; i < l; i++ {
			t, err := UnmarshalTypeTag(p)
			if err != nil {
				return c, err
			}
			m.TypeArguments = append(m.TypeArguments, t)
		}
		if err := unmarshalArguments(p, &m.Arguments); err != nil {
			return c, err
		}
		c.MoveCall = m
	case transferObjectsTag:
		t := &TransferObjects{}
		if err := unmarshalArguments(p, &t.Objects); err != nil {
			return c, err
		}
		addr, err := UnmarshalArgument(p)
		if err != nil {
			return c, err
		}
		t.Address = addr
		c.TransferObjects = t
	case splitCoinsTag:
		s := &SplitCoins{}
		coin, err := UnmarshalArgument(p)
		if err != nil {
			return c, err
		}
		s.Coin = coin
		if err := unmarshalArguments(p, &s.Amounts); err != nil {
			return c, err
		}
		c.SplitCoins = s
	case mergeCoinsTag:
		m := &MergeCoins{}
		dest, err := UnmarshalArgument(p)
		if err != nil {
			return c, err
		}
		m.Destination = dest
		if err := unmarshalArguments(p, &m.Sources); err != nil {
			return c, err
		}
		c.MergeCoins = m
	case publishTag:
		pub := &Publish{}
		unmarshalModules(p, &pub.Modules)
		unmarshalDependencies(p, &pub.Dependencies)
		c.Publish = pub
	case makeMoveVecTag:
		v := &MakeMoveVec{}
		if p.UnpackOption() {
			t, err := UnmarshalTypeTag(p)
			if err != nil {
				return c, err
			}
			v.Type = &t
		}
		if err := unmarshalArguments(p, &v.Elements); err != nil {
			return c, err
		}
		c.MakeMoveVec = v
	case upgradeTag:
		u := &Upgrade{}
		unmarshalModules(p, &u.Modules)
		unmarshalDependencies(p, &u.Dependencies)
		p.UnpackAddress(&u.Package)
		ticket, err := UnmarshalArgument(p)
		if err != nil {
			return c, err
		}
		u.Ticket = ticket
		c.Upgrade = u
	default:
		return c, fmt.Errorf("%w: command tag %d", ErrInvalidVariant, c.tag)
	}
	return c, p.Err()
}

func unmarshalArguments(p *codec.Packer, dest *[]Argument) error {
	l := p.UnpackLen(maxCommandArgs)
	for i := 0; i < l; i++ {
		a, err := UnmarshalArgument(p)
		if err != nil {
			return err
		}
		*dest = append(*dest, a)
	}
	return p.Err()
}

func unmarshalModules(p *codec.Packer, dest *[][]byte) {
	l := p.UnpackLen(maxModules)
	for i := 0; i < l; i++ {
		*dest = append(*dest, p.UnpackBytes(consts.NetworkSizeLimit))
	}
}

func unmarshalDependencies(p *codec.Packer, dest *[]codec.Address) {
	l := p.UnpackLen(maxPackageDeps)
	for i := 0; i < l; i++ {
		var a codec.Address
		p.UnpackAddress(&a)
		*dest = append(*dest, a)
	}
}
