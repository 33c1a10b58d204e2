// Copyright (C) 2024, Suikit Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/suikit/go-sui/codec"
	"github.com/suikit/go-sui/consts"
)

var (
	testSender  = codec.MustAddressFromHex("0xaa")
	testPackage = codec.MustAddressFromHex("0x2")
)

func testObjectReference(fill byte) ObjectReference {
	var d Digest
	for i := range d {
		d[i] = fill
	}
	return ObjectReference{
		ID:      codec.MustAddressFromHex("0x5"),
		Version: 7,
		Digest:  d,
	}
}

func testGasData() GasData {
	return GasData{
		Payment: []ObjectReference{testObjectReference(0x20)},
		Owner:   testSender,
		Price:   1000,
		Budget:  5_000_000,
	}
}

// richTransaction exercises every input, command, and argument variant.
func richTransaction() TransactionData {
	sharedArg := SharedObject(codec.MustAddressFromHex("0x6"), 3, true)
	return TransactionData{
		Kind: ProgrammableTransaction{
			Inputs: []CallArg{
				PureInput([]byte{0x2a, 0, 0, 0, 0, 0, 0, 0}),
				ObjectInput(ImmOrOwnedObject(testObjectReference(0x11))),
				ObjectInput(sharedArg),
				ObjectInput(ReceivingObject(testObjectReference(0x22))),
			},
			Commands: []Command{
				MoveCallCommand(MoveCall{
					Package:       testPackage,
					Module:        "coin",
					Function:      "value",
					TypeArguments: []TypeTag{VectorTypeTag(U8TypeTag())},
					Arguments:     []Argument{InputArg(1)},
				}),
				SplitCoinsCommand(SplitCoins{
					Coin:    GasCoin(),
					Amounts: []Argument{InputArg(0)},
				}),
				MergeCoinsCommand(MergeCoins{
					Destination: InputArg(2),
					Sources:     []Argument{NestedResultArg(1, 0)},
				}),
				TransferObjectsCommand(TransferObjects{
					Objects: []Argument{ResultArg(1), InputArg(3)},
					Address: InputArg(0),
				}),
				MakeMoveVecCommand(MakeMoveVec{
					Type:     typeTagPtr(U64TypeTag()),
					Elements: nil,
				}),
				PublishCommand(Publish{
					Modules:      [][]byte{{0xa1, 0x1c, 0xeb, 0x0b}},
					Dependencies: []codec.Address{testPackage},
				}),
				UpgradeCommand(Upgrade{
					Modules:      [][]byte{{0xa1, 0x1c, 0xeb, 0x0b}},
					Dependencies: []codec.Address{testPackage},
					Package:      testPackage,
					Ticket:       ResultArg(0),
				}),
			},
		},
		Sender:     testSender,
		Gas:        testGasData(),
		Expiration: ExpiresAtEpoch(42),
	}
}

func typeTagPtr(t TypeTag) *TypeTag { return &t }

func TestTransactionRoundTrip(t *testing.T) {
	require := require.New(t)
	tx := richTransaction()
	b, err := tx.Bytes()
	require.NoError(err)

	decoded, err := UnmarshalTransactionData(b)
	require.NoError(err)
	require.Equal(&tx, decoded, "decode(encode(tx)) != tx")

	// Re-encoding the decoded value must reproduce the bytes exactly.
	b2, err := decoded.Bytes()
	require.NoError(err)
	require.Equal(b, b2, "re-encoding is not canonical")
}

func TestTransactionLayoutPrefix(t *testing.T) {
	require := require.New(t)
	tx := richTransaction()
	b, err := tx.Bytes()
	require.NoError(err)
	require.Equal(byte(0), b[0], "transaction data version tag")
	require.Equal(byte(0), b[1], "programmable transaction kind tag")
	require.Equal(byte(4), b[2], "input count prefix")
}

func TestTransactionTrailingBytes(t *testing.T) {
	require := require.New(t)
	tx := richTransaction()
	b, err := tx.Bytes()
	require.NoError(err)

	_, err = UnmarshalTransactionData(append(b, 0x00))
	require.ErrorIs(err, codec.ErrTrailingBytes, "trailing byte accepted")
}

func TestTransactionTruncated(t *testing.T) {
	require := require.New(t)
	tx := richTransaction()
	b, err := tx.Bytes()
	require.NoError(err)

	_, err = UnmarshalTransactionData(b[:len(b)-1])
	require.ErrorIs(err, codec.ErrTruncatedInput)
}

func TestTransactionUnknownVersion(t *testing.T) {
	require := require.New(t)
	tx := richTransaction()
	b, err := tx.Bytes()
	require.NoError(err)

	bad := append([]byte{}, b...)
	bad[0] = 9
	_, err = UnmarshalTransactionData(bad)
	require.ErrorIs(err, ErrInvalidVariant, "unknown version tag accepted")

	bad = append([]byte{}, b...)
	bad[1] = 9
	_, err = UnmarshalTransactionData(bad)
	require.ErrorIs(err, ErrInvalidVariant, "unknown kind tag accepted")
}

func TestTransactionInputIndexOutOfRange(t *testing.T) {
	require := require.New(t)
	tx := TransactionData{
		Kind: ProgrammableTransaction{
			Inputs: []CallArg{PureInput([]byte{1})},
			Commands: []Command{
				SplitCoinsCommand(SplitCoins{
					Coin:    GasCoin(),
					Amounts: []Argument{InputArg(5)},
				}),
			},
		},
		Sender:     testSender,
		Gas:        testGasData(),
		Expiration: NoExpiration(),
	}
	_, err := tx.Bytes()
	require.ErrorIs(err, ErrInvalidTransactionStructure, "out-of-range input index encoded")
}

func TestTransactionForwardResultReference(t *testing.T) {
	require := require.New(t)
	// The first command refers to its own result slot.
	tx := TransactionData{
		Kind: ProgrammableTransaction{
			Commands: []Command{
				MergeCoinsCommand(MergeCoins{
					Destination: GasCoin(),
					Sources:     []Argument{ResultArg(0)},
				}),
			},
		},
		Sender:     testSender,
		Gas:        testGasData(),
		Expiration: NoExpiration(),
	}
	_, err := tx.Bytes()
	require.ErrorIs(err, ErrInvalidTransactionStructure, "forward result reference encoded")
}

func TestTransactionGasInvariants(t *testing.T) {
	require := require.New(t)
	tx := richTransaction()

	tx.Gas.Payment = nil
	_, err := tx.Bytes()
	require.ErrorIs(err, ErrInvalidTransactionStructure, "empty gas payment encoded")

	tx.Gas = testGasData()
	tx.Gas.Budget = 0
	_, err = tx.Bytes()
	require.ErrorIs(err, ErrInvalidTransactionStructure, "zero gas budget encoded")
}

// TestObjectReferenceLayout pins the wire form of an object reference:
// address raw, version little-endian, digest with its uleb length prefix.
func TestObjectReferenceLayout(t *testing.T) {
	require := require.New(t)
	ref := ObjectReference{
		ID:      codec.MustAddressFromHex("0x5"),
		Version: 7,
	}
	for i := range ref.Digest {
		ref.Digest[i] = 0xaa
	}

	p := codec.NewWriter(0, consts.NetworkSizeLimit)
	ref.Marshal(p)
	require.NoError(p.Err())
	require.Len(p.Bytes(), codec.AddressLen+consts.Uint64Len+1+consts.DigestLen)
	require.Equal(byte(0x20), p.Bytes()[40], "missing digest length prefix")
	require.Equal(byte(0xaa), p.Bytes()[41])

	r := codec.NewReader(p.Bytes(), consts.NetworkSizeLimit)
	out := UnmarshalObjectReference(r)
	r.Done()
	require.NoError(r.Err())
	require.Equal(ref, out)
}

func TestCallArgUnknownTag(t *testing.T) {
	require := require.New(t)
	r := codec.NewReader([]byte{0x07}, consts.NetworkSizeLimit)
	_, err := UnmarshalCallArg(r)
	require.ErrorIs(err, ErrInvalidVariant)
}

func TestObjectArgUnknownTag(t *testing.T) {
	require := require.New(t)
	r := codec.NewReader([]byte{0x07}, consts.NetworkSizeLimit)
	_, err := UnmarshalObjectArg(r)
	require.ErrorIs(err, ErrInvalidVariant)
}

func TestArgumentUnknownTag(t *testing.T) {
	require := require.New(t)
	r := codec.NewReader([]byte{0x07}, consts.NetworkSizeLimit)
	_, err := UnmarshalArgument(r)
	require.ErrorIs(err, ErrInvalidVariant)
}

func TestCommandUnknownTag(t *testing.T) {
	require := require.New(t)
	r := codec.NewReader([]byte{0x0a}, consts.NetworkSizeLimit)
	_, err := UnmarshalCommand(r)
	require.ErrorIs(err, ErrInvalidVariant)
}

func TestArgumentEncoding(t *testing.T) {
	require := require.New(t)
	cases := []struct {
		arg     Argument
		encoded []byte
	}{
		{GasCoin(), []byte{0x00}},
		{InputArg(0x0102), []byte{0x01, 0x02, 0x01}},
		{ResultArg(3), []byte{0x02, 0x03, 0x00}},
		{NestedResultArg(1, 2), []byte{0x03, 0x01, 0x00, 0x02, 0x00}},
	}
	for _, tc := range cases {
		p := codec.NewWriter(0, consts.NetworkSizeLimit)
		tc.arg.Marshal(p)
		require.NoError(p.Err())
		require.Equal(tc.encoded, p.Bytes())

		r := codec.NewReader(tc.encoded, consts.NetworkSizeLimit)
		out, err := UnmarshalArgument(r)
		require.NoError(err)
		r.Done()
		require.NoError(r.Err())
		require.Equal(tc.arg, out)
	}
}

func TestExpirationRoundTrip(t *testing.T) {
	require := require.New(t)
	for _, e := range []TransactionExpiration{NoExpiration(), ExpiresAtEpoch(99)} {
		p := codec.NewWriter(0, consts.NetworkSizeLimit)
		e.Marshal(p)
		require.NoError(p.Err())

		r := codec.NewReader(p.Bytes(), consts.NetworkSizeLimit)
		out, err := UnmarshalTransactionExpiration(r)
		require.NoError(err)
		r.Done()
		require.NoError(r.Err())
		require.Equal(e, out)
	}
}
