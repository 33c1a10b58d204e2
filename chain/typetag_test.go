// Copyright (C) 2024, Suikit Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/suikit/go-sui/codec"
	"github.com/suikit/go-sui/consts"
)

func TestTypeTagDiscriminants(t *testing.T) {
	require := require.New(t)
	cases := []struct {
		tag     TypeTag
		encoded byte
	}{
		{BoolTypeTag(), 0},
		{U8TypeTag(), 1},
		{U64TypeTag(), 2},
		{U128TypeTag(), 3},
		{AddressTypeTag(), 4},
		{SignerTypeTag(), 5},
		{U16TypeTag(), 8},
		{U32TypeTag(), 9},
		{U256TypeTag(), 10},
	}
	for _, tc := range cases {
		p := codec.NewWriter(0, consts.NetworkSizeLimit)
		tc.tag.Marshal(p)
		require.NoError(p.Err())
		require.Equal([]byte{tc.encoded}, p.Bytes(), "wrong discriminant for %s", tc.tag)
	}
}

func TestTypeTagRoundTrip(t *testing.T) {
	require := require.New(t)
	sui, err := StructTagFromString("0x2::sui::SUI")
	require.NoError(err)

	tags := []TypeTag{
		U64TypeTag(),
		VectorTypeTag(U8TypeTag()),
		VectorTypeTag(VectorTypeTag(AddressTypeTag())),
		StructTypeTag(sui),
		StructTypeTag(StructTag{
			Address:    codec.MustAddressFromHex("0x2"),
			Module:     "coin",
			Name:       "Coin",
			TypeParams: []TypeTag{StructTypeTag(sui)},
		}),
	}
	for _, tag := range tags {
		p := codec.NewWriter(0, consts.NetworkSizeLimit)
		tag.Marshal(p)
		require.NoError(p.Err())

		r := codec.NewReader(p.Bytes(), consts.NetworkSizeLimit)
		out, err := UnmarshalTypeTag(r)
		require.NoError(err)
		r.Done()
		require.NoError(r.Err())
		require.Equal(tag, out, "round trip failed for %s", tag)
	}
}

func TestTypeTagString(t *testing.T) {
	require := require.New(t)
	require.Equal("vector<u8>", VectorTypeTag(U8TypeTag()).String())

	sui, err := StructTagFromString("0x2::sui::SUI")
	require.NoError(err)
	coin := StructTag{
		Address:    codec.MustAddressFromHex("0x2"),
		Module:     "coin",
		Name:       "Coin",
		TypeParams: []TypeTag{StructTypeTag(sui)},
	}
	require.Equal(
		"0x0000000000000000000000000000000000000000000000000000000000000002::coin::Coin"+
			"<0x0000000000000000000000000000000000000000000000000000000000000002::sui::SUI>",
		coin.String(),
	)
}

func TestTypeTagDepthLimit(t *testing.T) {
	require := require.New(t)
	// A run of vector tags deeper than the decoder permits.
	deep := make([]byte, maxTypeTagDepth+2)
	for i := range deep {
		deep[i] = typeTagVector
	}
	r := codec.NewReader(append(deep, typeTagU8), consts.NetworkSizeLimit)
	_, err := UnmarshalTypeTag(r)
	require.ErrorIs(err, ErrInvalidVariant, "unbounded type nesting accepted")
}

func TestTypeTagUnknown(t *testing.T) {
	require := require.New(t)
	r := codec.NewReader([]byte{0x0b}, consts.NetworkSizeLimit)
	_, err := UnmarshalTypeTag(r)
	require.ErrorIs(err, ErrInvalidVariant)
}

func TestStructTagFromStringInvalid(t *testing.T) {
	require := require.New(t)
	_, err := StructTagFromString("0x2::sui")
	require.ErrorIs(err, ErrInvalidVariant)

	_, err = StructTagFromString("zz::sui::SUI")
	require.Error(err)
}
