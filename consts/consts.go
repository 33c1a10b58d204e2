// Copyright (C) 2024, Suikit Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

const (
	ByteLen   = 1
	BoolLen   = 1
	Uint16Len = 2
	Uint32Len = 4
	Uint64Len = 8
	IntLen    = 4

	// DigestLen is the length of every protocol digest (transaction digests,
	// object digests, signing digests).
	DigestLen = 32

	MaxUint8  = ^uint8(0)
	MaxUint16 = ^uint16(0)
	MaxUint32 = ^uint32(0)
	MaxUint64 = ^uint64(0)
	MaxUint   = ^uint(0)
	MaxInt    = int(MaxUint >> 1)

	// NetworkSizeLimit is the maximum size of a serialized transaction the
	// client will produce or accept.
	NetworkSizeLimit = 128 * 1024
)
