// Copyright (C) 2024, Suikit Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import "errors"

var (
	ErrMalformedVarint = errors.New("malformed varint")
	ErrTruncatedInput  = errors.New("truncated input")
	ErrTrailingBytes   = errors.New("trailing bytes")
	ErrInvalidBool     = errors.New("invalid bool byte")
	ErrTooManyItems    = errors.New("too many items")
	ErrWriteLimit      = errors.New("write exceeds size limit")
	ErrInvalidSize     = errors.New("invalid size")
)
