// Copyright (C) 2024, Suikit Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import "errors"

var (
	// ErrInvalidTransactionStructure wraps every structural violation caught
	// before encoding: out-of-range input/result indices, an empty gas payment
	// list, a zero gas budget.
	ErrInvalidTransactionStructure = errors.New("invalid transaction structure")

	// ErrInvalidVariant is returned when decoding hits an unknown or reserved
	// enum discriminant.
	ErrInvalidVariant = errors.New("invalid variant")

	// Assembler state-machine ordering errors.
	ErrTransactionAlreadyEncoded = errors.New("transaction already encoded")
	ErrTransactionNotEncoded     = errors.New("transaction not encoded")
	ErrTransactionNotEnveloped   = errors.New("transaction not enveloped")
	ErrTransactionFinalized      = errors.New("transaction already finalized")
	ErrNoSignatures              = errors.New("no signatures collected")
	ErrNoSender                  = errors.New("sender not set")
)
